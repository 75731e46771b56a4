package main

import (
	"flag"
	"log"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/waterguard/flow"
	"github.com/milk9111/waterguard/prefabs"
	"github.com/milk9111/waterguard/save"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	savePath := flag.String("save", "waterguard.sav", "save file path")
	watch := flag.Bool("watch", false, "hot reload content from prefabs/")
	difficulty := flag.String("difficulty", "", "initial difficulty (easy, normal, hard)")
	seed := flag.Uint64("seed", 0, "random seed (0 picks one from the clock)")
	flag.Parse()

	content, err := flow.LoadContent()
	if err != nil {
		log.Fatal(err)
	}

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	if *debug {
		log.Printf("main: seed %d", *seed)
	}

	store := save.Open(*savePath)
	sim := flow.New(content, store, flow.Options{
		Rand:       rand.New(rand.NewPCG(*seed, *seed>>1)),
		Debug:      *debug,
		Difficulty: *difficulty,
	})

	var watcher *prefabs.Watcher
	if *watch {
		watcher, err = prefabs.NewWatcher(prefabs.ContentDir, filepath.Join(prefabs.ContentDir, "scripts"))
		if err != nil {
			log.Printf("main: content watch disabled: %v", err)
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	pf := content.Tuning.Playfield
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(pf.Width), int(pf.Height))
	ebiten.SetWindowTitle("waterguard")

	game := NewGame(sim, watcher, *debug, pf.Width, pf.Height)
	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
