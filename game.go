package main

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/waterguard/flow"
	"github.com/milk9111/waterguard/prefabs"
)

type Game struct {
	sim     *flow.Game
	watcher *prefabs.Watcher
	cues    *CuePlayer
	menus   *menuUI
	debug   bool
	width   float64
	height  float64
	last    time.Time
	frames  int
}

func NewGame(sim *flow.Game, watcher *prefabs.Watcher, debug bool, width, height float64) *Game {
	return &Game{
		sim:     sim,
		watcher: watcher,
		cues:    NewCuePlayer(debug),
		menus:   newMenuUI(width, height),
		debug:   debug,
		width:   width,
		height:  height,
	}
}

func (g *Game) Update() error {
	g.frames++

	now := time.Now()
	dt := 1.0 / float64(ebiten.TPS())
	if !g.last.IsZero() {
		dt = now.Sub(g.last).Seconds()
	}
	g.last = now

	g.reload()

	state := g.sim.State()
	if ui := g.menus.For(state); ui != nil {
		ui.Update()
	}
	in := g.menus.actions.merge(readInput(state))
	if in.Quit && g.sim.State() == flow.StateMenu {
		return ebiten.Termination
	}
	g.sim.Update(in, dt)
	g.cues.Play(g.sim.Events(), dt)
	return nil
}

// reload applies content edits picked up by the watcher.
func (g *Game) reload() {
	if len(g.watcher.Poll()) == 0 {
		return
	}
	content, err := flow.LoadContent()
	if err != nil {
		log.Printf("main: reload: %v", err)
		return
	}
	g.sim.Reload(content)
	log.Printf("main: content reloaded")
}

func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.sim.Snapshot()
	drawSnapshot(screen, snap)
	if ui := g.menus.For(snap.State); ui != nil {
		ui.Draw(screen)
	}
	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %.1f  FPS: %.1f  music: %s",
			ebiten.ActualTPS(), ebiten.ActualFPS(), g.cues.Track()), 4, int(g.height)-16)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return g.width, g.height
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
