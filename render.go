package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/waterguard/common"
	"github.com/milk9111/waterguard/ecs/component"
	"github.com/milk9111/waterguard/flow"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

var hudFace text.Face = text.NewGoXFace(basicfont.Face7x13)

var backgrounds = map[string]color.RGBA{
	"village": colornames.Skyblue,
	"forest":  colornames.Darkseagreen,
	"hill":    colornames.Lightsteelblue,
	"river":   colornames.Cadetblue,
	"castle":  colornames.Darkslategray,
}

var overlay = color.RGBA{A: 170}

func kindColor(v flow.ActorView) color.Color {
	switch {
	case v.HitFlash:
		return colornames.White
	case v.Frozen:
		return colornames.Lightcyan
	}
	if c, ok := colornames.Map[v.Skin]; ok && v.Kind == component.KindPlayer && !v.PoweredUp {
		return c
	}
	switch v.Kind {
	case component.KindPlayer:
		if v.PoweredUp {
			return colornames.Gold
		}
		return colornames.Dodgerblue
	case component.KindEnemy:
		if v.Flying {
			return colornames.Orange
		}
		if v.EnemyType == "tank" {
			return colornames.Darkred
		}
		return colornames.Orangered
	case component.KindBoss:
		return [...]color.RGBA{colornames.Firebrick, colornames.Crimson, colornames.Red}[max(0, min(2, v.BossPhase-1))]
	case component.KindProjectile:
		if v.Tier == component.TierPowerShot {
			return colornames.Yellow
		}
		if c, ok := colornames.Map[v.Skin]; ok {
			return c
		}
		return colornames.Aqua
	case component.KindFireball:
		return colornames.Darkorange
	case component.KindPowerUp:
		return colornames.Lime
	case component.KindHouse:
		return colornames.Burlywood
	case component.KindCastle:
		return colornames.Dimgray
	}
	return colornames.Magenta
}

func drawSnapshot(screen *ebiten.Image, snap flow.Snapshot) {
	w, h := float32(screen.Bounds().Dx()), float32(screen.Bounds().Dy())

	if !snap.State.ShowsWorld() || !snap.InRun {
		screen.Fill(colornames.Midnightblue)
		drawMenus(screen, snap, w, h)
		return
	}

	bg, ok := backgrounds[snap.Background]
	if !ok {
		bg = colornames.Skyblue
	}
	screen.Fill(bg)

	for _, a := range snap.Actors {
		if a.Invulnerable && int(snap.Elapsed*10)%2 == 0 {
			continue
		}
		b := a.Bounds
		vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), kindColor(a), false)
		if a.Kind == component.KindHouse || a.Kind == component.KindCastle || a.Kind == component.KindBoss {
			drawBar(screen, float32(b.X), float32(b.Y)-8, float32(b.Width), 4, a.HPRatio, healthColor(a.HPRatio))
		}
	}

	drawHUD(screen, snap, w)
	drawMenus(screen, snap, w, h)
}

func drawBar(screen *ebiten.Image, x, y, width, height float32, ratio float64, fill color.Color) {
	vector.DrawFilledRect(screen, x, y, width, height, colornames.Maroon, false)
	vector.DrawFilledRect(screen, x, y, width*float32(ratio), height, fill, false)
}

// healthColor fades from red at zero to green at full health.
func healthColor(ratio float64) color.Color {
	low, high := colornames.Red, colornames.Limegreen
	mix := func(a, b uint8) uint8 { return uint8(common.Lerp(float64(a), float64(b), ratio)) }
	return color.RGBA{R: mix(low.R, high.R), G: mix(low.G, high.G), B: mix(low.B, high.B), A: 255}
}

func drawHUD(screen *ebiten.Image, snap flow.Snapshot, w float32) {
	drawText(screen, fmt.Sprintf("HP %d/%d  House %d/%d", snap.PlayerHP, snap.PlayerMaxHP, snap.HouseHP, snap.HouseMaxHP), 8, 8, false)
	drawText(screen, fmt.Sprintf("Stage %d/%d %s  Wave %d/%d", snap.StageIndex+1, snap.StageCount, snap.StageName, snap.Wave, snap.Waves), 8, 24, false)
	drawText(screen, fmt.Sprintf("Materials %d/%d", snap.Materials, snap.MaterialsTotal), 8, 40, false)
	drawText(screen, snap.DifficultyLabel, float64(w)-80, 8, false)

	drawBar(screen, 8, 58, 80, 5, 1-snap.ShootCooldown, colornames.Aqua)
	if snap.FreezeEnabled {
		drawBar(screen, 8, 66, 80, 5, 1-snap.FreezeCooldown, colornames.Lightcyan)
	}
	if snap.PowerUp > 0 {
		drawBar(screen, 8, 74, 80, 5, snap.PowerUp, colornames.Gold)
	}
	if snap.BossMaxHP > 0 {
		drawText(screen, "BOSS", float64(w)/2-100, 24, false)
		drawBar(screen, w/2-60, 26, 200, 10, float64(snap.BossHP)/float64(snap.BossMaxHP), colornames.Orangered)
	}
}

func drawMenus(screen *ebiten.Image, snap flow.Snapshot, w, h float32) {
	cx, cy := float64(w)/2, float64(h)/2
	var lines []string

	switch snap.State {
	case flow.StateMenu:
		lines = []string{"WATERGUARD", "", "Difficulty: < " + snap.DifficultyLabel + " >", "", "Enter: start   S: shop   Q: quit",
			fmt.Sprintf("Coins: %d", snap.Coins)}
	case flow.StateTutorial:
		lines = []string{"Arrows: move   Space: jump   Z: shoot   X: freeze (hard)", "", "Defend the house. Destroy the fire castle.", "", "Press Enter"}
	case flow.StateStageClear:
		lines = []string{"STAGE CLEAR", "", "Found: " + snap.FoundMaterial, fmt.Sprintf("Materials %d/%d", snap.Materials, snap.MaterialsTotal)}
	case flow.StateCannonComplete:
		lines = []string{"WATER CANNON ASSEMBLED", "", "Shots hit harder now."}
	case flow.StateBossIntro:
		lines = []string{"THE FIRE LORD APPROACHES"}
	case flow.StateGameOver:
		lines = []string{"GAME OVER", "", "Enter: retry stage"}
	case flow.StateWin:
		lines = []string{"VICTORY", "", fmt.Sprintf("Reward: %d coins", snap.Reward), "", "Enter: menu"}
	case flow.StateShop:
		drawShop(screen, snap, cx)
		return
	default:
		return
	}

	if snap.State.ShowsWorld() && snap.InRun {
		vector.DrawFilledRect(screen, 0, 0, w, h, overlay, false)
	}
	y := cy - float64(len(lines))*8
	for _, line := range lines {
		drawText(screen, line, cx, y, true)
		y += 16
	}
}

func drawShop(screen *ebiten.Image, snap flow.Snapshot, cx float64) {
	tabs := []string{"Body", "Bullet"}
	tabs[snap.Shop.Tab] = "[" + tabs[snap.Shop.Tab] + "]"
	drawText(screen, "SHOP  "+strings.Join(tabs, "  ")+fmt.Sprintf("   Coins: %d", snap.Coins), cx, 40, true)

	y := 80.0
	for i, item := range snap.Shop.Items {
		mark := "  "
		if i == snap.Shop.Cursor {
			mark = "> "
		}
		status := fmt.Sprintf("%d", item.Price)
		switch {
		case item.Active:
			status = "equipped"
		case item.Owned:
			status = "owned"
		}
		if c, ok := colornames.Map[item.Color]; ok {
			vector.DrawFilledRect(screen, float32(cx)-140, float32(y)+2, 10, 10, c, false)
		}
		drawText(screen, fmt.Sprintf("%s%d. %-16s %s", mark, i+1, item.Name, status), cx-120, y, false)
		y += 18
	}
	drawText(screen, "Q/E: tab   Up/Down: select   Z: buy/equip   Esc: back", cx, y+20, true)
}

func drawText(screen *ebiten.Image, s string, x, y float64, centered bool) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(colornames.White)
	if centered {
		op.PrimaryAlign = text.AlignCenter
	}
	text.Draw(screen, s, hudFace, op)
}
