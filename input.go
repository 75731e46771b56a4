package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/waterguard/ecs/component"
	"github.com/milk9111/waterguard/flow"
)

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8,
}

// readInput samples the keyboard and the first gamepad once for the frame.
func readInput(state flow.State) component.Input {
	pressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}
	just := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if inpututil.IsKeyJustPressed(k) {
				return true
			}
		}
		return false
	}

	in := component.Input{
		Left:    pressed(ebiten.KeyA, ebiten.KeyArrowLeft),
		Right:   pressed(ebiten.KeyD, ebiten.KeyArrowRight),
		Shoot:   pressed(ebiten.KeyZ),
		Jump:    just(ebiten.KeySpace),
		Freeze:  just(ebiten.KeyX),
		Pause:   just(ebiten.KeyEscape),
		Back:    just(ebiten.KeyEscape, ebiten.KeyBackspace),
		Confirm: just(ebiten.KeyEnter, ebiten.KeySpace, ebiten.KeyZ),
		Quit:    just(ebiten.KeyQ),
	}

	digit := component.Choice(0)
	for i, k := range digitKeys {
		if inpututil.IsKeyJustPressed(k) {
			digit = component.Pick(i)
			break
		}
	}

	switch state {
	case flow.StateMenu:
		in.OpenShop = just(ebiten.KeyS)
		if just(ebiten.KeyA, ebiten.KeyArrowLeft) {
			in.DifficultyStep--
		}
		if just(ebiten.KeyD, ebiten.KeyArrowRight) {
			in.DifficultyStep++
		}
		in.Difficulty = digit
	case flow.StateShop:
		switch {
		case just(ebiten.KeyQ):
			in.ShopTab = component.Pick(0)
		case just(ebiten.KeyE):
			in.ShopTab = component.Pick(1)
		}
		if just(ebiten.KeyW, ebiten.KeyArrowUp) {
			in.ShopCursorStep--
		}
		if just(ebiten.KeyS, ebiten.KeyArrowDown) {
			in.ShopCursorStep++
		}
		in.ShopItem = digit
		in.ShopBuy = just(ebiten.KeyZ, ebiten.KeyEnter)
	}

	readGamepad(&in)
	return in
}

func readGamepad(in *component.Input) {
	const stickDeadzone = 0.2

	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) == 0 {
		return
	}
	id := ids[0]
	if !ebiten.IsStandardGamepadLayoutAvailable(id) {
		return
	}

	x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	in.Left = in.Left || x < -stickDeadzone || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft)
	in.Right = in.Right || x > stickDeadzone || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight)
	in.Shoot = in.Shoot || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightLeft)

	a := inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
	in.Jump = in.Jump || a
	in.Confirm = in.Confirm || a
	in.Freeze = in.Freeze || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightTop)
	start := inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
	in.Pause = in.Pause || start
	in.Back = in.Back || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightRight)
}
