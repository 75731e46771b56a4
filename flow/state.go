package flow

// State is a top-level game flow state.
type State uint8

const (
	StateMenu State = iota
	StateTutorial
	StatePlaying
	StatePaused
	StateStageClear
	StateCannonComplete
	StateBossIntro
	StateGameOver
	StateWin
	StateShop
	StateConfirmQuit
)

var stateNames = [...]string{
	StateMenu:           "menu",
	StateTutorial:       "tutorial",
	StatePlaying:        "playing",
	StatePaused:         "paused",
	StateStageClear:     "stage_clear",
	StateCannonComplete: "cannon_complete",
	StateBossIntro:      "boss_intro",
	StateGameOver:       "game_over",
	StateWin:            "win",
	StateShop:           "shop",
	StateConfirmQuit:    "confirm_quit",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Simulating reports whether the world advances in this state.
func (s State) Simulating() bool {
	return s == StatePlaying
}

// ShowsWorld reports whether renderers should draw the stage behind any overlay.
func (s State) ShowsWorld() bool {
	switch s {
	case StatePlaying, StatePaused, StateStageClear, StateGameOver, StateWin, StateConfirmQuit:
		return true
	}
	return false
}
