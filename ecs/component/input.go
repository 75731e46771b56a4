package component

// Choice is an optional menu selection. The zero value means nothing was
// chosen this frame.
type Choice int

// Pick returns the Choice selecting index i.
func Pick(i int) Choice {
	if i < 0 {
		return 0
	}
	return Choice(i + 1)
}

func (c Choice) Index() (int, bool) {
	if c <= 0 {
		return 0, false
	}
	return int(c) - 1, true
}

// Input stores one frame's input snapshot. Held fields are true for as long
// as the control is down; edge fields are true only on the frame it was
// pressed.
type Input struct {
	Left  bool
	Right bool
	Shoot bool

	Jump    bool
	Freeze  bool
	Pause   bool
	Confirm bool
	Back    bool
	Quit    bool

	// Menu and shop selections.
	OpenShop       bool
	DifficultyStep int
	Difficulty     Choice
	ShopTab        Choice
	ShopCursorStep int
	ShopItem       Choice
	ShopBuy        bool
}

// MoveX returns -1, 0 or 1. Right wins when both directions are held.
func (in Input) MoveX() float64 {
	switch {
	case in.Right:
		return 1
	case in.Left:
		return -1
	}
	return 0
}
