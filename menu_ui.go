package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/waterguard/ecs/component"
	"github.com/milk9111/waterguard/flow"
	"golang.org/x/image/font/basicfont"
)

// menuActions holds overlay button clicks until the next frame's input is
// sampled, so clicks drive the flow the same way keys do.
type menuActions struct {
	pending component.Input
}

func (m *menuActions) click(set func(in *component.Input)) {
	set(&m.pending)
}

// merge folds pending clicks into in and clears them.
func (m *menuActions) merge(in component.Input) component.Input {
	p := m.pending
	m.pending = component.Input{}
	in.Pause = in.Pause || p.Pause
	in.Back = in.Back || p.Back
	in.Confirm = in.Confirm || p.Confirm
	in.Quit = in.Quit || p.Quit
	return in
}

// menuUI owns the ebitenui overlays shown over a suspended run.
type menuUI struct {
	actions     *menuActions
	pause       *ebitenui.UI
	confirmQuit *ebitenui.UI
}

func newMenuUI(width, height float64) *menuUI {
	a := &menuActions{}
	return &menuUI{
		actions:     a,
		pause:       NewPauseUI(a, width, height),
		confirmQuit: NewConfirmQuitUI(a, width, height),
	}
}

// For returns the overlay drawn in state, or nil.
func (m *menuUI) For(state flow.State) *ebitenui.UI {
	if m == nil {
		return nil
	}
	switch state {
	case flow.StatePaused:
		return m.pause
	case flow.StateConfirmQuit:
		return m.confirmQuit
	}
	return nil
}

type menuButton struct {
	label string
	set   func(in *component.Input)
}

var (
	pauseButtons = []menuButton{
		{"Resume", func(in *component.Input) { in.Pause = true }},
		{"Quit to menu", func(in *component.Input) { in.Quit = true }},
	}
	confirmQuitButtons = []menuButton{
		{"Yes", func(in *component.Input) { in.Confirm = true }},
		{"No", func(in *component.Input) { in.Back = true }},
	}
)

// NewPauseUI builds the centered pause panel with Resume and Quit buttons.
func NewPauseUI(a *menuActions, width, height float64) *ebitenui.UI {
	return newPanelUI(a, width, height, []string{"Paused"}, pauseButtons)
}

// NewConfirmQuitUI asks before a run is abandoned.
func NewConfirmQuitUI(a *menuActions, width, height float64) *ebitenui.UI {
	return newPanelUI(a, width, height, []string{"Quit to menu?", "Progress is lost."}, confirmQuitButtons)
}

func newPanelUI(a *menuActions, width, height float64, title []string, buttons []menuButton) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x08, G: 0x10, B: 0x28, A: 220})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x1e, G: 0x5a, B: 0xa0, A: 255})
	btnPressedImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x10, G: 0x3c, B: 0x70, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(int(width)/3, int(height)/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	for _, line := range title {
		panel.AddChild(widget.NewText(
			widget.TextOpts.Text(line, &face, white),
			widget.TextOpts.WidgetOpts(center),
		))
	}
	for _, b := range buttons {
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnPressedImg}),
			widget.ButtonOpts.Text(b.label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(center),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				a.click(b.set)
			}),
		))
	}

	// the root dims the frozen playfield behind the panel
	root := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(overlay)),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}
