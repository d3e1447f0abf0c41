package booklist

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-shelf/runtime"
	"github.com/odvcencio/furry-shelf/terminal"
	"github.com/odvcencio/furry-shelf/theme"
	"github.com/odvcencio/furry-shelf/widgets"
)

var helpLines = []string{
	"Keys",
	"",
	"j k / Up Down  move",
	"PgUp PgDn      page",
	"Home End       first, last",
	"r              reload",
	"Ctrl-L         redraw",
	"q              quit",
	"",
	"any key closes this",
}

// Help is the key overlay. Any key dismisses it; Ctrl-C still quits.
type Help struct {
	widgets.Base
	style theme.Theme
}

// NewHelp creates the overlay.
func NewHelp(th theme.Theme) *Help {
	return &Help{style: th}
}

// Measure returns the box size.
func (h *Help) Measure(constraints runtime.Constraints) runtime.Size {
	width := 0
	for _, line := range helpLines {
		width = max(width, runewidth.StringWidth(line))
	}
	return constraints.Constrain(runtime.Size{Width: width + 4, Height: len(helpLines) + 2})
}

// Render draws a centered box.
func (h *Help) Render(ctx runtime.RenderContext) {
	area := h.Bounds()
	if area.Empty() || ctx.Buffer == nil {
		return
	}
	size := h.Measure(runtime.Loose(runtime.Size{Width: area.Width, Height: area.Height}))
	box := runtime.Rect{
		X:      area.X + (area.Width-size.Width)/2,
		Y:      area.Y + (area.Height-size.Height)/2,
		Width:  size.Width,
		Height: size.Height,
	}
	ctx.Buffer.Fill(box, ' ', h.style.Selected)
	inner := runtime.Rect{X: box.X + 2, Y: box.Y + 1, Width: box.Width - 4, Height: box.Height - 2}
	for y, line := range helpLines {
		widgets.WriteLine(ctx.Buffer, inner, y, line, h.style.Selected, widgets.AlignLeft)
	}
}

// HandleMessage closes the overlay on any key.
func (h *Help) HandleMessage(msg runtime.Message) runtime.HandleResult {
	key, ok := msg.(runtime.KeyMsg)
	if !ok {
		return runtime.Unhandled()
	}
	if key.Key == terminal.KeyCtrlC {
		return runtime.WithCommand(runtime.PopOverlay{}, runtime.Quit{})
	}
	return runtime.WithCommand(runtime.PopOverlay{})
}

var _ runtime.Widget = (*Help)(nil)
