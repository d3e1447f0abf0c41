// Package backend abstracts the terminal the runtime draws to.
package backend

import (
	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/furry-shelf/terminal"
)

// Style is the cell style. It is tcell's style so colors and attributes
// pass through to the screen backend unchanged.
type Style = tcell.Style

// Color is a cell color.
type Color = tcell.Color

// DefaultStyle returns the terminal's default style.
func DefaultStyle() Style {
	return tcell.StyleDefault
}

// RGB returns a true-color value.
func RGB(r, g, b uint8) Color {
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Cell is a single character cell.
type Cell struct {
	Rune  rune
	Style Style
}

// Backend is a terminal the App renders into and reads input from.
type Backend interface {
	Init() error
	Fini()
	Size() (width, height int)
	SetContent(x, y int, mainc rune, combc []rune, style Style)
	Show()
	HideCursor()
	// PollEvent blocks until input arrives. It returns nil once the backend
	// has been finalized.
	PollEvent() terminal.Event
}
