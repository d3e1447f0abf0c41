// Package widgets provides the reusable widgets the shelf view is built from.
package widgets

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-shelf/backend"
	"github.com/odvcencio/furry-shelf/runtime"
)

// Alignment positions text within a line.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Base holds the bounds and focus state shared by every widget.
// Embed it in widget structs.
type Base struct {
	bounds  runtime.Rect
	focused bool
}

// Layout stores the assigned bounds.
func (b *Base) Layout(bounds runtime.Rect) {
	if b != nil {
		b.bounds = bounds
	}
}

// Bounds returns the widget's assigned bounds.
func (b *Base) Bounds() runtime.Rect {
	if b == nil {
		return runtime.Rect{}
	}
	return b.bounds
}

// HandleMessage returns Unhandled by default.
func (b *Base) HandleMessage(msg runtime.Message) runtime.HandleResult {
	return runtime.Unhandled()
}

// CanFocus returns false by default.
func (b *Base) CanFocus() bool {
	return false
}

// Focus marks the widget as focused.
func (b *Base) Focus() {
	if b != nil {
		b.focused = true
	}
}

// Blur marks the widget as unfocused.
func (b *Base) Blur() {
	if b != nil {
		b.focused = false
	}
}

// IsFocused returns whether the widget is focused.
func (b *Base) IsFocused() bool {
	return b != nil && b.focused
}

// FocusableBase extends Base for focusable widgets.
type FocusableBase struct {
	Base
}

// CanFocus returns true for focusable widgets.
func (f *FocusableBase) CanFocus() bool {
	return true
}

// Truncate shortens s to at most width columns, ending in "..." when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

// Align truncates s to width and pads it according to align.
func Align(s string, width int, align Alignment) string {
	s = Truncate(s, width)
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	switch align {
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	case AlignRight:
		return strings.Repeat(" ", gap) + s
	default:
		return s + strings.Repeat(" ", gap)
	}
}

// WriteLine draws s on row y of area, clipped and padded to the area width.
func WriteLine(buf *runtime.Buffer, area runtime.Rect, y int, s string, style backend.Style, align Alignment) {
	if buf == nil || area.Width <= 0 || y < 0 || y >= area.Height {
		return
	}
	buf.SetString(area.X, area.Y+y, Align(flatten(s), area.Width, align), style)
}

// flatten keeps text on one line.
func flatten(s string) string {
	if !strings.ContainsAny(s, "\r\n\t") {
		return s
	}
	return strings.Join(strings.Fields(s), " ")
}
