// Package scroll tracks vertical scroll state for row-based views.
package scroll

// Controller is implemented by widgets that scroll.
type Controller interface {
	ScrollBy(rows int)
	ScrollTo(row int)
	PageBy(pages int)
	ScrollToStart()
	ScrollToEnd()
}

// Viewport is a window of ViewHeight rows over ContentHeight rows.
type Viewport struct {
	offset   int
	content  int
	view     int
	onChange func(offset int)
}

// NewViewport creates an empty viewport.
func NewViewport() *Viewport {
	return &Viewport{}
}

// SetContentHeight updates the content height and clamps the offset.
func (v *Viewport) SetContentHeight(rows int) {
	if v == nil {
		return
	}
	v.content = max(rows, 0)
	v.ScrollTo(v.offset)
}

// ContentHeight returns the content height.
func (v *Viewport) ContentHeight() int {
	if v == nil {
		return 0
	}
	return v.content
}

// SetViewHeight updates the view height and clamps the offset.
func (v *Viewport) SetViewHeight(rows int) {
	if v == nil {
		return
	}
	v.view = max(rows, 0)
	v.ScrollTo(v.offset)
}

// ViewHeight returns the view height.
func (v *Viewport) ViewHeight() int {
	if v == nil {
		return 0
	}
	return v.view
}

// Offset returns the first visible content row.
func (v *Viewport) Offset() int {
	if v == nil {
		return 0
	}
	return v.offset
}

// MaxOffset returns the largest valid offset.
func (v *Viewport) MaxOffset() int {
	if v == nil {
		return 0
	}
	return max(v.content-v.view, 0)
}

// SetOnChange registers a callback for offset changes.
func (v *Viewport) SetOnChange(fn func(offset int)) {
	if v != nil {
		v.onChange = fn
	}
}

// ScrollTo moves the offset to row, clamped to the content.
func (v *Viewport) ScrollTo(row int) {
	if v == nil {
		return
	}
	next := min(max(row, 0), v.MaxOffset())
	if next == v.offset {
		return
	}
	v.offset = next
	if v.onChange != nil {
		v.onChange(next)
	}
}

// ScrollBy moves the offset by rows.
func (v *Viewport) ScrollBy(rows int) {
	if v != nil {
		v.ScrollTo(v.offset + rows)
	}
}

// PageBy moves the offset by whole view heights.
func (v *Viewport) PageBy(pages int) {
	if v != nil {
		v.ScrollBy(pages * max(v.view, 1))
	}
}

// ScrollToStart moves to the first row.
func (v *Viewport) ScrollToStart() {
	v.ScrollTo(0)
}

// ScrollToEnd moves to the last page.
func (v *Viewport) ScrollToEnd() {
	if v != nil {
		v.ScrollTo(v.MaxOffset())
	}
}

// Reveal scrolls the least amount needed to show rows [top, top+height).
func (v *Viewport) Reveal(top, height int) {
	if v == nil {
		return
	}
	switch {
	case top < v.offset:
		v.ScrollTo(top)
	case top+height > v.offset+v.view:
		v.ScrollTo(top + height - v.view)
	}
}

var _ Controller = (*Viewport)(nil)
