package widgets

import (
	"github.com/odvcencio/furry-shelf/backend"
	"github.com/odvcencio/furry-shelf/runtime"
	"github.com/odvcencio/furry-shelf/scroll"
	"github.com/odvcencio/furry-shelf/state"
	"github.com/odvcencio/furry-shelf/terminal"
)

// RecyclerView shows adapter items through a pool of reusable slots.
// The pool holds one slot per visible position; scrolling and data changes
// rebind those slots instead of creating new ones.
type RecyclerView[S any] struct {
	FocusableBase
	adapter  RecyclerAdapter[S]
	viewport *scroll.Viewport
	index    scroll.FixedHeightIndex
	bar      scroll.Bar
	subs     state.Subscriptions

	slots []S
	bound []int
	count int

	selected  int
	onSelect  func(position int)
	emptyText string
	style     backend.Style
	binds     int
}

// NewRecyclerView creates a view over adapter.
func NewRecyclerView[S any](adapter RecyclerAdapter[S]) *RecyclerView[S] {
	r := &RecyclerView[S]{
		adapter:  adapter,
		viewport: scroll.NewViewport(),
		bar:      scroll.DefaultBar(),
		style:    backend.DefaultStyle(),
	}
	r.index = scroll.FixedHeightIndex{
		Height: r.slotHeight(),
		Count:  func() int { return r.count },
	}
	return r
}

// OnSelect registers a handler for Enter on the selected position.
func (r *RecyclerView[S]) OnSelect(fn func(position int)) {
	r.onSelect = fn
}

// SetEmptyText sets the text shown when the adapter has no items.
func (r *RecyclerView[S]) SetEmptyText(text string) {
	r.emptyText = text
}

// SetStyle sets the background style.
func (r *RecyclerView[S]) SetStyle(style backend.Style) {
	r.style = style
}

// SetScrollBar replaces the scroll indicator style.
func (r *RecyclerView[S]) SetScrollBar(bar scroll.Bar) {
	r.bar = bar
}

// Adapter returns the adapter.
func (r *RecyclerView[S]) Adapter() RecyclerAdapter[S] {
	return r.adapter
}

// Selected returns the selected position, or -1 when empty.
func (r *RecyclerView[S]) Selected() int {
	if r.count == 0 {
		return -1
	}
	return r.selected
}

// Count returns the item count read at the last refresh.
func (r *RecyclerView[S]) Count() int {
	return r.count
}

// PoolSize returns how many slots have been created.
func (r *RecyclerView[S]) PoolSize() int {
	return len(r.slots)
}

// Binds returns how many times the view has bound a slot.
func (r *RecyclerView[S]) Binds() int {
	return r.binds
}

// VisibleRange returns the half-open range of positions on screen.
func (r *RecyclerView[S]) VisibleRange() (first, last int) {
	return scroll.Visible(r.index, r.viewport)
}

// Mount attaches the view to the adapter's change notifications.
func (r *RecyclerView[S]) Mount() {
	r.subs.Clear()
	if r.adapter == nil {
		return
	}
	r.subs.Subscribe(r.adapter.Observable(), r.Refresh)
	r.Refresh()
}

// Unmount detaches from the adapter.
func (r *RecyclerView[S]) Unmount() {
	r.subs.Clear()
}

// Measure fills the available space.
func (r *RecyclerView[S]) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.MaxSize()
}

// Layout sizes the slot pool to the rows that fit.
func (r *RecyclerView[S]) Layout(bounds runtime.Rect) {
	r.Base.Layout(bounds)
	perPage := max(bounds.Height/r.slotHeight(), 1)
	r.viewport.SetViewHeight(perPage * r.slotHeight())
	r.grow(perPage)
	r.reveal()
	r.rebind(false)
}

// Refresh re-reads Count, clamps the selection and rebinds every visible
// slot.
func (r *RecyclerView[S]) Refresh() {
	if r.adapter == nil {
		return
	}
	r.count = max(r.adapter.Count(), 0)
	r.index.Height = r.slotHeight()
	r.viewport.SetContentHeight(r.index.TotalHeight())
	r.selected = min(max(r.selected, 0), max(r.count-1, 0))
	r.reveal()
	r.rebind(true)
}

// Render draws visible slots and the scroll indicator.
func (r *RecyclerView[S]) Render(ctx runtime.RenderContext) {
	bounds := r.bounds
	if bounds.Empty() || ctx.Buffer == nil {
		return
	}
	ctx.Buffer.Fill(bounds, ' ', r.style)
	if r.count == 0 {
		WriteLine(ctx.Buffer, bounds, 0, r.emptyText, r.style, AlignCenter)
		return
	}

	content := bounds
	track := runtime.Rect{X: bounds.X + bounds.Width - 1, Y: bounds.Y, Width: 1, Height: bounds.Height}
	if bounds.Width > 1 && r.viewport.MaxOffset() > 0 {
		content.Width--
		r.bar.Render(ctx.Buffer, track, r.viewport)
	}

	height := r.slotHeight()
	first, last := r.VisibleRange()
	for pos := first; pos < last; pos++ {
		i := pos - first
		if i >= len(r.slots) || r.bound[i] != pos {
			continue
		}
		y := content.Y + i*height
		rows := min(height, content.Y+content.Height-y)
		if rows <= 0 {
			break
		}
		area := runtime.Rect{X: content.X, Y: y, Width: content.Width, Height: rows}
		r.adapter.RenderSlot(r.slots[i], pos == r.selected && r.focused, ctx.Sub(area))
	}
}

// HandleMessage moves the selection.
func (r *RecyclerView[S]) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if !r.focused || r.count == 0 {
		return runtime.Unhandled()
	}
	key, ok := msg.(runtime.KeyMsg)
	if !ok {
		return runtime.Unhandled()
	}
	switch key.Key {
	case terminal.KeyUp:
		r.ScrollBy(-1)
	case terminal.KeyDown:
		r.ScrollBy(1)
	case terminal.KeyPageUp:
		r.PageBy(-1)
	case terminal.KeyPageDown:
		r.PageBy(1)
	case terminal.KeyHome:
		r.ScrollToStart()
	case terminal.KeyEnd:
		r.ScrollToEnd()
	case terminal.KeyEnter:
		if r.onSelect != nil {
			r.onSelect(r.selected)
		}
	case terminal.KeyRune:
		switch key.Rune {
		case 'k':
			r.ScrollBy(-1)
		case 'j':
			r.ScrollBy(1)
		default:
			return runtime.Unhandled()
		}
	default:
		return runtime.Unhandled()
	}
	return runtime.Handled()
}

// ScrollBy moves the selection by rows positions.
func (r *RecyclerView[S]) ScrollBy(rows int) {
	r.ScrollTo(r.selected + rows)
}

// ScrollTo selects position, clamped to the item range.
func (r *RecyclerView[S]) ScrollTo(position int) {
	if r.count == 0 {
		return
	}
	r.selected = min(max(position, 0), r.count-1)
	r.reveal()
	r.rebind(false)
}

// PageBy moves the selection by whole pages.
func (r *RecyclerView[S]) PageBy(pages int) {
	r.ScrollBy(pages * r.perPage())
}

// ScrollToStart selects the first position.
func (r *RecyclerView[S]) ScrollToStart() {
	r.ScrollTo(0)
}

// ScrollToEnd selects the last position.
func (r *RecyclerView[S]) ScrollToEnd() {
	r.ScrollTo(r.count - 1)
}

func (r *RecyclerView[S]) slotHeight() int {
	if r.adapter == nil {
		return 1
	}
	return max(r.adapter.SlotHeight(), 1)
}

func (r *RecyclerView[S]) perPage() int {
	return max(r.viewport.ViewHeight()/r.slotHeight(), 1)
}

func (r *RecyclerView[S]) grow(n int) {
	if r.adapter == nil {
		return
	}
	for len(r.slots) < n {
		r.slots = append(r.slots, r.adapter.CreateSlot())
		r.bound = append(r.bound, -1)
	}
}

func (r *RecyclerView[S]) reveal() {
	if r.count == 0 {
		r.viewport.ScrollToStart()
		return
	}
	r.viewport.Reveal(r.index.OffsetForIndex(r.selected), r.slotHeight())
}

// rebind binds each visible position to its slot. Slots already holding
// their position are skipped unless all is set.
func (r *RecyclerView[S]) rebind(all bool) {
	if r.adapter == nil {
		return
	}
	first, last := r.VisibleRange()
	r.grow(last - first)
	for i := range r.bound {
		pos := first + i
		if pos >= last {
			r.bound[i] = -1
			continue
		}
		if !all && r.bound[i] == pos {
			continue
		}
		r.adapter.Bind(r.slots[i], pos)
		r.bound[i] = pos
		r.binds++
	}
}

var (
	_ runtime.Widget    = (*RecyclerView[int])(nil)
	_ runtime.Mountable = (*RecyclerView[int])(nil)
	_ runtime.Focusable = (*RecyclerView[int])(nil)
	_ scroll.Controller = (*RecyclerView[int])(nil)
)
