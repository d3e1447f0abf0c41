// Package booklist keeps a terminal book list in step with the view
// model's collection.
package booklist

import (
	"fmt"

	"github.com/odvcencio/furry-shelf/backend"
	"github.com/odvcencio/furry-shelf/catalog"
	"github.com/odvcencio/furry-shelf/runtime"
	"github.com/odvcencio/furry-shelf/state"
	"github.com/odvcencio/furry-shelf/theme"
	"github.com/odvcencio/furry-shelf/widgets"
)

// slotRows is title, author, description and a spacer.
const slotRows = 4

// Slot is one reusable on-screen entry.
type Slot struct {
	Title       string
	Author      string
	Description string
}

// Adapter maps collection positions onto slots. Count and Bind read only
// the collection last handed to OnChanged, so they agree with each other
// until the next delivery. Observe it on the goroutine that renders it.
type Adapter struct {
	widgets.AdapterBase
	current     catalog.Collection
	present     bool
	placeholder string
	markdown    bool
	theme       theme.Theme
	changes     int
}

// AdapterOptions configures an Adapter.
type AdapterOptions struct {
	// Placeholder replaces absent fields.
	Placeholder string
	// Markdown flattens descriptions from markdown to plain text.
	Markdown bool
	Theme    theme.Theme
}

// NewAdapter creates an adapter with no collection yet.
func NewAdapter(opts AdapterOptions) *Adapter {
	th := opts.Theme
	if th.Name == "" {
		th = theme.Default()
	}
	return &Adapter{
		placeholder: opts.Placeholder,
		markdown:    opts.Markdown,
		theme:       th,
	}
}

// Count returns the collection length, or 0 while it is absent.
func (a *Adapter) Count() int {
	if !a.present {
		return 0
	}
	return len(a.current)
}

// CreateSlot returns an empty slot.
func (a *Adapter) CreateSlot() *Slot {
	return &Slot{}
}

// Bind fills slot from the book at position. A position outside
// [0, Count()) is a caller bug and panics.
func (a *Adapter) Bind(slot *Slot, position int) {
	if position < 0 || position >= a.Count() {
		panic(fmt.Sprintf("booklist: bind position %d out of range [0,%d)", position, a.Count()))
	}
	book := a.current[position]
	slot.Title = catalog.Value(book.Title, a.placeholder)
	slot.Author = catalog.Value(book.Author, a.placeholder)
	slot.Description = catalog.Value(book.Description, a.placeholder)
	if a.markdown && book.Description != nil {
		slot.Description = PlainText(*book.Description)
	}
}

// RenderSlot draws the slot's three text rows.
func (a *Adapter) RenderSlot(slot *Slot, selected bool, ctx runtime.RenderContext) {
	marker, title := "  ", a.theme.Title
	if selected {
		marker, title = "> ", a.theme.Selected
	}
	rows := []struct {
		text  string
		style backend.Style
	}{
		{marker + slot.Title, title},
		{"  " + slot.Author, a.theme.Author},
		{"  " + slot.Description, a.theme.Description},
	}
	for y, row := range rows {
		widgets.WriteLine(ctx.Buffer, ctx.Bounds, y, row.text, row.style, widgets.AlignLeft)
	}
}

// SlotHeight returns the rows per slot.
func (a *Adapter) SlotHeight() int {
	return slotRows
}

// OnChanged is the collection observer. It keeps books as the adapter's
// snapshot and tells attached views to re-read Count and rebind every
// visible slot.
func (a *Adapter) OnChanged(books catalog.Collection) {
	a.current, a.present = books, true
	a.changes++
	a.NotifyDataSetChanged()
}

// Changes returns how many change notifications the adapter received.
func (a *Adapter) Changes() int {
	return a.changes
}

var (
	_ widgets.RecyclerAdapter[*Slot]     = (*Adapter)(nil)
	_ state.Observer[catalog.Collection] = (*Adapter)(nil)
)
