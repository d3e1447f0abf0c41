package runtime

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-shelf/backend"
)

// Cell represents a single character cell in the buffer.
type Cell = backend.Cell

// Buffer is the grid widgets render into. The App flushes only the cells
// that changed since the last frame.
type Buffer struct {
	cells      []Cell
	dirty      []bool
	width      int
	height     int
	dirtyCount int
}

// NewBuffer creates a buffer with the given dimensions.
func NewBuffer(w, h int) *Buffer {
	b := &Buffer{}
	b.Resize(w, h)
	return b
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (w, h int) {
	return b.width, b.height
}

// Resize changes the dimensions and marks everything dirty.
func (b *Buffer) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if w == b.width && h == b.height && b.cells != nil {
		return
	}
	b.width = w
	b.height = h
	b.cells = make([]Cell, w*h)
	b.dirty = make([]bool, w*h)
	for i := range b.cells {
		b.cells[i] = Cell{Rune: ' ', Style: backend.DefaultStyle()}
	}
	b.MarkAllDirty()
}

// Get returns the cell at x, y.
func (b *Buffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// Set writes a cell, marking it dirty when it changes.
func (b *Buffer) Set(x, y int, r rune, s backend.Style) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	next := Cell{Rune: r, Style: s}
	if b.cells[idx] == next {
		return
	}
	b.cells[idx] = next
	if !b.dirty[idx] {
		b.dirty[idx] = true
		b.dirtyCount++
	}
}

// SetString writes s starting at x, y and returns the number of columns used.
// Wide runes occupy two columns.
func (b *Buffer) SetString(x, y int, s string, style backend.Style) int {
	col := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		b.Set(col, y, r, style)
		if w == 2 {
			b.Set(col+1, y, 0, style)
		}
		col += w
	}
	return col - x
}

// Fill sets every cell in r.
func (b *Buffer) Fill(r Rect, ch rune, s backend.Style) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			b.Set(x, y, ch, s)
		}
	}
}

// Clear blanks the whole buffer.
func (b *Buffer) Clear() {
	b.Fill(Rect{0, 0, b.width, b.height}, ' ', backend.DefaultStyle())
}

// MarkAllDirty forces a full redraw on the next flush.
func (b *Buffer) MarkAllDirty() {
	for i := range b.dirty {
		b.dirty[i] = true
	}
	b.dirtyCount = len(b.dirty)
}

// ClearDirty resets dirty tracking after a flush.
func (b *Buffer) ClearDirty() {
	for i := range b.dirty {
		b.dirty[i] = false
	}
	b.dirtyCount = 0
}

// IsDirty reports whether any cell changed.
func (b *Buffer) IsDirty() bool {
	return b.dirtyCount > 0
}

// DirtyCount returns the number of changed cells.
func (b *Buffer) DirtyCount() int {
	return b.dirtyCount
}

// ForEachDirtyCell visits changed cells in row-major order.
func (b *Buffer) ForEachDirtyCell(fn func(x, y int, cell Cell)) {
	if fn == nil || b.dirtyCount == 0 {
		return
	}
	for idx, dirty := range b.dirty {
		if dirty {
			fn(idx%b.width, idx/b.width, b.cells[idx])
		}
	}
}

// Row returns the text of row y with trailing spaces trimmed.
func (b *Buffer) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	for _, cell := range b.cells[y*b.width : (y+1)*b.width] {
		if cell.Rune == 0 {
			continue
		}
		sb.WriteRune(cell.Rune)
	}
	return strings.TrimRight(sb.String(), " ")
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}
