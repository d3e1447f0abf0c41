// Package sim provides an in-memory backend for tests and headless runs.
package sim

import (
	"strings"
	"sync"

	"github.com/odvcencio/furry-shelf/backend"
	"github.com/odvcencio/furry-shelf/terminal"
)

// Backend records drawn cells and replays injected input.
type Backend struct {
	mu      sync.Mutex
	width   int
	height  int
	pending []backend.Cell
	shown   []backend.Cell
	shows   int
	events  chan terminal.Event
	done    chan struct{}
	closed  bool
}

// New creates a simulated terminal of the given size.
func New(width, height int) *Backend {
	return &Backend{
		width:   width,
		height:  height,
		pending: blank(width * height),
		shown:   blank(width * height),
		events:  make(chan terminal.Event, 64),
		done:    make(chan struct{}),
	}
}

func blank(n int) []backend.Cell {
	cells := make([]backend.Cell, n)
	for i := range cells {
		cells[i] = backend.Cell{Rune: ' ', Style: backend.DefaultStyle()}
	}
	return cells
}

// Init is a no-op.
func (b *Backend) Init() error {
	return nil
}

// Fini unblocks PollEvent.
func (b *Backend) Fini() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	close(b.done)
}

// Size returns the simulated size.
func (b *Backend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

// SetContent stores a cell until the next Show.
func (b *Backend) SetContent(x, y int, mainc rune, combc []rune, style backend.Style) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	b.pending[y*b.width+x] = backend.Cell{Rune: mainc, Style: style}
}

// Show publishes pending cells.
func (b *Backend) Show() {
	b.mu.Lock()
	defer b.mu.Unlock()
	copy(b.shown, b.pending)
	b.shows++
}

// HideCursor is a no-op.
func (b *Backend) HideCursor() {}

// PollEvent returns the next injected event, or nil after Fini.
func (b *Backend) PollEvent() terminal.Event {
	select {
	case ev := <-b.events:
		return ev
	case <-b.done:
		return nil
	}
}

// InjectKey queues a key press.
func (b *Backend) InjectKey(key terminal.Key, r rune) {
	b.inject(terminal.KeyEvent{Key: key, Rune: r})
}

// InjectResize resizes the terminal and queues the resize event.
func (b *Backend) InjectResize(width, height int) {
	b.mu.Lock()
	b.width = width
	b.height = height
	b.pending = blank(width * height)
	b.shown = blank(width * height)
	b.mu.Unlock()
	b.inject(terminal.ResizeEvent{Width: width, Height: height})
}

func (b *Backend) inject(ev terminal.Event) {
	select {
	case b.events <- ev:
	case <-b.done:
	}
}

// Shows returns how many times Show was called.
func (b *Backend) Shows() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shows
}

// CellAt returns the shown cell at x, y.
func (b *Backend) CellAt(x, y int) backend.Cell {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return backend.Cell{}
	}
	return b.shown[y*b.width+x]
}

// Capture returns the shown screen as lines with trailing spaces trimmed.
func (b *Backend) Capture() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	lines := make([]string, b.height)
	for y := 0; y < b.height; y++ {
		var sb strings.Builder
		for _, cell := range b.shown[y*b.width : (y+1)*b.width] {
			if cell.Rune == 0 {
				sb.WriteRune(' ')
				continue
			}
			sb.WriteRune(cell.Rune)
		}
		lines[y] = strings.TrimRight(sb.String(), " ")
	}
	return strings.Join(lines, "\n")
}

var _ backend.Backend = (*Backend)(nil)
