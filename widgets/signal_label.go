package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-shelf/backend"
	"github.com/odvcencio/furry-shelf/runtime"
	"github.com/odvcencio/furry-shelf/state"
)

// SignalLabel is a one-line label bound to a readable string source.
// It subscribes on Mount and drops the subscription on Unmount.
type SignalLabel struct {
	Base
	source    state.Readable[string]
	subs      state.Subscriptions
	text      string
	style     backend.Style
	alignment Alignment
	mounted   bool
}

// NewSignalLabel creates a label fed by source. Updates run through
// scheduler; Bind replaces it with the app scheduler.
func NewSignalLabel(source state.Readable[string], scheduler state.Scheduler) *SignalLabel {
	label := &SignalLabel{
		source: source,
		style:  backend.DefaultStyle(),
	}
	label.subs.SetScheduler(scheduler)
	if source != nil {
		label.text = source.Get()
	}
	return label
}

// Text returns the current label text.
func (s *SignalLabel) Text() string {
	return s.text
}

// SetStyle sets the label style.
func (s *SignalLabel) SetStyle(style backend.Style) {
	s.style = style
}

// SetAlignment sets text alignment.
func (s *SignalLabel) SetAlignment(align Alignment) {
	s.alignment = align
}

// Bind switches updates onto the app scheduler.
func (s *SignalLabel) Bind(services runtime.Services) {
	if sched := services.Scheduler(); sched != nil {
		s.subs.SetScheduler(sched)
	}
}

// Measure returns the size needed for the label.
func (s *SignalLabel) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{
		Width:  runewidth.StringWidth(s.text),
		Height: 1,
	})
}

// Render draws the label.
func (s *SignalLabel) Render(ctx runtime.RenderContext) {
	if s.bounds.Empty() {
		return
	}
	WriteLine(ctx.Buffer, s.bounds, 0, s.text, s.style, s.alignment)
}

// Mount subscribes to source changes.
func (s *SignalLabel) Mount() {
	s.mounted = true
	s.subs.Clear()
	if s.source == nil {
		s.text = ""
		return
	}
	s.text = s.source.Get()
	s.subs.Observe(s.source, s.refresh)
}

// Unmount unsubscribes from source changes.
func (s *SignalLabel) Unmount() {
	s.mounted = false
	s.subs.Clear()
}

func (s *SignalLabel) refresh() {
	if !s.mounted || s.source == nil {
		return
	}
	s.text = s.source.Get()
}
