package runtime

import (
	"sync/atomic"

	"github.com/odvcencio/furry-shelf/state"
)

// wakeup posts a single message per loop iteration. Repeat requests before
// the loop consumes the message are folded into the first one.
type wakeup struct {
	post    func(Message) bool
	msg     Message
	pending atomic.Bool
}

func (w *wakeup) request() {
	if w == nil || w.post == nil {
		return
	}
	if !w.pending.CompareAndSwap(false, true) {
		return
	}
	if !w.post(w.msg) {
		w.pending.Store(false)
	}
}

func (w *wakeup) resetPending() {
	if w != nil {
		w.pending.Store(false)
	}
}

// QueueScheduler parks callbacks on a state queue and wakes the loop so it
// flushes them. Observers registered with it run on the loop goroutine no
// matter which goroutine produced the value.
type QueueScheduler struct {
	queue *state.Queue
	wake  wakeup
}

// NewQueueScheduler wires a queue to a post function.
func NewQueueScheduler(queue *state.Queue, post func(Message) bool) *QueueScheduler {
	if queue == nil {
		queue = state.NewQueue()
	}
	return &QueueScheduler{
		queue: queue,
		wake:  wakeup{post: post, msg: QueueFlushMsg{}},
	}
}

// Schedule enqueues fn and asks the loop for a flush.
func (s *QueueScheduler) Schedule(fn func()) {
	if s == nil || fn == nil {
		return
	}
	s.queue.Schedule(fn)
	s.wake.request()
}

// Queue returns the underlying queue.
func (s *QueueScheduler) Queue() *state.Queue {
	if s == nil {
		return nil
	}
	return s.queue
}

func (s *QueueScheduler) resetPending() {
	if s != nil {
		s.wake.resetPending()
	}
}

// Invalidator asks the loop for a render pass.
type Invalidator struct {
	wake wakeup
}

// NewInvalidator creates an invalidator wired to a post function.
func NewInvalidator(post func(Message) bool) *Invalidator {
	return &Invalidator{wake: wakeup{post: post, msg: InvalidateMsg{}}}
}

// Invalidate requests a render pass.
func (i *Invalidator) Invalidate() {
	if i != nil {
		i.wake.request()
	}
}

// Schedule runs fn in place, then requests a render pass.
func (i *Invalidator) Schedule(fn func()) {
	if fn == nil {
		return
	}
	fn()
	i.Invalidate()
}

func (i *Invalidator) resetPending() {
	if i != nil {
		i.wake.resetPending()
	}
}
