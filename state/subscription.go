package state

import (
	"sync"
	"sync/atomic"

	"github.com/oklog/ulid/v2"
)

// Subscription is the handle returned by Live.Observe.
// Disposing it stops delivery; Dispose is safe to call more than once.
type Subscription struct {
	id       ulid.ULID
	once     sync.Once
	disposed atomic.Bool
	release  func()
}

func newSubscription(release func()) *Subscription {
	return &Subscription{id: ulid.Make(), release: release}
}

// ID identifies the observer registration.
func (s *Subscription) ID() ulid.ULID {
	if s == nil {
		return ulid.ULID{}
	}
	return s.id
}

// Dispose stops delivery and releases the registration.
func (s *Subscription) Dispose() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.disposed.Store(true)
		if s.release != nil {
			s.release()
		}
	})
}

// Disposed reports whether the subscription no longer delivers.
func (s *Subscription) Disposed() bool {
	if s == nil {
		return true
	}
	return s.disposed.Load()
}
