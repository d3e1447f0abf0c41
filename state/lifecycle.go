package state

import "sync"

// LifecycleState is the phase of a Lifecycle.
type LifecycleState int

const (
	// LifecycleInitialized is the state of a new lifecycle that has not been shown yet.
	LifecycleInitialized LifecycleState = iota
	// LifecycleActive means observers bound to the lifecycle receive values.
	LifecycleActive
	// LifecycleInactive pauses delivery; missed values arrive on reactivation.
	LifecycleInactive
	// LifecycleDestroyed is terminal. Bound subscriptions are disposed.
	LifecycleDestroyed
)

func (s LifecycleState) String() string {
	switch s {
	case LifecycleInitialized:
		return "initialized"
	case LifecycleActive:
		return "active"
	case LifecycleInactive:
		return "inactive"
	case LifecycleDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Lifecycle is the handle a host surface hands to Live.Observe.
// It gates delivery while inactive and revokes it on Destroy.
type Lifecycle struct {
	mu        sync.Mutex
	state     LifecycleState
	listeners map[int]func(LifecycleState)
	next      int
}

// NewLifecycle creates a lifecycle in the initialized state.
func NewLifecycle() *Lifecycle {
	return &Lifecycle{}
}

// State returns the current phase.
func (l *Lifecycle) State() LifecycleState {
	if l == nil {
		return LifecycleDestroyed
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// IsActive reports whether bound observers may currently receive values.
func (l *Lifecycle) IsActive() bool {
	return l.State() == LifecycleActive
}

// IsDestroyed reports whether the lifecycle has been torn down.
func (l *Lifecycle) IsDestroyed() bool {
	return l.State() == LifecycleDestroyed
}

// Activate marks the owner as shown.
func (l *Lifecycle) Activate() {
	l.transition(LifecycleActive)
}

// Deactivate marks the owner as hidden without tearing it down.
func (l *Lifecycle) Deactivate() {
	l.transition(LifecycleInactive)
}

// Destroy tears the owner down. Listeners are released afterwards.
func (l *Lifecycle) Destroy() {
	l.transition(LifecycleDestroyed)
}

// OnChange registers a listener for state transitions.
// Listeners run synchronously in the goroutine that changed the state.
// Registering on a destroyed lifecycle invokes fn once with LifecycleDestroyed.
func (l *Lifecycle) OnChange(fn func(LifecycleState)) func() {
	if l == nil || fn == nil {
		return func() {}
	}
	l.mu.Lock()
	if l.state == LifecycleDestroyed {
		l.mu.Unlock()
		fn(LifecycleDestroyed)
		return func() {}
	}
	if l.listeners == nil {
		l.listeners = make(map[int]func(LifecycleState))
	}
	id := l.next
	l.next++
	l.listeners[id] = fn
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.listeners, id)
			l.mu.Unlock()
		})
	}
}

func (l *Lifecycle) transition(next LifecycleState) {
	if l == nil {
		return
	}
	l.mu.Lock()
	if l.state == next || l.state == LifecycleDestroyed {
		l.mu.Unlock()
		return
	}
	l.state = next
	listeners := make([]func(LifecycleState), 0, len(l.listeners))
	for _, fn := range l.listeners {
		listeners = append(listeners, fn)
	}
	if next == LifecycleDestroyed {
		l.listeners = nil
	}
	l.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
}
