package state

import (
	"reflect"
	"sync"
)

// Observer receives values delivered by a Live container.
type Observer[T any] interface {
	OnChanged(value T)
}

// ObserverFunc adapts a function into an Observer.
// Function values are not comparable, so registering the same ObserverFunc
// twice yields two subscriptions.
type ObserverFunc[T any] func(value T)

// OnChanged calls f.
func (f ObserverFunc[T]) OnChanged(value T) {
	if f != nil {
		f(value)
	}
}

type registration[T any] struct {
	owner     *Lifecycle
	scheduler Scheduler
	observer  Observer[T]
	sub       *Subscription
	seen      uint64
	pending   bool
	// delivering is set while a goroutine is inside deliver's loop for
	// this registration. Deliveries never overlap, so the last callback
	// always carries the latest value.
	delivering bool
	unwatch    func()
}

func (r *registration[T]) active() bool {
	if r.sub.Disposed() {
		return false
	}
	if r.owner == nil {
		return true
	}
	return r.owner.IsActive()
}

// Live holds a value that may be absent and delivers replacements to
// lifecycle-bound observers.
//
// Each observer sees the latest value: when several Sets land before a
// scheduled delivery runs, the delivery carries only the newest one.
type Live[T any] struct {
	mu      sync.Mutex
	value   T
	present bool
	version uint64
	regs    []*registration[T]
}

// NewLive creates an empty container.
func NewLive[T any]() *Live[T] {
	return &Live[T]{}
}

// NewLiveWith creates a container holding value.
func NewLiveWith[T any](value T) *Live[T] {
	return &Live[T]{value: value, present: true, version: 1}
}

// Get returns the current value and whether one is present.
func (l *Live[T]) Get() (T, bool) {
	if l == nil {
		var zero T
		return zero, false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, l.present
}

// Version reports how many values have been set.
func (l *Live[T]) Version() uint64 {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.version
}

// Set replaces the value and dispatches it to every active observer.
// It may be called from any goroutine; each observer's scheduler decides
// where its callback runs.
func (l *Live[T]) Set(value T) {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.value = value
	l.present = true
	l.version++
	due := make([]*registration[T], 0, len(l.regs))
	for _, reg := range l.regs {
		if reg.pending || !reg.active() {
			continue
		}
		reg.pending = true
		due = append(due, reg)
	}
	l.mu.Unlock()

	for _, reg := range due {
		l.dispatch(reg)
	}
}

// Clear drops the value without notifying observers.
func (l *Live[T]) Clear() {
	if l == nil {
		return
	}
	l.mu.Lock()
	var zero T
	l.value = zero
	l.present = false
	l.mu.Unlock()
}

// Observers returns the number of undisposed registrations.
func (l *Live[T]) Observers() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.regs)
}

// Observe registers observer for the lifetime of owner, delivering in the
// goroutine that calls Set.
//
// Registering an observer that is already registered for the same owner
// returns the existing subscription. Only comparable observers are
// matched: every ObserverFunc registration is a new subscription, as is
// every registration without an owner.
func (l *Live[T]) Observe(owner *Lifecycle, observer Observer[T]) *Subscription {
	return l.ObserveWithScheduler(owner, nil, observer)
}

// ObserveForever registers observer until the subscription is disposed.
func (l *Live[T]) ObserveForever(observer Observer[T]) *Subscription {
	return l.observe(nil, nil, observer)
}

// ObserveWithScheduler registers observer for the lifetime of owner and
// delivers through scheduler. A nil scheduler delivers synchronously;
// a Set that lands while the observer's callback is running is delivered
// by that callback's goroutine once it returns.
//
// If a value is already present it is delivered once as soon as owner is
// active. Registrations on a destroyed owner are returned already disposed.
func (l *Live[T]) ObserveWithScheduler(owner *Lifecycle, scheduler Scheduler, observer Observer[T]) *Subscription {
	if owner == nil {
		owner = NewLifecycle()
		owner.Activate()
	}
	return l.observe(owner, scheduler, observer)
}

func (l *Live[T]) observe(owner *Lifecycle, scheduler Scheduler, observer Observer[T]) *Subscription {
	if l == nil || observer == nil {
		sub := newSubscription(nil)
		sub.Dispose()
		return sub
	}
	if owner != nil && owner.IsDestroyed() {
		sub := newSubscription(nil)
		sub.Dispose()
		return sub
	}

	l.mu.Lock()
	if owner != nil {
		if existing := l.findLocked(owner, observer); existing != nil {
			l.mu.Unlock()
			return existing.sub
		}
	}
	reg := &registration[T]{
		owner:     owner,
		scheduler: scheduler,
		observer:  observer,
	}
	reg.sub = newSubscription(func() { l.remove(reg) })
	l.regs = append(l.regs, reg)
	l.mu.Unlock()

	if owner != nil {
		unwatch := owner.OnChange(func(next LifecycleState) {
			switch next {
			case LifecycleDestroyed:
				reg.sub.Dispose()
			case LifecycleActive:
				l.resume(reg)
			}
		})
		l.mu.Lock()
		if reg.sub.Disposed() {
			l.mu.Unlock()
			unwatch()
			return reg.sub
		}
		reg.unwatch = unwatch
		l.mu.Unlock()
	}
	l.resume(reg)
	return reg.sub
}

// Subscribe registers fn as a change listener with no owner.
func (l *Live[T]) Subscribe(fn func()) func() {
	return l.SubscribeWithScheduler(nil, fn)
}

// SubscribeWithScheduler registers fn as a change listener with no owner,
// delivering through scheduler.
func (l *Live[T]) SubscribeWithScheduler(scheduler Scheduler, fn func()) func() {
	if fn == nil {
		return func() {}
	}
	sub := l.observe(nil, scheduler, ObserverFunc[T](func(T) { fn() }))
	return sub.Dispose
}

func (l *Live[T]) findLocked(owner *Lifecycle, observer Observer[T]) *registration[T] {
	if !reflect.TypeOf(observer).Comparable() {
		return nil
	}
	for _, reg := range l.regs {
		if reg.owner != owner || reg.sub.Disposed() {
			continue
		}
		if reflect.TypeOf(reg.observer) != reflect.TypeOf(observer) {
			continue
		}
		if reg.observer == observer {
			return reg
		}
	}
	return nil
}

// resume delivers the current value to reg if it has not seen it yet.
func (l *Live[T]) resume(reg *registration[T]) {
	l.mu.Lock()
	if reg.pending || !reg.active() || !l.present || reg.seen >= l.version {
		l.mu.Unlock()
		return
	}
	reg.pending = true
	l.mu.Unlock()
	l.dispatch(reg)
}

func (l *Live[T]) dispatch(reg *registration[T]) {
	if reg.scheduler == nil {
		l.deliver(reg)
		return
	}
	reg.scheduler.Schedule(func() { l.deliver(reg) })
}

// deliver runs reg's callback until it has seen the current version.
// A delivery that finds another one in progress leaves the newer value
// to that loop.
func (l *Live[T]) deliver(reg *registration[T]) {
	l.mu.Lock()
	reg.pending = false
	if reg.delivering {
		l.mu.Unlock()
		return
	}
	reg.delivering = true
	for reg.active() && l.present && reg.seen < l.version {
		value := l.value
		reg.seen = l.version
		l.mu.Unlock()
		reg.observer.OnChanged(value)
		l.mu.Lock()
	}
	reg.delivering = false
	l.mu.Unlock()
}

func (l *Live[T]) remove(reg *registration[T]) {
	l.mu.Lock()
	for i, existing := range l.regs {
		if existing == reg {
			l.regs = append(l.regs[:i], l.regs[i+1:]...)
			break
		}
	}
	unwatch := reg.unwatch
	reg.unwatch = nil
	l.mu.Unlock()
	if unwatch != nil {
		unwatch()
	}
}
