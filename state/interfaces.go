package state

// Readable exposes read-only reactive state.
type Readable[T any] interface {
	Get() T
	Subscribe(fn func()) func()
	SubscribeWithScheduler(scheduler Scheduler, fn func()) func()
}

// Writable exposes read/write reactive state.
type Writable[T any] interface {
	Readable[T]
	Set(value T) bool
	Update(fn func(T) T) bool
}

// LiveReader exposes a Live container to observers without write access.
// Only the owner of the underlying *Live may replace its value.
type LiveReader[T any] interface {
	Get() (T, bool)
	Observe(owner *Lifecycle, observer Observer[T]) *Subscription
	ObserveWithScheduler(owner *Lifecycle, scheduler Scheduler, observer Observer[T]) *Subscription
	ObserveForever(observer Observer[T]) *Subscription
	Subscribe(fn func()) func()
	SubscribeWithScheduler(scheduler Scheduler, fn func()) func()
}

// Subscribable emits change notifications.
type Subscribable interface {
	Subscribe(fn func()) func()
}

var (
	_ Writable[int]   = (*Signal[int])(nil)
	_ Readable[int]   = (*Computed[int])(nil)
	_ LiveReader[int] = (*Live[int])(nil)
)
