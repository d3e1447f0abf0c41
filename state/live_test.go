package state

import (
	"sync"
	"testing"
	"time"
)

type recorder[T any] struct {
	mu     sync.Mutex
	values []T
}

func (r *recorder[T]) OnChanged(value T) {
	r.mu.Lock()
	r.values = append(r.values, value)
	r.mu.Unlock()
}

func (r *recorder[T]) snapshot() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.values...)
}

func activeLifecycle() *Lifecycle {
	owner := NewLifecycle()
	owner.Activate()
	return owner
}

func TestLive_StartsAbsent(t *testing.T) {
	live := NewLive[[]string]()
	if value, ok := live.Get(); ok || value != nil {
		t.Fatalf("expected absent value, got %v ok=%v", value, ok)
	}

	live.Set([]string{})
	value, ok := live.Get()
	if !ok || value == nil || len(value) != 0 {
		t.Fatalf("expected present empty value, got %v ok=%v", value, ok)
	}

	live.Clear()
	if _, ok := live.Get(); ok {
		t.Fatalf("expected clear to make value absent")
	}
}

func TestLive_TwoObserversOneSet(t *testing.T) {
	live := NewLive[[]string]()
	owner := activeLifecycle()
	a := &recorder[[]string]{}
	b := &recorder[[]string]{}

	live.Observe(owner, a)
	live.Observe(owner, b)
	live.Set([]string{"item"})

	for name, rec := range map[string]*recorder[[]string]{"a": a, "b": b} {
		got := rec.snapshot()
		if len(got) != 1 {
			t.Fatalf("observer %s: expected 1 notification, got %d", name, len(got))
		}
		if len(got[0]) != 1 || got[0][0] != "item" {
			t.Fatalf("observer %s: unexpected value %v", name, got[0])
		}
	}
}

func TestLive_LateObserverGetsCurrentValue(t *testing.T) {
	live := NewLive[int]()
	live.Set(7)

	rec := &recorder[int]{}
	live.Observe(activeLifecycle(), rec)

	got := rec.snapshot()
	if len(got) != 1 || got[0] != 7 {
		t.Fatalf("expected immediate delivery of 7, got %v", got)
	}
}

func TestLive_NoDeliveryWhenAbsent(t *testing.T) {
	live := NewLive[int]()
	rec := &recorder[int]{}
	live.Observe(activeLifecycle(), rec)
	if got := rec.snapshot(); len(got) != 0 {
		t.Fatalf("expected no delivery while absent, got %v", got)
	}
}

func TestLive_TeardownStopsDelivery(t *testing.T) {
	live := NewLive[string]()
	owner := activeLifecycle()
	rec := &recorder[string]{}

	sub := live.Observe(owner, rec)
	owner.Destroy()
	live.Set("x")

	if got := rec.snapshot(); len(got) != 0 {
		t.Fatalf("expected zero notifications after teardown, got %v", got)
	}
	if !sub.Disposed() {
		t.Fatalf("expected subscription disposed on teardown")
	}
	if live.Observers() != 0 {
		t.Fatalf("expected registration removed, got %d", live.Observers())
	}
}

func TestLive_TeardownDropsQueuedDelivery(t *testing.T) {
	live := NewLive[string]()
	owner := activeLifecycle()
	queue := NewQueue()
	rec := &recorder[string]{}

	live.ObserveWithScheduler(owner, queue, rec)
	live.Set("x")
	owner.Destroy()
	queue.Flush()

	if got := rec.snapshot(); len(got) != 0 {
		t.Fatalf("expected queued delivery to be dropped, got %v", got)
	}
}

func TestLive_InactiveOwnerWaitsForActivation(t *testing.T) {
	live := NewLive[int]()
	owner := NewLifecycle()
	rec := &recorder[int]{}

	live.Set(1)
	live.Observe(owner, rec)
	live.Set(2)
	if got := rec.snapshot(); len(got) != 0 {
		t.Fatalf("expected no delivery before activation, got %v", got)
	}

	owner.Activate()
	got := rec.snapshot()
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("expected latest value 2 on activation, got %v", got)
	}

	owner.Deactivate()
	live.Set(3)
	live.Set(4)
	owner.Activate()
	owner.Deactivate()
	owner.Activate()

	got = rec.snapshot()
	if len(got) != 2 || got[1] != 4 {
		t.Fatalf("expected only latest value 4 after reactivation, got %v", got)
	}
}

func TestLive_QueuedDeliveriesCoalesce(t *testing.T) {
	live := NewLive[int]()
	queue := NewQueue()
	rec := &recorder[int]{}

	live.ObserveWithScheduler(activeLifecycle(), queue, rec)
	for i := 1; i <= 5; i++ {
		live.Set(i)
	}
	if got := rec.snapshot(); len(got) != 0 {
		t.Fatalf("expected delivery to wait for flush, got %v", got)
	}
	if flushed := queue.Flush(); flushed != 1 {
		t.Fatalf("expected a single coalesced delivery, got %d", flushed)
	}
	got := rec.snapshot()
	if len(got) != 1 || got[0] != 5 {
		t.Fatalf("expected final value 5, got %v", got)
	}
}

func TestLive_DuplicateRegistrationIsIdempotent(t *testing.T) {
	live := NewLive[int]()
	owner := activeLifecycle()
	rec := &recorder[int]{}

	first := live.Observe(owner, rec)
	second := live.Observe(owner, rec)
	if first != second {
		t.Fatalf("expected same subscription for duplicate registration")
	}

	live.Set(1)
	if got := rec.snapshot(); len(got) != 1 {
		t.Fatalf("expected one delivery, got %v", got)
	}

	other := activeLifecycle()
	if third := live.Observe(other, rec); third == first {
		t.Fatalf("expected distinct subscription for a different owner")
	}
}

func TestLive_ObserverFuncRegistersEachTime(t *testing.T) {
	live := NewLive[int]()
	owner := activeLifecycle()
	calls := 0
	fn := ObserverFunc[int](func(int) { calls++ })

	a := live.Observe(owner, fn)
	b := live.Observe(owner, fn)
	if a.ID() == b.ID() {
		t.Fatalf("expected distinct subscription ids")
	}
	live.Set(1)
	if calls != 2 {
		t.Fatalf("expected both registrations to fire, got %d", calls)
	}
}

func TestLive_DestroyedOwnerRegistersDisposed(t *testing.T) {
	live := NewLiveWith(1)
	owner := NewLifecycle()
	owner.Destroy()
	rec := &recorder[int]{}

	sub := live.Observe(owner, rec)
	if !sub.Disposed() {
		t.Fatalf("expected disposed subscription")
	}
	if got := rec.snapshot(); len(got) != 0 {
		t.Fatalf("expected no delivery, got %v", got)
	}
}

func TestLive_DisposeStopsDelivery(t *testing.T) {
	live := NewLive[int]()
	rec := &recorder[int]{}
	sub := live.ObserveForever(rec)

	live.Set(1)
	sub.Dispose()
	sub.Dispose()
	live.Set(2)

	got := rec.snapshot()
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected only the first value, got %v", got)
	}
}

func TestLive_FinalValueDeliveredAcrossGoroutines(t *testing.T) {
	live := NewLive[int]()
	queue := NewQueue()
	rec := &recorder[int]{}
	live.ObserveWithScheduler(activeLifecycle(), queue, rec)

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			live.Set(v)
		}(i)
	}
	wg.Wait()
	live.Set(100)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		queue.Flush()
		got := rec.snapshot()
		if len(got) > 0 && got[len(got)-1] == 100 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("expected final value 100 to be delivered, got %v", rec.snapshot())
}

func TestLive_SetFromCallbackDeliversLatest(t *testing.T) {
	live := NewLive[int]()
	var got []int
	live.Observe(activeLifecycle(), ObserverFunc[int](func(v int) {
		got = append(got, v)
		if v < 3 {
			live.Set(v + 1)
		}
	}))

	live.Set(1)
	if len(got) != 3 || got[2] != 3 {
		t.Fatalf("expected deliveries 1 2 3, got %v", got)
	}
	if v, _ := live.Get(); v != 3 {
		t.Fatalf("expected value 3, got %d", v)
	}
}

func TestLive_RacingSetsEndOnCurrentValue(t *testing.T) {
	live := NewLive[int]()
	var mu sync.Mutex
	var last int
	inside, overlapped := 0, false
	live.Observe(activeLifecycle(), ObserverFunc[int](func(v int) {
		mu.Lock()
		inside++
		if inside > 1 {
			overlapped = true
		}
		mu.Unlock()
		time.Sleep(100 * time.Microsecond)
		mu.Lock()
		last = v
		inside--
		mu.Unlock()
	}))

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			live.Set(v)
		}(i)
	}
	wg.Wait()

	want, _ := live.Get()
	mu.Lock()
	defer mu.Unlock()
	if overlapped {
		t.Fatal("expected callbacks for one observer never to overlap")
	}
	if last != want {
		t.Fatalf("expected observer to end on %d, got %d", want, last)
	}
}

func TestLive_SubscribeCallback(t *testing.T) {
	live := NewLive[string]()
	calls := 0
	unsub := live.Subscribe(func() { calls++ })

	live.Set("a")
	unsub()
	live.Set("b")
	if calls != 1 {
		t.Fatalf("expected 1 callback, got %d", calls)
	}
}
