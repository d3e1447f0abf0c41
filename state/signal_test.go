package state

import "testing"

func TestSignal_SetAndSubscribe(t *testing.T) {
	sig := NewSignal("idle")
	calls := 0

	unsub := sig.Subscribe(func() {
		calls++
	})

	if calls != 0 {
		t.Fatalf("expected no calls before set, got %d", calls)
	}
	if !sig.Set("loading") {
		t.Fatalf("expected set to report change")
	}
	if calls != 1 {
		t.Fatalf("expected 1 call after set, got %d", calls)
	}
	if sig.Version() != 1 {
		t.Fatalf("expected version 1, got %d", sig.Version())
	}

	unsub()
	unsub()
	sig.Set("loaded")
	if calls != 1 {
		t.Fatalf("expected no calls after unsubscribe, got %d", calls)
	}
}

func TestSignal_SetEqualFunc(t *testing.T) {
	sig := NewSignal(5)
	sig.SetEqualFunc(EqualComparable[int])

	if sig.Set(5) {
		t.Fatalf("expected set of equal value to report no change")
	}
	if sig.Version() != 0 {
		t.Fatalf("expected suppressed set to keep version 0, got %d", sig.Version())
	}
	if !sig.Set(6) {
		t.Fatalf("expected set of new value to report change")
	}
}

func TestSignal_Update(t *testing.T) {
	sig := NewSignal(1)
	sig.SetEqualFunc(EqualComparable[int])

	if !sig.Update(func(v int) int { return v + 1 }) {
		t.Fatalf("expected update to report change")
	}
	if sig.Get() != 2 {
		t.Fatalf("expected updated value 2, got %d", sig.Get())
	}
	if sig.Update(func(v int) int { return v }) {
		t.Fatalf("expected update of equal value to report no change")
	}
	if sig.Update(nil) {
		t.Fatalf("expected nil update to report no change")
	}
}

func TestSignal_SubscribeWithScheduler(t *testing.T) {
	sig := NewSignal(1)
	queue := NewQueue()
	calls := 0

	sig.SubscribeWithScheduler(queue, func() {
		calls++
	})

	sig.Set(2)
	if calls != 0 {
		t.Fatalf("expected callback to be queued, got %d", calls)
	}
	if flushed := queue.Flush(); flushed != 1 {
		t.Fatalf("expected 1 callback flushed, got %d", flushed)
	}
	if calls != 1 {
		t.Fatalf("expected callback after flush, got %d", calls)
	}
}

func TestSignal_NilReceiver(t *testing.T) {
	var sig *Signal[int]
	if sig.Get() != 0 || sig.Set(1) || sig.Version() != 0 {
		t.Fatalf("expected nil signal to be inert")
	}
	sig.Subscribe(func() {})()
}
