package widgets

import (
	"github.com/odvcencio/furry-shelf/runtime"
	"github.com/odvcencio/furry-shelf/state"
)

// RecyclerAdapter feeds a RecyclerView. S is the reusable slot type; the
// view creates a bounded pool of slots and rebinds them as it scrolls.
type RecyclerAdapter[S any] interface {
	// Count returns the number of items. It is re-read after every change.
	Count() int
	// CreateSlot makes a new empty slot for the pool.
	CreateSlot() S
	// Bind fills slot with the item at position.
	Bind(slot S, position int)
	// RenderSlot draws a bound slot.
	RenderSlot(slot S, selected bool, ctx runtime.RenderContext)
	// SlotHeight is the number of rows each slot occupies.
	SlotHeight() int
	// Observable reports data set changes to attached views.
	Observable() *DataObservable
}

// DataObservable broadcasts "the data set changed" to attached views.
// Every notification means a full refresh.
type DataObservable struct {
	changes *state.Signal[uint64]
}

// NewDataObservable creates an observable with no listeners.
func NewDataObservable() *DataObservable {
	return &DataObservable{changes: state.NewSignal[uint64](0)}
}

// NotifyDataSetChanged tells every listener to re-read the adapter.
func (o *DataObservable) NotifyDataSetChanged() {
	if o == nil {
		return
	}
	o.changes.Update(func(n uint64) uint64 { return n + 1 })
}

// Changes returns how many notifications have been sent.
func (o *DataObservable) Changes() uint64 {
	if o == nil {
		return 0
	}
	return o.changes.Get()
}

// Subscribe registers a listener for data set changes.
func (o *DataObservable) Subscribe(fn func()) func() {
	if o == nil {
		return func() {}
	}
	return o.changes.Subscribe(fn)
}

// SubscribeWithScheduler registers a listener delivered through scheduler.
func (o *DataObservable) SubscribeWithScheduler(scheduler state.Scheduler, fn func()) func() {
	if o == nil {
		return func() {}
	}
	return o.changes.SubscribeWithScheduler(scheduler, fn)
}

// AdapterBase supplies the Observable half of RecyclerAdapter.
// Embed it and call NotifyDataSetChanged when the data is replaced.
type AdapterBase struct {
	observable *DataObservable
}

// Observable returns the adapter's change broadcaster.
func (a *AdapterBase) Observable() *DataObservable {
	if a.observable == nil {
		a.observable = NewDataObservable()
	}
	return a.observable
}

// NotifyDataSetChanged refreshes every attached view.
func (a *AdapterBase) NotifyDataSetChanged() {
	a.Observable().NotifyDataSetChanged()
}

var _ state.Subscribable = (*DataObservable)(nil)
