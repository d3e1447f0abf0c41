// Package viewmodel owns the observable book collection and the loads that
// replace it.
package viewmodel

import (
	"context"
	"errors"
	"sync"

	"github.com/odvcencio/furry-shelf/catalog"
	"github.com/odvcencio/furry-shelf/state"
)

// ErrClosed is reported when Load is called after Close.
var ErrClosed = errors.New("viewmodel: closed")

const (
	logMsgLoadStarted   = "book load started"
	logMsgLoadFinished  = "book load finished"
	logMsgLoadFailed    = "book load failed"
	logMsgLoadStale     = "stale book load dropped"
	logMsgLoadAfterStop = "book load finished after close"
	logAttrRequest      = "request"
	logAttrCount        = "count"
	logAttrError        = "error"
)

// Logger receives load diagnostics. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config configures a BookList.
type Config struct {
	// Provider produces collections. Required.
	Provider catalog.Provider
	// Executor runs the provider call. Nil means state.DirectScheduler,
	// which makes Load synchronous.
	Executor state.Scheduler
	// DropStale discards a completion when a newer load has been issued.
	// Without it the last completion wins.
	DropStale bool
	Logger    Logger
}

// BookList holds the current collection for one list screen.
type BookList struct {
	books    *state.Live[catalog.Collection]
	status   *state.Signal[Status]
	provider catalog.Provider
	executor state.Scheduler
	stale    bool
	logger   Logger

	mu       sync.Mutex
	idle     *sync.Cond
	issued   uint64
	inflight int
	closed   bool
	subs     []*state.Subscription

	// results are applied one at a time by whichever completion arrives
	// while none is draining.
	results  []result
	draining bool
	outcome  Status
}

type result struct {
	request uint64
	books   catalog.Collection
	err     error
}

// New creates a holder with an absent collection.
func New(cfg Config) *BookList {
	executor := cfg.Executor
	if executor == nil {
		executor = state.DirectScheduler
	}
	logger := cfg.Logger
	if logger == nil {
		logger = nopLogger{}
	}
	status := state.NewSignal(Status{})
	status.SetEqualFunc(func(a, b Status) bool {
		return a.Phase == b.Phase && a.Count == b.Count && errors.Is(a.Err, b.Err) && errors.Is(b.Err, a.Err)
	})
	b := &BookList{
		books:    state.NewLive[catalog.Collection](),
		status:   status,
		provider: cfg.Provider,
		executor: executor,
		stale:    cfg.DropStale,
		logger:   logger,
	}
	b.idle = sync.NewCond(&b.mu)
	return b
}

// SetExecutor replaces the scheduler later loads run on. Nil makes loads
// synchronous.
func (b *BookList) SetExecutor(executor state.Scheduler) {
	if executor == nil {
		executor = state.DirectScheduler
	}
	b.mu.Lock()
	b.executor = executor
	b.mu.Unlock()
}

// Books exposes the collection for observation. Observers registered
// through it are disposed by Close.
func (b *BookList) Books() state.LiveReader[catalog.Collection] {
	return tracked{b}
}

// Status exposes the load status.
func (b *BookList) Status() state.Readable[Status] {
	return b.status
}

// Load fetches a fresh collection through the executor. It does not wait
// for the result; completion shows up in Books and Status.
//
// Overlapping loads race: the last to complete wins unless DropStale is
// set, in which case only the most recently issued load may publish.
// Status stays Loading while any load is in flight. A failed load leaves
// the current collection in place.
func (b *BookList) Load(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		b.status.Set(Status{Phase: Failed, Err: ErrClosed, Count: b.count()})
		return
	}
	b.issued++
	request := b.issued
	b.inflight++
	executor := b.executor
	b.mu.Unlock()

	b.status.Set(Status{Phase: Loading, Count: b.count()})
	b.logger.Debug(logMsgLoadStarted, logAttrRequest, request)
	executor.Schedule(func() {
		books, err := b.fetch(ctx)
		b.complete(result{request: request, books: books, err: err})
	})
}

// Wait blocks until no load is in flight. It may run alongside Load.
func (b *BookList) Wait() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for b.inflight > 0 {
		b.idle.Wait()
	}
}

// Close disposes every observer registered through Books and ignores
// loads that complete afterwards.
func (b *BookList) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	subs := b.subs
	b.subs = nil
	b.mu.Unlock()
	for _, sub := range subs {
		sub.Dispose()
	}
}

func (b *BookList) fetch(ctx context.Context) (catalog.Collection, error) {
	if b.provider == nil {
		return nil, errors.New("viewmodel: no provider")
	}
	return b.provider.FetchItems(ctx)
}

func (b *BookList) complete(r result) {
	b.mu.Lock()
	b.results = append(b.results, r)
	if b.draining {
		b.mu.Unlock()
		return
	}
	b.draining = true
	for len(b.results) > 0 {
		next := b.results[0]
		b.results = b.results[1:]
		closed, latest, busy := b.closed, b.issued, b.inflight > 1
		b.mu.Unlock()

		b.apply(next, closed, latest, busy)

		b.mu.Lock()
		b.inflight--
		if b.inflight == 0 {
			b.idle.Broadcast()
		}
	}
	b.draining = false
	b.mu.Unlock()
}

// apply publishes r. While other loads are in flight the status stays
// Loading; the last applied outcome is published once none are left.
func (b *BookList) apply(r result, closed bool, latest uint64, busy bool) {
	switch {
	case closed:
		b.logger.Debug(logMsgLoadAfterStop, logAttrRequest, r.request)
		return
	case b.stale && r.request < latest:
		b.logger.Info(logMsgLoadStale, logAttrRequest, r.request)
	case r.err != nil:
		b.logger.Warn(logMsgLoadFailed, logAttrRequest, r.request, logAttrError, r.err.Error())
		b.outcome = Status{Phase: Failed, Err: r.err, Count: b.count()}
	default:
		books := r.books
		if books == nil {
			books = catalog.Collection{}
		}
		b.books.Set(books)
		b.logger.Debug(logMsgLoadFinished, logAttrRequest, r.request, logAttrCount, len(books))
		b.outcome = Status{Phase: Loaded, Count: len(books)}
	}
	if busy {
		b.status.Set(Status{Phase: Loading, Count: b.count()})
		return
	}
	if b.outcome.Phase != Idle {
		b.status.Set(b.outcome)
	}
}

func (b *BookList) count() int {
	books, _ := b.books.Get()
	return len(books)
}

func (b *BookList) track(sub *state.Subscription) *state.Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		sub.Dispose()
		return sub
	}
	live := b.subs[:0]
	for _, existing := range b.subs {
		if !existing.Disposed() {
			live = append(live, existing)
		}
	}
	b.subs = append(live, sub)
	return sub
}

// tracked is the read-only face of the collection. Registrations made
// through it are remembered so Close can dispose them.
type tracked struct {
	b *BookList
}

func (t tracked) Get() (catalog.Collection, bool) {
	return t.b.books.Get()
}

func (t tracked) Observe(owner *state.Lifecycle, observer state.Observer[catalog.Collection]) *state.Subscription {
	return t.b.track(t.b.books.Observe(owner, observer))
}

func (t tracked) ObserveWithScheduler(owner *state.Lifecycle, scheduler state.Scheduler, observer state.Observer[catalog.Collection]) *state.Subscription {
	return t.b.track(t.b.books.ObserveWithScheduler(owner, scheduler, observer))
}

func (t tracked) ObserveForever(observer state.Observer[catalog.Collection]) *state.Subscription {
	return t.b.track(t.b.books.ObserveForever(observer))
}

func (t tracked) Subscribe(fn func()) func() {
	return t.b.track(t.b.books.ObserveForever(state.ObserverFunc[catalog.Collection](func(catalog.Collection) {
		if fn != nil {
			fn()
		}
	}))).Dispose
}

func (t tracked) SubscribeWithScheduler(scheduler state.Scheduler, fn func()) func() {
	return t.b.track(t.b.books.ObserveWithScheduler(nil, scheduler, state.ObserverFunc[catalog.Collection](func(catalog.Collection) {
		if fn != nil {
			fn()
		}
	}))).Dispose
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

var _ state.LiveReader[catalog.Collection] = tracked{}
