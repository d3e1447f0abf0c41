package runtime

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/odvcencio/furry-shelf/backend"
	"github.com/odvcencio/furry-shelf/state"
	"github.com/odvcencio/furry-shelf/terminal"
)

// ErrNoBackend is returned by Run when the app has no backend.
var ErrNoBackend = errors.New("backend is required")

// UpdateFunc handles a message and returns true if a render is needed.
type UpdateFunc func(app *App, msg Message) bool

// CommandHandler handles commands the runtime does not know.
// Return true if the command requires a render.
type CommandHandler func(cmd Command) bool

// AppConfig configures a runtime App.
type AppConfig struct {
	Backend        backend.Backend
	Root           Widget
	Update         UpdateFunc
	CommandHandler CommandHandler
	MessageBuffer  int
	TickRate       time.Duration
	StateQueue     *state.Queue
	FlushPolicy    QueueFlushPolicy
}

// App runs a widget tree against a terminal backend.
//
// The loop goroutine is the UI context: widgets, state queue flushes and
// renders all happen there. Other goroutines reach it through Post or the
// StateScheduler.
type App struct {
	backend        backend.Backend
	screen         *Screen
	root           Widget
	update         UpdateFunc
	commandHandler CommandHandler
	messages       chan Message
	tickRate       time.Duration
	stateQueue     *state.Queue
	queueScheduler *QueueScheduler
	flushPolicy    QueueFlushPolicy
	invalidator    *Invalidator

	taskMu         sync.Mutex
	taskCtx        context.Context
	taskCancel     context.CancelFunc
	pendingEffects []Effect

	running atomic.Bool
	dirty   bool
	frames  atomic.Int64
}

// NewApp creates a new App from config.
func NewApp(cfg AppConfig) *App {
	bufferSize := cfg.MessageBuffer
	if bufferSize <= 0 {
		bufferSize = 128
	}
	queue := cfg.StateQueue
	if queue == nil {
		queue = state.NewQueue()
	}
	app := &App{
		backend:        cfg.Backend,
		root:           cfg.Root,
		update:         cfg.Update,
		commandHandler: cfg.CommandHandler,
		messages:       make(chan Message, bufferSize),
		tickRate:       cfg.TickRate,
		stateQueue:     queue,
		flushPolicy:    cfg.FlushPolicy,
	}
	app.queueScheduler = NewQueueScheduler(queue, app.tryPost)
	app.invalidator = NewInvalidator(app.tryPost)
	return app
}

// Screen returns the active screen, if initialized.
func (a *App) Screen() *Screen {
	return a.screen
}

// StateQueue returns the app's state queue.
func (a *App) StateQueue() *state.Queue {
	if a == nil {
		return nil
	}
	return a.stateQueue
}

// StateScheduler returns a scheduler that runs callbacks on the loop goroutine.
func (a *App) StateScheduler() state.Scheduler {
	if a == nil || a.queueScheduler == nil {
		return nil
	}
	return a.queueScheduler
}

// InvalidateScheduler returns a scheduler that invalidates the render pass.
func (a *App) InvalidateScheduler() state.Scheduler {
	if a == nil || a.invalidator == nil {
		return nil
	}
	return a.invalidator
}

// Invalidate requests a render pass.
func (a *App) Invalidate() {
	if a == nil || a.invalidator == nil {
		return
	}
	a.invalidator.Invalidate()
}

// Frames returns how many frames have been rendered.
func (a *App) Frames() int64 {
	return a.frames.Load()
}

// Spawn starts an effect using the app task context.
// If Run has not started, the effect is queued until start.
func (a *App) Spawn(effect Effect) {
	if a == nil || effect.Run == nil {
		return
	}
	a.taskMu.Lock()
	if a.taskCtx == nil {
		a.pendingEffects = append(a.pendingEffects, effect)
		a.taskMu.Unlock()
		return
	}
	ctx := a.taskCtx
	a.taskMu.Unlock()
	go effect.Run(ctx, a.tryPost)
}

// SetRoot swaps the root widget.
func (a *App) SetRoot(root Widget) {
	a.root = root
	if a.screen != nil {
		a.screen.SetRoot(root)
		a.dirty = true
	}
}

// Post sends a message to the event loop.
func (a *App) Post(msg Message) {
	_ = a.tryPost(msg)
}

// TryPost sends a message to the event loop without blocking.
func (a *App) TryPost(msg Message) bool {
	return a.tryPost(msg)
}

func (a *App) tryPost(msg Message) bool {
	if a == nil || a.messages == nil {
		return false
	}
	select {
	case a.messages <- msg:
		return true
	default:
		return false
	}
}

// Run starts the event loop until quit or context cancellation.
// The root is detached before Run returns, so hosts unsubscribe on exit.
func (a *App) Run(ctx context.Context) error {
	if a.backend == nil {
		return ErrNoBackend
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := a.backend.Init(); err != nil {
		return fmt.Errorf("init backend: %w", err)
	}
	defer a.backend.Fini()

	taskCtx, taskCancel := context.WithCancel(ctx)
	a.taskMu.Lock()
	a.taskCtx = taskCtx
	a.taskCancel = taskCancel
	pending := a.pendingEffects
	a.pendingEffects = nil
	a.taskMu.Unlock()
	defer a.cancelTasks()

	a.backend.HideCursor()
	w, h := a.backend.Size()
	a.screen = NewScreen(w, h)
	a.screen.SetServices(a.Services())
	if a.root != nil {
		a.screen.SetRoot(a.root)
	}
	defer a.screen.Close()

	if a.update == nil {
		a.update = DefaultUpdate
	}

	a.running.Store(true)
	a.dirty = true
	for _, effect := range pending {
		go effect.Run(taskCtx, a.tryPost)
	}

	go a.pollEvents()

	var ticks <-chan time.Time
	if a.tickRate > 0 {
		ticker := time.NewTicker(a.tickRate)
		defer ticker.Stop()
		ticks = ticker.C
	}

	for a.running.Load() {
		var msg Message
		select {
		case <-ctx.Done():
			a.running.Store(false)
		case msg = <-a.messages:
		case now := <-ticks:
			msg = TickMsg{Time: now}
		}
		if msg == nil || !a.running.Load() {
			continue
		}
		if a.update(a, msg) {
			a.dirty = true
		}
		if !a.running.Load() {
			continue
		}
		if a.flushQueueIfNeeded(msg) {
			a.dirty = true
		}
		if _, ok := msg.(InvalidateMsg); ok {
			a.invalidator.resetPending()
		}
		if a.dirty {
			a.render()
			a.dirty = false
		}
	}

	return ctx.Err()
}

// DefaultUpdate handles input messages and widget commands.
func DefaultUpdate(app *App, msg Message) bool {
	if app == nil || app.screen == nil {
		return false
	}
	switch m := msg.(type) {
	case ResizeMsg:
		app.screen.Resize(m.Width, m.Height)
		return true
	case QueueFlushMsg:
		return false
	case InvalidateMsg:
		return true
	default:
		return app.dispatchMessage(msg)
	}
}

func (a *App) dispatchMessage(msg Message) bool {
	if a == nil || a.screen == nil {
		return false
	}
	result := a.screen.HandleMessage(msg)
	dirty := result.Handled
	for _, cmd := range result.Commands {
		if a.handleCommand(cmd) {
			dirty = true
		}
	}
	return dirty
}

func (a *App) handleCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case Quit:
		a.running.Store(false)
		a.cancelTasks()
		return false
	case Refresh:
		if a.screen != nil {
			a.screen.Buffer().MarkAllDirty()
		}
		return true
	case Effect:
		a.Spawn(c)
		return false
	default:
		if a.commandHandler != nil {
			return a.commandHandler(cmd)
		}
		return false
	}
}

// ExecuteCommand runs a command through the app handler.
func (a *App) ExecuteCommand(cmd Command) bool {
	if a == nil {
		return false
	}
	return a.handleCommand(cmd)
}

func (a *App) pollEvents() {
	for a.running.Load() {
		ev := a.backend.PollEvent()
		if ev == nil {
			return
		}
		switch e := ev.(type) {
		case terminal.KeyEvent:
			a.Post(KeyMsg{Key: e.Key, Rune: e.Rune, Alt: e.Alt, Ctrl: e.Ctrl, Shift: e.Shift})
		case terminal.ResizeEvent:
			a.Post(ResizeMsg{Width: e.Width, Height: e.Height})
		}
	}
}

func (a *App) render() {
	if a.screen == nil {
		return
	}
	a.screen.Render()
	buf := a.screen.Buffer()
	if buf.IsDirty() {
		buf.ForEachDirtyCell(func(x, y int, cell Cell) {
			a.backend.SetContent(x, y, cell.Rune, nil, cell.Style)
		})
		buf.ClearDirty()
	}
	a.backend.Show()
	a.frames.Add(1)
}

func (a *App) context() context.Context {
	a.taskMu.Lock()
	defer a.taskMu.Unlock()
	if a.taskCtx == nil {
		return context.Background()
	}
	return a.taskCtx
}

func (a *App) cancelTasks() {
	a.taskMu.Lock()
	cancel := a.taskCancel
	a.taskMu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (a *App) flushQueueIfNeeded(msg Message) bool {
	if a == nil || a.stateQueue == nil {
		return false
	}
	if !a.flushPolicy.Flushes(msg) {
		return false
	}
	a.queueScheduler.resetPending()
	return a.stateQueue.Flush() > 0
}
