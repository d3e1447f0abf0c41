package booklist

import (
	"fmt"

	"github.com/odvcencio/furry-shelf/runtime"
	"github.com/odvcencio/furry-shelf/state"
	"github.com/odvcencio/furry-shelf/terminal"
	"github.com/odvcencio/furry-shelf/theme"
	"github.com/odvcencio/furry-shelf/viewmodel"
	"github.com/odvcencio/furry-shelf/widgets"
)

// Options configures a View.
type Options struct {
	Title       string
	Placeholder string
	Markdown    bool
	Theme       theme.Theme
	// LoadOnMount starts a load the first time the view is mounted.
	LoadOnMount bool
	// Async runs loads as app tasks once the view is bound to an app.
	Async bool
}

// View hosts the book list. It observes the collection while mounted and
// stops observing when torn down.
type View struct {
	widgets.Component
	vm      *viewmodel.BookList
	adapter *Adapter
	list    *widgets.RecyclerView[*Slot]
	header  *widgets.SignalLabel
	help    *Help
	summary *state.Computed[string]
	theme   theme.Theme
	sub     *state.Subscription
	opts    Options
	loaded  bool
}

// NewView creates a view over vm.
func NewView(vm *viewmodel.BookList, opts Options) *View {
	th := opts.Theme
	if th.Name == "" {
		th = theme.Default()
	}
	if opts.Title == "" {
		opts.Title = "Books"
	}
	adapter := NewAdapter(AdapterOptions{
		Placeholder: opts.Placeholder,
		Markdown:    opts.Markdown,
		Theme:       th,
	})
	list := widgets.NewRecyclerView[*Slot](adapter)
	list.SetEmptyText("No books")
	list.SetStyle(th.Base)

	status := vm.Status()
	summary := state.NewComputed(func() string {
		return Summary(opts.Title, status.Get())
	}, status)
	header := widgets.NewSignalLabel(summary, nil)
	header.SetStyle(th.Header)

	return &View{
		vm:      vm,
		adapter: adapter,
		list:    list,
		header:  header,
		help:    NewHelp(th),
		summary: summary,
		theme:   th,
		opts:    opts,
	}
}

// Summary is the header line for a load status.
func Summary(title string, s viewmodel.Status) string {
	switch s.Phase {
	case viewmodel.Loading:
		return title + " (loading)"
	case viewmodel.Loaded:
		if s.Count == 1 {
			return title + " (1 book)"
		}
		return fmt.Sprintf("%s (%d books)", title, s.Count)
	case viewmodel.Failed:
		return fmt.Sprintf("%s (error: %v)", title, s.Err)
	default:
		return title
	}
}

// Adapter returns the list adapter.
func (v *View) Adapter() *Adapter {
	return v.adapter
}

// List returns the recycler.
func (v *View) List() *widgets.RecyclerView[*Slot] {
	return v.list
}

// Header returns the status label.
func (v *View) Header() *widgets.SignalLabel {
	return v.header
}

// Subscription returns the active collection subscription, or nil when
// the view is not mounted.
func (v *View) Subscription() *state.Subscription {
	return v.sub
}

// ChildWidgets returns the header and list.
func (v *View) ChildWidgets() []runtime.Widget {
	return []runtime.Widget{v.header, v.list}
}

// Measure fills the available space.
func (v *View) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.MaxSize()
}

// Layout gives the header one row and the list the rest.
func (v *View) Layout(bounds runtime.Rect) {
	v.Component.Layout(bounds)
	top, rest := bounds.SplitTop(1)
	v.header.Layout(top)
	if rest.Height > 0 {
		_, rest = rest.SplitTop(1)
	}
	v.list.Layout(rest)
}

// Render draws the header and list.
func (v *View) Render(ctx runtime.RenderContext) {
	ctx.Clear(v.theme.Base)
	v.header.Render(ctx)
	v.list.Render(ctx)
}

// Help returns the key overlay.
func (v *View) Help() *Help {
	return v.help
}

// Bind takes the app services. With Async set, loads become app tasks.
func (v *View) Bind(services runtime.Services) {
	v.Component.Bind(services)
	if v.opts.Async {
		v.vm.SetExecutor(services.TaskScheduler())
	}
}

// Unbind drops the app services. Later loads run in the caller.
func (v *View) Unbind() {
	if v.opts.Async {
		v.vm.SetExecutor(nil)
	}
	v.Component.Unbind()
}

// HandleMessage lets the list navigate, then handles the view's keys.
func (v *View) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if result := v.list.HandleMessage(msg); result.Handled {
		return result
	}
	key, ok := msg.(runtime.KeyMsg)
	if !ok {
		return runtime.Unhandled()
	}
	switch {
	case key.Key == terminal.KeyCtrlC, key.Key == terminal.KeyRune && key.Rune == 'q':
		return runtime.WithCommand(runtime.Quit{})
	case key.Key == terminal.KeyRune && key.Rune == 'r':
		v.Reload()
		return runtime.Handled()
	case key.Key == terminal.KeyRune && key.Rune == '?':
		return runtime.WithCommand(runtime.PushOverlay{Widget: v.help})
	case key.Key == terminal.KeyCtrlL:
		return runtime.WithCommand(runtime.Refresh{})
	}
	return runtime.Unhandled()
}

// Reload asks the view model for a fresh collection.
func (v *View) Reload() {
	v.vm.Load(v.Services.Context())
}

// Mount activates the view's lifecycle and observes the collection.
// Deliveries run on the app loop when the view is bound to an app.
func (v *View) Mount() {
	owner := v.Activate()
	v.sub = v.vm.Books().ObserveWithScheduler(owner, v.Services.Scheduler(), v.adapter)
	if v.opts.LoadOnMount && !v.loaded {
		v.loaded = true
		v.Reload()
	}
}

// Unmount destroys the lifecycle, which disposes the subscription.
// Later collection changes never reach the adapter.
func (v *View) Unmount() {
	v.Destroy()
	v.sub = nil
}

// Close stops the header from following the view model.
func (v *View) Close() {
	v.summary.Stop()
}

var (
	_ runtime.Widget        = (*View)(nil)
	_ runtime.ChildProvider = (*View)(nil)
	_ runtime.Mountable     = (*View)(nil)
	_ runtime.Bindable      = (*View)(nil)
	_ runtime.Unbindable    = (*View)(nil)
)
