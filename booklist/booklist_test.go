package booklist

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/odvcencio/furry-shelf/backend/sim"
	"github.com/odvcencio/furry-shelf/catalog"
	"github.com/odvcencio/furry-shelf/runtime"
	"github.com/odvcencio/furry-shelf/state"
	"github.com/odvcencio/furry-shelf/terminal"
	"github.com/odvcencio/furry-shelf/theme"
	"github.com/odvcencio/furry-shelf/viewmodel"
	"github.com/odvcencio/furry-shelf/widgets"
)

func loadedModel(t *testing.T, provider catalog.Provider) *viewmodel.BookList {
	t.Helper()
	vm := viewmodel.New(viewmodel.Config{Provider: provider})
	vm.Load(context.Background())
	return vm
}

func observedAdapter(vm *viewmodel.BookList, opts AdapterOptions) *Adapter {
	adapter := NewAdapter(opts)
	vm.Books().ObserveForever(adapter)
	return adapter
}

func TestAdapter_CountAndBind(t *testing.T) {
	vm := loadedModel(t, catalog.Reference())
	adapter := observedAdapter(vm, AdapterOptions{})

	if got := adapter.Count(); got != 2 {
		t.Fatalf("expected count 2, got %d", got)
	}
	slot := adapter.CreateSlot()
	adapter.Bind(slot, 0)
	if slot.Title != "The Alchemist" || slot.Author != "Paulo Coelho" {
		t.Fatalf("unexpected slot %+v", slot)
	}
	if slot.Description != "A magical story about following your dreams" {
		t.Fatalf("unexpected description %q", slot.Description)
	}

	adapter.Bind(slot, 1)
	if slot.Title != "To Kill a Mockingbird" || slot.Author != "Harper Lee" {
		t.Fatalf("expected slot reused for second book, got %+v", slot)
	}
}

func TestAdapter_CountZeroWhileAbsent(t *testing.T) {
	vm := viewmodel.New(viewmodel.Config{Provider: catalog.Reference()})
	adapter := observedAdapter(vm, AdapterOptions{})
	if got := adapter.Count(); got != 0 {
		t.Fatalf("expected count 0 before load, got %d", got)
	}
}

func TestAdapter_BindOutOfRangePanics(t *testing.T) {
	vm := loadedModel(t, catalog.Reference())
	adapter := observedAdapter(vm, AdapterOptions{})

	for _, pos := range []int{-1, 2} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic binding position %d", pos)
				}
			}()
			adapter.Bind(adapter.CreateSlot(), pos)
		}()
	}
}

func TestAdapter_PlaceholderForAbsentFields(t *testing.T) {
	vm := loadedModel(t, catalog.NewStaticProvider(catalog.Book{Title: catalog.Text("Untitled?")}))
	adapter := observedAdapter(vm, AdapterOptions{Placeholder: "-"})

	slot := adapter.CreateSlot()
	adapter.Bind(slot, 0)
	if slot.Title != "Untitled?" || slot.Author != "-" || slot.Description != "-" {
		t.Fatalf("unexpected slot %+v", slot)
	}

	plain := observedAdapter(vm, AdapterOptions{})
	plain.Bind(slot, 0)
	if slot.Author != "" {
		t.Fatalf("expected empty default placeholder, got %q", slot.Author)
	}
}

func TestAdapter_MarkdownDescription(t *testing.T) {
	book := catalog.NewBook("T", "A", "**Bold** and _em_ text\nwith [a link](https://example.com) and `code`")
	vm := loadedModel(t, catalog.NewStaticProvider(book))
	adapter := observedAdapter(vm, AdapterOptions{Markdown: true})

	slot := adapter.CreateSlot()
	adapter.Bind(slot, 0)
	if want := "Bold and em text with a link and code"; slot.Description != want {
		t.Fatalf("description = %q, want %q", slot.Description, want)
	}
}

func TestPlainText(t *testing.T) {
	cases := map[string]string{
		"":                     "",
		"plain":                "plain",
		"# Heading\n\nBody":    "Heading Body",
		"- one\n- two":         "one two",
		"<b>html</b> text":     "html text",
		"```\nfenced\n```\nok": "fenced ok",
	}
	for in, want := range cases {
		if got := PlainText(in); got != want {
			t.Fatalf("PlainText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAdapter_OnChangedNotifiesViews(t *testing.T) {
	vm := loadedModel(t, catalog.Reference())
	adapter := observedAdapter(vm, AdapterOptions{})
	notified := 0
	unsub := adapter.Observable().Subscribe(func() { notified++ })
	defer unsub()

	adapter.OnChanged(nil)
	if notified != 1 || adapter.Changes() != 1 {
		t.Fatalf("expected one notification, got notified=%d changes=%d", notified, adapter.Changes())
	}
}

func TestAdapter_SnapshotHoldsUntilDelivery(t *testing.T) {
	var shelf catalog.Collection
	for i := range 10 {
		shelf = append(shelf, catalog.NewBook(fmt.Sprintf("Book %d", i), "", ""))
	}
	next := shelf
	vm := viewmodel.New(viewmodel.Config{Provider: catalog.FuncProvider(func(context.Context) (catalog.Collection, error) {
		return next, nil
	})})
	queue := state.NewQueue()
	owner := state.NewLifecycle()
	owner.Activate()
	adapter := NewAdapter(AdapterOptions{})
	vm.Books().ObserveWithScheduler(owner, queue, adapter)
	list := widgets.NewRecyclerView[*Slot](adapter)
	list.Mount()
	list.Layout(runtime.Rect{Width: 40, Height: 12})

	vm.Load(context.Background())
	queue.Flush()
	if list.Count() != 10 {
		t.Fatalf("expected 10 books after flush, got %d", list.Count())
	}

	next = shelf[:2]
	vm.Load(context.Background())
	list.ScrollTo(7)
	list.Layout(runtime.Rect{Width: 40, Height: 8})
	if adapter.Count() != 10 || list.Count() != 10 {
		t.Fatalf("expected the old snapshot until flush, got adapter=%d list=%d", adapter.Count(), list.Count())
	}

	queue.Flush()
	if adapter.Count() != 2 || list.Count() != 2 {
		t.Fatalf("expected 2 books after flush, got adapter=%d list=%d", adapter.Count(), list.Count())
	}
	if sel := list.Selected(); sel != 1 {
		t.Fatalf("expected selection clamped to 1, got %d", sel)
	}
}

func TestView_TeardownStopsNotifications(t *testing.T) {
	calls := 0
	vm := viewmodel.New(viewmodel.Config{Provider: catalog.FuncProvider(func(ctx context.Context) (catalog.Collection, error) {
		calls++
		if calls == 1 {
			return catalog.Reference().FetchItems(ctx)
		}
		return catalog.Collection{catalog.NewBook("Later", "", "")}, nil
	})})
	view := NewView(vm, Options{})
	screen := runtime.NewScreen(40, 20)

	screen.SetRoot(view)
	vm.Load(context.Background())
	if view.Adapter().Changes() != 1 || view.List().Count() != 2 {
		t.Fatalf("expected one change with 2 books, got changes=%d count=%d", view.Adapter().Changes(), view.List().Count())
	}
	sub := view.Subscription()

	screen.SetRoot(nil)
	vm.Load(context.Background())
	if view.Adapter().Changes() != 1 {
		t.Fatalf("expected no notifications after teardown, got %d", view.Adapter().Changes())
	}
	if !sub.Disposed() || view.Subscription() != nil {
		t.Fatal("expected subscription disposed on unmount")
	}
}

func TestView_MountDeliversPresentValueOnce(t *testing.T) {
	vm := loadedModel(t, catalog.Reference())
	view := NewView(vm, Options{})
	screen := runtime.NewScreen(40, 20)

	screen.SetRoot(view)
	if view.Adapter().Changes() != 1 {
		t.Fatalf("expected current value delivered on mount, got %d", view.Adapter().Changes())
	}
	if view.List().Count() != 2 {
		t.Fatalf("expected list to show 2 books, got %d", view.List().Count())
	}
}

func TestView_InactiveDefersDelivery(t *testing.T) {
	vm := viewmodel.New(viewmodel.Config{Provider: catalog.Reference()})
	view := NewView(vm, Options{})
	runtime.NewScreen(40, 20).SetRoot(view)

	view.Deactivate()
	vm.Load(context.Background())
	if view.Adapter().Changes() != 0 {
		t.Fatalf("expected no delivery while inactive, got %d", view.Adapter().Changes())
	}
	view.Activate()
	if view.Adapter().Changes() != 1 || view.List().Count() != 2 {
		t.Fatalf("expected delivery on activation, got changes=%d count=%d", view.Adapter().Changes(), view.List().Count())
	}
}

func TestView_KeysReloadAndQuit(t *testing.T) {
	calls := 0
	vm := viewmodel.New(viewmodel.Config{Provider: catalog.FuncProvider(func(context.Context) (catalog.Collection, error) {
		calls++
		return catalog.Collection{}, nil
	})})
	view := NewView(vm, Options{LoadOnMount: true})
	screen := runtime.NewScreen(20, 10)
	screen.SetRoot(view)
	if calls != 1 {
		t.Fatalf("expected load on mount, got %d", calls)
	}

	if !view.HandleMessage(runtime.KeyMsg{Key: terminal.KeyRune, Rune: 'r'}).Handled {
		t.Fatal("expected r handled")
	}
	if calls != 2 {
		t.Fatalf("expected reload, got %d loads", calls)
	}

	result := view.HandleMessage(runtime.KeyMsg{Key: terminal.KeyRune, Rune: 'q'})
	if len(result.Commands) != 1 {
		t.Fatalf("expected quit command, got %#v", result.Commands)
	}
	if _, ok := result.Commands[0].(runtime.Quit); !ok {
		t.Fatalf("expected Quit, got %T", result.Commands[0])
	}

	screen.SetRoot(nil)
	screen.SetRoot(view)
	if calls != 2 {
		t.Fatalf("expected no second load on remount, got %d", calls)
	}
}

func TestView_HelpOverlay(t *testing.T) {
	calls := 0
	vm := viewmodel.New(viewmodel.Config{Provider: catalog.FuncProvider(func(context.Context) (catalog.Collection, error) {
		calls++
		return catalog.Reference().Items, nil
	})})
	view := NewView(vm, Options{LoadOnMount: true})
	screen := runtime.NewScreen(40, 14)
	screen.SetRoot(view)

	result := screen.HandleMessage(runtime.KeyMsg{Key: terminal.KeyRune, Rune: '?'})
	if len(result.Commands) != 0 {
		t.Fatalf("expected overlay command consumed, got %#v", result.Commands)
	}
	if screen.LayerCount() != 2 {
		t.Fatalf("expected help layer, got %d layers", screen.LayerCount())
	}
	screen.Render()
	var rows []string
	for y := 0; y < 14; y++ {
		rows = append(rows, screen.Buffer().Row(y))
	}
	if text := strings.Join(rows, "\n"); !strings.Contains(text, "r              reload") {
		t.Fatalf("expected help text on screen:\n%s", text)
	}

	screen.HandleMessage(runtime.KeyMsg{Key: terminal.KeyRune, Rune: 'r'})
	if calls != 1 {
		t.Fatalf("expected key taken by help, got %d loads", calls)
	}
	if screen.LayerCount() != 1 {
		t.Fatalf("expected help closed, got %d layers", screen.LayerCount())
	}

	screen.HandleMessage(runtime.KeyMsg{Key: terminal.KeyRune, Rune: 'r'})
	if calls != 2 {
		t.Fatalf("expected reload after help closed, got %d loads", calls)
	}
}

func TestHelp_CtrlCQuits(t *testing.T) {
	help := NewHelp(theme.Default())
	result := help.HandleMessage(runtime.KeyMsg{Key: terminal.KeyCtrlC})
	if len(result.Commands) != 2 {
		t.Fatalf("expected pop and quit, got %#v", result.Commands)
	}
	if _, ok := result.Commands[1].(runtime.Quit); !ok {
		t.Fatalf("expected Quit, got %T", result.Commands[1])
	}
}

func TestView_CtrlLRefreshes(t *testing.T) {
	vm := viewmodel.New(viewmodel.Config{Provider: catalog.Reference()})
	view := NewView(vm, Options{})
	result := view.HandleMessage(runtime.KeyMsg{Key: terminal.KeyCtrlL})
	if len(result.Commands) != 1 {
		t.Fatalf("expected refresh command, got %#v", result.Commands)
	}
	if _, ok := result.Commands[0].(runtime.Refresh); !ok {
		t.Fatalf("expected Refresh, got %T", result.Commands[0])
	}
}

func TestSummary(t *testing.T) {
	cases := []struct {
		status viewmodel.Status
		want   string
	}{
		{viewmodel.Status{}, "Books"},
		{viewmodel.Status{Phase: viewmodel.Loading}, "Books (loading)"},
		{viewmodel.Status{Phase: viewmodel.Loaded, Count: 1}, "Books (1 book)"},
		{viewmodel.Status{Phase: viewmodel.Loaded, Count: 3}, "Books (3 books)"},
		{viewmodel.Status{Phase: viewmodel.Failed, Err: context.DeadlineExceeded}, "Books (error: context deadline exceeded)"},
	}
	for _, tc := range cases {
		if got := Summary("Books", tc.status); got != tc.want {
			t.Fatalf("Summary(%+v) = %q, want %q", tc.status, got, tc.want)
		}
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestView_AsyncLoadRendersOnLoop(t *testing.T) {
	vm := viewmodel.New(viewmodel.Config{
		Provider: catalog.DelayedProvider{Provider: catalog.Reference(), Delay: 10 * time.Millisecond},
	})
	view := NewView(vm, Options{LoadOnMount: true, Async: true})
	term := sim.New(40, 12)
	app := runtime.NewApp(runtime.AppConfig{Backend: term, Root: view})
	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	waitFor(t, "books on screen", func() bool {
		screen := term.Capture()
		return strings.Contains(screen, "Books (2 books)") && strings.Contains(screen, "> The Alchemist")
	})
	lines := strings.Split(term.Capture(), "\n")
	if lines[3] != "  Paulo Coelho" || lines[6] != "  To Kill a Mockingbird" {
		t.Fatalf("unexpected layout:\n%s", term.Capture())
	}

	term.InjectKey(terminal.KeyDown, 0)
	waitFor(t, "selection moved", func() bool {
		return strings.Contains(term.Capture(), "> To Kill a Mockingbird")
	})

	term.InjectKey(terminal.KeyRune, 'q')
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("app did not quit")
	}
	vm.Wait()
	if view.Subscription() != nil {
		t.Fatal("expected view unmounted on exit")
	}
}
