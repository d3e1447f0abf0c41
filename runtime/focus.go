package runtime

// FocusScope tracks focusable widgets in one layer.
type FocusScope struct {
	widgets []Focusable
	current int
}

// NewFocusScope creates an empty scope.
func NewFocusScope() *FocusScope {
	return &FocusScope{current: -1}
}

// Register adds a focusable widget. The first one registered takes focus.
func (f *FocusScope) Register(w Focusable) {
	if f == nil || w == nil || !w.CanFocus() {
		return
	}
	f.widgets = append(f.widgets, w)
	if f.current < 0 {
		f.setCurrent(0)
	}
}

// Current returns the focused widget, if any.
func (f *FocusScope) Current() Focusable {
	if f == nil || f.current < 0 || f.current >= len(f.widgets) {
		return nil
	}
	return f.widgets[f.current]
}

// ClearFocus blurs the current widget.
func (f *FocusScope) ClearFocus() {
	if current := f.Current(); current != nil {
		current.Blur()
	}
	if f != nil {
		f.current = -1
	}
}

// Reset forgets all registered widgets.
func (f *FocusScope) Reset() {
	if f == nil {
		return
	}
	f.ClearFocus()
	f.widgets = nil
}

func (f *FocusScope) setCurrent(index int) {
	if prev := f.Current(); prev != nil {
		prev.Blur()
	}
	f.current = index
	if next := f.Current(); next != nil {
		next.Focus()
	}
}

// RegisterFocusables walks root and registers every focusable widget.
func RegisterFocusables(scope *FocusScope, root Widget) {
	if scope == nil || root == nil {
		return
	}
	if f, ok := root.(Focusable); ok && f.CanFocus() {
		scope.Register(f)
	}
	if children, ok := root.(ChildProvider); ok {
		for _, child := range children.ChildWidgets() {
			RegisterFocusables(scope, child)
		}
	}
}
