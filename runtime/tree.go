package runtime

// Bindable widgets receive app services when attached to a screen.
type Bindable interface {
	Bind(services Services)
}

// Unbindable widgets release app services when detached.
type Unbindable interface {
	Unbind()
}

// Mountable widgets get hooks when they enter and leave a screen.
// Hosts that observe live data register in Mount and dispose in Unmount.
type Mountable interface {
	Mount()
	Unmount()
}

// walk visits w and its descendants. pre runs parents first, post runs
// children first.
func walk(w Widget, pre, post func(Widget)) {
	if w == nil {
		return
	}
	if pre != nil {
		pre(w)
	}
	if parent, ok := w.(ChildProvider); ok {
		for _, child := range parent.ChildWidgets() {
			walk(child, pre, post)
		}
	}
	if post != nil {
		post(w)
	}
}

// BindTree calls Bind on every Bindable in the tree.
// Zero services are not propagated.
func BindTree(root Widget, services Services) {
	if services.isZero() {
		return
	}
	walk(root, func(w Widget) {
		if b, ok := w.(Bindable); ok {
			b.Bind(services)
		}
	}, nil)
}

// UnbindTree calls Unbind on every Unbindable in the tree, leaves first.
func UnbindTree(root Widget) {
	walk(root, nil, func(w Widget) {
		if u, ok := w.(Unbindable); ok {
			u.Unbind()
		}
	})
}

// MountTree calls Mount on every Mountable in the tree.
func MountTree(root Widget) {
	walk(root, func(w Widget) {
		if m, ok := w.(Mountable); ok {
			m.Mount()
		}
	}, nil)
}

// UnmountTree calls Unmount on every Mountable in the tree, leaves first.
func UnmountTree(root Widget) {
	walk(root, nil, func(w Widget) {
		if m, ok := w.(Mountable); ok {
			m.Unmount()
		}
	})
}
