package runtime

// Rect is a screen rectangle in cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.Width && y < r.Y+r.Height
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// SplitTop returns the first n rows and the remainder.
func (r Rect) SplitTop(n int) (top, rest Rect) {
	if n < 0 {
		n = 0
	}
	if n > r.Height {
		n = r.Height
	}
	top = Rect{X: r.X, Y: r.Y, Width: r.Width, Height: n}
	rest = Rect{X: r.X, Y: r.Y + n, Width: r.Width, Height: r.Height - n}
	return top, rest
}

// Size is a width and height in cells.
type Size struct {
	Width, Height int
}

// Constraints bound a widget's measured size.
type Constraints struct {
	MinWidth, MinHeight int
	MaxWidth, MaxHeight int
}

// Loose returns constraints from zero up to size.
func Loose(size Size) Constraints {
	return Constraints{MaxWidth: size.Width, MaxHeight: size.Height}
}

// Constrain clamps size into the constraints.
func (c Constraints) Constrain(size Size) Size {
	size.Width = clamp(size.Width, c.MinWidth, c.MaxWidth)
	size.Height = clamp(size.Height, c.MinHeight, c.MaxHeight)
	return size
}

// MaxSize returns the largest allowed size.
func (c Constraints) MaxSize() Size {
	return Size{Width: c.MaxWidth, Height: c.MaxHeight}
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Widget is a node in the screen's widget tree.
type Widget interface {
	Measure(constraints Constraints) Size
	Layout(bounds Rect)
	Render(ctx RenderContext)
	HandleMessage(msg Message) HandleResult
}

// ChildProvider is implemented by widgets that contain other widgets.
type ChildProvider interface {
	ChildWidgets() []Widget
}

// BoundsProvider exposes a widget's assigned bounds.
type BoundsProvider interface {
	Bounds() Rect
}

// Focusable widgets can receive keyboard input.
type Focusable interface {
	CanFocus() bool
	Focus()
	Blur()
	IsFocused() bool
}

// HandleResult reports whether a message was consumed and which commands
// it produced.
type HandleResult struct {
	Handled  bool
	Commands []Command
}

// Handled reports the message as consumed.
func Handled() HandleResult {
	return HandleResult{Handled: true}
}

// Unhandled lets the message continue to other layers.
func Unhandled() HandleResult {
	return HandleResult{}
}

// WithCommand consumes the message and emits commands.
func WithCommand(cmds ...Command) HandleResult {
	return HandleResult{Handled: true, Commands: cmds}
}
