package runtime

import "github.com/odvcencio/furry-shelf/backend"

// Layer is the base root or one overlay above it.
type Layer struct {
	Root       Widget
	FocusScope *FocusScope
}

// Screen owns the widget layers and the render buffer.
// Attaching a root binds, lays out and mounts it; detaching unmounts and
// unbinds it, which is when host widgets drop their subscriptions.
type Screen struct {
	width, height int
	layers        []*Layer
	buffer        *Buffer
	services      Services
}

// NewScreen creates a new screen with the given dimensions.
func NewScreen(w, h int) *Screen {
	return &Screen{
		width:  w,
		height: h,
		buffer: NewBuffer(w, h),
	}
}

// SetServices configures app services for bindable widgets.
func (s *Screen) SetServices(services Services) {
	s.services = services
}

// Size returns the screen dimensions.
func (s *Screen) Size() (w, h int) {
	return s.width, s.height
}

// Resize changes the screen dimensions and re-lays out every layer.
func (s *Screen) Resize(w, h int) {
	s.width = w
	s.height = h
	s.buffer.Resize(w, h)
	bounds := Rect{0, 0, w, h}
	for _, layer := range s.layers {
		if layer.Root != nil {
			layer.Root.Layout(bounds)
		}
	}
}

// Buffer returns the screen's render buffer.
func (s *Screen) Buffer() *Buffer {
	return s.buffer
}

// SetRoot replaces the root widget of the base layer.
func (s *Screen) SetRoot(root Widget) {
	if len(s.layers) == 0 {
		s.layers = append(s.layers, &Layer{FocusScope: NewFocusScope()})
	}
	base := s.layers[0]
	if base.Root != nil {
		s.detach(base)
	}
	base.Root = root
	s.attach(base)
}

// Root returns the base layer's root widget.
func (s *Screen) Root() Widget {
	if len(s.layers) == 0 {
		return nil
	}
	return s.layers[0].Root
}

// PushLayer adds an overlay on top. It receives all input until popped.
func (s *Screen) PushLayer(root Widget) {
	if root == nil {
		return
	}
	layer := &Layer{Root: root, FocusScope: NewFocusScope()}
	s.layers = append(s.layers, layer)
	s.attach(layer)
}

// PopLayer removes the top layer. The base layer cannot be popped.
func (s *Screen) PopLayer() bool {
	if len(s.layers) <= 1 {
		return false
	}
	top := s.layers[len(s.layers)-1]
	s.detach(top)
	s.layers = s.layers[:len(s.layers)-1]
	s.buffer.MarkAllDirty()
	return true
}

// Close detaches every layer, top first.
func (s *Screen) Close() {
	for i := len(s.layers) - 1; i >= 0; i-- {
		s.detach(s.layers[i])
	}
	s.layers = nil
}

// LayerCount returns the number of layers.
func (s *Screen) LayerCount() int {
	return len(s.layers)
}

// FocusScope returns the focus scope of the top layer.
func (s *Screen) FocusScope() *FocusScope {
	if len(s.layers) == 0 {
		return nil
	}
	return s.layers[len(s.layers)-1].FocusScope
}

// Render draws all layers bottom to top.
func (s *Screen) Render() {
	for i, layer := range s.layers {
		if layer.Root == nil {
			continue
		}
		layer.Root.Render(RenderContext{
			Buffer:  s.buffer,
			Focused: i == len(s.layers)-1,
			Bounds:  Rect{0, 0, s.width, s.height},
		})
	}
}

// HandleMessage gives msg to the top layer and applies its overlay
// commands. Other commands are returned for the app.
func (s *Screen) HandleMessage(msg Message) HandleResult {
	if len(s.layers) == 0 {
		return Unhandled()
	}
	top := s.layers[len(s.layers)-1]
	if top.Root == nil {
		return Unhandled()
	}
	result := top.Root.HandleMessage(msg)
	rest := result.Commands[:0:0]
	for _, cmd := range result.Commands {
		switch c := cmd.(type) {
		case PushOverlay:
			s.PushLayer(c.Widget)
		case PopOverlay:
			s.PopLayer()
		default:
			rest = append(rest, cmd)
		}
	}
	result.Commands = rest
	return result
}

func (s *Screen) attach(layer *Layer) {
	if layer.Root == nil {
		return
	}
	BindTree(layer.Root, s.services)
	layer.Root.Layout(Rect{0, 0, s.width, s.height})
	MountTree(layer.Root)
	layer.FocusScope.Reset()
	RegisterFocusables(layer.FocusScope, layer.Root)
	s.buffer.MarkAllDirty()
}

func (s *Screen) detach(layer *Layer) {
	if layer.Root == nil {
		return
	}
	layer.FocusScope.Reset()
	UnmountTree(layer.Root)
	UnbindTree(layer.Root)
}

// RenderContext provides context to widgets during rendering.
type RenderContext struct {
	Buffer  *Buffer
	Focused bool
	Bounds  Rect
}

// Sub creates a new context for a child widget with adjusted bounds.
func (ctx RenderContext) Sub(bounds Rect) RenderContext {
	return RenderContext{
		Buffer:  ctx.Buffer,
		Focused: ctx.Focused,
		Bounds:  bounds,
	}
}

// Clear fills the context bounds with spaces using the provided style.
func (ctx RenderContext) Clear(style backend.Style) {
	if ctx.Buffer == nil {
		return
	}
	ctx.Buffer.Fill(ctx.Bounds, ' ', style)
}
