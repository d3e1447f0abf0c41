package runtime

import "context"

// Command is an intent returned from HandleMessage. The screen consumes
// overlay commands; the app handles the rest.
type Command interface {
	Command()
}

// PostFunc delivers a message to the loop, reporting false when the
// message buffer is full.
type PostFunc func(Message) bool

// Quit stops the app.
type Quit struct{}

func (Quit) Command() {}

// Refresh repaints every cell on the next frame.
type Refresh struct{}

func (Refresh) Command() {}

// Effect is background work started with the app task context. Results
// come back to the loop through post.
type Effect struct {
	Run func(ctx context.Context, post PostFunc)
}

func (Effect) Command() {}

// PushOverlay shows Widget above the current layers. Input goes to the
// top layer only.
type PushOverlay struct {
	Widget Widget
}

func (PushOverlay) Command() {}

// PopOverlay dismisses the top overlay.
type PopOverlay struct{}

func (PopOverlay) Command() {}
