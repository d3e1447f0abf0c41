package runtime

import (
	"context"

	"github.com/odvcencio/furry-shelf/state"
)

// Services is the slice of the app handed to bound widgets.
// The zero value is inert: every method is a no-op.
type Services struct {
	app *App
}

// Services returns a service handle for the app.
func (a *App) Services() Services {
	return Services{app: a}
}

func (s Services) isZero() bool {
	return s.app == nil
}

// Scheduler runs callbacks on the loop goroutine.
func (s Services) Scheduler() state.Scheduler {
	if s.isZero() {
		return nil
	}
	return s.app.StateScheduler()
}

// TaskScheduler runs callbacks as effects on the app task context.
func (s Services) TaskScheduler() state.Scheduler {
	if s.isZero() {
		return nil
	}
	return s.app.TaskScheduler()
}

// InvalidateScheduler runs callbacks in place and requests a render.
func (s Services) InvalidateScheduler() state.Scheduler {
	if s.isZero() {
		return nil
	}
	return s.app.InvalidateScheduler()
}

// Context is cancelled when the app stops.
// Before Run starts it is context.Background.
func (s Services) Context() context.Context {
	if s.isZero() {
		return context.Background()
	}
	return s.app.context()
}

// Invalidate requests a render pass.
func (s Services) Invalidate() {
	if !s.isZero() {
		s.app.Invalidate()
	}
}

// Post sends a message into the app loop.
func (s Services) Post(msg Message) bool {
	if s.isZero() {
		return false
	}
	return s.app.tryPost(msg)
}

// Spawn starts an effect using the app task context.
func (s Services) Spawn(effect Effect) {
	if !s.isZero() {
		s.app.Spawn(effect)
	}
}
