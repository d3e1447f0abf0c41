package runtime

import (
	"context"

	"github.com/odvcencio/furry-shelf/state"
)

// Go runs fn off the loop and posts its result, if any.
// Results from a cancelled context are dropped.
func Go(fn func(ctx context.Context) Message) Effect {
	return Effect{
		Run: func(ctx context.Context, post PostFunc) {
			if fn == nil || post == nil {
				return
			}
			msg := fn(ctx)
			if msg == nil || ctx.Err() != nil {
				return
			}
			post(msg)
		},
	}
}

// TaskScheduler runs callbacks as app effects. Callbacks scheduled before
// Run wait for it; work that should stop with the app takes its context
// from Services.Context.
type TaskScheduler struct {
	app *App
}

// TaskScheduler returns a scheduler backed by Spawn.
func (a *App) TaskScheduler() state.Scheduler {
	if a == nil {
		return nil
	}
	return TaskScheduler{app: a}
}

// Schedule spawns fn. Without an app it runs on a new goroutine.
func (s TaskScheduler) Schedule(fn func()) {
	if fn == nil {
		return
	}
	if s.app == nil {
		go fn()
		return
	}
	s.app.Spawn(Go(func(context.Context) Message {
		fn()
		return nil
	}))
}
