package widgets

import (
	"github.com/odvcencio/furry-shelf/runtime"
	"github.com/odvcencio/furry-shelf/state"
)

// Component is a base widget with bound services, subscriptions and an
// owner lifecycle for live data.
type Component struct {
	Base
	Services runtime.Services
	Subs     state.Subscriptions

	life *state.Lifecycle
}

// Bind attaches app services to the component.
func (c *Component) Bind(services runtime.Services) {
	c.Services = services
	c.Subs.SetScheduler(services.Scheduler())
}

// Unbind releases app services and subscriptions.
func (c *Component) Unbind() {
	c.Subs.Clear()
	c.Services = runtime.Services{}
}

// Invalidate requests a render pass.
func (c *Component) Invalidate() {
	c.Services.Invalidate()
}

// Observe registers a subscription using the default scheduler.
func (c *Component) Observe(sub state.Subscribable, fn func()) {
	c.Subs.Observe(sub, fn)
}

// Lifecycle returns the current owner lifecycle, creating one if needed.
// A destroyed lifecycle is replaced so a remounted component starts fresh.
func (c *Component) Lifecycle() *state.Lifecycle {
	if c.life == nil || c.life.IsDestroyed() {
		c.life = state.NewLifecycle()
	}
	return c.life
}

// Activate moves the owner lifecycle to active and returns it.
func (c *Component) Activate() *state.Lifecycle {
	life := c.Lifecycle()
	life.Activate()
	return life
}

// Deactivate pauses deliveries to observers owned by the component.
func (c *Component) Deactivate() {
	if c.life != nil {
		c.life.Deactivate()
	}
}

// Destroy ends the owner lifecycle, disposing every subscription it owns.
func (c *Component) Destroy() {
	if c.life != nil {
		c.life.Destroy()
	}
}
