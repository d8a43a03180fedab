package model

import "github.com/nextcore/tether/pkg/lifecycle"

// Driver is the write-only lifecycle sink for a model. Exactly one
// collaborator should hold it: the view-layer host, or nothing at all if
// the model is composed under a parent via [BindChild]. Presentation
// logic never drives its own lifecycle.
type Driver struct {
	ctrl *lifecycle.Controller
}

// NewDriver returns the lifecycle driver for m. Pass the outer model
// value, not the embedded Model field, so overridden hooks are picked up.
func NewDriver(mb Bindable) *Driver {
	m := ensure(mb)
	m.adopt(mb)
	return &Driver{ctrl: m.ctrl}
}

// Create advances the model to Created.
func (d *Driver) Create() error {
	return d.ctrl.Advance(lifecycle.Created)
}

// Bind advances the model to Bound. Commands buffered while detached
// flush, in order, during this call.
func (d *Driver) Bind() error {
	return d.ctrl.Advance(lifecycle.Bound)
}

// Unbind advances the model to Unbound, clearing the untilUnbind scope.
func (d *Driver) Unbind() error {
	return d.ctrl.Advance(lifecycle.Unbound)
}

// Destroy advances the model to Destroyed, clearing both scopes and
// completing its streams. Destruction is terminal: any further call on
// this driver returns lifecycle.ErrDestroyed.
func (d *Driver) Destroy() error {
	return d.ctrl.Advance(lifecycle.Destroyed)
}

// Advance drives an arbitrary transition. Repeats and skips are accepted;
// only transitions after Destroyed are rejected.
func (d *Driver) Advance(s lifecycle.State) error {
	return d.ctrl.Advance(s)
}
