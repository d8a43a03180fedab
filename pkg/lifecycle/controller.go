package lifecycle

import (
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/nextcore/tether/pkg/stream"
)

// ErrDestroyed is returned by Advance once the controller has reached
// Destroyed. Destruction is terminal.
var ErrDestroyed = stderrors.New("lifecycle: controller already destroyed")

// Hooks receives lifecycle transition callbacks. Nil fields are skipped.
// Hook panics are not caught; they propagate to the Advance caller.
type Hooks struct {
	OnCreate  func()
	OnBind    func()
	OnUnbind  func()
	OnDestroy func()
}

// transition describes what a state entry triggers: which scopes to clear
// (before the hook runs) and which hook to invoke.
type transition struct {
	clearUnbind  bool
	clearDestroy bool
	hook         func(Hooks)
}

var transitions = map[State]transition{
	Created: {hook: func(h Hooks) { call(h.OnCreate) }},
	Bound:   {hook: func(h Hooks) { call(h.OnBind) }},
	Unbound: {clearUnbind: true, hook: func(h Hooks) { call(h.OnUnbind) }},
	Destroyed: {
		clearUnbind:  true,
		clearDestroy: true,
		hook:         func(h Hooks) { call(h.OnDestroy) },
	},
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

// Controller is the 4-state lifecycle machine driven externally by a host
// or parent. It exposes a replay-latest stream of past states, derives the
// idle signal consumed by command buffering, owns the two resource scopes,
// and dispatches extension hooks on each transition.
//
// The controller validates only the terminal rule: any sequence of states
// is accepted until Destroyed, including repeats and skips (Unbound before
// any Bound is legal, since idle starts true). After Destroyed, Advance
// returns ErrDestroyed.
type Controller struct {
	// advanceMu serializes whole transitions, hooks included.
	advanceMu sync.Mutex
	mu        sync.Mutex

	current   State
	destroyed bool
	lastIdle  bool

	states *stream.Source[State]
	idle   *stream.Source[bool]
	hooks  Hooks

	untilUnbind  *Scope
	untilDestroy *Scope
}

// NewController creates a controller in the Created state with idle true.
// Note that no Created transition has been emitted yet; the host advances
// the controller explicitly.
func NewController(hooks Hooks) *Controller {
	return &Controller{
		current:      Created,
		lastIdle:     true,
		states:       stream.NewReplaySource[State](),
		idle:         stream.NewSeededSource(true),
		hooks:        hooks,
		untilUnbind:  NewScope(),
		untilDestroy: NewScope(),
	}
}

// Advance pushes next onto the lifecycle stream, then clears the
// triggered scopes, runs the matching hook, and finally recomputes the
// idle signal. All of that happens synchronously on the caller's
// goroutine before Advance returns.
func (c *Controller) Advance(next State) error {
	tr, ok := transitions[next]
	if !ok {
		return fmt.Errorf("lifecycle: invalid state %v", next)
	}

	c.advanceMu.Lock()
	defer c.advanceMu.Unlock()

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return ErrDestroyed
	}
	c.current = next
	if next == Destroyed {
		c.destroyed = true
	}
	c.mu.Unlock()

	c.states.Emit(next)

	if tr.clearUnbind {
		c.untilUnbind.Clear()
	}
	if tr.clearDestroy {
		c.untilDestroy.Clear()
	}
	tr.hook(c.hooks)

	if next == Destroyed {
		c.states.Done()
		c.idle.Done()
		return nil
	}
	if idle := next.Idle(); idle != c.lastIdle {
		c.lastIdle = idle
		c.idle.Emit(idle)
	}
	return nil
}

// States returns the read-only lifecycle stream. New subscribers
// immediately receive the most recent state, then every later transition
// in order. After Destroyed the stream completes.
func (c *Controller) States() *stream.Stream[State] {
	return c.states.Stream()
}

// Idle returns the derived idle signal stream: true while Created or
// Unbound, false while Bound, seeded true. Only changes are emitted.
func (c *Controller) Idle() *stream.Stream[bool] {
	return c.idle.Stream()
}

// Current returns the state the controller currently holds.
func (c *Controller) Current() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// IsDestroyed reports whether the controller has reached Destroyed.
func (c *Controller) IsDestroyed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.destroyed
}

// UntilUnbind returns the scope cleared on every Unbound transition.
func (c *Controller) UntilUnbind() *Scope {
	return c.untilUnbind
}

// UntilDestroy returns the scope cleared once, on Destroyed.
func (c *Controller) UntilDestroy() *Scope {
	return c.untilDestroy
}
