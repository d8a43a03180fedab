package model

import (
	stderrors "errors"
	"sync"

	"github.com/nextcore/tether/pkg/errors"
	"github.com/nextcore/tether/pkg/lifecycle"
	"github.com/nextcore/tether/pkg/stream"
)

// ErrAlreadyBound is returned by BindChild when the child is already
// wired to a parent. A child has at most one parent source.
var ErrAlreadyBound = stderrors.New("model: child already bound to a parent")

// Bindable is satisfied by any struct that embeds Model. Constructors
// and helpers accept Bindable so callers can pass their model directly.
type Bindable interface {
	base() *Model
}

func (m *Model) base() *Model { return m }

// Hooks receives lifecycle transition callbacks on the embedding model.
// Model provides no-op defaults; override the ones you need.
type Hooks interface {
	OnCreate()
	OnBind()
	OnUnbind()
	OnDestroy()
}

// Model is the embeddable base for presentation models. It owns a
// lifecycle controller, the two resource scopes, and a reserved outbound
// navigation command, and is the construction anchor for [State],
// [Action], and [Command] properties.
//
// The zero value is ready to use:
//
//	type loginModel struct {
//	    model.Model
//	    busy  *model.State[bool]
//	    toast *model.Command[string]
//	}
//
//	func newLoginModel() *loginModel {
//	    m := &loginModel{}
//	    m.busy = model.NewSeededState(m, false)
//	    m.toast = model.NewCommand[string](m)
//	    return m
//	}
//
// The model's own lifecycle is advanced only by whoever hosts it — a view
// layer holding a [Driver], or a parent model via [BindChild] — never by
// the model's own presentation logic.
type Model struct {
	initOnce sync.Once
	navOnce  sync.Once

	ctrl *lifecycle.Controller
	nav  *Command[NavigationMessage]

	mu          sync.Mutex
	target      Hooks
	parentBound bool
}

// core lazily initializes the controller and returns the base.
func (m *Model) core() *Model {
	m.initOnce.Do(func() {
		m.ctrl = lifecycle.NewController(lifecycle.Hooks{
			OnCreate:  func() { m.dispatch(Hooks.OnCreate) },
			OnBind:    func() { m.dispatch(Hooks.OnBind) },
			OnUnbind:  func() { m.dispatch(Hooks.OnUnbind) },
			OnDestroy: func() { m.dispatch(Hooks.OnDestroy) },
		})
	})
	return m
}

func ensure(mb Bindable) *Model {
	return mb.base().core()
}

// adopt records the embedding struct as the hook target. The first
// adopter wins; NewDriver and BindChild are the only callers, so the
// target is always set before the first transition can be delivered.
func (m *Model) adopt(mb Bindable) {
	h, ok := mb.(Hooks)
	if !ok {
		return
	}
	m.mu.Lock()
	if m.target == nil {
		m.target = h
	}
	m.mu.Unlock()
}

func (m *Model) dispatch(hook func(Hooks)) {
	m.mu.Lock()
	target := m.target
	m.mu.Unlock()
	if target != nil {
		hook(target)
	}
}

// OnCreate is the no-op default lifecycle hook.
func (m *Model) OnCreate() {}

// OnBind is the no-op default lifecycle hook.
func (m *Model) OnBind() {}

// OnUnbind is the no-op default lifecycle hook.
func (m *Model) OnUnbind() {}

// OnDestroy is the no-op default lifecycle hook.
func (m *Model) OnDestroy() {}

// States returns the read-only lifecycle stream. A new subscriber
// immediately receives the current state, then every later transition.
func (m *Model) States() *stream.Stream[lifecycle.State] {
	return m.core().ctrl.States()
}

// CurrentState returns the lifecycle state the model currently holds.
func (m *Model) CurrentState() lifecycle.State {
	return m.core().ctrl.Current()
}

// Idle returns the derived idle signal: true while detached (Created or
// Unbound), false while Bound.
func (m *Model) Idle() *stream.Stream[bool] {
	return m.core().ctrl.Idle()
}

// UntilUnbind returns the scope cleared on every Unbound transition.
// Register any work that should only live while a host is attached.
func (m *Model) UntilUnbind() *lifecycle.Scope {
	return m.core().ctrl.UntilUnbind()
}

// UntilDestroy returns the scope cleared once, on Destroyed.
func (m *Model) UntilDestroy() *lifecycle.Scope {
	return m.core().ctrl.UntilDestroy()
}

// Navigate emits a navigation request on the reserved outbound command.
// Requests issued while detached buffer until the next bind.
func (m *Model) Navigate(msg NavigationMessage) {
	m.core().navigation().Emit(msg)
}

// Navigation returns the buffered stream of navigation requests. The host
// subscribes to it for the model's bound lifetime.
func (m *Model) Navigation() *stream.Stream[NavigationMessage] {
	return m.core().navigation().Observe()
}

func (m *Model) navigation() *Command[NavigationMessage] {
	m.navOnce.Do(func() {
		m.nav = newCommand[NavigationMessage](m, commandConfig{capacity: stream.Unbounded})
	})
	return m.nav
}

// BindChild wires the parent's lifecycle stream into the child's
// lifecycle sink: every transition the parent emits is replayed verbatim
// to the child, so the child's scopes, idle signal, and command buffering
// track the parent exactly. The wiring lives in the parent's untilDestroy
// scope; destroying the parent destroys the child with it.
//
// A child accepts at most one parent; a second call returns
// ErrAlreadyBound.
func BindChild(parent, child Bindable) error {
	p := ensure(parent)
	c := ensure(child)
	c.adopt(child)

	c.mu.Lock()
	if c.parentBound {
		c.mu.Unlock()
		return ErrAlreadyBound
	}
	c.parentBound = true
	c.mu.Unlock()

	sub := p.ctrl.States().Listen(stream.Handler[lifecycle.State]{
		OnValue: func(s lifecycle.State) {
			if err := c.ctrl.Advance(s); err != nil {
				errors.Report(&errors.TetherError{
					Op:   "model.BindChild",
					Kind: errors.KindLifecycle,
					Err:  err,
				})
			}
		},
	})
	p.ctrl.UntilDestroy().AcquireSubscription(sub)
	return nil
}
