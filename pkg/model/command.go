package model

import "github.com/nextcore/tether/pkg/stream"

// Command is an outbound event with idle-based buffering. By default a
// command buffers, unbounded, against its owner's idle signal: values
// emitted while no host is attached queue up and flush in order, as one
// batch, the moment the model binds. The output stream is multicast with
// no replay; the host subscribes for its bound lifetime.
type Command[T any] struct {
	owner *Model
	src   *stream.Source[T]
	out   *stream.Stream[T]
}

type commandConfig struct {
	capacity int
	idle     *stream.Stream[bool]
}

// CommandOption configures a Command at construction.
type CommandOption func(*commandConfig)

// WithCapacity bounds the idle buffer to the last n values, oldest
// dropped first. Zero disables buffering entirely: values emitted while
// idle are dropped and unrecoverable.
func WithCapacity(n int) CommandOption {
	return func(cfg *commandConfig) { cfg.capacity = n }
}

// WithIdleSource buffers against an alternative readiness signal instead
// of the owner's idle signal, for commands that should queue under a
// different condition (an in-progress flag, say).
func WithIdleSource(idle *stream.Stream[bool]) CommandOption {
	return func(cfg *commandConfig) { cfg.idle = idle }
}

// NewCommand creates a command owned by mb. Without options it buffers
// unbounded against the owner's idle signal.
func NewCommand[T any](mb Bindable, opts ...CommandOption) *Command[T] {
	m := ensure(mb)
	cfg := commandConfig{capacity: stream.Unbounded}
	for _, opt := range opts {
		opt(&cfg)
	}
	return newCommand[T](m, cfg)
}

// newCommand assumes m is already ensured.
func newCommand[T any](m *Model, cfg commandConfig) *Command[T] {
	idle := cfg.idle
	if idle == nil {
		idle = m.ctrl.Idle()
	}
	src := stream.NewSource[T]()
	out, cancel := stream.BufferWhen(src.Stream(), idle, cfg.capacity)
	m.ctrl.UntilDestroy().Acquire(func() {
		cancel()
		src.Done()
	})
	return &Command[T]{owner: m, src: src, out: out}
}

// Emit writes value into the command. Depending on the idle signal it is
// forwarded live or buffered for the next flush.
func (c *Command[T]) Emit(value T) {
	c.src.Emit(value)
}

// Fail propagates a producer failure through the buffered stream,
// terminating it.
func (c *Command[T]) Fail(err error) {
	c.src.Fail(err)
}

// Observe returns the buffered output stream.
func (c *Command[T]) Observe() *stream.Stream[T] {
	return c.out
}
