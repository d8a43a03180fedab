package modeltest

import (
	"testing"

	"github.com/nextcore/tether/pkg/lifecycle"
	"github.com/nextcore/tether/pkg/model"
)

// Tester drives a presentation model's lifecycle in tests, failing the
// test immediately on a rejected transition.
type Tester struct {
	t      *testing.T
	driver *model.Driver
}

// NewTester takes over the model's driver for the duration of a test.
// Like any host, the tester must be the only lifecycle writer.
func NewTester(t *testing.T, mb model.Bindable) *Tester {
	t.Helper()
	return &Tester{t: t, driver: model.NewDriver(mb)}
}

// Create advances the model to Created.
func (tt *Tester) Create() { tt.advance(lifecycle.Created) }

// Bind advances the model to Bound, flushing buffered commands.
func (tt *Tester) Bind() { tt.advance(lifecycle.Bound) }

// Unbind advances the model to Unbound.
func (tt *Tester) Unbind() { tt.advance(lifecycle.Unbound) }

// Destroy advances the model to Destroyed.
func (tt *Tester) Destroy() { tt.advance(lifecycle.Destroyed) }

// Cycle runs Created, Bound, Unbound, Destroyed in order.
func (tt *Tester) Cycle() {
	tt.Create()
	tt.Bind()
	tt.Unbind()
	tt.Destroy()
}

func (tt *Tester) advance(s lifecycle.State) {
	tt.t.Helper()
	if err := tt.driver.Advance(s); err != nil {
		tt.t.Fatalf("advance to %v: %v", s, err)
	}
}
