package modeltest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nextcore/tether/pkg/lifecycle"
)

// Scenario defines a lifecycle conformance scenario. Scenarios drive a
// fresh controller through a scripted transition sequence and assert on
// the observable traces: hook order, lifecycle stream, and idle signal.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Steps lists the transitions to drive, by state name.
	Steps []Step `yaml:"steps"`

	// ExpectHooks is the expected hook invocation order.
	ExpectHooks []string `yaml:"expect_hooks,omitempty"`

	// ExpectStates is the expected lifecycle stream trace.
	ExpectStates []string `yaml:"expect_states,omitempty"`

	// ExpectIdle is the expected idle signal trace, including the
	// initial true.
	ExpectIdle []bool `yaml:"expect_idle,omitempty"`

	// ExpectError, if set, must be contained in the error returned by
	// the step that fails; execution stops there.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// Step is a single scripted transition.
type Step struct {
	Advance string `yaml:"advance"`
}

// Transcript is what actually happened during a scenario run.
type Transcript struct {
	Hooks  []string
	States []string
	Idle   []bool
	Err    error
}

// LoadScenario reads one scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("scenario %s: missing name", path)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s: no steps", path)
	}
	return &sc, nil
}

// LoadScenarios reads every *.yaml scenario under dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		sc, err := LoadScenario(p)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

// Run executes the scenario against a fresh controller and returns the
// transcript. Execution stops at the first rejected transition, which is
// recorded in Transcript.Err.
func (sc *Scenario) Run() (*Transcript, error) {
	tr := &Transcript{}

	ctrl := lifecycle.NewController(lifecycle.Hooks{
		OnCreate:  func() { tr.Hooks = append(tr.Hooks, "create") },
		OnBind:    func() { tr.Hooks = append(tr.Hooks, "bind") },
		OnUnbind:  func() { tr.Hooks = append(tr.Hooks, "unbind") },
		OnDestroy: func() { tr.Hooks = append(tr.Hooks, "destroy") },
	})
	ctrl.States().Values(func(s lifecycle.State) {
		tr.States = append(tr.States, s.String())
	})
	ctrl.Idle().Values(func(v bool) {
		tr.Idle = append(tr.Idle, v)
	})

	for _, step := range sc.Steps {
		state, err := lifecycle.ParseState(step.Advance)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
		if err := ctrl.Advance(state); err != nil {
			tr.Err = err
			break
		}
	}
	return tr, nil
}

// Verify compares the transcript against the scenario's expectations.
func (sc *Scenario) Verify(tr *Transcript) error {
	if sc.ExpectError != "" {
		if tr.Err == nil {
			return fmt.Errorf("scenario %s: expected error containing %q, got none", sc.Name, sc.ExpectError)
		}
		if !strings.Contains(tr.Err.Error(), sc.ExpectError) {
			return fmt.Errorf("scenario %s: error %q does not contain %q", sc.Name, tr.Err, sc.ExpectError)
		}
	} else if tr.Err != nil {
		return fmt.Errorf("scenario %s: unexpected error: %w", sc.Name, tr.Err)
	}

	if sc.ExpectHooks != nil && !equalStrings(tr.Hooks, sc.ExpectHooks) {
		return fmt.Errorf("scenario %s: hooks = %v, want %v", sc.Name, tr.Hooks, sc.ExpectHooks)
	}
	if sc.ExpectStates != nil && !equalStrings(tr.States, sc.ExpectStates) {
		return fmt.Errorf("scenario %s: states = %v, want %v", sc.Name, tr.States, sc.ExpectStates)
	}
	if sc.ExpectIdle != nil && !equalBools(tr.Idle, sc.ExpectIdle) {
		return fmt.Errorf("scenario %s: idle = %v, want %v", sc.Name, tr.Idle, sc.ExpectIdle)
	}
	return nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalBools(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
