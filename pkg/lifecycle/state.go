package lifecycle

import "fmt"

// State represents the attachment state between a presentation model and
// its host view.
type State int

const (
	// Created indicates the model exists but no host has attached yet.
	Created State = iota
	// Bound indicates a host is attached and consuming output.
	Bound
	// Unbound indicates the host has detached; the model keeps running.
	Unbound
	// Destroyed indicates the model is permanently torn down.
	Destroyed
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Bound:
		return "bound"
	case Unbound:
		return "unbound"
	case Destroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Idle reports whether the state counts as detached for buffering
// purposes. Created and Unbound are idle; Bound is not. Destroyed is not
// idle either: the idle signal is never recomputed for it.
func (s State) Idle() bool {
	return s == Created || s == Unbound
}

// ParseState converts a textual state name back to a State.
func ParseState(name string) (State, error) {
	switch name {
	case "created":
		return Created, nil
	case "bound":
		return Bound, nil
	case "unbound":
		return Unbound, nil
	case "destroyed":
		return Destroyed, nil
	default:
		return 0, fmt.Errorf("lifecycle: unknown state %q", name)
	}
}
