// Package lifecycle implements the 4-state machine and scoped resource
// cleanup that adapt reactive delivery to view attachment.
//
// A [Controller] is driven externally through Advance and moves between
// [Created], [Bound], [Unbound], and [Destroyed]. Bound and Unbound may
// alternate arbitrarily many times; Destroyed is terminal. Each
// transition, in order: is pushed onto the replay-latest States stream,
// clears the triggered [Scope] (untilUnbind on every Unbound, both scopes
// on Destroyed), invokes the matching hook, and recomputes the derived
// idle signal.
//
// The idle signal is true exactly while the model is detached (Created or
// Unbound) and feeds command buffering; it starts true, so a model can
// queue output before any host has ever attached.
//
// A [Scope] registers cancellable work. The untilUnbind scope is reusable
// across Bound/Unbound cycles; the untilDestroy scope clears exactly once.
package lifecycle
