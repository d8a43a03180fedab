// Package model provides lifecycle-aware presentation models that
// decouple interactive-application logic from a host view's lifecycle.
//
// A presentation model embeds [Model] and exposes its surface as reactive
// properties whose delivery adapts to whether a view is attached:
//
//   - [State]: cached value, replayed to new subscribers.
//   - [Action]: ephemeral inbound event, never replayed.
//   - [Command]: outbound event, buffered while detached by default.
//
// # Lifecycle
//
// A host drives the model through a [Driver] across Created, Bound,
// Unbound, and Destroyed. Bound and Unbound alternate as views attach and
// detach; Destroyed tears everything down exactly once. While detached
// the model keeps running: states cache, commands buffer, and the next
// bind flushes queued output in order.
//
//	m := newLoginModel()
//	driver := model.NewDriver(m)
//	driver.Create()
//	m.Navigation().Values(host.HandleNavigation)
//	driver.Bind()
//	...
//	driver.Unbind()
//	driver.Destroy()
//
// Override any of the [Hooks] methods on your model to react to
// transitions, and use Model.UntilUnbind / Model.UntilDestroy (or the
// [Watch] helpers) to scope cancellable work to them.
//
// # Composition
//
// [BindChild] nests one model under another: the child observes the
// identical transition sequence as its parent and is torn down with it.
package model
