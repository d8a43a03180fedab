package model

import "github.com/nextcore/tether/pkg/stream"

// Watch subscribes fn to a stream for the current attachment only: the
// subscription is registered in the owner's untilUnbind scope and
// canceled on the next Unbound transition. Re-establish it in OnBind.
//
//	func (s *searchModel) OnBind() {
//	    model.Watch(s, s.query.Observe(), s.runQuery)
//	}
func Watch[T any](mb Bindable, st *stream.Stream[T], fn func(T)) (release func()) {
	m := ensure(mb)
	return m.ctrl.UntilUnbind().AcquireSubscription(st.Values(fn))
}

// WatchUntilDestroy subscribes fn to a stream for the owner's whole
// remaining lifetime, canceled only on Destroyed.
func WatchUntilDestroy[T any](mb Bindable, st *stream.Stream[T], fn func(T)) (release func()) {
	m := ensure(mb)
	return m.ctrl.UntilDestroy().AcquireSubscription(st.Values(fn))
}
