package stream

import "sync/atomic"

// Subscription represents an active subscription to a Stream.
type Subscription struct {
	remove   func()
	canceled atomic.Bool
}

// Cancel stops delivery to this subscription. It is safe to call more
// than once; only the first call has any effect.
func (s *Subscription) Cancel() {
	if s.canceled.CompareAndSwap(false, true) {
		if s.remove != nil {
			s.remove()
		}
	}
}

// IsCanceled returns true if this subscription has been canceled.
func (s *Subscription) IsCanceled() bool {
	return s.canceled.Load()
}

// doneSubscription returns a subscription that is already canceled.
// Used when subscribing to a terminated source.
func doneSubscription() *Subscription {
	s := &Subscription{}
	s.canceled.Store(true)
	return s
}
