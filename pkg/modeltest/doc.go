// Package modeltest provides deterministic test tooling for presentation
// models.
//
// A [Recorder] captures everything a stream delivers, a [Tester] drives a
// model's lifecycle with test-failing transitions, and [Scenario] files
// replay scripted transition sequences from YAML and assert on the
// resulting hook, state, and idle traces:
//
//	func TestToast(t *testing.T) {
//	    m := newToastModel()
//	    tester := modeltest.NewTester(t, m)
//	    rec := modeltest.Record(m.toast.Observe())
//
//	    m.toast.Emit("queued")
//	    tester.Bind()
//
//	    require.Equal(t, []string{"queued"}, rec.Values())
//	}
//
// Everything in this package is synchronous, like the delivery model it
// tests; no polling or sleeping is ever needed.
package modeltest
