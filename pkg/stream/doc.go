// Package stream provides the broadcast primitives underlying Tether's
// reactive properties.
//
// # Sources and Streams
//
// A [Source] pairs a writable send half with a broadcastable subscribe
// half sharing a single dispatcher. The send half (Emit, Fail, Done) is
// held by the producer; the subscribe half ([Stream], obtained via
// Source.Stream) is handed to consumers:
//
//	src := stream.NewSource[int]()
//	sub := src.Stream().Values(func(v int) {
//	    fmt.Println("got", v)
//	})
//	src.Emit(1)
//	sub.Cancel()
//
// Sources multicast: every current subscriber receives every value, in
// one total order, from a single upstream dispatch. Replay sources
// ([NewReplaySource], [NewSeededSource]) additionally cache the latest
// value and hand it to each new subscriber on arrival.
//
// # Idle Buffering
//
// [BufferWhen] adapts a value stream to a boolean idle signal: values
// forward live while not idle and are collected while idle, flushing as
// one ordered batch when the signal clears. All lifecycle-aware delivery
// in Tether (command buffering in particular) is built on this one
// combinator.
//
// # Threading
//
// All delivery is synchronous and push-based on the producer's goroutine;
// the package spawns no goroutines. Sinks are safe for arbitrary
// concurrent producers. Handlers must not synchronously write back into
// the stream they are being delivered from.
package stream
