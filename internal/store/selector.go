package store

import "sync"

// CreateSelector memoizes combine over the value input extracts from the state.
// The result is recomputed only when the input changes (compared with ==, so
// for tables this is pointer identity); otherwise the previous result is
// returned as is.
func CreateSelector[S any, I comparable, R any](input func(S) I, combine func(I) R) func(S) R {
	var (
		mu      sync.Mutex
		primed  bool
		lastIn  I
		lastOut R
	)
	return func(state S) R {
		in := input(state)
		mu.Lock()
		defer mu.Unlock()
		if primed && in == lastIn {
			return lastOut
		}
		lastIn = in
		lastOut = combine(in)
		primed = true
		return lastOut
	}
}

type pair[A, B comparable] struct {
	a A
	b B
}

// CreateSelector2 is CreateSelector over two inputs; it recomputes when either changes.
func CreateSelector2[S any, I1, I2 comparable, R any](in1 func(S) I1, in2 func(S) I2, combine func(I1, I2) R) func(S) R {
	return CreateSelector(
		func(s S) pair[I1, I2] { return pair[I1, I2]{a: in1(s), b: in2(s)} },
		func(p pair[I1, I2]) R { return combine(p.a, p.b) },
	)
}
