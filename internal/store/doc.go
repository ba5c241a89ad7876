// Package store is the client-side state container: a Store applies pure
// reducers to dispatched actions, Table is the immutable normalized id→entity
// map the domain slices keep, and CreateSelector memoizes derived views.
//
// State is never mutated in place. Every reducer returns either the state it
// was given (no change) or a new value, so observers and selectors can detect
// change by pointer identity.
package store
