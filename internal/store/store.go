package store

import (
	"sync"

	"go.uber.org/zap"
)

// Action is a state transition request. Type is namespaced, e.g. "spots/loadSpots".
type Action interface {
	ActionType() string
}

// Reducer computes the next state. It must be pure and must not mutate state.
type Reducer[S any] func(state S, action Action) S

// Dispatcher is the capability tasks use to publish state changes.
type Dispatcher interface {
	Dispatch(action Action)
}

// Store holds one state value and serializes reducer application.
type Store[S any] struct {
	mu      sync.Mutex
	state   S
	reducer Reducer[S]
	log     *zap.Logger

	// states waiting to be delivered, in reducer order; guarded by mu
	pending  []S
	draining bool

	subMu  sync.Mutex
	subs   map[int]func(S)
	order  []int
	nextID int
}

func New[S any](reducer Reducer[S], initial S, log *zap.Logger) *Store[S] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store[S]{
		state:   initial,
		reducer: reducer,
		log:     log,
		subs:    map[int]func(S){},
	}
}

// State returns the current state.
func (s *Store[S]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies the reducer atomically and queues the resulting state for
// delivery. Subscribers see states in the order the reducer produced them.
// Whichever dispatch finds the queue idle delivers every queued state,
// outside the lock and in subscription order; a concurrent or nested
// Dispatch returns once its state is queued.
func (s *Store[S]) Dispatch(action Action) {
	s.mu.Lock()
	s.state = s.reducer(s.state, action)
	s.pending = append(s.pending, s.state)
	if s.draining {
		s.mu.Unlock()
		s.log.Debug("dispatch queued", zap.String("action", action.ActionType()))
		return
	}
	s.draining = true
	s.mu.Unlock()

	s.log.Debug("dispatch", zap.String("action", action.ActionType()))
	s.drain()
}

func (s *Store[S]) drain() {
	finished := false
	defer func() {
		// a panicking subscriber must not wedge later dispatches
		if !finished {
			s.mu.Lock()
			s.draining = false
			s.mu.Unlock()
		}
	}()
	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.draining = false
			finished = true
			s.mu.Unlock()
			return
		}
		next := s.pending[0]
		var zero S
		s.pending[0] = zero
		s.pending = s.pending[1:]
		s.mu.Unlock()

		for _, fn := range s.listeners() {
			fn(next)
		}
	}
}

// Subscribe registers fn for every dispatch. The returned func unsubscribes.
func (s *Store[S]) Subscribe(fn func(S)) func() {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.order = append(s.order, id)
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			delete(s.subs, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (s *Store[S]) listeners() []func(S) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	out := make([]func(S), 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.subs[id])
	}
	return out
}
