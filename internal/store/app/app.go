// Package app combines the domain slices into the root client store.
package app

import (
	"github.com/memodb-io/rentspot/internal/store"
	"github.com/memodb-io/rentspot/internal/store/reviews"
	"github.com/memodb-io/rentspot/internal/store/spots"
	"go.uber.org/zap"
)

type State struct {
	Spots   *store.Table[spots.Spot]
	Reviews *store.Table[reviews.Review]
}

// Reducer hands every action to every slice reducer.
func Reducer(s State, action store.Action) State {
	return State{
		Spots:   spots.Reducer(s.Spots, action),
		Reviews: reviews.Reducer(s.Reviews, action),
	}
}

type Store = store.Store[State]

func NewStore(log *zap.Logger) *Store {
	return store.New[State](Reducer, State{}, log)
}

// Selectors are the memoized read views of one root store.
type Selectors struct {
	Spots   func(State) []spots.Spot
	Reviews func(State) []reviews.Review
}

func NewSelectors() Selectors {
	allSpots := spots.MakeSelectAll()
	allReviews := reviews.MakeSelectAll()
	return Selectors{
		Spots:   func(s State) []spots.Spot { return allSpots(s.Spots) },
		Reviews: func(s State) []reviews.Review { return allReviews(s.Reviews) },
	}
}

// Client bundles a root store with the tasks and selectors of every slice.
// Selectors belong to the client, so two clients never evict each other's memo.
type Client struct {
	Store   *Store
	Spots   *spots.Actions
	Reviews *reviews.Actions
	Select  Selectors
}

func NewClient(api store.API, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		Store:   NewStore(log.Named("store")),
		Spots:   spots.NewActions(api, log.Named("spots")),
		Reviews: reviews.NewActions(api, log.Named("reviews")),
		Select:  NewSelectors(),
	}
}
