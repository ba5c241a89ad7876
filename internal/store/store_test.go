package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type putRow struct{ r row }

func (putRow) ActionType() string { return "test/put" }

type noop struct{}

func (noop) ActionType() string { return "test/noop" }

func rowReducer(tbl *Table[row], action Action) *Table[row] {
	switch a := action.(type) {
	case putRow:
		return tbl.Put(a.r)
	default:
		return tbl
	}
}

func TestStore_DispatchAndSubscribe(t *testing.T) {
	s := New[*Table[row]](rowReducer, nil, zap.NewNop())

	var seen []int
	unsubscribe := s.Subscribe(func(tbl *Table[row]) { seen = append(seen, tbl.Len()) })

	s.Dispatch(putRow{row{ID: 1}})
	s.Dispatch(putRow{row{ID: 2}})
	unsubscribe()
	unsubscribe()
	s.Dispatch(putRow{row{ID: 3}})

	assert.Equal(t, []int{1, 2}, seen)
	assert.Equal(t, 3, s.State().Len())
}

func TestStore_UnknownActionKeepsState(t *testing.T) {
	s := New[*Table[row]](rowReducer, NewTable(row{ID: 1}), nil)
	before := s.State()

	s.Dispatch(noop{})

	assert.Same(t, before, s.State())
}

func TestStore_SubscribersInOrder(t *testing.T) {
	s := New[*Table[row]](rowReducer, nil, nil)

	var order []string
	s.Subscribe(func(*Table[row]) { order = append(order, "a") })
	unsubB := s.Subscribe(func(*Table[row]) { order = append(order, "b") })
	s.Subscribe(func(*Table[row]) { order = append(order, "c") })
	unsubB()

	s.Dispatch(noop{})

	assert.Equal(t, []string{"a", "c"}, order)
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	s := New[*Table[row]](rowReducer, nil, nil)

	var wg sync.WaitGroup
	for i := int64(1); i <= 100; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			s.Dispatch(putRow{row{ID: id}})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 100, s.State().Len())
}

type addN int

func (addN) ActionType() string { return "test/add" }

func sumReducer(n int, action Action) int {
	if a, ok := action.(addN); ok {
		return n + int(a)
	}
	return n
}

func TestStore_NotifiesInReducerOrder(t *testing.T) {
	s := New[int](sumReducer, 0, nil)

	entered := make(chan struct{})
	gate := make(chan struct{})
	var once sync.Once
	var mu sync.Mutex
	var seen []int
	s.Subscribe(func(n int) {
		once.Do(func() {
			close(entered)
			<-gate
		})
		mu.Lock()
		seen = append(seen, n)
		mu.Unlock()
	})

	first := make(chan struct{})
	go func() {
		defer close(first)
		s.Dispatch(addN(1))
	}()
	<-entered

	// the first subscriber call is parked; this dispatch must not overtake it
	s.Dispatch(addN(10))
	assert.Equal(t, 11, s.State())

	close(gate)
	<-first

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 11}, seen)
	assert.Equal(t, s.State(), seen[len(seen)-1])
}

func TestStore_NestedDispatchFromSubscriber(t *testing.T) {
	s := New[int](sumReducer, 0, nil)

	var seen []int
	s.Subscribe(func(n int) {
		seen = append(seen, n)
		if n == 1 {
			s.Dispatch(addN(1))
		}
	})

	s.Dispatch(addN(1))

	assert.Equal(t, []int{1, 2}, seen)
	assert.Equal(t, 2, s.State())
}

func TestStore_PanickingSubscriberDoesNotBlockLaterDispatches(t *testing.T) {
	s := New[int](sumReducer, 0, nil)

	var seen []int
	s.Subscribe(func(n int) {
		if n == 1 {
			panic("render failed")
		}
		seen = append(seen, n)
	})

	assert.Panics(t, func() { s.Dispatch(addN(1)) })
	s.Dispatch(addN(1))

	assert.Equal(t, []int{2}, seen)
}
