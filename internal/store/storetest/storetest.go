// Package storetest holds test doubles for the domain store tasks.
package storetest

import (
	"context"
	"net/http"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/memodb-io/rentspot/internal/infra/httpclient"
	"github.com/memodb-io/rentspot/internal/store"
	"github.com/stretchr/testify/mock"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Send(ctx context.Context, method, path string, body any) (*httpclient.Response, error) {
	args := m.Called(ctx, method, path, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*httpclient.Response), args.Error(1)
}

// JSON builds a response whose body is v encoded as JSON.
func JSON(status int, v any) *httpclient.Response {
	b, err := sonic.Marshal(v)
	if err != nil {
		panic(err)
	}
	return &httpclient.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       b,
	}
}

// Recorder is a Dispatcher that keeps every action it receives.
type Recorder struct {
	mu      sync.Mutex
	actions []store.Action
}

func (r *Recorder) Dispatch(a store.Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, a)
}

func (r *Recorder) Actions() []store.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]store.Action(nil), r.actions...)
}
