package store

import (
	"context"

	"github.com/memodb-io/rentspot/internal/infra/httpclient"
)

// API is the slice of httpclient.APIClient the domain tasks depend on.
type API interface {
	Send(ctx context.Context, method, path string, body any) (*httpclient.Response, error)
}

// Call sends the request and decodes a 2xx body into out (skipped when out is nil).
// Transport failures are returned as is; non-2xx statuses become *httpclient.APIError.
func Call(ctx context.Context, api API, method, path string, body, out any) error {
	resp, err := api.Send(ctx, method, path, body)
	if err != nil {
		return err
	}
	if err := resp.Err(); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.Decode(out)
}
