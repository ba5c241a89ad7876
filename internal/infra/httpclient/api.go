package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/memodb-io/rentspot/internal/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	// CSRFCookieName is the readable cookie the API sets with the current token.
	CSRFCookieName = "XSRF-TOKEN"
	// CSRFHeaderName carries the token back on mutating requests.
	CSRFHeaderName = "XSRF-Token"

	csrfRestorePath = "/api/csrf/restore"
)

// APIClient is the HTTP client the client-side stores talk to the rentspot API with.
// It keeps server cookies in a jar and injects the CSRF token on mutating requests.
type APIClient struct {
	BaseURL    *url.URL
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewAPIClient creates an APIClient from config with OpenTelemetry instrumentation.
func NewAPIClient(cfg *config.Config, log *zap.Logger) (*APIClient, error) {
	return New(cfg.Client.BaseURL, &http.Client{
		Timeout:   cfg.Client.Timeout(),
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}, log)
}

// New creates an APIClient for baseURL. hc is copied; a cookie jar is added if it has none.
func New(baseURL string, hc *http.Client, log *zap.Logger) (*APIClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	if hc == nil {
		hc = &http.Client{}
	}
	client := *hc
	if client.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		client.Jar = jar
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &APIClient{BaseURL: u, HTTPClient: &client, Logger: log}, nil
}

// Response is a fully read API response. Non-2xx statuses are not errors at this level.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode parses the JSON body into v.
func (r *Response) Decode(v any) error {
	if err := sonic.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// Err returns nil for a 2xx response and an *APIError carrying the parsed body otherwise.
func (r *Response) Err() error {
	if r.OK() {
		return nil
	}
	apiErr := &APIError{StatusCode: r.StatusCode, Raw: r.Body}
	if len(r.Body) == 0 || sonic.Unmarshal(r.Body, &apiErr.Body) != nil {
		apiErr.Body = ErrorBody{Message: strings.TrimSpace(string(r.Body))}
	}
	if apiErr.Body.Message == "" {
		apiErr.Body.Message = http.StatusText(r.StatusCode)
	}
	return apiErr
}

// ErrorBody is the JSON error document the API returns.
type ErrorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// APIError is a non-2xx API response with its parsed error body.
type APIError struct {
	StatusCode int
	Body       ErrorBody
	Raw        []byte
}

func (e *APIError) Error() string {
	if len(e.Body.Errors) == 0 {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Body.Message)
	}
	return fmt.Sprintf("api error %d: %s %v", e.StatusCode, e.Body.Message, e.Body.Errors)
}

func isMutating(method string) bool {
	return method != http.MethodGet && method != http.MethodHead
}

func (c *APIClient) endpoint(path string) string {
	return c.BaseURL.String() + path
}

// CSRFToken returns the token currently held in the cookie jar, if any.
func (c *APIClient) CSRFToken() string {
	for _, ck := range c.HTTPClient.Jar.Cookies(c.BaseURL) {
		if ck.Name == CSRFCookieName {
			return ck.Value
		}
	}
	return ""
}

// RestoreCSRF asks the API to (re)issue the CSRF cookies and returns the token.
func (c *APIClient) RestoreCSRF(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, csrfRestorePath, nil, "")
	if err != nil {
		return "", err
	}
	if !resp.OK() {
		c.Logger.Warn("csrf restore failed", zap.Int("status_code", resp.StatusCode))
		return "", resp.Err()
	}
	return c.CSRFToken(), nil
}

// Send issues method on path with body JSON-encoded (nil for no body).
// Mutating requests carry the CSRF header, restoring the token first when none is known.
// A non-2xx status yields a Response with OK() == false; only transport failures return an error.
func (c *APIClient) Send(ctx context.Context, method, path string, body any) (*Response, error) {
	var payload []byte
	if body != nil {
		b, err := sonic.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		payload = b
	}

	token := ""
	if isMutating(method) {
		token = c.CSRFToken()
		if token == "" {
			restored, err := c.RestoreCSRF(ctx)
			if _, ok := AsAPIError(err); err != nil && !ok {
				return nil, err
			}
			token = restored
		}
	}

	return c.do(ctx, method, path, payload, token)
}

func (c *APIClient) do(ctx context.Context, method, path string, payload []byte, token string) (*Response, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if payload != nil || isMutating(method) {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set(CSRFHeaderName, token)
	}

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		c.Logger.Debug("api request returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(respBody)))
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: respBody}, nil
}
