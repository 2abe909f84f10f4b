package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/aetherid/console/client/auth"
	"github.com/aetherid/console/client/auth/store"
	"github.com/aetherid/console/client/auth/transport"
	"github.com/aetherid/console/schema"
	"github.com/google/uuid"
)

const (
	// APIPath prefixes every backend endpoint.
	APIPath = "/api"
	// DefaultTimeout bounds a single API call including a refresh and replay.
	DefaultTimeout = 30 * time.Second
	// RequestIDHeader carries a unique id per call for backend log correlation.
	RequestIDHeader = "X-Request-ID"
)

type Client struct {
	baseURL          string
	store            store.Store
	transport        http.RoundTripper
	transportOptions []transport.Option
	roundTripper     *transport.RoundTripper
	httpClient       *http.Client
	timeout          time.Duration
	logger           *slog.Logger
	auth             *auth.Service
}

// BaseURL returns the API base every request path is resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Auth returns the session service sharing this client's store.
func (c *Client) Auth() *auth.Service {
	return c.auth
}

// Store returns the credential store
func (c *Client) Store() store.Store {
	return c.store
}

// Coordinator returns the refresh coordinator; share it with WithCoordinator
// so that several clients of one session refresh only once.
func (c *Client) Coordinator() *transport.Coordinator {
	return c.roundTripper.Coordinator()
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, result any) error {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query}, result)
}

func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body}, result)
}

func (c *Client) Put(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body}, result)
}

func (c *Client) Patch(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body}, result)
}

func (c *Client) Delete(ctx context.Context, path string, result any) error {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path}, result)
}

// Do sends request and unwraps the {code, message, result} envelope into result.
// Non-2xx responses and envelopes reporting a failure code without a result are
// returned as *schema.Error.
func (c *Client) Do(ctx context.Context, request *Request, result any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	method := request.Method
	if method == "" {
		method = http.MethodGet
	}
	var body io.Reader
	if request.Body != nil {
		data, err := json.Marshal(request.Body)
		if err != nil {
			return fmt.Errorf("failed to encode %v %v body: %w", method, request.Path, err)
		}
		body = bytes.NewReader(data)
	}
	httpRequest, err := http.NewRequestWithContext(ctx, method, request.URL(c.baseURL), body)
	if err != nil {
		return fmt.Errorf("failed to create %v %v request: %w", method, request.Path, err)
	}
	requestID := uuid.NewString()
	httpRequest.Header.Set("Accept", "application/json")
	httpRequest.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		httpRequest.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	response, err := c.httpClient.Do(httpRequest)
	if err != nil {
		c.logger.Debug("api call failed", "method", method, "path", request.Path, "requestID", requestID, "error", err)
		return fmt.Errorf("failed to send %v %v: %w", method, request.Path, err)
	}
	defer response.Body.Close()
	c.logger.Debug("api call", "method", method, "path", request.Path, "status", response.StatusCode,
		"requestID", requestID, "elapsed", time.Since(started))

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("failed to read %v %v response: %w", method, request.Path, err)
	}
	return decode(response.StatusCode, data, result)
}

func decode(statusCode int, data []byte, result any) error {
	envelope := &schema.Envelope{}
	var decodeErr error
	if len(bytes.TrimSpace(data)) > 0 {
		decodeErr = json.Unmarshal(data, envelope)
	}
	if statusCode < 200 || statusCode >= 300 {
		message := envelope.Message
		if message == "" {
			message = http.StatusText(statusCode)
		}
		return schema.NewError(statusCode, envelope.Code, message)
	}
	if decodeErr != nil {
		return fmt.Errorf("invalid response envelope: %w", decodeErr)
	}
	if err := envelope.Err(statusCode); err != nil {
		return err
	}
	if result == nil || !envelope.HasResult() {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, result); err != nil {
		return fmt.Errorf("failed to decode result into %T: %w", result, err)
	}
	return nil
}

// Fetch sends request and returns its typed result.
func Fetch[T any](ctx context.Context, client Interface, request *Request) (*T, error) {
	ret := new(T)
	if err := client.Do(ctx, request, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// New creates a client for the backend at origin; the /api prefix is appended when missing.
func New(origin string, options ...Option) (*Client, error) {
	ret := &Client{
		baseURL:   APIURL(origin),
		store:     store.NewMemoryStore(),
		transport: http.DefaultTransport,
		timeout:   DefaultTimeout,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		opt(ret)
	}
	transportOptions := append([]transport.Option{
		transport.WithStore(ret.store),
		transport.WithTransport(ret.transport),
		transport.WithRefreshURL(ret.baseURL + transport.RefreshPath),
		transport.WithLogger(ret.logger),
	}, ret.transportOptions...)
	roundTripper, err := transport.New(transportOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create transport: %w", err)
	}
	ret.roundTripper = roundTripper
	ret.httpClient = &http.Client{Transport: roundTripper}
	ret.auth = auth.New(ret, ret.store, auth.WithLogger(ret.logger))
	return ret, nil
}
