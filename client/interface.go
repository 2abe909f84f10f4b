package client

import (
	"context"
	"net/url"
)

// Interface defines the API calls resource services are built on
type Interface interface {
	// Do sends a request and unwraps its result
	Do(ctx context.Context, request *Request, result any) error

	// Get reads a resource
	Get(ctx context.Context, path string, query url.Values, result any) error

	// Post creates a resource or invokes an action
	Post(ctx context.Context, path string, body, result any) error

	// Put replaces a resource
	Put(ctx context.Context, path string, body, result any) error

	// Patch partially updates a resource
	Patch(ctx context.Context, path string, body, result any) error

	// Delete removes a resource
	Delete(ctx context.Context, path string, result any) error
}

var _ Interface = (*Client)(nil)
