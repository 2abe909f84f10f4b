package client

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aetherid/console/client/auth/store"
	"github.com/aetherid/console/client/auth/transport"
)

// Option represents option
type Option func(c *Client)

// WithStore sets the credential store
func WithStore(store store.Store) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithTransport sets the underlying HTTP transport
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

// WithTimeout sets the per call timeout, zero disables it
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithLogger sets logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithCoordinator shares a refresh coordinator with another client of the same session
func WithCoordinator(coordinator *transport.Coordinator) Option {
	return func(c *Client) {
		c.transportOptions = append(c.transportOptions, transport.WithCoordinator(coordinator))
	}
}

// WithNavigator sets the navigator used once the session cannot be refreshed
func WithNavigator(navigator transport.Navigator) Option {
	return func(c *Client) {
		c.transportOptions = append(c.transportOptions, transport.WithNavigator(navigator))
	}
}

// WithLoginRoute sets the login entry point
func WithLoginRoute(route string) Option {
	return func(c *Client) {
		c.transportOptions = append(c.transportOptions, transport.WithLoginRoute(route))
	}
}

// WithRefreshTimeout bounds the credential refresh call
func WithRefreshTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.transportOptions = append(c.transportOptions, transport.WithRefreshTimeout(timeout))
	}
}

// WithListener observes refresh coordination events
func WithListener(listener transport.Listener) Option {
	return func(c *Client) {
		c.transportOptions = append(c.transportOptions, transport.WithListener(listener))
	}
}
