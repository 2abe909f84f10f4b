package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aetherid/console/client/auth/store"
)

type Option func(*RoundTripper)

// WithStore sets the credential store
func WithStore(store store.Store) Option {
	return func(t *RoundTripper) {
		t.store = store
	}
}

// WithTransport sets the underlying transport used for both API and refresh calls
func WithTransport(transport http.RoundTripper) Option {
	return func(t *RoundTripper) {
		t.transport = transport
	}
}

// WithCoordinator shares an existing refresh coordinator; refresh related options are then ignored.
func WithCoordinator(coordinator *Coordinator) Option {
	return func(t *RoundTripper) {
		t.coordinator = coordinator
	}
}

// WithRefresher sets a custom refresher
func WithRefresher(refresher Refresher) Option {
	return func(t *RoundTripper) {
		t.refresher = refresher
	}
}

// WithRefreshURL sets the refresh endpoint used by the default HTTP refresher
func WithRefreshURL(URL string) Option {
	return func(t *RoundTripper) {
		t.refreshURL = URL
	}
}

// WithExcludedPaths sets the path suffixes that never carry credentials nor trigger refresh
func WithExcludedPaths(paths ...string) Option {
	return func(t *RoundTripper) {
		t.excluded = paths
	}
}

// WithNavigator sets the navigator used when the session terminates
func WithNavigator(navigator Navigator) Option {
	return func(t *RoundTripper) {
		t.coordinatorOptions = append(t.coordinatorOptions, CoordinateWithNavigator(navigator))
	}
}

// WithLoginRoute sets the login entry point
func WithLoginRoute(route string) Option {
	return func(t *RoundTripper) {
		t.coordinatorOptions = append(t.coordinatorOptions, CoordinateWithLoginRoute(route))
	}
}

// WithRefreshTimeout bounds the refresh call
func WithRefreshTimeout(timeout time.Duration) Option {
	return func(t *RoundTripper) {
		t.coordinatorOptions = append(t.coordinatorOptions, CoordinateWithTimeout(timeout))
	}
}

// WithListener sets refresh event listener
func WithListener(listener Listener) Option {
	return func(t *RoundTripper) {
		t.coordinatorOptions = append(t.coordinatorOptions, CoordinateWithListener(listener))
	}
}

// WithLogger sets logger
func WithLogger(logger *slog.Logger) Option {
	return func(t *RoundTripper) {
		t.logger = logger
		t.coordinatorOptions = append(t.coordinatorOptions, CoordinateWithLogger(logger))
	}
}

// Coordinator options, usable with NewCoordinator directly.

// CoordinateWithNavigator sets the navigator
func CoordinateWithNavigator(navigator Navigator) CoordinatorOption {
	return func(c *Coordinator) { c.navigator = navigator }
}

// CoordinateWithLoginRoute sets the login route
func CoordinateWithLoginRoute(route string) CoordinatorOption {
	return func(c *Coordinator) { c.loginRoute = route }
}

// CoordinateWithTimeout bounds the refresh call
func CoordinateWithTimeout(timeout time.Duration) CoordinatorOption {
	return func(c *Coordinator) { c.timeout = timeout }
}

// CoordinateWithListener sets the event listener
func CoordinateWithListener(listener Listener) CoordinatorOption {
	return func(c *Coordinator) { c.listener = listener }
}

// CoordinateWithLogger sets the logger
func CoordinateWithLogger(logger *slog.Logger) CoordinatorOption {
	return func(c *Coordinator) { c.logger = logger }
}
