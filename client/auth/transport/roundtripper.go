package transport

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aetherid/console/client/auth/store"
)

// Endpoints that authenticate by themselves.
const (
	LoginPath   = "/auth/login"
	RefreshPath = "/auth/refresh"
)

// RoundTripper attaches the stored bearer credential to outgoing requests and
// recovers once from a 401 through the shared refresh Coordinator.
type RoundTripper struct {
	store              store.Store
	coordinator        *Coordinator
	coordinatorOptions []CoordinatorOption
	refresher          Refresher
	refreshURL         string
	excluded           []string
	transport          http.RoundTripper
	logger             *slog.Logger
}

func New(options ...Option) (*RoundTripper, error) {
	ret := &RoundTripper{
		transport: http.DefaultTransport,
		store:     store.NewMemoryStore(),
		excluded:  []string{LoginPath, RefreshPath},
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.coordinator != nil {
		return ret, nil
	}
	if ret.refresher == nil {
		if ret.refreshURL == "" {
			return nil, errors.New("refresh endpoint was empty")
		}
		ret.refresher = NewHTTPRefresher(ret.refreshURL, &http.Client{Transport: ret.transport})
	}
	ret.coordinator = NewCoordinator(ret.store, ret.refresher, ret.coordinatorOptions...)
	return ret, nil
}

// Store returns the credential store
func (r *RoundTripper) Store() store.Store {
	return r.store
}

// Coordinator returns the refresh coordinator
func (r *RoundTripper) Coordinator() *Coordinator {
	return r.coordinator
}

func (r *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	excluded := matchesPath(req.URL, r.excluded)
	outgoing, err := clone(req)
	if err != nil {
		return nil, err
	}
	var used string
	if !excluded {
		if token, ok := r.store.LookupToken(); ok && token.AccessToken != "" {
			token.SetAuthHeader(outgoing)
			used = token.AccessToken
		}
	}
	resp, err := r.transport.RoundTrip(outgoing)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || excluded {
		return resp, nil
	}
	// an unauthenticated caller has nothing to refresh
	if token, ok := r.store.LookupToken(); !ok || token.AccessToken == "" {
		return resp, nil
	}
	// Close the prior body so we don’t leak.
	drain(resp)

	token, err := r.coordinator.Refresh(req.Context(), used)
	if err != nil {
		r.logger.Debug("request not replayed", "method", req.Method, "url", req.URL.String(), "error", err)
		return nil, err
	}
	// the replay goes straight to the transport: a second 401 is returned as is
	retry, err := clone(req)
	if err != nil {
		return nil, err
	}
	token.SetAuthHeader(retry)
	return r.transport.RoundTrip(retry)
}
