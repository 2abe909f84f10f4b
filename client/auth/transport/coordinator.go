package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aetherid/console/client/auth/store"
	"golang.org/x/oauth2"
)

var (
	// ErrNoCredential is returned when a refresh is requested but no credential is stored.
	ErrNoCredential = errors.New("no credential to refresh")
	// ErrRefreshFailed wraps every terminal refresh failure; the session is over.
	ErrRefreshFailed = errors.New("credential refresh failed")
)

// State is the session state observed by the coordinator.
type State int

const (
	Unauthenticated State = iota
	Authenticated
	Refreshing
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "AUTHENTICATED"
	case Refreshing:
		return "REFRESHING"
	default:
		return "UNAUTHENTICATED"
	}
}

type (
	result struct {
		token *oauth2.Token
		err   error
	}

	waiter struct {
		seq  uint64
		done chan result
	}

	// Coordinator keeps at most one credential refresh in flight and fans its
	// outcome out to every request that failed with 401 meanwhile.
	// One coordinator should be shared by every dispatcher of a session.
	Coordinator struct {
		mux        sync.Mutex
		store      store.Store
		refresher  Refresher
		navigator  Navigator
		loginRoute string
		timeout    time.Duration
		listener   Listener
		logger     *slog.Logger
		refreshing bool
		redirected bool
		waiters    []*waiter
		seq        uint64
	}

	// CoordinatorOption configures a Coordinator.
	CoordinatorOption func(*Coordinator)
)

// NewCoordinator creates a coordinator refreshing credentials held by store.
func NewCoordinator(store store.Store, refresher Refresher, options ...CoordinatorOption) *Coordinator {
	ret := &Coordinator{
		store:      store,
		refresher:  refresher,
		navigator:  NewRouteNavigator("/", nil),
		loginRoute: DefaultLoginRoute,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// State reports the current session state.
func (c *Coordinator) State() State {
	c.mux.Lock()
	defer c.mux.Unlock()
	if c.refreshing {
		return Refreshing
	}
	if token, ok := c.store.LookupToken(); ok && token.AccessToken != "" {
		return Authenticated
	}
	return Unauthenticated
}

// Pending returns the number of requests waiting on the in-flight refresh.
func (c *Coordinator) Pending() int {
	c.mux.Lock()
	defer c.mux.Unlock()
	return len(c.waiters)
}

// Refresh returns the credential a request rejected with 401 should be replayed with.
// stale is the access token the rejected request carried.
//
// While a refresh is in flight the caller is queued and resumed, in arrival
// order, with its outcome. When the stored credential already differs from
// stale (a refresh completed after the request was sent, or the request went out
// anonymously), it is returned without a new refresh. Otherwise the caller leads
// a new refresh.
func (c *Coordinator) Refresh(ctx context.Context, stale string) (*oauth2.Token, error) {
	c.mux.Lock()
	if c.refreshing {
		w := c.enqueue()
		c.mux.Unlock()
		return c.await(ctx, w)
	}
	current, ok := c.store.LookupToken()
	if !ok || current.AccessToken == "" {
		c.mux.Unlock()
		return nil, ErrNoCredential
	}
	if current.AccessToken != stale {
		c.mux.Unlock()
		return current, nil
	}
	if c.redirected && c.navigator != nil && c.navigator.Location() != c.loginRoute {
		c.redirected = false
	}
	c.refreshing = true
	c.emit(Event{Type: EventRefreshStarted})
	c.mux.Unlock()

	token, err := c.refresh(ctx, current.AccessToken)
	return c.complete(token, err)
}

func (c *Coordinator) refresh(ctx context.Context, current string) (*oauth2.Token, error) {
	// the leader's cancellation must not fail every queued request
	ctx = context.WithoutCancel(ctx)
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	token, err := c.refresher.Refresh(ctx, current)
	if err == nil && (token == nil || token.AccessToken == "") {
		err = errors.New("refresh returned an empty credential")
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}
	return token, nil
}

// complete publishes the refresh outcome; the flag is cleared only once every waiter is drained.
func (c *Coordinator) complete(token *oauth2.Token, err error) (*oauth2.Token, error) {
	c.mux.Lock()
	defer c.mux.Unlock()
	waiters := c.waiters
	c.waiters = nil
	defer func() { c.refreshing = false }()

	if err == nil {
		if err = c.store.AddToken(token); err != nil {
			err = fmt.Errorf("%w: failed to store credential: %w", ErrRefreshFailed, err)
		}
	}
	if err != nil {
		c.emit(Event{Type: EventRefreshFailed, Err: err})
		c.resolve(waiters, result{err: err})
		if rErr := c.store.RemoveToken(); rErr != nil {
			c.logger.Warn("failed to clear credential", "error", rErr)
		}
		c.redirect()
		return nil, err
	}
	c.emit(Event{Type: EventRefreshSucceeded})
	c.resolve(waiters, result{token: token})
	return token, nil
}

func (c *Coordinator) resolve(waiters []*waiter, outcome result) {
	for _, w := range waiters {
		w.done <- outcome
		c.emit(Event{Type: EventWaiterResolved, Seq: w.seq, Err: outcome.err})
	}
}

// redirect sends the user to login unless they are already there. A login route
// left over from an earlier redirect does not count: a session ending now was
// established after it.
func (c *Coordinator) redirect() {
	if c.navigator == nil {
		return
	}
	if c.navigator.Location() == c.loginRoute && !c.redirected {
		return
	}
	if err := c.navigator.Navigate(c.loginRoute); err != nil {
		c.logger.Warn("failed to navigate to login", "route", c.loginRoute, "error", err)
		return
	}
	c.redirected = true
	c.emit(Event{Type: EventRedirected})
}

func (c *Coordinator) enqueue() *waiter {
	c.seq++
	w := &waiter{seq: c.seq, done: make(chan result, 1)}
	c.waiters = append(c.waiters, w)
	c.emit(Event{Type: EventWaiterQueued, Seq: w.seq})
	return w
}

func (c *Coordinator) await(ctx context.Context, w *waiter) (*oauth2.Token, error) {
	select {
	case outcome := <-w.done:
		return outcome.token, outcome.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// emit must be called with mux held; listeners must not call back into the coordinator.
func (c *Coordinator) emit(event Event) {
	attrs := []any{"event", string(event.Type)}
	if event.Seq > 0 {
		attrs = append(attrs, "seq", event.Seq)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err)
		c.logger.Warn("credential refresh", attrs...)
	} else {
		c.logger.Debug("credential refresh", attrs...)
	}
	if c.listener != nil {
		c.listener(event)
	}
}
