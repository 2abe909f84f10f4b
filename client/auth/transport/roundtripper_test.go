package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aetherid/console/client/auth/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"
)

// backend accepts a single valid token and serves /api/auth/refresh.
type backend struct {
	server        *httptest.Server
	mu            sync.Mutex
	valid         string
	next          string
	refreshCalls  atomic.Int32
	refreshTokens []string
	authHeaders   map[string][]string
	bodies        map[string][]string
	refreshGate   chan struct{}
	refreshStatus int
	afterRefresh  func()
}

func newBackend(t *testing.T, valid, next string) *backend {
	t.Helper()
	b := &backend{valid: valid, next: next, authHeaders: map[string][]string{}, bodies: map[string][]string{}}
	b.server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.server.Close)
	return b
}

func (b *backend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	b.authHeaders[r.URL.Path] = append(b.authHeaders[r.URL.Path], r.Header.Get("Authorization"))
	b.bodies[r.URL.Path] = append(b.bodies[r.URL.Path], string(body))
	b.mu.Unlock()

	switch r.URL.Path {
	case "/api/auth/refresh":
		b.refreshCalls.Add(1)
		if b.refreshGate != nil {
			<-b.refreshGate
		}
		if b.refreshStatus != 0 {
			w.WriteHeader(b.refreshStatus)
			_, _ = w.Write([]byte(`{"code":1006,"message":"unauthenticated"}`))
			return
		}
		request := map[string]string{}
		_ = json.Unmarshal(body, &request)
		b.mu.Lock()
		b.refreshTokens = append(b.refreshTokens, request["token"])
		b.valid = b.next
		b.mu.Unlock()
		if b.afterRefresh != nil {
			b.afterRefresh()
		}
		_, _ = w.Write([]byte(`{"code":1000,"result":{"token":"` + b.next + `"}}`))
	case "/api/auth/login":
		w.WriteHeader(http.StatusUnauthorized)
	default:
		b.mu.Lock()
		valid := b.valid
		b.mu.Unlock()
		if r.Header.Get("Authorization") != "Bearer "+valid {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"code":1000,"result":"` + r.URL.Path + `"}`))
	}
}

func (b *backend) headers(path string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.authHeaders[path]...)
}

func newRoundTripper(t *testing.T, b *backend, s store.Store, options ...Option) *RoundTripper {
	t.Helper()
	options = append([]Option{WithStore(s), WithRefreshURL(b.server.URL + "/api" + RefreshPath)}, options...)
	rt, err := New(options...)
	require.NoError(t, err)
	return rt
}

// releaseWhenQueued closes gate once queued requests wait on the in-flight refresh.
func releaseWhenQueued(coordinator *Coordinator, gate chan struct{}, queued int) {
	go func() {
		for coordinator.Pending() < queued {
			time.Sleep(time.Millisecond)
		}
		close(gate)
	}()
}

func get(t *testing.T, client *http.Client, URL string) (*http.Response, error) {
	t.Helper()
	request, err := http.NewRequest(http.MethodGet, URL, nil)
	require.NoError(t, err)
	return client.Do(request)
}

func TestRoundTripper_SingleFlight(t *testing.T) {
	b := newBackend(t, "T2", "T2")
	b.refreshGate = make(chan struct{})
	s := store.NewMemoryStore()
	require.NoError(t, s.AddToken(store.NewToken("T1")))
	rt := newRoundTripper(t, b, s)
	client := &http.Client{Transport: rt}

	paths := []string{"/api/orders", "/api/customers", "/api/products"}
	releaseWhenQueued(rt.Coordinator(), b.refreshGate, len(paths)-1)

	group := errgroup.Group{}
	for _, path := range paths {
		group.Go(func() error {
			resp, err := get(t, client, b.server.URL+path)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return errors.New("unexpected status " + resp.Status)
			}
			return nil
		})
	}
	require.NoError(t, group.Wait())

	assert.EqualValues(t, 1, b.refreshCalls.Load(), "exactly one refresh call")
	assert.Equal(t, []string{"T1"}, b.refreshTokens)
	assert.Empty(t, b.headers("/api/auth/refresh")[0], "refresh call carries no Authorization header")
	for _, path := range paths {
		assert.Equal(t, []string{"Bearer T1", "Bearer T2"}, b.headers(path), path)
	}
	token, ok := s.LookupToken()
	require.True(t, ok)
	assert.Equal(t, "T2", token.AccessToken)
	assert.Equal(t, Authenticated, rt.Coordinator().State())
}

func TestRoundTripper_ExcludedEndpoints(t *testing.T) {
	b := newBackend(t, "T1", "T2")
	s := store.NewMemoryStore()
	require.NoError(t, s.AddToken(store.NewToken("T1")))
	client := &http.Client{Transport: newRoundTripper(t, b, s)}

	resp, err := get(t, client, b.server.URL+"/api/auth/login")
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, []string{""}, b.headers("/api/auth/login"))
	assert.EqualValues(t, 0, b.refreshCalls.Load())
}

func TestRoundTripper_AtMostOneRetry(t *testing.T) {
	b := newBackend(t, "never", "T2")
	// the refreshed credential is revoked right away, so the replay is rejected too
	b.afterRefresh = func() {
		b.mu.Lock()
		b.valid = "never"
		b.mu.Unlock()
	}
	s := store.NewMemoryStore()
	require.NoError(t, s.AddToken(store.NewToken("T1")))
	client := &http.Client{Transport: newRoundTripper(t, b, s)}

	resp, err := get(t, client, b.server.URL+"/api/orders")
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "second 401 is propagated")
	assert.EqualValues(t, 1, b.refreshCalls.Load())
	assert.Equal(t, []string{"Bearer T1", "Bearer T2"}, b.headers("/api/orders"))
}

func TestRoundTripper_NoCredential(t *testing.T) {
	b := newBackend(t, "T1", "T2")
	client := &http.Client{Transport: newRoundTripper(t, b, store.NewMemoryStore())}

	resp, err := get(t, client, b.server.URL+"/api/orders")
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.EqualValues(t, 0, b.refreshCalls.Load())
	assert.Equal(t, []string{""}, b.headers("/api/orders"))
}

func TestRoundTripper_RefreshFailure(t *testing.T) {
	b := newBackend(t, "T2", "T2")
	b.refreshStatus = http.StatusUnauthorized
	b.refreshGate = make(chan struct{})
	s := store.NewMemoryStore()
	require.NoError(t, s.AddToken(store.NewToken("T1")))
	require.NoError(t, s.AddProfile(&store.Profile{Username: "khang", LoggedIn: true}))

	var navigations atomic.Int32
	navigator := NewRouteNavigator("/orders", func(route string) {
		navigations.Add(1)
	})
	rt := newRoundTripper(t, b, s, WithNavigator(navigator))
	client := &http.Client{Transport: rt}

	paths := []string{"/api/orders", "/api/customers", "/api/products"}
	releaseWhenQueued(rt.Coordinator(), b.refreshGate, len(paths)-1)

	errs := make(chan error, len(paths))
	wg := sync.WaitGroup{}
	for _, path := range paths {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := get(t, client, b.server.URL+path)
			if err == nil {
				_ = resp.Body.Close()
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.ErrorIs(t, err, ErrRefreshFailed)
	}
	assert.EqualValues(t, 1, b.refreshCalls.Load())
	assert.EqualValues(t, 1, navigations.Load(), "redirected exactly once")
	assert.Equal(t, DefaultLoginRoute, navigator.Location())
	_, ok := s.LookupToken()
	assert.False(t, ok, "credential wiped")
	_, ok = s.LookupProfile()
	assert.False(t, ok, "profile wiped")
}

func TestRoundTripper_ReplaysBody(t *testing.T) {
	b := newBackend(t, "T2", "T2")
	s := store.NewMemoryStore()
	require.NoError(t, s.AddToken(store.NewToken("T1")))
	client := &http.Client{Transport: newRoundTripper(t, b, s)}

	request, err := http.NewRequest(http.MethodPut, b.server.URL+"/api/orders/7/status", strings.NewReader(`{"orderStatus":"CONFIRMED"}`))
	require.NoError(t, err)
	resp, err := client.Do(request)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	b.mu.Lock()
	defer b.mu.Unlock()
	assert.Equal(t, []string{`{"orderStatus":"CONFIRMED"}`, `{"orderStatus":"CONFIRMED"}`}, b.bodies["/api/orders/7/status"])
}

func TestRoundTripper_TransportError(t *testing.T) {
	var refreshed atomic.Int32
	s := store.NewMemoryStore()
	require.NoError(t, s.AddToken(store.NewToken("T1")))
	rt, err := New(
		WithStore(s),
		WithTransport(roundTripperFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		})),
		WithRefresher(RefresherFunc(func(ctx context.Context, token string) (*oauth2.Token, error) {
			refreshed.Add(1)
			return store.NewToken("T2"), nil
		})),
	)
	require.NoError(t, err)

	_, err = get(t, &http.Client{Transport: rt}, "http://backend.invalid/api/orders")
	assert.ErrorContains(t, err, "connection refused")
	assert.EqualValues(t, 0, refreshed.Load())
}

// failingReader yields data then fails mid stream.
type failingReader struct {
	data []byte
	err  error
}

func (f *failingReader) Read(p []byte) (int, error) {
	if len(f.data) == 0 {
		return 0, f.err
	}
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, nil
}

func TestRoundTripper_BodyReadError(t *testing.T) {
	var sent atomic.Int32
	s := store.NewMemoryStore()
	require.NoError(t, s.AddToken(store.NewToken("T1")))
	rt, err := New(
		WithStore(s),
		WithRefreshURL("http://backend.invalid/api/auth/refresh"),
		WithTransport(roundTripperFunc(func(*http.Request) (*http.Response, error) {
			sent.Add(1)
			return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
		})),
	)
	require.NoError(t, err)

	readErr := errors.New("connection reset")
	body := &failingReader{data: []byte(`{"name":"par`), err: readErr}
	req, err := http.NewRequest(http.MethodPost, "http://backend.invalid/api/orders", body)
	require.NoError(t, err)
	_, err = rt.RoundTrip(req)
	assert.ErrorIs(t, err, readErr)
	assert.EqualValues(t, 0, sent.Load(), "truncated body is never sent")
}

func TestNew_RequiresRefreshEndpoint(t *testing.T) {
	_, err := New()
	assert.Error(t, err)
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}
