package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aetherid/console/client/auth/store"
	"github.com/aetherid/console/schema"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type captured struct {
	method      string
	path        string
	query       string
	body        string
	contentType string
	requestID   string
	auth        string
}

func newTestClient(t *testing.T, status int, response string, options ...Option) (*Client, *captured) {
	t.Helper()
	ret := &captured{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		*ret = captured{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, body: string(data),
			contentType: r.Header.Get("Content-Type"), requestID: r.Header.Get(RequestIDHeader), auth: r.Header.Get("Authorization")}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	client, err := New(server.URL, options...)
	require.NoError(t, err)
	return client, ret
}

func TestClient_Do(t *testing.T) {
	var testCases = []struct {
		description string
		status      int
		response    string
		expect      *item
		expectErr   *schema.Error
	}{
		{description: "result unwrapped", status: 200, response: `{"code":1000,"result":{"id":7,"name":"laptop"}}`, expect: &item{ID: 7, Name: "laptop"}},
		{description: "absent code is success", status: 200, response: `{"result":{"id":1}}`, expect: &item{ID: 1}},
		{description: "failure code without result", status: 200, response: `{"code":1005,"message":"not found","result":null}`,
			expectErr: &schema.Error{StatusCode: 200, Code: 1005, Message: "not found"}},
		{description: "failure code with false result", status: 200, response: `{"code":9999,"result":false}`,
			expectErr: &schema.Error{StatusCode: 200, Code: 9999}},
		{description: "truthy result wins over code", status: 200, response: `{"code":9999,"result":{"id":3}}`, expect: &item{ID: 3}},
		{description: "non 2xx with envelope", status: 400, response: `{"code":1001,"message":"invalid"}`,
			expectErr: &schema.Error{StatusCode: 400, Code: 1001, Message: "invalid"}},
		{description: "non 2xx without body", status: 503, response: ``,
			expectErr: &schema.Error{StatusCode: 503, Message: "Service Unavailable"}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			client, _ := newTestClient(t, testCase.status, testCase.response)
			actual := &item{}
			err := client.Do(context.Background(), &Request{Path: "/items/1"}, actual)
			if testCase.expectErr != nil {
				var apiErr *schema.Error
				require.True(t, errors.As(err, &apiErr), "expected *schema.Error, got %v", err)
				assert.EqualValues(t, testCase.expectErr, apiErr)
				return
			}
			require.NoError(t, err)
			assert.EqualValues(t, testCase.expect, actual)
		})
	}
}

func TestClient_Request(t *testing.T) {
	client, actual := newTestClient(t, 200, `{"code":1000,"result":{"id":2,"name":"phone"}}`)
	assert.True(t, len(client.BaseURL()) > len(APIPath))

	created := &item{}
	err := client.Post(context.Background(), "orders", &item{Name: "phone"}, created)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, actual.method)
	assert.Equal(t, "/api/orders", actual.path)
	assert.Equal(t, "application/json", actual.contentType)
	assert.JSONEq(t, `{"id":0,"name":"phone"}`, actual.body)
	assert.Empty(t, actual.auth, "no credential, no header")
	_, err = uuid.Parse(actual.requestID)
	assert.NoError(t, err)
	firstID := actual.requestID

	require.NoError(t, client.Get(context.Background(), "/orders", map[string][]string{"page": {"0"}}, nil))
	assert.Equal(t, http.MethodGet, actual.method)
	assert.Equal(t, "page=0", actual.query)
	assert.Empty(t, actual.contentType)
	assert.NotEqual(t, firstID, actual.requestID)
}

func TestClient_Credential(t *testing.T) {
	credentials := store.NewMemoryStore()
	require.NoError(t, credentials.AddToken(store.NewToken("T1")))
	client, actual := newTestClient(t, 200, `{"result":true}`, WithStore(credentials))

	require.NoError(t, client.Delete(context.Background(), "/orders/1", nil))
	assert.Equal(t, http.MethodDelete, actual.method)
	assert.Equal(t, "Bearer T1", actual.auth)
	assert.Same(t, credentials, client.Store())
	assert.True(t, client.Auth().IsAuthenticated())
}

func TestClient_TransportError(t *testing.T) {
	failure := errors.New("connection refused")
	client, err := New("http://backend.local", WithTransport(roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return nil, failure
	})))
	require.NoError(t, err)
	err = client.Get(context.Background(), "/orders", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, failure)
	assert.Equal(t, 0, schema.StatusCode(err))
}

func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(server.Close)
	client, err := New(server.URL, WithTimeout(50*time.Millisecond))
	require.NoError(t, err)
	err = client.Get(context.Background(), "/orders", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetch(t *testing.T) {
	client, _ := newTestClient(t, 200, `{"code":1000,"result":[{"id":1},{"id":2}]}`)
	items, err := Fetch[[]item](context.Background(), client, &Request{Path: "/items"})
	require.NoError(t, err)
	assert.Len(t, *items, 2)

	_, err = Fetch[item](context.Background(), client, &Request{Path: "/items"})
	var typeErr *json.UnmarshalTypeError
	assert.True(t, errors.As(err, &typeErr))
}

func TestAPIURL(t *testing.T) {
	assert.Equal(t, "http://host/api", APIURL("http://host"))
	assert.Equal(t, "http://host/api", APIURL("http://host/"))
	assert.Equal(t, "http://host/api", APIURL("http://host/api/"))
	assert.Equal(t, "http://host/api/orders?page=1", (&Request{Path: "orders", Query: map[string][]string{"page": {"1"}}}).URL("http://host/api/"))
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
