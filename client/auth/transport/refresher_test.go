package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aetherid/console/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPRefresher_Refresh(t *testing.T) {
	var testCases = []struct {
		description  string
		status       int
		body         string
		expect       string
		expectErr    bool
		unauthorized bool
	}{
		{
			description: "issued token",
			status:      http.StatusOK,
			body:        `{"code":1000,"result":{"token":"T2","authenticated":true}}`,
			expect:      "T2",
		},
		{
			description:  "rejected",
			status:       http.StatusUnauthorized,
			body:         `{"code":1006,"message":"Unauthenticated"}`,
			expectErr:    true,
			unauthorized: true,
		},
		{
			description: "missing token",
			status:      http.StatusOK,
			body:        `{"code":1000,"result":{}}`,
			expectErr:   true,
		},
		{
			description: "malformed body",
			status:      http.StatusOK,
			body:        `<html>`,
			expectErr:   true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			var received string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				request := &schema.RefreshRequest{}
				_ = json.NewDecoder(r.Body).Decode(request)
				received = request.Token
				w.WriteHeader(testCase.status)
				_, _ = w.Write([]byte(testCase.body))
			}))
			defer server.Close()

			refresher := NewHTTPRefresher(server.URL+"/api/auth/refresh", nil)
			token, err := refresher.Refresh(context.Background(), "T1")
			assert.Equal(t, "T1", received)
			if testCase.expectErr {
				require.Error(t, err)
				assert.Equal(t, testCase.unauthorized, schema.IsUnauthorized(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expect, token.AccessToken)
			assert.Equal(t, "Bearer", token.Type())
		})
	}
}

func TestMatchesPath(t *testing.T) {
	var testCases = []struct {
		URL    string
		expect bool
	}{
		{URL: "http://localhost/api/auth/login", expect: true},
		{URL: "http://localhost/api/auth/refresh/", expect: true},
		{URL: "http://localhost/api/auth/logout", expect: false},
		{URL: "http://localhost/api/orders", expect: false},
	}
	for _, testCase := range testCases {
		request, err := http.NewRequest(http.MethodGet, testCase.URL, nil)
		require.NoError(t, err)
		assert.Equal(t, testCase.expect, matchesPath(request.URL, []string{LoginPath, RefreshPath}), testCase.URL)
	}
}
