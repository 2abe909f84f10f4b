package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/aetherid/console/client/auth/store"
	"github.com/aetherid/console/schema"
	"golang.org/x/oauth2"
)

// Refresher exchanges the current credential for a new one.
type Refresher interface {
	Refresh(ctx context.Context, token string) (*oauth2.Token, error)
}

// RefresherFunc adapts a function to Refresher.
type RefresherFunc func(ctx context.Context, token string) (*oauth2.Token, error)

func (f RefresherFunc) Refresh(ctx context.Context, token string) (*oauth2.Token, error) {
	return f(ctx, token)
}

// HTTPRefresher calls POST {token} on the refresh endpoint and reads {result:{token}}.
type HTTPRefresher struct {
	URL    string
	client *http.Client
}

// NewHTTPRefresher creates a refresher posting to URL. The client must not
// route through the authenticating RoundTripper.
func NewHTTPRefresher(URL string, client *http.Client) *HTTPRefresher {
	if client == nil {
		client = &http.Client{Transport: http.DefaultTransport}
	}
	return &HTTPRefresher{URL: URL, client: client}
}

func (h *HTTPRefresher) Refresh(ctx context.Context, token string) (*oauth2.Token, error) {
	body, err := json.Marshal(&schema.RefreshRequest{Token: token})
	if err != nil {
		return nil, err
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, h.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	response, err := h.client.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read refresh response: %w", err)
	}
	envelope := &schema.Response[schema.AuthenticationResponse]{}
	decodeErr := json.Unmarshal(data, envelope)
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, schema.NewError(response.StatusCode, envelope.Code, envelope.Message)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("invalid refresh response: %w", decodeErr)
	}
	if envelope.Result.Token == "" {
		return nil, schema.NewError(response.StatusCode, envelope.Code, "refresh response carries no token")
	}
	return store.NewToken(envelope.Result.Token), nil
}
