package transport

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

func clone(r *http.Request) (*http.Request, error) {
	cloned := r.Clone(r.Context())
	// deep-copy body for idempotent POST replay
	if r.Body != nil && r.Body != http.NoBody {
		buf, err := io.ReadAll(r.Body)
		_ = r.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %v %v body: %w", r.Method, r.URL, err)
		}
		r.Body = io.NopCloser(bytes.NewReader(buf))
		cloned.Body = io.NopCloser(bytes.NewReader(buf))
	}
	return cloned, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func matchesPath(target *url.URL, paths []string) bool {
	if target == nil {
		return false
	}
	path := strings.TrimSuffix(target.Path, "/")
	for _, candidate := range paths {
		if candidate != "" && strings.HasSuffix(path, candidate) {
			return true
		}
	}
	return false
}
