package client

import (
	"net/url"
	"strings"
)

// Request describes one API call. Path is relative to the API base, e.g. /orders/7.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// URL returns the absolute request URL for base.
func (r *Request) URL(base string) string {
	path := r.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	ret := strings.TrimRight(base, "/") + path
	if len(r.Query) > 0 {
		ret += "?" + r.Query.Encode()
	}
	return ret
}

// APIURL returns the API base for a backend origin.
func APIURL(origin string) string {
	origin = strings.TrimRight(origin, "/")
	if strings.HasSuffix(origin, APIPath) {
		return origin
	}
	return origin + APIPath
}
