// Package transport implements the authenticating http.RoundTripper used by the
// console API client.
//
// Every request except the login and refresh calls carries the stored bearer
// credential. When the backend answers 401 the RoundTripper asks the shared
// Coordinator for a fresh credential and replays the request exactly once.
// The Coordinator guarantees a single refresh call in flight: requests failing
// meanwhile queue up and are resumed in arrival order with the outcome. A failed
// refresh ends the session: the credential is wiped, every waiter gets the error
// and the Navigator is sent to the login route unless it is already there.
package transport
