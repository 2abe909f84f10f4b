// Package client implements the HTTP client of the admin console backend.
//
// Every call goes through the authenticating RoundTripper from the
// auth/transport sub-package, which adds:
//   - The stored bearer credential on every request but login and refresh.
//   - A single shared credential refresh when requests are rejected with
//     *401 Unauthorized*, after which each rejected request is replayed once.
//   - Session termination (credential wipe and redirect to login) when the
//     refresh fails.
//
// Responses use the {code, message, result} envelope; Do unwraps result and
// reports failures as *schema.Error.
//
// Example:
//
//	cli, _ := client.New("https://console.example.com", client.WithStore(store.NewMemoryStore()))
//	_, _ = cli.Auth().Login(ctx, "admin", "secret")
//	orders := &schema.Page[schema.Order]{}
//	_ = cli.Get(ctx, "/orders", url.Values{"page": {"0"}}, orders)
package client
