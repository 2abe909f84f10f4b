// Package console provides a high-level client of the admin console backend.
//
// The package glues the HTTP API client, the session service and the resource
// services together with a configurable credential store. In practice it is used
// as an umbrella package with two entry points:
//  1. LoadOptions – reads ClientOptions from a YAML document, a .env file and
//     CONSOLE_* environment variables.
//  2. NewClient – returns a Console whose calls carry the stored bearer
//     credential and recover from 401 responses with a single shared refresh.
//
// Example:
//
//	options, _ := console.LoadOptions(ctx, "file://localhost/etc/console.yaml")
//	cli, _ := console.NewClient(ctx, options)
//	defer cli.Close()
//	_, _ = cli.Auth().Login(ctx, "admin", "secret")
//	page, _ := cli.Orders.List(ctx, resource.PageRequest{Size: 20})
package console
