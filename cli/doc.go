// Package cli implements the console command line: login, logout, whoami, get,
// orders and dashboard. Flags are parsed with go-flags; the session is kept in
// the configured credential store between invocations.
package cli
