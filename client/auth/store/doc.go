// Package store defines the credential store used by the authenticated
// transport and the auth service.
//
// The store holds the bearer token plus the identity cached at login
// (username, roles, login flag). It ships with an in-memory implementation and
// persistent backends over afs (file, mem and cloud URLs), Redis and SQLite.
package store
