// Package mock provides an in-memory console backend for tests and local development.
//
// The backend issues HS256 signed access tokens at /api/auth/login, exchanges
// them at /api/auth/refresh and protects every other endpoint with bearer
// authentication. Tokens can be expired or revoked on demand, and the refresh
// endpoint can be forced to fail, so that the client side refresh flow can be
// exercised without a real server.
package mock
