// Package auth manages the console session on the client side.
//
// The Service type logs in with username and password, keeps the issued bearer
// credential and the identity decoded from it in a store.Store, and clears both
// at logout. The sub-packages provide the pieces it is built from:
//   - claims decodes the credential payload (subject, roles, expiry).
//   - store persists the credential (memory, file, Redis or SQL backed).
//   - transport attaches the credential to outgoing requests and refreshes it
//     once for every group of concurrent 401 responses.
package auth
