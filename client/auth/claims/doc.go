// Package claims decodes the identity carried by a bearer token.
//
// Decoding is a pure function over the token string so role checks can be
// exercised without storage or network access.
package claims
