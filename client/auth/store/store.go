package store

import (
	"strings"
	"sync"

	"github.com/aetherid/console/client/auth/claims"
	"golang.org/x/oauth2"
)

// Persisted entry names. All of them are cleared together by RemoveToken.
const (
	TokenKey    = "access_token"
	UsernameKey = "username"
	RolesKey    = "roles"
	LoggedInKey = "isLoggedIn"
)

var keys = []string{TokenKey, UsernameKey, RolesKey, LoggedInKey}

// Profile is the identity cached alongside the credential at login.
type Profile struct {
	Username string
	Roles    []string
	LoggedIn bool
}

// Store is a process-wide persistence layer for the bearer credential and the
// identity derived from it. The in‑memory default is fine for CLI tools; swap with
// a file, Redis or SQL backend to share a session across processes.
type Store interface {
	LookupToken() (*oauth2.Token, bool)
	AddToken(token *oauth2.Token) error
	// RemoveToken clears the credential and every derived identity entry.
	RemoveToken() error
	LookupProfile() (*Profile, bool)
	AddProfile(profile *Profile) error
}

// NewToken wraps a raw access token, taking the expiry from its claims when decodable.
func NewToken(accessToken string) *oauth2.Token {
	ret := &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}
	if decoded, err := claims.Decode(accessToken); err == nil {
		ret.Expiry = decoded.Expiry()
	}
	return ret
}

// IsAdmin reports whether the stored credential grants the admin role.
// It returns false when no credential is stored or it cannot be decoded.
func IsAdmin(s Store) bool {
	token, ok := s.LookupToken()
	if !ok || token.AccessToken == "" {
		return false
	}
	decoded, err := claims.Decode(token.AccessToken)
	if err != nil {
		return false
	}
	return claims.IsAdmin(decoded)
}

type memoryStore struct {
	mu      sync.RWMutex
	token   *oauth2.Token
	profile *Profile
}

func (m *memoryStore) LookupToken() (*oauth2.Token, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.token == nil {
		return nil, false
	}
	return m.token, true
}

func (m *memoryStore) AddToken(token *oauth2.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memoryStore) RemoveToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = nil
	m.profile = nil
	return nil
}

func (m *memoryStore) LookupProfile() (*Profile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.profile == nil {
		return nil, false
	}
	ret := *m.profile
	return &ret, true
}

func (m *memoryStore) AddProfile(profile *Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profile = profile
	return nil
}

// NewMemoryStore creates an in-memory store.
func NewMemoryStore() Store {
	return &memoryStore{}
}

func encodeProfile(profile *Profile) map[string]string {
	loggedIn := "false"
	if profile.LoggedIn {
		loggedIn = "true"
	}
	return map[string]string{
		UsernameKey: profile.Username,
		RolesKey:    strings.Join(profile.Roles, " "),
		LoggedInKey: loggedIn,
	}
}

func decodeProfile(values map[string]string) (*Profile, bool) {
	username, hasUser := values[UsernameKey]
	loggedIn, hasFlag := values[LoggedInKey]
	if !hasUser && !hasFlag {
		return nil, false
	}
	return &Profile{
		Username: username,
		Roles:    strings.Fields(values[RolesKey]),
		LoggedIn: loggedIn == "true",
	}, true
}
