package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/aetherid/console/client/auth/claims"
	"github.com/aetherid/console/client/auth/store"
	"github.com/aetherid/console/client/auth/transport"
	"github.com/aetherid/console/schema"
)

// LogoutPath invalidates the credential on the backend.
const LogoutPath = "/auth/logout"

// ErrNoToken is returned when the backend accepts a login without issuing a credential.
var ErrNoToken = errors.New("login response carries no token")

// Caller posts a JSON body to an API path and unwraps the result.
type Caller interface {
	Post(ctx context.Context, path string, body, result any) error
}

// Service manages the session: it obtains the credential at login, derives the
// cached identity from its claims and discards both at logout.
type Service struct {
	caller Caller
	store  store.Store
	logger *slog.Logger
}

// Option represents option
type Option func(s *Service)

// WithLogger sets logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// Login exchanges username and password for a credential and stores it together with the identity it carries.
func (s *Service) Login(ctx context.Context, username, password string) (*schema.AuthenticationResponse, error) {
	ret := &schema.AuthenticationResponse{}
	err := s.caller.Post(ctx, transport.LoginPath, &schema.LoginRequest{Username: username, Password: password}, ret)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if ret.Token == "" {
		return nil, ErrNoToken
	}
	if err = s.store.AddToken(store.NewToken(ret.Token)); err != nil {
		return nil, fmt.Errorf("failed to store credential: %w", err)
	}
	profile := &store.Profile{Username: username, LoggedIn: true}
	if decoded, err := claims.Decode(ret.Token); err != nil {
		s.logger.Warn("credential claims not decodable", "error", err)
	} else {
		if name := decoded.Username(); name != "" {
			profile.Username = name
		}
		profile.Roles = decoded.Roles()
	}
	if err = s.store.AddProfile(profile); err != nil {
		return nil, fmt.Errorf("failed to store profile: %w", err)
	}
	s.logger.Info("logged in", "username", profile.Username, "admin", slices.Contains(profile.Roles, claims.AdminRole))
	return ret, nil
}

// Logout invalidates the credential on the backend, best effort, and always clears the store.
func (s *Service) Logout(ctx context.Context) error {
	if token, ok := s.store.LookupToken(); ok && token.AccessToken != "" {
		if err := s.caller.Post(ctx, LogoutPath, &schema.LogoutRequest{Token: token.AccessToken}, nil); err != nil {
			s.logger.Warn("backend logout failed", "error", err)
		}
	}
	if err := s.store.RemoveToken(); err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether a credential is stored.
func (s *Service) IsAuthenticated() bool {
	token, ok := s.store.LookupToken()
	return ok && token.AccessToken != ""
}

// IsAdmin reports whether the stored credential grants the admin role.
func (s *Service) IsAdmin() bool {
	return store.IsAdmin(s.store)
}

// Profile returns the identity cached at login.
func (s *Service) Profile() (*store.Profile, bool) {
	return s.store.LookupProfile()
}

// New creates a session service
func New(caller Caller, store store.Store, options ...Option) *Service {
	ret := &Service{
		caller: caller,
		store:  store,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
