package mock

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// Envelope codes returned by the mock backend.
const (
	CodeSuccess         = 1000
	CodeUncategorized   = 9999
	CodeInvalidRequest  = 1001
	CodeNotFound        = 1005
	CodeUnauthenticated = 1006
	CodeUnauthorized    = 1007
)

const (
	AdminUsername = "admin"
	AdminPassword = "admin123"
	StaffUsername = "staff"
	StaffPassword = "staff123"
)

type account struct {
	id       int64
	username string
	email    string
	hash     []byte
	roles    []string
}

// Service is an in-memory console backend. Handlers can be replaced to simulate failures.
type Service struct {
	Secret   []byte
	Issuer   string
	TokenTTL time.Duration

	// RefreshHandler overrides POST /auth/refresh when set.
	RefreshHandler gin.HandlerFunc
	// RefreshDelay holds every refresh before a token is issued.
	RefreshDelay time.Duration

	failRefresh  atomic.Bool
	refreshCalls atomic.Int32
	loginCalls   atomic.Int32

	mux         sync.Mutex
	accounts    map[string]*account
	issued      map[string]string // jti -> subject
	expired     map[string]bool
	revoked     map[string]bool
	collections map[string]*collection
}

// FailRefresh makes every subsequent refresh fail with 401 until reset.
func (s *Service) FailRefresh(fail bool) {
	s.failRefresh.Store(fail)
}

// RefreshCalls returns the number of refresh requests received.
func (s *Service) RefreshCalls() int {
	return int(s.refreshCalls.Load())
}

// LoginCalls returns the number of login requests received.
func (s *Service) LoginCalls() int {
	return int(s.loginCalls.Load())
}

// AddUser registers an account able to log in.
func (s *Service) AddUser(username, password string, roles ...string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	s.accounts[username] = &account{
		id:       int64(len(s.accounts) + 1),
		username: username,
		email:    username + "@console.local",
		hash:     hash,
		roles:    roles,
	}
	return nil
}

// ExpireAll makes every issued access token rejected by resources while
// still accepted by the refresh endpoint.
func (s *Service) ExpireAll() {
	s.mux.Lock()
	defer s.mux.Unlock()
	for jti := range s.issued {
		s.expired[jti] = true
	}
}

// RevokeAll makes every issued token rejected everywhere, refresh included.
func (s *Service) RevokeAll() {
	s.mux.Lock()
	defer s.mux.Unlock()
	for jti := range s.issued {
		s.revoked[jti] = true
	}
}

// New creates a backend seeded with an admin and a staff account and sample data.
func New() (*Service, error) {
	ret := &Service{
		Secret:      []byte("console-mock-secret"),
		Issuer:      "console-mock",
		TokenTTL:    time.Hour,
		accounts:    map[string]*account{},
		issued:      map[string]string{},
		expired:     map[string]bool{},
		revoked:     map[string]bool{},
		collections: map[string]*collection{},
	}
	if err := ret.AddUser(AdminUsername, AdminPassword, "ROLE_ADMIN", "ROLE_STAFF"); err != nil {
		return nil, err
	}
	if err := ret.AddUser(StaffUsername, StaffPassword, "ROLE_STAFF"); err != nil {
		return nil, err
	}
	if err := ret.seed(); err != nil {
		return nil, err
	}
	return ret, nil
}
