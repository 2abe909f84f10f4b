package mock

import (
	"errors"
	"strings"
	"time"

	"github.com/aetherid/console/client/auth/claims"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	errRevoked = errors.New("token revoked")
	errExpired = errors.New("token expired")
)

// createJWT creates a signed access token for subject carrying roles as scope
func (s *Service) createJWT(subject string, roles []string) (string, error) {
	now := time.Now()
	jti := uuid.NewString()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.Issuer,
			Subject:   subject,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TokenTTL)),
		},
		Scope: strings.Join(roles, " "),
	})
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", err
	}
	s.mux.Lock()
	s.issued[jti] = subject
	s.mux.Unlock()
	return signed, nil
}

// verify checks signature and revocation; allowExpired accepts tokens past
// their lifetime, which the refresh endpoint exchanges.
func (s *Service) verify(raw string, allowExpired bool) (*claims.Claims, error) {
	ret := &claims.Claims{}
	options := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if allowExpired {
		options = append(options, jwt.WithoutClaimsValidation())
	}
	_, err := jwt.ParseWithClaims(raw, ret, func(*jwt.Token) (any, error) {
		return s.Secret, nil
	}, options...)
	if err != nil {
		return nil, err
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if _, ok := s.issued[ret.ID]; !ok || s.revoked[ret.ID] {
		return nil, errRevoked
	}
	if !allowExpired && s.expired[ret.ID] {
		return nil, errExpired
	}
	return ret, nil
}

func (s *Service) revoke(jti string) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.revoked[jti] = true
}
