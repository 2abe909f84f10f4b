package mock

import (
	"net/http"
	"strings"
	"time"

	"github.com/aetherid/console/schema"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const subjectKey = "subject"

func respond(c *gin.Context, result any) {
	c.JSON(http.StatusOK, schema.Response[any]{Code: CodeSuccess, Result: result})
}

func fail(c *gin.Context, status, code int, message string) {
	c.AbortWithStatusJSON(status, schema.Response[any]{Code: code, Message: message})
}

// defaultLoginHandler handles POST /auth/login
func (s *Service) defaultLoginHandler(c *gin.Context) {
	s.loginCalls.Add(1)
	request := &schema.LoginRequest{}
	if err := c.ShouldBindJSON(request); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, "invalid login request")
		return
	}
	s.mux.Lock()
	user, ok := s.accounts[request.Username]
	s.mux.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(user.hash, []byte(request.Password)) != nil {
		fail(c, http.StatusUnauthorized, CodeUnauthenticated, "Unauthenticated")
		return
	}
	token, err := s.createJWT(user.username, user.roles)
	if err != nil {
		fail(c, http.StatusInternalServerError, CodeUncategorized, "failed to issue token")
		return
	}
	respond(c, &schema.AuthenticationResponse{Token: token, Authenticated: true})
}

// defaultRefreshHandler handles POST /auth/refresh: the presented token is revoked and a new one issued
func (s *Service) defaultRefreshHandler(c *gin.Context) {
	s.refreshCalls.Add(1)
	if s.RefreshDelay > 0 {
		time.Sleep(s.RefreshDelay)
	}
	if s.failRefresh.Load() {
		fail(c, http.StatusUnauthorized, CodeUnauthenticated, "Unauthenticated")
		return
	}
	request := &schema.RefreshRequest{}
	if err := c.ShouldBindJSON(request); err != nil || request.Token == "" {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, "invalid refresh request")
		return
	}
	current, err := s.verify(request.Token, true)
	if err != nil {
		fail(c, http.StatusUnauthorized, CodeUnauthenticated, "Unauthenticated")
		return
	}
	s.revoke(current.ID)
	token, err := s.createJWT(current.Subject, current.Roles())
	if err != nil {
		fail(c, http.StatusInternalServerError, CodeUncategorized, "failed to issue token")
		return
	}
	respond(c, &schema.AuthenticationResponse{Token: token, Authenticated: true})
}

// defaultLogoutHandler handles POST /auth/logout
func (s *Service) defaultLogoutHandler(c *gin.Context) {
	request := &schema.LogoutRequest{}
	if err := c.ShouldBindJSON(request); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, "invalid logout request")
		return
	}
	if current, err := s.verify(request.Token, true); err == nil {
		s.revoke(current.ID)
	}
	respond(c, nil)
}

// authenticate rejects requests without a valid, unexpired bearer token
func (s *Service) authenticate(c *gin.Context) {
	raw, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !found || raw == "" {
		fail(c, http.StatusUnauthorized, CodeUnauthenticated, "Unauthenticated")
		return
	}
	current, err := s.verify(raw, false)
	if err != nil {
		fail(c, http.StatusUnauthorized, CodeUnauthenticated, "Unauthenticated")
		return
	}
	c.Set(subjectKey, current)
	c.Next()
}

// requireAdmin rejects authenticated callers lacking the admin role
func (s *Service) requireAdmin(c *gin.Context) {
	current := currentClaims(c)
	if current == nil || !current.HasRole("ROLE_ADMIN") {
		fail(c, http.StatusForbidden, CodeUnauthorized, "You do not have permission")
		return
	}
	c.Next()
}
