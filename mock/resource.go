package mock

import (
	"net/http"
	"time"

	"github.com/aetherid/console/client/auth/claims"
	"github.com/aetherid/console/schema"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// allowed order status transitions
var transitions = map[schema.OrderStatus][]schema.OrderStatus{
	schema.OrderPending:    {schema.OrderConfirmed, schema.OrderCancelled},
	schema.OrderConfirmed:  {schema.OrderDelivering, schema.OrderCancelled},
	schema.OrderDelivering: {schema.OrderDelivered},
	schema.OrderDelivered:  {schema.OrderCompleted},
}

func currentClaims(c *gin.Context) *claims.Claims {
	value, ok := c.Get(subjectKey)
	if !ok {
		return nil
	}
	ret, _ := value.(*claims.Claims)
	return ret
}

func (s *Service) currentAccount(c *gin.Context) (*account, bool) {
	current := currentClaims(c)
	if current == nil {
		return nil, false
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	ret, ok := s.accounts[current.Subject]
	return ret, ok
}

// defaultMeHandler handles GET /users/me
func (s *Service) defaultMeHandler(c *gin.Context) {
	user, ok := s.currentAccount(c)
	if !ok {
		fail(c, http.StatusNotFound, CodeNotFound, "user not found")
		return
	}
	info := &schema.UserInfo{ID: formatID(user.id), Username: user.username, Email: user.email}
	for _, role := range user.roles {
		info.Roles = append(info.Roles, schema.Role{Name: role})
	}
	respond(c, info)
}

// defaultChangePasswordHandler handles PUT /users/change-password
func (s *Service) defaultChangePasswordHandler(c *gin.Context) {
	request := &schema.ChangePasswordRequest{}
	if err := c.ShouldBindJSON(request); err != nil || request.NewPassword == "" {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, "invalid change password request")
		return
	}
	if request.NewPassword != request.ConfirmationPassword {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, "password confirmation does not match")
		return
	}
	user, ok := s.currentAccount(c)
	if !ok || bcrypt.CompareHashAndPassword(user.hash, []byte(request.Password)) != nil {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, "current password is incorrect")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(request.NewPassword), bcrypt.MinCost)
	if err != nil {
		fail(c, http.StatusInternalServerError, CodeUncategorized, "failed to hash password")
		return
	}
	s.mux.Lock()
	user.hash = hash
	s.mux.Unlock()
	respond(c, &schema.SimpleUser{ID: formatID(user.id), Username: user.username, Email: user.email})
}

// defaultOrderStatusHandler handles PUT /orders/:id/status
func (s *Service) defaultOrderStatusHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	request := &schema.OrderUpdateStatusRequest{}
	if err := c.ShouldBindJSON(request); err != nil || request.OrderStatus == "" {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, "invalid status request")
		return
	}
	orders := s.collections[ordersPath]
	current, ok := orders.find(id)
	if !ok {
		fail(c, http.StatusNotFound, CodeNotFound, "order not found")
		return
	}
	from := schema.OrderStatus(toString(current["status"]))
	if !canTransition(from, request.OrderStatus) {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, "invalid status transition from "+string(from))
		return
	}
	changedBy := ""
	if caller := currentClaims(c); caller != nil {
		changedBy = caller.Subject
	}
	updated, _ := orders.update(id, func(fields map[string]any) {
		history, _ := fields["orderStatusHistories"].([]any)
		fields["orderStatusHistories"] = append(history, map[string]any{
			"oldStatus": string(from),
			"newStatus": string(request.OrderStatus),
			"changeBy":  map[string]any{"username": changedBy},
			"changeAt":  time.Now().UTC().Format(time.RFC3339),
		})
		fields["status"] = string(request.OrderStatus)
	})
	respond(c, updated)
}

func canTransition(from, to schema.OrderStatus) bool {
	for _, candidate := range transitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

func toString(value any) string {
	ret, _ := value.(string)
	return ret
}
