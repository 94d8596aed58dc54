package management

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/example/coffeeshop-api/internal/apierror"
)

const (
	managerRoleName = "manager"
	baristaRoleName = "barista"
)

// Handler serves the role management endpoints. All routes require the
// manage:baristas permission, applied by the auth middleware.
type Handler struct {
	api           API
	baristaRoleID string
	log           logrus.FieldLogger
}

// NewHandler builds a Handler over the given management API.
func NewHandler(api API, baristaRoleID string, log logrus.FieldLogger) *Handler {
	return &Handler{api: api, baristaRoleID: baristaRoleID, log: log}
}

// ListUsers serves GET /users with the provider's user list passed through
// verbatim.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.api.ListUsers(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

// ListUserRoles serves GET /users/:id/roles.
func (h *Handler) ListUserRoles(c *gin.Context) {
	roles, err := h.api.GetUserRoles(c.Request.Context(), c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "roles": roles})
}

type baristaPayload struct {
	ToFireBarista bool `json:"toFireBarista"`
}

// SetBaristaRole serves PATCH /baristas/:id. The body's toFireBarista flag
// selects the desired end state: false grants the barista role, true revokes
// it. Users holding a manager role are never mutated through this path. When
// the user already matches the desired end state no provider call is made.
func (h *Handler) SetBaristaRole(c *gin.Context) {
	userID := c.Param("id")

	var payload baristaPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		abort(c, apierror.BadRequest("No data was provided"))
		return
	}

	roles, err := h.api.GetUserRoles(c.Request.Context(), userID)
	if err != nil {
		abort(c, err)
		return
	}

	if RolesContain(roles, managerRoleName) {
		abort(c, apierror.New(http.StatusForbidden, apierror.CodeUnauthorized,
			"Managers cannot be hired or fired as baristas"))
		return
	}

	isBarista := RolesContain(roles, baristaRoleName)
	switch {
	case isBarista == !payload.ToFireBarista:
		// Already in the desired state.
	case payload.ToFireBarista:
		err = h.api.RemoveRole(c.Request.Context(), userID, h.baristaRoleID)
	default:
		err = h.api.AddRole(c.Request.Context(), userID, h.baristaRoleID)
	}
	if err != nil {
		h.log.WithError(err).WithField("user_id", userID).Error("barista role change failed")
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
