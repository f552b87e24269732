package middleware

import (
	"context"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"sports-scheduler/internal/dto"
	"sports-scheduler/internal/model"
	"sports-scheduler/pkg/response"
)

// Session and context keys shared with the handlers.
const (
	SessionUserKey = "user_id"
	IdentityKey    = "identity"
)

// SessionLoader reloads the user behind a session on every request, so a
// deactivated account or a changed role takes effect immediately.
type SessionLoader interface {
	Me(ctx context.Context, userID string) (*dto.LoginResponse, error)
}

// SessionAuth requires a logged-in session and puts the caller's
// model.Identity into the context.
func SessionAuth(loader SessionLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, _ := session.Get(SessionUserKey).(string)
		if userID == "" {
			response.Unauthorized(c, 10002, "authentication required")
			c.Abort()
			return
		}

		me, err := loader.Me(c.Request.Context(), userID)
		if err != nil {
			session.Clear()
			_ = session.Save()
			response.Unauthorized(c, 10002, "authentication required")
			c.Abort()
			return
		}

		c.Set(IdentityKey, model.Identity{UserID: me.User.ID, Role: me.User.Role})
		c.Next()
	}
}

// RequireCapability lets the request through only when the caller's role
// holds capability. Must run after SessionAuth.
func RequireCapability(capability model.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(IdentityKey)
		id, ok := v.(model.Identity)
		if !exists || !ok {
			response.Unauthorized(c, 10002, "authentication required")
			c.Abort()
			return
		}

		if !id.Role.Can(capability) {
			response.Forbidden(c, 10003, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
