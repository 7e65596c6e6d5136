package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	logicv1 "github.com/meditrust/storefront/internal/logic/v1"
)

// Context keys set by RequireSession for downstream handlers.
const (
	ContextUserIDKey = "user_id"
	ContextUserKey   = "user"
)

// sessionToken pulls the token from the session cookie, falling back to
// an Authorization bearer header for non-browser clients.
func (h *Handler) sessionToken(c *gin.Context) string {
	if token, err := c.Cookie(h.cookie.Name); err == nil && token != "" {
		return token
	}

	const bearerPrefix = "Bearer "
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, bearerPrefix) {
		return auth[len(bearerPrefix):]
	}

	return ""
}

// RequireSession rejects requests without a valid, unexpired session
// before the protected handler runs. On success the resolved identity
// is stored in the gin context under ContextUserIDKey / ContextUserKey.
func (h *Handler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := h.sessionToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			return
		}

		user, err := h.auth.UserByToken(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, logicv1.ErrSessionNotFound), errors.Is(err, logicv1.ErrSessionExpired):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			default:
				zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("Session lookup failed")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUserKey, *user)
		c.Next()
	}
}
