package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"group-chat/contract"
	"group-chat/errors"
	"group-chat/repositories"

	"github.com/gin-gonic/gin"
)

const userIDKey = "auth.user_id"

// Middleware authenticates the bearer token of every request and registers
// the caller in the identity directory, so that users become addressable by
// AddMember once they have called the API.
func Middleware(verifier *TokenVerifier, users repositories.IUserRepository, clock contract.Clock, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found || token == "" {
			abort(c, http.StatusUnauthorized, errors.ErrUnauthenticated, "authorization token is missing")
			return
		}
		claims, err := verifier.Verify(token)
		if err != nil {
			log.Debug("Rejected token", "error", err)
			abort(c, http.StatusUnauthorized, errors.ErrUnauthenticated, "invalid or expired token")
			return
		}
		if _, err = users.Touch(c.Request.Context(), claims.Subject, claims.Name, clock()); err != nil {
			log.Error("Unable to register user", "user", claims.Subject, "error", err)
			abort(c, http.StatusServiceUnavailable, err, "identity directory unavailable")
			return
		}
		c.Set(userIDKey, claims.Subject)
		c.Next()
	}
}

// UserID returns the authenticated caller. It is empty outside Middleware.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func abort(c *gin.Context, status int, err error, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"code":    errors.Code(err),
		"message": message,
	})
}
