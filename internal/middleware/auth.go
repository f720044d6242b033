package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/simmerhub/backend/internal/types"
)

// TokenValidator is an interface for validating session tokens.
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// RequireAuth validates the bearer token and stores the user identity in
// the gin context. Unauthenticated requests are rejected.
func RequireAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromRequest(c, validator)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Next()
	}
}

// OptionalAuth stores the user identity when a valid token is present but
// lets anonymous requests through. Used on read views that show the
// requester's own rating.
func OptionalAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := claimsFromRequest(c, validator); err == nil {
			c.Set("user_id", claims.UserID)
			c.Set("username", claims.Username)
		}
		c.Next()
	}
}

func claimsFromRequest(c *gin.Context, validator TokenValidator) (*types.TokenClaims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errMissingAuth
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, errBadAuthFormat
	}

	return validator.ValidateToken(parts[1])
}

var (
	errMissingAuth   = &authError{"missing authorization header"}
	errBadAuthFormat = &authError{"invalid authorization header format"}
)

type authError struct{ msg string }

func (e *authError) Error() string { return e.msg }
