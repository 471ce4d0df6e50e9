package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/momentumlab/momentum-engine/internal/core/services"
)

// ContextUserIDKey is where AuthMiddleware stashes the authenticated
// user ID for downstream handlers.
const ContextUserIDKey = "userID"

var (
	errNoAuthHeader  = errors.New("authorization header required")
	errBadAuthHeader = errors.New("invalid authorization header format")
)

// AuthMiddleware rejects requests without a valid Bearer token and binds
// the token's subject to the request context.
func AuthMiddleware(tokenService *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		userID, err := tokenService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// bearerToken extracts the credential from a "Bearer <token>" header.
// The scheme is matched case-insensitively per RFC 6750.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errNoAuthHeader
	}

	scheme, token, found := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !found || token == "" || !strings.EqualFold(scheme, "Bearer") {
		return "", errBadAuthHeader
	}
	return token, nil
}

// GetUserID reads the user ID bound by AuthMiddleware.
func GetUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextUserIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
