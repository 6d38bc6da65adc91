package middleware

import (
	"strings"

	"yamdb-api/permissions"
	"yamdb-api/services"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
)

const identityKey = "identity"

// Authenticate resolves an optional bearer token into an Identity. A missing,
// malformed, forged or expired token leaves the request anonymous; it is
// never rejected here.
func Authenticate(tokens services.TokenService, log *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			log.Debugf("ignoring non-bearer authorization header on %s", c.Request.URL.Path)
			c.Next()
			return
		}

		claims, err := tokens.ParseAccessToken(strings.TrimSpace(tokenString))
		if err != nil {
			log.Debugf("ignoring bearer token on %s: %v", c.Request.URL.Path, err)
			c.Next()
			return
		}

		c.Set(identityKey, &permissions.Identity{
			UserID:      claims.UserID,
			Username:    claims.Username,
			Role:        claims.Role,
			IsStaff:     claims.IsStaff,
			IsSuperuser: claims.IsSuperuser,
		})
		c.Next()
	}
}

// IdentityFromContext returns nil for anonymous requests.
func IdentityFromContext(c *gin.Context) *permissions.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*permissions.Identity)
	return id
}
