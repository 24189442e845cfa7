package middleware

import (
	"errors"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"vetdesk-backend/models"
)

const (
	ContextUserID = "userId"
	ContextRole   = "role"
)

// AuthMiddleware validates the bearer token and resolves the caller's role
// into the closed Role set exactly once. Handlers read the typed value from
// the context and never re-parse role strings.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "Authorization header required"})
			return
		}

		if len(tokenString) > 7 && strings.ToUpper(tokenString[0:6]) == "BEARER" {
			tokenString = tokenString[7:]
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(401, gin.H{"error": "Invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(401, gin.H{"error": "Invalid token claims"})
			return
		}

		roleClaim, _ := claims["role"].(string)
		role, ok := models.ParseRole(roleClaim)
		if !ok {
			c.AbortWithStatusJSON(401, gin.H{"error": "Unknown role"})
			return
		}

		c.Set(ContextUserID, claims["sub"])
		c.Set(ContextRole, role)
		c.Next()
	}
}

// RoleFromContext returns the typed role resolved by AuthMiddleware.
func RoleFromContext(c *gin.Context) (models.Role, bool) {
	v, exists := c.Get(ContextRole)
	if !exists {
		return "", false
	}
	role, ok := v.(models.Role)
	return role, ok
}

// RequireRole rejects callers whose resolved role is not in the allowed set.
func RequireRole(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := RoleFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(401, gin.H{"error": "Role not resolved"})
			return
		}
		for _, a := range allowed {
			if role == a {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(403, gin.H{"error": "Insufficient role"})
	}
}
