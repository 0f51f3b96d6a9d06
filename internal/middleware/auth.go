package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/egyakin/egyakin-api/internal/model"
	"github.com/egyakin/egyakin-api/pkg/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// AuthMiddleware validates JWT tokens and injects doctor claims into context
func AuthMiddleware(jwtManager *auth.JWTManager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.Fail("Authorization header required"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.Fail("Invalid authorization format. Use: Bearer <token>"))
			return
		}

		tokenString := parts[1]

		// Check blacklist
		if rdb != nil {
			ctx := context.Background()
			exists, err := rdb.Exists(ctx, "blacklist:"+tokenString).Result()
			if err != nil {
				// Redis error, fail closed for security
				c.AbortWithStatusJSON(http.StatusInternalServerError, model.Fail("Auth server error"))
				return
			}
			if exists > 0 {
				c.AbortWithStatusJSON(http.StatusUnauthorized, model.Fail("Token has been revoked"))
				return
			}
		}

		claims, err := jwtManager.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.Fail("Invalid or expired token"))
			return
		}

		// Store doctor info in context for downstream handlers
		c.Set("doctor_id", claims.DoctorID)
		c.Set("email", claims.Email)

		c.Next()
	}
}

// AdminMiddleware allows only admin doctors through. Must run after
// AuthMiddleware.
func AdminMiddleware(isAdmin func(id uuid.UUID) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		doctorID := GetDoctorID(c)
		if doctorID == uuid.Nil || !isAdmin(doctorID) {
			c.AbortWithStatusJSON(http.StatusForbidden, model.Fail("Admin access required"))
			return
		}
		c.Next()
	}
}

// GetDoctorID returns the authenticated doctor's ID from the gin context
func GetDoctorID(c *gin.Context) uuid.UUID {
	v, ok := c.Get("doctor_id")
	if !ok {
		return uuid.Nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
