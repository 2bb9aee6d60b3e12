package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wilding96/baby-tracker/internal/auth"
)

const (
	authUserKey  = "auth_user_id"
	authEmailKey = "auth_email"
)

// RequireAuth validates the bearer token and sets user context
func RequireAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Extract token from Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Check for Bearer token format
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format. Use: Bearer <token>"})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			if err == auth.ErrExpiredToken {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			c.Abort()
			return
		}

		c.Set(authUserKey, claims.UserID)
		c.Set(authEmailKey, claims.Email)

		c.Next()
	}
}

// GetAuthUserID retrieves the authenticated user ID from context
func GetAuthUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(authUserKey)
	if !exists {
		return uuid.Nil, false
	}
	return userID.(uuid.UUID), true
}

// GetAuthEmail retrieves the authenticated email from context
func GetAuthEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(authEmailKey)
	if !exists {
		return "", false
	}
	return email.(string), true
}
