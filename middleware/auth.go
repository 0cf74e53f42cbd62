package middleware

import (
	"net/http"
	"strings"

	"stagelink/utils"

	"github.com/gin-gonic/gin"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(authHeader, "Bearer "), true
}

// JWTAuthAdminMiddleware admits only tokens carrying the admin role.
func JWTAuthAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		subject, role, err := utils.ExtractClaims(token)
		if err != nil || role != "admin" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}
		c.Set("adminName", subject)
		c.Set("isAdmin", true)
		c.Next()
	}
}

// JWTAuthPerformerMiddleware admits only tokens carrying the performer role.
// The performer id from the token is stored for handlers to scope queries.
func JWTAuthPerformerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		subject, role, err := utils.ExtractClaims(token)
		if err != nil || role != "performer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized performer access"})
			return
		}
		c.Set("performerID", subject)
		c.Next()
	}
}
