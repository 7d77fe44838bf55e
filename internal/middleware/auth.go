package middleware

import (
	"net/http"
	"strings"

	"github.com/Ritwik411/DevConnector/internal/utils"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware is a middleware that checks for a valid JWT token in the
// x-auth-token header and attaches the resolved user id to the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader("x-auth-token"))

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"msg": "No token, authorization denied",
			})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"msg": "Token is not valid",
			})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}
