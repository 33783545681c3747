package middlewares

import (
	"net/http"
	"strings"

	"service-market-api/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the gateway-issued JWT carried in the
// Authorization header and exposes the acting user's identity to
// handlers: userID (int64), telegramID (string) and isAdmin (bool).
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := config.LoadConfig()

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing access token"})
			c.Abort()
			return
		}
		accessToken := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(float64)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user ID"})
			c.Abort()
			return
		}

		telegramID, _ := claims["telegram_id"].(string)
		isAdmin, _ := claims["is_admin"].(bool)

		c.Set("userID", int64(userID))
		c.Set("telegramID", telegramID)
		c.Set("isAdmin", isAdmin)
		c.Next()
	}
}

// AdminOnly rejects requests whose token does not carry the admin claim.
// Must run after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("isAdmin") {
			c.JSON(http.StatusForbidden, gin.H{"error": "У вас нет прав администратора"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user id set by AuthMiddleware.
func UserID(c *gin.Context) int64 {
	v, ok := c.Get("userID")
	if !ok {
		return 0
	}
	id, _ := v.(int64)
	return id
}
