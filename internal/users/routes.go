package users

import (
	"service-market-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, uc *UserController) {
	// token exchange is the one unauthenticated endpoint: the gateway
	// proves itself with the shared key inside the request body
	r.POST("/api/auth/token", uc.IssueToken)

	group := r.Group("/api/users")
	group.Use(middlewares.AuthMiddleware())
	{
		group.GET("/me", uc.Me)
		group.POST("/me/seller", uc.BecomeSeller)
		group.POST("/:id/seller", middlewares.AdminOnly(), uc.GrantSeller)
		group.POST("/ban", middlewares.AdminOnly(), uc.Ban)
		group.POST("/unban", middlewares.AdminOnly(), uc.Unban)
	}
}
