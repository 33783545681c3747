package support

import (
	"service-market-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, sc *SupportController) {
	group := r.Group("/api/support")
	group.Use(middlewares.AuthMiddleware())
	{
		group.POST("/questions", sc.Ask)
		group.GET("/questions", sc.History)
		group.GET("/questions/:id", sc.Get)
	}
}
