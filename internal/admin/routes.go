package admin

import (
	"service-market-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, ac *AdminController) {
	group := r.Group("/api/admin")
	group.Use(middlewares.AuthMiddleware(), middlewares.AdminOnly())
	{
		group.GET("/stats", ac.Stats)
		group.GET("/export", ac.ExportListings)
	}
}
