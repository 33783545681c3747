package listing

import (
	"service-market-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, lc *ListingController) {
	group := r.Group("/api/listings")
	group.Use(middlewares.AuthMiddleware())
	{
		group.POST("", lc.Create)
		group.GET("", lc.ListMine)
		group.GET("/form", lc.CreateFormURL)
		group.GET("/:id", lc.Get)
		group.GET("/:id/form", lc.EditFormURL)
		group.GET("/:id/caption", lc.Caption)
		group.PATCH("/:id", lc.Update)
		group.POST("/:id/status", lc.SetStatus)
		group.POST("/:id/views", lc.IncrementViews)
		group.DELETE("/:id", lc.Delete)
	}
}
