package schema

import (
	"service-market-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, registry *RegistryService) {
	controller := &RegistryController{Registry: registry}

	typesGroup := r.Group("/api/types")
	typesGroup.Use(middlewares.AuthMiddleware())
	{
		typesGroup.GET("", controller.ListActive)
		typesGroup.GET("/:id", controller.Get)
		typesGroup.POST("/:id/deactivate", middlewares.AdminOnly(), controller.Deactivate)
	}
}
