package builder

import (
	"service-market-api/internal/logs"
	"service-market-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, builderService *BuilderService, logService *logs.LogService) {
	controller := &BuilderController{Builder: builderService, LogService: logService}

	builderGroup := r.Group("/api/builder")
	builderGroup.Use(middlewares.AuthMiddleware(), middlewares.AdminOnly())
	{
		builderGroup.POST("/start", controller.Start)
		builderGroup.POST("/events", controller.HandleEvent)
	}
}
