package logs

import (
	"service-market-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, logService *LogService) {
	controller := &LogController{LogService: logService}

	logsGroup := r.Group("/api/logs")
	logsGroup.Use(middlewares.AuthMiddleware(), middlewares.AdminOnly())
	{
		logsGroup.GET("", controller.List)
	}
}
