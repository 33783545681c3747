package builder

import (
	"errors"
	"net/http"

	"service-market-api/internal/logs"
	"service-market-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

type BuilderController struct {
	Builder    BuilderAPI
	LogService *logs.LogService
}

// POST /api/builder/start
func (bc *BuilderController) Start(c *gin.Context) {
	userID := middlewares.UserID(c)

	reply, err := bc.Builder.Start(userID, c.GetBool("isAdmin"))
	if err != nil {
		if errors.Is(err, ErrNotAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"error": "У вас нет прав администратора"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start authoring"})
		return
	}

	c.JSON(http.StatusOK, reply)
}

// POST /api/builder/events
func (bc *BuilderController) HandleEvent(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	userID := middlewares.UserID(c)

	reply, err := bc.Builder.HandleInput(userID, c.GetBool("isAdmin"), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotAdmin):
			c.JSON(http.StatusForbidden, gin.H{"error": "У вас нет прав администратора"})
		case errors.Is(err, ErrNoSession):
			c.JSON(http.StatusConflict, gin.H{"error": "Сессия создания типа не найдена"})
		default:
			if bc.LogService != nil {
				_ = bc.LogService.Log(logs.SystemLog{
					Level:   "error",
					Service: "builder",
					UserID:  &userID,
					Action:  "commit_service_type",
					Message: err.Error(),
				}, nil)
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "❌ Не удалось создать тип услуги"})
		}
		return
	}

	c.JSON(http.StatusOK, reply)
}
