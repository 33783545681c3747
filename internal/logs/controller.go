package logs

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type LogController struct {
	LogService *LogService
}

// GET /api/logs
func (lc *LogController) List(c *gin.Context) {
	var filter LogFilterInput
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log filter"})
		return
	}

	rows, total, err := lc.LogService.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": rows, "total": total})
}
