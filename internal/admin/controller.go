package admin

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"service-market-api/internal/schema"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Admin *AdminService
}

// GET /api/admin/stats
func (ac *AdminController) Stats(c *gin.Context) {
	st, err := ac.Admin.CollectStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to collect stats"})
		return
	}
	c.JSON(http.StatusOK, st)
}

// GET /api/admin/export?type_id=N
func (ac *AdminController) ExportListings(c *gin.Context) {
	typeID, err := strconv.ParseInt(c.Query("type_id"), 10, 64)
	if err != nil || typeID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid type_id is required"})
		return
	}

	data, filename, err := ac.Admin.ExportListings(typeID)
	if err != nil {
		if errors.Is(err, schema.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Тип услуги не найден"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build export"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
