package support

import (
	"errors"
	"net/http"
	"strconv"

	"service-market-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

type SupportController struct {
	Support *SupportService
}

type askRequest struct {
	Text string `json:"text" binding:"required"`
}

// POST /api/support/questions
func (sc *SupportController) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	q, err := sc.Support.Ask(middlewares.UserID(c), req.Text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "❌ Не удалось получить ответ, попробуйте позже"})
		return
	}

	c.JSON(http.StatusOK, q)
}

// GET /api/support/questions/:id
func (sc *SupportController) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid question id is required"})
		return
	}

	q, err := sc.Support.Get(id, middlewares.UserID(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Вопрос не найден"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load question"})
		return
	}

	c.JSON(http.StatusOK, q)
}

// GET /api/support/questions?limit=
func (sc *SupportController) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	rows, err := sc.Support.History(middlewares.UserID(c), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load questions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": rows})
}
