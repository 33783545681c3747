package users

import (
	"errors"
	"net/http"
	"strconv"

	"service-market-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Users UserAPI
}

type tokenRequest struct {
	GatewayKey  string `json:"gateway_key" binding:"required"`
	TelegramID  string `json:"telegram_id" binding:"required"`
	FullName    string `json:"full_name"`
	NumberPhone string `json:"number_phone"`
}

// POST /api/auth/token
//
// The gateway trades its shared key plus the telegram identity for a user
// JWT. The user row is upserted on the way, so /start and token issuance
// are a single round trip.
func (uc *UserController) IssueToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if _, err := uc.Users.Start(StartInput{
		TelegramID:  req.TelegramID,
		FullName:    req.FullName,
		NumberPhone: req.NumberPhone,
	}); err != nil {
		if errors.Is(err, ErrBanned) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Вы заблокированы"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register user"})
		return
	}

	token, user, err := uc.Users.IssueGatewayToken(req.GatewayKey, req.TelegramID)
	if err != nil {
		switch {
		case errors.Is(err, ErrBadGatewayKey):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid gateway key"})
		case errors.Is(err, ErrBanned):
			c.JSON(http.StatusForbidden, gin.H{"error": "Вы заблокированы"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// GET /api/users/me
func (uc *UserController) Me(c *gin.Context) {
	user, err := uc.Users.GetByID(middlewares.UserID(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Пользователь не найден"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// POST /api/users/me/seller
func (uc *UserController) BecomeSeller(c *gin.Context) {
	if err := uc.Users.SetSeller(middlewares.UserID(c), true); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Пользователь не найден"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_seller": true})
}

// POST /api/users/:id/seller (admin)
func (uc *UserController) GrantSeller(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid user id is required"})
		return
	}

	if err := uc.Users.SetSeller(id, true); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Пользователь не найден"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_seller": true})
}

type banRequest struct {
	TelegramID string `json:"telegram_id" binding:"required"`
	Reason     string `json:"reason"`
}

// POST /api/users/ban (admin)
func (uc *UserController) Ban(c *gin.Context) {
	var req banRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := uc.Users.Ban(req.TelegramID, req.Reason, middlewares.UserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to ban user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"banned": true})
}

// POST /api/users/unban (admin)
func (uc *UserController) Unban(c *gin.Context) {
	var req banRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := uc.Users.Unban(req.TelegramID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unban user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"banned": false})
}
