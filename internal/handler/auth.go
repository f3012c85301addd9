package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"challenge-monitor/internal/logger"
	"challenge-monitor/internal/middleware"
	"challenge-monitor/internal/model"
	"challenge-monitor/internal/service"
)

type AuthHandler struct {
	auth   *service.Auth
	secret []byte
}

func NewAuthHandler(auth *service.Auth, secret []byte) *AuthHandler {
	return &AuthHandler{auth: auth, secret: secret}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	m, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		logger.Warn("login.failed", "username", req.Username)
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	logger.Info("login.ok", "uid", m.ID, "name", m.Name)

	token, err := middleware.SignToken(h.secret, m.ID, m.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sign token"})
		return
	}

	c.JSON(http.StatusOK, model.LoginResponse{
		Token: token,
		User:  model.User{ID: m.ID, Name: m.Name},
	})
}
