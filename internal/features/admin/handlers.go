// Package admin — handlers.go обрабатывает HTTP-запросы админ-панели.
package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"sparkblaze.io/recognition/internal/common"
	"sparkblaze.io/recognition/internal/server/middleware"
)

// HeaderAdminToken — заголовок с токеном админ-сессии.
const HeaderAdminToken = "X-Admin-Token"

// Handler обрабатывает HTTP-запросы админ-панели.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик админ-панели.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

// HandleLogin — POST /admin/login. Выдаёт токен сессии администратора.
func (h *Handler) HandleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, err := h.service.Login(c.Request.Context(), middleware.EmployeeID(c), req.Password)
	if err != nil {
		h.respondLoginError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// HandleLogout — POST /admin/logout. Деактивирует сессии текущего администратора.
func (h *Handler) HandleLogout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), middleware.EmployeeID(c)); err != nil {
		log.WithError(err).Error("Ошибка выхода из панели")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// RequireSession — middleware для админ-маршрутов: токен сессии обязателен.
func (h *Handler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, err := h.service.Authenticate(c.Request.Context(), c.GetHeader(HeaderAdminToken))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin session required"})
			return
		}
		c.Next()
	}
}

func (h *Handler) respondLoginError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrNotAdmin):
		c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
	case errors.Is(err, common.ErrWrongPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong password"})
	case errors.Is(err, common.ErrTooManyAttempts):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many attempts, try again later"})
	case errors.Is(err, common.ErrEmployeeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
	default:
		log.WithError(err).Error("Ошибка входа в панель")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
	}
}
