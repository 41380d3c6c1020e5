// Package notifications — handlers.go обрабатывает HTTP-запросы к уведомлениям.
package notifications

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"sparkblaze.io/recognition/internal/server/middleware"
)

// Handler обрабатывает HTTP-запросы уведомлений.
type Handler struct {
	repo *Repository
}

// NewHandler создаёт обработчик уведомлений.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// HandleList — GET /notifications. Последние уведомления текущего сотрудника.
func (h *Handler) HandleList(c *gin.Context) {
	employeeID := middleware.EmployeeID(c)

	list, err := h.repo.ListByEmployee(c.Request.Context(), employeeID, 50)
	if err != nil {
		log.WithError(err).Error("Ошибка получения уведомлений")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load notifications"})
		return
	}

	unread, err := h.repo.UnreadCount(c.Request.Context(), employeeID)
	if err != nil {
		log.WithError(err).Warn("Ошибка подсчёта непрочитанных")
	}

	out := make([]gin.H, 0, len(list))
	for _, n := range list {
		out = append(out, gin.H{
			"id":        n.ID,
			"type":      n.Type,
			"message":   n.Message,
			"read":      n.Read,
			"relatedId": n.RelatedID,
			"createdAt": n.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"notifications": out, "unread": unread})
}

// HandleMarkRead — POST /notifications/:id/read.
func (h *Handler) HandleMarkRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	ok, err := h.repo.MarkRead(c.Request.Context(), id, middleware.EmployeeID(c))
	if err != nil {
		log.WithError(err).Error("Ошибка пометки уведомления")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark notification"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "read"})
}
