// Package kudos — handlers.go обрабатывает HTTP-запросы протокола признания:
// отправку kudo, проверку квоты, ленту, лайки и комментарии.
package kudos

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"sparkblaze.io/recognition/internal/common"
	"sparkblaze.io/recognition/internal/server/middleware"
)

// Handler обрабатывает HTTP-запросы kudos.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик kudos.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// sendRequest — тело запроса на отправку kudo.
type sendRequest struct {
	ReceiverID string `json:"receiverId"`
	Message    string `json:"message"`
	Badge      string `json:"badge"`
}

// HandleSend — POST /kudos. Отправитель берётся из идентификации запроса.
func (h *Handler) HandleSend(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	senderID := middleware.EmployeeID(c)
	result, err := h.service.SendKudo(c.Request.Context(), senderID, req.ReceiverID, req.Message, req.Badge)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"kudoId":           result.KudoID,
		"quotaUsed":        result.Used,
		"quotaLimit":       h.service.cfg.KudosMonthlyLimit,
		"receiverCredited": result.ReceiverCredited,
	})
}

// HandleQuota — GET /kudos/quota. Консультативная проверка остатка квоты.
func (h *Handler) HandleQuota(c *gin.Context) {
	status, err := h.service.CheckQuota(c.Request.Context(), middleware.EmployeeID(c), time.Now())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"used":      status.Used,
		"limit":     status.Limit,
		"remaining": status.Remaining(),
		"resetsAt":  status.ResetsAt,
	})
}

// HandleFeed — GET /kudos?limit=N. Лента последних kudos.
func (h *Handler) HandleFeed(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	items, err := h.service.Feed(c.Request.Context(), limit)
	if err != nil {
		log.WithError(err).Error("Ошибка получения ленты")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load feed"})
		return
	}

	out := make([]gin.H, 0, len(items))
	for _, it := range items {
		out = append(out, gin.H{
			"kudoId":       it.KudoID,
			"senderId":     it.SenderID,
			"senderName":   it.SenderName,
			"receiverId":   it.ReceiverID,
			"receiverName": it.ReceiverName,
			"message":      it.Message,
			"badge":        it.Badge,
			"likes":        it.Likes,
			"createdAt":    it.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"kudos": out})
}

// HandleLike — POST /kudos/:id/like.
func (h *Handler) HandleLike(c *gin.Context) {
	if err := h.service.Like(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "liked"})
}

// HandleAddComment — POST /kudos/:id/comments.
func (h *Handler) HandleAddComment(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), c.Param("id"), middleware.EmployeeID(c), req.Message)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":          comment.ID,
		"commenterId": comment.CommenterID,
		"message":     comment.Body,
		"createdAt":   comment.CreatedAt,
	})
}

// HandleComments — GET /kudos/:id/comments.
func (h *Handler) HandleComments(c *gin.Context) {
	comments, err := h.service.Comments(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(comments))
	for _, cm := range comments {
		out = append(out, gin.H{
			"id":          cm.ID,
			"commenterId": cm.CommenterID,
			"message":     cm.Body,
			"createdAt":   cm.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"comments": out})
}

// respondError переводит ошибки протокола в HTTP-статусы.
// Отказ по квоте получает человекочитаемую причину с лимитом,
// чтобы пользователь понимал, когда квота обнулится.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrQuotaExceeded):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": fmt.Sprintf("You have reached your monthly limit of %d %s",
				h.service.cfg.KudosMonthlyLimit, common.PluralizeKudos(h.service.cfg.KudosMonthlyLimit)),
		})
	case errors.Is(err, common.ErrUnknownSender):
		c.JSON(http.StatusNotFound, gin.H{"error": common.ErrUnknownSender.Error()})
	case errors.Is(err, common.ErrKudoNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": common.ErrKudoNotFound.Error()})
	case errors.Is(err, common.ErrSelfKudo),
		errors.Is(err, common.ErrEmptyMessage),
		errors.Is(err, common.ErrUnknownBadge):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrSettlementConflict):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": common.ErrSettlementConflict.Error()})
	default:
		log.WithError(err).Error("Ошибка обработки kudo")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
