// Package rewards — handlers.go обрабатывает HTTP-запросы магазина наград.
package rewards

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"sparkblaze.io/recognition/internal/common"
	"sparkblaze.io/recognition/internal/server/middleware"
)

// Handler обрабатывает HTTP-запросы наград.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик наград.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleCatalog — GET /rewards. Витрина активных наград.
func (h *Handler) HandleCatalog(c *gin.Context) {
	list, err := h.service.Catalog(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Ошибка загрузки каталога наград")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load rewards"})
		return
	}

	out := make([]gin.H, 0, len(list))
	for _, rw := range list {
		out = append(out, gin.H{
			"rewardId":    rw.RewardID,
			"name":        rw.Name,
			"description": rw.Description,
			"cost":        rw.Cost,
		})
	}
	c.JSON(http.StatusOK, gin.H{"rewards": out})
}

type createRewardRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Cost        int     `json:"cost" binding:"required"`
}

// HandleCreate — POST /rewards. Добавление награды (админ).
func (h *Handler) HandleCreate(c *gin.Context) {
	var req createRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rw, err := h.service.Create(c.Request.Context(), req.Name, req.Description, req.Cost)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"rewardId": rw.RewardID})
}

// HandleDeactivate — DELETE /rewards/:id. Снятие награды с витрины (админ).
func (h *Handler) HandleDeactivate(c *gin.Context) {
	err := h.service.Deactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, common.ErrRewardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "reward not found"})
			return
		}
		log.WithError(err).Error("Ошибка деактивации награды")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to deactivate reward"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

// HandleRedeem — POST /rewards/:id/redeem. Обмен баллов на награду.
func (h *Handler) HandleRedeem(c *gin.Context) {
	employeeID := middleware.EmployeeID(c)

	red, err := h.service.Redeem(c.Request.Context(), employeeID, c.Param("id"))
	if err != nil {
		h.respondRedeemError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"rewardId": red.RewardID,
		"cost":     red.Cost,
	})
}

// HandleHistory — GET /rewards/history. Обмены текущего сотрудника.
func (h *Handler) HandleHistory(c *gin.Context) {
	list, err := h.service.History(c.Request.Context(), middleware.EmployeeID(c))
	if err != nil {
		log.WithError(err).Error("Ошибка загрузки истории обменов")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	out := make([]gin.H, 0, len(list))
	for _, red := range list {
		out = append(out, gin.H{
			"rewardId":   red.RewardID,
			"cost":       red.Cost,
			"redeemedAt": red.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"redemptions": out})
}

func (h *Handler) respondRedeemError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrRewardNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "reward not found"})
	case errors.Is(err, common.ErrEmployeeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
	case errors.Is(err, common.ErrInsufficientPoints):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "not enough points"})
	default:
		log.WithError(err).Error("Ошибка обмена награды")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to redeem reward"})
	}
}
