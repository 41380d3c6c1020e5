// Package employees — handlers.go обрабатывает HTTP-запросы каталога сотрудников.
package employees

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"sparkblaze.io/recognition/internal/common"
)

// Handler обрабатывает HTTP-запросы к сотрудникам.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик сотрудников.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// createRequest — тело запроса на создание сотрудника (только админ).
type createRequest struct {
	UpdateProfile
	Role string `json:"role"`
}

// HandleList — GET /employees. Каталог сотрудников.
func (h *Handler) HandleList(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Ошибка получения списка сотрудников")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list employees"})
		return
	}

	out := make([]gin.H, 0, len(list))
	for _, e := range list {
		out = append(out, employeeJSON(e))
	}
	c.JSON(http.StatusOK, gin.H{"employees": out})
}

// HandleGet — GET /employees/:id. Профиль сотрудника с балансом баллов.
func (h *Handler) HandleGet(c *gin.Context) {
	e, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, employeeJSON(e))
}

// HandleCreate — POST /employees (админ).
func (h *Handler) HandleCreate(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	e, err := h.service.Create(c.Request.Context(), req.UpdateProfile, req.Role)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, employeeJSON(e))
}

// HandleUpdate — PUT /employees/:id (админ).
func (h *Handler) HandleUpdate(c *gin.Context) {
	var req UpdateProfile
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.UpdateProfile(c.Request.Context(), c.Param("id"), req); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// HandleAssignRole — PUT /employees/:id/role (админ).
func (h *Handler) HandleAssignRole(c *gin.Context) {
	var req struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.AssignRole(c.Request.Context(), c.Param("id"), req.Role); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "role assigned"})
}

// HandleDelete — DELETE /employees/:id (админ).
func (h *Handler) HandleDelete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// respondError переводит ошибки сервиса в HTTP-статусы.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrEmployeeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": common.ErrEmployeeNotFound.Error()})
	case errors.Is(err, common.ErrEmployeeExists):
		c.JSON(http.StatusConflict, gin.H{"error": common.ErrEmployeeExists.Error()})
	default:
		log.WithError(err).Error("Ошибка операции с сотрудником")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

// employeeJSON собирает публичное представление сотрудника.
func employeeJSON(e *Employee) gin.H {
	return gin.H{
		"employeeId": e.EmployeeID,
		"name":       e.Name,
		"email":      e.Email,
		"department": e.Department,
		"role":       e.Role,
		"points":     e.Points,
		"birthday":   e.Birthday,
		"hireDate":   e.HireDate,
		"createdAt":  e.CreatedAt,
	}
}
