// Package server собирает HTTP-сервер: gin-движок, middleware и маршруты.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"sparkblaze.io/recognition/internal/config"
	"sparkblaze.io/recognition/internal/features/admin"
	"sparkblaze.io/recognition/internal/features/employees"
	"sparkblaze.io/recognition/internal/features/kudos"
	"sparkblaze.io/recognition/internal/features/notifications"
	"sparkblaze.io/recognition/internal/features/rewards"
	"sparkblaze.io/recognition/internal/server/middleware"
)

// Handlers — все HTTP-обработчики приложения.
type Handlers struct {
	Employees     *employees.Handler
	Kudos         *kudos.Handler
	Notifications *notifications.Handler
	Rewards       *rewards.Handler
	Admin         *admin.Handler
}

// Server — HTTP-сервер приложения.
type Server struct {
	httpServer *http.Server
	limiter    *middleware.RateLimiter
}

// New создаёт сервер с настроенными маршрутами.
func New(cfg *config.Config, h Handlers) *Server {
	gin.SetMode(ginMode(cfg.HTTPMode))

	limiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.AccessLog())

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")
	api.Use(middleware.Identity())
	api.Use(limiter.Middleware())

	// Kudos: отправка, квота, лента, реакции
	api.POST("/kudos", h.Kudos.HandleSend)
	api.GET("/kudos/quota", h.Kudos.HandleQuota)
	api.GET("/kudos", h.Kudos.HandleFeed)
	api.POST("/kudos/:id/like", h.Kudos.HandleLike)
	api.POST("/kudos/:id/comments", h.Kudos.HandleAddComment)
	api.GET("/kudos/:id/comments", h.Kudos.HandleComments)

	// Сотрудники
	api.GET("/employees", h.Employees.HandleList)
	api.GET("/employees/:id", h.Employees.HandleGet)

	// Уведомления
	api.GET("/notifications", h.Notifications.HandleList)
	api.POST("/notifications/:id/read", h.Notifications.HandleMarkRead)

	// Магазин наград
	if cfg.FeatureRewardsEnabled {
		api.GET("/rewards", h.Rewards.HandleCatalog)
		api.POST("/rewards/:id/redeem", h.Rewards.HandleRedeem)
		api.GET("/rewards/history", h.Rewards.HandleHistory)
	}

	// Админ-панель: вход по паролю, остальное под токеном сессии
	api.POST("/admin/login", h.Admin.HandleLogin)

	adm := api.Group("/admin")
	adm.Use(h.Admin.RequireSession())
	adm.POST("/logout", h.Admin.HandleLogout)
	adm.POST("/employees", h.Employees.HandleCreate)
	adm.PUT("/employees/:id", h.Employees.HandleUpdate)
	adm.PUT("/employees/:id/role", h.Employees.HandleAssignRole)
	adm.DELETE("/employees/:id", h.Employees.HandleDelete)
	if cfg.FeatureRewardsEnabled {
		adm.POST("/rewards", h.Rewards.HandleCreate)
		adm.DELETE("/rewards/:id", h.Rewards.HandleDeactivate)
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.HTTPAddr(),
			Handler:      engine,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		limiter: limiter,
	}
}

// Start запускает сервер. Блокирует до остановки.
func (s *Server) Start() error {
	log.Infof("HTTP-сервер слушает %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown останавливает сервер, дождавшись активных запросов.
func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.Close()
	return s.httpServer.Shutdown(ctx)
}

func ginMode(mode string) string {
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		return mode
	default:
		return gin.ReleaseMode
	}
}
