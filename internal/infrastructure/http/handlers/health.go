package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/forkful/forkful/internal/infrastructure/config"
)

// HealthHandler serves liveness and readiness information.
type HealthHandler struct {
	db      *gorm.DB
	cfg     *config.Config
	started time.Time
	logger  *zap.Logger
}

// NewHealthHandler creates the health handler.
func NewHealthHandler(db *gorm.DB, cfg *config.Config, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:      db,
		cfg:     cfg,
		started: time.Now(),
		logger:  logger.Named("health-handler"),
	}
}

// Health handles GET /health. Database reachability is checked with a
// ping; a failed ping degrades the status without taking the route down.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	dbStatus := "up"
	code := http.StatusOK

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		h.logger.Warn("database ping failed", zap.Error(err))
		status = "degraded"
		dbStatus = "down"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]interface{}{
		"status":   status,
		"version":  h.cfg.App.Version,
		"database": dbStatus,
		"uptime":   time.Since(h.started).Round(time.Second).String(),
	})
}
