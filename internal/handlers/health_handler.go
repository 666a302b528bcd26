package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bidapos/internal/services"
	"bidapos/internal/utils"
	"bidapos/pkg/database"
)

type HealthHandler struct {
	db    *database.MongoDB
	cache services.CacheService
}

func NewHealthHandler(db *database.MongoDB, cache services.CacheService) *HealthHandler {
	return &HealthHandler{
		db:    db,
		cache: cache,
	}
}

// Health reports process liveness plus dependency reachability
func (h *HealthHandler) Health(c *gin.Context) {
	checks := map[string]string{
		"mongodb": "ok",
		"redis":   "ok",
	}
	healthy := true

	if err := h.db.Ping(); err != nil {
		checks["mongodb"] = err.Error()
		healthy = false
	}

	if h.cache != nil {
		if err := h.cache.Ping(c.Request.Context()); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		}
	} else {
		checks["redis"] = "disabled"
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":    checks,
		"healthy":   healthy,
		"version":   utils.AppVersion,
		"timestamp": time.Now(),
	})
}
