package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexconsult/receitanet-bx/internal/models"
	"github.com/nexconsult/receitanet-bx/internal/services"
	"github.com/sirupsen/logrus"
)

// Version is reported by the health endpoints.
const Version = "1.0.0"

// HealthChecker reports the health of each backing service.
type HealthChecker interface {
	Health() map[string]interface{}
}

// HealthHandler handles health check requests
type HealthHandler struct {
	checker   HealthChecker
	queue     services.QueueInterface
	logger    *logrus.Logger
	startTime time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(checker HealthChecker, queue services.QueueInterface, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		checker:   checker,
		queue:     queue,
		logger:    logger,
		startTime: time.Now(),
	}
}

// GetHealth handles general health check
// @Summary Health check
// @Description Get the health status of the API and its dependencies
// @Tags Health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Failure 503 {object} models.HealthResponse
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *gin.Context) {
	servicesHealth := h.checker.Health()
	now := time.Now()

	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: now,
		Version:   Version,
		Services:  make(map[string]models.ServiceInfo),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	for name, serviceHealth := range servicesHealth {
		healthMap, ok := serviceHealth.(map[string]interface{})
		if !ok {
			continue
		}
		info := models.ServiceInfo{LastCheck: now}
		if s, ok := healthMap["status"].(string); ok {
			info.Status = s
		}
		if e, ok := healthMap["error"].(string); ok {
			info.Error = e
		}
		response.Services[name] = info

		switch info.Status {
		case "unhealthy":
			response.Status = "unhealthy"
		case "degraded":
			if response.Status == "healthy" {
				response.Status = "degraded"
			}
		}
	}

	httpStatus := http.StatusOK
	if response.Status == "unhealthy" {
		httpStatus = http.StatusServiceUnavailable
	}
	c.JSON(httpStatus, response)
}

// GetLiveness handles liveness probe
// @Summary Liveness check
// @Description Check if the API is alive and responding
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/live [get]
func (h *HealthHandler) GetLiveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"alive":     true,
		"timestamp": time.Now(),
		"uptime":    time.Since(h.startTime).Round(time.Second).String(),
		"version":   Version,
	})
}

// GetMetrics handles metrics endpoint
// @Summary Get metrics
// @Description Get queue statistics and runtime figures
// @Tags Health
// @Produce json
// @Success 200 {object} models.StandardResponse{data=models.QueueStats}
// @Router /metrics [get]
func (h *HealthHandler) GetMetrics(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	c.JSON(http.StatusOK, models.NewSuccessResponse("Metrics", gin.H{
		"queue": h.queue.GetStats(),
		"system": gin.H{
			"memory_mb":  float64(m.Alloc) / 1024 / 1024,
			"goroutines": runtime.NumGoroutine(),
		},
	}))
}
