package handlers

import (
	"context"
	"net/http"
	"time"

	"lending-metrics-api/internal/application/dto"
	"lending-metrics-api/internal/application/services"
	"lending-metrics-api/internal/infrastructure/logging"

	"github.com/jonboulle/clockwork"
)

const healthTimeout = 5 * time.Second

// HealthHandler maneja los endpoints de health check y versión
type HealthHandler struct {
	health  *services.HealthService
	version string
	clock   clockwork.Clock
}

// NewHealthHandler crea una nueva instancia del health handler
func NewHealthHandler(health *services.HealthService, version string, clock clockwork.Clock) *HealthHandler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &HealthHandler{health: health, version: version, clock: clock}
}

// Health godoc
// @Summary Health check
// @Description Pings the cache store and the snapshot database
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service is healthy"
// @Failure 502 {object} dto.HealthResponse "A dependency is failing"
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	w.Header().Set("Cache-Control", "no-store")
	if err := h.health.Check(ctx); err != nil {
		logging.ErrorWithError(ctx, "Healthcheck failed", err, nil)
		response := dto.NewHealthResponse("unhealthy", h.version, h.clock.Now(), map[string]string{
			"error": err.Error(),
		})
		writeJSON(ctx, w, http.StatusBadGateway, response)
		return
	}

	response := dto.NewHealthResponse("healthy", h.version, h.clock.Now(), map[string]string{
		"cache":    "healthy",
		"database": "healthy",
	})
	writeJSON(ctx, w, http.StatusOK, response)
}

// Version godoc
// @Summary API version
// @Tags health
// @Produce json
// @Success 200 {object} dto.VersionResponse
// @Router /version [get]
func (h *HealthHandler) Version(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, dto.VersionResponse{Version: h.version})
}
