package handlers

import (
	"net/http"
	"strings"

	"lending-metrics-api/internal/application/dto"
	"lending-metrics-api/internal/application/services"
)

// ProtocolHandler publishes the per-cluster program settings and operational flags
type ProtocolHandler struct {
	protocol  *services.ProtocolService
	freshness *Freshness
}

func NewProtocolHandler(protocol *services.ProtocolService, freshness *Freshness) *ProtocolHandler {
	return &ProtocolHandler{protocol: protocol, freshness: freshness}
}

// GetConfig godoc
// @Summary Protocol configuration
// @Description Program id, state accounts and mints. Without env every configured cluster is returned.
// @Tags protocol
// @Produce json
// @Param env query string false "Cluster" Enums(mainnet-beta, devnet)
// @Success 200 {object} entities.ProtocolSettings
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/v1/config [get]
func (h *ProtocolHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if strings.TrimSpace(r.URL.Query().Get("env")) == "" {
		h.freshness.ApplyFixed(w)
		writeJSON(ctx, w, http.StatusOK, h.protocol.All())
		return
	}

	cluster, err := clusterOf(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	settings, err := h.protocol.Settings(cluster)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	h.freshness.ApplyFixed(w)
	writeJSON(ctx, w, http.StatusOK, settings)
}

// GetMaintenanceMode godoc
// @Summary Maintenance mode
// @Tags protocol
// @Produce json
// @Param env query string false "Cluster" Enums(mainnet-beta, devnet)
// @Success 200 {object} dto.MaintenanceModeResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/v1/maintenance-mode [get]
func (h *ProtocolHandler) GetMaintenanceMode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cluster, err := clusterOf(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	enabled, err := h.protocol.MaintenanceMode(cluster)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	h.freshness.ApplyFixed(w)
	writeJSON(ctx, w, http.StatusOK, dto.MaintenanceModeResponse{Enabled: enabled})
}

// GetBorrowingVersion godoc
// @Summary Borrowing market state version
// @Tags protocol
// @Produce json
// @Param env query string false "Cluster" Enums(mainnet-beta, devnet)
// @Success 200 {object} dto.BorrowingVersionResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/v1/borrowing-version [get]
func (h *ProtocolHandler) GetBorrowingVersion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cluster, err := clusterOf(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	version, err := h.protocol.BorrowingVersion(cluster)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	h.freshness.ApplyFixed(w)
	writeJSON(ctx, w, http.StatusOK, dto.BorrowingVersionResponse{Version: version})
}
