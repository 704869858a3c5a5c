package handlers

import (
	"net/http"

	"lending-metrics-api/internal/application/dto"
	"lending-metrics-api/internal/application/readthrough"
	"lending-metrics-api/internal/application/services"
	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/infrastructure/web/middleware"
)

// MetricsHandler serves protocol metrics and the HBB supply figures
type MetricsHandler struct {
	metrics   *services.MetricsService
	supply    *services.SupplyService
	freshness *Freshness
}

func NewMetricsHandler(metrics *services.MetricsService, supply *services.SupplyService, freshness *Freshness) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, supply: supply, freshness: freshness}
}

// GetMetrics godoc
// @Summary Protocol metrics
// @Description Collateral, HBB, borrowing and USDH metrics of the cluster
// @Tags metrics
// @Produce json
// @Param env query string false "Cluster" Enums(mainnet-beta, devnet)
// @Success 200 {object} entities.MetricsResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/metrics [get]
func (h *MetricsHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cluster, err := clusterOf(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.metrics.GetMetrics(ctx, cluster)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	h.freshness.Apply(ctx, w, readthrough.MetricsKey(cluster))
	writeJSON(ctx, w, http.StatusOK, result)
}

// GetCirculatingSupply godoc
// @Summary HBB circulating supply
// @Description Circulating HBB in token units, as plain text for market data aggregators
// @Tags supply
// @Produce plain
// @Param env query string false "Cluster" Enums(mainnet-beta, devnet)
// @Success 200 {string} string "20000000"
// @Router /api/v1/circulating-supply [get]
func (h *MetricsHandler) GetCirculatingSupply(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cluster, err := clusterOf(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	supply, err := h.supply.GetCirculatingSupply(ctx, cluster)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	h.freshness.Apply(ctx, w, readthrough.CirculatingSupplyKey(cluster))
	writeText(ctx, w, http.StatusOK, supply.String())
}

// GetCirculatingSupplyValue godoc
// @Summary HBB circulating supply value
// @Description Circulating HBB valued in USD, as plain text
// @Tags supply
// @Produce plain
// @Param env query string false "Cluster" Enums(mainnet-beta, devnet)
// @Success 200 {string} string "10000000"
// @Router /api/v1/circulating-supply-value [get]
func (h *MetricsHandler) GetCirculatingSupplyValue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cluster, err := clusterOf(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	value, err := h.supply.GetCirculatingSupplyValue(ctx, cluster)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	h.freshness.Apply(ctx, w, readthrough.CirculatingSupplyValueKey(cluster))
	writeText(ctx, w, http.StatusOK, value.String())
}

// clusterOf prefers the cluster resolved by middleware and parses env otherwise
func clusterOf(r *http.Request) (entities.Cluster, error) {
	if cluster, ok := middleware.ClusterFromContext(r.Context()); ok {
		return cluster, nil
	}
	return dto.NewEnvironment(r.URL.Query().Get("env"))
}
