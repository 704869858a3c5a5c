package handlers

import (
	"net/http"

	"lending-metrics-api/internal/application/dto"
	"lending-metrics-api/internal/application/readthrough"
	"lending-metrics-api/internal/application/services"
)

// HistoryHandler serves series built from hourly snapshots
type HistoryHandler struct {
	history   *services.HistoryService
	freshness *Freshness
}

func NewHistoryHandler(history *services.HistoryService, freshness *Freshness) *HistoryHandler {
	return &HistoryHandler{history: history, freshness: freshness}
}

// GetHistory godoc
// @Summary Metrics history
// @Description Hourly series between two epochs in milliseconds, last month by default
// @Tags history
// @Produce json
// @Param env query string false "Cluster" Enums(mainnet-beta, devnet)
// @Param from query int false "Start epoch in milliseconds"
// @Param to query int false "End epoch in milliseconds"
// @Success 200 {object} entities.History
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/v1/history [get]
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()
	req, err := dto.NewHistoryRequest(query.Get("env"), query.Get("from"), query.Get("to"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	from, to := req.From, req.To
	defFrom, defTo := h.history.DefaultRange()
	if from.IsZero() {
		from = defFrom
	}
	if to.IsZero() {
		to = defTo
	}

	history, err := h.history.GetHistory(ctx, req.Cluster, from, to)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	h.freshness.Apply(ctx, w, readthrough.HistoryKey(req.Cluster, from, to))
	writeJSON(ctx, w, http.StatusOK, history)
}
