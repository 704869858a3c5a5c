package handlers

import (
	"net/http"

	"lending-metrics-api/internal/application/dto"
	"lending-metrics-api/internal/application/readthrough"
	"lending-metrics-api/internal/application/services"
)

// StakingHandler serves HBB staking and stability pool figures
type StakingHandler struct {
	staking   *services.StakingService
	mapper    *dto.ResponseMapper
	freshness *Freshness
}

func NewStakingHandler(staking *services.StakingService, freshness *Freshness) *StakingHandler {
	return &StakingHandler{staking: staking, mapper: dto.NewResponseMapper(), freshness: freshness}
}

// GetStaking godoc
// @Summary Staking yield
// @Description APR, APY and TVL of HBB staking and the USDH stability pool
// @Tags staking
// @Produce json
// @Param env query string false "Cluster" Enums(mainnet-beta, devnet)
// @Success 200 {array} entities.StakingStats
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/v1/staking [get]
func (h *StakingHandler) GetStaking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cluster, err := clusterOf(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	stats, err := h.staking.GetStaking(ctx, cluster)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	h.freshness.Apply(ctx, w, readthrough.StakingKey(cluster))
	writeJSON(ctx, w, http.StatusOK, stats)
}

// GetHbbStakers godoc
// @Summary HBB stakers
// @Tags staking
// @Produce json
// @Param env query string false "Cluster" Enums(mainnet-beta, devnet)
// @Success 200 {array} entities.StakingUser
// @Router /api/v1/staking/hbb/users [get]
func (h *StakingHandler) GetHbbStakers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cluster, err := clusterOf(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	users, err := h.staking.GetHbbStakers(ctx, cluster)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	h.freshness.Apply(ctx, w, readthrough.HbbStakersKey(cluster))
	writeJSON(ctx, w, http.StatusOK, h.mapper.ToStakingUsers(users))
}

// GetUsdhStakers godoc
// @Summary Stability pool providers
// @Tags staking
// @Produce json
// @Param env query string false "Cluster" Enums(mainnet-beta, devnet)
// @Success 200 {array} entities.StakingUser
// @Router /api/v1/staking/usdh/users [get]
func (h *StakingHandler) GetUsdhStakers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cluster, err := clusterOf(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	users, err := h.staking.GetUsdhStakers(ctx, cluster)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	h.freshness.Apply(ctx, w, readthrough.UsdhStakersKey(cluster))
	writeJSON(ctx, w, http.StatusOK, h.mapper.ToStakingUsers(users))
}
