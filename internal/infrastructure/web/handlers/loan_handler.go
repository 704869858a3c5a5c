package handlers

import (
	"net/http"

	"lending-metrics-api/internal/application/dto"
	"lending-metrics-api/internal/application/readthrough"
	"lending-metrics-api/internal/application/services"

	"github.com/gorilla/mux"
)

// LoanHandler serves borrower positions
type LoanHandler struct {
	loans     *services.LoanService
	mapper    *dto.ResponseMapper
	freshness *Freshness
}

func NewLoanHandler(loans *services.LoanService, freshness *Freshness) *LoanHandler {
	return &LoanHandler{loans: loans, mapper: dto.NewResponseMapper(), freshness: freshness}
}

// GetLoans godoc
// @Summary All loans
// @Description Every vault with outstanding USDH debt
// @Tags loans
// @Produce json
// @Param env query string false "Cluster" Enums(mainnet-beta, devnet)
// @Success 200 {array} entities.Loan
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/v1/loans [get]
func (h *LoanHandler) GetLoans(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cluster, err := clusterOf(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	loans, err := h.loans.GetLoans(ctx, cluster)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	h.freshness.Apply(ctx, w, readthrough.LoansKey(cluster))
	writeJSON(ctx, w, http.StatusOK, h.mapper.ToLoans(loans))
}

// GetOwnerLoans godoc
// @Summary Loans of an owner
// @Description Vaults owned by a base58 public key
// @Tags loans
// @Produce json
// @Param pubkey path string true "Owner public key"
// @Param env query string false "Cluster" Enums(mainnet-beta, devnet)
// @Success 200 {array} entities.Loan
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/owners/{pubkey}/loans [get]
func (h *LoanHandler) GetOwnerLoans(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cluster, err := clusterOf(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	owner := mux.Vars(r)["pubkey"]
	loans, err := h.loans.GetOwnerLoans(ctx, cluster, owner)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	h.freshness.Apply(ctx, w, readthrough.OwnerLoansKey(cluster, owner))
	writeJSON(ctx, w, http.StatusOK, h.mapper.ToLoans(loans))
}

// GetLoanDistribution godoc
// @Summary Loan size histogram
// @Description Equal-width histogram of loan sizes in USDH
// @Tags loans
// @Produce json
// @Param env query string false "Cluster" Enums(mainnet-beta, devnet)
// @Param from query string false "Lower bound, defaults to the smallest loan"
// @Param to query string false "Upper bound, defaults to the largest loan"
// @Param bins query int false "Number of bins (1-100)" default(10)
// @Success 200 {object} dto.LoanDistributionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/loans/distribution [get]
func (h *LoanHandler) GetLoanDistribution(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()
	req, err := dto.NewDistributionRequest(query.Get("env"), query.Get("from"), query.Get("to"), query.Get("bins"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dist, err := h.loans.GetLoanDistribution(ctx, req.Cluster, req.Query)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	// binned from the cached loans, so it is as fresh as they are
	h.freshness.Apply(ctx, w, readthrough.LoansKey(req.Cluster))
	writeJSON(ctx, w, http.StatusOK, h.mapper.ToLoanDistributionResponse(dist))
}
