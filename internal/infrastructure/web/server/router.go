package server

import (
	"net/http"

	"lending-metrics-api/internal/infrastructure/metrics"
	"lending-metrics-api/internal/infrastructure/ratelimit"
	"lending-metrics-api/internal/infrastructure/web/handlers"
	"lending-metrics-api/internal/infrastructure/web/middleware"

	_ "lending-metrics-api/internal/docs"

	"github.com/gorilla/mux"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Metrics  *handlers.MetricsHandler
	Loans    *handlers.LoanHandler
	Staking  *handlers.StakingHandler
	History  *handlers.HistoryHandler
	Health   *handlers.HealthHandler
	Protocol *handlers.ProtocolHandler
}

// NewRouter wires routes and the middleware chain:
// tracing -> logging -> metrics -> rate limit -> cluster validation (api only)
func NewRouter(h Handlers, limiter *ratelimit.RateLimitMiddleware, clock clockwork.Clock) http.Handler {
	router := mux.NewRouter()
	router.Use(
		middleware.RequestTracing(clock),
		middleware.LoggingMiddleware,
		metrics.HTTPMetricsMiddleware,
		limiter.Handler,
	)

	router.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)
	router.HandleFunc("/version", h.Health.Version).Methods(http.MethodGet)
	router.Handle("/metrics/prometheus", promhttp.Handler()).Methods(http.MethodGet)
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.ClusterValidation)

	api.HandleFunc("/metrics", h.Metrics.GetMetrics).Methods(http.MethodGet)
	api.HandleFunc("/circulating-supply", h.Metrics.GetCirculatingSupply).Methods(http.MethodGet)
	api.HandleFunc("/circulating-supply-value", h.Metrics.GetCirculatingSupplyValue).Methods(http.MethodGet)
	api.HandleFunc("/loans", h.Loans.GetLoans).Methods(http.MethodGet)
	api.HandleFunc("/loans/distribution", h.Loans.GetLoanDistribution).Methods(http.MethodGet)
	api.HandleFunc("/owners/{pubkey}/loans", h.Loans.GetOwnerLoans).Methods(http.MethodGet)
	api.HandleFunc("/staking", h.Staking.GetStaking).Methods(http.MethodGet)
	api.HandleFunc("/staking/hbb/users", h.Staking.GetHbbStakers).Methods(http.MethodGet)
	api.HandleFunc("/staking/usdh/users", h.Staking.GetUsdhStakers).Methods(http.MethodGet)
	api.HandleFunc("/history", h.History.GetHistory).Methods(http.MethodGet)
	api.HandleFunc("/config", h.Protocol.GetConfig).Methods(http.MethodGet)
	api.HandleFunc("/maintenance-mode", h.Protocol.GetMaintenanceMode).Methods(http.MethodGet)
	api.HandleFunc("/borrowing-version", h.Protocol.GetBorrowingVersion).Methods(http.MethodGet)

	return router
}
