package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"lending-metrics-api/internal/application/dto"
	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/infrastructure/logging"
)

type clusterKey struct{}

// ClusterFromContext returns the cluster resolved by ClusterValidation
func ClusterFromContext(ctx context.Context) (entities.Cluster, bool) {
	cluster, ok := ctx.Value(clusterKey{}).(entities.Cluster)
	return cluster, ok
}

// ClusterValidation resolves the env query parameter once per request and rejects
// unsupported clusters before any cache or upstream work
func ClusterValidation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cluster, err := dto.NewEnvironment(r.URL.Query().Get("env"))
		if err != nil {
			logging.Security().InvalidRequest(r.Context(), err.Error())

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Cache-Control", "no-store")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(dto.NewErrorResponseWithCode("INVALID_PARAMETER", err.Error(), strconv.Itoa(http.StatusBadRequest)))
			return
		}

		ctx := context.WithValue(r.Context(), clusterKey{}, cluster)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
