package dto

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"lending-metrics-api/internal/application/services"
	"lending-metrics-api/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// HistoryRequest representa el rango pedido a /history. Un límite cero usa el rango por defecto.
type HistoryRequest struct {
	Cluster entities.Cluster
	From    time.Time
	To      time.Time
}

// NewHistoryRequest parsea env, from y to. from y to son epochs en milisegundos.
func NewHistoryRequest(env, from, to string) (*HistoryRequest, error) {
	cluster, err := NewEnvironment(env)
	if err != nil {
		return nil, err
	}

	req := &HistoryRequest{Cluster: cluster}
	if req.From, err = parseEpoch("from", from); err != nil {
		return nil, err
	}
	if req.To, err = parseEpoch("to", to); err != nil {
		return nil, err
	}

	if !req.From.IsZero() && !req.To.IsZero() && req.From.After(req.To) {
		return nil, fmt.Errorf("%w: start date (epoch: %d) can not be bigger than end date (epoch: %d)",
			services.ErrInvalidInput, req.From.UnixMilli(), req.To.UnixMilli())
	}
	return req, nil
}

// DistributionRequest representa los parámetros de /loans/distribution
type DistributionRequest struct {
	Cluster entities.Cluster
	Query   services.DistributionQuery
}

// NewDistributionRequest parsea los límites decimales y la cantidad de bins
func NewDistributionRequest(env, from, to, bins string) (*DistributionRequest, error) {
	cluster, err := NewEnvironment(env)
	if err != nil {
		return nil, err
	}

	req := &DistributionRequest{Cluster: cluster}
	if req.Query.From, err = parseBound("from", from); err != nil {
		return nil, err
	}
	if req.Query.To, err = parseBound("to", to); err != nil {
		return nil, err
	}

	if bins = strings.TrimSpace(bins); bins != "" {
		n, err := strconv.Atoi(bins)
		if err != nil || n < 1 || n > services.MaxDistributionBins {
			return nil, fmt.Errorf("%w: bins must be an integer between 1 and %d", services.ErrInvalidInput, services.MaxDistributionBins)
		}
		req.Query.Bins = n
	}
	return req, nil
}

// NewEnvironment valida el query param env; vacío selecciona mainnet-beta
func NewEnvironment(env string) (entities.Cluster, error) {
	cluster, err := entities.ParseCluster(env)
	if err != nil {
		return "", fmt.Errorf("%w: %w", services.ErrInvalidInput, err)
	}
	return cluster, nil
}

func parseEpoch(name, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	epoch, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || epoch < 0 {
		return time.Time{}, fmt.Errorf("%w: %s must be an epoch in milliseconds, got %q", services.ErrInvalidInput, name, raw)
	}
	return time.UnixMilli(epoch).UTC(), nil
}

func parseBound(name, raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a decimal number, got %q", services.ErrInvalidInput, name, raw)
	}
	return &value, nil
}
