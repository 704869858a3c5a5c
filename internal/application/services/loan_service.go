package services

import (
	"context"
	"fmt"

	"lending-metrics-api/internal/application/readthrough"
	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/domain/finance"
	"lending-metrics-api/internal/domain/interfaces"

	"github.com/shopspring/decimal"
)

const (
	DefaultDistributionBins = 10
	MaxDistributionBins     = 100
)

var loansExpiry = readthrough.MustExpireInSeconds(30)

// DistributionQuery selects the histogram domain; a nil bound defaults to the
// smallest or largest loan
type DistributionQuery struct {
	From *decimal.Decimal
	To   *decimal.Decimal
	Bins int
}

// LoanDistribution is a histogram of loan sizes in stablecoin units
type LoanDistribution struct {
	From decimal.Decimal            `json:"from"`
	To   decimal.Decimal            `json:"to"`
	Bins []entities.DistributionBin `json:"bins"`
}

// LoanService serves borrower positions
type LoanService struct {
	engine *readthrough.Engine
	inputs protocolInputs
}

func NewLoanService(engine *readthrough.Engine, chain interfaces.ChainClient, prices interfaces.PriceProvider) *LoanService {
	return &LoanService{engine: engine, inputs: protocolInputs{chain: chain, prices: prices}}
}

// GetLoans returns every loan with outstanding debt
func (s *LoanService) GetLoans(ctx context.Context, cluster entities.Cluster) ([]entities.Loan, error) {
	return readthrough.FetchOrCompute(ctx, s.engine, readthrough.LoansKey(cluster), loansExpiry,
		func(ctx context.Context) ([]entities.Loan, error) {
			state, prices, err := s.inputs.load(ctx, cluster, entities.CollateralSymbols())
			if err != nil {
				return nil, err
			}
			return finance.Loans(state.UserVaults, prices)
		})
}

// GetOwnerLoans returns the loans of owner, a base58 encoded public key
func (s *LoanService) GetOwnerLoans(ctx context.Context, cluster entities.Cluster, owner string) ([]entities.Loan, error) {
	if err := ValidatePublicKey(owner); err != nil {
		return nil, err
	}

	return readthrough.FetchOrCompute(ctx, s.engine, readthrough.OwnerLoansKey(cluster, owner), loansExpiry,
		func(ctx context.Context) ([]entities.Loan, error) {
			state, prices, err := s.inputs.load(ctx, cluster, entities.CollateralSymbols())
			if err != nil {
				return nil, err
			}
			return finance.Loans(state.VaultsOf(owner), prices)
		})
}

// GetLoanDistribution bins the cached loan sizes
func (s *LoanService) GetLoanDistribution(ctx context.Context, cluster entities.Cluster, query DistributionQuery) (LoanDistribution, error) {
	bins := query.Bins
	if bins == 0 {
		bins = DefaultDistributionBins
	}
	if bins < 1 || bins > MaxDistributionBins {
		return LoanDistribution{}, fmt.Errorf("%w: bins must be between 1 and %d", ErrInvalidInput, MaxDistributionBins)
	}

	loans, err := s.GetLoans(ctx, cluster)
	if err != nil {
		return LoanDistribution{}, err
	}

	sizes := make([]decimal.Decimal, len(loans))
	for i, loan := range loans {
		sizes[i] = loan.UsdhDebt
	}

	stats := finance.Stats(sizes)
	from, to := stats.Min, stats.Max
	if query.From != nil {
		from = *query.From
	}
	if query.To != nil {
		to = *query.To
	}
	if len(sizes) == 0 && query.From == nil && query.To == nil {
		return LoanDistribution{From: from, To: to, Bins: []entities.DistributionBin{}}, nil
	}
	if query.To == nil && !to.GreaterThan(from) {
		// every loan has the same size
		to = from.Add(decimal.NewFromInt(1))
	}
	if !to.GreaterThan(from) {
		return LoanDistribution{}, fmt.Errorf("%w: distribution range [%s, %s] is empty", ErrInvalidInput, from, to)
	}

	histogram, err := finance.HistogramBins(sizes, from, to, bins)
	if err != nil {
		return LoanDistribution{}, err
	}
	return LoanDistribution{From: from, To: to, Bins: histogram}, nil
}

// ValidatePublicKey checks that key decodes to a 32 byte public key
func ValidatePublicKey(key string) error {
	if !entities.IsPublicKey(key) {
		return fmt.Errorf("%w: could not parse public key from: %s", ErrInvalidInput, key)
	}
	return nil
}
