package services

import (
	"context"
	"fmt"
	"time"

	"lending-metrics-api/internal/application/readthrough"
	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/domain/interfaces"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
)

// HistoryService serves time series built from the hourly snapshots
type HistoryService struct {
	engine *readthrough.Engine
	repo   interfaces.SnapshotRepository
	clock  clockwork.Clock
}

func NewHistoryService(engine *readthrough.Engine, repo interfaces.SnapshotRepository, clock clockwork.Clock) *HistoryService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &HistoryService{engine: engine, repo: repo, clock: clock}
}

// DefaultRange is the last month up to the current minute
func (s *HistoryService) DefaultRange() (from, to time.Time) {
	to = s.clock.Now().UTC().Truncate(time.Minute)
	return to.AddDate(0, -1, 0), to
}

// GetHistory returns every series within [from, to]. Zero bounds take the default range.
func (s *HistoryService) GetHistory(ctx context.Context, cluster entities.Cluster, from, to time.Time) (entities.History, error) {
	defFrom, defTo := s.DefaultRange()
	if from.IsZero() {
		from = defFrom
	}
	if to.IsZero() {
		to = defTo
	}
	if from.After(to) {
		return entities.History{}, fmt.Errorf("%w: start date (epoch: %d) can not be bigger than end date (epoch: %d)",
			ErrInvalidInput, from.UnixMilli(), to.UnixMilli())
	}

	policy, err := readthrough.ExpireAtDate(readthrough.NextSnapshotRefresh(s.clock.Now()))
	if err != nil {
		return entities.History{}, err
	}

	return readthrough.FetchOrCompute(ctx, s.engine, readthrough.HistoryKey(cluster, from, to), policy,
		func(ctx context.Context) (entities.History, error) {
			snapshots, err := s.repo.Range(ctx, cluster, from, to)
			if err != nil {
				return entities.History{}, fmt.Errorf("%w: %w", interfaces.ErrUpstreamUnavailable, err)
			}
			return BuildHistory(from, to, snapshots), nil
		})
}

// BuildHistory maps snapshots, oldest first, to one point per series
func BuildHistory(from, to time.Time, snapshots []entities.MetricsSnapshot) entities.History {
	history := entities.History{
		StartDate:         from.UnixMilli(),
		EndDate:           to.UnixMilli(),
		BorrowersHistory:  make([]entities.TimestampValue, 0, len(snapshots)),
		LoansHistory:      make([]entities.TimestampValue, 0, len(snapshots)),
		UsdhHistory:       make([]entities.TimestampValue, 0, len(snapshots)),
		HbbPriceHistory:   make([]entities.TimestampValue, 0, len(snapshots)),
		HbbHoldersHistory: make([]entities.TimestampValue, 0, len(snapshots)),
	}

	for _, snap := range snapshots {
		epoch := snap.CreatedAt.UnixMilli()
		m := snap.Metrics
		history.BorrowersHistory = append(history.BorrowersHistory, point(epoch, decimalFromInt(m.Borrowing.NumberOfBorrowers)))
		history.LoansHistory = append(history.LoansHistory, point(epoch, decimalFromInt(m.Borrowing.Loans.Total)))
		history.UsdhHistory = append(history.UsdhHistory, point(epoch, m.Usdh.Issued))
		history.HbbPriceHistory = append(history.HbbPriceHistory, point(epoch, m.Hbb.Price))
		history.HbbHoldersHistory = append(history.HbbHoldersHistory, point(epoch, decimalFromInt(m.Hbb.NumberOfHolders)))
	}
	return history
}

func point(epoch int64, value decimal.Decimal) entities.TimestampValue {
	return entities.TimestampValue{Epoch: epoch, Value: value}
}

func decimalFromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}
