package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/domain/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func snapshotAt(at time.Time, borrowers int64, price string) entities.MetricsSnapshot {
	return entities.MetricsSnapshot{
		Cluster:   entities.ClusterMainnet,
		CreatedAt: at,
		Metrics: entities.MetricsResult{
			Hbb: entities.HbbMetrics{Price: d(price), NumberOfHolders: borrowers * 10},
			Borrowing: entities.BorrowingMetrics{
				NumberOfBorrowers: borrowers,
				Loans:             entities.LoanStats{Total: borrowers + 1},
			},
			Usdh: entities.UsdhMetrics{Issued: d("1000")},
		},
	}
}

func TestHistoryService_GetHistory(t *testing.T) {
	f := newFixture(t)
	from := time.Date(2022, 4, 30, 0, 0, 0, 0, time.UTC)
	to := time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC)
	snapshots := []entities.MetricsSnapshot{
		snapshotAt(from.Add(time.Hour), 5, "0.4"),
		snapshotAt(from.Add(2*time.Hour), 6, "0.45"),
	}
	f.repo.On("Range", mock.Anything, entities.ClusterMainnet, from, to).Return(snapshots, nil).Once()

	svc := NewHistoryService(f.engine, f.repo, f.clock)
	history, err := svc.GetHistory(context.Background(), entities.ClusterMainnet, from, to)
	require.NoError(t, err)

	assert.Equal(t, from.UnixMilli(), history.StartDate)
	assert.Equal(t, to.UnixMilli(), history.EndDate)
	require.Len(t, history.BorrowersHistory, 2)
	assert.Equal(t, from.Add(time.Hour).UnixMilli(), history.BorrowersHistory[0].Epoch)
	assert.True(t, history.BorrowersHistory[1].Value.Equal(d("6")))
	assert.True(t, history.LoansHistory[1].Value.Equal(d("7")))
	assert.True(t, history.HbbPriceHistory[0].Value.Equal(d("0.4")))
	assert.True(t, history.HbbHoldersHistory[0].Value.Equal(d("50")))
	assert.True(t, history.UsdhHistory[0].Value.Equal(d("1000")))

	_, err = svc.GetHistory(context.Background(), entities.ClusterMainnet, from, to)
	require.NoError(t, err)
	f.repo.AssertExpectations(t)
}

func TestHistoryService_DefaultRange(t *testing.T) {
	f := newFixture(t)
	to := testNow.Truncate(time.Minute)
	from := to.AddDate(0, -1, 0)
	f.repo.On("Range", mock.Anything, entities.ClusterDevnet, from, to).Return([]entities.MetricsSnapshot{}, nil).Once()

	svc := NewHistoryService(f.engine, f.repo, f.clock)
	history, err := svc.GetHistory(context.Background(), entities.ClusterDevnet, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, history.BorrowersHistory)
	assert.NotNil(t, history.BorrowersHistory)
	assert.Equal(t, from.UnixMilli(), history.StartDate)
	f.repo.AssertExpectations(t)
}

func TestHistoryService_InvalidRange(t *testing.T) {
	f := newFixture(t)
	svc := NewHistoryService(f.engine, f.repo, f.clock)

	_, err := svc.GetHistory(context.Background(), entities.ClusterMainnet, testNow, testNow.Add(-time.Hour))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	f.repo.AssertNotCalled(t, "Range", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHistoryService_RepositoryFailure(t *testing.T) {
	f := newFixture(t)
	f.repo.On("Range", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	svc := NewHistoryService(f.engine, f.repo, f.clock)
	_, err := svc.GetHistory(context.Background(), entities.ClusterMainnet, time.Time{}, time.Time{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, interfaces.ErrUpstreamUnavailable))
	assert.Equal(t, 0, f.store.Size())
}
