package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHealthService_Check(t *testing.T) {
	tests := []struct {
		name    string
		pingErr error
		wantErr bool
	}{
		{name: "healthy", pingErr: nil},
		{name: "database down", pingErr: errors.New("connection refused"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.repo.On("Ping", mock.Anything).Return(tt.pingErr)

			err := NewHealthService(f.store, f.repo).Check(context.Background())
			if tt.wantErr {
				assert.ErrorContains(t, err, "snapshot database")
				return
			}
			assert.NoError(t, err)
		})
	}
}
