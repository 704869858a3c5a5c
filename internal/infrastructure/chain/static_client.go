package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/domain/interfaces"
)

// StaticClient serves account state held in memory, loaded from a fixture file or
// built from the sample state
type StaticClient struct {
	mu     sync.RWMutex
	states map[entities.Cluster]entities.RawAccountState
}

// NewStaticClient serves states as given
func NewStaticClient(states map[entities.Cluster]entities.RawAccountState) *StaticClient {
	copied := make(map[entities.Cluster]entities.RawAccountState, len(states))
	for k, v := range states {
		copied[k] = v
	}
	return &StaticClient{states: copied}
}

// LoadFixture reads a JSON object keyed by cluster name
func LoadFixture(path string) (*StaticClient, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}

	var byName map[string]entities.RawAccountState
	if err := json.Unmarshal(raw, &byName); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFixture, path, err)
	}

	states := make(map[entities.Cluster]entities.RawAccountState, len(byName))
	for name, state := range byName {
		cluster, err := entities.ParseCluster(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFixture, err)
		}
		state.Cluster = cluster
		states[cluster] = state
	}
	return NewStaticClient(states), nil
}

// SetState replaces the state served for its cluster
func (c *StaticClient) SetState(state entities.RawAccountState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.states[state.Cluster] = state
}

// FetchAccountState returns a copy of the stored state. Slices are shared and must be treated as read-only.
func (c *StaticClient) FetchAccountState(_ context.Context, cluster entities.Cluster) (*entities.RawAccountState, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	state, ok := c.states[cluster]
	if !ok {
		return nil, fmt.Errorf("%w: %w: %s", interfaces.ErrUpstreamUnavailable, ErrUnknownCluster, cluster)
	}
	return &state, nil
}
