package services

import (
	"fmt"
	"sort"

	"lending-metrics-api/internal/domain/entities"
)

// ProtocolService answers the protocol settings published per cluster.
// Settings are fixed at startup, nothing here touches the cache or the chain.
type ProtocolService struct {
	settings map[entities.Cluster]entities.ProtocolSettings
}

func NewProtocolService(settings []entities.ProtocolSettings) *ProtocolService {
	byCluster := make(map[entities.Cluster]entities.ProtocolSettings, len(settings))
	for _, s := range settings {
		byCluster[s.Cluster] = s
	}
	return &ProtocolService{settings: byCluster}
}

// Settings returns the settings of cluster
func (s *ProtocolService) Settings(cluster entities.Cluster) (entities.ProtocolSettings, error) {
	settings, ok := s.settings[cluster]
	if !ok {
		return entities.ProtocolSettings{}, fmt.Errorf("%w: %s", ErrSettingsUnavailable, cluster)
	}
	return settings, nil
}

// All returns the settings of every configured cluster, ordered by cluster name
func (s *ProtocolService) All() []entities.ProtocolSettings {
	all := make([]entities.ProtocolSettings, 0, len(s.settings))
	for _, settings := range s.settings {
		all = append(all, settings)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Cluster < all[j].Cluster })
	return all
}

func (s *ProtocolService) MaintenanceMode(cluster entities.Cluster) (bool, error) {
	settings, err := s.Settings(cluster)
	if err != nil {
		return false, err
	}
	return settings.MaintenanceMode, nil
}

func (s *ProtocolService) BorrowingVersion(cluster entities.Cluster) (int, error) {
	settings, err := s.Settings(cluster)
	if err != nil {
		return 0, err
	}
	return settings.BorrowingVersion, nil
}
