package config

import (
	"fmt"
	"strings"

	"lending-metrics-api/internal/domain/entities"
)

// Settings converts the configured clusters into protocol settings
func (c ProtocolConfig) Settings() ([]entities.ProtocolSettings, error) {
	settings := make([]entities.ProtocolSettings, 0, len(c.Clusters))
	for name, cluster := range c.Clusters {
		parsed, err := entities.ParseCluster(name)
		if err != nil {
			return nil, fmt.Errorf("protocol clusters: %w", err)
		}

		mints := make(map[entities.Token]string, len(cluster.Mints))
		for token, mint := range cluster.Mints {
			mints[entities.Token(strings.ToUpper(strings.TrimSpace(token)))] = strings.TrimSpace(mint)
		}

		settings = append(settings, entities.ProtocolSettings{
			Cluster:   parsed,
			ProgramID: cluster.ProgramID,
			Accounts: entities.ProtocolAccounts{
				BorrowingMarketState: cluster.Accounts.BorrowingMarketState,
				StakingPoolState:     cluster.Accounts.StakingPoolState,
				StabilityPoolState:   cluster.Accounts.StabilityPoolState,
				TreasuryVault:        cluster.Accounts.TreasuryVault,
			},
			Mints:            mints,
			MaintenanceMode:  cluster.MaintenanceMode,
			BorrowingVersion: cluster.BorrowingVersion,
		})
	}
	return settings, nil
}
