package chain

import (
	"time"

	"lending-metrics-api/internal/domain/entities"

	"github.com/mr-tron/base58"
	"github.com/shopspring/decimal"
)

// SampleStates returns a small deterministic protocol state per supported cluster,
// served by the static provider when no fixture is configured.
func SampleStates(now time.Time) map[entities.Cluster]entities.RawAccountState {
	states := make(map[entities.Cluster]entities.RawAccountState)
	for i, cluster := range entities.SupportedClusters() {
		states[cluster] = sampleState(cluster, int64(i+1), now)
	}
	return states
}

func sampleState(cluster entities.Cluster, scale int64, now time.Time) entities.RawAccountState {
	raw := func(v int64) decimal.Decimal { return decimal.NewFromInt(v * scale) }

	vaults := []entities.UserVault{
		sampleVault(1, 1, raw(1_000_000_000), entities.CollateralAmounts{entities.TokenSOL: raw(50_000_000_000)}),
		sampleVault(2, 2, raw(2_500_000_000), entities.CollateralAmounts{entities.TokenETH: raw(2_000_000), entities.TokenMSOL: raw(10_000_000_000)}),
		sampleVault(3, 2, raw(400_000_000), entities.CollateralAmounts{entities.TokenBTC: raw(30_000)}),
		sampleVault(4, 3, decimal.Zero, entities.CollateralAmounts{entities.TokenRAY: raw(100_000_000)}),
	}

	deposited := entities.CollateralAmounts{}
	borrowed := decimal.Zero
	for _, v := range vaults {
		borrowed = borrowed.Add(v.BorrowedStablecoin)
		for token, amount := range v.DepositedCollateral {
			deposited[token] = deposited.Amount(token).Add(amount)
		}
	}

	return entities.RawAccountState{
		Cluster: cluster,
		Slot:    uint64(130_000_000 * scale),
		ReadAt:  now.UTC(),
		BorrowingMarket: entities.BorrowingMarketState{
			StablecoinBorrowed:  borrowed,
			DepositedCollateral: deposited,
			InactiveCollateral:  entities.CollateralAmounts{},
			NumberOfUsers:       int64(len(vaults)),
		},
		StakingPool: entities.StakingPoolState{
			TotalStake:             raw(5_000_000_000_000),
			NumUsers:               2,
			TotalDistributedReward: raw(85_000_000_000),
		},
		StabilityPool: entities.StabilityPoolState{
			StablecoinDeposited: raw(1_500_000_000),
			P:                   decimal.NewFromInt(1_000_000_000),
		},
		StabilityProviders: []entities.StabilityProviderState{
			sampleProvider(1, raw(1_000_000_000)),
			sampleProvider(2, raw(500_000_000)),
		},
		HbbStakers: []entities.UserStakingState{
			{Owner: samplePubkey(1), StakedHbb: raw(3_000_000_000_000)},
			{Owner: samplePubkey(2), StakedHbb: raw(2_000_000_000_000)},
		},
		UserVaults: vaults,
		GlobalConfig: entities.GlobalConfig{
			IssuancePerMinute: decimal.NewFromInt(1_000_000),
		},
		TreasuryVault:  raw(12_000_000_000),
		HbbSupply:      raw(100_000_000_000_000),
		HbbHolders:     1200 * scale,
		HbbCirculating: raw(20_000_000_000_000),
	}
}

func sampleVault(id int64, owner byte, borrowed decimal.Decimal, deposited entities.CollateralAmounts) entities.UserVault {
	return entities.UserVault{
		MetadataPubkey:      samplePubkey(100 + byte(id)),
		Owner:               samplePubkey(owner),
		UserID:              id,
		Status:              1,
		Version:             1,
		BorrowedStablecoin:  borrowed,
		DepositedCollateral: deposited,
		InactiveCollateral:  entities.CollateralAmounts{},
	}
}

func sampleProvider(owner byte, deposited decimal.Decimal) entities.StabilityProviderState {
	return entities.StabilityProviderState{
		Owner:               samplePubkey(owner),
		DepositedStablecoin: deposited,
		UserDepositSnapshot: entities.DepositSnapshot{
			Enabled: true,
			Product: decimal.NewFromInt(1_000_000_000),
		},
	}
}

// samplePubkey encodes a 32 byte key whose bytes are all seed
func samplePubkey(seed byte) string {
	key := make([]byte, 32)
	for i := range key {
		key[i] = seed
	}
	return base58.Encode(key)
}
