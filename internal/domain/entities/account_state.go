package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// CollateralAmounts holds raw on-chain amounts (smallest units) keyed by collateral token
type CollateralAmounts map[Token]decimal.Decimal

// Amount returns the raw amount for token, zero when the token is absent
func (c CollateralAmounts) Amount(token Token) decimal.Decimal {
	if v, ok := c[token]; ok {
		return v
	}
	return decimal.Zero
}

// BorrowingMarketState is the global borrowing market account
type BorrowingMarketState struct {
	StablecoinBorrowed  decimal.Decimal   `json:"stablecoinBorrowed"`
	DepositedCollateral CollateralAmounts `json:"depositedCollateral"`
	InactiveCollateral  CollateralAmounts `json:"inactiveCollateral"`
	NumberOfUsers       int64             `json:"numberOfUsers"`
}

// StakingPoolState is the HBB staking pool account
type StakingPoolState struct {
	TotalStake             decimal.Decimal `json:"totalStake"`
	NumUsers               int64           `json:"numUsers"`
	TotalDistributedReward decimal.Decimal `json:"totalDistributedRewards"`
}

// StabilityPoolState tracks stablecoin deposits absorbing liquidations.
// P is the running product accumulator, Epoch and Scale the reset and decay counters.
type StabilityPoolState struct {
	StablecoinDeposited decimal.Decimal `json:"stablecoinDeposited"`
	P                   decimal.Decimal `json:"p"`
	CurrentEpoch        int64           `json:"currentEpoch"`
	CurrentScale        int64           `json:"currentScale"`
}

// DepositSnapshot is the pool state captured at a provider's last deposit
type DepositSnapshot struct {
	Enabled bool            `json:"enabled"`
	Product decimal.Decimal `json:"product"`
	Epoch   int64           `json:"epoch"`
	Scale   int64           `json:"scale"`
}

// StabilityProviderState is one stability pool depositor
type StabilityProviderState struct {
	Owner               string          `json:"owner"`
	DepositedStablecoin decimal.Decimal `json:"depositedStablecoin"`
	UserDepositSnapshot DepositSnapshot `json:"userDepositSnapshot"`
}

// UserStakingState is one HBB staker's position in the staking pool
type UserStakingState struct {
	Owner     string          `json:"owner"`
	StakedHbb decimal.Decimal `json:"stakedHbb"`
}

// UserVault is a borrower's position (user metadata account)
type UserVault struct {
	MetadataPubkey      string            `json:"metadataPk"`
	Owner               string            `json:"owner"`
	UserID              int64             `json:"userId"`
	Status              int               `json:"status"`
	Version             int               `json:"version"`
	BorrowedStablecoin  decimal.Decimal   `json:"borrowedStablecoin"`
	DepositedCollateral CollateralAmounts `json:"depositedCollateral"`
	InactiveCollateral  CollateralAmounts `json:"inactiveCollateral"`
}

// GlobalConfig holds protocol parameters relevant to reporting
type GlobalConfig struct {
	IssuancePerMinute decimal.Decimal `json:"issuancePerMinute"`
}

// RawAccountState is the immutable snapshot of program state a single fetch reads.
// Amounts are raw integers in each mint's smallest unit.
type RawAccountState struct {
	Cluster            Cluster                  `json:"cluster"`
	Slot               uint64                   `json:"slot"`
	ReadAt             time.Time                `json:"readAt"`
	BorrowingMarket    BorrowingMarketState     `json:"borrowingMarket"`
	StakingPool        StakingPoolState         `json:"stakingPool"`
	StabilityPool      StabilityPoolState       `json:"stabilityPool"`
	StabilityProviders []StabilityProviderState `json:"stabilityProviders"`
	HbbStakers         []UserStakingState       `json:"hbbStakers"`
	UserVaults         []UserVault              `json:"userVaults"`
	GlobalConfig       GlobalConfig             `json:"globalConfig"`
	TreasuryVault      decimal.Decimal          `json:"treasuryVault"`
	HbbSupply          decimal.Decimal          `json:"hbbSupply"`
	HbbHolders         int64                    `json:"hbbHolders"`
	HbbCirculating     decimal.Decimal          `json:"hbbCirculating"`
}

// VaultsOf returns the vaults owned by owner
func (s *RawAccountState) VaultsOf(owner string) []UserVault {
	var out []UserVault
	for _, v := range s.UserVaults {
		if v.Owner == owner {
			out = append(out, v)
		}
	}
	return out
}
