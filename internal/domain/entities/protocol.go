package entities

// ProtocolAccounts are the program state accounts clients read on one cluster
type ProtocolAccounts struct {
	BorrowingMarketState string `json:"borrowingMarketState,omitempty"`
	StakingPoolState     string `json:"stakingPoolState,omitempty"`
	StabilityPoolState   string `json:"stabilityPoolState,omitempty"`
	TreasuryVault        string `json:"treasuryVault,omitempty"`
}

// ProtocolSettings is the published configuration of the lending program on a cluster,
// together with the operational flags clients poll
type ProtocolSettings struct {
	Cluster          Cluster          `json:"env"`
	ProgramID        string           `json:"programId,omitempty"`
	Accounts         ProtocolAccounts `json:"accounts"`
	Mints            map[Token]string `json:"mints"`
	MaintenanceMode  bool             `json:"-"`
	BorrowingVersion int              `json:"-"`
}
