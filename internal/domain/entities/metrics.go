package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// PercentileSample is one rung of a percentile ladder.
// Level is the fraction of samples at or below Value, from 0 to 1.
type PercentileSample struct {
	Value      decimal.Decimal `json:"value"`
	TotalCount int64           `json:"totalCount"`
	Level      decimal.Decimal `json:"percentile"`
}

// DistributionBin is one equal-width bucket of a histogram
type DistributionBin struct {
	Index      int             `json:"index"`
	LowerBound decimal.Decimal `json:"lowerBound"`
	UpperBound decimal.Decimal `json:"upperBound"`
	Count      int64           `json:"count"`
}

// LoanStats summarizes loan sizes in stablecoin units
type LoanStats struct {
	Total        int64              `json:"total"`
	Min          decimal.Decimal    `json:"min"`
	Max          decimal.Decimal    `json:"max"`
	Average      decimal.Decimal    `json:"average"`
	Median       decimal.Decimal    `json:"median"`
	Distribution []PercentileSample `json:"distribution"`
}

// TokenCollateral is the collateral of one token converted to UI units with its price
type TokenCollateral struct {
	Token     Token           `json:"token"`
	Deposited decimal.Decimal `json:"deposited"`
	Inactive  decimal.Decimal `json:"inactive"`
	Price     decimal.Decimal `json:"price"`
}

// CollateralTotals aggregates collateral value across every supported token
type CollateralTotals struct {
	Tokens    []TokenCollateral `json:"tokens"`
	Total     decimal.Decimal   `json:"total"`
	Deposited decimal.Decimal   `json:"deposited"`
	Inactive  decimal.Decimal   `json:"inactive"`
}

// CollateralMetrics is the collateral section of MetricsResult
type CollateralMetrics struct {
	Total             decimal.Decimal    `json:"total"`
	Deposited         decimal.Decimal    `json:"deposited"`
	Inactive          decimal.Decimal    `json:"inactive"`
	DepositedTokens   []TokenCollateral  `json:"depositedTokens"`
	CollateralRatio   decimal.Decimal    `json:"collateralRatio"`
	RatioDistribution []PercentileSample `json:"ratioDistribution"`
}

// HbbMetrics is the governance token section of MetricsResult
type HbbMetrics struct {
	Staked          decimal.Decimal `json:"staked"`
	NumberOfStakers int64           `json:"numberOfStakers"`
	Price           decimal.Decimal `json:"price"`
	Issued          decimal.Decimal `json:"issued"`
	NumberOfHolders int64           `json:"numberOfHolders"`
}

// BorrowingMetrics is the borrowing market section of MetricsResult
type BorrowingMetrics struct {
	NumberOfBorrowers int64           `json:"numberOfBorrowers"`
	Treasury          decimal.Decimal `json:"treasury"`
	Loans             LoanStats       `json:"loans"`
}

// UsdhMetrics is the stablecoin section of MetricsResult
type UsdhMetrics struct {
	StabilityPool             decimal.Decimal    `json:"stabilityPool"`
	StabilityPoolDistribution []PercentileSample `json:"stabilityPoolDistribution"`
	Issued                    decimal.Decimal    `json:"issued"`
}

// MetricsResult is the decimal-valued aggregate produced by one pipeline run.
// It is immutable once produced and cached verbatim.
type MetricsResult struct {
	Cluster                Cluster           `json:"cluster"`
	Collateral             CollateralMetrics `json:"collateral"`
	Hbb                    HbbMetrics        `json:"hbb"`
	Revenue                decimal.Decimal   `json:"revenue"`
	Borrowing              BorrowingMetrics  `json:"borrowing"`
	Usdh                   UsdhMetrics       `json:"usdh"`
	CirculatingSupplyValue decimal.Decimal   `json:"circulatingSupplyValue"`
	TotalValueLocked       decimal.Decimal   `json:"totalValueLocked"`
	Timestamp              int64             `json:"timestamp"`
}

// Loan is a single borrower position with its derived ratios
type Loan struct {
	MetadataPubkey       string            `json:"metadataPk"`
	Owner                string            `json:"owner"`
	UserID               int64             `json:"userId"`
	Status               int               `json:"status"`
	Version              int               `json:"version"`
	UsdhDebt             decimal.Decimal   `json:"usdhDebt"`
	TotalCollateralValue decimal.Decimal   `json:"totalCollateralValue"`
	CollateralRatio      decimal.Decimal   `json:"collateralRatio"`
	LoanToValue          decimal.Decimal   `json:"loanToValue"`
	Collateral           []TokenCollateral `json:"collateral"`
}

// StakingStats reports yield of one staking product
type StakingStats struct {
	Name string          `json:"name"`
	APR  decimal.Decimal `json:"apr"`
	APY  decimal.Decimal `json:"apy"`
	TVL  decimal.Decimal `json:"tvl"`
}

// StakingUser is one staker and the amount staked in UI units
type StakingUser struct {
	User   string          `json:"user"`
	Staked decimal.Decimal `json:"staked"`
}

// MetricsSnapshot is a MetricsResult persisted at a point in time
type MetricsSnapshot struct {
	Cluster   Cluster       `json:"environment"`
	CreatedAt time.Time     `json:"createdOn"`
	Metrics   MetricsResult `json:"metrics"`
}

// TimestampValue is one point of a history series, epoch in milliseconds
type TimestampValue struct {
	Epoch int64           `json:"epoch"`
	Value decimal.Decimal `json:"value"`
}

// History is the set of series served by the history endpoint
type History struct {
	StartDate         int64            `json:"startDate"`
	EndDate           int64            `json:"endDate"`
	BorrowersHistory  []TimestampValue `json:"borrowersHistory"`
	LoansHistory      []TimestampValue `json:"loansHistory"`
	UsdhHistory       []TimestampValue `json:"usdhHistory"`
	HbbPriceHistory   []TimestampValue `json:"hbbPriceHistory"`
	HbbHoldersHistory []TimestampValue `json:"hbbHoldersHistory"`
}
