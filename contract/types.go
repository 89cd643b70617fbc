package contract

import (
	"math"

	"kodama_protocol/sdk"

	"github.com/holiman/uint256"
)

// Amount is the fixed-point token quantity used across all engines:
// an int64 scaled by AmountScale, so 1.234 tokens are stored as 1234.
type Amount int64

// FloatToAmount scales human floats by AmountScale and rounds to int64 so storage stays precise.
func FloatToAmount(v float64) Amount {
	return Amount(math.Round(v * AmountScale))
}

// AmountToFloat converts back to float64 for reporting or events.
func AmountToFloat(v Amount) float64 {
	return float64(v) / AmountScale
}

// AmountToInt64 exposes the raw scaled int64 for ledger transfer functions.
func AmountToInt64(v Amount) int64 {
	return int64(v)
}

// Role keys the privileged capability sets. The multisig/threshold mechanics
// behind a principal are the platform's business; the contract only ever asks
// isAuthorized(caller, role).
type Role uint8

const (
	RoleGuardian    Role = 1
	RoleDistributor Role = 2
	RoleTreasury    Role = 3
	RoleBoard       Role = 4
)

// String prints the role as short text for keys and events.
func (r Role) String() string {
	switch r {
	case RoleGuardian:
		return "guardian"
	case RoleDistributor:
		return "distributor"
	case RoleTreasury:
		return "treasury"
	case RoleBoard:
		return "board"
	default:
		return "unknown"
	}
}

// VoteSupport is the governance ballot choice.
type VoteSupport uint8

const (
	SupportAgainst VoteSupport = 0
	SupportFor     VoteSupport = 1
	SupportAbstain VoteSupport = 2
)

// String prints the ballot choice for events.
func (s VoteSupport) String() string {
	switch s {
	case SupportFor:
		return "for"
	case SupportAbstain:
		return "abstain"
	default:
		return "against"
	}
}

// ProposalStatus is always derived from stored proposal fields plus the chain
// clock, never persisted. See proposalStatus in governance.go.
type ProposalStatus uint8

const (
	StatusPending ProposalStatus = iota
	StatusActive
	StatusDefeated
	StatusSucceeded
	StatusQueued
	StatusExecuted
	StatusExpired
	StatusCanceled
)

// String prints the lifecycle state as lower-case text for events and queries.
func (ps ProposalStatus) String() string {
	switch ps {
	case StatusPending:
		return "pending"
	case StatusActive:
		return "active"
	case StatusDefeated:
		return "defeated"
	case StatusSucceeded:
		return "succeeded"
	case StatusQueued:
		return "queued"
	case StatusExecuted:
		return "executed"
	case StatusExpired:
		return "expired"
	case StatusCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// LockPosition is one account's vote-escrow lock. UnlockTime is always
// floored to a week boundary and never exceeds now+MaxLockSecs.
type LockPosition struct {
	Amount     Amount
	UnlockTime int64
}

// Checkpoint is one point of a bias/slope decay schedule, recorded per
// account and globally. Bias and Slope are WAD-scaled u256 so that slopes of
// small locks over a four-year horizon don't truncate to zero.
type Checkpoint struct {
	Bias   *uint256.Int
	Slope  *uint256.Int
	Ts     int64
	Height uint64
}

// Gauge is a registered emission target. Weight holds the live accumulation
// for the current epoch only; finalized epochs snapshot it separately.
type Gauge struct {
	Target           sdk.Address
	Weight           Amount
	LastClaimedEpoch uint64
	Active           bool
}

// GaugeAllocation stores one leg of a user's epoch vote. Weight is the
// absolute contribution at vote time so a reset reverses exactly what was
// added, regardless of how the voter's power moved since.
type GaugeAllocation struct {
	GaugeID   uint64
	WeightBps uint64
	Weight    Amount
}

// Proposal is a governance action batch. Targets are callee contract ids with
// parallel method/payload/value arrays executed in order on success.
type Proposal struct {
	ID           uint64
	Proposer     sdk.Address
	Targets      []string
	Methods      []string
	Payloads     []string
	Values       []Amount
	StartTime    int64
	EndTime      int64
	ForVotes     Amount
	AgainstVotes Amount
	AbstainVotes Amount
	Canceled     bool
	Executed     bool
	Eta          int64
}

// VoteReceipt is write-once per proposal per voter.
type VoteReceipt struct {
	HasVoted bool
	Support  VoteSupport
	Weight   Amount
}

// BondMarket prices deposits of one asset into vesting-locked protocol
// token payouts.
type BondMarket struct {
	ID             uint64
	DepositAsset   sdk.Asset
	DiscountBps    uint64
	BetaBps        uint64
	MinVestingSecs int64
	MaxVestingSecs int64
	MaxPayout      Amount
	EpochBudget    Amount
	EpochBonded    Amount
	LastEpochReset int64
	Active         bool
}

// Bond is one user's vesting position.
type Bond struct {
	ID          uint64
	MarketID    uint64
	Owner       sdk.Address
	Payout      Amount
	VestingSecs int64
	DepositedAt int64
	Claimed     Amount
}

// PriceObservation is one TWAP ring slot: micro-USD per whole token.
type PriceObservation struct {
	PriceMicro uint64
	Ts         int64
}

// StakeTier is one row of the fixed demurrage-staking tier table.
type StakeTier struct {
	Threshold Amount
	LockDays  uint64
	BoostBps  uint64
}

// DemurrageAccount is one holder of the protocol token. Balance decays while
// idle; Staked is shielded, locked until LockEnd and accrues Pending rebase
// rewards at the tier boost.
type DemurrageAccount struct {
	Balance       Amount
	Staked        Amount
	Tier          uint8
	LockEnd       int64
	LastDecayAt   int64
	LastAccrualAt int64
	Pending       Amount
}

// SaleState tracks the bonding-curve primary sale.
type SaleState struct {
	Sold   Amount
	Active bool
}

// Params is the privileged numeric configuration surface. Every field is
// mutable only through config_set_param, each change logged with old/new.
type Params struct {
	ReserveAsset        sdk.Asset
	QuorumVotes         Amount
	ProposalThreshold   Amount
	VotingDelaySecs     int64
	VotingPeriodSecs    int64
	TimelockDelaySecs   int64
	GracePeriodSecs     int64
	PublicGovernanceAt  int64
	PublicGovernance    bool
	GaugeEpochSecs      int64
	EmissionsPerEpoch   Amount
	MaxVoteAllocations  uint64
	StakingEpochSecs    int64
	StakingRateBps      uint64
	DemurrageBps        uint64
	DemurrageRateBps    uint64
	DemurrageEpochSecs  int64
	BondEpochSecs       int64
	MaxDebt             Amount
	SaleStartPriceMicro uint64
	SaleEndPriceMicro   uint64
	SaleSupply          Amount
	TwapWindowSecs      int64
}

// AddressFromString converts a human string to the platform address wrapper.
func AddressFromString(s string) sdk.Address { return sdk.Address(s) }

// AddressToString turns the wrapped type back into the underlying string.
func AddressToString(a sdk.Address) string { return a.String() }
