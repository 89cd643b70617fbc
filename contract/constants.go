package contract

import "kodama_protocol/sdk"

// -----------------------------------------------------------------------------
// Supported Assets
// -----------------------------------------------------------------------------

// validAssets lists the platform assets accepted for deposits and bonds.
var validAssets = []string{
	sdk.AssetHbd.String(),
	sdk.AssetHive.String(),
}

// AssetProtocolToken tags the protocol's own (demurrage) token inside the
// TWAP observation ring; it never appears on the platform ledger.
const AssetProtocolToken = sdk.Asset("koda")

// -----------------------------------------------------------------------------
// Amount / Fixed-Point Scaling
// -----------------------------------------------------------------------------

// AmountScale defines the precision multiplier for converting floats to int64.
const AmountScale = 1000

// BpsDenom is the basis-point denominator for all ratio parameters.
const BpsDenom = 10000

// MicroUSD is the price scale used by the TWAP ring and the sale curve.
const MicroUSD = 1_000_000

// -----------------------------------------------------------------------------
// Time Periods
// -----------------------------------------------------------------------------

const (
	DaySecs  = 86400
	WeekSecs = 604800

	// MaxLockWeeks bounds vote-escrow locks to four years of week periods.
	MaxLockWeeks = 208
	MaxLockSecs  = MaxLockWeeks * WeekSecs
)

// -----------------------------------------------------------------------------
// Iteration Caps
// -----------------------------------------------------------------------------

const (
	// CheckpointFillCap bounds the week-stepped global checkpoint fill.
	// A ledger dormant for longer than this many weeks needs more than one
	// mutating call to fully catch up; a known, deliberate limitation.
	CheckpointFillCap = 255

	// DemurrageMaxSteps bounds the compounding daily decay loop per call.
	DemurrageMaxSteps = 365

	// RebaseMaxEpochs bounds the iterative per-epoch index compounding.
	RebaseMaxEpochs = 1000

	// EpochAdvanceCap bounds how many empty gauge epochs one call rolls over.
	EpochAdvanceCap = 255
)

// -----------------------------------------------------------------------------
// Validation Limits
// -----------------------------------------------------------------------------

const (
	// MaxProposalOps limits the action batch size of one proposal.
	MaxProposalOps = 10
	// TwapRingSize is the fixed number of observation slots per asset.
	TwapRingSize = 24
)

// -----------------------------------------------------------------------------
// Default/Fallback Parameters
// -----------------------------------------------------------------------------

const (
	FallbackQuorumVotes        = Amount(400 * AmountScale)
	FallbackProposalThreshold  = Amount(100 * AmountScale)
	FallbackVotingDelaySecs    = int64(DaySecs)
	FallbackVotingPeriodSecs   = int64(3 * DaySecs)
	FallbackTimelockDelaySecs  = int64(2 * DaySecs)
	FallbackGracePeriodSecs    = int64(14 * DaySecs)
	FallbackGaugeEpochSecs     = int64(WeekSecs)
	FallbackEmissionsPerEpoch  = Amount(10_000 * AmountScale)
	FallbackMaxVoteAllocations = 8
	FallbackStakingEpochSecs   = int64(8 * 3600)
	FallbackStakingRateBps     = 5
	FallbackDemurrageBps       = 10
	FallbackDemurrageRateBps   = 20
	FallbackDemurrageEpochSecs = int64(DaySecs)
	FallbackBondEpochSecs      = int64(WeekSecs)
	FallbackMaxDebt            = Amount(1_000_000 * AmountScale)
	FallbackSaleStartMicro     = uint64(10_000)        // $0.01
	FallbackSaleEndMicro       = uint64(1_000_000)     // $1.00
	FallbackSaleSupply         = Amount(900_000_000 * AmountScale)
	FallbackTwapWindowSecs     = int64(6 * 3600)
)

// stakeTiers is the fixed ascending tier table for demurrage staking:
// staked amount threshold -> (lock period, rebase boost). Boost is in bps
// where 10000 means 1x.
var stakeTiers = []StakeTier{
	{Threshold: 100 * AmountScale, LockDays: 7, BoostBps: 10000},
	{Threshold: 1_000 * AmountScale, LockDays: 14, BoostBps: 12500},
	{Threshold: 10_000 * AmountScale, LockDays: 30, BoostBps: 15000},
	{Threshold: 100_000 * AmountScale, LockDays: 60, BoostBps: 20000},
	{Threshold: 1_000_000 * AmountScale, LockDays: 90, BoostBps: 30000},
}
