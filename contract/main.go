package contract

import (
	"strconv"

	"kodama_protocol/sdk"
)

// -----------------------------------------------------------------------------
// Contract Initialization
// -----------------------------------------------------------------------------

// ContractInit seeds the role sets and default parameters. Must run before
// any other export; the caller becomes the guardian unless the payload names
// a different one.
//
//go:wasmexport contract_init
func ContractInit(payload *string) *string {
	if isContractInitialized() {
		sdk.Abort("contract already initialized")
	}

	var args InitArgs
	decodePayload(payload, &args, "init")

	reserve := sdk.AssetHbd
	if args.ReserveAsset != "" {
		if !isValidAsset(args.ReserveAsset) {
			abortValidation("unsupported reserve asset: " + args.ReserveAsset)
		}
		reserve = sdk.Asset(args.ReserveAsset)
	}

	guardian := getSenderAddress()
	if args.Guardian != "" {
		guardian = AddressFromString(args.Guardian)
	}
	grantRole(RoleGuardian, guardian)
	if args.Distributor != "" {
		grantRole(RoleDistributor, AddressFromString(args.Distributor))
	}
	if args.Treasury != "" {
		grantRole(RoleTreasury, AddressFromString(args.Treasury))
	}
	for _, b := range args.Board {
		grantRole(RoleBoard, AddressFromString(b))
	}

	saveParams(defaultParams(reserve))
	markContractInitialized()

	emitRoleChanged(RoleGuardian, guardian.String(), true)
	return strptr("initialized")
}

// defaultParams assembles the launch configuration from the fallbacks.
func defaultParams(reserve sdk.Asset) *Params {
	return &Params{
		ReserveAsset:        reserve,
		QuorumVotes:         FallbackQuorumVotes,
		ProposalThreshold:   FallbackProposalThreshold,
		VotingDelaySecs:     FallbackVotingDelaySecs,
		VotingPeriodSecs:    FallbackVotingPeriodSecs,
		TimelockDelaySecs:   FallbackTimelockDelaySecs,
		GracePeriodSecs:     FallbackGracePeriodSecs,
		GaugeEpochSecs:      FallbackGaugeEpochSecs,
		EmissionsPerEpoch:   FallbackEmissionsPerEpoch,
		MaxVoteAllocations:  FallbackMaxVoteAllocations,
		StakingEpochSecs:    FallbackStakingEpochSecs,
		StakingRateBps:      FallbackStakingRateBps,
		DemurrageBps:        FallbackDemurrageBps,
		DemurrageRateBps:    FallbackDemurrageRateBps,
		DemurrageEpochSecs:  FallbackDemurrageEpochSecs,
		BondEpochSecs:       FallbackBondEpochSecs,
		MaxDebt:             FallbackMaxDebt,
		SaleStartPriceMicro: FallbackSaleStartMicro,
		SaleEndPriceMicro:   FallbackSaleEndMicro,
		SaleSupply:          FallbackSaleSupply,
		TwapWindowSecs:      FallbackTwapWindowSecs,
	}
}

// -----------------------------------------------------------------------------
// Parameter Surface
// -----------------------------------------------------------------------------

// requireConfigAuthority gates config and role mutations: guardian, board, or
// the contract itself (a queued governance batch calling back in).
func requireConfigAuthority() sdk.Address {
	caller := getSenderAddress()
	if caller.String() == currentEnv().ContractId {
		return caller
	}
	if isAuthorized(caller, RoleGuardian) || isAuthorized(caller, RoleBoard) {
		return caller
	}
	abortAuth("caller may not change configuration")
	return caller
}

// SetParam updates one named parameter, logging old and new values.
//
//go:wasmexport config_set_param
func SetParam(payload *string) *string {
	requireConfigAuthority()

	var args SetParamArgs
	decodePayload(payload, &args, "config_set_param")
	if args.Name == "" {
		abortValidation("parameter name required")
	}

	p := loadParams()
	old := applyParam(p, args.Name, args.Value)
	saveParams(p)
	emitParamChanged(args.Name, old, args.Value)
	return strptr("parameter " + args.Name + " updated")
}

func parseParamAmount(value string) Amount {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f < 0 {
		abortValidation("invalid amount value: " + value)
	}
	return FloatToAmount(f)
}

func parseParamSecs(value string) int64 {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n <= 0 {
		abortValidation("invalid duration value: " + value)
	}
	return n
}

func parseParamUint(value string) uint64 {
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		abortValidation("invalid numeric value: " + value)
	}
	return n
}

// applyParam mutates one field by name and returns the previous value as text.
func applyParam(p *Params, name, value string) string {
	switch name {
	case "quorum_votes":
		old := strconv.FormatFloat(AmountToFloat(p.QuorumVotes), 'f', -1, 64)
		p.QuorumVotes = parseParamAmount(value)
		return old
	case "proposal_threshold":
		old := strconv.FormatFloat(AmountToFloat(p.ProposalThreshold), 'f', -1, 64)
		p.ProposalThreshold = parseParamAmount(value)
		return old
	case "voting_delay_secs":
		old := strconv.FormatInt(p.VotingDelaySecs, 10)
		p.VotingDelaySecs = parseParamSecs(value)
		return old
	case "voting_period_secs":
		old := strconv.FormatInt(p.VotingPeriodSecs, 10)
		p.VotingPeriodSecs = parseParamSecs(value)
		return old
	case "timelock_delay_secs":
		old := strconv.FormatInt(p.TimelockDelaySecs, 10)
		p.TimelockDelaySecs = parseParamSecs(value)
		return old
	case "grace_period_secs":
		old := strconv.FormatInt(p.GracePeriodSecs, 10)
		p.GracePeriodSecs = parseParamSecs(value)
		return old
	case "gauge_epoch_secs":
		old := strconv.FormatInt(p.GaugeEpochSecs, 10)
		p.GaugeEpochSecs = parseParamSecs(value)
		return old
	case "emissions_per_epoch":
		old := strconv.FormatFloat(AmountToFloat(p.EmissionsPerEpoch), 'f', -1, 64)
		p.EmissionsPerEpoch = parseParamAmount(value)
		return old
	case "max_vote_allocations":
		old := strconv.FormatUint(p.MaxVoteAllocations, 10)
		n := parseParamUint(value)
		if n == 0 {
			abortValidation("max_vote_allocations must be positive")
		}
		p.MaxVoteAllocations = n
		return old
	case "staking_epoch_secs":
		old := strconv.FormatInt(p.StakingEpochSecs, 10)
		p.StakingEpochSecs = parseParamSecs(value)
		return old
	case "staking_rate_bps":
		old := strconv.FormatUint(p.StakingRateBps, 10)
		n := parseParamUint(value)
		if n >= BpsDenom {
			abortValidation("staking_rate_bps must stay below 10000")
		}
		p.StakingRateBps = n
		return old
	case "demurrage_bps":
		old := strconv.FormatUint(p.DemurrageBps, 10)
		n := parseParamUint(value)
		if n >= BpsDenom {
			abortValidation("demurrage_bps must stay below 10000")
		}
		p.DemurrageBps = n
		return old
	case "demurrage_rate_bps":
		old := strconv.FormatUint(p.DemurrageRateBps, 10)
		n := parseParamUint(value)
		if n >= BpsDenom {
			abortValidation("demurrage_rate_bps must stay below 10000")
		}
		p.DemurrageRateBps = n
		return old
	case "demurrage_epoch_secs":
		old := strconv.FormatInt(p.DemurrageEpochSecs, 10)
		p.DemurrageEpochSecs = parseParamSecs(value)
		return old
	case "bond_epoch_secs":
		old := strconv.FormatInt(p.BondEpochSecs, 10)
		p.BondEpochSecs = parseParamSecs(value)
		return old
	case "max_debt":
		old := strconv.FormatFloat(AmountToFloat(p.MaxDebt), 'f', -1, 64)
		p.MaxDebt = parseParamAmount(value)
		return old
	case "twap_window_secs":
		old := strconv.FormatInt(p.TwapWindowSecs, 10)
		p.TwapWindowSecs = parseParamSecs(value)
		return old
	case "public_governance_at":
		old := strconv.FormatInt(p.PublicGovernanceAt, 10)
		if p.PublicGovernance {
			abortState("public governance already active")
		}
		n := parseParamSecs(value)
		if n <= nowUnix() {
			abortValidation("public_governance_at must be in the future")
		}
		p.PublicGovernanceAt = n
		return old
	default:
		abortValidation("unknown parameter: " + name)
	}
	return ""
}

// -----------------------------------------------------------------------------
// Role Management
// -----------------------------------------------------------------------------

func parseRole(name string) Role {
	switch name {
	case "guardian":
		return RoleGuardian
	case "distributor":
		return RoleDistributor
	case "treasury":
		return RoleTreasury
	case "board":
		return RoleBoard
	default:
		abortValidation("unknown role: " + name)
	}
	return 0
}

// GrantRole adds a principal to one of the capability sets.
//
//go:wasmexport role_grant
func GrantRole(payload *string) *string {
	requireConfigAuthority()

	var args RoleArgs
	decodePayload(payload, &args, "role_grant")
	role := parseRole(args.Role)
	addr := AddressFromString(args.Address)
	grantRole(role, addr)
	emitRoleChanged(role, args.Address, true)
	return strptr("role granted")
}

// RevokeRole removes a principal from one of the capability sets.
//
//go:wasmexport role_revoke
func RevokeRole(payload *string) *string {
	requireConfigAuthority()

	var args RoleArgs
	decodePayload(payload, &args, "role_revoke")
	role := parseRole(args.Role)
	addr := AddressFromString(args.Address)
	revokeRole(role, addr)
	emitRoleChanged(role, args.Address, false)
	return strptr("role revoked")
}
