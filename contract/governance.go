package contract

import (
	"fmt"

	"kodama_protocol/sdk"
)

// Governance: proposals are action batches voted on with escrow power
// snapshotted at the proposal's start time, then queued behind a timelock
// and executed. The lifecycle state is always derived from the stored
// fields plus the chain clock, never persisted.

// proposalStatus derives the lifecycle state, evaluated top-down.
func proposalStatus(pr *Proposal, p *Params, now int64) ProposalStatus {
	switch {
	case pr.Canceled:
		return StatusCanceled
	case pr.Executed:
		return StatusExecuted
	case now <= pr.StartTime:
		return StatusPending
	case now <= pr.EndTime:
		return StatusActive
	}
	if pr.ForVotes <= pr.AgainstVotes || pr.ForVotes < p.QuorumVotes {
		return StatusDefeated
	}
	if pr.Eta == 0 {
		return StatusSucceeded
	}
	if now >= pr.Eta+p.GracePeriodSecs {
		return StatusExpired
	}
	return StatusQueued
}

// isTerminal reports whether a proposal can never change state again.
func isTerminal(s ProposalStatus) bool {
	switch s {
	case StatusDefeated, StatusExecuted, StatusExpired, StatusCanceled:
		return true
	}
	return false
}

// requireProposerEligible checks board membership, or the escrow power
// threshold once the public phase is active.
func requireProposerEligible(caller sdk.Address, p *Params, now int64) {
	if isAuthorized(caller, RoleBoard) {
		return
	}
	if !p.PublicGovernance {
		abortAuth("proposals are board-only until public governance activates")
	}
	if escrowPowerAt(caller, now) < p.ProposalThreshold {
		abortAuth(fmt.Sprintf("proposer power below threshold of %f",
			AmountToFloat(p.ProposalThreshold)))
	}
}

func parseSupport(s string) VoteSupport {
	switch s {
	case "for":
		return SupportFor
	case "against":
		return SupportAgainst
	case "abstain":
		return SupportAbstain
	default:
		abortValidation("support must be for, against or abstain")
	}
	return SupportAgainst
}

// -----------------------------------------------------------------------------
// Exports
// -----------------------------------------------------------------------------

// GovernancePropose opens a new proposal after the voting delay.
//
//go:wasmexport governance_propose
func GovernancePropose(payload *string) *string {
	defer enterGuard("gov")()

	var args ProposeArgs
	decodePayload(payload, &args, "governance_propose")

	p := loadParams()
	caller := getSenderAddress()
	now := nowUnix()

	requireProposerEligible(caller, p, now)

	n := len(args.Targets)
	if n == 0 {
		abortValidation("proposal needs at least one action")
	}
	if n > MaxProposalOps {
		abortValidation(fmt.Sprintf("proposal exceeds %d actions", MaxProposalOps))
	}
	if len(args.Methods) != n || len(args.Payloads) != n || len(args.Values) != n {
		abortValidation("action arrays must have equal length")
	}
	for i, t := range args.Targets {
		if t == "" || args.Methods[i] == "" {
			abortValidation("action target and method required")
		}
		if args.Values[i] < 0 {
			abortValidation("action value cannot be negative")
		}
	}

	if latest := latestProposalOf(caller); latest != 0 {
		prev := loadProposal(latest)
		if !isTerminal(proposalStatus(prev, p, now)) {
			abortState("proposer already has a live proposal")
		}
	}

	values := make([]Amount, n)
	for i, v := range args.Values {
		values[i] = FloatToAmount(v)
	}

	id := proposalCount() + 1
	pr := &Proposal{
		ID:        id,
		Proposer:  caller,
		Targets:   args.Targets,
		Methods:   args.Methods,
		Payloads:  args.Payloads,
		Values:    values,
		StartTime: now + p.VotingDelaySecs,
		EndTime:   now + p.VotingDelaySecs + p.VotingPeriodSecs,
	}
	saveProposal(pr)
	setCount(kProposalCount, id)
	saveLatestProposal(caller, id)

	emitProposalCreated(id, caller.String(), pr.StartTime, pr.EndTime)
	return strptr(fmt.Sprintf("proposal %d created", id))
}

// GovernanceCastVote records a write-once ballot weighted by the voter's
// escrow power at the proposal's start time.
//
//go:wasmexport governance_cast_vote
func GovernanceCastVote(payload *string) *string {
	defer enterGuard("gov")()

	var args CastVoteArgs
	decodePayload(payload, &args, "governance_cast_vote")

	p := loadParams()
	caller := getSenderAddress()
	now := nowUnix()
	support := parseSupport(args.Support)

	pr := loadProposal(args.ProposalID)
	if proposalStatus(pr, p, now) != StatusActive {
		abortState("proposal is not accepting votes")
	}
	receipt := loadReceipt(pr.ID, caller)
	if receipt.HasVoted {
		abortState("already voted on this proposal")
	}

	weight := escrowPowerAt(caller, pr.StartTime)
	if weight <= 0 {
		abortState("no voting power at proposal start")
	}

	switch support {
	case SupportFor:
		pr.ForVotes += weight
	case SupportAgainst:
		pr.AgainstVotes += weight
	case SupportAbstain:
		pr.AbstainVotes += weight
	}
	saveProposal(pr)
	saveReceipt(pr.ID, caller, &VoteReceipt{HasVoted: true, Support: support, Weight: weight})

	emitVoteCast(pr.ID, caller.String(), support, weight)
	return strptr("vote cast")
}

// GovernanceQueue moves a succeeded proposal behind the timelock.
//
//go:wasmexport governance_queue
func GovernanceQueue(payload *string) *string {
	defer enterGuard("gov")()

	var args ProposalIDArgs
	decodePayload(payload, &args, "governance_queue")

	p := loadParams()
	now := nowUnix()

	pr := loadProposal(args.ProposalID)
	if proposalStatus(pr, p, now) != StatusSucceeded {
		abortState("only succeeded proposals can be queued")
	}
	pr.Eta = now + p.TimelockDelaySecs
	saveProposal(pr)

	emitProposalQueued(pr.ID, pr.Eta)
	return strptr(fmt.Sprintf("queued until %d", pr.Eta))
}

// GovernanceExecute runs a queued proposal's action batch after its eta and
// inside the grace window. The executed flag is set before the first call so
// a callback can never re-enter the batch.
//
//go:wasmexport governance_execute
func GovernanceExecute(payload *string) *string {
	defer enterGuard("gov")()

	var args ProposalIDArgs
	decodePayload(payload, &args, "governance_execute")

	p := loadParams()
	now := nowUnix()

	pr := loadProposal(args.ProposalID)
	if proposalStatus(pr, p, now) != StatusQueued {
		abortState("proposal is not queued")
	}
	if now < pr.Eta {
		abortState(fmt.Sprintf("timelock active until %d", pr.Eta))
	}

	pr.Executed = true
	saveProposal(pr)

	for i := range pr.Targets {
		if pr.Values[i] > 0 {
			sdk.TokenTransfer(AddressFromString(pr.Targets[i]),
				AmountToInt64(pr.Values[i]), p.ReserveAsset)
		}
		if ret := sdk.ContractCall(pr.Targets[i], pr.Methods[i], pr.Payloads[i], nil); ret == nil {
			abortExternal(fmt.Sprintf("action %d against %s returned nothing", i, pr.Targets[i]))
		}
	}

	emitProposalExecuted(pr.ID)
	return strptr(fmt.Sprintf("proposal %d executed", pr.ID))
}

// GovernanceCancel kills a live proposal; the guardian or the proposer may
// do it any time before a terminal state.
//
//go:wasmexport governance_cancel
func GovernanceCancel(payload *string) *string {
	defer enterGuard("gov")()

	var args ProposalIDArgs
	decodePayload(payload, &args, "governance_cancel")

	p := loadParams()
	caller := getSenderAddress()
	now := nowUnix()

	pr := loadProposal(args.ProposalID)
	status := proposalStatus(pr, p, now)
	if isTerminal(status) {
		abortState("proposal already settled")
	}

	if !isAuthorized(caller, RoleGuardian) && caller != pr.Proposer {
		abortAuth("only the guardian or the proposer may cancel")
	}

	pr.Canceled = true
	saveProposal(pr)

	emitProposalCanceled(pr.ID, caller.String())
	return strptr("proposal canceled")
}

// GovernanceActivatePublic flips the one-way switch opening proposal rights
// to any account above the power threshold. Requires a scheduled activation
// time (public_governance_at) that has already passed.
//
//go:wasmexport governance_activate_public
func GovernanceActivatePublic(_ *string) *string {
	p := loadParams()
	requireConfigAuthority()
	now := nowUnix()

	if p.PublicGovernance {
		abortState("public governance already active")
	}
	if p.PublicGovernanceAt == 0 {
		abortState("public_governance_at is not scheduled")
	}
	if now < p.PublicGovernanceAt {
		abortState(fmt.Sprintf("public governance opens at %d", p.PublicGovernanceAt))
	}
	p.PublicGovernance = true
	saveParams(p)

	emitGovernancePhase(now)
	return strptr("public governance activated")
}

// GovernanceRenounceGuardian lets a guardian remove itself, typically the
// last step of decentralizing.
//
//go:wasmexport governance_renounce_guardian
func GovernanceRenounceGuardian(_ *string) *string {
	loadParams()
	caller := getSenderAddress()
	requireRole(caller, RoleGuardian)

	revokeRole(RoleGuardian, caller)
	emitRoleChanged(RoleGuardian, caller.String(), false)
	return strptr("guardian renounced")
}

// GovernanceState reports the derived lifecycle state of a proposal.
//
//go:wasmexport governance_state
func GovernanceState(payload *string) *string {
	var args ProposalIDArgs
	decodePayload(payload, &args, "governance_state")

	p := loadParams()
	pr := loadProposal(args.ProposalID)
	status := proposalStatus(pr, p, nowUnix())
	return strptr(toJSON(StatusResponse{Status: status.String()}))
}
