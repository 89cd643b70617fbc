package contract

import (
	"fmt"
)

// Gauge engine: escrow voters split their power across registered emission
// targets in basis points, epoch by epoch. When an epoch window closes its
// weights freeze, and each gauge claims its proportional slice of the fixed
// per-epoch emission budget, paid in freshly minted protocol tokens.

// currentGaugeEpoch rolls the epoch cursor forward over every completed
// window, freezing each window's weights on the way. The cursor starts on
// first touch; rollovers per call are bounded by EpochAdvanceCap.
func currentGaugeEpoch(p *Params, now int64) *gaugeEpochState {
	e := loadGaugeEpoch()
	if e == nil {
		e = &gaugeEpochState{Epoch: 1, Start: now}
		saveGaugeEpoch(e)
		return e
	}
	changed := false
	for steps := 0; now >= e.Start+p.GaugeEpochSecs && steps < EpochAdvanceCap; steps++ {
		finalizeEpoch(e.Epoch)
		e.Epoch++
		e.Start += p.GaugeEpochSecs
		changed = true
	}
	if changed {
		saveGaugeEpoch(e)
	}
	return e
}

// finalizeEpoch snapshots every gauge's accumulated weight for the closing
// epoch and resets the live accumulators for the next one.
func finalizeEpoch(epoch uint64) {
	if isEpochFinalized(epoch) {
		return
	}
	n := gaugeCount()
	var total Amount
	for id := uint64(1); id <= n; id++ {
		g := loadGauge(id)
		if g.Weight > 0 {
			saveEpochGaugeWeight(id, epoch, g.Weight)
			total += g.Weight
			g.Weight = 0
			saveGauge(id, g)
		}
	}
	saveEpochTotalWeight(epoch, total)
	markEpochFinalized(epoch)
	emitEpochFinalized(epoch, total)
}

// reverseAllocations subtracts a voter's stored absolute weights from the
// live accumulators, exactly undoing the earlier vote.
func reverseAllocations(allocs []GaugeAllocation, epoch uint64) {
	for _, leg := range allocs {
		g := loadGauge(leg.GaugeID)
		if g.Weight > leg.Weight {
			g.Weight -= leg.Weight
		} else {
			g.Weight = 0
		}
		saveGauge(leg.GaugeID, g)
		total := loadEpochTotalWeight(epoch)
		if total > leg.Weight {
			saveEpochTotalWeight(epoch, total-leg.Weight)
		} else {
			saveEpochTotalWeight(epoch, 0)
		}
	}
}

// -----------------------------------------------------------------------------
// Exports
// -----------------------------------------------------------------------------

// GaugeAdd registers a new emission target.
//
//go:wasmexport gauge_add
func GaugeAdd(payload *string) *string {
	var args GaugeAddArgs
	decodePayload(payload, &args, "gauge_add")

	p := loadParams()
	requireConfigAuthority()
	now := nowUnix()

	if args.Target == "" {
		abortValidation("gauge target required")
	}
	e := currentGaugeEpoch(p, now)

	id := gaugeCount() + 1
	saveGauge(id, &Gauge{
		Target:           AddressFromString(args.Target),
		LastClaimedEpoch: e.Epoch - 1,
		Active:           true,
	})
	setCount(kGaugeCount, id)

	emitGaugeAdded(id, args.Target)
	return strptr(fmt.Sprintf("gauge %d added", id))
}

// GaugeSetActive toggles whether a gauge accepts new votes.
//
//go:wasmexport gauge_set_active
func GaugeSetActive(payload *string) *string {
	var args GaugeActiveArgs
	decodePayload(payload, &args, "gauge_set_active")

	loadParams()
	requireConfigAuthority()

	g := loadGauge(args.GaugeID)
	g.Active = args.Active
	saveGauge(args.GaugeID, g)
	return strptr("gauge updated")
}

// GaugeVote splits the caller's current escrow power across gauges in basis
// points. One allocation per epoch; changing it takes an explicit reset first.
//
//go:wasmexport gauge_vote
func GaugeVote(payload *string) *string {
	defer enterGuard("gauges")()

	var args GaugeVoteArgs
	decodePayload(payload, &args, "gauge_vote")

	p := loadParams()
	caller := getSenderAddress()
	now := nowUnix()

	if len(args.Allocations) == 0 {
		abortValidation("at least one allocation required")
	}
	if uint64(len(args.Allocations)) > p.MaxVoteAllocations {
		abortValidation(fmt.Sprintf("at most %d allocations allowed", p.MaxVoteAllocations))
	}
	var bpsTotal uint64
	for _, leg := range args.Allocations {
		if leg.Bps == 0 {
			abortValidation("allocation bps must be positive")
		}
		bpsTotal += leg.Bps
	}
	if bpsTotal > BpsDenom {
		abortInvariant("allocations exceed 10000 bps")
	}

	power := escrowPowerAt(caller, now)
	if power <= 0 {
		abortState("no voting power")
	}

	e := currentGaugeEpoch(p, now)
	if prev := loadAllocations(caller, e.Epoch); prev != nil {
		abortState("already voted this epoch, reset votes first")
	}

	allocs := make([]GaugeAllocation, 0, len(args.Allocations))
	var added Amount
	for _, leg := range args.Allocations {
		g := loadGauge(leg.GaugeID)
		if !g.Active {
			abortState(fmt.Sprintf("gauge %d is inactive", leg.GaugeID))
		}
		weight := mulDivAmount(power, Amount(leg.Bps), BpsDenom)
		g.Weight += weight
		saveGauge(leg.GaugeID, g)
		added += weight
		allocs = append(allocs, GaugeAllocation{GaugeID: leg.GaugeID, WeightBps: leg.Bps, Weight: weight})
	}
	saveEpochTotalWeight(e.Epoch, loadEpochTotalWeight(e.Epoch)+added)
	saveAllocations(caller, e.Epoch, allocs)

	emitGaugeVote(caller.String(), e.Epoch, power, len(allocs))
	return strptr(fmt.Sprintf("voted in epoch %d", e.Epoch))
}

// GaugeResetVotes withdraws the caller's allocation for the current epoch.
//
//go:wasmexport gauge_reset_votes
func GaugeResetVotes(_ *string) *string {
	defer enterGuard("gauges")()

	p := loadParams()
	caller := getSenderAddress()
	now := nowUnix()

	e := currentGaugeEpoch(p, now)
	prev := loadAllocations(caller, e.Epoch)
	if prev == nil {
		abortState("no vote to reset in the current epoch")
	}
	reverseAllocations(prev, e.Epoch)
	saveAllocations(caller, e.Epoch, nil)

	emitGaugeReset(caller.String(), e.Epoch)
	return strptr("vote reset")
}

// GaugeAdvance pokes the epoch cursor; anyone may call it to finalize
// completed windows without voting.
//
//go:wasmexport gauge_advance
func GaugeAdvance(_ *string) *string {
	defer enterGuard("gauges")()

	p := loadParams()
	e := currentGaugeEpoch(p, nowUnix())
	return strptr(fmt.Sprintf("current epoch %d", e.Epoch))
}

// GaugeClaim pays a gauge its emission slices for finalized epochs, walking
// the claim marker forward sequentially so no epoch is paid twice.
//
//go:wasmexport gauge_claim
func GaugeClaim(payload *string) *string {
	defer enterGuard("gauges")()

	var args GaugeClaimArgs
	decodePayload(payload, &args, "gauge_claim")

	p := loadParams()
	now := nowUnix()

	g := loadGauge(args.GaugeID)
	e := currentGaugeEpoch(p, now)

	upto := e.Epoch - 1
	if args.Epoch != 0 && args.Epoch < upto {
		upto = args.Epoch
	}

	var paid Amount
	claimed := 0
	for g.LastClaimedEpoch < upto && claimed < EpochAdvanceCap {
		epoch := g.LastClaimedEpoch + 1
		if !isEpochFinalized(epoch) {
			break
		}
		weight := loadEpochGaugeWeight(args.GaugeID, epoch)
		total := loadEpochTotalWeight(epoch)
		if weight > 0 && total > 0 {
			share := mulDivAmount(p.EmissionsPerEpoch, weight, total)
			if share > 0 {
				mintProtocolToken(g.Target, share, p, now)
				emitEmissionsClaimed(args.GaugeID, epoch, share)
				paid += share
			}
		}
		g.LastClaimedEpoch = epoch
		claimed++
	}
	saveGauge(args.GaugeID, g)

	if claimed == 0 {
		return strptr("nothing to claim")
	}
	return strptr(fmt.Sprintf("claimed %f over %d epochs", AmountToFloat(paid), claimed))
}
