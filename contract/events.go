package contract

import (
	"fmt"
	"strconv"

	"kodama_protocol/sdk"
)

// Event lines are the system's sole externally queryable history: every state
// transition leaves one terse pipe-delimited sdk.Log record carrying actor,
// amounts and resulting totals so indexers can replay state without scanning
// storage diffs.

// emitLockCreated pings watchers when a fresh escrow lock lands.
func emitLockCreated(addr string, amount Amount, unlockTime int64) {
	sdk.Log(fmt.Sprintf("lk|by:%s|am:%f|end:%d", addr, AmountToFloat(amount), unlockTime))
}

// emitLockIncreased logs principal top-ups without a schedule change.
func emitLockIncreased(addr string, delta Amount, total Amount) {
	sdk.Log(fmt.Sprintf("li|by:%s|am:%f|tot:%f", addr, AmountToFloat(delta), AmountToFloat(total)))
}

// emitLockExtended logs unlock-time pushes so decay replays stay possible.
func emitLockExtended(addr string, unlockTime int64) {
	sdk.Log(fmt.Sprintf("le|by:%s|end:%d", addr, unlockTime))
}

// emitLockWithdrawn marks an expired lock leaving custody.
func emitLockWithdrawn(addr string, amount Amount) {
	sdk.Log(fmt.Sprintf("lw|by:%s|am:%f", addr, AmountToFloat(amount)))
}

// emitStaked logs reserve entering the gons ledger plus the resulting nominal.
func emitStaked(addr string, amount Amount, nominal Amount) {
	sdk.Log(fmt.Sprintf("st|by:%s|am:%f|bal:%f", addr, AmountToFloat(amount), AmountToFloat(nominal)))
}

// emitUnstaked mirrors the stake line for exits.
func emitUnstaked(addr string, amount Amount) {
	sdk.Log(fmt.Sprintf("un|by:%s|am:%f", addr, AmountToFloat(amount)))
}

// emitRebase records epochs applied and the new WAD index.
func emitRebase(epochs int64, index string) {
	sdk.Log(fmt.Sprintf("rb|n:%d|idx:%s", epochs, index))
}

// emitProfitDistributed records the instantaneous index bump path.
func emitProfitDistributed(addr string, amount Amount, index string) {
	sdk.Log(fmt.Sprintf("dp|by:%s|am:%f|idx:%s", addr, AmountToFloat(amount), index))
}

// emitStakedTransfer logs gons moving between holders in nominal terms.
func emitStakedTransfer(from, to string, amount Amount) {
	sdk.Log(fmt.Sprintf("sx|from:%s|to:%s|am:%f", from, to, AmountToFloat(amount)))
}

// emitTokenTransfer logs protocol token moves after demurrage settlement.
func emitTokenTransfer(from, to string, amount Amount) {
	sdk.Log(fmt.Sprintf("kt|from:%s|to:%s|am:%f", from, to, AmountToFloat(amount)))
}

// emitTokenMint logs protocol token issuance (emissions, bonds, sale, rebase).
func emitTokenMint(to string, amount Amount, total Amount) {
	sdk.Log(fmt.Sprintf("km|to:%s|am:%f|sup:%f", to, AmountToFloat(amount), AmountToFloat(total)))
}

// emitTokenBurn logs holder-initiated supply destruction.
func emitTokenBurn(from string, amount Amount, total Amount) {
	sdk.Log(fmt.Sprintf("kb|by:%s|am:%f|sup:%f", from, AmountToFloat(amount), AmountToFloat(total)))
}

// emitDemurrageApplied records lazy decay: days settled and amount burned.
func emitDemurrageApplied(addr string, days int64, burned Amount, balance Amount) {
	sdk.Log(fmt.Sprintf("dd|by:%s|d:%d|am:%f|bal:%f", addr, days, AmountToFloat(burned), AmountToFloat(balance)))
}

// emitTierStaked logs tier staking with the resulting tier and lock end.
func emitTierStaked(addr string, amount Amount, tier uint8, lockEnd int64) {
	sdk.Log(fmt.Sprintf("ds|by:%s|am:%f|t:%d|end:%d", addr, AmountToFloat(amount), tier, lockEnd))
}

// emitTierUnstaked logs staked balance released back to the decaying pool.
func emitTierUnstaked(addr string, amount Amount, tier uint8) {
	sdk.Log(fmt.Sprintf("du|by:%s|am:%f|t:%d", addr, AmountToFloat(amount), tier))
}

// emitRebaseClaimed logs accrued rewards minted on explicit claim.
func emitRebaseClaimed(addr string, epochs int64, amount Amount) {
	sdk.Log(fmt.Sprintf("dr|by:%s|n:%d|am:%f", addr, epochs, AmountToFloat(amount)))
}

// emitGaugeAdded announces a new emission target.
func emitGaugeAdded(id uint64, target string) {
	sdk.Log(fmt.Sprintf("ga|id:%d|tgt:%s", id, target))
}

// emitGaugeVote includes the voter's power and epoch so weight math can be
// replayed from logs only.
func emitGaugeVote(addr string, epoch uint64, power Amount, legs int) {
	sdk.Log(fmt.Sprintf("gv|by:%s|e:%d|w:%f|n:%d", addr, epoch, AmountToFloat(power), legs))
}

// emitGaugeReset logs a vote reversal inside the same epoch.
func emitGaugeReset(addr string, epoch uint64) {
	sdk.Log(fmt.Sprintf("gr|by:%s|e:%d", addr, epoch))
}

// emitEpochFinalized freezes an epoch's weight total in the log.
func emitEpochFinalized(epoch uint64, total Amount) {
	sdk.Log(fmt.Sprintf("ge|e:%d|tot:%f", epoch, AmountToFloat(total)))
}

// emitEmissionsClaimed logs a gauge's share for a finalized epoch.
func emitEmissionsClaimed(id uint64, epoch uint64, amount Amount) {
	sdk.Log(fmt.Sprintf("gc|id:%d|e:%d|am:%f", id, epoch, AmountToFloat(amount)))
}

// emitProposalCreated keeps observers updated for every new proposal.
func emitProposalCreated(id uint64, proposer string, start, end int64) {
	sdk.Log(fmt.Sprintf("pc|id:%d|by:%s|s:%d|e:%d", id, proposer, start, end))
}

// emitVoteCast logs ballot, weight and running tallies.
func emitVoteCast(id uint64, voter string, support VoteSupport, weight Amount) {
	sdk.Log(fmt.Sprintf("vc|id:%d|by:%s|c:%s|w:%f", id, voter, support.String(), AmountToFloat(weight)))
}

// emitProposalQueued logs the timelock eta so runners can schedule execution.
func emitProposalQueued(id uint64, eta int64) {
	sdk.Log(fmt.Sprintf("pq|id:%d|eta:%d", id, eta))
}

// emitProposalExecuted marks the batch as done.
func emitProposalExecuted(id uint64) {
	sdk.Log(fmt.Sprintf("px|id:%d", id))
}

// emitProposalCanceled notes who pulled the plug.
func emitProposalCanceled(id uint64, by string) {
	sdk.Log(fmt.Sprintf("pk|id:%d|by:%s", id, by))
}

// emitGovernancePhase logs the one-way flip to open eligibility.
func emitGovernancePhase(at int64) {
	sdk.Log(fmt.Sprintf("pg|at:%d", at))
}

// emitMarketCreated announces a bond market and its pricing knobs.
func emitMarketCreated(id uint64, asset string, discountBps, betaBps uint64) {
	sdk.Log(fmt.Sprintf("bm|id:%d|as:%s|d:%d|b:%d", id, asset, discountBps, betaBps))
}

// emitPriceObserved logs a TWAP ring write.
func emitPriceObserved(asset string, priceMicro uint64, ts int64) {
	sdk.Log(fmt.Sprintf("po|as:%s|p:%d|ts:%d", asset, priceMicro, ts))
}

// emitBondCreated logs deposit, payout and the new global debt.
func emitBondCreated(id uint64, by string, deposit, payout, totalDebt Amount) {
	sdk.Log(fmt.Sprintf("bd|id:%d|by:%s|in:%f|out:%f|debt:%f",
		id, by, AmountToFloat(deposit), AmountToFloat(payout), AmountToFloat(totalDebt)))
}

// emitBondClaimed logs newly vested value leaving the debt pool.
func emitBondClaimed(id uint64, amount, totalDebt Amount) {
	sdk.Log(fmt.Sprintf("bc|id:%d|am:%f|debt:%f", id, AmountToFloat(amount), AmountToFloat(totalDebt)))
}

// emitSaleBuy logs curve purchases with the running sold counter.
func emitSaleBuy(by string, cost, tokens, sold Amount) {
	sdk.Log(fmt.Sprintf("sb|by:%s|in:%f|out:%f|sold:%f",
		by, AmountToFloat(cost), AmountToFloat(tokens), AmountToFloat(sold)))
}

// emitParamChanged spells out old/new so auditors can track sensitive flips.
func emitParamChanged(name, old, new_ string) {
	sdk.Log(fmt.Sprintf("cf|f:%s|old:%s|new:%s", name, old, new_))
}

// emitRoleChanged logs grants and revocations on the privileged sets.
func emitRoleChanged(role Role, addr string, granted bool) {
	sdk.Log(fmt.Sprintf("rl|r:%s|who:%s|on:%s", role.String(), addr, strconv.FormatBool(granted)))
}
