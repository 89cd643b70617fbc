package contract

import (
	"fmt"

	"kodama_protocol/sdk"
)

// Protocol token with demurrage: idle balances decay by a daily rate while
// tier-staked balances are shielded and accrue boosted rebase rewards.
// Every mutation settles the touched accounts lazily first, so decay and
// accrual are a pure function of elapsed epochs, not of call frequency.

// tierFor maps a staked amount onto the tier table: the highest row whose
// threshold is covered, as a 1-based index. Zero means below every tier.
func tierFor(staked Amount) uint8 {
	tier := uint8(0)
	for i, t := range stakeTiers {
		if staked >= t.Threshold {
			tier = uint8(i + 1)
		}
	}
	return tier
}

// settleDemurrage applies every completed decay epoch to the idle balance and
// every completed accrual epoch to the staked rewards. Returns the amount
// burned, the decay days applied and the reward epochs settled.
func settleDemurrage(a *DemurrageAccount, p *Params, now int64) (Amount, int64, int64) {
	if a.LastDecayAt == 0 {
		a.LastDecayAt = now
	}
	if a.LastAccrualAt == 0 {
		a.LastAccrualAt = now
	}

	var burned Amount
	days := (now - a.LastDecayAt) / p.DemurrageEpochSecs
	if days > DemurrageMaxSteps {
		days = DemurrageMaxSteps
	}
	if days > 0 {
		if p.DemurrageBps > 0 && a.Balance > 0 {
			bal := a.Balance
			keep := Amount(BpsDenom - p.DemurrageBps)
			for i := int64(0); i < days; i++ {
				bal = mulDivAmount(bal, keep, BpsDenom)
			}
			burned = a.Balance - bal
			a.Balance = bal
		}
		a.LastDecayAt += days * p.DemurrageEpochSecs
	}

	epochs := (now - a.LastAccrualAt) / p.DemurrageEpochSecs
	if epochs > DemurrageMaxSteps {
		epochs = DemurrageMaxSteps
	}
	if epochs > 0 {
		if a.Staked > 0 && a.Tier > 0 && p.DemurrageRateBps > 0 {
			boost := stakeTiers[a.Tier-1].BoostBps
			per := mulDivAmount(a.Staked, Amount(p.DemurrageRateBps), BpsDenom)
			per = mulDivAmount(per, Amount(boost), BpsDenom)
			a.Pending += per * Amount(epochs)
		}
		a.LastAccrualAt += epochs * p.DemurrageEpochSecs
	}
	return burned, days, epochs
}

// settleHolder loads, settles and persists one account, keeping the supply
// counter in sync with what decay burned.
func settleHolder(addr sdk.Address, p *Params, now int64) *DemurrageAccount {
	a := loadDemurrageAccount(addr)
	burned, days, _ := settleDemurrage(a, p, now)
	if burned > 0 {
		saveTokenSupply(loadTokenSupply() - burned)
		emitDemurrageApplied(addr.String(), days, burned, a.Balance)
	}
	saveDemurrageAccount(addr, a)
	return a
}

// mintProtocolToken credits freshly issued tokens to a settled account.
// Used by the sale, bond claims and gauge emissions.
func mintProtocolToken(to sdk.Address, amount Amount, p *Params, now int64) {
	if amount <= 0 {
		return
	}
	a := settleHolder(to, p, now)
	a.Balance += amount
	saveDemurrageAccount(to, a)
	supply := loadTokenSupply() + amount
	saveTokenSupply(supply)
	emitTokenMint(to.String(), amount, supply)
}

// -----------------------------------------------------------------------------
// Exports
// -----------------------------------------------------------------------------

// TokenTransfer moves settled idle balance between holders.
//
//go:wasmexport token_transfer
func TokenTransfer(payload *string) *string {
	defer enterGuard("token")()

	var args TransferArgs
	decodePayload(payload, &args, "token_transfer")

	p := loadParams()
	caller := getSenderAddress()
	now := nowUnix()

	if isTokenPaused() {
		abortState("token transfers are paused")
	}
	amount := FloatToAmount(args.Amount)
	if amount <= 0 {
		abortValidation("transfer amount must be positive")
	}
	if args.To == "" {
		abortValidation("recipient required")
	}
	to := AddressFromString(args.To)
	if to == caller {
		abortValidation("cannot transfer to self")
	}

	from := settleHolder(caller, p, now)
	if from.Balance < amount {
		abortState(fmt.Sprintf("transfer exceeds balance of %f", AmountToFloat(from.Balance)))
	}
	from.Balance -= amount
	saveDemurrageAccount(caller, from)

	dst := settleHolder(to, p, now)
	dst.Balance += amount
	saveDemurrageAccount(to, dst)

	emitTokenTransfer(caller.String(), args.To, amount)
	return strptr("transferred")
}

// TokenBurn destroys settled idle balance.
//
//go:wasmexport token_burn
func TokenBurn(payload *string) *string {
	defer enterGuard("token")()

	var args AmountArgs
	decodePayload(payload, &args, "token_burn")

	p := loadParams()
	caller := getSenderAddress()
	now := nowUnix()

	amount := FloatToAmount(args.Amount)
	if amount <= 0 {
		abortValidation("burn amount must be positive")
	}
	a := settleHolder(caller, p, now)
	if a.Balance < amount {
		abortState("burn exceeds balance")
	}
	a.Balance -= amount
	saveDemurrageAccount(caller, a)
	supply := loadTokenSupply() - amount
	saveTokenSupply(supply)

	emitTokenBurn(caller.String(), amount, supply)
	return strptr("burned")
}

// TokenStake shields balance from decay behind the tier table. Tiers only
// ever move up and the lock end only ever moves out.
//
//go:wasmexport token_stake
func TokenStake(payload *string) *string {
	defer enterGuard("token")()

	var args AmountArgs
	decodePayload(payload, &args, "token_stake")

	p := loadParams()
	caller := getSenderAddress()
	now := nowUnix()

	amount := FloatToAmount(args.Amount)
	if amount <= 0 {
		abortValidation("stake amount must be positive")
	}
	a := settleHolder(caller, p, now)
	if a.Balance < amount {
		abortState("stake exceeds balance")
	}

	newStaked := a.Staked + amount
	tier := tierFor(newStaked)
	if tier == 0 {
		abortValidation(fmt.Sprintf("stake below minimum tier threshold of %f",
			AmountToFloat(stakeTiers[0].Threshold)))
	}
	if tier < a.Tier {
		tier = a.Tier
	}

	lockEnd := now + int64(stakeTiers[tier-1].LockDays)*DaySecs
	if lockEnd < a.LockEnd {
		lockEnd = a.LockEnd
	}

	a.Balance -= amount
	a.Staked = newStaked
	a.Tier = tier
	a.LockEnd = lockEnd
	saveDemurrageAccount(caller, a)

	emitTierStaked(caller.String(), amount, tier, lockEnd)
	return strptr(fmt.Sprintf("staked at tier %d until %d", tier, lockEnd))
}

// TokenUnstake releases staked balance after the lock expired; the tier is
// recomputed from what remains.
//
//go:wasmexport token_unstake
func TokenUnstake(payload *string) *string {
	defer enterGuard("token")()

	var args AmountArgs
	decodePayload(payload, &args, "token_unstake")

	p := loadParams()
	caller := getSenderAddress()
	now := nowUnix()

	amount := FloatToAmount(args.Amount)
	if amount <= 0 {
		abortValidation("unstake amount must be positive")
	}
	a := settleHolder(caller, p, now)
	if a.Staked < amount {
		abortState("unstake exceeds staked balance")
	}
	if now < a.LockEnd {
		abortState(fmt.Sprintf("stake locked until %d", a.LockEnd))
	}

	a.Staked -= amount
	a.Balance += amount
	a.Tier = tierFor(a.Staked)
	if a.Staked == 0 {
		a.LockEnd = 0
	}
	saveDemurrageAccount(caller, a)

	emitTierUnstaked(caller.String(), amount, a.Tier)
	return strptr("unstaked")
}

// TokenClaimRebase mints the accrued staking rewards into the idle balance.
//
//go:wasmexport token_claim_rebase
func TokenClaimRebase(_ *string) *string {
	defer enterGuard("token")()

	p := loadParams()
	caller := getSenderAddress()
	now := nowUnix()

	a := loadDemurrageAccount(caller)
	burned, _, epochs := settleDemurrage(a, p, now)
	if burned > 0 {
		saveTokenSupply(loadTokenSupply() - burned)
	}
	pending := a.Pending
	if pending <= 0 {
		saveDemurrageAccount(caller, a)
		return strptr("nothing accrued")
	}
	a.Pending = 0
	a.Balance += pending
	saveDemurrageAccount(caller, a)
	saveTokenSupply(loadTokenSupply() + pending)

	emitRebaseClaimed(caller.String(), epochs, pending)
	return strptr(fmt.Sprintf("claimed %f", AmountToFloat(pending)))
}

// TokenSetPaused flips the transfer pause switch; guardian only.
//
//go:wasmexport token_set_paused
func TokenSetPaused(payload *string) *string {
	var args PauseArgs
	decodePayload(payload, &args, "token_set_paused")

	loadParams()
	requireRole(getSenderAddress(), RoleGuardian)
	setTokenPaused(args.Paused)
	if args.Paused {
		return strptr("transfers paused")
	}
	return strptr("transfers resumed")
}

// TokenBalanceOf reports the settled idle balance without persisting.
//
//go:wasmexport token_balance_of
func TokenBalanceOf(payload *string) *string {
	var args AccountAtArgs
	decodeOptionalPayload(payload, &args, "token_balance_of")

	p := loadParams()
	addr := getSenderAddress()
	if args.Account != "" {
		addr = AddressFromString(args.Account)
	}
	a := loadDemurrageAccount(addr)
	settleDemurrage(a, p, nowUnix())
	return strptr(toJSON(BalanceResponse{Amount: AmountToFloat(a.Balance)}))
}
