package contract

import (
	"fmt"

	"kodama_protocol/sdk"

	"github.com/holiman/uint256"
)

// Rebasing receipt ledger over the reserve asset. Balances live as gons,
// fixed internal units; the nominal (user-facing) balance is gons scaled by
// the current index, so one index bump appreciates every holder at once.

// gonsFor converts a nominal amount into internal units at the given index.
func gonsFor(amount Amount, index *uint256.Int) *uint256.Int {
	return mulDivU256(amountU256(amount), maxGons, index)
}

// nominalFor converts internal units back to the user-facing amount.
func nominalFor(gons, index *uint256.Int) Amount {
	return u256Amount(mulDivU256(gons, index, maxGons))
}

// settleRebase compounds every completed staking epoch into the index.
// Epochs are applied one by one so the rate compounds exactly; the per-call
// cap just splits extreme dormancy across calls.
func settleRebase(s *StakingState, p *Params, now int64) int64 {
	if p.StakingRateBps == 0 || now <= s.LastRebaseAt {
		return 0
	}
	epochs := (now - s.LastRebaseAt) / p.StakingEpochSecs
	if epochs <= 0 {
		return 0
	}
	if epochs > RebaseMaxEpochs {
		epochs = RebaseMaxEpochs
	}
	rate := u256(p.StakingRateBps)
	denom := u256(BpsDenom)
	for i := int64(0); i < epochs; i++ {
		gain := mulDivU256(s.Index, rate, denom)
		s.Index.Add(s.Index, gain)
	}
	s.LastRebaseAt += epochs * p.StakingEpochSecs
	return epochs
}

// -----------------------------------------------------------------------------
// Exports
// -----------------------------------------------------------------------------

// StakingStake draws the reserve deposit and credits gons at the current
// index, settling any pending rebase epochs first.
//
//go:wasmexport staking_stake
func StakingStake(payload *string) *string {
	defer enterGuard("staking")()

	var args AmountArgs
	decodePayload(payload, &args, "staking_stake")

	p := loadParams()
	caller := getSenderAddress()
	now := nowUnix()

	amount := FloatToAmount(args.Amount)
	if amount <= 0 {
		abortValidation("stake amount must be positive")
	}

	s := loadStakingState(now)
	if n := settleRebase(s, p, now); n > 0 {
		emitRebase(n, s.Index.Dec())
	}

	drawFunds(amount, p.ReserveAsset)

	gons := gonsFor(amount, s.Index)
	bal := loadGons(caller)
	saveGons(caller, bal.Add(bal, gons))
	s.TotalGons.Add(s.TotalGons, gons)
	s.StakedReserve += amount
	saveStakingState(s)

	emitStaked(caller.String(), amount, nominalFor(bal, s.Index))
	return strptr("staked")
}

// StakingUnstake redeems nominal balance one-for-one for the reserve asset.
//
//go:wasmexport staking_unstake
func StakingUnstake(payload *string) *string {
	defer enterGuard("staking")()

	var args AmountArgs
	decodePayload(payload, &args, "staking_unstake")

	p := loadParams()
	caller := getSenderAddress()
	now := nowUnix()

	amount := FloatToAmount(args.Amount)
	if amount <= 0 {
		abortValidation("unstake amount must be positive")
	}

	s := loadStakingState(now)
	if n := settleRebase(s, p, now); n > 0 {
		emitRebase(n, s.Index.Dec())
	}

	bal := loadGons(caller)
	nominal := nominalFor(bal, s.Index)
	if amount > nominal {
		abortState(fmt.Sprintf("unstake exceeds balance of %f", AmountToFloat(nominal)))
	}

	gons := gonsFor(amount, s.Index)
	if gons.Gt(bal) {
		gons = bal.Clone()
	}
	saveGons(caller, clampSub(bal, gons))
	s.TotalGons = clampSub(s.TotalGons, gons)
	if s.StakedReserve > amount {
		s.StakedReserve -= amount
	} else {
		s.StakedReserve = 0
	}
	saveStakingState(s)

	sdk.TokenTransfer(caller, AmountToInt64(amount), p.ReserveAsset)

	emitUnstaked(caller.String(), amount)
	return strptr("unstaked")
}

// StakingRebase settles pending epochs on demand; anyone may poke it.
//
//go:wasmexport staking_rebase
func StakingRebase(_ *string) *string {
	defer enterGuard("staking")()

	p := loadParams()
	now := nowUnix()

	s := loadStakingState(now)
	n := settleRebase(s, p, now)
	if n == 0 {
		return strptr("no completed epochs")
	}
	saveStakingState(s)
	emitRebase(n, s.Index.Dec())
	return strptr(fmt.Sprintf("applied %d epochs", n))
}

// StakingDistributeProfit lets the distributor push real reserve into the
// pool, bumping the index so every staker's nominal balance grows pro rata.
//
//go:wasmexport staking_distribute_profit
func StakingDistributeProfit(payload *string) *string {
	defer enterGuard("staking")()

	var args AmountArgs
	decodePayload(payload, &args, "staking_distribute_profit")

	p := loadParams()
	caller := getSenderAddress()
	now := nowUnix()
	requireRole(caller, RoleDistributor)

	amount := FloatToAmount(args.Amount)
	if amount <= 0 {
		abortValidation("profit amount must be positive")
	}

	s := loadStakingState(now)
	if n := settleRebase(s, p, now); n > 0 {
		emitRebase(n, s.Index.Dec())
	}
	if s.TotalGons.IsZero() {
		abortState("nothing staked to distribute over")
	}

	drawFunds(amount, p.ReserveAsset)

	staked := nominalFor(s.TotalGons, s.Index)
	s.Index = mulDivU256(s.Index, amountU256(staked+amount), amountU256(staked))
	s.StakedReserve += amount
	saveStakingState(s)

	emitProfitDistributed(caller.String(), amount, s.Index.Dec())
	return strptr("profit distributed")
}

// StakingTransfer moves nominal balance between holders inside the ledger.
//
//go:wasmexport staking_transfer
func StakingTransfer(payload *string) *string {
	defer enterGuard("staking")()

	var args TransferArgs
	decodePayload(payload, &args, "staking_transfer")

	p := loadParams()
	caller := getSenderAddress()
	now := nowUnix()

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

	s := loadStakingState(now)
	if n := settleRebase(s, p, now); n > 0 {
		emitRebase(n, s.Index.Dec())
		saveStakingState(s)
	}

	bal := loadGons(caller)
	if amount > nominalFor(bal, s.Index) {
		abortState("transfer exceeds balance")
	}
	gons := gonsFor(amount, s.Index)
	if gons.Gt(bal) {
		gons = bal.Clone()
	}
	saveGons(caller, clampSub(bal, gons))
	dst := loadGons(to)
	saveGons(to, dst.Add(dst, gons))

	emitStakedTransfer(caller.String(), args.To, amount)
	return strptr("transferred")
}

// StakingTotalSupply reports the combined nominal supply of the ledger,
// projecting pending epochs without persisting them.
//
//go:wasmexport staking_total_supply
func StakingTotalSupply(_ *string) *string {
	p := loadParams()
	now := nowUnix()

	s := loadStakingState(now)
	settleRebase(s, p, now)
	total := nominalFor(s.TotalGons, s.Index)
	return strptr(toJSON(BalanceResponse{Amount: AmountToFloat(total)}))
}

// StakingBalanceOf reports the nominal balance, projecting pending epochs
// without persisting them.
//
//go:wasmexport staking_balance_of
func StakingBalanceOf(payload *string) *string {
	var args AccountAtArgs
	decodeOptionalPayload(payload, &args, "staking_balance_of")

	p := loadParams()
	addr := getSenderAddress()
	if args.Account != "" {
		addr = AddressFromString(args.Account)
	}
	now := nowUnix()

	s := loadStakingState(now)
	settleRebase(s, p, now)
	nominal := nominalFor(loadGons(addr), s.Index)
	return strptr(toJSON(BalanceResponse{Amount: AmountToFloat(nominal)}))
}
