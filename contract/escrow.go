package contract

import (
	"fmt"

	"kodama_protocol/sdk"

	"github.com/holiman/uint256"
)

// Vote-escrow: reserve deposits locked to a future week boundary grant
// linearly decaying voting power. Power is tracked as WAD-scaled bias/slope
// checkpoints per account plus a global aggregate whose slope drops at the
// week boundaries where locks expire.

// lockSlope converts a locked principal into the WAD-scaled per-second decay
// rate of a maximum-duration lock.
func lockSlope(amount Amount) *uint256.Int {
	return mulDivU256(amountU256(amount), wad, u256(MaxLockSecs))
}

// lockBias is the remaining power of a slope at ts, zero once expired.
func lockBias(slope *uint256.Int, unlockTime, ts int64) *uint256.Int {
	if unlockTime <= ts {
		return new(uint256.Int)
	}
	return new(uint256.Int).Mul(slope, u256(uint64(unlockTime-ts)))
}

// fillGlobal walks the global point forward from the last checkpoint to now,
// dropping expired slopes at each week boundary and persisting the boundary
// points so historical queries can land on them. Bounded by
// CheckpointFillCap steps per call.
func fillGlobal(now int64, height uint64) *Checkpoint {
	n := globalCheckpointCount()
	if n == 0 {
		return &Checkpoint{Bias: new(uint256.Int), Slope: new(uint256.Int), Ts: now, Height: height}
	}
	last := loadGlobalCheckpoint(n - 1)
	bias := last.Bias.Clone()
	slope := last.Slope.Clone()
	t := last.Ts
	for steps := 0; t < now && steps < CheckpointFillCap; steps++ {
		next := floorWeek(t) + WeekSecs
		if next > now {
			next = now
		}
		dt := u256(uint64(next - t))
		bias = clampSub(bias, new(uint256.Int).Mul(slope, dt))
		if next == floorWeek(next) {
			slope = clampSub(slope, loadSlopeDecrease(next))
		}
		t = next
		if t < now {
			pushGlobalCheckpoint(&Checkpoint{Bias: bias.Clone(), Slope: slope.Clone(), Ts: t, Height: height})
		}
	}
	return &Checkpoint{Bias: bias, Slope: slope, Ts: t, Height: height}
}

// checkpointEscrow records a lock transition: account point, slope-decrease
// schedule at the old/new expiry boundaries, and the adjusted global point.
func checkpointEscrow(addr sdk.Address, old, new_ *LockPosition) {
	now := nowUnix()
	height := getBlockHeight()

	oldSlope := new(uint256.Int)
	oldBias := new(uint256.Int)
	if old != nil && old.Amount > 0 && old.UnlockTime > now {
		oldSlope = lockSlope(old.Amount)
		oldBias = lockBias(oldSlope, old.UnlockTime, now)
	}
	newSlope := new(uint256.Int)
	newBias := new(uint256.Int)
	if new_ != nil && new_.Amount > 0 && new_.UnlockTime > now {
		newSlope = lockSlope(new_.Amount)
		newBias = lockBias(newSlope, new_.UnlockTime, now)
	}

	if !oldSlope.IsZero() {
		subSlopeDecrease(old.UnlockTime, oldSlope)
	}
	if !newSlope.IsZero() {
		addSlopeDecrease(new_.UnlockTime, newSlope)
	}

	pushUserCheckpoint(addr, &Checkpoint{Bias: newBias.Clone(), Slope: newSlope.Clone(), Ts: now, Height: height})

	pt := fillGlobal(now, height)
	pt.Bias = clampSub(new(uint256.Int).Add(pt.Bias, newBias), oldBias)
	pt.Slope = clampSub(new(uint256.Int).Add(pt.Slope, newSlope), oldSlope)
	pushGlobalCheckpoint(pt)
}

// latestAtOrBefore binary-searches a checkpoint sequence for the newest
// point with Ts <= ts; found is false when the sequence starts after ts.
func latestAtOrBefore(count uint64, load func(uint64) *Checkpoint, ts int64) (*Checkpoint, bool) {
	if count == 0 {
		return nil, false
	}
	lo, hi := uint64(0), count
	for lo < hi {
		mid := (lo + hi) / 2
		if load(mid).Ts <= ts {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == 0 {
		return nil, false
	}
	return load(lo - 1), true
}

// escrowPowerAt is the account's voting power at ts: the newest checkpoint at
// or before ts decayed forward, floored at zero.
func escrowPowerAt(addr sdk.Address, ts int64) Amount {
	cp, ok := latestAtOrBefore(userCheckpointCount(addr), func(i uint64) *Checkpoint {
		return loadUserCheckpoint(addr, i)
	}, ts)
	if !ok {
		return 0
	}
	decay := new(uint256.Int).Mul(cp.Slope, u256(uint64(ts-cp.Ts)))
	power := clampSub(cp.Bias, decay)
	return u256Amount(power.Div(power, wad))
}

// escrowTotalAt is the aggregate power at ts, decaying the newest persisted
// global point forward through the slope-decrease schedule.
func escrowTotalAt(ts int64) Amount {
	cp, ok := latestAtOrBefore(globalCheckpointCount(), loadGlobalCheckpoint, ts)
	if !ok {
		return 0
	}
	bias := cp.Bias.Clone()
	slope := cp.Slope.Clone()
	t := cp.Ts
	for steps := 0; t < ts && steps < CheckpointFillCap; steps++ {
		next := floorWeek(t) + WeekSecs
		if next > ts {
			next = ts
		}
		bias = clampSub(bias, new(uint256.Int).Mul(slope, u256(uint64(next-t))))
		if next == floorWeek(next) {
			slope = clampSub(slope, loadSlopeDecrease(next))
		}
		t = next
	}
	return u256Amount(bias.Div(bias, wad))
}

// validateUnlockTime floors to the week boundary and bounds the horizon.
func validateUnlockTime(raw, now int64) int64 {
	unlock := floorWeek(raw)
	if unlock <= now {
		abortValidation("unlock time must be a future week boundary")
	}
	if unlock > now+MaxLockSecs {
		abortValidation("lock exceeds maximum duration")
	}
	return unlock
}

// -----------------------------------------------------------------------------
// Exports
// -----------------------------------------------------------------------------

// EscrowCreateLock opens a fresh lock: draws the reserve deposit and starts
// the caller's decay schedule.
//
//go:wasmexport escrow_create_lock
func EscrowCreateLock(payload *string) *string {
	defer enterGuard("escrow")()

	var args CreateLockArgs
	decodePayload(payload, &args, "escrow_create_lock")

	p := loadParams()
	caller := getSenderAddress()
	now := nowUnix()

	amount := FloatToAmount(args.Amount)
	if amount <= 0 {
		abortValidation("lock amount must be positive")
	}
	if loadLock(caller) != nil {
		abortState("lock already exists; increase it instead")
	}
	unlock := validateUnlockTime(args.UnlockTime, now)

	drawFunds(amount, p.ReserveAsset)

	lock := &LockPosition{Amount: amount, UnlockTime: unlock}
	saveLock(caller, lock)
	checkpointEscrow(caller, nil, lock)
	saveTotalLocked(loadTotalLocked() + amount)

	emitLockCreated(caller.String(), amount, unlock)
	return strptr(fmt.Sprintf("locked until %d", unlock))
}

// EscrowIncreaseAmount tops up an existing, unexpired lock without moving
// its unlock time.
//
//go:wasmexport escrow_increase_amount
func EscrowIncreaseAmount(payload *string) *string {
	defer enterGuard("escrow")()

	var args AmountArgs
	decodePayload(payload, &args, "escrow_increase_amount")

	p := loadParams()
	caller := getSenderAddress()
	now := nowUnix()

	amount := FloatToAmount(args.Amount)
	if amount <= 0 {
		abortValidation("increase amount must be positive")
	}
	lock := loadLock(caller)
	if lock == nil {
		abortState("no lock to increase")
	}
	if lock.UnlockTime <= now {
		abortState("lock expired; withdraw first")
	}

	drawFunds(amount, p.ReserveAsset)

	old := *lock
	lock.Amount += amount
	saveLock(caller, lock)
	checkpointEscrow(caller, &old, lock)
	saveTotalLocked(loadTotalLocked() + amount)

	emitLockIncreased(caller.String(), amount, lock.Amount)
	return strptr("lock increased")
}

// EscrowIncreaseUnlockTime pushes the unlock boundary further out, never
// closer in.
//
//go:wasmexport escrow_increase_unlock_time
func EscrowIncreaseUnlockTime(payload *string) *string {
	defer enterGuard("escrow")()

	var args ExtendLockArgs
	decodePayload(payload, &args, "escrow_increase_unlock_time")

	loadParams()
	caller := getSenderAddress()
	now := nowUnix()

	lock := loadLock(caller)
	if lock == nil {
		abortState("no lock to extend")
	}
	if lock.UnlockTime <= now {
		abortState("lock expired; withdraw first")
	}
	unlock := validateUnlockTime(args.UnlockTime, now)
	if unlock <= lock.UnlockTime {
		abortValidation("unlock time can only move forward")
	}

	old := *lock
	lock.UnlockTime = unlock
	saveLock(caller, lock)
	checkpointEscrow(caller, &old, lock)

	emitLockExtended(caller.String(), unlock)
	return strptr(fmt.Sprintf("lock extended to %d", unlock))
}

// EscrowWithdraw releases the principal of an expired lock back to its owner.
//
//go:wasmexport escrow_withdraw
func EscrowWithdraw(_ *string) *string {
	defer enterGuard("escrow")()

	p := loadParams()
	caller := getSenderAddress()
	now := nowUnix()

	lock := loadLock(caller)
	if lock == nil {
		abortState("no lock to withdraw")
	}
	if lock.UnlockTime > now {
		abortState("lock has not expired yet")
	}

	old := *lock
	deleteLock(caller)
	checkpointEscrow(caller, &old, nil)
	saveTotalLocked(loadTotalLocked() - old.Amount)

	sdk.TokenTransfer(caller, AmountToInt64(old.Amount), p.ReserveAsset)

	emitLockWithdrawn(caller.String(), old.Amount)
	return strptr("lock withdrawn")
}

// EscrowBalanceOf reports an account's voting power, optionally at a
// historical timestamp.
//
//go:wasmexport escrow_balance_of
func EscrowBalanceOf(payload *string) *string {
	var args AccountAtArgs
	decodeOptionalPayload(payload, &args, "escrow_balance_of")

	addr := getSenderAddress()
	if args.Account != "" {
		addr = AddressFromString(args.Account)
	}
	at := args.At
	if at == 0 {
		at = nowUnix()
	}
	return strptr(toJSON(BalanceResponse{Amount: AmountToFloat(escrowPowerAt(addr, at))}))
}

// EscrowTotalSupply reports the aggregate voting power, optionally at a
// historical timestamp.
//
//go:wasmexport escrow_total_supply
func EscrowTotalSupply(payload *string) *string {
	var args AccountAtArgs
	decodeOptionalPayload(payload, &args, "escrow_total_supply")

	at := args.At
	if at == 0 {
		at = nowUnix()
	}
	return strptr(toJSON(BalanceResponse{Amount: AmountToFloat(escrowTotalAt(at))}))
}
