package contract

import (
	"kodama_protocol/sdk"

	"github.com/holiman/uint256"
)

// State accessors for the vote-escrow ledger: locks, the per-account and
// global checkpoint sequences, and the slope-decrease schedule keyed by
// lock-expiry week boundaries.

func loadLock(addr sdk.Address) *LockPosition {
	ptr := sdk.StateGetObject(addrKey(kLock, addr))
	if ptr == nil || *ptr == "" {
		return nil
	}
	return decodeLock([]byte(*ptr))
}

func saveLock(addr sdk.Address, l *LockPosition) {
	sdk.StateSetObject(addrKey(kLock, addr), encodeLock(l))
}

func deleteLock(addr sdk.Address) {
	sdk.StateDeleteObject(addrKey(kLock, addr))
}

// userCheckpointCount reads the length of an account's checkpoint sequence.
func userCheckpointCount(addr sdk.Address) uint64 {
	ptr := sdk.StateGetObject(addrKey(kUserCheckpointCount, addr))
	if ptr == nil || *ptr == "" {
		return 0
	}
	return decodeCount(*ptr)
}

func loadUserCheckpoint(addr sdk.Address, idx uint64) *Checkpoint {
	ptr := sdk.StateGetObject(addrIdxKey(kUserCheckpoint, addr, idx))
	if ptr == nil {
		abortInvariant("missing user checkpoint")
	}
	return decodeCheckpoint([]byte(*ptr))
}

// pushUserCheckpoint appends to the account sequence; same-timestamp pushes
// overwrite the last entry so one block never yields two points.
func pushUserCheckpoint(addr sdk.Address, cp *Checkpoint) {
	n := userCheckpointCount(addr)
	if n > 0 {
		last := loadUserCheckpoint(addr, n-1)
		if last.Ts == cp.Ts {
			sdk.StateSetObject(addrIdxKey(kUserCheckpoint, addr, n-1), encodeCheckpoint(cp))
			return
		}
	}
	sdk.StateSetObject(addrIdxKey(kUserCheckpoint, addr, n), encodeCheckpoint(cp))
	sdk.StateSetObject(addrKey(kUserCheckpointCount, addr), encodeCount(n+1))
}

func globalCheckpointCount() uint64 {
	return getCount(kGlobalCheckpointCount)
}

func loadGlobalCheckpoint(idx uint64) *Checkpoint {
	ptr := sdk.StateGetObject(idKey(kGlobalCheckpoint, idx))
	if ptr == nil {
		abortInvariant("missing global checkpoint")
	}
	return decodeCheckpoint([]byte(*ptr))
}

// pushGlobalCheckpoint appends to the global sequence with the same
// same-timestamp overwrite rule as the account sequences.
func pushGlobalCheckpoint(cp *Checkpoint) {
	n := globalCheckpointCount()
	if n > 0 {
		last := loadGlobalCheckpoint(n - 1)
		if last.Ts == cp.Ts {
			sdk.StateSetObject(idKey(kGlobalCheckpoint, n-1), encodeCheckpoint(cp))
			return
		}
	}
	sdk.StateSetObject(idKey(kGlobalCheckpoint, n), encodeCheckpoint(cp))
	setCount(kGlobalCheckpointCount, n+1)
}

// loadSlopeDecrease reads the scheduled aggregate slope drop at a week
// boundary, zero when nothing expires there.
func loadSlopeDecrease(weekTs int64) *uint256.Int {
	ptr := sdk.StateGetObject(tsKey(kSlopeDecrease, weekTs))
	if ptr == nil || *ptr == "" {
		return new(uint256.Int)
	}
	r := newReader([]byte(*ptr))
	return r.readU256("slope decrease")
}

func saveSlopeDecrease(weekTs int64, v *uint256.Int) {
	if v.IsZero() {
		sdk.StateDeleteObject(tsKey(kSlopeDecrease, weekTs))
		return
	}
	w := newWriter()
	w.writeU256(v)
	sdk.StateSetObject(tsKey(kSlopeDecrease, weekTs), string(w.bytes()))
}

func addSlopeDecrease(weekTs int64, delta *uint256.Int) {
	v := loadSlopeDecrease(weekTs)
	saveSlopeDecrease(weekTs, v.Add(v, delta))
}

func subSlopeDecrease(weekTs int64, delta *uint256.Int) {
	v := loadSlopeDecrease(weekTs)
	saveSlopeDecrease(weekTs, clampSub(v, delta))
}

// totalLocked tracks custody principal across all escrow locks.
func loadTotalLocked() Amount {
	return loadAmount(singletonKey(kEscrowTotalLocked))
}

func saveTotalLocked(v Amount) {
	saveAmount(singletonKey(kEscrowTotalLocked), v)
}
