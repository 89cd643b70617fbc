package contract

import (
	"kodama_protocol/sdk"

	"github.com/holiman/uint256"
)

// StakingState is the single record behind the rebasing receipt ledger.
// Index is the WAD-scaled appreciation multiplier, starting at exactly 1.
type StakingState struct {
	Index         *uint256.Int
	LastRebaseAt  int64
	TotalGons     *uint256.Int
	StakedReserve Amount
}

func encodeStakingState(s *StakingState) string {
	w := newWriter()
	w.writeU256(s.Index)
	w.writeInt64(s.LastRebaseAt)
	w.writeU256(s.TotalGons)
	w.writeAmount(s.StakedReserve)
	return string(w.bytes())
}

func decodeStakingState(data []byte) *StakingState {
	r := newReader(data)
	return &StakingState{
		Index:         r.readU256("staking index"),
		LastRebaseAt:  r.readInt64("staking last rebase"),
		TotalGons:     r.readU256("staking total gons"),
		StakedReserve: r.readAmount("staking reserve"),
	}
}

// loadStakingState returns the ledger state, lazily creating the unit-index
// origin on first touch.
func loadStakingState(now int64) *StakingState {
	ptr := sdk.StateGetObject(singletonKey(kStakingState))
	if ptr == nil || *ptr == "" {
		return &StakingState{
			Index:        wad.Clone(),
			LastRebaseAt: now,
			TotalGons:    new(uint256.Int),
		}
	}
	return decodeStakingState([]byte(*ptr))
}

func saveStakingState(s *StakingState) {
	sdk.StateSetObject(singletonKey(kStakingState), encodeStakingState(s))
}

// loadGons reads an account's internal-unit balance.
func loadGons(addr sdk.Address) *uint256.Int {
	ptr := sdk.StateGetObject(addrKey(kGonsBalance, addr))
	if ptr == nil || *ptr == "" {
		return new(uint256.Int)
	}
	r := newReader([]byte(*ptr))
	return r.readU256("gons balance")
}

func saveGons(addr sdk.Address, v *uint256.Int) {
	if v.IsZero() {
		sdk.StateDeleteObject(addrKey(kGonsBalance, addr))
		return
	}
	w := newWriter()
	w.writeU256(v)
	sdk.StateSetObject(addrKey(kGonsBalance, addr), string(w.bytes()))
}
