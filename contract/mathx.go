package contract

import "github.com/holiman/uint256"

// wad is the 1e18 fixed-point unit used by the rebase index and the
// vote-escrow bias/slope math.
var wad = uint256.NewInt(1_000_000_000_000_000_000)

// maxGons is the fixed internal-unit ceiling of the gons ledger;
// gonsPerNominal = maxGons / index, so the ratio starts at exactly 1e18.
var maxGons = new(uint256.Int).Mul(wad, wad) // 1e36

func u256(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

// amountU256 lifts an Amount into u256 space; negative amounts never reach
// the 256-bit paths.
func amountU256(v Amount) *uint256.Int {
	if v < 0 {
		abortInvariant("negative amount in unsigned math")
	}
	return uint256.NewInt(uint64(v))
}

// u256Amount lowers a u256 back to Amount, aborting on overflow rather than
// silently wrapping.
func u256Amount(v *uint256.Int) Amount {
	if !v.IsUint64() || v.Uint64() > uint64(1)<<62 {
		abortInvariant("amount overflow")
	}
	return Amount(v.Uint64())
}

// mulDivU256 computes a*b/c without intermediate overflow. c must be nonzero.
func mulDivU256(a, b, c *uint256.Int) *uint256.Int {
	if c.IsZero() {
		abortInvariant("division by zero")
	}
	prod := new(uint256.Int).Mul(a, b)
	return prod.Div(prod, c)
}

// mulDivAmount is the Amount-level proportional share helper.
func mulDivAmount(a, b, c Amount) Amount {
	return u256Amount(mulDivU256(amountU256(a), amountU256(b), amountU256(c)))
}

// clampSub returns a-b floored at zero, the decay primitive for biases and
// slopes which must never underflow.
func clampSub(a, b *uint256.Int) *uint256.Int {
	if a.Lt(b) {
		return new(uint256.Int)
	}
	return new(uint256.Int).Sub(a, b)
}
