package contract

import (
	"fmt"
	"math"
	"testing"

	"kodama_protocol/sdk"

	"github.com/stretchr/testify/require"
)

// mintTo issues protocol tokens directly through the internal mint path, the
// way the sale, bonds and emissions do.
func mintTo(t *testing.T, addr sdk.Address, amount float64) {
	t.Helper()
	asTx(t, guardian, func() {
		mintProtocolToken(addr, FloatToAmount(amount), loadParams(), nowUnix())
	})
}

func tokenBalance(t *testing.T, addr sdk.Address) float64 {
	t.Helper()
	resp := TokenBalanceOf(strptr(fmt.Sprintf(`{"account":%q}`, addr.String())))
	return balanceOfResp(t, resp)
}

func TestDemurrageIdleBalanceDecaysDaily(t *testing.T) {
	setup(t)
	mintTo(t, alice, 1000)
	require.InDelta(t, 1000.0, tokenBalance(t, alice), 0.001)

	// ten days at 10 bps per day, compounding down
	sdk.MockAdvanceTime(10 * DaySecs)
	want := 1000.0 * math.Pow(0.999, 10)
	require.InDelta(t, want, tokenBalance(t, alice), 0.01)

	// supply shrinks by what was burned once the account settles
	asTx(t, alice, func() {
		TokenTransfer(strptr(fmt.Sprintf(`{"to":%q,"amount":1}`, bob.String())))
	})
	require.InDelta(t, want, AmountToFloat(loadTokenSupply()), 0.01)
}

func TestDemurrageTransferSettlesBothSides(t *testing.T) {
	setup(t)
	mintTo(t, alice, 500)

	asTx(t, alice, func() {
		TokenTransfer(strptr(fmt.Sprintf(`{"to":%q,"amount":200}`, bob.String())))
	})
	require.InDelta(t, 300.0, tokenBalance(t, alice), 0.001)
	require.InDelta(t, 200.0, tokenBalance(t, bob), 0.001)

	sdk.MockNextTx(alice)
	expectAbort(t, "state_error", func() {
		TokenTransfer(strptr(fmt.Sprintf(`{"to":%q,"amount":400}`, bob.String())))
	})
}

func TestDemurrageStakeShieldsFromDecay(t *testing.T) {
	setup(t)
	mintTo(t, alice, 1000)

	asTx(t, alice, func() {
		TokenStake(strptr(`{"amount":1000}`))
	})

	// tier 2 (>= 1000): locked 14 days, everything staked, nothing decays
	sdk.MockAdvanceTime(10 * DaySecs)
	require.InDelta(t, 0.0, tokenBalance(t, alice), 0.001)
	a := loadDemurrageAccount(alice)
	require.EqualValues(t, FloatToAmount(1000), a.Staked)
	require.EqualValues(t, 2, a.Tier)
}

func TestDemurrageStakeBelowMinimumTier(t *testing.T) {
	setup(t)
	mintTo(t, alice, 50)

	sdk.MockNextTx(alice)
	expectAbort(t, "validation_error", func() {
		TokenStake(strptr(`{"amount":50}`))
	})
}

func TestDemurrageUnstakeRespectsLock(t *testing.T) {
	setup(t)
	mintTo(t, alice, 100)

	asTx(t, alice, func() {
		TokenStake(strptr(`{"amount":100}`))
	})

	// tier 1 locks for 7 days
	sdk.MockAdvanceTime(3 * DaySecs)
	sdk.MockNextTx(alice)
	expectAbort(t, "state_error", func() {
		TokenUnstake(strptr(`{"amount":100}`))
	})

	sdk.MockAdvanceTime(4 * DaySecs)
	asTx(t, alice, func() {
		TokenUnstake(strptr(`{"amount":100}`))
	})
	a := loadDemurrageAccount(alice)
	require.EqualValues(t, 0, a.Staked)
	require.EqualValues(t, 0, a.Tier)
}

func TestDemurrageTierOnlyUpgrades(t *testing.T) {
	setup(t)
	mintTo(t, alice, 2000)

	asTx(t, alice, func() {
		TokenStake(strptr(`{"amount":1000}`))
	})
	require.EqualValues(t, 2, loadDemurrageAccount(alice).Tier)
	firstLockEnd := loadDemurrageAccount(alice).LockEnd

	// topping up keeps the tier and can only push the lock out
	asTx(t, alice, func() {
		TokenStake(strptr(`{"amount":100}`))
	})
	a := loadDemurrageAccount(alice)
	require.EqualValues(t, 2, a.Tier)
	require.GreaterOrEqual(t, a.LockEnd, firstLockEnd)
}

func TestDemurrageRebaseAccrualAndClaim(t *testing.T) {
	setup(t)
	mintTo(t, alice, 100)

	asTx(t, alice, func() {
		TokenStake(strptr(`{"amount":100}`))
	})

	// tier 1, boost 1x: 20 bps of 100 per day over 10 days
	sdk.MockAdvanceTime(10 * DaySecs)
	asTx(t, alice, func() {
		TokenClaimRebase(nil)
	})
	require.InDelta(t, 2.0, tokenBalance(t, alice), 0.01)

	// immediate second claim finds nothing
	asTx(t, alice, func() {
		resp := TokenClaimRebase(nil)
		require.Equal(t, "nothing accrued", *resp)
	})
}

func TestDemurragePauseBlocksTransfers(t *testing.T) {
	setup(t)
	mintTo(t, alice, 100)

	asTx(t, guardian, func() {
		TokenSetPaused(strptr(`{"paused":true}`))
	})

	sdk.MockNextTx(alice)
	expectAbort(t, "state_error", func() {
		TokenTransfer(strptr(fmt.Sprintf(`{"to":%q,"amount":10}`, bob.String())))
	})

	// only the guardian may flip the switch
	sdk.MockNextTx(alice)
	expectAbort(t, "authorization_error", func() {
		TokenSetPaused(strptr(`{"paused":false}`))
	})

	asTx(t, guardian, func() {
		TokenSetPaused(strptr(`{"paused":false}`))
	})
	asTx(t, alice, func() {
		TokenTransfer(strptr(fmt.Sprintf(`{"to":%q,"amount":10}`, bob.String())))
	})
	require.InDelta(t, 90.0, tokenBalance(t, alice), 0.001)
}
