package contract

import (
	"fmt"
	"testing"

	"kodama_protocol/sdk"

	"github.com/stretchr/testify/require"
)

var lpTarget = sdk.Address("hive:lp-pool")
var stakersTarget = sdk.Address("hive:staker-pool")

// lockFor gives addr escrow power by max-locking the given principal.
func lockFor(t *testing.T, addr sdk.Address, amount float64) {
	t.Helper()
	sdk.MockDeposit(addr, int64(FloatToAmount(amount)), sdk.AssetHbd)
	asTx(t, addr, func() {
		EscrowCreateLock(lockPayload(amount, nowUnix()+MaxLockSecs))
	}, allowHbd(amount))
}

func addGauge(t *testing.T, target sdk.Address) {
	t.Helper()
	asTx(t, guardian, func() {
		GaugeAdd(strptr(fmt.Sprintf(`{"target":%q}`, target.String())))
	})
}

func TestGaugeSoleGaugeTakesFullEmission(t *testing.T) {
	setup(t)
	lockFor(t, alice, 100)
	lockFor(t, bob, 300)
	addGauge(t, lpTarget)

	asTx(t, alice, func() {
		GaugeVote(strptr(`{"allocations":[{"gaugeId":1,"bps":10000}]}`))
	})
	asTx(t, bob, func() {
		GaugeVote(strptr(`{"allocations":[{"gaugeId":1,"bps":10000}]}`))
	})

	sdk.MockAdvanceTime(WeekSecs)
	asTx(t, carol, func() {
		GaugeAdvance(nil)
	})
	asTx(t, carol, func() {
		GaugeClaim(strptr(`{"gaugeId":1}`))
	})

	require.InDelta(t, 10000.0, tokenBalance(t, lpTarget), 0.01)
}

func TestGaugeEmissionSplitsProportionally(t *testing.T) {
	setup(t)
	lockFor(t, alice, 100)
	lockFor(t, bob, 300)
	addGauge(t, lpTarget)
	addGauge(t, stakersTarget)

	asTx(t, alice, func() {
		GaugeVote(strptr(`{"allocations":[{"gaugeId":1,"bps":10000}]}`))
	})
	asTx(t, bob, func() {
		GaugeVote(strptr(`{"allocations":[{"gaugeId":2,"bps":10000}]}`))
	})

	sdk.MockAdvanceTime(WeekSecs)
	asTx(t, carol, func() {
		GaugeAdvance(nil)
	})
	asTx(t, carol, func() {
		GaugeClaim(strptr(`{"gaugeId":1}`))
		GaugeClaim(strptr(`{"gaugeId":2}`))
	})

	lp := tokenBalance(t, lpTarget)
	st := tokenBalance(t, stakersTarget)
	require.InDelta(t, 2500.0, lp, 1.0)
	require.InDelta(t, 7500.0, st, 1.0)
	require.InDelta(t, 10000.0, lp+st, 0.01)
}

func TestGaugeRevoteRequiresReset(t *testing.T) {
	setup(t)
	lockFor(t, alice, 100)
	addGauge(t, lpTarget)
	addGauge(t, stakersTarget)

	asTx(t, alice, func() {
		GaugeVote(strptr(`{"allocations":[{"gaugeId":1,"bps":10000}]}`))
	})

	// no implicit overwrite inside the same epoch
	sdk.MockNextTx(alice)
	expectAbort(t, "state_error", func() {
		GaugeVote(strptr(`{"allocations":[{"gaugeId":1,"bps":5000},{"gaugeId":2,"bps":5000}]}`))
	})

	asTx(t, alice, func() {
		GaugeResetVotes(nil)
	})
	asTx(t, alice, func() {
		GaugeVote(strptr(`{"allocations":[{"gaugeId":1,"bps":5000},{"gaugeId":2,"bps":5000}]}`))
	})

	g1 := loadGauge(1)
	g2 := loadGauge(2)
	require.InDelta(t, 50.0, AmountToFloat(g1.Weight), 0.1)
	require.InDelta(t, 50.0, AmountToFloat(g2.Weight), 0.1)
}

func TestGaugeResetWithdrawsVote(t *testing.T) {
	setup(t)
	lockFor(t, alice, 100)
	addGauge(t, lpTarget)

	asTx(t, alice, func() {
		GaugeVote(strptr(`{"allocations":[{"gaugeId":1,"bps":10000}]}`))
	})
	asTx(t, alice, func() {
		GaugeResetVotes(nil)
	})
	require.EqualValues(t, 0, loadGauge(1).Weight)

	sdk.MockNextTx(alice)
	expectAbort(t, "state_error", func() {
		GaugeResetVotes(nil)
	})
}

func TestGaugeVoteValidation(t *testing.T) {
	setup(t)
	addGauge(t, lpTarget)

	// no escrow power
	sdk.MockNextTx(alice)
	expectAbort(t, "state_error", func() {
		GaugeVote(strptr(`{"allocations":[{"gaugeId":1,"bps":10000}]}`))
	})

	lockFor(t, alice, 100)

	// over 10000 bps
	sdk.MockNextTx(alice)
	expectAbort(t, "invariant_breach", func() {
		GaugeVote(strptr(`{"allocations":[{"gaugeId":1,"bps":10001}]}`))
	})

	// inactive gauge
	asTx(t, guardian, func() {
		GaugeSetActive(strptr(`{"gaugeId":1,"active":false}`))
	})
	sdk.MockNextTx(alice)
	expectAbort(t, "state_error", func() {
		GaugeVote(strptr(`{"allocations":[{"gaugeId":1,"bps":10000}]}`))
	})
}

func TestGaugeZeroVoteEpochPaysNothing(t *testing.T) {
	setup(t)
	lockFor(t, alice, 100)
	addGauge(t, lpTarget)

	// epoch 1 passes without any votes
	sdk.MockAdvanceTime(WeekSecs)
	asTx(t, carol, func() {
		GaugeAdvance(nil)
	})
	asTx(t, carol, func() {
		GaugeClaim(strptr(`{"gaugeId":1}`))
	})
	require.InDelta(t, 0.0, tokenBalance(t, lpTarget), 0.001)

	// the claim marker still advanced past the empty epoch
	require.EqualValues(t, 1, loadGauge(1).LastClaimedEpoch)
}

func TestGaugeClaimIsIdempotent(t *testing.T) {
	setup(t)
	lockFor(t, alice, 100)
	addGauge(t, lpTarget)

	asTx(t, alice, func() {
		GaugeVote(strptr(`{"allocations":[{"gaugeId":1,"bps":10000}]}`))
	})
	sdk.MockAdvanceTime(WeekSecs)
	asTx(t, carol, func() {
		GaugeAdvance(nil)
		GaugeClaim(strptr(`{"gaugeId":1}`))
	})
	paid := tokenBalance(t, lpTarget)

	asTx(t, carol, func() {
		resp := GaugeClaim(strptr(`{"gaugeId":1}`))
		require.Equal(t, "nothing to claim", *resp)
	})
	require.InDelta(t, paid, tokenBalance(t, lpTarget), 0.001)
}
