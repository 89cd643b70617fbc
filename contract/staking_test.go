package contract

import (
	"fmt"
	"math"
	"testing"

	"kodama_protocol/sdk"

	"github.com/stretchr/testify/require"
)

func stakedBalance(t *testing.T, addr sdk.Address) float64 {
	t.Helper()
	resp := StakingBalanceOf(strptr(fmt.Sprintf(`{"account":%q}`, addr.String())))
	return balanceOfResp(t, resp)
}

func TestStakingStakeAndUnstakePrincipal(t *testing.T) {
	setup(t)
	sdk.MockDeposit(alice, 100*AmountScale, sdk.AssetHbd)

	asTx(t, alice, func() {
		StakingStake(strptr(`{"amount":100}`))
	}, allowHbd(100))
	require.InDelta(t, 100.0, stakedBalance(t, alice), 0.001)
	require.EqualValues(t, 0, sdk.MockBalance(alice, sdk.AssetHbd))

	asTx(t, alice, func() {
		StakingUnstake(strptr(`{"amount":50}`))
	})
	require.InDelta(t, 50.0, stakedBalance(t, alice), 0.001)
	require.EqualValues(t, 50*AmountScale, sdk.MockBalance(alice, sdk.AssetHbd))
}

func TestStakingRebaseCompoundsPerEpoch(t *testing.T) {
	setup(t)
	sdk.MockDeposit(alice, 100*AmountScale, sdk.AssetHbd)

	asTx(t, alice, func() {
		StakingStake(strptr(`{"amount":100}`))
	}, allowHbd(100))

	// ten 8h epochs at 5 bps each, compounding
	sdk.MockAdvanceTime(10 * FallbackStakingEpochSecs)
	asTx(t, alice, func() {
		StakingRebase(nil)
	})

	want := 100.0 * math.Pow(1.0005, 10)
	require.InDelta(t, want, stakedBalance(t, alice), 0.01)

	// nothing further inside the same epoch
	asTx(t, alice, func() {
		resp := StakingRebase(nil)
		require.Equal(t, "no completed epochs", *resp)
	})
}

func TestStakingDistributeProfitAppreciatesAllStakers(t *testing.T) {
	setup(t)
	sdk.MockDeposit(alice, 100*AmountScale, sdk.AssetHbd)
	sdk.MockDeposit(bob, 300*AmountScale, sdk.AssetHbd)
	sdk.MockDeposit(distributor, 400*AmountScale, sdk.AssetHbd)

	asTx(t, alice, func() {
		StakingStake(strptr(`{"amount":100}`))
	}, allowHbd(100))
	asTx(t, bob, func() {
		StakingStake(strptr(`{"amount":300}`))
	}, allowHbd(300))

	asTx(t, distributor, func() {
		StakingDistributeProfit(strptr(`{"amount":400}`))
	}, allowHbd(400))

	require.InDelta(t, 200.0, stakedBalance(t, alice), 0.01)
	require.InDelta(t, 600.0, stakedBalance(t, bob), 0.01)
	require.InDelta(t, 800.0, balanceOfResp(t, StakingTotalSupply(nil)), 0.01)

	// appreciated balance is redeemable one-for-one
	asTx(t, alice, func() {
		StakingUnstake(strptr(`{"amount":200}`))
	})
	require.EqualValues(t, 200*AmountScale, sdk.MockBalance(alice, sdk.AssetHbd))
}

func TestStakingDistributeRequiresRole(t *testing.T) {
	setup(t)
	sdk.MockDeposit(alice, 200*AmountScale, sdk.AssetHbd)

	asTx(t, alice, func() {
		StakingStake(strptr(`{"amount":100}`))
	}, allowHbd(100))

	sdk.MockNextTx(alice, allowHbd(100))
	expectAbort(t, "authorization_error", func() {
		StakingDistributeProfit(strptr(`{"amount":100}`))
	})
}

func TestStakingTransferMovesNominal(t *testing.T) {
	setup(t)
	sdk.MockDeposit(alice, 100*AmountScale, sdk.AssetHbd)

	asTx(t, alice, func() {
		StakingStake(strptr(`{"amount":100}`))
	}, allowHbd(100))

	asTx(t, alice, func() {
		StakingTransfer(strptr(fmt.Sprintf(`{"to":%q,"amount":40}`, bob.String())))
	})
	require.InDelta(t, 60.0, stakedBalance(t, alice), 0.001)
	require.InDelta(t, 40.0, stakedBalance(t, bob), 0.001)

	// over-transfer
	sdk.MockNextTx(alice)
	expectAbort(t, "state_error", func() {
		StakingTransfer(strptr(fmt.Sprintf(`{"to":%q,"amount":70}`, bob.String())))
	})
}

func TestStakingUnstakeBeyondBalance(t *testing.T) {
	setup(t)
	sdk.MockDeposit(alice, 100*AmountScale, sdk.AssetHbd)

	asTx(t, alice, func() {
		StakingStake(strptr(`{"amount":100}`))
	}, allowHbd(100))

	sdk.MockNextTx(alice)
	expectAbort(t, "state_error", func() {
		StakingUnstake(strptr(`{"amount":101}`))
	})
}
