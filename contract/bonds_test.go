package contract

import (
	"fmt"
	"math"
	"testing"

	"kodama_protocol/sdk"

	"github.com/stretchr/testify/require"
)

const bondVestMax = int64(30 * DaySecs)

// observe writes one price slot as the distributor oracle.
func observe(t *testing.T, asset string, priceMicro uint64) {
	t.Helper()
	asTx(t, distributor, func() {
		BondObservePrice(strptr(fmt.Sprintf(`{"asset":%q,"priceMicro":%d}`, asset, priceMicro)))
	})
}

// openMarket creates the standard test market: hbd deposits, 5%% discount,
// 10%% max vesting boost, 1-30 day vesting.
func openMarket(t *testing.T) {
	t.Helper()
	asTx(t, guardian, func() {
		BondMarketCreate(strptr(fmt.Sprintf(
			`{"asset":"hbd","discountBps":500,"betaBps":1000,"minVestingSecs":%d,"maxVestingSecs":%d,"maxPayout":100000,"epochBudget":100000}`,
			DaySecs, bondVestMax)))
	})
}

func TestBondPayoutPricing(t *testing.T) {
	setup(t)
	observe(t, "hbd", 1_000_000) // $1.00
	observe(t, "koda", 100_000)  // $0.10
	openMarket(t)
	sdk.MockDeposit(alice, 100*AmountScale, sdk.AssetHbd)

	// 100 hbd at $1 buys $100 of koda at $0.10 = 1000, * 1.05 discount
	// * 1.10 full-vesting boost = 1155
	asTx(t, alice, func() {
		BondPurchase(strptr(fmt.Sprintf(`{"marketId":1,"amount":100,"vestingSecs":%d}`, bondVestMax)))
	}, allowHbd(100))

	b := loadBond(1)
	require.InDelta(t, 1155.0, AmountToFloat(b.Payout), 0.01)
	require.Equal(t, alice, b.Owner)

	// the deposit went straight to the treasury
	require.EqualValues(t, 100*AmountScale, sdk.MockBalance(treasury, sdk.AssetHbd))
	require.InDelta(t, 1155.0, AmountToFloat(loadBondDebt()), 0.01)
}

func TestBondLinearVestingClaims(t *testing.T) {
	setup(t)
	observe(t, "hbd", 1_000_000)
	observe(t, "koda", 100_000)
	openMarket(t)
	sdk.MockDeposit(alice, 100*AmountScale, sdk.AssetHbd)

	asTx(t, alice, func() {
		BondPurchase(strptr(fmt.Sprintf(`{"marketId":1,"amount":100,"vestingSecs":%d}`, bondVestMax)))
	}, allowHbd(100))
	payout := AmountToFloat(loadBond(1).Payout)

	// nothing vested at t=0: a no-op, not an error
	asTx(t, alice, func() {
		resp := BondClaim(strptr(`{"bondId":1}`))
		require.Equal(t, "nothing newly vested", *resp)
	})
	require.InDelta(t, 0.0, tokenBalance(t, alice), 0.001)

	sdk.MockAdvanceTime(bondVestMax / 2)
	asTx(t, alice, func() {
		BondClaim(strptr(`{"bondId":1}`))
	})
	require.InDelta(t, payout/2, tokenBalance(t, alice), 0.1)

	// the half claimed at t=15d sits idle for the remaining 30 days and
	// decays daily; the second half is minted fresh on claim
	sdk.MockAdvanceTime(bondVestMax)
	asTx(t, alice, func() {
		BondClaim(strptr(`{"bondId":1}`))
	})
	idleDays := float64(bondVestMax / DaySecs)
	decayFactor := math.Pow(1-float64(FallbackDemurrageBps)/BpsDenom, idleDays)
	require.InDelta(t, payout/2*decayFactor+payout/2, tokenBalance(t, alice), 0.2)
	require.InDelta(t, 0.0, AmountToFloat(loadBondDebt()), 0.01)

	// fully claimed
	asTx(t, alice, func() {
		resp := BondClaim(strptr(`{"bondId":1}`))
		require.Equal(t, "nothing newly vested", *resp)
	})
}

func TestBondClaimOwnerOnly(t *testing.T) {
	setup(t)
	observe(t, "hbd", 1_000_000)
	observe(t, "koda", 100_000)
	openMarket(t)
	sdk.MockDeposit(alice, 100*AmountScale, sdk.AssetHbd)

	asTx(t, alice, func() {
		BondPurchase(strptr(fmt.Sprintf(`{"marketId":1,"amount":100,"vestingSecs":%d}`, bondVestMax)))
	}, allowHbd(100))

	sdk.MockAdvanceTime(bondVestMax)
	sdk.MockNextTx(bob)
	expectAbort(t, "authorization_error", func() {
		BondClaim(strptr(`{"bondId":1}`))
	})
}

func TestBondDebtCeiling(t *testing.T) {
	setup(t)
	observe(t, "hbd", 1_000_000)
	observe(t, "koda", 100_000)
	openMarket(t)
	sdk.MockDeposit(alice, 1000*AmountScale, sdk.AssetHbd)

	asTx(t, guardian, func() {
		SetParam(strptr(`{"name":"max_debt","value":"1000"}`))
	})

	sdk.MockNextTx(alice, allowHbd(100))
	expectAbort(t, "invariant_breach", func() {
		BondPurchase(strptr(fmt.Sprintf(`{"marketId":1,"amount":100,"vestingSecs":%d}`, bondVestMax)))
	})
}

func TestBondVestingBounds(t *testing.T) {
	setup(t)
	observe(t, "hbd", 1_000_000)
	observe(t, "koda", 100_000)
	openMarket(t)
	sdk.MockDeposit(alice, 100*AmountScale, sdk.AssetHbd)

	sdk.MockNextTx(alice, allowHbd(100))
	expectAbort(t, "validation_error", func() {
		BondPurchase(strptr(`{"marketId":1,"amount":100,"vestingSecs":3600}`))
	})
	expectAbort(t, "validation_error", func() {
		BondPurchase(strptr(fmt.Sprintf(`{"marketId":1,"amount":100,"vestingSecs":%d}`, bondVestMax+1)))
	})
}

func TestBondTwapAveragesWindow(t *testing.T) {
	setup(t)
	observe(t, "hbd", 1_000_000)
	observe(t, "koda", 100_000)
	sdk.MockAdvanceTime(3600)
	observe(t, "koda", 200_000)
	sdk.MockAdvanceTime(3600)
	observe(t, "koda", 300_000)
	openMarket(t)
	sdk.MockDeposit(alice, 100*AmountScale, sdk.AssetHbd)

	// mean of the three in-window observations is $0.20: $100 buys 500
	// before discount and boost
	asTx(t, alice, func() {
		BondPurchase(strptr(fmt.Sprintf(`{"marketId":1,"amount":100,"vestingSecs":%d}`, bondVestMax)))
	}, allowHbd(100))

	want := 500.0 * 1.05 * 1.10
	require.InDelta(t, want, AmountToFloat(loadBond(1).Payout), 0.5)
}

func TestBondTwapFallsBackToSpot(t *testing.T) {
	setup(t)
	observe(t, "hbd", 1_000_000)
	observe(t, "koda", 100_000)
	openMarket(t)
	sdk.MockDeposit(alice, 100*AmountScale, sdk.AssetHbd)

	// every observation ages out of the window; the newest one still prices
	sdk.MockAdvanceTime(FallbackTwapWindowSecs + 3600)
	asTx(t, alice, func() {
		BondPurchase(strptr(fmt.Sprintf(`{"marketId":1,"amount":100,"vestingSecs":%d}`, bondVestMax)))
	}, allowHbd(100))
	require.InDelta(t, 1155.0, AmountToFloat(loadBond(1).Payout), 0.01)
}

func TestBondNoObservationsAborts(t *testing.T) {
	setup(t)
	openMarket(t)
	sdk.MockDeposit(alice, 100*AmountScale, sdk.AssetHbd)

	sdk.MockNextTx(alice, allowHbd(100))
	expectAbort(t, "state_error", func() {
		BondPurchase(strptr(fmt.Sprintf(`{"marketId":1,"amount":100,"vestingSecs":%d}`, bondVestMax)))
	})
}

func TestBondInactiveMarketRejects(t *testing.T) {
	setup(t)
	observe(t, "hbd", 1_000_000)
	observe(t, "koda", 100_000)
	openMarket(t)
	sdk.MockDeposit(alice, 100*AmountScale, sdk.AssetHbd)

	asTx(t, guardian, func() {
		BondMarketSetActive(strptr(`{"marketId":1,"active":false}`))
	})
	sdk.MockNextTx(alice, allowHbd(100))
	expectAbort(t, "state_error", func() {
		BondPurchase(strptr(fmt.Sprintf(`{"marketId":1,"amount":100,"vestingSecs":%d}`, bondVestMax)))
	})
}
