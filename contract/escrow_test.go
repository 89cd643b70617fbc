package contract

import (
	"fmt"
	"testing"

	"kodama_protocol/sdk"

	"github.com/stretchr/testify/require"
)

func lockPayload(amount float64, unlock int64) *string {
	return strptr(fmt.Sprintf(`{"amount":%f,"unlockTime":%d}`, amount, unlock))
}

func escrowBalance(t *testing.T, addr sdk.Address, at int64) float64 {
	t.Helper()
	resp := EscrowBalanceOf(strptr(fmt.Sprintf(`{"account":%q,"at":%d}`, addr.String(), at)))
	return balanceOfResp(t, resp)
}

func escrowTotal(t *testing.T, at int64) float64 {
	t.Helper()
	return balanceOfResp(t, EscrowTotalSupply(strptr(fmt.Sprintf(`{"at":%d}`, at))))
}

func TestEscrowMaxLockDecaysLinearly(t *testing.T) {
	setup(t)
	sdk.MockDeposit(alice, 1000*AmountScale, sdk.AssetHbd)

	end := baseTime + MaxLockSecs
	asTx(t, alice, func() {
		EscrowCreateLock(lockPayload(1000, end))
	}, allowHbd(1000))

	require.InDelta(t, 1000.0, escrowBalance(t, alice, baseTime), 0.01)
	require.InDelta(t, 500.0, escrowBalance(t, alice, baseTime+MaxLockSecs/2), 0.01)
	require.InDelta(t, 0.0, escrowBalance(t, alice, end), 0.001)
	require.InDelta(t, 0.0, escrowBalance(t, alice, end+WeekSecs), 0.001)

	// strictly non-increasing week by week
	prev := escrowBalance(t, alice, baseTime)
	for w := 1; w <= 10; w++ {
		cur := escrowBalance(t, alice, baseTime+int64(w)*WeekSecs)
		require.LessOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestEscrowTotalSupplyIsSumOfBalances(t *testing.T) {
	setup(t)
	sdk.MockDeposit(alice, 1000*AmountScale, sdk.AssetHbd)
	sdk.MockDeposit(bob, 500*AmountScale, sdk.AssetHbd)

	asTx(t, alice, func() {
		EscrowCreateLock(lockPayload(1000, baseTime+MaxLockSecs))
	}, allowHbd(1000))
	asTx(t, bob, func() {
		EscrowCreateLock(lockPayload(500, baseTime+52*WeekSecs))
	}, allowHbd(500))

	for _, at := range []int64{baseTime, baseTime + 26*WeekSecs, baseTime + 52*WeekSecs, baseTime + 100*WeekSecs} {
		sum := escrowBalance(t, alice, at) + escrowBalance(t, bob, at)
		require.InDelta(t, sum, escrowTotal(t, at), 0.01, "at offset %d", at-baseTime)
	}
}

func TestEscrowCreateLockValidation(t *testing.T) {
	setup(t)
	sdk.MockDeposit(alice, 2000*AmountScale, sdk.AssetHbd)

	// zero amount
	sdk.MockNextTx(alice, allowHbd(1000))
	expectAbort(t, "validation_error", func() {
		EscrowCreateLock(lockPayload(0, baseTime+52*WeekSecs))
	})

	// unlock in the past
	expectAbort(t, "validation_error", func() {
		EscrowCreateLock(lockPayload(100, baseTime-WeekSecs))
	})

	// beyond the four-year horizon
	expectAbort(t, "validation_error", func() {
		EscrowCreateLock(lockPayload(100, baseTime+MaxLockSecs+2*WeekSecs))
	})

	// no transfer.allow intent attached
	sdk.MockNextTx(alice)
	expectAbort(t, "validation_error", func() {
		EscrowCreateLock(lockPayload(100, baseTime+52*WeekSecs))
	})

	// double lock
	asTx(t, alice, func() {
		EscrowCreateLock(lockPayload(100, baseTime+52*WeekSecs))
	}, allowHbd(100))
	sdk.MockNextTx(alice, allowHbd(100))
	expectAbort(t, "state_error", func() {
		EscrowCreateLock(lockPayload(100, baseTime+52*WeekSecs))
	})
}

func TestEscrowIncreaseAmountRaisesPower(t *testing.T) {
	setup(t)
	sdk.MockDeposit(alice, 2000*AmountScale, sdk.AssetHbd)

	asTx(t, alice, func() {
		EscrowCreateLock(lockPayload(1000, baseTime+MaxLockSecs))
	}, allowHbd(1000))
	before := escrowBalance(t, alice, baseTime)

	asTx(t, alice, func() {
		EscrowIncreaseAmount(strptr(`{"amount":1000}`))
	}, allowHbd(1000))
	after := escrowBalance(t, alice, baseTime)

	require.InDelta(t, 2*before, after, 0.01)
}

func TestEscrowExtendOnlyForward(t *testing.T) {
	setup(t)
	sdk.MockDeposit(alice, 1000*AmountScale, sdk.AssetHbd)

	asTx(t, alice, func() {
		EscrowCreateLock(lockPayload(1000, baseTime+52*WeekSecs))
	}, allowHbd(1000))

	sdk.MockNextTx(alice)
	expectAbort(t, "validation_error", func() {
		EscrowIncreaseUnlockTime(strptr(fmt.Sprintf(`{"unlockTime":%d}`, baseTime+26*WeekSecs)))
	})

	before := escrowBalance(t, alice, baseTime)
	asTx(t, alice, func() {
		EscrowIncreaseUnlockTime(strptr(fmt.Sprintf(`{"unlockTime":%d}`, baseTime+104*WeekSecs)))
	})
	require.Greater(t, escrowBalance(t, alice, baseTime), before)
}

func TestEscrowWithdraw(t *testing.T) {
	setup(t)
	sdk.MockDeposit(alice, 1000*AmountScale, sdk.AssetHbd)

	end := baseTime + 4*WeekSecs
	asTx(t, alice, func() {
		EscrowCreateLock(lockPayload(1000, end))
	}, allowHbd(1000))
	require.EqualValues(t, 0, sdk.MockBalance(alice, sdk.AssetHbd))

	// too early
	sdk.MockNextTx(alice)
	expectAbort(t, "state_error", func() {
		EscrowWithdraw(nil)
	})

	sdk.MockSetTimestamp(end)
	asTx(t, alice, func() {
		EscrowWithdraw(nil)
	})
	require.EqualValues(t, 1000*AmountScale, sdk.MockBalance(alice, sdk.AssetHbd))
	require.InDelta(t, 0.0, escrowBalance(t, alice, end), 0.001)

	// a second withdraw has nothing left
	sdk.MockNextTx(alice)
	expectAbort(t, "state_error", func() {
		EscrowWithdraw(nil)
	})
}
