package contract

import (
	"encoding/json"
	"fmt"
	"strconv"
	"testing"

	"kodama_protocol/sdk"

	"github.com/stretchr/testify/require"
)

// Shared test fixtures. baseTime is week-aligned so escrow unlock math in
// the tests starts exactly on a period boundary.

const baseTime = int64(WeekSecs * 2900) // 1753920000

var (
	guardian    = sdk.Address("hive:guardian")
	distributor = sdk.Address("hive:distributor")
	treasury    = sdk.Address("hive:treasury")
	alice       = sdk.Address("hive:alice")
	bob         = sdk.Address("hive:bob")
	carol       = sdk.Address("hive:carol")
)

// setup wipes the mock host, pins the clock and initializes the contract
// with the standard role layout.
func setup(t *testing.T) {
	t.Helper()
	sdk.MockReset()
	sdk.MockSetTimestamp(baseTime)
	sdk.MockNextTx(guardian)
	ContractInit(strptr(fmt.Sprintf(
		`{"distributor":%q,"treasury":%q,"board":[%q]}`,
		distributor.String(), treasury.String(), guardian.String())))
}

// allowHbd builds the transfer.allow intent for a deposit-drawing call.
func allowHbd(limit float64) sdk.Intent {
	return sdk.Intent{
		Type: "transfer.allow",
		Args: map[string]string{
			"limit": strconv.FormatFloat(limit, 'f', -1, 64),
			"token": "hbd",
		},
	}
}

// asTx runs fn as its own transaction from sender.
func asTx(t *testing.T, sender sdk.Address, fn func(), intents ...sdk.Intent) {
	t.Helper()
	sdk.MockNextTx(sender, intents...)
	fn()
}

// expectAbort asserts fn panics with the given revert symbol and rewinds the
// host, mirroring the chain's transaction rollback.
func expectAbort(t *testing.T, symbol string, fn func()) {
	t.Helper()
	snap := sdk.MockSnapshot()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected call to abort")
		if symbol != "" {
			he, ok := r.(sdk.HostError)
			require.True(t, ok, "panic value should be a HostError, got %v", r)
			require.Equal(t, symbol, he.Symbol, "unexpected revert symbol: %s", he.Error())
		}
		sdk.MockRestore(snap)
	}()
	fn()
}

// balanceOfResp decodes the {"amount":...} query response.
func balanceOfResp(t *testing.T, resp *string) float64 {
	t.Helper()
	require.NotNil(t, resp)
	var out struct {
		Amount float64 `json:"amount"`
	}
	decodeJSON(t, *resp, &out)
	return out.Amount
}

func decodeJSON(t *testing.T, s string, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(s), v))
}
