package contract

import (
	"testing"

	tinyjson "github.com/CosmWasm/tinyjson"
	"github.com/stretchr/testify/require"
)

func TestPayloadFractionalAmounts(t *testing.T) {
	var tr TransferArgs
	require.NoError(t, tinyjson.Unmarshal([]byte(`{"to":"hive:bob","amount":12.345}`), &tr))
	require.Equal(t, "hive:bob", tr.To)
	require.InDelta(t, 12.345, tr.Amount, 1e-9)

	var cl CreateLockArgs
	require.NoError(t, tinyjson.Unmarshal([]byte(`{"amount":0.001,"unlockTime":1753920000}`), &cl))
	require.InDelta(t, 0.001, cl.Amount, 1e-12)
	require.EqualValues(t, 1753920000, cl.UnlockTime)

	// whole numbers arrive without a decimal point
	var am AmountArgs
	require.NoError(t, tinyjson.Unmarshal([]byte(`{"amount":100}`), &am))
	require.InDelta(t, 100.0, am.Amount, 1e-9)

	var pr ProposeArgs
	require.NoError(t, tinyjson.Unmarshal([]byte(`{"targets":["contract:other"],"methods":["noop"],"payloads":["{}"],"values":[1.5,0]}`), &pr))
	require.Equal(t, []float64{1.5, 0}, pr.Values)
}

func TestPayloadRejectsNonNumericAmount(t *testing.T) {
	var am AmountArgs
	require.Error(t, tinyjson.Unmarshal([]byte(`{"amount":"abc"}`), &am))
}

func TestResponseEncodesFractionalAmounts(t *testing.T) {
	require.Equal(t, `{"amount":12.5}`, toJSON(BalanceResponse{Amount: 12.5}))
	require.Equal(t, `{"tokens":1.25,"cost":0.5,"refund":0}`,
		toJSON(PurchaseResponse{Tokens: 1.25, Cost: 0.5, Refund: 0}))
}
