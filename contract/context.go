package contract

import (
	"strconv"
	"time"

	"kodama_protocol/sdk"
)

// cachedEnv/cachedTransfer are scoped to the currently executing transaction.
// Whenever tx.id changes we refresh sdk.GetEnv() and drop memoized data so
// every helper in one call sees the same snapshot.
var (
	cachedEnv       sdk.Env
	cachedEnvLoaded bool
	cachedTransfer  *TransferAllow
	transferChecked bool
)

// currentEnv caches the env per tx.id so we dont poke the host api every few lines.
func currentEnv() *sdk.Env {
	var currentTx string
	if txPtr := sdk.GetEnvKey("tx.id"); txPtr != nil {
		currentTx = *txPtr
	}
	if !cachedEnvLoaded || cachedEnv.TxId != currentTx {
		cachedEnv = sdk.GetEnv()
		cachedEnvLoaded = true
		cachedTransfer = nil
		transferChecked = false
	}
	return &cachedEnv
}

// getSenderAddress returns the caller of the current transaction.
func getSenderAddress() sdk.Address {
	return currentEnv().Sender.Address
}

// getBlockHeight returns the ledger height for checkpoint records.
func getBlockHeight() uint64 {
	return currentEnv().BlockHeight
}

// nowUnix reads the chain clock; accepts unix seconds or RFC3339 text.
func nowUnix() int64 {
	ts := currentEnv().Timestamp
	if ts != "" {
		if v, err := strconv.ParseInt(ts, 10, 64); err == nil {
			return v
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			return t.Unix()
		}
	}
	sdk.Abort("no chain timestamp available")
	return 0
}

// floorWeek rounds a timestamp down to its week-period boundary.
func floorWeek(ts int64) int64 {
	return (ts / WeekSecs) * WeekSecs
}

// TransferAllow represents the limit and asset extracted from a
// transfer.allow intent supplied with the call.
type TransferAllow struct {
	Limit Amount
	Token sdk.Asset
}

// isValidAsset checks if a given token string is one of the supported assets.
func isValidAsset(token string) bool {
	for _, a := range validAssets {
		if token == a {
			return true
		}
	}
	return false
}

// firstTransferAllow finds the first transfer.allow intent of the current tx,
// memoized per transaction. Returns nil when the caller attached none.
func firstTransferAllow() *TransferAllow {
	if transferChecked {
		return cachedTransfer
	}
	transferChecked = true
	for _, intent := range currentEnv().Intents {
		if intent.Type != "transfer.allow" {
			continue
		}
		token := intent.Args["token"]
		if !isValidAsset(token) {
			abortValidation("invalid intent asset")
		}
		limit, err := strconv.ParseFloat(intent.Args["limit"], 64)
		if err != nil {
			abortValidation("invalid intent limit")
		}
		cachedTransfer = &TransferAllow{
			Limit: FloatToAmount(limit),
			Token: sdk.Asset(token),
		}
		return cachedTransfer
	}
	return nil
}

// drawFunds pulls amount of asset from the caller after checking the
// attached transfer.allow intent covers it.
func drawFunds(amount Amount, asset sdk.Asset) {
	if amount <= 0 {
		abortValidation("draw amount must be positive")
	}
	ta := firstTransferAllow()
	if ta == nil {
		abortValidation("missing transfer.allow intent")
	}
	if ta.Token != asset {
		abortValidation("intent token does not match required asset")
	}
	if ta.Limit < amount {
		abortValidation("intent limit below required amount")
	}
	sdk.TokenDraw(AmountToInt64(amount), asset)
}

// strptr is a tiny convenience for wasm export returns.
func strptr(s string) *string { return &s }
