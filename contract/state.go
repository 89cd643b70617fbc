package contract

import (
	"strconv"

	"kodama_protocol/sdk"
)

// Shared persistence helpers: params blob, counters, change-avoiding writes.

// stateSetIfChanged avoids unnecessary writes so we dont thrash storage fees.
func stateSetIfChanged(key, value string) {
	if existing := sdk.StateGetObject(key); existing != nil && *existing == value {
		return
	}
	sdk.StateSetObject(key, value)
}

// isContractInitialized reports whether contract_init already ran.
func isContractInitialized() bool {
	return sdk.StateGetObject(singletonKey(kInit)) != nil
}

func markContractInitialized() {
	sdk.StateSetObject(singletonKey(kInit), "1")
}

// loadParams fetches the numeric configuration; aborts before init.
func loadParams() *Params {
	ptr := sdk.StateGetObject(singletonKey(kParams))
	if ptr == nil || *ptr == "" {
		abortState("contract not initialized")
	}
	return decodeParams([]byte(*ptr))
}

func saveParams(p *Params) {
	sdk.StateSetObject(singletonKey(kParams), encodeParams(p))
}

// encodeCount/decodeCount keep counters readable decimal strings in the kv.
func encodeCount(n uint64) string { return strconv.FormatUint(n, 10) }

func decodeCount(s string) uint64 {
	n, _ := strconv.ParseUint(s, 10, 64)
	return n
}

// getCount reads the counter under the key and defaults to zero.
func getCount(prefix byte) uint64 {
	ptr := sdk.StateGetObject(singletonKey(prefix))
	if ptr == nil || *ptr == "" {
		return 0
	}
	return decodeCount(*ptr)
}

// setCount stores uint64 counters back as decimal strings for the host kv.
func setCount(prefix byte, n uint64) {
	sdk.StateSetObject(singletonKey(prefix), encodeCount(n))
}

// loadAmount reads an Amount stored as a decimal string under a raw key.
func loadAmount(key string) Amount {
	ptr := sdk.StateGetObject(key)
	if ptr == nil || *ptr == "" {
		return 0
	}
	n, _ := strconv.ParseInt(*ptr, 10, 64)
	return Amount(n)
}

// saveAmount writes an Amount as a decimal string under a raw key.
func saveAmount(key string, v Amount) {
	sdk.StateSetObject(key, strconv.FormatInt(int64(v), 10))
}
