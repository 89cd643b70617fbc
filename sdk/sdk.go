package sdk

import (
	"strconv"

	tinyjson "github.com/CosmWasm/tinyjson"
)

// HostError is the panic value raised by Abort/Revert outside the wasm host.
// The real host terminates execution and rolls the transaction back; the mock
// host reproduces that by unwinding through this panic.
type HostError struct {
	Msg    string
	Symbol string
}

func (e HostError) Error() string {
	if e.Symbol == "" {
		return e.Msg
	}
	return e.Symbol + ": " + e.Msg
}

// Log writes a message to the host event log so watchers can trace contract steps.
// Example payload: sdk.Log("lk|id:1")
func Log(s string) {
	hostLog(s)
}

// Abort stops execution immediately and surfaces the message to the chain.
// All state writes of the current call are discarded by the host.
// Example payload: sdk.Abort("no lock")
func Abort(msg string) {
	hostAbort(msg)
}

// Revert throws a named error back to the caller with a short symbol
// (like revert in solidity). Same rollback semantics as Abort.
// Example payload: sdk.Revert("amount is zero", "validation_error")
func Revert(msg string, symbol string) {
	hostRevert(msg, symbol)
}

// StateSetObject stores a key/value string pair into contract kv storage.
func StateSetObject(key string, value string) {
	hostStateSet(key, value)
}

// StateGetObject fetches a key and returns nil when missing.
func StateGetObject(key string) *string {
	return hostStateGet(key)
}

// StateDeleteObject removes the key entirely, handy for cleanup.
func StateDeleteObject(key string) {
	hostStateDelete(key)
}

// GetEnv pulls the JSON env blob from the chain and maps it to the Env struct.
func GetEnv() Env {
	env := Env{}
	if err := tinyjson.Unmarshal([]byte(hostGetEnv()), &env); err != nil {
		Abort("failed to decode env: " + err.Error())
	}
	return env
}

// GetEnvKey pulls a single env key (like tx.id) to avoid parsing the whole struct.
func GetEnvKey(key string) *string {
	return hostGetEnvKey(key)
}

// GetBalance queries the ledger balance for the given account+asset combo.
func GetBalance(address Address, asset Asset) int64 {
	balStr := hostGetBalance(address.String(), asset.String())
	bal, err := strconv.ParseInt(balStr, 10, 64)
	if err != nil {
		Abort("failed to parse balance: " + err.Error())
	}
	return bal
}

// TokenDraw pulls tokens from the caller to the contract within the
// transfer.allow intent limit supplied with the call.
func TokenDraw(amount int64, asset Asset) {
	hostDraw(strconv.FormatInt(amount, 10), asset.String())
}

// TokenTransfer sends contract-held tokens towards a user address.
func TokenTransfer(to Address, amount int64, asset Asset) {
	hostTransfer(to.String(), strconv.FormatInt(amount, 10), asset.String())
}

// ContractStateGet reads another contract's state key (view-only).
func ContractStateGet(contractId string, key string) *string {
	return hostContractRead(contractId, key)
}

// ContractCall performs a synchronous call into another contract with
// optional intents. A failure in the callee aborts the whole transaction.
func ContractCall(contractId string, method string, payload string, options *ContractCallOptions) *string {
	optStr := ""
	if options != nil {
		w := optionsWriter(options)
		optStr = w
	}
	return hostContractCall(contractId, method, payload, optStr)
}

func optionsWriter(options *ContractCallOptions) string {
	// intents are the only option today; keep the encoding tiny and by hand
	out := `{"intents":[`
	for i, in := range options.Intents {
		if i > 0 {
			out += ","
		}
		b, err := tinyjson.Marshal(in)
		if err != nil {
			Revert("could not serialize options", "sdk_error")
		}
		out += string(b)
	}
	return out + "]}"
}
