//go:build !wasip1

package sdk

import (
	"strconv"
)

// The mock host mirrors the chain runtime for plain-Go builds: a map-backed
// kv store, a tiny ledger, a controllable environment and an in-memory event
// log. Tests drive it through the Mock* helpers below; contract code is
// unaware which host it runs against.

// MockContractHandler services ContractCall targets registered in the mock.
// Returning an error aborts the calling transaction, like a callee revert.
type MockContractHandler func(method string, payload string) (string, error)

type mockHost struct {
	state     map[string]string
	balances  map[string]int64
	logs      []string
	handlers  map[string]MockContractHandler
	sender    Address
	auths     []Address
	intents   []Intent
	timestamp int64
	height    uint64
	txSeq     uint64
	txId      string
}

var mock = newMockHost()

func newMockHost() *mockHost {
	return &mockHost{
		state:     map[string]string{},
		balances:  map[string]int64{},
		handlers:  map[string]MockContractHandler{},
		sender:    Address("hive:nobody"),
		timestamp: 0,
		txId:      "tx-0",
	}
}

const mockContractAccount = "contract:self"

func balanceKey(addr, asset string) string {
	return addr + "/" + asset
}

func hostLog(s string) {
	mock.logs = append(mock.logs, s)
}

func hostAbort(msg string) {
	panic(HostError{Msg: msg})
}

func hostRevert(msg string, symbol string) {
	panic(HostError{Msg: msg, Symbol: symbol})
}

func hostStateSet(key, value string) {
	mock.state[key] = value
}

func hostStateGet(key string) *string {
	val, ok := mock.state[key]
	if !ok {
		return nil
	}
	return &val
}

func hostStateDelete(key string) {
	delete(mock.state, key)
}

func hostGetEnv() string {
	env := Env{
		ContractId:  mockContractAccount,
		TxId:        mock.txId,
		BlockId:     "block-" + strconv.FormatUint(mock.height, 10),
		BlockHeight: mock.height,
		Timestamp:   strconv.FormatInt(mock.timestamp, 10),
		Sender: Sender{
			Address:       mock.sender,
			RequiredAuths: mock.auths,
		},
		Intents: mock.intents,
	}
	b, _ := env.MarshalJSON()
	return string(b)
}

func hostGetEnvKey(key string) *string {
	var val string
	switch key {
	case "tx.id":
		val = mock.txId
	case "block.timestamp":
		val = strconv.FormatInt(mock.timestamp, 10)
	case "block.height":
		val = strconv.FormatUint(mock.height, 10)
	case "contract.id":
		val = mockContractAccount
	default:
		return nil
	}
	return &val
}

func hostGetBalance(address, asset string) string {
	return strconv.FormatInt(mock.balances[balanceKey(address, asset)], 10)
}

func hostDraw(amount, asset string) {
	amt, err := strconv.ParseInt(amount, 10, 64)
	if err != nil || amt < 0 {
		hostAbort("mock: bad draw amount")
	}
	from := balanceKey(mock.sender.String(), asset)
	if mock.balances[from] < amt {
		hostAbort("mock: insufficient balance for draw")
	}
	mock.balances[from] -= amt
	mock.balances[balanceKey(mockContractAccount, asset)] += amt
}

func hostTransfer(to, amount, asset string) {
	amt, err := strconv.ParseInt(amount, 10, 64)
	if err != nil || amt < 0 {
		hostAbort("mock: bad transfer amount")
	}
	from := balanceKey(mockContractAccount, asset)
	if mock.balances[from] < amt {
		hostAbort("mock: insufficient contract balance")
	}
	mock.balances[from] -= amt
	mock.balances[balanceKey(to, asset)] += amt
}

func hostContractRead(contractId, key string) *string {
	// cross-contract reads are not modeled in the mock
	return nil
}

func hostContractCall(contractId, method, payload, options string) *string {
	handler, ok := mock.handlers[contractId]
	if !ok {
		hostRevert("mock: unknown contract "+contractId, "external_call_failure")
	}
	ret, err := handler(method, payload)
	if err != nil {
		hostRevert("mock: callee failed: "+err.Error(), "external_call_failure")
	}
	return &ret
}

// -----------------------------------------------------------------------------
// Test control surface
// -----------------------------------------------------------------------------

// MockReset wipes all host state back to genesis.
func MockReset() {
	mock = newMockHost()
}

// MockNextTx starts a fresh transaction with the given sender and intents.
// Each call bumps tx.id so per-tx caches in the contract refresh.
func MockNextTx(sender Address, intents ...Intent) {
	mock.txSeq++
	mock.txId = "tx-" + strconv.FormatUint(mock.txSeq, 10)
	mock.sender = sender
	mock.auths = []Address{sender}
	mock.intents = intents
	mock.height++
}

// bumpTx invalidates per-tx caches in the contract without changing the
// sender. The chain clock never moves inside one transaction, so any clock
// change starts a fresh tx.id.
func bumpTx() {
	mock.txSeq++
	mock.txId = "tx-" + strconv.FormatUint(mock.txSeq, 10)
	mock.height++
}

// MockSetTimestamp pins the chain clock to the given unix seconds.
func MockSetTimestamp(unix int64) {
	mock.timestamp = unix
	bumpTx()
}

// MockAdvanceTime moves the chain clock forward.
func MockAdvanceTime(secs int64) {
	mock.timestamp += secs
	bumpTx()
}

// MockNow reports the current mock chain time.
func MockNow() int64 {
	return mock.timestamp
}

// MockDeposit credits an account on the mock ledger.
func MockDeposit(addr Address, amount int64, asset Asset) {
	mock.balances[balanceKey(addr.String(), asset.String())] += amount
}

// MockBalance reads an account balance from the mock ledger.
func MockBalance(addr Address, asset Asset) int64 {
	return mock.balances[balanceKey(addr.String(), asset.String())]
}

// MockRegisterContract installs a callee for ContractCall targets.
func MockRegisterContract(contractId string, handler MockContractHandler) {
	mock.handlers[contractId] = handler
}

// MockLogs returns all emitted event lines since the last reset.
func MockLogs() []string {
	return mock.logs
}

// MockSnapshot captures state, balances and logs for rollback in tests that
// exercise failing calls (the real host rolls back automatically).
func MockSnapshot() map[string]any {
	state := make(map[string]string, len(mock.state))
	for k, v := range mock.state {
		state[k] = v
	}
	balances := make(map[string]int64, len(mock.balances))
	for k, v := range mock.balances {
		balances[k] = v
	}
	logs := make([]string, len(mock.logs))
	copy(logs, mock.logs)
	return map[string]any{"state": state, "balances": balances, "logs": logs}
}

// MockRestore rewinds the host to a snapshot taken with MockSnapshot.
func MockRestore(snap map[string]any) {
	mock.state = snap["state"].(map[string]string)
	mock.balances = snap["balances"].(map[string]int64)
	mock.logs = snap["logs"].([]string)
}
