package sdk

// Env is the execution environment snapshot handed to the contract by the
// host for the current transaction. Timestamp arrives either as unix seconds
// or RFC3339 text depending on the host version; callers should use the
// contract-side clock helpers instead of parsing it directly.
//
//tinyjson:json
type Env struct {
	ContractId  string   `json:"contract.id"`
	TxId        string   `json:"tx.id"`
	BlockId     string   `json:"block.id"`
	BlockHeight uint64   `json:"block.height"`
	Timestamp   string   `json:"block.timestamp"`
	Sender      Sender   `json:"msg.sender"`
	Intents     []Intent `json:"intents"`
}
