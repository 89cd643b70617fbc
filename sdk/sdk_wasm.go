//go:build wasip1

package sdk

//go:wasmimport sdk console.log
func log(s *string) *string

//go:wasmimport sdk db.set_object
func stateSetObject(key *string, value *string) *string

//go:wasmimport sdk db.get_object
func stateGetObject(key *string) *string

//go:wasmimport sdk db.rm_object
func stateDeleteObject(key *string) *string

//go:wasmimport sdk system.get_env
func getEnv(arg *string) *string

//go:wasmimport sdk system.get_env_key
func getEnvKey(arg *string) *string

//go:wasmimport sdk hive.get_balance
func getBalance(arg1 *string, arg2 *string) *string

//go:wasmimport sdk hive.draw
func hiveDraw(arg1 *string, arg2 *string) *string

//go:wasmimport sdk hive.transfer
func hiveTransfer(arg1 *string, arg2 *string, arg3 *string) *string

//go:wasmimport sdk contracts.read
func contractRead(contractId *string, key *string) *string

//go:wasmimport sdk contracts.call
func contractCall(contractId *string, method *string, payload *string, options *string) *string

//go:wasmimport env abort
func abort(msg, file *string, line, column *int32)

//go:wasmimport env revert
func revert(msg, symbol *string)

func hostLog(s string) {
	log(&s)
}

func hostAbort(msg string) {
	ln := int32(0)
	abort(&msg, nil, &ln, &ln)
	panic(HostError{Msg: msg})
}

func hostRevert(msg string, symbol string) {
	revert(&msg, &symbol)
	panic(HostError{Msg: msg, Symbol: symbol})
}

func hostStateSet(key, value string) {
	stateSetObject(&key, &value)
}

func hostStateGet(key string) *string {
	return stateGetObject(&key)
}

func hostStateDelete(key string) {
	stateDeleteObject(&key)
}

func hostGetEnv() string {
	return *getEnv(nil)
}

func hostGetEnvKey(key string) *string {
	return getEnvKey(&key)
}

func hostGetBalance(address, asset string) string {
	return *getBalance(&address, &asset)
}

func hostDraw(amount, asset string) {
	hiveDraw(&amount, &asset)
}

func hostTransfer(to, amount, asset string) {
	hiveTransfer(&to, &amount, &asset)
}

func hostContractRead(contractId, key string) *string {
	return contractRead(&contractId, &key)
}

func hostContractCall(contractId, method, payload, options string) *string {
	return contractCall(&contractId, &method, &payload, &options)
}
