package contract

import "kodama_protocol/sdk"

// State accessors for the protocol token ledger: per-holder records, the
// total supply counter and the transfer pause switch.

func loadDemurrageAccount(addr sdk.Address) *DemurrageAccount {
	ptr := sdk.StateGetObject(addrKey(kDemurrageAccount, addr))
	if ptr == nil || *ptr == "" {
		return &DemurrageAccount{}
	}
	return decodeDemurrageAccount([]byte(*ptr))
}

func saveDemurrageAccount(addr sdk.Address, a *DemurrageAccount) {
	if a.Balance == 0 && a.Staked == 0 && a.Pending == 0 {
		sdk.StateDeleteObject(addrKey(kDemurrageAccount, addr))
		return
	}
	sdk.StateSetObject(addrKey(kDemurrageAccount, addr), encodeDemurrageAccount(a))
}

func loadTokenSupply() Amount {
	return loadAmount(singletonKey(kDemurrageSupply))
}

func saveTokenSupply(v Amount) {
	saveAmount(singletonKey(kDemurrageSupply), v)
}

func isTokenPaused() bool {
	ptr := sdk.StateGetObject(singletonKey(kDemurragePaused))
	return ptr != nil && *ptr == "1"
}

func setTokenPaused(paused bool) {
	if paused {
		sdk.StateSetObject(singletonKey(kDemurragePaused), "1")
		return
	}
	sdk.StateDeleteObject(singletonKey(kDemurragePaused))
}
