////////////////////////////////////////////////////////////////////////////////
// Kodama Protocol: bonding-curve sale, vote-escrow governance, gauge
// emissions, rebasing/demurrage token accounting and bond markets for the
// vsc network
////////////////////////////////////////////////////////////////////////////////

package main

import (
	_ "kodama_protocol/contract"
)

// main is left empty on purpose; all entry points are wasm exports
// living in the contract package.
func main() {

}
