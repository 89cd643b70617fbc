package contract

import "kodama_protocol/sdk"

// Storage key prefixes. One byte per entity family keeps related records
// contiguous in the host kv without nested maps.
const (
	// kParams stores the encoded Params blob.
	kParams byte = 0x01
	// kRole stores the encoded principal list per role.
	kRole byte = 0x02
	// kGuard flags an in-progress guarded surface.
	kGuard byte = 0x03
	// kInit flags that contract_init already ran.
	kInit byte = 0x04

	// kLock houses encoded LockPosition structs per account.
	kLock byte = 0x10
	// kUserCheckpoint stores the account checkpoint sequence (addr, index).
	kUserCheckpoint byte = 0x11
	// kUserCheckpointCount holds the per-account sequence length.
	kUserCheckpointCount byte = 0x12
	// kGlobalCheckpoint stores the global checkpoint sequence by index.
	kGlobalCheckpoint byte = 0x13
	// kGlobalCheckpointCount holds the global sequence length.
	kGlobalCheckpointCount byte = 0x14
	// kSlopeDecrease schedules slope drops at lock-expiry week boundaries.
	kSlopeDecrease byte = 0x15
	// kEscrowTotalLocked tracks custody principal across all locks.
	kEscrowTotalLocked byte = 0x16

	// kStakingState stores the gons index state (single record).
	kStakingState byte = 0x20
	// kGonsBalance stores per-account internal units.
	kGonsBalance byte = 0x21

	// kDemurrageAccount stores per-account protocol token state.
	kDemurrageAccount byte = 0x30
	// kDemurrageSupply tracks the protocol token total supply.
	kDemurrageSupply byte = 0x31
	// kDemurragePaused flags the transfer pipeline pause switch.
	kDemurragePaused byte = 0x32

	// kGauge contains encoded Gauge records by id (1-indexed).
	kGauge byte = 0x40
	// kGaugeCount holds the gauge id counter.
	kGaugeCount byte = 0x41
	// kGaugeEpoch stores the live epoch number and window start.
	kGaugeEpoch byte = 0x42
	// kGaugeEpochWeight snapshots a gauge's weight at epoch finalize (id, epoch).
	kGaugeEpochWeight byte = 0x43
	// kEpochTotalWeight accumulates then freezes the epoch weight total.
	kEpochTotalWeight byte = 0x44
	// kEpochFinalized flags a finalized epoch.
	kEpochFinalized byte = 0x45
	// kVoteAllocation stores a user's allocation list (addr, epoch).
	kVoteAllocation byte = 0x46

	// kProposal contains encoded Proposal records.
	kProposal byte = 0x50
	// kProposalCount holds the proposal id counter.
	kProposalCount byte = 0x51
	// kVoteReceipt stores write-once ballots (proposal, voter).
	kVoteReceipt byte = 0x52
	// kLatestProposal maps a proposer to their newest proposal id.
	kLatestProposal byte = 0x53

	// kBondMarket contains encoded BondMarket records.
	kBondMarket byte = 0x60
	// kBondMarketCount holds the market id counter.
	kBondMarketCount byte = 0x61
	// kBond contains encoded Bond positions.
	kBond byte = 0x62
	// kBondCount holds the bond id counter.
	kBondCount byte = 0x63
	// kBondTotalDebt tracks outstanding unclaimed payout across all bonds.
	kBondTotalDebt byte = 0x64
	// kPriceObservation stores TWAP ring slots (asset, slot).
	kPriceObservation byte = 0x65
	// kPriceRingHead holds the ring write cursor per asset.
	kPriceRingHead byte = 0x66

	// kSale stores the bonding-curve sale state.
	kSale byte = 0x70
)

// packU64LEInline sprinkles a uint64 into dst in little-endian order so keys stay compact.
func packU64LEInline(x uint64, dst []byte) {
	dst[0] = byte(x)
	dst[1] = byte(x >> 8)
	dst[2] = byte(x >> 16)
	dst[3] = byte(x >> 24)
	dst[4] = byte(x >> 32)
	dst[5] = byte(x >> 40)
	dst[6] = byte(x >> 48)
	dst[7] = byte(x >> 56)
}

// packU64LE appends the encoded number to dst and returns the new slice.
func packU64LE(x uint64, dst []byte) []byte {
	return append(dst,
		byte(x),
		byte(x>>8),
		byte(x>>16),
		byte(x>>24),
		byte(x>>32),
		byte(x>>40),
		byte(x>>48),
		byte(x>>56),
	)
}

// singletonKey builds a one-byte key for single-record families.
func singletonKey(prefix byte) string {
	return string([]byte{prefix})
}

// addrKey builds prefix|address keys for per-account families.
func addrKey(prefix byte, addr sdk.Address) string {
	addrStr := addr.String()
	buf := make([]byte, 0, 1+len(addrStr))
	buf = append(buf, prefix)
	buf = append(buf, addrStr...)
	return string(buf)
}

// idKey builds prefix|id keys for id-indexed families.
func idKey(prefix byte, id uint64) string {
	var buf [9]byte
	buf[0] = prefix
	packU64LEInline(id, buf[1:])
	return string(buf[:])
}

// addrIdxKey builds prefix|address|index keys for per-account sequences.
func addrIdxKey(prefix byte, addr sdk.Address, idx uint64) string {
	addrStr := addr.String()
	buf := make([]byte, 0, 1+len(addrStr)+8)
	buf = append(buf, prefix)
	buf = append(buf, addrStr...)
	buf = packU64LE(idx, buf)
	return string(buf)
}

// idIdxKey builds prefix|id|index keys for (entity, epoch/slot) records.
func idIdxKey(prefix byte, id uint64, idx uint64) string {
	var buf [17]byte
	buf[0] = prefix
	packU64LEInline(id, buf[1:9])
	packU64LEInline(idx, buf[9:])
	return string(buf[:])
}

// idAddrKey builds prefix|id|address keys for (entity, account) records.
func idAddrKey(prefix byte, id uint64, addr sdk.Address) string {
	addrStr := addr.String()
	buf := make([]byte, 0, 1+8+len(addrStr))
	buf = append(buf, prefix)
	buf = packU64LE(id, buf)
	buf = append(buf, addrStr...)
	return string(buf)
}

// assetKey builds prefix|asset keys for per-asset records.
func assetKey(prefix byte, asset sdk.Asset) string {
	assetStr := asset.String()
	buf := make([]byte, 0, 1+len(assetStr))
	buf = append(buf, prefix)
	buf = append(buf, assetStr...)
	return string(buf)
}

// assetIdxKey builds prefix|asset|slot keys for the TWAP ring.
func assetIdxKey(prefix byte, asset sdk.Asset, idx uint64) string {
	assetStr := asset.String()
	buf := make([]byte, 0, 1+len(assetStr)+8)
	buf = append(buf, prefix)
	buf = append(buf, assetStr...)
	buf = packU64LE(idx, buf)
	return string(buf)
}

// tsKey builds prefix|timestamp keys for week-boundary schedules.
func tsKey(prefix byte, ts int64) string {
	var buf [9]byte
	buf[0] = prefix
	packU64LEInline(uint64(ts), buf[1:])
	return string(buf[:])
}
