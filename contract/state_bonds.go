package contract

import "kodama_protocol/sdk"

// State accessors for bond markets, vesting positions, the global debt
// counter and the per-asset price observation ring.

func bondMarketCount() uint64 {
	return getCount(kBondMarketCount)
}

func loadBondMarket(id uint64) *BondMarket {
	ptr := sdk.StateGetObject(idKey(kBondMarket, id))
	if ptr == nil || *ptr == "" {
		abortValidation("unknown bond market")
	}
	return decodeBondMarket([]byte(*ptr))
}

func saveBondMarket(m *BondMarket) {
	sdk.StateSetObject(idKey(kBondMarket, m.ID), encodeBondMarket(m))
}

func bondCount() uint64 {
	return getCount(kBondCount)
}

func loadBond(id uint64) *Bond {
	ptr := sdk.StateGetObject(idKey(kBond, id))
	if ptr == nil || *ptr == "" {
		abortValidation("unknown bond")
	}
	return decodeBond([]byte(*ptr))
}

func saveBond(b *Bond) {
	sdk.StateSetObject(idKey(kBond, b.ID), encodeBond(b))
}

func loadBondDebt() Amount {
	return loadAmount(singletonKey(kBondTotalDebt))
}

func saveBondDebt(v Amount) {
	saveAmount(singletonKey(kBondTotalDebt), v)
}

// priceRingHead is the total number of observations ever written for the
// asset; the slot index is head modulo the ring size.
func priceRingHead(asset sdk.Asset) uint64 {
	ptr := sdk.StateGetObject(assetKey(kPriceRingHead, asset))
	if ptr == nil || *ptr == "" {
		return 0
	}
	return decodeCount(*ptr)
}

func pushObservation(asset sdk.Asset, o *PriceObservation) {
	head := priceRingHead(asset)
	sdk.StateSetObject(assetIdxKey(kPriceObservation, asset, head%TwapRingSize), encodeObservation(o))
	sdk.StateSetObject(assetKey(kPriceRingHead, asset), encodeCount(head+1))
}

func loadObservation(asset sdk.Asset, slot uint64) *PriceObservation {
	ptr := sdk.StateGetObject(assetIdxKey(kPriceObservation, asset, slot))
	if ptr == nil || *ptr == "" {
		return nil
	}
	return decodeObservation([]byte(*ptr))
}
