package contract

import "kodama_protocol/sdk"

// State accessors for the gauge engine: gauge records, the live epoch
// cursor, per-epoch weight snapshots and voter allocation lists.

// gaugeEpochState is the live epoch cursor: its number and window start.
type gaugeEpochState struct {
	Epoch uint64
	Start int64
}

func encodeGaugeEpoch(e *gaugeEpochState) string {
	w := newWriter()
	w.writeUint64(e.Epoch)
	w.writeInt64(e.Start)
	return string(w.bytes())
}

func decodeGaugeEpoch(data []byte) *gaugeEpochState {
	r := newReader(data)
	return &gaugeEpochState{
		Epoch: r.readUint64("gauge epoch"),
		Start: r.readInt64("gauge epoch start"),
	}
}

func loadGaugeEpoch() *gaugeEpochState {
	ptr := sdk.StateGetObject(singletonKey(kGaugeEpoch))
	if ptr == nil || *ptr == "" {
		return nil
	}
	return decodeGaugeEpoch([]byte(*ptr))
}

func saveGaugeEpoch(e *gaugeEpochState) {
	sdk.StateSetObject(singletonKey(kGaugeEpoch), encodeGaugeEpoch(e))
}

func gaugeCount() uint64 {
	return getCount(kGaugeCount)
}

func loadGauge(id uint64) *Gauge {
	ptr := sdk.StateGetObject(idKey(kGauge, id))
	if ptr == nil || *ptr == "" {
		abortValidation("unknown gauge")
	}
	return decodeGauge([]byte(*ptr))
}

func saveGauge(id uint64, g *Gauge) {
	sdk.StateSetObject(idKey(kGauge, id), encodeGauge(g))
}

// epoch weight snapshot, written once at finalize
func loadEpochGaugeWeight(id, epoch uint64) Amount {
	return loadAmount(idIdxKey(kGaugeEpochWeight, id, epoch))
}

func saveEpochGaugeWeight(id, epoch uint64, w Amount) {
	if w == 0 {
		return
	}
	saveAmount(idIdxKey(kGaugeEpochWeight, id, epoch), w)
}

// running epoch total, frozen when the epoch finalizes
func loadEpochTotalWeight(epoch uint64) Amount {
	return loadAmount(idKey(kEpochTotalWeight, epoch))
}

func saveEpochTotalWeight(epoch uint64, w Amount) {
	saveAmount(idKey(kEpochTotalWeight, epoch), w)
}

func isEpochFinalized(epoch uint64) bool {
	return sdk.StateGetObject(idKey(kEpochFinalized, epoch)) != nil
}

func markEpochFinalized(epoch uint64) {
	sdk.StateSetObject(idKey(kEpochFinalized, epoch), "1")
}

func loadAllocations(addr sdk.Address, epoch uint64) []GaugeAllocation {
	ptr := sdk.StateGetObject(addrIdxKey(kVoteAllocation, addr, epoch))
	if ptr == nil || *ptr == "" {
		return nil
	}
	return decodeAllocations([]byte(*ptr))
}

func saveAllocations(addr sdk.Address, epoch uint64, allocs []GaugeAllocation) {
	if len(allocs) == 0 {
		sdk.StateDeleteObject(addrIdxKey(kVoteAllocation, addr, epoch))
		return
	}
	sdk.StateSetObject(addrIdxKey(kVoteAllocation, addr, epoch), encodeAllocations(allocs))
}
