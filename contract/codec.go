package contract

import (
	"bytes"
	"encoding/binary"

	"kodama_protocol/sdk"

	"github.com/holiman/uint256"
)

// Deterministic binary codec for state records. Numbers go big-endian or as
// varints, strings are length-prefixed, u256 fields take a fixed 32 bytes.

type binWriter struct {
	buf bytes.Buffer
}

// newWriter spins up a fresh writer so we dont leak old bytes between encodes.
func newWriter() *binWriter { return &binWriter{} }

func (w *binWriter) bytes() []byte { return w.buf.Bytes() }

// writeBool squashes bools into a single byte flag for deterministic payloads.
func (w *binWriter) writeBool(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

// writeUint64 writes big endian numbers so tooling can read them without guessing.
func (w *binWriter) writeUint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

// writeInt64 reuses the uint routine since casting keeps the sign bits intact.
func (w *binWriter) writeInt64(v int64) {
	w.writeUint64(uint64(v))
}

// writeVarUint uses varints to keep counts and lens compact.
func (w *binWriter) writeVarUint(v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	w.buf.Write(tmp[:n])
}

// writeAmount keeps amount scaling consistent via a single call site.
func (w *binWriter) writeAmount(v Amount) {
	w.writeInt64(int64(v))
}

// writeString prefixes its length then dumps UTF-8 directly.
func (w *binWriter) writeString(s string) {
	w.writeVarUint(uint64(len(s)))
	w.buf.WriteString(s)
}

// writeU256 stores the fixed 32-byte big-endian form so decoding never guesses.
func (w *binWriter) writeU256(v *uint256.Int) {
	b := v.Bytes32()
	w.buf.Write(b[:])
}

type binReader struct {
	r *bytes.Reader
}

func newReader(data []byte) *binReader {
	return &binReader{r: bytes.NewReader(data)}
}

// corrupt aborts the call; state bytes only come from our own encoders, so a
// decode failure means the record family/layout is wrong, not user input.
func (r *binReader) corrupt(what string) {
	sdk.Abort("corrupt state record: " + what)
}

func (r *binReader) readBool(what string) bool {
	b, err := r.r.ReadByte()
	if err != nil {
		r.corrupt(what)
	}
	return b == 1
}

func (r *binReader) readUint64(what string) uint64 {
	var b [8]byte
	if _, err := r.r.Read(b[:]); err != nil {
		r.corrupt(what)
	}
	return binary.BigEndian.Uint64(b[:])
}

func (r *binReader) readInt64(what string) int64 {
	return int64(r.readUint64(what))
}

func (r *binReader) readVarUint(what string) uint64 {
	v, err := binary.ReadUvarint(r.r)
	if err != nil {
		r.corrupt(what)
	}
	return v
}

func (r *binReader) readAmount(what string) Amount {
	return Amount(r.readInt64(what))
}

func (r *binReader) readString(what string) string {
	n := r.readVarUint(what)
	if n > uint64(r.r.Len()) {
		r.corrupt(what)
	}
	b := make([]byte, n)
	if _, err := r.r.Read(b); err != nil {
		r.corrupt(what)
	}
	return string(b)
}

func (r *binReader) readU256(what string) *uint256.Int {
	var b [32]byte
	if _, err := r.r.Read(b[:]); err != nil {
		r.corrupt(what)
	}
	return new(uint256.Int).SetBytes(b[:])
}

// -----------------------------------------------------------------------------
// Per-record encoders
// -----------------------------------------------------------------------------

func encodeLock(l *LockPosition) string {
	w := newWriter()
	w.writeAmount(l.Amount)
	w.writeInt64(l.UnlockTime)
	return string(w.bytes())
}

func decodeLock(data []byte) *LockPosition {
	r := newReader(data)
	return &LockPosition{
		Amount:     r.readAmount("lock amount"),
		UnlockTime: r.readInt64("lock unlock time"),
	}
}

func encodeCheckpoint(c *Checkpoint) string {
	w := newWriter()
	w.writeU256(c.Bias)
	w.writeU256(c.Slope)
	w.writeInt64(c.Ts)
	w.writeUint64(c.Height)
	return string(w.bytes())
}

func decodeCheckpoint(data []byte) *Checkpoint {
	r := newReader(data)
	return &Checkpoint{
		Bias:   r.readU256("checkpoint bias"),
		Slope:  r.readU256("checkpoint slope"),
		Ts:     r.readInt64("checkpoint ts"),
		Height: r.readUint64("checkpoint height"),
	}
}

func encodeGauge(g *Gauge) string {
	w := newWriter()
	w.writeString(g.Target.String())
	w.writeAmount(g.Weight)
	w.writeUint64(g.LastClaimedEpoch)
	w.writeBool(g.Active)
	return string(w.bytes())
}

func decodeGauge(data []byte) *Gauge {
	r := newReader(data)
	return &Gauge{
		Target:           sdk.Address(r.readString("gauge target")),
		Weight:           r.readAmount("gauge weight"),
		LastClaimedEpoch: r.readUint64("gauge last claimed"),
		Active:           r.readBool("gauge active"),
	}
}

func encodeAllocations(allocs []GaugeAllocation) string {
	w := newWriter()
	w.writeVarUint(uint64(len(allocs)))
	for _, a := range allocs {
		w.writeVarUint(a.GaugeID)
		w.writeVarUint(a.WeightBps)
		w.writeAmount(a.Weight)
	}
	return string(w.bytes())
}

func decodeAllocations(data []byte) []GaugeAllocation {
	r := newReader(data)
	n := r.readVarUint("allocation count")
	allocs := make([]GaugeAllocation, 0, n)
	for i := uint64(0); i < n; i++ {
		allocs = append(allocs, GaugeAllocation{
			GaugeID:   r.readVarUint("allocation gauge id"),
			WeightBps: r.readVarUint("allocation bps"),
			Weight:    r.readAmount("allocation weight"),
		})
	}
	return allocs
}

func encodeProposal(p *Proposal) string {
	w := newWriter()
	w.writeUint64(p.ID)
	w.writeString(p.Proposer.String())
	w.writeVarUint(uint64(len(p.Targets)))
	for i := range p.Targets {
		w.writeString(p.Targets[i])
		w.writeString(p.Methods[i])
		w.writeString(p.Payloads[i])
		w.writeAmount(p.Values[i])
	}
	w.writeInt64(p.StartTime)
	w.writeInt64(p.EndTime)
	w.writeAmount(p.ForVotes)
	w.writeAmount(p.AgainstVotes)
	w.writeAmount(p.AbstainVotes)
	w.writeBool(p.Canceled)
	w.writeBool(p.Executed)
	w.writeInt64(p.Eta)
	return string(w.bytes())
}

func decodeProposal(data []byte) *Proposal {
	r := newReader(data)
	p := &Proposal{
		ID:       r.readUint64("proposal id"),
		Proposer: sdk.Address(r.readString("proposal proposer")),
	}
	n := r.readVarUint("proposal op count")
	p.Targets = make([]string, 0, n)
	p.Methods = make([]string, 0, n)
	p.Payloads = make([]string, 0, n)
	p.Values = make([]Amount, 0, n)
	for i := uint64(0); i < n; i++ {
		p.Targets = append(p.Targets, r.readString("proposal target"))
		p.Methods = append(p.Methods, r.readString("proposal method"))
		p.Payloads = append(p.Payloads, r.readString("proposal payload"))
		p.Values = append(p.Values, r.readAmount("proposal value"))
	}
	p.StartTime = r.readInt64("proposal start")
	p.EndTime = r.readInt64("proposal end")
	p.ForVotes = r.readAmount("proposal for votes")
	p.AgainstVotes = r.readAmount("proposal against votes")
	p.AbstainVotes = r.readAmount("proposal abstain votes")
	p.Canceled = r.readBool("proposal canceled")
	p.Executed = r.readBool("proposal executed")
	p.Eta = r.readInt64("proposal eta")
	return p
}

func encodeReceipt(rc *VoteReceipt) string {
	w := newWriter()
	w.writeBool(rc.HasVoted)
	w.buf.WriteByte(byte(rc.Support))
	w.writeAmount(rc.Weight)
	return string(w.bytes())
}

func decodeReceipt(data []byte) *VoteReceipt {
	r := newReader(data)
	rc := &VoteReceipt{HasVoted: r.readBool("receipt voted")}
	b, err := r.r.ReadByte()
	if err != nil {
		r.corrupt("receipt support")
	}
	rc.Support = VoteSupport(b)
	rc.Weight = r.readAmount("receipt weight")
	return rc
}

func encodeBondMarket(m *BondMarket) string {
	w := newWriter()
	w.writeUint64(m.ID)
	w.writeString(m.DepositAsset.String())
	w.writeVarUint(m.DiscountBps)
	w.writeVarUint(m.BetaBps)
	w.writeInt64(m.MinVestingSecs)
	w.writeInt64(m.MaxVestingSecs)
	w.writeAmount(m.MaxPayout)
	w.writeAmount(m.EpochBudget)
	w.writeAmount(m.EpochBonded)
	w.writeInt64(m.LastEpochReset)
	w.writeBool(m.Active)
	return string(w.bytes())
}

func decodeBondMarket(data []byte) *BondMarket {
	r := newReader(data)
	return &BondMarket{
		ID:             r.readUint64("market id"),
		DepositAsset:   sdk.Asset(r.readString("market asset")),
		DiscountBps:    r.readVarUint("market discount"),
		BetaBps:        r.readVarUint("market beta"),
		MinVestingSecs: r.readInt64("market min vesting"),
		MaxVestingSecs: r.readInt64("market max vesting"),
		MaxPayout:      r.readAmount("market max payout"),
		EpochBudget:    r.readAmount("market budget"),
		EpochBonded:    r.readAmount("market bonded"),
		LastEpochReset: r.readInt64("market epoch reset"),
		Active:         r.readBool("market active"),
	}
}

func encodeBond(b *Bond) string {
	w := newWriter()
	w.writeUint64(b.ID)
	w.writeUint64(b.MarketID)
	w.writeString(b.Owner.String())
	w.writeAmount(b.Payout)
	w.writeInt64(b.VestingSecs)
	w.writeInt64(b.DepositedAt)
	w.writeAmount(b.Claimed)
	return string(w.bytes())
}

func decodeBond(data []byte) *Bond {
	r := newReader(data)
	return &Bond{
		ID:          r.readUint64("bond id"),
		MarketID:    r.readUint64("bond market id"),
		Owner:       sdk.Address(r.readString("bond owner")),
		Payout:      r.readAmount("bond payout"),
		VestingSecs: r.readInt64("bond vesting"),
		DepositedAt: r.readInt64("bond deposited at"),
		Claimed:     r.readAmount("bond claimed"),
	}
}

func encodeObservation(o *PriceObservation) string {
	w := newWriter()
	w.writeUint64(o.PriceMicro)
	w.writeInt64(o.Ts)
	return string(w.bytes())
}

func decodeObservation(data []byte) *PriceObservation {
	r := newReader(data)
	return &PriceObservation{
		PriceMicro: r.readUint64("observation price"),
		Ts:         r.readInt64("observation ts"),
	}
}

func encodeDemurrageAccount(a *DemurrageAccount) string {
	w := newWriter()
	w.writeAmount(a.Balance)
	w.writeAmount(a.Staked)
	w.buf.WriteByte(a.Tier)
	w.writeInt64(a.LockEnd)
	w.writeInt64(a.LastDecayAt)
	w.writeInt64(a.LastAccrualAt)
	w.writeAmount(a.Pending)
	return string(w.bytes())
}

func decodeDemurrageAccount(data []byte) *DemurrageAccount {
	r := newReader(data)
	a := &DemurrageAccount{
		Balance: r.readAmount("holder balance"),
		Staked:  r.readAmount("holder staked"),
	}
	tier, err := r.r.ReadByte()
	if err != nil {
		r.corrupt("holder tier")
	}
	a.Tier = tier
	a.LockEnd = r.readInt64("holder lock end")
	a.LastDecayAt = r.readInt64("holder last decay")
	a.LastAccrualAt = r.readInt64("holder last accrual")
	a.Pending = r.readAmount("holder pending")
	return a
}

func encodeSale(s *SaleState) string {
	w := newWriter()
	w.writeAmount(s.Sold)
	w.writeBool(s.Active)
	return string(w.bytes())
}

func decodeSale(data []byte) *SaleState {
	r := newReader(data)
	return &SaleState{
		Sold:   r.readAmount("sale sold"),
		Active: r.readBool("sale active"),
	}
}

func encodeAddressList(addrs []sdk.Address) string {
	w := newWriter()
	w.writeVarUint(uint64(len(addrs)))
	for _, a := range addrs {
		w.writeString(a.String())
	}
	return string(w.bytes())
}

func decodeAddressList(data []byte) []sdk.Address {
	r := newReader(data)
	n := r.readVarUint("principal count")
	addrs := make([]sdk.Address, 0, n)
	for i := uint64(0); i < n; i++ {
		addrs = append(addrs, sdk.Address(r.readString("principal")))
	}
	return addrs
}

func encodeParams(p *Params) string {
	w := newWriter()
	w.writeString(p.ReserveAsset.String())
	w.writeAmount(p.QuorumVotes)
	w.writeAmount(p.ProposalThreshold)
	w.writeInt64(p.VotingDelaySecs)
	w.writeInt64(p.VotingPeriodSecs)
	w.writeInt64(p.TimelockDelaySecs)
	w.writeInt64(p.GracePeriodSecs)
	w.writeInt64(p.PublicGovernanceAt)
	w.writeBool(p.PublicGovernance)
	w.writeInt64(p.GaugeEpochSecs)
	w.writeAmount(p.EmissionsPerEpoch)
	w.writeVarUint(p.MaxVoteAllocations)
	w.writeInt64(p.StakingEpochSecs)
	w.writeVarUint(p.StakingRateBps)
	w.writeVarUint(p.DemurrageBps)
	w.writeVarUint(p.DemurrageRateBps)
	w.writeInt64(p.DemurrageEpochSecs)
	w.writeInt64(p.BondEpochSecs)
	w.writeAmount(p.MaxDebt)
	w.writeUint64(p.SaleStartPriceMicro)
	w.writeUint64(p.SaleEndPriceMicro)
	w.writeAmount(p.SaleSupply)
	w.writeInt64(p.TwapWindowSecs)
	return string(w.bytes())
}

func decodeParams(data []byte) *Params {
	r := newReader(data)
	return &Params{
		ReserveAsset:        sdk.Asset(r.readString("params asset")),
		QuorumVotes:         r.readAmount("params quorum"),
		ProposalThreshold:   r.readAmount("params threshold"),
		VotingDelaySecs:     r.readInt64("params voting delay"),
		VotingPeriodSecs:    r.readInt64("params voting period"),
		TimelockDelaySecs:   r.readInt64("params timelock"),
		GracePeriodSecs:     r.readInt64("params grace"),
		PublicGovernanceAt:  r.readInt64("params public at"),
		PublicGovernance:    r.readBool("params public"),
		GaugeEpochSecs:      r.readInt64("params gauge epoch"),
		EmissionsPerEpoch:   r.readAmount("params emissions"),
		MaxVoteAllocations:  r.readVarUint("params max allocations"),
		StakingEpochSecs:    r.readInt64("params staking epoch"),
		StakingRateBps:      r.readVarUint("params staking rate"),
		DemurrageBps:        r.readVarUint("params demurrage"),
		DemurrageRateBps:    r.readVarUint("params demurrage rate"),
		DemurrageEpochSecs:  r.readInt64("params demurrage epoch"),
		BondEpochSecs:       r.readInt64("params bond epoch"),
		MaxDebt:             r.readAmount("params max debt"),
		SaleStartPriceMicro: r.readUint64("params sale start"),
		SaleEndPriceMicro:   r.readUint64("params sale end"),
		SaleSupply:          r.readAmount("params sale supply"),
		TwapWindowSecs:      r.readInt64("params twap window"),
	}
}
