package contract

import (
	"fmt"
	"strconv"
	"strings"

	tinyjson "github.com/CosmWasm/tinyjson"
	jlexer "github.com/CosmWasm/tinyjson/jlexer"
	jwriter "github.com/CosmWasm/tinyjson/jwriter"
)

// Call payloads are JSON, decoded with the tinyjson lexer. The codec methods
// are maintained by hand (like the state codec) to keep the wasm build free
// of reflection.

// decodePayload unwraps and parses an export's JSON payload.
func decodePayload(payload *string, v tinyjson.Unmarshaler, what string) {
	if payload == nil || strings.TrimSpace(*payload) == "" {
		abortValidation(what + " payload missing")
	}
	if err := tinyjson.Unmarshal([]byte(*payload), v); err != nil {
		abortValidation("invalid " + what + " payload: " + err.Error())
	}
}

// decodeOptionalPayload parses when a payload is present, leaving the
// struct's defaults in place otherwise. Queries use this so a bare call
// means "the caller, now".
func decodeOptionalPayload(payload *string, v tinyjson.Unmarshaler, what string) {
	if payload == nil || strings.TrimSpace(*payload) == "" {
		return
	}
	if err := tinyjson.Unmarshal([]byte(*payload), v); err != nil {
		abortValidation("invalid " + what + " payload: " + err.Error())
	}
}

// lexFloat reads a JSON number as raw text and parses it; the pinned lexer
// carries integer readers only, so fractional amounts travel out of band.
func lexFloat(in *jlexer.Lexer) float64 {
	raw := strings.TrimSpace(string(in.Raw()))
	if !in.Ok() {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		in.AddError(fmt.Errorf("invalid number %q", raw))
		return 0
	}
	return f
}

// writeFloat emits the shortest decimal form of f as a raw JSON number.
func writeFloat(w *jwriter.Writer, f float64) {
	w.RawString(strconv.FormatFloat(f, 'f', -1, 64))
}

// toJSON serializes a response struct for an export return value.
func toJSON(v tinyjson.Marshaler) string {
	b, err := tinyjson.Marshal(v)
	if err != nil {
		abortValidation("failed to serialize response: " + err.Error())
	}
	return string(b)
}

// -----------------------------------------------------------------------------
// Argument structs
// -----------------------------------------------------------------------------

type InitArgs struct {
	ReserveAsset string
	Guardian     string
	Distributor  string
	Treasury     string
	Board        []string
}

func (a *InitArgs) UnmarshalTinyJSON(in *jlexer.Lexer) {
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "reserveAsset":
			a.ReserveAsset = in.String()
		case "guardian":
			a.Guardian = in.String()
		case "distributor":
			a.Distributor = in.String()
		case "treasury":
			a.Treasury = in.String()
		case "board":
			in.Delim('[')
			for !in.IsDelim(']') {
				a.Board = append(a.Board, in.String())
				in.WantComma()
			}
			in.Delim(']')
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}

type SetParamArgs struct {
	Name  string
	Value string
}

func (a *SetParamArgs) UnmarshalTinyJSON(in *jlexer.Lexer) {
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "name":
			a.Name = in.String()
		case "value":
			a.Value = in.String()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}

type RoleArgs struct {
	Role    string
	Address string
}

func (a *RoleArgs) UnmarshalTinyJSON(in *jlexer.Lexer) {
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "role":
			a.Role = in.String()
		case "address":
			a.Address = in.String()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}

type CreateLockArgs struct {
	Amount     float64
	UnlockTime int64
}

func (a *CreateLockArgs) UnmarshalTinyJSON(in *jlexer.Lexer) {
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "amount":
			a.Amount = lexFloat(in)
		case "unlockTime":
			a.UnlockTime = in.Int64()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}

// AmountArgs covers every export whose only input is a token quantity.
type AmountArgs struct {
	Amount float64
}

func (a *AmountArgs) UnmarshalTinyJSON(in *jlexer.Lexer) {
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "amount":
			a.Amount = lexFloat(in)
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}

type ExtendLockArgs struct {
	UnlockTime int64
}

func (a *ExtendLockArgs) UnmarshalTinyJSON(in *jlexer.Lexer) {
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "unlockTime":
			a.UnlockTime = in.Int64()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}

// AccountAtArgs asks for a balance, optionally at a historical timestamp.
type AccountAtArgs struct {
	Account string
	At      int64
}

func (a *AccountAtArgs) UnmarshalTinyJSON(in *jlexer.Lexer) {
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "account":
			a.Account = in.String()
		case "at":
			a.At = in.Int64()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}

type TransferArgs struct {
	To     string
	Amount float64
}

func (a *TransferArgs) UnmarshalTinyJSON(in *jlexer.Lexer) {
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "to":
			a.To = in.String()
		case "amount":
			a.Amount = lexFloat(in)
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}

type PauseArgs struct {
	Paused bool
}

func (a *PauseArgs) UnmarshalTinyJSON(in *jlexer.Lexer) {
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "paused":
			a.Paused = in.Bool()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}

type GaugeAddArgs struct {
	Target string
}

func (a *GaugeAddArgs) UnmarshalTinyJSON(in *jlexer.Lexer) {
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "target":
			a.Target = in.String()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}

type GaugeActiveArgs struct {
	GaugeID uint64
	Active  bool
}

func (a *GaugeActiveArgs) UnmarshalTinyJSON(in *jlexer.Lexer) {
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "gaugeId":
			a.GaugeID = in.Uint64()
		case "active":
			a.Active = in.Bool()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}

type AllocationArg struct {
	GaugeID uint64
	Bps     uint64
}

func (a *AllocationArg) UnmarshalTinyJSON(in *jlexer.Lexer) {
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "gaugeId":
			a.GaugeID = in.Uint64()
		case "bps":
			a.Bps = in.Uint64()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}

type GaugeVoteArgs struct {
	Allocations []AllocationArg
}

func (a *GaugeVoteArgs) UnmarshalTinyJSON(in *jlexer.Lexer) {
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "allocations":
			in.Delim('[')
			for !in.IsDelim(']') {
				var leg AllocationArg
				leg.UnmarshalTinyJSON(in)
				a.Allocations = append(a.Allocations, leg)
				in.WantComma()
			}
			in.Delim(']')
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}

type GaugeClaimArgs struct {
	GaugeID uint64
	Epoch   uint64
}

func (a *GaugeClaimArgs) UnmarshalTinyJSON(in *jlexer.Lexer) {
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "gaugeId":
			a.GaugeID = in.Uint64()
		case "epoch":
			a.Epoch = in.Uint64()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}

type ProposeArgs struct {
	Targets  []string
	Methods  []string
	Payloads []string
	Values   []float64
}

func (a *ProposeArgs) UnmarshalTinyJSON(in *jlexer.Lexer) {
	strs := func(dst *[]string) {
		in.Delim('[')
		for !in.IsDelim(']') {
			*dst = append(*dst, in.String())
			in.WantComma()
		}
		in.Delim(']')
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "targets":
			strs(&a.Targets)
		case "methods":
			strs(&a.Methods)
		case "payloads":
			strs(&a.Payloads)
		case "values":
			in.Delim('[')
			for !in.IsDelim(']') {
				a.Values = append(a.Values, lexFloat(in))
				in.WantComma()
			}
			in.Delim(']')
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}

type ProposalIDArgs struct {
	ProposalID uint64
}

func (a *ProposalIDArgs) UnmarshalTinyJSON(in *jlexer.Lexer) {
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "proposalId":
			a.ProposalID = in.Uint64()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}

type CastVoteArgs struct {
	ProposalID uint64
	Support    string
}

func (a *CastVoteArgs) UnmarshalTinyJSON(in *jlexer.Lexer) {
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "proposalId":
			a.ProposalID = in.Uint64()
		case "support":
			a.Support = in.String()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}

type MarketCreateArgs struct {
	Asset          string
	DiscountBps    uint64
	BetaBps        uint64
	MinVestingSecs int64
	MaxVestingSecs int64
	MaxPayout      float64
	EpochBudget    float64
}

func (a *MarketCreateArgs) UnmarshalTinyJSON(in *jlexer.Lexer) {
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "asset":
			a.Asset = in.String()
		case "discountBps":
			a.DiscountBps = in.Uint64()
		case "betaBps":
			a.BetaBps = in.Uint64()
		case "minVestingSecs":
			a.MinVestingSecs = in.Int64()
		case "maxVestingSecs":
			a.MaxVestingSecs = in.Int64()
		case "maxPayout":
			a.MaxPayout = lexFloat(in)
		case "epochBudget":
			a.EpochBudget = lexFloat(in)
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}

type MarketActiveArgs struct {
	MarketID uint64
	Active   bool
}

func (a *MarketActiveArgs) UnmarshalTinyJSON(in *jlexer.Lexer) {
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "marketId":
			a.MarketID = in.Uint64()
		case "active":
			a.Active = in.Bool()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}

type ObservePriceArgs struct {
	Asset      string
	PriceMicro uint64
}

func (a *ObservePriceArgs) UnmarshalTinyJSON(in *jlexer.Lexer) {
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "asset":
			a.Asset = in.String()
		case "priceMicro":
			a.PriceMicro = in.Uint64()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}

type BondPurchaseArgs struct {
	MarketID    uint64
	Amount      float64
	VestingSecs int64
}

func (a *BondPurchaseArgs) UnmarshalTinyJSON(in *jlexer.Lexer) {
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "marketId":
			a.MarketID = in.Uint64()
		case "amount":
			a.Amount = lexFloat(in)
		case "vestingSecs":
			a.VestingSecs = in.Int64()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}

type BondClaimArgs struct {
	BondID uint64
}

func (a *BondClaimArgs) UnmarshalTinyJSON(in *jlexer.Lexer) {
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "bondId":
			a.BondID = in.Uint64()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}

type SaleConfigureArgs struct {
	StartPriceMicro uint64
	EndPriceMicro   uint64
	Supply          float64
	Active          bool
}

func (a *SaleConfigureArgs) UnmarshalTinyJSON(in *jlexer.Lexer) {
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "startPriceMicro":
			a.StartPriceMicro = in.Uint64()
		case "endPriceMicro":
			a.EndPriceMicro = in.Uint64()
		case "supply":
			a.Supply = lexFloat(in)
		case "active":
			a.Active = in.Bool()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}

// -----------------------------------------------------------------------------
// Response structs
// -----------------------------------------------------------------------------

// BalanceResponse answers the point-in-time balance/supply queries.
type BalanceResponse struct {
	Amount float64
}

func (v BalanceResponse) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"amount":`)
	writeFloat(w, v.Amount)
	w.RawByte('}')
}

// StatusResponse answers the proposal state query with the derived state.
type StatusResponse struct {
	Status string
}

func (v StatusResponse) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"status":`)
	w.String(v.Status)
	w.RawByte('}')
}

// PurchaseResponse reports sale/bond results including any refund.
type PurchaseResponse struct {
	Tokens float64
	Cost   float64
	Refund float64
}

func (v PurchaseResponse) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"tokens":`)
	writeFloat(w, v.Tokens)
	w.RawString(`,"cost":`)
	writeFloat(w, v.Cost)
	w.RawString(`,"refund":`)
	writeFloat(w, v.Refund)
	w.RawByte('}')
}
