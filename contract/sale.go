package contract

import (
	"fmt"

	"kodama_protocol/sdk"

	"github.com/holiman/uint256"
)

// Primary sale on a linear bonding curve: the token price climbs from the
// start to the end price as the fixed sale supply sells out. A purchase
// solves the curve integral in closed form for the exact token quantity the
// deposit buys at the current position.

func loadSale() *SaleState {
	ptr := sdk.StateGetObject(singletonKey(kSale))
	if ptr == nil || *ptr == "" {
		return &SaleState{}
	}
	return decodeSale([]byte(*ptr))
}

func saveSale(s *SaleState) {
	sdk.StateSetObject(singletonKey(kSale), encodeSale(s))
}

// saleTokensFor solves for t in the curve integral
//
//	cost = p0*t + dp*(2*s*t + t^2) / (2*S)
//
// via the quadratic formula: t = (sqrt(b^2 + 2*dp*S*C) - b) / dp with
// b = S*p0 + dp*s and C the deposit lifted to micro-USD times the amount
// scale. All terms are u256, units are Amount ticks and micro-USD.
func saleTokensFor(deposit, sold Amount, p *Params) Amount {
	if p.SaleEndPriceMicro <= p.SaleStartPriceMicro {
		abortState("sale curve not configured")
	}
	dp := u256(p.SaleEndPriceMicro - p.SaleStartPriceMicro)
	supply := amountU256(p.SaleSupply)

	b := new(uint256.Int).Mul(supply, u256(p.SaleStartPriceMicro))
	b.Add(b, new(uint256.Int).Mul(dp, amountU256(sold)))

	c := new(uint256.Int).Mul(amountU256(deposit), u256(MicroUSD))

	disc := new(uint256.Int).Mul(b, b)
	term := new(uint256.Int).Mul(dp, supply)
	term.Mul(term, c)
	term.Mul(term, u256(2))
	disc.Add(disc, term)
	disc.Sqrt(disc)

	t := clampSub(disc, b)
	return u256Amount(t.Div(t, dp))
}

// saleCostFor inverts the curve: the exact reserve cost of t tokens starting
// at position s, rounded up so the contract never undercharges.
func saleCostFor(t, sold Amount, p *Params) Amount {
	dp := u256(p.SaleEndPriceMicro - p.SaleStartPriceMicro)
	supply := amountU256(p.SaleSupply)
	tt := amountU256(t)

	// dp*t^2 + 2*(S*p0 + dp*s)*t
	num := new(uint256.Int).Mul(dp, tt)
	num.Mul(num, tt)
	b := new(uint256.Int).Mul(supply, u256(p.SaleStartPriceMicro))
	b.Add(b, new(uint256.Int).Mul(dp, amountU256(sold)))
	b.Mul(b, tt)
	b.Mul(b, u256(2))
	num.Add(num, b)

	den := new(uint256.Int).Mul(supply, u256(MicroUSD))
	den.Mul(den, u256(2))

	cost := new(uint256.Int).Div(num, den)
	rem := new(uint256.Int).Mod(new(uint256.Int).Set(num), den)
	if !rem.IsZero() {
		cost.Add(cost, u256(1))
	}
	return u256Amount(cost)
}

// -----------------------------------------------------------------------------
// Exports
// -----------------------------------------------------------------------------

// SaleConfigure sets the curve endpoints and supply and flips the switch.
//
//go:wasmexport sale_configure
func SaleConfigure(payload *string) *string {
	var args SaleConfigureArgs
	decodePayload(payload, &args, "sale_configure")

	p := loadParams()
	requireConfigAuthority()

	sale := loadSale()
	if args.StartPriceMicro != 0 || args.EndPriceMicro != 0 || args.Supply != 0 {
		if sale.Sold > 0 {
			abortState("curve cannot change after the first purchase")
		}
		if args.StartPriceMicro == 0 || args.EndPriceMicro <= args.StartPriceMicro {
			abortValidation("require 0 < start price < end price")
		}
		supply := FloatToAmount(args.Supply)
		if supply <= 0 {
			abortValidation("sale supply must be positive")
		}
		p.SaleStartPriceMicro = args.StartPriceMicro
		p.SaleEndPriceMicro = args.EndPriceMicro
		p.SaleSupply = supply
		saveParams(p)
	}
	sale.Active = args.Active
	saveSale(sale)

	if args.Active {
		return strptr("sale active")
	}
	return strptr("sale inactive")
}

// SaleBuy draws the reserve deposit and mints the tokens the curve grants
// at the current position, refunding whatever a partial fill leaves over.
//
//go:wasmexport sale_buy
func SaleBuy(payload *string) *string {
	defer enterGuard("sale")()

	var args AmountArgs
	decodePayload(payload, &args, "sale_buy")

	p := loadParams()
	caller := getSenderAddress()
	now := nowUnix()

	deposit := FloatToAmount(args.Amount)
	if deposit <= 0 {
		abortValidation("deposit must be positive")
	}

	sale := loadSale()
	if !sale.Active {
		abortState("sale is not active")
	}
	remaining := p.SaleSupply - sale.Sold
	if remaining <= 0 {
		abortState("sale sold out")
	}

	tokens := saleTokensFor(deposit, sale.Sold, p)
	if tokens <= 0 {
		abortValidation("deposit too small for any tokens")
	}

	cost := deposit
	var refund Amount
	if tokens > remaining {
		tokens = remaining
		cost = saleCostFor(tokens, sale.Sold, p)
		if cost > deposit {
			cost = deposit
		}
		refund = deposit - cost
	}

	drawFunds(deposit, p.ReserveAsset)
	if refund > 0 {
		sdk.TokenTransfer(caller, AmountToInt64(refund), p.ReserveAsset)
	}
	sdk.TokenTransfer(treasuryAddress(), AmountToInt64(cost), p.ReserveAsset)

	sale.Sold += tokens
	saveSale(sale)
	mintProtocolToken(caller, tokens, p, now)

	emitSaleBuy(caller.String(), cost, tokens, sale.Sold)
	return strptr(toJSON(PurchaseResponse{
		Tokens: AmountToFloat(tokens),
		Cost:   AmountToFloat(cost),
		Refund: AmountToFloat(refund),
	}))
}

// SaleStatus reports the running sold counter.
//
//go:wasmexport sale_status
func SaleStatus(_ *string) *string {
	loadParams()
	sale := loadSale()
	return strptr(fmt.Sprintf(`{"sold":%f,"active":%t}`, AmountToFloat(sale.Sold), sale.Active))
}
