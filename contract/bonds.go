package contract

import (
	"fmt"

	"kodama_protocol/sdk"

	"github.com/holiman/uint256"
)

// Bond depository: users deposit a platform asset and receive a discounted,
// vesting-locked payout of the protocol token. Payouts are priced off a
// time-weighted average over the observation ring, with per-bond, per-epoch
// and global debt ceilings.

// twapPrice averages the ring observations inside the window, falling back
// to the newest observation when the window is empty. Aborts when the asset
// was never observed.
func twapPrice(asset sdk.Asset, windowSecs, now int64) uint64 {
	head := priceRingHead(asset)
	if head == 0 {
		abortState("no price observations for " + asset.String())
	}
	slots := head
	if slots > TwapRingSize {
		slots = TwapRingSize
	}
	var sum, count uint64
	var newest *PriceObservation
	for i := uint64(0); i < slots; i++ {
		o := loadObservation(asset, (head-1-i)%TwapRingSize)
		if o == nil {
			continue
		}
		if newest == nil {
			newest = o
		}
		if o.Ts >= now-windowSecs {
			sum += o.PriceMicro
			count++
		}
	}
	if count > 0 {
		return sum / count
	}
	return newest.PriceMicro
}

// rollBondEpoch resets the market's bonded accumulator once its epoch
// window passed.
func rollBondEpoch(m *BondMarket, p *Params, now int64) {
	if m.LastEpochReset == 0 {
		m.LastEpochReset = now
		return
	}
	elapsed := now - m.LastEpochReset
	if elapsed < p.BondEpochSecs {
		return
	}
	m.EpochBonded = 0
	m.LastEpochReset += (elapsed / p.BondEpochSecs) * p.BondEpochSecs
}

// bondPayout prices a deposit: convert to protocol tokens at the TWAP
// ratio, apply the market discount, then the quadratic vesting boost.
func bondPayout(m *BondMarket, p *Params, deposit Amount, vestingSecs, now int64) Amount {
	depositPrice := twapPrice(m.DepositAsset, p.TwapWindowSecs, now)
	tokenPrice := twapPrice(AssetProtocolToken, p.TwapWindowSecs, now)
	if tokenPrice == 0 {
		abortState("protocol token price is zero")
	}

	base := mulDivAmount(deposit, Amount(depositPrice), Amount(tokenPrice))
	payout := mulDivAmount(base, BpsDenom+Amount(m.DiscountBps), BpsDenom)

	// boost = beta * (vesting / maxVesting)^2, in bps
	num := u256(m.BetaBps)
	num.Mul(num, u256(uint64(vestingSecs)))
	num.Mul(num, u256(uint64(vestingSecs)))
	den := u256(uint64(m.MaxVestingSecs))
	den.Mul(den, den)
	boostBps := new(uint256.Int).Div(num, den).Uint64()

	return mulDivAmount(payout, BpsDenom+Amount(boostBps), BpsDenom)
}

// -----------------------------------------------------------------------------
// Exports
// -----------------------------------------------------------------------------

// BondMarketCreate opens a depository market for one deposit asset.
//
//go:wasmexport bond_market_create
func BondMarketCreate(payload *string) *string {
	var args MarketCreateArgs
	decodePayload(payload, &args, "bond_market_create")

	loadParams()
	requireConfigAuthority()
	now := nowUnix()

	if !isValidAsset(args.Asset) {
		abortValidation("unsupported deposit asset: " + args.Asset)
	}
	if args.DiscountBps >= BpsDenom {
		abortValidation("discount must stay below 10000 bps")
	}
	if args.MinVestingSecs <= 0 || args.MaxVestingSecs < args.MinVestingSecs {
		abortValidation("vesting bounds must satisfy 0 < min <= max")
	}
	maxPayout := FloatToAmount(args.MaxPayout)
	budget := FloatToAmount(args.EpochBudget)
	if maxPayout <= 0 || budget <= 0 {
		abortValidation("max payout and epoch budget must be positive")
	}

	id := bondMarketCount() + 1
	saveBondMarket(&BondMarket{
		ID:             id,
		DepositAsset:   sdk.Asset(args.Asset),
		DiscountBps:    args.DiscountBps,
		BetaBps:        args.BetaBps,
		MinVestingSecs: args.MinVestingSecs,
		MaxVestingSecs: args.MaxVestingSecs,
		MaxPayout:      maxPayout,
		EpochBudget:    budget,
		LastEpochReset: now,
		Active:         true,
	})
	setCount(kBondMarketCount, id)

	emitMarketCreated(id, args.Asset, args.DiscountBps, args.BetaBps)
	return strptr(fmt.Sprintf("market %d created", id))
}

// BondMarketSetActive toggles whether a market accepts deposits.
//
//go:wasmexport bond_market_set_active
func BondMarketSetActive(payload *string) *string {
	var args MarketActiveArgs
	decodePayload(payload, &args, "bond_market_set_active")

	loadParams()
	requireConfigAuthority()

	m := loadBondMarket(args.MarketID)
	m.Active = args.Active
	saveBondMarket(m)
	return strptr("market updated")
}

// BondObservePrice writes one slot of the asset's observation ring;
// distributor only.
//
//go:wasmexport bond_observe_price
func BondObservePrice(payload *string) *string {
	var args ObservePriceArgs
	decodePayload(payload, &args, "bond_observe_price")

	loadParams()
	requireRole(getSenderAddress(), RoleDistributor)
	now := nowUnix()

	if args.PriceMicro == 0 {
		abortValidation("price must be positive")
	}
	if !isValidAsset(args.Asset) && sdk.Asset(args.Asset) != AssetProtocolToken {
		abortValidation("unknown asset: " + args.Asset)
	}

	pushObservation(sdk.Asset(args.Asset), &PriceObservation{PriceMicro: args.PriceMicro, Ts: now})
	emitPriceObserved(args.Asset, args.PriceMicro, now)
	return strptr("price observed")
}

// BondPurchase draws the deposit, prices the payout and opens the vesting
// position. The deposit goes straight to the treasury.
//
//go:wasmexport bond_purchase
func BondPurchase(payload *string) *string {
	defer enterGuard("bonds")()

	var args BondPurchaseArgs
	decodePayload(payload, &args, "bond_purchase")

	p := loadParams()
	caller := getSenderAddress()
	now := nowUnix()

	amount := FloatToAmount(args.Amount)
	if amount <= 0 {
		abortValidation("deposit amount must be positive")
	}

	m := loadBondMarket(args.MarketID)
	if !m.Active {
		abortState("market is inactive")
	}
	if args.VestingSecs < m.MinVestingSecs || args.VestingSecs > m.MaxVestingSecs {
		abortValidation(fmt.Sprintf("vesting must lie in [%d, %d]", m.MinVestingSecs, m.MaxVestingSecs))
	}
	rollBondEpoch(m, p, now)

	payout := bondPayout(m, p, amount, args.VestingSecs, now)
	if payout <= 0 {
		abortValidation("deposit too small for any payout")
	}
	if payout > m.MaxPayout {
		abortInvariant(fmt.Sprintf("payout exceeds per-bond cap of %f", AmountToFloat(m.MaxPayout)))
	}
	if m.EpochBonded+payout > m.EpochBudget {
		abortInvariant("market epoch budget exhausted")
	}
	debt := loadBondDebt()
	if debt+payout > p.MaxDebt {
		abortInvariant("global debt ceiling reached")
	}

	drawFunds(amount, m.DepositAsset)
	sdk.TokenTransfer(treasuryAddress(), AmountToInt64(amount), m.DepositAsset)

	m.EpochBonded += payout
	saveBondMarket(m)

	id := bondCount() + 1
	saveBond(&Bond{
		ID:          id,
		MarketID:    m.ID,
		Owner:       caller,
		Payout:      payout,
		VestingSecs: args.VestingSecs,
		DepositedAt: now,
	})
	setCount(kBondCount, id)
	saveBondDebt(debt + payout)

	emitBondCreated(id, caller.String(), amount, payout, debt+payout)
	return strptr(fmt.Sprintf("bond %d: %f vesting over %ds", id, AmountToFloat(payout), args.VestingSecs))
}

// BondClaim mints whatever vested linearly since the last claim.
//
//go:wasmexport bond_claim
func BondClaim(payload *string) *string {
	defer enterGuard("bonds")()

	var args BondClaimArgs
	decodePayload(payload, &args, "bond_claim")

	p := loadParams()
	caller := getSenderAddress()
	now := nowUnix()

	b := loadBond(args.BondID)
	if b.Owner != caller {
		abortAuth("not the bond owner")
	}

	vested := b.Payout
	elapsed := now - b.DepositedAt
	if elapsed < b.VestingSecs {
		vested = mulDivAmount(b.Payout, Amount(elapsed), Amount(b.VestingSecs))
	}
	claimable := vested - b.Claimed
	if claimable <= 0 {
		return strptr("nothing newly vested")
	}

	b.Claimed += claimable
	saveBond(b)
	debt := loadBondDebt() - claimable
	if debt < 0 {
		debt = 0
	}
	saveBondDebt(debt)

	mintProtocolToken(caller, claimable, p, now)

	emitBondClaimed(b.ID, claimable, debt)
	return strptr(fmt.Sprintf("claimed %f", AmountToFloat(claimable)))
}
