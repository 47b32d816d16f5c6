// Package ledger holds the flip-ledger's domain rules: how an item's fee,
// profit and rate derive from its buy/sell figures, how the collection rolls
// up into summary statistics, and how a resale price is suggested from
// comparable history. Everything here is pure; storage and transport live
// elsewhere.
package ledger

import (
	"github.com/shopspring/decimal"

	"furima/internal/model"
)

// Derived holds the three computed fields of an item. Fee and Profit are in
// whole currency units, Rate is profit as a percentage of the buy price with
// one decimal.
type Derived struct {
	Fee    float64
	Profit float64
	Rate   float64
}

// Compute derives fee, profit and rate from the raw buy/sell figures.
// It is the single source of truth for these fields: both the create and the
// update path must go through it, and nothing else may set them.
//
// An item without a sell site contributes nothing, whatever its tentative
// sell price or shipping say. A sell price of zero on a chosen site yields a
// large negative profit, which is correct (a free or loss sale).
func Compute(buyPrice, sellPrice, shipping float64, sellSite string) Derived {
	if sellSite == "" {
		return Derived{}
	}

	buy := decimal.NewFromFloat(buyPrice)
	sell := decimal.NewFromFloat(sellPrice)
	ship := decimal.NewFromFloat(shipping)

	fee := sell.Mul(model.FeeRate(sellSite)).Round(0)
	profit := sell.Sub(buy).Sub(ship).Sub(fee).Round(0)

	var rate decimal.Decimal
	if buyPrice > 0 {
		rate = profit.Div(buy).Mul(decimal.NewFromInt(100)).Round(1)
	}

	return Derived{
		Fee:    fee.InexactFloat64(),
		Profit: profit.InexactFloat64(),
		Rate:   rate.InexactFloat64(),
	}
}

// Apply recomputes an item's derived fields in place.
func Apply(item *model.Item) {
	d := Compute(item.BuyPrice, item.SellPrice, item.Shipping, item.SellSite)
	item.Fee = d.Fee
	item.Profit = d.Profit
	item.Rate = d.Rate
}
