package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"furima/internal/model"
)

// Suggestion policy. With at least minComparables sold items in the same
// category, the target rate is the median of their realized rates, floored
// at minTargetRate. With fewer, the cold-start constants apply. The
// suggested price is rounded to the nearest priceStep, and the expected
// figures assume suggestFeeRate commission with no shipping.
const (
	minComparables = 3
	minTargetRate  = 25.0
	coldStartRate  = 40.0
	priceStep      = 10
)

var (
	coldStartMultiplier = decimal.NewFromFloat(1.8)
	suggestFeeRate      = decimal.NewFromFloat(0.08)
)

// Suggestion is a heuristic resale-price recommendation derived from
// comparable sale history. No model is consulted; the computation is fully
// deterministic.
type Suggestion struct {
	SuggestedPrice float64 `json:"suggested_price"`
	ExpectedProfit float64 `json:"expected_profit"`
	ExpectedRate   float64 `json:"expected_rate"`
	Analysis       string  `json:"analysis"`
	Advice         string  `json:"advice"`
}

// Suggest recommends a resale price for an item of the given category and
// buy price, based on sold items of the same category in history.
func Suggest(category string, buyPrice float64, history []model.Item) Suggestion {
	var comparables []model.Item
	for _, it := range history {
		if it.Sold() && it.Category == category {
			comparables = append(comparables, it)
		}
	}

	buy := decimal.NewFromFloat(buyPrice)
	var suggested decimal.Decimal
	if len(comparables) >= minComparables {
		target := medianRate(comparables)
		if target < minTargetRate {
			target = minTargetRate
		}
		factor := decimal.NewFromFloat(1 + target/100)
		suggested = roundToStep(buy.Mul(factor))
	} else {
		suggested = roundToStep(buy.Mul(coldStartMultiplier))
	}

	fee := suggested.Mul(suggestFeeRate)
	profit := suggested.Sub(buy).Sub(fee).Round(0)

	var rate decimal.Decimal
	if buyPrice > 0 {
		rate = profit.Div(buy).Mul(decimal.NewFromInt(100)).Round(1)
	}

	s := Suggestion{
		SuggestedPrice: suggested.InexactFloat64(),
		ExpectedProfit: profit.InexactFloat64(),
		ExpectedRate:   rate.InexactFloat64(),
	}
	s.Analysis = analysis(category, comparables)
	s.Advice = advice(s.ExpectedRate, comparables)
	return s
}

// medianRate is the median realized rate across comparables.
func medianRate(comparables []model.Item) float64 {
	rates := make([]float64, len(comparables))
	for i, it := range comparables {
		rates[i] = it.Rate
	}
	sort.Float64s(rates)
	mid := len(rates) / 2
	if len(rates)%2 == 1 {
		return rates[mid]
	}
	return (rates[mid-1] + rates[mid]) / 2
}

// roundToStep rounds a price to the nearest priceStep currency units.
func roundToStep(price decimal.Decimal) decimal.Decimal {
	step := decimal.NewFromInt(priceStep)
	return price.Div(step).Round(0).Mul(step)
}

// analysis summarizes the comparable sample: size, average multiplier and
// rate, and the observed price range once the sample is large enough.
func analysis(category string, comparables []model.Item) string {
	if len(comparables) == 0 {
		return fmt.Sprintf("No sale history for category %q yet; the price is derived from the default cold-start margin.", category)
	}

	multiplier := avgMultiplier(comparables)
	rateSum := decimal.Zero
	minPrice, maxPrice := comparables[0].SellPrice, comparables[0].SellPrice
	for _, it := range comparables {
		rateSum = rateSum.Add(decimal.NewFromFloat(it.Rate))
		if it.SellPrice < minPrice {
			minPrice = it.SellPrice
		}
		if it.SellPrice > maxPrice {
			maxPrice = it.SellPrice
		}
	}
	avgRate := rateSum.Div(decimal.NewFromInt(int64(len(comparables)))).Round(1)

	msg := fmt.Sprintf("Based on %d past sales in category %q: items sold at %s times their buy price on average, with an average rate of %s%%.",
		len(comparables), category, multiplier.Round(1), avgRate)
	if len(comparables) >= minComparables {
		msg += fmt.Sprintf(" Observed price range: %.0f-%.0f.", minPrice, maxPrice)
	}
	return msg
}

// advice maps the expected rate to a fixed tiered message and appends the
// average days-to-sale when comparable dates allow computing it.
func advice(expectedRate float64, comparables []model.Item) string {
	var msg string
	switch {
	case expectedRate > 50:
		msg = "High margin expected. List on several marketplaces at once to sell faster, and photograph the item in good light."
	case expectedRate > 30:
		msg = "A solid profit is likely. Describe the item's condition in detail and check what similar listings charge."
	case expectedRate > 10:
		msg = "Reasonable margin. Including shipping in the price can lift the purchase rate; put searchable keywords in the title."
	default:
		msg = "The margin is thin. Consider a slightly higher price, or bundle related items to add value."
	}

	if days, ok := avgDaysToSale(comparables); ok {
		msg += fmt.Sprintf(" Items in this category sell in about %d days on average.", days)
	}
	return msg
}

// avgDaysToSale averages the buy-to-sell span across comparables carrying
// two parseable dates. Unparseable dates are skipped, not fatal.
func avgDaysToSale(comparables []model.Item) (int, bool) {
	totalDays := 0
	counted := 0
	for _, it := range comparables {
		if it.BuyDate == "" || it.SellDate == "" {
			continue
		}
		bought, err := time.Parse(model.DateLayout, it.BuyDate)
		if err != nil {
			continue
		}
		sold, err := time.Parse(model.DateLayout, it.SellDate)
		if err != nil {
			continue
		}
		totalDays += int(sold.Sub(bought).Hours() / 24)
		counted++
	}
	if counted == 0 || totalDays <= 0 {
		return 0, false
	}
	return int(float64(totalDays)/float64(counted) + 0.5), true
}
