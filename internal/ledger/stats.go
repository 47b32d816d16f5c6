package ledger

import (
	"github.com/shopspring/decimal"

	"furima/internal/model"
)

// Expected-profit policy: every unsold item is assumed to sell at the
// collection's average sell/buy multiplier (defaultMultiplier when nothing
// has sold yet) minus a flat assumed commission, shipping ignored.
var (
	defaultMultiplier = decimal.NewFromFloat(1.5)
	assumedFeeRate    = decimal.NewFromFloat(0.10)
)

// PlatformRate is the average realized rate of sold items bought on one
// platform. Platforms with no sold items report zero, they are not omitted.
type PlatformRate struct {
	Platform string  `json:"platform"`
	Rate     float64 `json:"rate"`
}

// SiteCategories is the per-category item count for one marketplace,
// labels and counts aligned by index in first-seen order.
type SiteCategories struct {
	Site   string   `json:"site"`
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}

// Stats is the full read-only summary over the collection.
type Stats struct {
	ItemCount      int              `json:"item_count"`
	TotalProfit    float64          `json:"total_profit"`
	ExpectedProfit float64          `json:"expected_profit"`
	PlatformRates  []PlatformRate   `json:"platform_rates"`
	SiteCategories []SiteCategories `json:"site_categories"`
}

// Summarize computes all aggregates in one pass-per-aggregate over the live
// collection. Nothing is cached; at personal-inventory scale a full pass is
// cheap and always correct.
func Summarize(items []model.Item) Stats {
	return Stats{
		ItemCount:      len(items),
		TotalProfit:    TotalProfit(items),
		ExpectedProfit: ExpectedProfit(items),
		PlatformRates:  PlatformRates(items),
		SiteCategories: SiteCategoryCounts(items),
	}
}

// TotalProfit sums realized profit over sold items. Unsold items contribute
// nothing regardless of their tentative figures.
func TotalProfit(items []model.Item) float64 {
	total := decimal.Zero
	for _, it := range items {
		if it.Sold() {
			total = total.Add(decimal.NewFromFloat(it.Profit))
		}
	}
	return total.InexactFloat64()
}

// ExpectedProfit forecasts the profit of selling all unsold stock under the
// documented policy: estimated sale at the historical average multiplier,
// assumed flat commission, no shipping.
func ExpectedProfit(items []model.Item) float64 {
	multiplier := avgMultiplier(items)

	expected := decimal.Zero
	for _, it := range items {
		if it.Sold() {
			continue
		}
		buy := decimal.NewFromFloat(it.BuyPrice)
		estimatedSell := buy.Mul(multiplier)
		estimatedFee := estimatedSell.Mul(assumedFeeRate)
		expected = expected.Add(estimatedSell.Sub(buy).Sub(estimatedFee))
	}
	return expected.Round(0).InexactFloat64()
}

// avgMultiplier is the average sell/buy price ratio across sold items, or
// defaultMultiplier when nothing has sold. Sold items with a non-positive
// buy price are treated as bought for one unit, matching the ratio the
// original figures were built on.
func avgMultiplier(items []model.Item) decimal.Decimal {
	sum := decimal.Zero
	n := 0
	for _, it := range items {
		if !it.Sold() {
			continue
		}
		buy := decimal.NewFromFloat(it.BuyPrice)
		if buy.Sign() <= 0 {
			buy = decimal.NewFromInt(1)
		}
		sum = sum.Add(decimal.NewFromFloat(it.SellPrice).Div(buy))
		n++
	}
	if n == 0 {
		return defaultMultiplier
	}
	return sum.Div(decimal.NewFromInt(int64(n)))
}

// PlatformRates averages the rate of sold items per acquisition platform,
// in first-seen collection order. A platform present only through unsold
// items still appears, with rate zero.
func PlatformRates(items []model.Item) []PlatformRate {
	var order []string
	sums := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	seen := make(map[string]bool)

	for _, it := range items {
		p := it.BuyPlatform
		if p == "" {
			continue
		}
		if !seen[p] {
			seen[p] = true
			order = append(order, p)
			sums[p] = decimal.Zero
		}
		if it.Sold() {
			sums[p] = sums[p].Add(decimal.NewFromFloat(it.Rate))
			counts[p]++
		}
	}

	rates := make([]PlatformRate, 0, len(order))
	for _, p := range order {
		rate := 0.0
		if counts[p] > 0 {
			rate = sums[p].Div(decimal.NewFromInt(int64(counts[p]))).Round(1).InexactFloat64()
		}
		rates = append(rates, PlatformRate{Platform: p, Rate: rate})
	}
	return rates
}

// SiteCategoryCounts counts sold items per category for each marketplace,
// sites and category labels both in first-seen order.
func SiteCategoryCounts(items []model.Item) []SiteCategories {
	var order []string
	bySite := make(map[string]*SiteCategories)

	for _, it := range items {
		if !it.Sold() {
			continue
		}
		sc, ok := bySite[it.SellSite]
		if !ok {
			sc = &SiteCategories{Site: it.SellSite}
			bySite[it.SellSite] = sc
			order = append(order, it.SellSite)
		}

		found := false
		for i, label := range sc.Labels {
			if label == it.Category {
				sc.Counts[i]++
				found = true
				break
			}
		}
		if !found {
			sc.Labels = append(sc.Labels, it.Category)
			sc.Counts = append(sc.Counts, 1)
		}
	}

	out := make([]SiteCategories, 0, len(order))
	for _, site := range order {
		out = append(out, *bySite[site])
	}
	return out
}
