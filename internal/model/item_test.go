package model

import "testing"

func validItem() Item {
	return Item{
		Name:        "Miffy plush",
		Category:    CategoryGacha,
		BuyPlatform: PlatformStore,
		BuyDate:     "2026-08-01",
		BuyPrice:    500,
	}
}

func TestValidateAcceptsValidItem(t *testing.T) {
	if err := validItem().Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	// Blank dates and an empty sell site are fine.
	it := validItem()
	it.BuyDate = ""
	it.SellSite = ""
	if err := it.Validate(); err != nil {
		t.Errorf("unexpected error for blank optionals: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Item)
	}{
		{"missing name", func(i *Item) { i.Name = "" }},
		{"unknown category", func(i *Item) { i.Category = "vinyl" }},
		{"unknown platform", func(i *Item) { i.BuyPlatform = "ebay" }},
		{"unknown sell site", func(i *Item) { i.SellSite = "craigslist" }},
		{"negative buy price", func(i *Item) { i.BuyPrice = -1 }},
		{"negative sell price", func(i *Item) { i.SellPrice = -1 }},
		{"negative shipping", func(i *Item) { i.Shipping = -1 }},
		{"malformed buy date", func(i *Item) { i.BuyDate = "08/01/2026" }},
		{"malformed sell date", func(i *Item) { i.SellDate = "yesterday" }},
	}

	for _, tc := range cases {
		it := validItem()
		tc.mutate(&it)
		if err := it.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestSold(t *testing.T) {
	it := validItem()
	if it.Sold() {
		t.Error("item without sell site must not count as sold")
	}
	it.SellPrice = 800
	if it.Sold() {
		t.Error("tentative sell price must not count as sold")
	}
	it.SellSite = SiteMercari
	if !it.Sold() {
		t.Error("item with sell site must count as sold")
	}
}

func TestFeeRate(t *testing.T) {
	if !FeeRate(SiteYahoo).Equal(SellFees[SiteYahoo]) {
		t.Error("expected yahoo fee rate from schedule")
	}
	if !FeeRate("unknown").IsZero() {
		t.Error("expected zero rate for unknown site")
	}
}
