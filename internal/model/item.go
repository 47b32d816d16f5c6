package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Item is one tracked unit of resale inventory. Fee, Profit and Rate are
// derived from the buy/sell figures and must never be set directly;
// ledger.Compute is the only producer.
type Item struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	BuyPlatform string  `json:"buy_platform"`
	BuyDate     string  `json:"buy_date"`
	BuyPrice    float64 `json:"buy_price"`
	SellSite    string  `json:"sell_site"`
	SellDate    string  `json:"sell_date"`
	SellPrice   float64 `json:"sell_price"`
	Shipping    float64 `json:"shipping"`
	Fee         float64 `json:"fee"`
	Profit      float64 `json:"profit"`
	Rate        float64 `json:"rate"`
	ImageMime   string  `json:"image_mime,omitempty"`
}

// Sold reports whether the item has actually been sold on a marketplace.
// A tentative sell price without a site does not count.
func (i Item) Sold() bool {
	return i.SellSite != ""
}

// Item categories.
const (
	CategoryGacha      = "gacha"
	CategoryStickers   = "stickers"
	CategoryClothing   = "clothing"
	CategoryStationery = "stationery"
	CategoryMisc       = "misc"
)

// Acquisition platforms.
const (
	PlatformStore      = "store"
	PlatformShein      = "shein"
	PlatformTemu       = "temu"
	PlatformAliexpress = "aliexpress"
	Platform100Yen     = "100yen"
)

// Marketplace sites.
const (
	SiteRakuma  = "rakuma"
	SiteYahoo   = "yahoo"
	SiteMercari = "mercari"
)

// Categories lists all valid item categories.
var Categories = []string{
	CategoryGacha, CategoryStickers, CategoryClothing, CategoryStationery, CategoryMisc,
}

// Platforms lists all valid acquisition platforms.
var Platforms = []string{
	PlatformStore, PlatformShein, PlatformTemu, PlatformAliexpress, Platform100Yen,
}

// Sites lists all valid marketplace sites.
var Sites = []string{SiteRakuma, SiteYahoo, SiteMercari}

// SellFees maps each marketplace to its commission rate, as a fraction of
// the sell price. Process-wide static configuration.
var SellFees = map[string]decimal.Decimal{
	SiteRakuma:  decimal.NewFromFloat(0.10),
	SiteYahoo:   decimal.NewFromFloat(0.05),
	SiteMercari: decimal.NewFromFloat(0.10),
}

// FeeRate returns the commission rate for a marketplace, or zero for an
// unrecognized one.
func FeeRate(site string) decimal.Decimal {
	if rate, ok := SellFees[site]; ok {
		return rate
	}
	return decimal.Zero
}

// DateLayout is the calendar date format used throughout (buy/sell dates).
const DateLayout = "2006-01-02"

// Validate checks all client-settable fields. Derived fields are ignored.
func (i Item) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("name required")
	}
	if !contains(Categories, i.Category) {
		return fmt.Errorf("invalid category %q", i.Category)
	}
	if !contains(Platforms, i.BuyPlatform) {
		return fmt.Errorf("invalid buy platform %q", i.BuyPlatform)
	}
	if i.SellSite != "" && !contains(Sites, i.SellSite) {
		return fmt.Errorf("invalid sell site %q", i.SellSite)
	}
	if i.BuyPrice < 0 {
		return fmt.Errorf("buy price must not be negative")
	}
	if i.SellPrice < 0 {
		return fmt.Errorf("sell price must not be negative")
	}
	if i.Shipping < 0 {
		return fmt.Errorf("shipping must not be negative")
	}
	if err := validDate(i.BuyDate); err != nil {
		return err
	}
	if err := validDate(i.SellDate); err != nil {
		return err
	}
	return nil
}

// validDate accepts a blank date or one in DateLayout form.
func validDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("invalid date %q", s)
	}
	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
