package ledger

import (
	"testing"

	"furima/internal/model"
)

func TestComputeSoldItem(t *testing.T) {
	// 500 buy, 800 sell on a 10% site: fee 80, profit 220, rate 44.0.
	d := Compute(500, 800, 0, model.SiteMercari)
	if d.Fee != 80 {
		t.Errorf("expected fee 80, got %v", d.Fee)
	}
	if d.Profit != 220 {
		t.Errorf("expected profit 220, got %v", d.Profit)
	}
	if d.Rate != 44.0 {
		t.Errorf("expected rate 44.0, got %v", d.Rate)
	}
}

func TestComputeUnsoldItemIsZero(t *testing.T) {
	// A tentative sell price must not produce realized figures.
	d := Compute(500, 800, 200, "")
	if d.Fee != 0 || d.Profit != 0 || d.Rate != 0 {
		t.Errorf("expected all zero for unsold item, got %+v", d)
	}
}

func TestComputeWithShipping(t *testing.T) {
	d := Compute(500, 800, 100, model.SiteMercari)
	if d.Profit != 120 {
		t.Errorf("expected profit 120, got %v", d.Profit)
	}
	if d.Rate != 24.0 {
		t.Errorf("expected rate 24.0, got %v", d.Rate)
	}
}

func TestComputeLowerFeeSite(t *testing.T) {
	// Yahoo charges 5%.
	d := Compute(500, 800, 0, model.SiteYahoo)
	if d.Fee != 40 {
		t.Errorf("expected fee 40, got %v", d.Fee)
	}
	if d.Profit != 260 {
		t.Errorf("expected profit 260, got %v", d.Profit)
	}
}

func TestComputeUnknownSiteNoFee(t *testing.T) {
	d := Compute(500, 800, 0, "some-new-site")
	if d.Fee != 0 {
		t.Errorf("expected fee 0 for unknown site, got %v", d.Fee)
	}
	if d.Profit != 300 {
		t.Errorf("expected profit 300, got %v", d.Profit)
	}
}

func TestComputeNegativeProfitPreserved(t *testing.T) {
	d := Compute(1000, 500, 100, model.SiteRakuma)
	// fee 50, profit 500-1000-100-50 = -650.
	if d.Profit != -650 {
		t.Errorf("expected profit -650, got %v", d.Profit)
	}
	if d.Rate != -65.0 {
		t.Errorf("expected rate -65.0, got %v", d.Rate)
	}
}

func TestComputeZeroSellPriceLossSale(t *testing.T) {
	d := Compute(800, 0, 0, model.SiteMercari)
	if d.Profit != -800 {
		t.Errorf("expected profit -800, got %v", d.Profit)
	}
}

func TestComputeZeroBuyPriceRate(t *testing.T) {
	d := Compute(0, 800, 0, model.SiteMercari)
	if d.Rate != 0 {
		t.Errorf("expected rate 0 for zero buy price, got %v", d.Rate)
	}
	if d.Profit != 720 {
		t.Errorf("expected profit 720, got %v", d.Profit)
	}
}

func TestApplyRecomputesInPlace(t *testing.T) {
	item := model.Item{
		BuyPrice:  500,
		SellPrice: 800,
		SellSite:  model.SiteMercari,
		// Stale values that must be overwritten.
		Fee:    1,
		Profit: 2,
		Rate:   3,
	}
	Apply(&item)
	if item.Fee != 80 || item.Profit != 220 || item.Rate != 44.0 {
		t.Errorf("stale derived fields not recomputed: %+v", item)
	}

	// Clearing the site must zero everything again.
	item.SellSite = ""
	Apply(&item)
	if item.Fee != 0 || item.Profit != 0 || item.Rate != 0 {
		t.Errorf("expected zeroed derived fields, got %+v", item)
	}
}
