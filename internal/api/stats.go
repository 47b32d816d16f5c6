package api

import (
	"database/sql"
	"log"
	"net/http"

	"furima/internal/ledger"
	"furima/internal/store"
)

// StatsHandler serves the aggregate summary over the full collection.
type StatsHandler struct {
	DB *sql.DB
}

// Get handles GET /api/stats. Aggregates are recomputed from the live
// collection on every call; a read failure degrades to empty figures.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListItems(r.Context(), h.DB)
	if err != nil {
		log.Printf("listing items for stats: %v", err)
		items = nil
	}

	stats := ledger.Summarize(items)
	if stats.PlatformRates == nil {
		stats.PlatformRates = []ledger.PlatformRate{}
	}
	if stats.SiteCategories == nil {
		stats.SiteCategories = []ledger.SiteCategories{}
	}
	jsonResponse(w, http.StatusOK, stats)
}
