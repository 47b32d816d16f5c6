package api

import (
	"database/sql"
	"log"
	"net/http"

	"furima/internal/ledger"
	"furima/internal/store"
)

// SuggestHandler serves heuristic price suggestions. The computation itself
// lives in ledger.Suggest and never does I/O; this handler only feeds it the
// stored history.
type SuggestHandler struct {
	DB *sql.DB
}

type suggestRequest struct {
	Category    string  `json:"category"`
	BuyPrice    float64 `json:"buy_price"`
	BuyPlatform string  `json:"buy_platform"`
}

// Suggest handles POST /api/suggest.
func (h *SuggestHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Category == "" {
		jsonError(w, http.StatusBadRequest, "category required")
		return
	}

	// An unreadable history degrades to the cold-start path rather than
	// failing the suggestion.
	history, err := store.ListItems(r.Context(), h.DB)
	if err != nil {
		log.Printf("listing items for suggestion: %v", err)
		history = nil
	}

	jsonResponse(w, http.StatusOK, ledger.Suggest(req.Category, req.BuyPrice, history))
}
