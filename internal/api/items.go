package api

import (
	"database/sql"
	"log"
	"net/http"

	"furima/internal/imaging"
	"furima/internal/ledger"
	"furima/internal/model"
	"furima/internal/store"
)

// ItemsHandler handles item CRUD and photo endpoints.
type ItemsHandler struct {
	DB *sql.DB
}

// itemRequest carries the client-settable fields of an item. Derived fields
// sent by a client are ignored; they are always recomputed server-side.
type itemRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	BuyPlatform string  `json:"buy_platform"`
	BuyDate     string  `json:"buy_date"`
	BuyPrice    float64 `json:"buy_price"`
	SellSite    string  `json:"sell_site"`
	SellDate    string  `json:"sell_date"`
	SellPrice   float64 `json:"sell_price"`
	Shipping    float64 `json:"shipping"`
}

// item builds a validated, fully derived record from the request.
func (req itemRequest) item() (model.Item, error) {
	it := model.Item{
		Name:        req.Name,
		Category:    req.Category,
		BuyPlatform: req.BuyPlatform,
		BuyDate:     req.BuyDate,
		BuyPrice:    req.BuyPrice,
		SellSite:    req.SellSite,
		SellDate:    req.SellDate,
		SellPrice:   req.SellPrice,
		Shipping:    req.Shipping,
	}
	// A sell date is meaningless without a marketplace.
	if it.SellSite == "" {
		it.SellDate = ""
	}
	if err := it.Validate(); err != nil {
		return model.Item{}, err
	}
	ledger.Apply(&it)
	return it, nil
}

// List handles GET /api/items. A read failure degrades to an empty
// collection so the app keeps rendering rather than breaking.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListItems(r.Context(), h.DB)
	if err != nil {
		log.Printf("listing items: %v", err)
		items = nil
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := req.item()
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := store.CreateItem(r.Context(), h.DB, item)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	jsonResponse(w, http.StatusCreated, created)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := store.GetItem(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT /api/items/{id}. All mutable fields are replaced and
// the derived fields recomputed; an unknown id completes without effect.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := req.item()
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	item.ID = r.PathValue("id")

	if err := store.UpdateItem(r.Context(), h.DB, item); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	updated, err := store.GetItem(r.Context(), h.DB, item.ID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if updated == nil {
		// Unknown id: deliberate no-op, not an error.
		jsonResponse(w, http.StatusOK, map[string]string{"message": "no such item, nothing updated"})
		return
	}
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/items/{id}. Unknown ids complete without effect.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := store.DeleteItem(r.Context(), h.DB, r.PathValue("id")); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// UploadImage handles PUT /api/items/{id}/image.
func (h *ItemsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	photo, err := imaging.Normalize(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetItemImage(r.Context(), h.DB, id, photo.Data, photo.MIME); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save image")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "image uploaded"})
}

// GetImage handles GET /api/items/{id}/image.
func (h *ItemsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	data, mime, err := store.GetItemImage(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get image")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
