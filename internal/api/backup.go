package api

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"furima/internal/ledger"
	"furima/internal/model"
	"furima/internal/store"
)

// BackupHandler exports and restores the full item collection.
type BackupHandler struct {
	DB *sql.DB
}

// BackupDocument is the export format: the complete collection plus the
// moment it was taken.
type BackupDocument struct {
	BackupDate string       `json:"backup_date"`
	Items      []model.Item `json:"items"`
}

// Download handles GET /api/backup. Pure read; mutates nothing.
func (h *BackupHandler) Download(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListItems(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}

	now := time.Now()
	doc := BackupDocument{
		BackupDate: now.Format(time.RFC3339),
		Items:      items,
	}

	filename := fmt.Sprintf("furima_backup_%s.json", now.Format("20060102_150405"))
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	jsonResponse(w, http.StatusOK, doc)
}

// Restore handles POST /api/restore: the entire stored set is replaced by
// the backup's items in one transaction. Derived fields are recomputed on
// the way in so a hand-edited backup cannot smuggle stale figures.
func (h *BackupHandler) Restore(w http.ResponseWriter, r *http.Request) {
	var doc BackupDocument
	if err := decodeJSON(r, &doc); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid backup document")
		return
	}

	for i := range doc.Items {
		ledger.Apply(&doc.Items[i])
	}

	if err := store.ReplaceAll(r.Context(), h.DB, doc.Items); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to restore items")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"message":  "backup restored",
		"restored": len(doc.Items),
	})
}
