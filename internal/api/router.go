package api

import (
	"database/sql"
	"net/http"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB) http.Handler {
	mux := http.NewServeMux()

	itemsHandler := &ItemsHandler{DB: db}
	statsHandler := &StatsHandler{DB: db}
	suggestHandler := &SuggestHandler{DB: db}
	backupHandler := &BackupHandler{DB: db}

	// Items.
	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("POST /api/items", itemsHandler.Create)
	mux.HandleFunc("GET /api/items/{id}", itemsHandler.Get)
	mux.HandleFunc("PUT /api/items/{id}", itemsHandler.Update)
	mux.HandleFunc("DELETE /api/items/{id}", itemsHandler.Delete)
	mux.HandleFunc("PUT /api/items/{id}/image", itemsHandler.UploadImage)
	mux.HandleFunc("GET /api/items/{id}/image", itemsHandler.GetImage)

	// Aggregates and suggestions.
	mux.HandleFunc("GET /api/stats", statsHandler.Get)
	mux.HandleFunc("POST /api/suggest", suggestHandler.Suggest)

	// Backup / restore.
	mux.HandleFunc("GET /api/backup", backupHandler.Download)
	mux.HandleFunc("POST /api/restore", backupHandler.Restore)

	return mux
}
