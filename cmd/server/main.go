package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"furima/internal/api"
	"furima/internal/db"
	"furima/internal/ledger"
	"furima/internal/model"
	"furima/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: furima <serve|export|import>")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cmdServe(os.Args[2:])
	case "export":
		cmdExport(os.Args[2:])
	case "import":
		cmdImport(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\nUsage: furima <serve|export|import>\n", os.Args[1])
		os.Exit(1)
	}
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	dbPath := fs.String("db", "furima.sqlite3", "path to SQLite database file")
	addr := fs.String("addr", ":8080", "listen address")
	fs.Parse(args)

	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	// Run migrations (idempotent); the schema is created on first start.
	if err := db.Migrate(database); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	handler := api.LoggingMiddleware(api.NewRouter(database))

	fmt.Printf("Server listening on %s\n", *addr)
	if err := http.ListenAndServe(*addr, handler); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// cmdExport writes a backup document for the full collection to a file, or
// stdout when no output path is given.
func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	dbPath := fs.String("db", "furima.sqlite3", "path to SQLite database file")
	out := fs.String("o", "", "output file (default stdout)")
	fs.Parse(args)

	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()
	if err := db.Migrate(database); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	items, err := store.ListItems(context.Background(), database)
	if err != nil {
		log.Fatalf("Failed to list items: %v", err)
	}
	if items == nil {
		items = []model.Item{}
	}

	doc := api.BackupDocument{
		BackupDate: time.Now().Format(time.RFC3339),
		Items:      items,
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		log.Fatalf("Failed to write backup: %v", err)
	}
	if *out != "" {
		fmt.Printf("Exported %d items to %s\n", len(items), *out)
	}
}

// cmdImport replaces the entire collection with the items from a backup
// file. Derived fields are recomputed on the way in.
func cmdImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	dbPath := fs.String("db", "furima.sqlite3", "path to SQLite database file")
	in := fs.String("f", "", "backup file to import (required)")
	fs.Parse(args)

	if *in == "" {
		fmt.Fprintln(os.Stderr, "Error: -f <backup file> is required")
		os.Exit(1)
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("Failed to read backup file: %v", err)
	}

	var doc api.BackupDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Fatalf("Failed to parse backup file: %v", err)
	}
	for i := range doc.Items {
		ledger.Apply(&doc.Items[i])
	}

	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()
	if err := db.Migrate(database); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := store.ReplaceAll(context.Background(), database, doc.Items); err != nil {
		log.Fatalf("Failed to restore items: %v", err)
	}

	fmt.Printf("Imported %d items from %s\n", len(doc.Items), *in)
}
