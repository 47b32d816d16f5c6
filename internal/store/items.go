// Package store persists item records in SQLite. Writes are per-record;
// ReplaceAll exists only as the bulk restore path.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"furima/internal/model"
)

const itemColumns = `id, name, category, buy_platform, buy_date, buy_price,
	sell_site, sell_date, sell_price, shipping, fee, profit, rate, image_mime`

// CreateItem inserts a new item, assigning it a fresh ID. The caller is
// responsible for having computed the derived fields.
func CreateItem(ctx context.Context, db *sql.DB, item model.Item) (*model.Item, error) {
	item.ID = uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO items (id, name, category, buy_platform, buy_date, buy_price,
		                    sell_site, sell_date, sell_price, shipping, fee, profit, rate)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, item.Category, item.BuyPlatform, item.BuyDate, item.BuyPrice,
		item.SellSite, item.SellDate, item.SellPrice, item.Shipping, item.Fee, item.Profit, item.Rate,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}
	return GetItem(ctx, db, item.ID)
}

// GetItem returns an item by ID, or nil when it does not exist.
func GetItem(ctx context.Context, db *sql.DB, id string) (*model.Item, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
	)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns every item, newest acquisitions first and items with a
// blank buy date last.
func ListItems(ctx context.Context, db *sql.DB) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items
		 ORDER BY CASE WHEN buy_date = '' THEN 1 ELSE 0 END, buy_date DESC, created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateItem replaces every mutable field of an item. Updating an unknown ID
// is a no-op, matching delete semantics.
func UpdateItem(ctx context.Context, db *sql.DB, item model.Item) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET name = ?, category = ?, buy_platform = ?, buy_date = ?,
		        buy_price = ?, sell_site = ?, sell_date = ?, sell_price = ?,
		        shipping = ?, fee = ?, profit = ?, rate = ?,
		        updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		item.Name, item.Category, item.BuyPlatform, item.BuyDate,
		item.BuyPrice, item.SellSite, item.SellDate, item.SellPrice,
		item.Shipping, item.Fee, item.Profit, item.Rate,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return nil
}

// DeleteItem removes an item. Unknown IDs are a no-op.
func DeleteItem(ctx context.Context, db *sql.DB, id string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// ReplaceAll atomically replaces the entire stored set with the given
// collection. This is the bulk restore path only; steady-state mutations go
// through the per-record functions.
func ReplaceAll(ctx context.Context, db *sql.DB, items []model.Item) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("clearing items: %w", err)
	}

	for _, item := range items {
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO items (id, name, category, buy_platform, buy_date, buy_price,
			                    sell_site, sell_date, sell_price, shipping, fee, profit, rate)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID, item.Name, item.Category, item.BuyPlatform, item.BuyDate, item.BuyPrice,
			item.SellSite, item.SellDate, item.SellPrice, item.Shipping, item.Fee, item.Profit, item.Rate,
		)
		if err != nil {
			return fmt.Errorf("restoring item %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing restore: %w", err)
	}
	return nil
}

// SetItemImage stores an item's photo.
func SetItemImage(ctx context.Context, db *sql.DB, id string, image []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET image = ?, image_mime = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		image, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting item image: %w", err)
	}
	return nil
}

// GetItemImage returns an item's photo and MIME type, nil when absent.
func GetItemImage(ctx context.Context, db *sql.DB, id string) ([]byte, string, error) {
	var image []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM items WHERE id = ?`, id,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item image: %w", err)
	}
	return image, mime.String, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*model.Item, error) {
	item := &model.Item{}
	var imageMime sql.NullString
	err := s.Scan(
		&item.ID, &item.Name, &item.Category, &item.BuyPlatform, &item.BuyDate, &item.BuyPrice,
		&item.SellSite, &item.SellDate, &item.SellPrice, &item.Shipping, &item.Fee, &item.Profit, &item.Rate,
		&imageMime,
	)
	if err != nil {
		return nil, err
	}
	item.ImageMime = imageMime.String
	return item, nil
}
