package listing

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// Repository is the SQLite cache of the published listing set. The
// server refreshes it from the CMS and falls back to it at startup when
// the CMS is unreachable.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a listing cache repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const insertSQL = `INSERT INTO listings
	(id, slug, name, developer, status, property_type, city, district, total_area, rent_price_sqm, featured, position, payload)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// ReplaceAll swaps the cached set for the given one in a single
// transaction, so readers never observe a partially-updated cache.
func (r *Repository) ReplaceAll(listings []*Listing) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning cache swap: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM listings"); err != nil {
		return fmt.Errorf("clearing listing cache: %w", err)
	}

	for i, l := range listings {
		payload, err := json.Marshal(l)
		if err != nil {
			return fmt.Errorf("encoding listing %s: %w", l.ID, err)
		}
		_, err = tx.Exec(insertSQL,
			l.ID, l.Slug, l.Name, l.Developer,
			string(l.Status), string(l.PropertyType), l.City, l.District,
			l.TotalArea, l.RentPricePerSqm, l.Featured, i, string(payload),
		)
		if err != nil {
			return fmt.Errorf("caching listing %s: %w", l.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing cache swap: %w", err)
	}
	return nil
}

// List returns the cached listings in their original CMS order.
func (r *Repository) List() ([]*Listing, error) {
	rows, err := r.db.Query("SELECT payload FROM listings ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("reading listing cache: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var listings []*Listing
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning cached listing: %w", err)
		}
		var l Listing
		if err := json.Unmarshal([]byte(payload), &l); err != nil {
			return nil, fmt.Errorf("decoding cached listing: %w", err)
		}
		listings = append(listings, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating listing cache: %w", err)
	}
	return listings, nil
}

// Count returns the number of cached listings.
func (r *Repository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM listings").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting cached listings: %w", err)
	}
	return n, nil
}
