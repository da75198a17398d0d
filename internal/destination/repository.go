package destination

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

// Repository is a database-backed repository for destinations.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Save inserts or updates a destination.
func (r *Repository) Save(ctx context.Context, d Destination) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal destination to JSON: %w", err)
	}

	updatedAt := time.Now().UTC()
	if d.UpdatedAt != "" {
		parsed, err := time.Parse(time.RFC3339, d.UpdatedAt)
		if err != nil {
			log.Printf("Warning: failed to parse UpdatedAt %q for destination %s: %v. Using current time.", d.UpdatedAt, d.ID, err)
		} else {
			updatedAt = parsed
		}
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO destinations (id, name, featured, data, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			featured = excluded.featured,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		d.ID, d.Name, d.Featured, string(data), updatedAt)
	if err != nil {
		return fmt.Errorf("failed to save destination: %w", err)
	}
	return nil
}

// Get retrieves a destination by its ID. Returns nil when not found.
func (r *Repository) Get(ctx context.Context, id string) (*Destination, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM destinations WHERE id = ?`, id).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get destination by ID: %w", err)
	}
	return unmarshalDestination(data)
}

// GetByName retrieves a destination by its display name (case-insensitive).
// Returns nil when not found.
func (r *Repository) GetByName(ctx context.Context, name string) (*Destination, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM destinations WHERE name = ? COLLATE NOCASE`, name).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get destination by name: %w", err)
	}
	return unmarshalDestination(data)
}

// List retrieves all destinations ordered by name.
func (r *Repository) List(ctx context.Context) ([]Destination, error) {
	return r.query(ctx, `SELECT data FROM destinations ORDER BY name`)
}

// Featured retrieves the destinations flagged for the premium generation tier.
func (r *Repository) Featured(ctx context.Context) ([]Destination, error) {
	return r.query(ctx, `SELECT data FROM destinations WHERE featured = 1 ORDER BY name`)
}

// Count returns the number of stored destinations.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM destinations`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count destinations: %w", err)
	}
	return count, nil
}

func (r *Repository) query(ctx context.Context, q string) ([]Destination, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list destinations: %w", err)
	}
	defer rows.Close()

	var destinations []Destination
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan destination row: %w", err)
		}
		d, err := unmarshalDestination(data)
		if err != nil {
			log.Printf("Warning: skipping corrupted destination row: %v", err)
			continue
		}
		destinations = append(destinations, *d)
	}
	return destinations, rows.Err()
}

func unmarshalDestination(data string) (*Destination, error) {
	var d Destination
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal destination JSON: %w", err)
	}
	return &d, nil
}
