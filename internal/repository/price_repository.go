package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// PriceRepository provides data access for the price_cache table. Cached
// quotes front the provider's price endpoint so repeated recaps for the same
// assets do not trigger repeated lookups.
type PriceRepository struct {
	db *sql.DB
}

// NewPriceRepository creates a new PriceRepository with the provided database connection.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// GetFreshPrices returns cached prices for the given chain and addresses
// fetched at or after notBefore. Stale rows are simply omitted; callers
// fetch whatever is missing from the provider.
//
// Returns an empty map when addresses is empty.
func (r *PriceRepository) GetFreshPrices(chain string, addresses []string, notBefore time.Time) (map[string]float64, error) {
	if len(addresses) == 0 {
		return make(map[string]float64), nil
	}

	placeholders := make([]string, len(addresses))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	// fetched_at is stored as RFC3339 UTC, which compares correctly as text.
	query := `
		SELECT address, price_usd
		FROM price_cache
		WHERE chain = ?
		AND address IN (` + strings.Join(placeholders, ",") + `)
		AND fetched_at >= ?
	`

	args := make([]any, 0, len(addresses)+2)
	args = append(args, chain)
	for _, address := range addresses {
		args = append(args, address)
	}
	args = append(args, notBefore.UTC().Format(time.RFC3339))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query price_cache table: %w", err)
	}
	defer rows.Close()

	prices := make(map[string]float64)
	for rows.Next() {
		var address string
		var price float64
		if err := rows.Scan(&address, &price); err != nil {
			return nil, fmt.Errorf("failed to scan price_cache results: %w", err)
		}
		prices[address] = price
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price_cache table: %w", err)
	}

	return prices, nil
}

// UpsertPrices stores freshly fetched quotes for one chain, replacing any
// previous rows for the same (chain, address) pairs.
func (r *PriceRepository) UpsertPrices(ctx context.Context, chain string, prices map[string]float64, fetchedAt time.Time) error {
	if len(prices) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin price upsert: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO price_cache (chain, address, price_usd, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (chain, address) DO UPDATE SET
			price_usd = excluded.price_usd,
			fetched_at = excluded.fetched_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare price upsert: %w", err)
	}
	defer stmt.Close()

	fetchedAtStr := fetchedAt.UTC().Format(time.RFC3339)
	for address, price := range prices {
		if _, err := stmt.ExecContext(ctx, chain, address, price, fetchedAtStr); err != nil {
			return fmt.Errorf("failed to upsert price for %s:%s: %w", chain, address, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit price upsert: %w", err)
	}
	return nil
}

// DeleteOlderThan removes cache rows fetched before the cutoff and returns
// how many were deleted.
func (r *PriceRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(
		`DELETE FROM price_cache WHERE fetched_at < ?`,
		cutoff.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to purge price_cache table: %w", err)
	}
	return result.RowsAffected()
}
