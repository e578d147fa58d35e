package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/stepaks675/sproutcard/internal/apperrors"
	"github.com/stepaks675/sproutcard/internal/model"
)

// RecapRepository provides data access for stored recaps. A recap is written
// once when computed and read back by the share page.
type RecapRepository struct {
	db *sql.DB
}

// NewRecapRepository creates a new RecapRepository with the provided database connection.
func NewRecapRepository(db *sql.DB) *RecapRepository {
	return &RecapRepository{db: db}
}

// InsertRecap stores a computed recap. The valuation result is persisted as
// a JSON payload so the stored shape matches the API contract exactly.
func (r *RecapRepository) InsertRecap(ctx context.Context, record model.RecapRecord) error {
	payload, err := json.Marshal(record.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal recap payload: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO recap (id, wallet, payload, created_at)
		VALUES (?, ?, ?, ?)
	`,
		record.ID,
		record.Wallet,
		string(payload),
		record.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert recap: %w", err)
	}
	return nil
}

// GetRecap retrieves a stored recap by its ID.
// Returns apperrors.ErrRecapNotFound when no recap exists for the ID.
func (r *RecapRepository) GetRecap(id string) (model.RecapRecord, error) {
	var record model.RecapRecord
	var payload, createdAtStr string

	err := r.db.QueryRow(`
		SELECT id, wallet, payload, created_at
		FROM recap
		WHERE id = ?
	`, id).Scan(&record.ID, &record.Wallet, &payload, &createdAtStr)

	if errors.Is(err, sql.ErrNoRows) {
		return model.RecapRecord{}, apperrors.ErrRecapNotFound
	}
	if err != nil {
		return model.RecapRecord{}, fmt.Errorf("failed to query recap table: %w", err)
	}

	if err := json.Unmarshal([]byte(payload), &record.Result); err != nil {
		return model.RecapRecord{}, fmt.Errorf("failed to unmarshal recap payload: %w", err)
	}

	record.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.RecapRecord{}, err
	}

	return record, nil
}
