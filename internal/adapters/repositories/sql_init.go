package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema for the parcel board.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createParcelsQuery := `
	CREATE TABLE IF NOT EXISTS parcels (
		tracking_id TEXT PRIMARY KEY,
		sender TEXT NOT NULL,
		recipient TEXT NOT NULL,
		destination TEXT NOT NULL,
		status TEXT NOT NULL,
		post_office TEXT NOT NULL DEFAULT '',
		delay_risk TEXT NOT NULL DEFAULT 'Low',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createStatusIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_parcels_status
	ON parcels(status);
	`

	statements := []string{
		createParcelsQuery,
		createStatusIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the parcels table from a JSON seed file. Existing rows with the
// same tracking id are overwritten.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) (int, error) {
	parcels, err := LoadSeeds(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed parcels: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed parcels: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO parcels (
		tracking_id,
		sender,
		recipient,
		destination,
		status,
		post_office,
		delay_risk,
		created_at,
		updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	ON CONFLICT (tracking_id) DO UPDATE SET
		sender = EXCLUDED.sender,
		recipient = EXCLUDED.recipient,
		destination = EXCLUDED.destination,
		status = EXCLUDED.status,
		post_office = EXCLUDED.post_office,
		delay_risk = EXCLUDED.delay_risk,
		updated_at = EXCLUDED.updated_at;
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("seed parcels: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range parcels {
		if _, err := stmt.ExecContext(ctx,
			p.TrackingID,
			p.Sender,
			p.Recipient,
			p.Destination,
			string(p.Status),
			p.PostOffice,
			string(p.DelayRisk),
			p.CreatedAt,
		); err != nil {
			return 0, fmt.Errorf("seed parcels: insert tracking_id=%s: %w", p.TrackingID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed parcels: commit tx: %w", err)
	}

	return len(parcels), nil
}
