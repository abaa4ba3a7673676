package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"parcel-tracking-service/internal/domain"
	"time"

	"github.com/zoobzio/clockz"
)

// Postgres-backed implementation of the ParcelRepository port.
type SQLParcelRepository struct {
	DB    *sql.DB
	clock clockz.Clock
}

// NewSQLParcelRepository stamps updated_at from clock; nil uses the wall clock.
func NewSQLParcelRepository(db *sql.DB, clock clockz.Clock) *SQLParcelRepository {
	if clock == nil {
		clock = clockz.RealClock
	}
	return &SQLParcelRepository{DB: db, clock: clock}
}

const parcelColumns = `
		tracking_id,
		sender,
		recipient,
		destination,
		status,
		post_office,
		delay_risk,
		created_at,
		updated_at`

// Return all parcels on the board.
func (s *SQLParcelRepository) ListParcels(ctx context.Context) ([]*domain.AssignedParcel, error) {
	if s.DB == nil {
		return nil, errors.New("sql parcel repository: DB is nil")
	}

	query := `SELECT` + parcelColumns + `
	FROM parcels
	ORDER BY tracking_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list parcels: query parcels table: %w", err)
	}
	defer rows.Close()

	parcels := make([]*domain.AssignedParcel, 0, 64)
	for rows.Next() {
		p, err := scanParcel(rows)
		if err != nil {
			return nil, fmt.Errorf("list parcels: scan row: %w", err)
		}
		parcels = append(parcels, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list parcels: row iteration: %w", err)
	}

	return parcels, nil
}

func (s *SQLParcelRepository) GetParcel(ctx context.Context, trackingID string) (*domain.AssignedParcel, error) {
	if s.DB == nil {
		return nil, errors.New("sql parcel repository: DB is nil")
	}

	query := `SELECT` + parcelColumns + `
	FROM parcels
	WHERE tracking_id = $1;
	`
	p, err := scanParcel(s.DB.QueryRowContext(ctx, query, trackingID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get parcel %s: %w", trackingID, err)
	}
	return p, nil
}

func (s *SQLParcelRepository) CreateParcel(ctx context.Context, p *domain.AssignedParcel) error {
	if s.DB == nil {
		return errors.New("sql parcel repository: DB is nil")
	}

	query := `
	INSERT INTO parcels (` + parcelColumns + `
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := s.DB.ExecContext(ctx, query,
		p.TrackingID,
		p.Sender,
		p.Recipient,
		p.Destination,
		string(p.Status),
		p.PostOffice,
		string(p.DelayRisk),
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create parcel %s: %w", p.TrackingID, err)
	}
	return nil
}

func (s *SQLParcelRepository) UpdateStatus(ctx context.Context, trackingID string, status domain.ParcelStatusCode) (bool, error) {
	if s.DB == nil {
		return false, errors.New("sql parcel repository: DB is nil")
	}

	query := `
	UPDATE parcels
	SET status = $1, updated_at = $2
	WHERE tracking_id = $3;
	`
	res, err := s.DB.ExecContext(ctx, query, string(status), s.now(), trackingID)
	if err != nil {
		return false, fmt.Errorf("update parcel status %s: %w", trackingID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update parcel status %s: rows affected: %w", trackingID, err)
	}
	return n > 0, nil
}

func (s *SQLParcelRepository) now() time.Time {
	if s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock.Now().UTC()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanParcel(row rowScanner) (*domain.AssignedParcel, error) {
	var (
		p      domain.AssignedParcel
		status string
		risk   string
	)
	err := row.Scan(
		&p.TrackingID,
		&p.Sender,
		&p.Recipient,
		&p.Destination,
		&status,
		&p.PostOffice,
		&risk,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Status = domain.ParcelStatusCode(status)
	p.DelayRisk = domain.RiskLevel(risk)
	return &p, nil
}
