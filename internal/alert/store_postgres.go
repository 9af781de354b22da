package alert

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	id "listingguard/pkg/domain"
	"listingguard/pkg/platform/sentinel"
)

// Postgres persists community alerts in PostgreSQL. Scan counts increment
// in-database so concurrent checks never lose updates.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Save(ctx context.Context, a CommunityAlert) error {
	query := `
		INSERT INTO community_alerts (
			id, property_id, title, message, alert_type, severity,
			created_by, created_at, upvotes, downvotes, scan_count, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(a.ID),
		uuid.UUID(a.PropertyID),
		a.Title,
		a.Message,
		string(a.AlertType),
		a.Severity,
		uuid.UUID(a.CreatedBy),
		a.CreatedAt,
		a.Upvotes,
		a.Downvotes,
		a.ScanCount,
		a.IsActive,
	)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

func (s *Postgres) ListByProperty(ctx context.Context, propertyID id.PropertyID) ([]CommunityAlert, error) {
	query := `
		SELECT id, property_id, title, message, alert_type, severity,
		       created_by, created_at, upvotes, downvotes, scan_count, is_active
		FROM community_alerts
		WHERE property_id = $1
		ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(propertyID))
	if err != nil {
		return nil, fmt.Errorf("query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []CommunityAlert
	for rows.Next() {
		var (
			a         CommunityAlert
			alertID   uuid.UUID
			propID    uuid.UUID
			createdBy uuid.UUID
			alertType string
		)
		if err := rows.Scan(
			&alertID,
			&propID,
			&a.Title,
			&a.Message,
			&alertType,
			&a.Severity,
			&createdBy,
			&a.CreatedAt,
			&a.Upvotes,
			&a.Downvotes,
			&a.ScanCount,
			&a.IsActive,
		); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		a.ID = id.AlertID(alertID)
		a.PropertyID = id.PropertyID(propID)
		a.CreatedBy = id.UserID(createdBy)
		a.AlertType = Type(alertType)
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alerts: %w", err)
	}
	return alerts, nil
}

// IncrementScanCount bumps the counter inside the database, keeping the
// increment atomic under concurrent checks.
func (s *Postgres) IncrementScanCount(ctx context.Context, alertID id.AlertID) error {
	query := `UPDATE community_alerts SET scan_count = scan_count + 1 WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query, uuid.UUID(alertID))
	if err != nil {
		return fmt.Errorf("increment scan count: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("increment scan count rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// Schema documents the table this store expects; migrations live with the
// deployment, not this package.
//
//	CREATE TABLE community_alerts (
//	    id          UUID PRIMARY KEY,
//	    property_id UUID NOT NULL REFERENCES properties (id),
//	    title       TEXT NOT NULL,
//	    message     TEXT NOT NULL,
//	    alert_type  TEXT NOT NULL,
//	    severity    TEXT NOT NULL,
//	    created_by  UUID NOT NULL,
//	    created_at  TIMESTAMPTZ NOT NULL,
//	    upvotes     INT NOT NULL DEFAULT 0,
//	    downvotes   INT NOT NULL DEFAULT 0,
//	    scan_count  INT NOT NULL DEFAULT 1,
//	    is_active   BOOLEAN NOT NULL DEFAULT TRUE
//	);
