package report

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	id "listingguard/pkg/domain"
	"listingguard/pkg/platform/sentinel"
)

// Postgres persists scam reports in PostgreSQL. Evidence rides in a text
// array column.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Save(ctx context.Context, r ScamReport) error {
	query := `
		INSERT INTO scam_reports (
			id, property_id, reported_by, reporter_type, scam_type,
			severity, description, evidence, reported_at, verified
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(r.ID),
		uuid.UUID(r.PropertyID),
		uuid.UUID(r.ReportedBy),
		string(r.ReporterType),
		r.ScamType,
		string(r.Severity),
		r.Description,
		pq.Array(r.Evidence),
		r.Timestamp,
		r.Verified,
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (s *Postgres) ListByProperty(ctx context.Context, propertyID id.PropertyID) ([]ScamReport, error) {
	query := `
		SELECT id, property_id, reported_by, reporter_type, scam_type,
		       severity, description, evidence, reported_at, verified
		FROM scam_reports
		WHERE property_id = $1
		ORDER BY reported_at
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(propertyID))
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var reports []ScamReport
	for rows.Next() {
		var (
			r            ScamReport
			reportID     uuid.UUID
			propID       uuid.UUID
			reportedBy   uuid.UUID
			reporterType string
			severity     string
		)
		if err := rows.Scan(
			&reportID,
			&propID,
			&reportedBy,
			&reporterType,
			&r.ScamType,
			&severity,
			&r.Description,
			pq.Array(&r.Evidence),
			&r.Timestamp,
			&r.Verified,
		); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		r.ID = id.ReportID(reportID)
		r.PropertyID = id.PropertyID(propID)
		r.ReportedBy = id.UserID(reportedBy)
		r.ReporterType = ReporterType(reporterType)
		r.Severity = Severity(severity)
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return reports, nil
}

func (s *Postgres) SetVerified(ctx context.Context, reportID id.ReportID, verified bool) error {
	query := `UPDATE scam_reports SET verified = $2 WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query, uuid.UUID(reportID), verified)
	if err != nil {
		return fmt.Errorf("set report verified: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set report verified rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// Schema documents the table this store expects; migrations live with the
// deployment, not this package.
//
//	CREATE TABLE scam_reports (
//	    id            UUID PRIMARY KEY,
//	    property_id   UUID NOT NULL REFERENCES properties (id),
//	    reported_by   UUID NOT NULL,
//	    reporter_type TEXT NOT NULL DEFAULT 'user',
//	    scam_type     TEXT NOT NULL,
//	    severity      TEXT NOT NULL,
//	    description   TEXT NOT NULL,
//	    evidence      TEXT[] NOT NULL DEFAULT '{}',
//	    reported_at   TIMESTAMPTZ NOT NULL,
//	    verified      BOOLEAN NOT NULL DEFAULT FALSE
//	);
