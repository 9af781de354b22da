package watchlist

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	id "listingguard/pkg/domain"
)

// Postgres persists watches in PostgreSQL. The (user_id, property_id) primary
// key plus ON CONFLICT DO UPDATE makes the upsert atomic.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Upsert(ctx context.Context, w PropertyWatch) (*PropertyWatch, error) {
	query := `
		INSERT INTO property_watches (
			user_id, property_id, added_at, last_checked,
			notifications_enabled, alert_types
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, property_id) DO UPDATE
		SET notifications_enabled = EXCLUDED.notifications_enabled,
		    last_checked = EXCLUDED.last_checked
		RETURNING added_at, last_checked, notifications_enabled, alert_types
	`
	row := s.db.QueryRowContext(ctx, query,
		uuid.UUID(w.UserID),
		uuid.UUID(w.PropertyID),
		w.AddedAt,
		w.LastChecked,
		w.NotificationsEnabled,
		pq.Array(w.AlertTypes),
	)
	stored := PropertyWatch{UserID: w.UserID, PropertyID: w.PropertyID}
	if err := row.Scan(
		&stored.AddedAt,
		&stored.LastChecked,
		&stored.NotificationsEnabled,
		pq.Array(&stored.AlertTypes),
	); err != nil {
		return nil, fmt.Errorf("upsert watch: %w", err)
	}
	return &stored, nil
}

func (s *Postgres) ListByUser(ctx context.Context, userID id.UserID) ([]PropertyWatch, error) {
	query := `
		SELECT user_id, property_id, added_at, last_checked,
		       notifications_enabled, alert_types
		FROM property_watches
		WHERE user_id = $1
		ORDER BY added_at
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("query watches: %w", err)
	}
	defer rows.Close()

	var watches []PropertyWatch
	for rows.Next() {
		var (
			w      PropertyWatch
			user   uuid.UUID
			propID uuid.UUID
		)
		if err := rows.Scan(
			&user,
			&propID,
			&w.AddedAt,
			&w.LastChecked,
			&w.NotificationsEnabled,
			pq.Array(&w.AlertTypes),
		); err != nil {
			return nil, fmt.Errorf("scan watch: %w", err)
		}
		w.UserID = id.UserID(user)
		w.PropertyID = id.PropertyID(propID)
		watches = append(watches, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watches: %w", err)
	}
	return watches, nil
}

// Schema documents the table this store expects; migrations live with the
// deployment, not this package.
//
//	CREATE TABLE property_watches (
//	    user_id               UUID NOT NULL,
//	    property_id           UUID NOT NULL REFERENCES properties (id),
//	    added_at              TIMESTAMPTZ NOT NULL,
//	    last_checked          TIMESTAMPTZ NOT NULL,
//	    notifications_enabled BOOLEAN NOT NULL DEFAULT TRUE,
//	    alert_types           TEXT[] NOT NULL DEFAULT '{}',
//	    PRIMARY KEY (user_id, property_id)
//	);
