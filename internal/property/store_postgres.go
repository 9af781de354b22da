package property

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	id "listingguard/pkg/domain"
	"listingguard/pkg/platform/sentinel"
	txcontext "listingguard/pkg/platform/tx"
)

// Postgres persists properties in PostgreSQL. Identity-key uniqueness is a
// unique index; creation races resolve through ON CONFLICT DO NOTHING plus a
// caller re-read.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Postgres) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const propertyColumns = `id, address, city, state, country, zip_code, status,
	last_checked, total_flags, verified_scam, first_flagged`

// CreateIfAbsent inserts the property unless another writer already owns the
// identity key. A lost race surfaces as sentinel.ErrConflict, never as a
// duplicate row.
func (s *Postgres) CreateIfAbsent(ctx context.Context, p *Property) error {
	query := `
		INSERT INTO properties (
			id, identity_key, address, city, state, country, zip_code,
			status, last_checked, total_flags, verified_scam, first_flagged
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (identity_key) DO NOTHING
	`
	res, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(p.ID),
		p.Key().String(),
		p.Address,
		p.City,
		p.State,
		p.Country,
		p.ZipCode,
		string(p.Status),
		p.LastChecked,
		p.TotalFlags,
		p.VerifiedScam,
		p.FirstFlagged,
	)
	if err != nil {
		return fmt.Errorf("insert property: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert property rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, propertyID id.PropertyID) (*Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`
	return s.scanOne(s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(propertyID)))
}

func (s *Postgres) FindByKey(ctx context.Context, key IdentityKey) (*Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE identity_key = $1`
	return s.scanOne(s.execer(ctx).QueryRowContext(ctx, query, key.String()))
}

func (s *Postgres) Update(ctx context.Context, p *Property) error {
	query := `
		UPDATE properties
		SET status = $2, last_checked = $3, total_flags = $4,
		    verified_scam = $5, first_flagged = $6
		WHERE id = $1
	`
	res, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(p.ID),
		string(p.Status),
		p.LastChecked,
		p.TotalFlags,
		p.VerifiedScam,
		p.FirstFlagged,
	)
	if err != nil {
		return fmt.Errorf("update property: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update property rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// Execute locks the row with SELECT FOR UPDATE for the validate-then-mutate
// span, so concurrent flag increments serialize instead of losing updates.
func (s *Postgres) Execute(ctx context.Context, propertyID id.PropertyID, validate func(*Property) error, mutate func(*Property)) (*Property, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin property tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1 FOR UPDATE`
	p, err := s.scanOne(tx.QueryRowContext(ctx, query, uuid.UUID(propertyID)))
	if err != nil {
		return nil, err
	}

	if validate != nil {
		if err := validate(p); err != nil {
			return nil, err
		}
	}
	mutate(p)

	txCtx := txcontext.WithTx(ctx, tx)
	if err := s.Update(txCtx, p); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit property tx: %w", err)
	}
	return p, nil
}

func (s *Postgres) scanOne(row *sql.Row) (*Property, error) {
	var (
		p            Property
		propertyID   uuid.UUID
		status       string
		firstFlagged sql.NullTime
	)
	err := row.Scan(
		&propertyID,
		&p.Address,
		&p.City,
		&p.State,
		&p.Country,
		&p.ZipCode,
		&status,
		&p.LastChecked,
		&p.TotalFlags,
		&p.VerifiedScam,
		&firstFlagged,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan property: %w", err)
	}
	p.ID = id.PropertyID(propertyID)
	p.Status = Status(status)
	if firstFlagged.Valid {
		t := firstFlagged.Time.UTC()
		p.FirstFlagged = &t
	}
	return &p, nil
}

// Schema documents the table this store expects; migrations live with the
// deployment, not this package.
//
//	CREATE TABLE properties (
//	    id            UUID PRIMARY KEY,
//	    identity_key  TEXT NOT NULL UNIQUE,
//	    address       TEXT NOT NULL,
//	    city          TEXT NOT NULL,
//	    state         TEXT NOT NULL,
//	    country       TEXT NOT NULL DEFAULT '',
//	    zip_code      TEXT NOT NULL DEFAULT '',
//	    status        TEXT NOT NULL,
//	    last_checked  TIMESTAMPTZ NOT NULL,
//	    total_flags   INT NOT NULL DEFAULT 0,
//	    verified_scam BOOLEAN NOT NULL DEFAULT FALSE,
//	    first_flagged TIMESTAMPTZ
//	);
