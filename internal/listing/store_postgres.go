package listing

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	id "listingguard/pkg/domain"
)

// Postgres reads listings from the table the ingestion pipeline writes to.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Put(ctx context.Context, l Listing) error {
	query := `
		INSERT INTO listings (
			id, property_id, platform, price,
			seller_phone, seller_email, seller_name, observed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(l.ID),
		uuid.UUID(l.PropertyID),
		l.Platform,
		l.Price,
		l.SellerPhone,
		l.SellerEmail,
		l.SellerName,
		l.ObservedAt,
	)
	if err != nil {
		return fmt.Errorf("insert listing: %w", err)
	}
	return nil
}

func (s *Postgres) ListByProperty(ctx context.Context, propertyID id.PropertyID) ([]Listing, error) {
	query := `
		SELECT id, property_id, platform, price,
		       seller_phone, seller_email, seller_name, observed_at
		FROM listings
		WHERE property_id = $1
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(propertyID))
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer rows.Close()

	var listings []Listing
	for rows.Next() {
		var (
			l         Listing
			listingID uuid.UUID
			propID    uuid.UUID
		)
		if err := rows.Scan(
			&listingID,
			&propID,
			&l.Platform,
			&l.Price,
			&l.SellerPhone,
			&l.SellerEmail,
			&l.SellerName,
			&l.ObservedAt,
		); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		l.ID = id.ListingID(listingID)
		l.PropertyID = id.PropertyID(propID)
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}
	return listings, nil
}

// Schema this store expects:
//
//	CREATE TABLE listings (
//	    id           UUID PRIMARY KEY,
//	    property_id  UUID NOT NULL REFERENCES properties (id),
//	    platform     TEXT NOT NULL,
//	    price        DOUBLE PRECISION NOT NULL DEFAULT 0,
//	    seller_phone TEXT NOT NULL DEFAULT '',
//	    seller_email TEXT NOT NULL DEFAULT '',
//	    seller_name  TEXT NOT NULL DEFAULT '',
//	    observed_at  TIMESTAMPTZ NOT NULL
//	);
