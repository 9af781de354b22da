// Package domain holds typed identifiers shared across the engine.
//
// IDs wrap uuid.UUID so a PropertyID can never be passed where a UserID is
// expected. Parse functions enforce the "valid, non-empty, non-nil UUID"
// invariant at trust boundaries.
package domain

import (
	"github.com/google/uuid"

	dErrors "listingguard/pkg/domain-errors"
)

type (
	// PropertyID identifies one canonical property record.
	PropertyID uuid.UUID
	// ListingID identifies one observed marketplace listing.
	ListingID uuid.UUID
	// ReportID identifies one scam report.
	ReportID uuid.UUID
	// AlertID identifies one community alert.
	AlertID uuid.UUID
	// UserID is the opaque authenticated caller identity. Issuance and
	// verification belong to the auth collaborator; the engine only carries it.
	UserID uuid.UUID
)

func (id PropertyID) String() string { return uuid.UUID(id).String() }
func (id ListingID) String() string  { return uuid.UUID(id).String() }
func (id ReportID) String() string   { return uuid.UUID(id).String() }
func (id AlertID) String() string    { return uuid.UUID(id).String() }
func (id UserID) String() string     { return uuid.UUID(id).String() }

// MarshalText/UnmarshalText delegate to uuid.UUID so IDs cross JSON and text
// boundaries as canonical UUID strings, not raw byte arrays.
func (id PropertyID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id ListingID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id ReportID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }
func (id AlertID) MarshalText() ([]byte, error)    { return uuid.UUID(id).MarshalText() }
func (id UserID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }

func (id *PropertyID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *ListingID) UnmarshalText(b []byte) error  { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *ReportID) UnmarshalText(b []byte) error   { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *AlertID) UnmarshalText(b []byte) error    { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *UserID) UnmarshalText(b []byte) error     { return (*uuid.UUID)(id).UnmarshalText(b) }

func (id PropertyID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ListingID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id ReportID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id AlertID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id UserID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }

// NewPropertyID returns a fresh random property ID.
func NewPropertyID() PropertyID { return PropertyID(uuid.New()) }

// NewListingID returns a fresh random listing ID.
func NewListingID() ListingID { return ListingID(uuid.New()) }

// NewReportID returns a fresh random report ID.
func NewReportID() ReportID { return ReportID(uuid.New()) }

// NewAlertID returns a fresh random alert ID.
func NewAlertID() AlertID { return AlertID(uuid.New()) }

// NewUserID returns a fresh random user ID. Test use only; real user IDs come
// from the auth collaborator.
func NewUserID() UserID { return UserID(uuid.New()) }

func parse(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must be a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be the nil UUID")
	}
	return u, nil
}

// ParsePropertyID validates and returns a PropertyID.
func ParsePropertyID(s string) (PropertyID, error) {
	u, err := parse(s)
	return PropertyID(u), err
}

// ParseListingID validates and returns a ListingID.
func ParseListingID(s string) (ListingID, error) {
	u, err := parse(s)
	return ListingID(u), err
}

// ParseReportID validates and returns a ReportID.
func ParseReportID(s string) (ReportID, error) {
	u, err := parse(s)
	return ReportID(u), err
}

// ParseAlertID validates and returns an AlertID.
func ParseAlertID(s string) (AlertID, error) {
	u, err := parse(s)
	return AlertID(u), err
}

// ParseUserID validates and returns a UserID.
func ParseUserID(s string) (UserID, error) {
	u, err := parse(s)
	return UserID(u), err
}
