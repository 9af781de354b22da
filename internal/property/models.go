package property

import (
	"strings"
	"time"

	id "listingguard/pkg/domain"
)

// Status tracks where a property sits in the flagging lifecycle.
type Status string

const (
	StatusActive   Status = "active"
	StatusFlagged  Status = "flagged"
	StatusResolved Status = "resolved"
)

// Property is the canonical record for one physical real-estate property,
// deduplicated across marketplaces by its normalized identity key.
type Property struct {
	ID      id.PropertyID `json:"id"`
	Address string        `json:"address"`
	City    string        `json:"city"`
	State   string        `json:"state"`
	Country string        `json:"country,omitempty"`
	ZipCode string        `json:"zipCode,omitempty"`
	Status  Status        `json:"status"`

	// LastChecked moves on every check. TotalFlags only ever grows.
	// FirstFlagged is set once by the first report and never changes.
	// VerifiedScam is reserved for the trusted escalation path; no anonymous
	// report can set it.
	LastChecked  time.Time  `json:"lastChecked"`
	TotalFlags   int        `json:"totalFlags"`
	VerifiedScam bool       `json:"verifiedScam"`
	FirstFlagged *time.Time `json:"firstFlagged,omitempty"`
}

// IdentityKey is the normalized (address, city, state[, country]) tuple.
// Two submissions that normalize identically must resolve to one Property.
type IdentityKey struct {
	Address string
	City    string
	State   string
	Country string
}

// NewIdentityKey normalizes the raw components: trim, case-fold, and collapse
// interior whitespace runs, so " 123  Main St " and "123 main st" agree.
func NewIdentityKey(address, city, state, country string) IdentityKey {
	return IdentityKey{
		Address: normalize(address),
		City:    normalize(city),
		State:   normalize(state),
		Country: normalize(country),
	}
}

// String renders the key in a stable single-column form usable as a unique
// index value.
func (k IdentityKey) String() string {
	return k.Address + "|" + k.City + "|" + k.State + "|" + k.Country
}

// IsBlank reports whether any required component is empty. Callers must
// reject blank keys before resolving.
func (k IdentityKey) IsBlank() bool {
	return k.Address == "" || k.City == "" || k.State == ""
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Key returns the property's identity key from its stored components.
func (p *Property) Key() IdentityKey {
	return NewIdentityKey(p.Address, p.City, p.State, p.Country)
}
