package alert

import (
	"time"

	id "listingguard/pkg/domain"
)

// Type partitions alerts by how urgently the community should react.
type Type string

const (
	TypeWarning Type = "warning"
	TypeDanger  Type = "danger"
)

// maxMessageLen bounds the alert message carried over from a report
// description.
const maxMessageLen = 200

// CommunityAlert warns future checkers about a property. Alerts are created
// only as a side effect of a high or critical scam report, never directly.
type CommunityAlert struct {
	ID         id.AlertID    `json:"id"`
	PropertyID id.PropertyID `json:"propertyId"`
	Title      string        `json:"title"`
	Message    string        `json:"message"`
	AlertType  Type          `json:"alertType"`
	Severity   string        `json:"severity"`
	CreatedBy  id.UserID     `json:"createdBy"`
	CreatedAt  time.Time     `json:"createdAt"`

	// Upvotes and Downvotes are mutated only by the external voting
	// collaborator.
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`

	// ScanCount starts at 1 and goes up once per property check that
	// surfaces the alert.
	ScanCount int  `json:"scanCount"`
	IsActive  bool `json:"isActive"`
}

func truncateMessage(s string) string {
	if len(s) <= maxMessageLen {
		return s
	}
	return s[:maxMessageLen]
}
