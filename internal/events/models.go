package events

import (
	"time"

	id "listingguard/pkg/domain"
)

// Type names a domain occurrence worth telling other systems about.
type Type string

const (
	TypePropertyChecked Type = "property_checked"
	TypeReportFiled     Type = "report_filed"
	TypeAlertRaised     Type = "alert_raised"
	TypeWatchUpserted   Type = "watch_upserted"
)

// Event is emitted from domain logic when something notable happens to a
// property. Keep it transport-agnostic so sinks can fan out.
type Event struct {
	Type       Type          `json:"type"`
	Timestamp  time.Time     `json:"timestamp"`
	PropertyID id.PropertyID `json:"propertyId"`
	UserID     id.UserID     `json:"userId,omitempty"`
	Severity   string        `json:"severity,omitempty"`
	Detail     string        `json:"detail,omitempty"`
}
