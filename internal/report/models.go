package report

import (
	"strings"
	"time"

	id "listingguard/pkg/domain"
)

// Well-known scam type tags. The taxonomy is open; anything outside this set
// classifies as medium severity.
const (
	ScamTypeWireFraud   = "wire_fraud"
	ScamTypeSellerFraud = "seller_fraud"
	ScamTypeFakeListing = "fake_listing"
	ScamTypeRentalScam  = "rental_scam"
	ScamTypeOther       = "other"
)

// Severity orders how urgently a report should be acted on.
type Severity string

const (
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// severityTable is the single source of truth for escalation decisions.
// Report creation and any future re-classification must both read it.
var severityTable = map[string]Severity{
	ScamTypeWireFraud:   SeverityCritical,
	ScamTypeSellerFraud: SeverityCritical,
	ScamTypeFakeListing: SeverityHigh,
	ScamTypeRentalScam:  SeverityHigh,
}

// SeverityOf classifies a scam type. Unknown tags are medium.
func SeverityOf(scamType string) Severity {
	if severity, ok := severityTable[scamType]; ok {
		return severity
	}
	return SeverityMedium
}

// Escalates reports whether a severity warrants a community alert.
func (s Severity) Escalates() bool {
	return s == SeverityHigh || s == SeverityCritical
}

// ReporterType distinguishes human reports from automated ones.
type ReporterType string

const (
	ReporterUser   ReporterType = "user"
	ReporterSystem ReporterType = "system"
)

// ScamReport is a user's assertion that a property is associated with
// fraudulent activity. Immutable once created except for Verified, which only
// a moderation action flips.
type ScamReport struct {
	ID           id.ReportID   `json:"id"`
	PropertyID   id.PropertyID `json:"propertyId"`
	ReportedBy   id.UserID     `json:"reportedBy"`
	ReporterType ReporterType  `json:"reporterType"`
	ScamType     string        `json:"scamType"`
	Severity     Severity      `json:"severity"`
	Description  string        `json:"description"`
	Evidence     []string      `json:"evidence,omitempty"`
	Timestamp    time.Time     `json:"timestamp"`
	Verified     bool          `json:"verified"`
}

// AlertTitle renders a scam type tag as a human-readable alert headline.
func AlertTitle(scamType string) string {
	return strings.ToUpper(strings.ReplaceAll(scamType, "_", " "))
}
