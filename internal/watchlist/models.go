package watchlist

import (
	"time"

	id "listingguard/pkg/domain"
)

// DefaultAlertTypes is the fixed notification set every new watch starts
// with. Per-type opt-out beyond the initial write is not supported yet.
func DefaultAlertTypes() []string {
	return []string{"price_change", "new_listing", "scam_report", "community_alert"}
}

// PropertyWatch says one user wants to hear about changes to one property.
// At most one watch exists per (user, property) pair; re-adding updates the
// existing record.
type PropertyWatch struct {
	UserID               id.UserID     `json:"userId"`
	PropertyID           id.PropertyID `json:"propertyId"`
	AddedAt              time.Time     `json:"addedAt"`
	LastChecked          time.Time     `json:"lastChecked"`
	NotificationsEnabled bool          `json:"notificationsEnabled"`
	AlertTypes           []string      `json:"alertTypes"`
}
