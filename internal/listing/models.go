package listing

import (
	"time"

	id "listingguard/pkg/domain"
)

// Listing is one observed posting of a property on one marketplace platform.
// Listings are written by the external ingestion path; this engine only reads
// and aggregates them.
type Listing struct {
	ID         id.ListingID  `json:"id"`
	PropertyID id.PropertyID `json:"propertyId"`
	Platform   string        `json:"platform"`

	// Price 0 means "unknown"; unknown prices stay out of range and average.
	Price float64 `json:"price"`

	SellerPhone string    `json:"sellerPhone,omitempty"`
	SellerEmail string    `json:"sellerEmail,omitempty"`
	SellerName  string    `json:"sellerName,omitempty"`
	ObservedAt  time.Time `json:"observedAt"`
}

// PriceRange is the min/max over listings with a known price.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// HistorySummary is the derived aggregate over a property's listings. It is
// recomputed on every call and never persisted.
type HistorySummary struct {
	PropertyID    id.PropertyID `json:"propertyId"`
	TotalListings int           `json:"totalListings"`
	Platforms     []string      `json:"platforms"`
	PriceRange    PriceRange    `json:"priceRange"`
	AvgPrice      float64       `json:"avgPrice"`
	UniqueSellers int           `json:"uniqueSellers"`

	// ListingFrequency and SuspiciousActivity are reserved for external
	// collaborators (ingestion cadence analysis and the risk scorer); this
	// engine leaves them at zero values.
	ListingFrequency   float64  `json:"listingFrequency"`
	SuspiciousActivity []string `json:"suspiciousActivity,omitempty"`
}

// Summarize computes the aggregate for a listing set. Pure function: order of
// input does not matter and an empty set yields zero counts with a {0,0}
// price range.
func Summarize(propertyID id.PropertyID, listings []Listing) HistorySummary {
	summary := HistorySummary{
		PropertyID:    propertyID,
		TotalListings: len(listings),
	}

	platforms := make(map[string]struct{})
	sellers := make(map[string]struct{})
	var priced int
	var sum float64

	for _, l := range listings {
		if l.Platform != "" {
			if _, seen := platforms[l.Platform]; !seen {
				platforms[l.Platform] = struct{}{}
				summary.Platforms = append(summary.Platforms, l.Platform)
			}
		}
		if l.Price > 0 {
			if priced == 0 || l.Price < summary.PriceRange.Min {
				summary.PriceRange.Min = l.Price
			}
			if l.Price > summary.PriceRange.Max {
				summary.PriceRange.Max = l.Price
			}
			sum += l.Price
			priced++
		}
		// Seller identity is the union of contact channels: any distinct
		// non-empty value counts once, so one person on two channels counts
		// as two when either channel differs.
		for _, contact := range []string{l.SellerPhone, l.SellerEmail, l.SellerName} {
			if contact != "" {
				sellers[contact] = struct{}{}
			}
		}
	}

	if priced > 0 {
		summary.AvgPrice = sum / float64(priced)
	}
	summary.UniqueSellers = len(sellers)
	return summary
}
