package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	id "listingguard/pkg/domain"
)

func TestSummarize(t *testing.T) {
	propertyID := id.NewPropertyID()
	now := time.Now()

	t.Run("empty set yields zero summary", func(t *testing.T) {
		summary := Summarize(propertyID, nil)

		assert.Equal(t, propertyID, summary.PropertyID)
		assert.Equal(t, 0, summary.TotalListings)
		assert.Empty(t, summary.Platforms)
		assert.Equal(t, PriceRange{}, summary.PriceRange)
		assert.Zero(t, summary.AvgPrice)
		assert.Zero(t, summary.UniqueSellers)
	})

	t.Run("unknown prices stay out of range and average", func(t *testing.T) {
		listings := []Listing{
			{PropertyID: propertyID, Platform: "craigslist", Price: 0, ObservedAt: now},
			{PropertyID: propertyID, Platform: "craigslist", Price: 100, ObservedAt: now},
			{PropertyID: propertyID, Platform: "zillow", Price: 300, ObservedAt: now},
		}

		summary := Summarize(propertyID, listings)

		assert.Equal(t, 3, summary.TotalListings)
		assert.Equal(t, []string{"craigslist", "zillow"}, summary.Platforms)
		assert.Equal(t, PriceRange{Min: 100, Max: 300}, summary.PriceRange)
		assert.InDelta(t, 200, summary.AvgPrice, 0.001)
	})

	t.Run("platforms keep first seen order without duplicates", func(t *testing.T) {
		listings := []Listing{
			{Platform: "zillow"},
			{Platform: "craigslist"},
			{Platform: "zillow"},
			{Platform: "facebook"},
		}

		summary := Summarize(propertyID, listings)

		assert.Equal(t, []string{"zillow", "craigslist", "facebook"}, summary.Platforms)
	})

	t.Run("sellers count distinct contact values across channels", func(t *testing.T) {
		listings := []Listing{
			{SellerPhone: "555-0100", SellerEmail: "a@example.com"},
			{SellerPhone: "555-0100", SellerName: "Sam"},
			{SellerEmail: "b@example.com"},
		}

		summary := Summarize(propertyID, listings)

		// 555-0100, a@example.com, Sam, b@example.com
		assert.Equal(t, 4, summary.UniqueSellers)
	})

	t.Run("single priced listing collapses the range", func(t *testing.T) {
		summary := Summarize(propertyID, []Listing{{Price: 1500}})

		assert.Equal(t, PriceRange{Min: 1500, Max: 1500}, summary.PriceRange)
		assert.InDelta(t, 1500, summary.AvgPrice, 0.001)
	})

	t.Run("input order does not change the aggregate", func(t *testing.T) {
		forward := []Listing{
			{Platform: "zillow", Price: 300},
			{Platform: "craigslist", Price: 100},
		}
		reversed := []Listing{forward[1], forward[0]}

		a := Summarize(propertyID, forward)
		b := Summarize(propertyID, reversed)

		assert.Equal(t, a.PriceRange, b.PriceRange)
		assert.Equal(t, a.AvgPrice, b.AvgPrice)
		assert.Equal(t, a.TotalListings, b.TotalListings)
		assert.ElementsMatch(t, a.Platforms, b.Platforms)
	})
}
