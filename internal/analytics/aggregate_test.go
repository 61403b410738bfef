package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute_ZeroReviewsAndViews(t *testing.T) {
	stats := Compute(Snapshot{PropertyID: "p1"})

	assert.Zero(t, stats.AverageRating, "no reviews must give exactly 0, not NaN")
	assert.Zero(t, stats.ConversionRate, "no views must give exactly 0, not a division error")
	assert.Zero(t, stats.Revenue)
}

func TestCompute_ConversionRate(t *testing.T) {
	// 10 views, 2 bookings -> 20.00 percent.
	stats := Compute(Snapshot{PropertyID: "p1", Views: 10, Bookings: 2})
	assert.Equal(t, 20.0, stats.ConversionRate)

	// 3 bookings over 7 views rounds to 2 decimals.
	stats = Compute(Snapshot{PropertyID: "p1", Views: 7, Bookings: 3})
	assert.Equal(t, 42.86, stats.ConversionRate)

	// Bookings without views still yield 0 rather than infinity.
	stats = Compute(Snapshot{PropertyID: "p1", Bookings: 5})
	assert.Zero(t, stats.ConversionRate)
}

func TestCompute_AverageRating(t *testing.T) {
	// (5+4)/2 = 4.5
	stats := Compute(Snapshot{PropertyID: "p1", Reviews: 2, RatingSum: 9})
	assert.Equal(t, 4.5, stats.AverageRating)

	// (5+4+4)/3 = 4.333... rounds to 1 decimal.
	stats = Compute(Snapshot{PropertyID: "p1", Reviews: 3, RatingSum: 13})
	assert.Equal(t, 4.3, stats.AverageRating)
}

func TestCompute_PassesCountsThrough(t *testing.T) {
	in := Snapshot{
		PropertyID: "p1",
		Views:      100,
		Favorites:  7,
		Enquiries:  12,
		Bookings:   4,
		Reviews:    3,
		RatingSum:  12,
		Revenue:    1500,
	}
	stats := Compute(in)

	assert.Equal(t, in.Views, stats.Views)
	assert.Equal(t, in.Favorites, stats.Favorites)
	assert.Equal(t, in.Enquiries, stats.Enquiries)
	assert.Equal(t, in.Bookings, stats.Bookings)
	assert.Equal(t, in.Reviews, stats.Reviews)
	assert.Equal(t, in.Revenue, stats.Revenue)
	assert.Equal(t, 4.0, stats.AverageRating)
	assert.Equal(t, 4.0, stats.ConversionRate)
}

func TestSum_PortfolioTotals(t *testing.T) {
	rows := []PropertyStats{
		{PropertyID: "a", Views: 10, Favorites: 1, Enquiries: 2, Bookings: 2, Revenue: 500},
		{PropertyID: "b", Views: 30, Favorites: 4, Enquiries: 1, Bookings: 1, Revenue: 250},
	}

	p := Sum("owner-1", rows)

	assert.Equal(t, "owner-1", p.OwnerID)
	assert.EqualValues(t, 40, p.TotalViews)
	assert.EqualValues(t, 5, p.TotalFavorites)
	assert.EqualValues(t, 3, p.TotalEnquiries)
	assert.EqualValues(t, 3, p.TotalBookings)
	assert.Equal(t, 750.0, p.TotalRevenue)
	assert.Len(t, p.Properties, 2)
}

func TestSum_EmptyPortfolio(t *testing.T) {
	p := Sum("owner-1", nil)

	assert.Zero(t, p.TotalViews)
	assert.Zero(t, p.TotalRevenue)
	assert.Empty(t, p.Properties)
}
