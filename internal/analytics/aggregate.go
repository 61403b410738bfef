// Package analytics computes read-only derived statistics for a property
// or an owner's portfolio. The arithmetic is a pure function over a
// Snapshot; the Aggregator gathers snapshots from the database and fans
// out across a portfolio.
package analytics

import (
	"math"
)

// Snapshot holds the raw interaction counts for one property, gathered in
// a single pass by the repository side.
type Snapshot struct {
	PropertyID string
	Views      int64
	Favorites  int64
	Enquiries  int64
	Bookings   int64
	Reviews    int64
	RatingSum  int64
	Revenue    float64 // sum of booking token amounts
}

// PropertyStats is the derived metric block returned to owners.
type PropertyStats struct {
	PropertyID     string  `json:"propertyId"`
	Title          string  `json:"title,omitempty"`
	Views          int64   `json:"views"`
	Favorites      int64   `json:"favorites"`
	Enquiries      int64   `json:"enquiries"`
	Bookings       int64   `json:"bookings"`
	Reviews        int64   `json:"reviews"`
	AverageRating  float64 `json:"averageRating"`  // 1 decimal, 0 when no reviews
	ConversionRate float64 `json:"conversionRate"` // percent, 2 decimals, 0 when no views
	Revenue        float64 `json:"revenue"`
}

// PortfolioStats sums per-property rows for an owner. The totals are
// order-independent: summing N per-property computations gives the same
// result as one pass over the joined data.
type PortfolioStats struct {
	OwnerID        string          `json:"ownerId"`
	Properties     []PropertyStats `json:"properties"`
	TotalViews     int64           `json:"totalViews"`
	TotalFavorites int64           `json:"totalFavorites"`
	TotalEnquiries int64           `json:"totalEnquiries"`
	TotalBookings  int64           `json:"totalBookings"`
	TotalRevenue   float64         `json:"totalRevenue"`
}

// Compute derives the stats block from a snapshot. Zero-review and
// zero-view inputs yield exact zeros, never NaN.
func Compute(in Snapshot) PropertyStats {
	s := PropertyStats{
		PropertyID: in.PropertyID,
		Views:      in.Views,
		Favorites:  in.Favorites,
		Enquiries:  in.Enquiries,
		Bookings:   in.Bookings,
		Reviews:    in.Reviews,
		Revenue:    in.Revenue,
	}
	if in.Reviews > 0 {
		s.AverageRating = round1(float64(in.RatingSum) / float64(in.Reviews))
	}
	if in.Views > 0 {
		s.ConversionRate = round2(float64(in.Bookings) / float64(in.Views) * 100)
	}
	return s
}

// Sum folds per-property rows into portfolio totals.
func Sum(ownerID string, rows []PropertyStats) PortfolioStats {
	p := PortfolioStats{OwnerID: ownerID, Properties: rows}
	for _, r := range rows {
		p.TotalViews += r.Views
		p.TotalFavorites += r.Favorites
		p.TotalEnquiries += r.Enquiries
		p.TotalBookings += r.Bookings
		p.TotalRevenue += r.Revenue
	}
	return p
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
