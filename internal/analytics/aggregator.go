package analytics

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"rentnest-server/internal/apperr"
	"rentnest-server/internal/models"
)

// portfolioConcurrency bounds the per-property fan-out for owner queries.
const portfolioConcurrency = 4

// Aggregator gathers interaction snapshots from the database and derives
// stats. It holds no state beyond its collaborators; every call is a pure
// read.
type Aggregator struct {
	DB  *gorm.DB
	Log zerolog.Logger
}

func NewAggregator(db *gorm.DB, log zerolog.Logger) *Aggregator {
	return &Aggregator{DB: db, Log: log}
}

// snapshot counts a single property's interactions. Bookings count every
// non-cancelled row; revenue sums token amounts of confirmed and completed
// bookings; hidden reviews are excluded from the rating.
func (a *Aggregator) snapshot(ctx context.Context, prop *models.Property) (Snapshot, error) {
	db := a.DB.WithContext(ctx)
	s := Snapshot{PropertyID: prop.ID, Views: prop.Views}

	if err := db.Model(&models.Favorite{}).
		Where("property_id = ?", prop.ID).Count(&s.Favorites).Error; err != nil {
		return s, fmt.Errorf("counting favorites: %w", err)
	}
	if err := db.Model(&models.Enquiry{}).
		Where("property_id = ?", prop.ID).Count(&s.Enquiries).Error; err != nil {
		return s, fmt.Errorf("counting enquiries: %w", err)
	}
	if err := db.Model(&models.Booking{}).
		Where("property_id = ? AND status <> ?", prop.ID, models.BookingCancelled).
		Count(&s.Bookings).Error; err != nil {
		return s, fmt.Errorf("counting bookings: %w", err)
	}

	type ratingRow struct {
		Cnt int64
		Sum int64
	}
	var rr ratingRow
	if err := db.Model(&models.Review{}).
		Select("COUNT(*) AS cnt, COALESCE(SUM(rating), 0) AS sum").
		Where("property_id = ? AND visibility = ?", prop.ID, models.ReviewVisible).
		Scan(&rr).Error; err != nil {
		return s, fmt.Errorf("summing ratings: %w", err)
	}
	s.Reviews = rr.Cnt
	s.RatingSum = rr.Sum

	var revenue float64
	if err := db.Model(&models.Booking{}).
		Select("COALESCE(SUM(token_amount), 0)").
		Where("property_id = ? AND status IN ?", prop.ID,
			[]models.BookingStatus{models.BookingConfirmed, models.BookingCompleted}).
		Scan(&revenue).Error; err != nil {
		return s, fmt.Errorf("summing revenue: %w", err)
	}
	s.Revenue = revenue

	return s, nil
}

// ForProperty computes the stats block for one property.
func (a *Aggregator) ForProperty(ctx context.Context, propertyID string) (PropertyStats, error) {
	var prop models.Property
	if err := a.DB.WithContext(ctx).First(&prop, "id = ?", propertyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return PropertyStats{}, apperr.ErrNotFound
		}
		return PropertyStats{}, err
	}

	snap, err := a.snapshot(ctx, &prop)
	if err != nil {
		return PropertyStats{}, err
	}
	stats := Compute(snap)
	stats.Title = prop.Title
	return stats, nil
}

// ForOwner resolves the owner's active, visible properties and computes
// per-property stats concurrently. A property whose data cannot be read is
// omitted with a warning rather than failing the whole request.
func (a *Aggregator) ForOwner(ctx context.Context, ownerID string) (PortfolioStats, error) {
	var props []models.Property
	err := a.DB.WithContext(ctx).
		Where("owner_id = ? AND lifecycle = ? AND is_visible = ?",
			ownerID, models.PropertyActive, true).
		Find(&props).Error
	if err != nil {
		return PortfolioStats{}, err
	}

	var (
		mu   sync.Mutex
		rows []PropertyStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(portfolioConcurrency)
	for i := range props {
		prop := &props[i]
		g.Go(func() error {
			snap, err := a.snapshot(gctx, prop)
			if err != nil {
				a.Log.Warn().Err(err).Str("property_id", prop.ID).
					Msg("skipping property in portfolio stats")
				return nil
			}
			stats := Compute(snap)
			stats.Title = prop.Title
			mu.Lock()
			rows = append(rows, stats)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return PortfolioStats{}, err
	}

	// Stable output order regardless of goroutine completion order.
	sort.Slice(rows, func(i, j int) bool { return rows[i].PropertyID < rows[j].PropertyID })

	return Sum(ownerID, rows), nil
}
