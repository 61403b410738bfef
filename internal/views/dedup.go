// Package views increments a property's view counter at most once per
// viewer. Identified users are deduplicated forever through a unique-index
// ledger table; anonymous viewers are deduplicated by IP within a rolling
// 24-hour window held in a TTL store. The whole path is best-effort: it is
// an analytics signal, not a ledger, so failures are logged and swallowed
// and never fail the property fetch that triggered them.
package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"rentnest-server/internal/models"
	"rentnest-server/internal/observability"
)

// AnonWindow is the period within which repeat anonymous views from the
// same IP do not recount.
const AnonWindow = 24 * time.Hour

// Outcome reports what Record did, mostly for tests and metrics.
type Outcome string

const (
	OutcomeCounted   Outcome = "counted"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeSkipped   Outcome = "skipped" // owner viewing own listing
	OutcomeError     Outcome = "error"
)

// DedupStore is the time-bounded anonymous dedup store. MarkOnce returns
// true when the key was newly set for the window, false when it already
// existed.
type DedupStore interface {
	MarkOnce(ctx context.Context, key string, window time.Duration) (bool, error)
}

// Recorder applies the dedup rules and bumps the counter.
type Recorder struct {
	DB    *gorm.DB
	Store DedupStore
	Log   zerolog.Logger
}

func NewRecorder(db *gorm.DB, store DedupStore, log zerolog.Logger) *Recorder {
	return &Recorder{DB: db, Store: store, Log: log}
}

// Record handles one property detail fetch. viewerID is empty for
// anonymous requests.
func (r *Recorder) Record(ctx context.Context, prop *models.Property, viewerID, ip string) Outcome {
	var out Outcome
	if viewerID != "" {
		out = r.recordUser(ctx, prop, viewerID, ip)
		observability.ObserveView("user", string(out))
	} else {
		out = r.recordAnonymous(ctx, prop, ip)
		observability.ObserveView("anonymous", string(out))
	}
	return out
}

// recordUser inserts into the view ledger guarded by the unique
// (property, user) index. A duplicate-key error is the no-op path, which
// also makes concurrent requests from the same viewer safe: only one
// insert wins and only the winner increments.
func (r *Recorder) recordUser(ctx context.Context, prop *models.Property, viewerID, ip string) Outcome {
	if viewerID == prop.OwnerID {
		return OutcomeSkipped
	}

	view := models.PropertyView{PropertyID: prop.ID, UserID: viewerID, IP: ip}
	if err := r.DB.WithContext(ctx).Create(&view).Error; err != nil {
		if isDuplicateKey(err) {
			return OutcomeDuplicate
		}
		r.Log.Warn().Err(err).Str("property_id", prop.ID).Msg("recording view failed")
		return OutcomeError
	}

	return r.bump(ctx, prop)
}

// recordAnonymous marks the (property, ip) pair in the TTL store and
// increments only when the mark was newly set.
func (r *Recorder) recordAnonymous(ctx context.Context, prop *models.Property, ip string) Outcome {
	if ip == "" {
		return OutcomeSkipped
	}

	first, err := r.Store.MarkOnce(ctx, anonKey(prop.ID, ip), AnonWindow)
	if err != nil {
		r.Log.Warn().Err(err).Str("property_id", prop.ID).Msg("anonymous view dedup failed")
		return OutcomeError
	}
	if !first {
		return OutcomeDuplicate
	}

	return r.bump(ctx, prop)
}

// bump applies the counter update atomically in SQL so concurrent winners
// on different viewers cannot lose increments.
func (r *Recorder) bump(ctx context.Context, prop *models.Property) Outcome {
	err := r.DB.WithContext(ctx).Model(&models.Property{}).
		Where("id = ?", prop.ID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
	if err != nil {
		r.Log.Warn().Err(err).Str("property_id", prop.ID).Msg("incrementing view counter failed")
		return OutcomeError
	}
	return OutcomeCounted
}

func anonKey(propertyID, ip string) string {
	return fmt.Sprintf("view:%s:%s", propertyID, ip)
}

// isDuplicateKey matches both the MySQL error code and GORM's translated
// sentinel, so the check holds under the sqlite test driver too.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	// sqlite reports constraint violations in the message only.
	return err != nil &&
		(strings.Contains(err.Error(), "UNIQUE constraint failed") ||
			strings.Contains(err.Error(), "Duplicate entry"))
}
