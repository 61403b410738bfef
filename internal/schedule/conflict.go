// Package schedule implements the slot conflict check for property visits
// and expert consultations. The check itself is a pure function over the
// resource's same-day appointments; the write path wraps it in a locking
// transaction so two concurrent requests for the same window cannot both
// pass.
package schedule

import (
	"time"

	"rentnest-server/internal/apperr"
	"rentnest-server/internal/models"
)

// Window is a half-open time interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Validate rejects zero-length and inverted windows before any conflict
// checking happens.
func (w Window) Validate() error {
	if !w.End.After(w.Start) {
		return apperr.Validation("appointment window must have a positive duration")
	}
	return nil
}

// Overlaps reports whether two half-open intervals intersect. Exact
// adjacency (w.End == other.Start) is not an overlap.
func (w Window) Overlaps(other Window) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}

// slotHolding returns the statuses that still occupy a slot for the given
// appointment kind. Visits hold their slot from the moment they are
// requested; consultations only once the expert has scheduled or confirmed
// them.
func slotHolding(kind models.AppointmentKind) []models.AppointmentStatus {
	if kind == models.KindVisit {
		return []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}
	}
	return []models.AppointmentStatus{models.StatusScheduled, models.StatusConfirmed}
}

// HoldsSlot reports whether an appointment with the given status still
// blocks its window. Cancelled, rejected, completed and no-show rows never
// block a new booking.
func HoldsSlot(kind models.AppointmentKind, status models.AppointmentStatus) bool {
	for _, s := range slotHolding(kind) {
		if s == status {
			return true
		}
	}
	return false
}

// FindConflict returns the first existing appointment whose window overlaps
// the requested one, or nil when the slot is free. Only slot-holding
// statuses are considered; callers pass the resource's appointments for the
// requested date.
func FindConflict(existing []models.Appointment, kind models.AppointmentKind, w Window) *models.Appointment {
	for i := range existing {
		a := &existing[i]
		if !HoldsSlot(kind, a.Status) {
			continue
		}
		if w.Overlaps(Window{Start: a.StartTime, End: a.EndTime}) {
			return a
		}
	}
	return nil
}

// CheckAvailable validates the window and runs the conflict scan, returning
// apperr.ErrSlotUnavailable when the slot is taken.
func CheckAvailable(existing []models.Appointment, kind models.AppointmentKind, w Window) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if FindConflict(existing, kind, w) != nil {
		return apperr.ErrSlotUnavailable
	}
	return nil
}
