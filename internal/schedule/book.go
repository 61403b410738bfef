package schedule

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rentnest-server/internal/models"
)

// Book inserts an appointment after a conflict check, inside one
// transaction. The same-day slot-holding rows for the resource are read
// under a row lock, so two concurrent requests for the same window are
// serialized at the data layer and the loser gets ErrSlotUnavailable.
// Multiple server processes behind a load balancer are covered because the
// lock lives in the database, not in process memory.
func Book(db *gorm.DB, appt *models.Appointment) error {
	w := Window{Start: appt.StartTime, End: appt.EndTime}
	if err := w.Validate(); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var existing []models.Appointment
		err := ForUpdate(tx).
			Where("resource_id = ? AND date = ? AND status IN ?",
				appt.ResourceID, appt.Date, slotHolding(appt.Kind)).
			Find(&existing).Error
		if err != nil {
			return fmt.Errorf("loading existing appointments: %w", err)
		}

		if err := CheckAvailable(existing, appt.Kind, w); err != nil {
			return err
		}

		return tx.Create(appt).Error
	})
}

// ForUpdate adds a row lock on dialects that support it. SQLite (used in
// tests) serializes writers on its own and rejects the clause.
func ForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
