package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentnest-server/internal/apperr"
	"rentnest-server/internal/models"
)

func at(hour, min int) time.Time {
	return time.Date(2024, 6, 1, hour, min, 0, 0, time.UTC)
}

func appt(kind models.AppointmentKind, status models.AppointmentStatus, start, end time.Time) models.Appointment {
	return models.Appointment{
		Kind:       kind,
		ResourceID: "expert-1",
		Date:       "2024-06-01",
		StartTime:  start,
		EndTime:    end,
		Status:     status,
	}
}

func TestWindowOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Window
		want bool
	}{
		{"full overlap", Window{at(14, 0), at(15, 0)}, Window{at(14, 0), at(15, 0)}, true},
		{"partial overlap", Window{at(14, 0), at(15, 0)}, Window{at(14, 30), at(15, 30)}, true},
		{"containment", Window{at(14, 0), at(16, 0)}, Window{at(14, 30), at(15, 0)}, true},
		{"adjacent after", Window{at(14, 0), at(15, 0)}, Window{at(15, 0), at(16, 0)}, false},
		{"adjacent before", Window{at(14, 0), at(15, 0)}, Window{at(13, 0), at(14, 0)}, false},
		{"disjoint", Window{at(14, 0), at(15, 0)}, Window{at(16, 0), at(17, 0)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestWindowValidate(t *testing.T) {
	assert.NoError(t, Window{at(14, 0), at(15, 0)}.Validate())

	err := Window{at(14, 0), at(14, 0)}.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	assert.ErrorIs(t, Window{at(15, 0), at(14, 0)}.Validate(), apperr.ErrValidation)
}

func TestHoldsSlot(t *testing.T) {
	// Visits hold their slot from the moment they are requested.
	assert.True(t, HoldsSlot(models.KindVisit, models.StatusPending))
	assert.True(t, HoldsSlot(models.KindVisit, models.StatusConfirmed))
	assert.False(t, HoldsSlot(models.KindVisit, models.StatusScheduled))

	// Consultations only once the expert has scheduled or confirmed.
	assert.True(t, HoldsSlot(models.KindConsultation, models.StatusScheduled))
	assert.True(t, HoldsSlot(models.KindConsultation, models.StatusConfirmed))
	assert.False(t, HoldsSlot(models.KindConsultation, models.StatusPending))

	// Terminal states never block, for either kind.
	for _, kind := range []models.AppointmentKind{models.KindVisit, models.KindConsultation} {
		for _, status := range []models.AppointmentStatus{
			models.StatusCancelled, models.StatusRejected,
			models.StatusCompleted, models.StatusNoShow,
		} {
			assert.False(t, HoldsSlot(kind, status), "%s/%s should not hold a slot", kind, status)
		}
	}
}

func TestCheckAvailable_ConfirmedSlotBlocksOverlap(t *testing.T) {
	existing := []models.Appointment{
		appt(models.KindConsultation, models.StatusConfirmed, at(14, 0), at(15, 0)),
	}

	// 14:30-15:30 overlaps the confirmed 14:00-15:00 slot.
	err := CheckAvailable(existing, models.KindConsultation, Window{at(14, 30), at(15, 30)})
	assert.ErrorIs(t, err, apperr.ErrSlotUnavailable)

	// 15:00-16:00 is adjacent and must succeed.
	assert.NoError(t, CheckAvailable(existing, models.KindConsultation, Window{at(15, 0), at(16, 0)}))
}

func TestCheckAvailable_CancelledNeverBlocks(t *testing.T) {
	existing := []models.Appointment{
		appt(models.KindConsultation, models.StatusCancelled, at(14, 0), at(15, 0)),
		appt(models.KindConsultation, models.StatusRejected, at(14, 0), at(15, 0)),
	}

	assert.NoError(t, CheckAvailable(existing, models.KindConsultation, Window{at(14, 0), at(15, 0)}))
}

func TestCheckAvailable_ZeroLengthRejectedBeforeScan(t *testing.T) {
	existing := []models.Appointment{
		appt(models.KindConsultation, models.StatusConfirmed, at(14, 0), at(15, 0)),
	}

	err := CheckAvailable(existing, models.KindConsultation, Window{at(14, 0), at(14, 0)})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestFindConflict_ReturnsBlockingAppointment(t *testing.T) {
	blocker := appt(models.KindVisit, models.StatusPending, at(10, 0), at(11, 0))
	existing := []models.Appointment{
		appt(models.KindVisit, models.StatusCancelled, at(10, 0), at(11, 0)),
		blocker,
	}

	got := FindConflict(existing, models.KindVisit, Window{at(10, 30), at(11, 30)})
	require.NotNil(t, got)
	assert.Equal(t, blocker.Status, got.Status)

	assert.Nil(t, FindConflict(existing, models.KindVisit, Window{at(11, 0), at(12, 0)}))
}
