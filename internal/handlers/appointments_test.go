package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentnest-server/internal/models"
)

// slotAt builds a window on a fixed day three days out so the
// future-start check never interferes.
func slotAt(hour, min, durationMin int) (time.Time, time.Time) {
	day := time.Now().UTC().AddDate(0, 0, 3)
	start := time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, time.UTC)
	return start, start.Add(time.Duration(durationMin) * time.Minute)
}

func appointmentBody(kind, resourceID string, start, end time.Time) map[string]interface{} {
	return map[string]interface{}{
		"kind":       kind,
		"resourceId": resourceID,
		"startTime":  start.Format(time.RFC3339),
		"endTime":    end.Format(time.RFC3339),
		"reason":     "initial viewing",
	}
}

func TestCreateAppointment_VisitConflict(t *testing.T) {
	app := newTestApp(t)

	owner, _ := app.createUser(t, "owner@example.com", models.RoleOwner)
	_, tenant1Token := app.createUser(t, "tenant1@example.com", models.RoleTenant)
	_, tenant2Token := app.createUser(t, "tenant2@example.com", models.RoleTenant)
	prop := app.createProperty(t, owner.ID)

	start, end := slotAt(14, 0, 60)
	w := app.do(t, http.MethodPost, "/api/v1/appointments", tenant1Token,
		appointmentBody("visit", prop.ID, start, end))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, app.notifier.has("appointment:requested"))

	// Overlapping request from another tenant loses.
	start2, end2 := slotAt(14, 30, 60)
	w = app.do(t, http.MethodPost, "/api/v1/appointments", tenant2Token,
		appointmentBody("visit", prop.ID, start2, end2))
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// Back-to-back is fine: intervals are half-open.
	start3, end3 := slotAt(15, 0, 60)
	w = app.do(t, http.MethodPost, "/api/v1/appointments", tenant2Token,
		appointmentBody("visit", prop.ID, start3, end3))
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var count int64
	require.NoError(t, app.db.Model(&models.Appointment{}).
		Where("resource_id = ?", prop.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestCreateAppointment_Validation(t *testing.T) {
	app := newTestApp(t)

	owner, ownerToken := app.createUser(t, "owner@example.com", models.RoleOwner)
	_, tenantToken := app.createUser(t, "tenant@example.com", models.RoleTenant)
	prop := app.createProperty(t, owner.ID)

	t.Run("past start", func(t *testing.T) {
		start := time.Now().UTC().Add(-2 * time.Hour)
		w := app.do(t, http.MethodPost, "/api/v1/appointments", tenantToken,
			appointmentBody("visit", prop.ID, start, start.Add(time.Hour)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("zero length window", func(t *testing.T) {
		start, _ := slotAt(9, 0, 60)
		w := app.do(t, http.MethodPost, "/api/v1/appointments", tenantToken,
			appointmentBody("visit", prop.ID, start, start))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("window spans two days", func(t *testing.T) {
		start, _ := slotAt(23, 0, 0)
		w := app.do(t, http.MethodPost, "/api/v1/appointments", tenantToken,
			appointmentBody("visit", prop.ID, start, start.Add(2*time.Hour)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("owner booking own property", func(t *testing.T) {
		start, end := slotAt(10, 0, 60)
		w := app.do(t, http.MethodPost, "/api/v1/appointments", ownerToken,
			appointmentBody("visit", prop.ID, start, end))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown property", func(t *testing.T) {
		start, end := slotAt(10, 0, 60)
		w := app.do(t, http.MethodPost, "/api/v1/appointments", tenantToken,
			appointmentBody("visit", "7b0c4f70-0000-0000-0000-000000000000", start, end))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		start, end := slotAt(10, 0, 60)
		w := app.do(t, http.MethodPost, "/api/v1/appointments", "",
			appointmentBody("visit", prop.ID, start, end))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestUpdateAppointmentStatus_ConsultationConfirm(t *testing.T) {
	app := newTestApp(t)

	expert, expertToken := app.createUser(t, "expert@example.com", models.RoleExpert)
	_, tenant1Token := app.createUser(t, "tenant1@example.com", models.RoleTenant)
	_, tenant2Token := app.createUser(t, "tenant2@example.com", models.RoleTenant)

	// Pending consultations do not hold the slot, so both requests land.
	start1, end1 := slotAt(10, 0, 60)
	w := app.do(t, http.MethodPost, "/api/v1/appointments", tenant1Token,
		appointmentBody("consultation", expert.ID, start1, end1))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var first struct {
		ID string `json:"id"`
	}
	decodeData(t, w, &first)

	start2, end2 := slotAt(10, 30, 60)
	w = app.do(t, http.MethodPost, "/api/v1/appointments", tenant2Token,
		appointmentBody("consultation", expert.ID, start2, end2))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var second struct {
		ID string `json:"id"`
	}
	decodeData(t, w, &second)

	// Expert schedules the first; the slot is now held.
	w = app.do(t, http.MethodPatch, "/api/v1/appointments/"+first.ID+"/status", expertToken,
		map[string]interface{}{"status": "scheduled"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Scheduling the overlapping one must fail the re-check.
	w = app.do(t, http.MethodPatch, "/api/v1/appointments/"+second.ID+"/status", expertToken,
		map[string]interface{}{"status": "scheduled"})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	var stored models.Appointment
	require.NoError(t, app.db.First(&stored, "id = ?", second.ID).Error)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestUpdateAppointmentStatus_RequesterRules(t *testing.T) {
	app := newTestApp(t)

	owner, _ := app.createUser(t, "owner@example.com", models.RoleOwner)
	_, tenant1Token := app.createUser(t, "tenant1@example.com", models.RoleTenant)
	_, tenant2Token := app.createUser(t, "tenant2@example.com", models.RoleTenant)
	prop := app.createProperty(t, owner.ID)

	start, end := slotAt(14, 0, 60)
	w := app.do(t, http.MethodPost, "/api/v1/appointments", tenant1Token,
		appointmentBody("visit", prop.ID, start, end))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var appt struct {
		ID string `json:"id"`
	}
	decodeData(t, w, &appt)

	// The requester cannot confirm their own visit.
	w = app.do(t, http.MethodPatch, "/api/v1/appointments/"+appt.ID+"/status", tenant1Token,
		map[string]interface{}{"status": "confirmed"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// An unrelated tenant cannot touch it at all.
	w = app.do(t, http.MethodPatch, "/api/v1/appointments/"+appt.ID+"/status", tenant2Token,
		map[string]interface{}{"status": "cancelled"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Cancelling own appointment works and frees the slot.
	w = app.do(t, http.MethodPatch, "/api/v1/appointments/"+appt.ID+"/status", tenant1Token,
		map[string]interface{}{"status": "cancelled"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(t, http.MethodPost, "/api/v1/appointments", tenant2Token,
		appointmentBody("visit", prop.ID, start, end))
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}
