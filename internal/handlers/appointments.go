package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"rentnest-server/internal/apperr"
	"rentnest-server/internal/middleware"
	"rentnest-server/internal/models"
	"rentnest-server/internal/notify"
	"rentnest-server/internal/observability"
	"rentnest-server/internal/schedule"
	"rentnest-server/internal/utils"
)

// AppointmentHandler handles property visits and expert consultations.
type AppointmentHandler struct {
	DB       *gorm.DB
	Notifier notify.Notifier
	Log      zerolog.Logger
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, notifier notify.Notifier, log zerolog.Logger) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Notifier: notifier, Log: log}
}

// CreateAppointmentRequest represents the request body for requesting a
// visit or consultation.
type CreateAppointmentRequest struct {
	Kind       string    `json:"kind" binding:"required,oneof=visit consultation"`
	ResourceID string    `json:"resourceId" binding:"required,uuid"`
	StartTime  time.Time `json:"startTime" binding:"required"`
	EndTime    time.Time `json:"endTime" binding:"required"`
	Reason     string    `json:"reason"`
	Notes      string    `json:"notes"`
}

// CreateAppointment handles requesting a new visit or consultation. The
// insert goes through the locking conflict check, so a request that would
// double-book the property or expert is rejected with 409.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	requesterID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Requester ID not found in token")
		return
	}

	kind := models.AppointmentKind(req.Kind)
	if err := h.verifyResource(kind, req.ResourceID, requesterID); err != nil {
		utils.FromAppError(c, err)
		return
	}

	if req.StartTime.Before(time.Now()) {
		utils.BadRequest(c, "Appointment must be in the future")
		return
	}
	if !req.EndTime.After(req.StartTime) {
		utils.BadRequest(c, "Appointment window must have a positive duration")
		return
	}
	// The window must stay within one calendar day; an end exactly at
	// midnight still belongs to the starting day (half-open interval).
	startDay := req.StartTime.UTC().Format("2006-01-02")
	endDay := req.EndTime.UTC().Add(-time.Second).Format("2006-01-02")
	if startDay != endDay {
		utils.BadRequest(c, "Appointment must start and end on the same day")
		return
	}

	appointment := models.Appointment{
		Kind:        kind,
		ResourceID:  req.ResourceID,
		RequesterID: requesterID,
		Date:        req.StartTime.UTC().Format("2006-01-02"),
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      models.StatusPending,
		Reason:      req.Reason,
		Notes:       req.Notes,
	}

	if err := schedule.Book(h.DB, &appointment); err != nil {
		if errors.Is(err, apperr.ErrSlotUnavailable) {
			observability.SlotRejections.Inc()
		} else if !errors.Is(err, apperr.ErrValidation) {
			h.Log.Error().Err(err).Str("resource_id", req.ResourceID).Msg("booking appointment failed")
		}
		utils.FromAppError(c, err)
		return
	}

	h.Notifier.Notify(req.ResourceID, "appointment:requested", appointment)

	utils.Created(c, "Appointment requested successfully", appointment)
}

// verifyResource checks the booking target exists and makes sense for the
// appointment kind.
func (h *AppointmentHandler) verifyResource(kind models.AppointmentKind, resourceID, requesterID string) error {
	switch kind {
	case models.KindVisit:
		var property models.Property
		if err := h.DB.First(&property, "id = ?", resourceID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.ErrNotFound
			}
			return err
		}
		if property.Lifecycle != models.PropertyActive {
			return apperr.ErrNotFound
		}
		if property.OwnerID == requesterID {
			return apperr.Validation("cannot book a visit to your own property")
		}
	case models.KindConsultation:
		var expert models.User
		if err := h.DB.First(&expert, "id = ? AND role = ?", resourceID, models.RoleExpert).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.ErrNotFound
			}
			return err
		}
		if expert.ID == requesterID {
			return apperr.Validation("cannot book a consultation with yourself")
		}
	}
	return nil
}

// GetAppointmentsForUser fetches appointments for the logged-in user:
// requesters see their own, owners and experts see the ones against their
// resources, admins see everything.
func (h *AppointmentHandler) GetAppointmentsForUser(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	var appointments []models.Appointment
	query := h.DB.Order("start_time asc")

	var err error
	switch userRole {
	case models.RoleAdmin:
		err = query.Find(&appointments).Error
	case models.RoleOwner:
		// Appointments against any of the owner's properties, plus their own requests.
		sub := h.DB.Model(&models.Property{}).Select("id").Where("owner_id = ?", userID)
		err = query.Where("requester_id = ? OR (kind = ? AND resource_id IN (?))",
			userID, models.KindVisit, sub).Find(&appointments).Error
	case models.RoleExpert:
		err = query.Where("requester_id = ? OR (kind = ? AND resource_id = ?)",
			userID, models.KindConsultation, userID).Find(&appointments).Error
	default:
		err = query.Where("requester_id = ?", userID).Find(&appointments).Error
	}

	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments")
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetAppointmentByID fetches a single appointment. Accessible by the
// requester, the resource holder, or an admin.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error")
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	if userRole != models.RoleAdmin && userID != appointment.RequesterID && !h.holdsResource(userID, &appointment) {
		utils.Forbidden(c, "You are not authorized to view this appointment")
		return
	}

	utils.Success(c, "Appointment fetched successfully", appointment)
}

// holdsResource reports whether the user is the property owner (visits) or
// the expert (consultations) the appointment is booked against.
func (h *AppointmentHandler) holdsResource(userID string, a *models.Appointment) bool {
	if a.Kind == models.KindConsultation {
		return userID == a.ResourceID
	}
	var property models.Property
	if err := h.DB.First(&property, "id = ?", a.ResourceID).Error; err != nil {
		return false
	}
	return property.OwnerID == userID
}

// UpdateAppointmentStatusRequest represents the request body for a status
// transition.
type UpdateAppointmentStatusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required,oneof=scheduled confirmed cancelled completed rejected no_show"`
	Notes  string                   `json:"notes"`
}

// UpdateAppointmentStatus applies a status transition. The resource holder
// (property owner or expert) and admins may apply any transition; the
// requester may only cancel. Moving an appointment into a slot-holding
// status re-runs the conflict check so an expert cannot confirm two
// overlapping consultations. The counterpart is notified fire-and-forget
// after the write commits.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error")
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	canUpdate := false
	if userRole == models.RoleAdmin || h.holdsResource(userID, &appointment) {
		canUpdate = true
	} else if userID == appointment.RequesterID {
		// Requesters can only cancel, and only before the appointment is over.
		if req.Status != models.StatusCancelled {
			utils.Forbidden(c, "You may only cancel your own appointment")
			return
		}
		if appointment.Status == models.StatusCompleted || appointment.Status == models.StatusRejected {
			utils.BadRequest(c, "Appointment can no longer be cancelled")
			return
		}
		canUpdate = true
	}

	if !canUpdate {
		utils.Forbidden(c, "You are not authorized to update this appointment")
		return
	}

	if err := h.transition(&appointment, req.Status, req.Notes); err != nil {
		if errors.Is(err, apperr.ErrSlotUnavailable) {
			observability.SlotRejections.Inc()
		} else if !errors.Is(err, apperr.ErrValidation) {
			h.Log.Error().Err(err).Str("appointment_id", appointment.ID).Msg("status transition failed")
		}
		utils.FromAppError(c, err)
		return
	}

	// Fire-and-forget: a failed notification never rolls back the transition.
	h.Notifier.Notify(appointment.RequesterID, "appointment:"+string(req.Status), appointment)

	utils.Success(c, "Appointment status updated successfully", appointment)
}

// transition persists a status change. When the new status starts holding
// the slot and the old one did not, the same-day rows are re-read under a
// row lock and checked for overlap first.
func (h *AppointmentHandler) transition(appointment *models.Appointment, status models.AppointmentStatus, notes string) error {
	entersSlot := schedule.HoldsSlot(appointment.Kind, status) &&
		!schedule.HoldsSlot(appointment.Kind, appointment.Status)

	return h.DB.Transaction(func(tx *gorm.DB) error {
		if entersSlot {
			var existing []models.Appointment
			err := schedule.ForUpdate(tx).
				Where("resource_id = ? AND date = ? AND id <> ?",
					appointment.ResourceID, appointment.Date, appointment.ID).
				Find(&existing).Error
			if err != nil {
				return err
			}
			w := schedule.Window{Start: appointment.StartTime, End: appointment.EndTime}
			if err := schedule.CheckAvailable(existing, appointment.Kind, w); err != nil {
				return err
			}
		}

		appointment.Status = status
		if notes != "" {
			appointment.Notes = notes
		}
		return tx.Save(appointment).Error
	})
}
