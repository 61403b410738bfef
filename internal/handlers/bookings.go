package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"rentnest-server/internal/middleware"
	"rentnest-server/internal/models"
	"rentnest-server/internal/notify"
	"rentnest-server/internal/utils"
)

// BookingHandler handles rental bookings.
type BookingHandler struct {
	DB       *gorm.DB
	Notifier notify.Notifier
	Email    notify.EmailSender
	WhatsApp notify.WhatsAppSender
	Log      zerolog.Logger
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(db *gorm.DB, notifier notify.Notifier, email notify.EmailSender, whatsapp notify.WhatsAppSender, log zerolog.Logger) *BookingHandler {
	return &BookingHandler{DB: db, Notifier: notifier, Email: email, WhatsApp: whatsapp, Log: log}
}

// CreateBookingRequest represents the request body for placing a booking.
type CreateBookingRequest struct {
	PropertyID string    `json:"propertyId" binding:"required,uuid"`
	MoveInDate time.Time `json:"moveInDate" binding:"required"`
	Notes      string    `json:"notes"`
}

// CreateBooking places a booking on an active property. The token amount
// and rent are copied from the listing at booking time so later price
// edits do not rewrite history.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	tenantID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Tenant ID not found in token")
		return
	}

	var property models.Property
	if err := h.DB.First(&property, "id = ?", req.PropertyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Property not found")
		} else {
			utils.InternalServerError(c, "Database error")
		}
		return
	}
	if property.Lifecycle != models.PropertyActive {
		utils.NotFound(c, "Property not found")
		return
	}
	if property.OwnerID == tenantID {
		utils.BadRequest(c, "You cannot book your own property")
		return
	}

	// One live booking per tenant/property at a time.
	var existing int64
	h.DB.Model(&models.Booking{}).
		Where("tenant_id = ? AND property_id = ? AND status IN ?", tenantID, req.PropertyID,
			[]models.BookingStatus{models.BookingPending, models.BookingConfirmed}).
		Count(&existing)
	if existing > 0 {
		utils.BadRequest(c, "You already have an active booking for this property")
		return
	}

	booking := models.Booking{
		TenantID:    tenantID,
		PropertyID:  property.ID,
		OwnerID:     property.OwnerID,
		TokenAmount: property.TokenAmount,
		MonthlyRent: property.MonthlyRent,
		MoveInDate:  req.MoveInDate,
		Status:      models.BookingPending,
		Notes:       req.Notes,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		return tx.Model(&models.Property{}).Where("id = ?", property.ID).
			UpdateColumn("booking_cnt", gorm.Expr("booking_cnt + 1")).Error
	})
	if err != nil {
		h.Log.Error().Err(err).Str("property_id", property.ID).Msg("creating booking failed")
		utils.InternalServerError(c, "Failed to create booking")
		return
	}

	h.Notifier.Notify(property.OwnerID, "booking:requested", booking)
	if err := h.Email.SendEmail(property.OwnerID, "New booking request", "A tenant requested to book "+property.Title); err != nil {
		h.Log.Warn().Err(err).Msg("booking email failed")
	}

	utils.Created(c, "Booking placed successfully", booking)
}

// GetMyBookings lists the caller's bookings: tenants see those they
// placed, owners see those received against their properties.
func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	var bookings []models.Booking
	query := h.DB.Preload("Property").Order("created_at desc")

	var err error
	switch userRole {
	case models.RoleOwner:
		err = query.Where("owner_id = ?", userID).Find(&bookings).Error
	case models.RoleAdmin:
		err = query.Find(&bookings).Error
	default:
		err = query.Where("tenant_id = ?", userID).Find(&bookings).Error
	}
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch bookings")
		return
	}

	utils.Success(c, "Bookings fetched successfully", bookings)
}

// UpdateBookingStatusRequest represents the request body for a booking
// status change.
type UpdateBookingStatusRequest struct {
	Status models.BookingStatus `json:"status" binding:"required,oneof=confirmed cancelled completed"`
	Notes  string               `json:"notes"`
}

// UpdateBookingStatus applies a booking transition. Owners confirm,
// cancel, or complete bookings on their properties; tenants may only
// cancel their own pending or confirmed bookings.
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	var req UpdateBookingStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var booking models.Booking
	if err := h.DB.First(&booking, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Booking not found")
		} else {
			utils.InternalServerError(c, "Database error")
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	canUpdate := false
	switch {
	case userRole == models.RoleAdmin:
		canUpdate = true
	case userID == booking.OwnerID:
		canUpdate = true
	case userID == booking.TenantID:
		if req.Status != models.BookingCancelled {
			utils.Forbidden(c, "Tenants may only cancel their own bookings")
			return
		}
		if booking.Status != models.BookingPending && booking.Status != models.BookingConfirmed {
			utils.BadRequest(c, "Booking can no longer be cancelled")
			return
		}
		canUpdate = true
	}

	if !canUpdate {
		utils.Forbidden(c, "You are not authorized to update this booking")
		return
	}

	booking.Status = req.Status
	if req.Notes != "" {
		booking.Notes = req.Notes
	}
	if err := h.DB.Save(&booking).Error; err != nil {
		utils.InternalServerError(c, "Failed to update booking")
		return
	}

	// Tell the other party; a notify failure never rolls back the change.
	counterpart := booking.TenantID
	if userID == booking.TenantID {
		counterpart = booking.OwnerID
	}
	h.Notifier.Notify(counterpart, "booking:"+string(req.Status), booking)

	if req.Status == models.BookingConfirmed {
		var tenant models.User
		if err := h.DB.First(&tenant, "id = ?", booking.TenantID).Error; err == nil && tenant.PhoneNumber != "" {
			if err := h.WhatsApp.SendWhatsApp(tenant.PhoneNumber, "Your booking has been confirmed. Token amount due on move-in."); err != nil {
				h.Log.Warn().Err(err).Str("booking_id", booking.ID).Msg("booking whatsapp failed")
			}
		}
	}

	utils.Success(c, "Booking updated successfully", booking)
}
