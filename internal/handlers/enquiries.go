package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rentnest-server/internal/middleware"
	"rentnest-server/internal/models"
	"rentnest-server/internal/notify"
	"rentnest-server/internal/utils"
)

// EnquiryHandler handles property enquiries and their reply threads.
type EnquiryHandler struct {
	DB       *gorm.DB
	Notifier notify.Notifier
}

// NewEnquiryHandler creates a new EnquiryHandler.
func NewEnquiryHandler(db *gorm.DB, notifier notify.Notifier) *EnquiryHandler {
	return &EnquiryHandler{DB: db, Notifier: notifier}
}

// CreateEnquiryRequest represents the request body for sending an enquiry.
type CreateEnquiryRequest struct {
	PropertyID string `json:"propertyId" binding:"required,uuid"`
	Message    string `json:"message" binding:"required"`
}

// CreateEnquiry sends a question about a property to its owner.
func (h *EnquiryHandler) CreateEnquiry(c *gin.Context) {
	var req CreateEnquiryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	tenantID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
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
	if property.OwnerID == tenantID {
		utils.BadRequest(c, "You cannot enquire about your own property")
		return
	}

	enquiry := models.Enquiry{
		TenantID:   tenantID,
		PropertyID: property.ID,
		OwnerID:    property.OwnerID,
		Message:    req.Message,
		Status:     models.EnquiryOpen,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&enquiry).Error; err != nil {
			return err
		}
		return tx.Model(&models.Property{}).Where("id = ?", property.ID).
			UpdateColumn("enquiries", gorm.Expr("enquiries + 1")).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create enquiry")
		return
	}

	h.Notifier.Notify(property.OwnerID, "enquiry:new", enquiry)

	utils.Created(c, "Enquiry sent successfully", enquiry)
}

// GetMyEnquiries lists enquiries: tenants see those they sent, owners see
// those received.
func (h *EnquiryHandler) GetMyEnquiries(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	var enquiries []models.Enquiry
	query := h.DB.Preload("Replies").Order("created_at desc")

	var err error
	switch userRole {
	case models.RoleOwner:
		err = query.Where("owner_id = ?", userID).Find(&enquiries).Error
	case models.RoleAdmin:
		err = query.Find(&enquiries).Error
	default:
		err = query.Where("tenant_id = ?", userID).Find(&enquiries).Error
	}
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch enquiries")
		return
	}

	utils.Success(c, "Enquiries fetched successfully", enquiries)
}

// ReplyRequest represents the request body for replying to an enquiry.
type ReplyRequest struct {
	Message string `json:"message" binding:"required"`
}

// ReplyToEnquiry appends to the enquiry thread. Only the two parties (or
// an admin) may reply; a reply from the owner marks the enquiry replied.
func (h *EnquiryHandler) ReplyToEnquiry(c *gin.Context) {
	var req ReplyRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var enquiry models.Enquiry
	if err := h.DB.First(&enquiry, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Enquiry not found")
		} else {
			utils.InternalServerError(c, "Database error")
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	if userRole != models.RoleAdmin && userID != enquiry.TenantID && userID != enquiry.OwnerID {
		utils.Forbidden(c, "You are not part of this enquiry")
		return
	}
	if enquiry.Status == models.EnquiryClosed {
		utils.BadRequest(c, "Enquiry is closed")
		return
	}

	reply := models.EnquiryReply{
		EnquiryID: enquiry.ID,
		AuthorID:  userID,
		Message:   req.Message,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reply).Error; err != nil {
			return err
		}
		if userID == enquiry.OwnerID && enquiry.Status == models.EnquiryOpen {
			enquiry.Status = models.EnquiryReplied
			return tx.Save(&enquiry).Error
		}
		return nil
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to save reply")
		return
	}

	counterpart := enquiry.TenantID
	if userID == enquiry.TenantID {
		counterpart = enquiry.OwnerID
	}
	h.Notifier.Notify(counterpart, "enquiry:reply", reply)

	utils.Created(c, "Reply sent successfully", reply)
}

// CloseEnquiry marks an enquiry closed. Either party may close it.
func (h *EnquiryHandler) CloseEnquiry(c *gin.Context) {
	var enquiry models.Enquiry
	if err := h.DB.First(&enquiry, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Enquiry not found")
		} else {
			utils.InternalServerError(c, "Database error")
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	if userRole != models.RoleAdmin && userID != enquiry.TenantID && userID != enquiry.OwnerID {
		utils.Forbidden(c, "You are not part of this enquiry")
		return
	}

	enquiry.Status = models.EnquiryClosed
	if err := h.DB.Save(&enquiry).Error; err != nil {
		utils.InternalServerError(c, "Failed to close enquiry")
		return
	}

	utils.Success(c, "Enquiry closed", enquiry)
}
