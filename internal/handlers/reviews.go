package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rentnest-server/internal/middleware"
	"rentnest-server/internal/models"
	"rentnest-server/internal/utils"
)

// ReviewHandler handles property reviews.
type ReviewHandler struct {
	DB *gorm.DB
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{DB: db}
}

// CreateReviewRequest represents the request body for leaving a review.
type CreateReviewRequest struct {
	PropertyID string `json:"propertyId" binding:"required,uuid"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Comment    string `json:"comment"`
}

// CreateReview leaves a review on a property. A tenant may review a
// property once and only after having a non-cancelled booking on it.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req CreateReviewRequest
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

	var bookingCount int64
	h.DB.Model(&models.Booking{}).
		Where("tenant_id = ? AND property_id = ? AND status <> ?",
			tenantID, req.PropertyID, models.BookingCancelled).
		Count(&bookingCount)
	if bookingCount == 0 {
		utils.Forbidden(c, "You can only review properties you have booked")
		return
	}

	var existing int64
	h.DB.Model(&models.Review{}).
		Where("tenant_id = ? AND property_id = ?", tenantID, req.PropertyID).
		Count(&existing)
	if existing > 0 {
		utils.BadRequest(c, "You have already reviewed this property")
		return
	}

	review := models.Review{
		TenantID:   tenantID,
		PropertyID: property.ID,
		OwnerID:    property.OwnerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		Visibility: models.ReviewVisible,
	}
	if err := h.DB.Create(&review).Error; err != nil {
		utils.InternalServerError(c, "Failed to create review")
		return
	}

	utils.Created(c, "Review created successfully", review)
}

// GetPropertyReviews lists visible reviews for a property. Public.
func (h *ReviewHandler) GetPropertyReviews(c *gin.Context) {
	var reviews []models.Review
	err := h.DB.Where("property_id = ? AND visibility = ?", c.Param("id"), models.ReviewVisible).
		Order("created_at desc").Find(&reviews).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch reviews")
		return
	}

	utils.Success(c, "Reviews fetched successfully", reviews)
}

// UpdateReviewRequest represents the request body for editing a review.
type UpdateReviewRequest struct {
	Rating  int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment string `json:"comment"`
}

// UpdateReview edits the caller's own review.
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	var req UpdateReviewRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	review, ok := h.loadOwnReview(c)
	if !ok {
		return
	}

	if req.Rating != 0 {
		review.Rating = req.Rating
	}
	if req.Comment != "" {
		review.Comment = req.Comment
	}
	if err := h.DB.Save(review).Error; err != nil {
		utils.InternalServerError(c, "Failed to update review")
		return
	}

	utils.Success(c, "Review updated successfully", review)
}

// DeleteReview removes the caller's own review.
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	review, ok := h.loadOwnReview(c)
	if !ok {
		return
	}

	if err := h.DB.Delete(review).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete review")
		return
	}

	utils.Success(c, "Review deleted successfully", nil)
}

// HideReview hides a review from listings and rating aggregates. Admin
// moderation; the row is kept.
func (h *ReviewHandler) HideReview(c *gin.Context) {
	var review models.Review
	if err := h.DB.First(&review, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Review not found")
		} else {
			utils.InternalServerError(c, "Database error")
		}
		return
	}

	review.Visibility = models.ReviewHidden
	if err := h.DB.Save(&review).Error; err != nil {
		utils.InternalServerError(c, "Failed to hide review")
		return
	}

	utils.Success(c, "Review hidden", review)
}

func (h *ReviewHandler) loadOwnReview(c *gin.Context) (*models.Review, bool) {
	var review models.Review
	if err := h.DB.First(&review, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Review not found")
		} else {
			utils.InternalServerError(c, "Database error")
		}
		return nil, false
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	if userID != review.TenantID {
		utils.Forbidden(c, "You can only modify your own review")
		return nil, false
	}
	return &review, true
}
