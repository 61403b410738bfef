package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rentnest-server/internal/middleware"
	"rentnest-server/internal/models"
	"rentnest-server/internal/utils"
)

// ExpertHandler handles expert consultation profiles.
type ExpertHandler struct {
	DB *gorm.DB
}

// NewExpertHandler creates a new ExpertHandler.
func NewExpertHandler(db *gorm.DB) *ExpertHandler {
	return &ExpertHandler{DB: db}
}

// ListExperts returns the experts available for consultations, with their
// profiles. Public for authenticated users.
func (h *ExpertHandler) ListExperts(c *gin.Context) {
	query := h.DB.Model(&models.ExpertProfile{})
	if specialty := c.Query("specialty"); specialty != "" {
		query = query.Where("specialty = ?", specialty)
	}

	var profiles []models.ExpertProfile
	if err := query.Find(&profiles).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch experts")
		return
	}

	utils.Success(c, "Experts fetched successfully", profiles)
}

// GetExpert fetches one expert profile by the expert's user id.
func (h *ExpertHandler) GetExpert(c *gin.Context) {
	var profile models.ExpertProfile
	if err := h.DB.First(&profile, "user_id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Expert not found")
		} else {
			utils.InternalServerError(c, "Database error")
		}
		return
	}

	utils.Success(c, "Expert fetched successfully", profile)
}

// UpsertProfileRequest represents the request body for an expert profile.
type UpsertProfileRequest struct {
	Specialty  string  `json:"specialty" binding:"required"`
	Bio        string  `json:"bio"`
	HourlyRate float64 `json:"hourlyRate" binding:"omitempty,gte=0"`
	Languages  string  `json:"languages"`
}

// UpsertProfile creates or updates the authenticated expert's profile.
func (h *ExpertHandler) UpsertProfile(c *gin.Context) {
	var req UpsertProfileRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	expertID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var profile models.ExpertProfile
	err := h.DB.Where("user_id = ?", expertID).First(&profile).Error
	switch err {
	case nil:
		profile.Specialty = req.Specialty
		profile.Bio = req.Bio
		profile.HourlyRate = req.HourlyRate
		profile.Languages = req.Languages
		if err := h.DB.Save(&profile).Error; err != nil {
			utils.InternalServerError(c, "Failed to update expert profile")
			return
		}
		utils.Success(c, "Expert profile updated successfully", profile)
	case gorm.ErrRecordNotFound:
		profile = models.ExpertProfile{
			UserID:     expertID,
			Specialty:  req.Specialty,
			Bio:        req.Bio,
			HourlyRate: req.HourlyRate,
			Languages:  req.Languages,
		}
		if err := h.DB.Create(&profile).Error; err != nil {
			utils.InternalServerError(c, "Failed to create expert profile")
			return
		}
		utils.Created(c, "Expert profile created successfully", profile)
	default:
		utils.InternalServerError(c, "Database error")
	}
}
