package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rentnest-server/internal/models"
	"rentnest-server/internal/utils"
)

// UserHandler handles admin-side user management.
type UserHandler struct {
	DB *gorm.DB
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// GetUsers lists users, optionally filtered by role. Admin only.
func (h *UserHandler) GetUsers(c *gin.Context) {
	query := h.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var users []models.User
	if err := query.Order("created_at desc").Find(&users).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch users")
		return
	}

	sanitized := make([]models.UserSanitized, 0, len(users))
	for i := range users {
		sanitized = append(sanitized, users[i].Sanitize())
	}

	utils.Success(c, "Users fetched successfully", sanitized)
}

// GetUserByID fetches one user. Admin only.
func (h *UserHandler) GetUserByID(c *gin.Context) {
	var user models.User
	if err := h.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error")
		}
		return
	}

	utils.Success(c, "User fetched successfully", user.Sanitize())
}

// DeactivateUser disables an account without deleting it; the user's
// listings, bookings and reviews remain intact.
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	var user models.User
	if err := h.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error")
		}
		return
	}

	user.Status = models.AccountDeactivated
	if err := h.DB.Save(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to deactivate user")
		return
	}

	// Drop any live refresh tokens so the account is locked out now, not
	// at access-token expiry.
	h.DB.Model(&models.RefreshToken{}).Where("user_id = ?", user.ID).
		Update("is_revoked", true)

	utils.Success(c, "User deactivated successfully", user.Sanitize())
}

// ReactivateUser re-enables a deactivated account. Admin only.
func (h *UserHandler) ReactivateUser(c *gin.Context) {
	var user models.User
	if err := h.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error")
		}
		return
	}

	user.Status = models.AccountActive
	if err := h.DB.Save(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to reactivate user")
		return
	}

	utils.Success(c, "User reactivated successfully", user.Sanitize())
}
