package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rentnest-server/internal/middleware"
	"rentnest-server/internal/models"
	"rentnest-server/internal/utils"
)

// FavoriteHandler handles saved properties.
type FavoriteHandler struct {
	DB *gorm.DB
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(db *gorm.DB) *FavoriteHandler {
	return &FavoriteHandler{DB: db}
}

// AddFavorite saves a property for the authenticated user. Saving an
// already-saved property is a no-op success.
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	propertyID := c.Param("id")

	var property models.Property
	if err := h.DB.First(&property, "id = ?", propertyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Property not found")
		} else {
			utils.InternalServerError(c, "Database error")
		}
		return
	}

	var existing models.Favorite
	err := h.DB.Where("user_id = ? AND property_id = ?", userID, propertyID).First(&existing).Error
	if err == nil {
		utils.Success(c, "Property already in favorites", existing)
		return
	}
	if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Database error")
		return
	}

	favorite := models.Favorite{UserID: userID, PropertyID: propertyID}
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&favorite).Error; err != nil {
			return err
		}
		return tx.Model(&models.Property{}).Where("id = ?", propertyID).
			UpdateColumn("favorite_cnt", gorm.Expr("favorite_cnt + 1")).Error
	})
	if txErr != nil {
		utils.InternalServerError(c, "Failed to add favorite")
		return
	}

	utils.Created(c, "Property added to favorites", favorite)
}

// RemoveFavorite unsaves a property.
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	propertyID := c.Param("id")

	var favorite models.Favorite
	if err := h.DB.Where("user_id = ? AND property_id = ?", userID, propertyID).First(&favorite).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Favorite not found")
		} else {
			utils.InternalServerError(c, "Database error")
		}
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&favorite).Error; err != nil {
			return err
		}
		return tx.Model(&models.Property{}).
			Where("id = ? AND favorite_cnt > 0", propertyID).
			UpdateColumn("favorite_cnt", gorm.Expr("favorite_cnt - 1")).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to remove favorite")
		return
	}

	utils.Success(c, "Property removed from favorites", nil)
}

// GetMyFavorites lists the authenticated user's saved properties.
func (h *FavoriteHandler) GetMyFavorites(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var favorites []models.Favorite
	if err := h.DB.Preload("Property").Where("user_id = ?", userID).
		Order("created_at desc").Find(&favorites).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch favorites")
		return
	}

	utils.Success(c, "Favorites fetched successfully", favorites)
}
