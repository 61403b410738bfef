package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"rentnest-server/internal/analytics"
	"rentnest-server/internal/apperr"
	"rentnest-server/internal/middleware"
	"rentnest-server/internal/models"
	"rentnest-server/internal/utils"
)

// AnalyticsHandler exposes the interaction aggregator to owners.
type AnalyticsHandler struct {
	DB         *gorm.DB
	Aggregator *analytics.Aggregator
	Log        zerolog.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(db *gorm.DB, agg *analytics.Aggregator, log zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{DB: db, Aggregator: agg, Log: log}
}

// GetPropertyStats returns the derived metrics for one property. Only the
// owning account or an admin may read them.
func (h *AnalyticsHandler) GetPropertyStats(c *gin.Context) {
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

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	if userRole != models.RoleAdmin && userID != property.OwnerID {
		utils.Forbidden(c, "You do not own this property")
		return
	}

	stats, err := h.Aggregator.ForProperty(c.Request.Context(), propertyID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			utils.NotFound(c, "Property not found")
			return
		}
		h.Log.Error().Err(err).Str("property_id", propertyID).Msg("property stats failed")
		utils.InternalServerError(c, "Failed to compute property stats")
		return
	}

	utils.Success(c, "Property stats fetched successfully", stats)
}

// GetPortfolioStats returns the portfolio-wide metrics for the
// authenticated owner's active, visible properties.
func (h *AnalyticsHandler) GetPortfolioStats(c *gin.Context) {
	ownerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	stats, err := h.Aggregator.ForOwner(c.Request.Context(), ownerID)
	if err != nil {
		h.Log.Error().Err(err).Str("owner_id", ownerID).Msg("portfolio stats failed")
		utils.InternalServerError(c, "Failed to compute portfolio stats")
		return
	}

	utils.Success(c, "Portfolio stats fetched successfully", stats)
}
