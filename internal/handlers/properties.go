package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rentnest-server/internal/middleware"
	"rentnest-server/internal/models"
	"rentnest-server/internal/utils"
	"rentnest-server/internal/views"
)

// PropertyHandler handles listing CRUD and public property browsing.
type PropertyHandler struct {
	DB       *gorm.DB
	Recorder *views.Recorder
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(db *gorm.DB, recorder *views.Recorder) *PropertyHandler {
	return &PropertyHandler{DB: db, Recorder: recorder}
}

// CreatePropertyRequest represents the request body for creating a listing.
type CreatePropertyRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Type        string  `json:"type" binding:"omitempty,oneof=apartment house villa studio room"`
	MonthlyRent float64 `json:"monthlyRent" binding:"required,gt=0"`
	TokenAmount float64 `json:"tokenAmount" binding:"omitempty,gte=0"`
	State       string  `json:"state"`
	City        string  `json:"city" binding:"required"`
	Address     string  `json:"address"`
	AreaSqFt    float64 `json:"areaSqFt"`
	Bedrooms    int     `json:"bedrooms"`
	Bathrooms   int     `json:"bathrooms"`
	Amenities   string  `json:"amenities"`
	Facilities  string  `json:"facilities"`
	Furnished   bool    `json:"furnished"`
}

// CreateProperty handles creating a new listing for the authenticated owner.
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	var req CreatePropertyRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	ownerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Owner ID not found in token")
		return
	}

	propType := models.PropertyType(req.Type)
	if req.Type == "" {
		propType = models.PropertyApartment
	}

	property := models.Property{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Type:        propType,
		MonthlyRent: req.MonthlyRent,
		TokenAmount: req.TokenAmount,
		State:       req.State,
		City:        req.City,
		Address:     req.Address,
		AreaSqFt:    req.AreaSqFt,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Amenities:   req.Amenities,
		Facilities:  req.Facilities,
		Furnished:   req.Furnished,
		Lifecycle:   models.PropertyActive,
		IsVisible:   true,
	}

	if err := h.DB.Create(&property).Error; err != nil {
		utils.InternalServerError(c, "Failed to create property")
		return
	}

	utils.Created(c, "Property created successfully", property)
}

// SearchProperties handles the public listing search. Only active, visible
// listings are returned.
func (h *PropertyHandler) SearchProperties(c *gin.Context) {
	query := h.DB.Model(&models.Property{}).
		Where("lifecycle = ? AND is_visible = ?", models.PropertyActive, true)

	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}
	if propType := c.Query("type"); propType != "" {
		query = query.Where("type = ?", propType)
	}
	if minRent := c.Query("minRent"); minRent != "" {
		if v, err := strconv.ParseFloat(minRent, 64); err == nil {
			query = query.Where("monthly_rent >= ?", v)
		}
	}
	if maxRent := c.Query("maxRent"); maxRent != "" {
		if v, err := strconv.ParseFloat(maxRent, 64); err == nil {
			query = query.Where("monthly_rent <= ?", v)
		}
	}
	if bedrooms := c.Query("bedrooms"); bedrooms != "" {
		if v, err := strconv.Atoi(bedrooms); err == nil {
			query = query.Where("bedrooms >= ?", v)
		}
	}
	if furnished := c.Query("furnished"); furnished == "true" {
		query = query.Where("furnished = ?", true)
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to search properties")
		return
	}

	var properties []models.Property
	err := query.Order("created_at desc").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&properties).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to search properties")
		return
	}

	utils.Success(c, "Properties fetched successfully", gin.H{
		"properties": properties,
		"total":      total,
		"page":       page,
		"pageSize":   pageSize,
	})
}

// GetProperty handles the public property detail fetch. Fetching a detail
// page counts as a view, subject to the dedup rules; the counting is
// best-effort and never fails the fetch.
func (h *PropertyHandler) GetProperty(c *gin.Context) {
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

	viewerID, _ := middleware.GetUserIDFromContext(c)
	if archivedOrHidden(&property) && viewerID != property.OwnerID {
		utils.NotFound(c, "Property not found")
		return
	}

	outcome := h.Recorder.Record(c.Request.Context(), &property, viewerID, middleware.ClientIP(c))
	if outcome == views.OutcomeCounted {
		property.Views++
	}

	utils.Success(c, "Property fetched successfully", property)
}

// GetMyProperties lists the authenticated owner's listings, archived ones
// included.
func (h *PropertyHandler) GetMyProperties(c *gin.Context) {
	ownerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var properties []models.Property
	if err := h.DB.Where("owner_id = ?", ownerID).Order("created_at desc").Find(&properties).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch properties")
		return
	}

	utils.Success(c, "Properties fetched successfully", properties)
}

// UpdatePropertyRequest represents the request body for updating a listing.
type UpdatePropertyRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	MonthlyRent *float64 `json:"monthlyRent" binding:"omitempty,gt=0"`
	TokenAmount *float64 `json:"tokenAmount" binding:"omitempty,gte=0"`
	Amenities   *string  `json:"amenities"`
	Facilities  *string  `json:"facilities"`
	Furnished   *bool    `json:"furnished"`
	IsVisible   *bool    `json:"isVisible"`
}

// UpdateProperty handles updating a listing. Only the owning account or an
// admin may update.
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	property, ok := h.loadOwnedProperty(c)
	if !ok {
		return
	}

	var req UpdatePropertyRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if req.Title != "" {
		property.Title = req.Title
	}
	if req.Description != nil {
		property.Description = *req.Description
	}
	if req.MonthlyRent != nil {
		property.MonthlyRent = *req.MonthlyRent
	}
	if req.TokenAmount != nil {
		property.TokenAmount = *req.TokenAmount
	}
	if req.Amenities != nil {
		property.Amenities = *req.Amenities
	}
	if req.Facilities != nil {
		property.Facilities = *req.Facilities
	}
	if req.Furnished != nil {
		property.Furnished = *req.Furnished
	}
	if req.IsVisible != nil {
		property.IsVisible = *req.IsVisible
	}

	if err := h.DB.Save(property).Error; err != nil {
		utils.InternalServerError(c, "Failed to update property")
		return
	}

	utils.Success(c, "Property updated successfully", property)
}

// ArchiveProperty moves a listing to the archived lifecycle state. Rows
// are never deleted; bookings and reviews stay readable.
func (h *PropertyHandler) ArchiveProperty(c *gin.Context) {
	property, ok := h.loadOwnedProperty(c)
	if !ok {
		return
	}

	property.Lifecycle = models.PropertyArchived
	if err := h.DB.Save(property).Error; err != nil {
		utils.InternalServerError(c, "Failed to archive property")
		return
	}

	utils.Success(c, "Property archived successfully", property)
}

// RestoreProperty moves an archived listing back to active.
func (h *PropertyHandler) RestoreProperty(c *gin.Context) {
	property, ok := h.loadOwnedProperty(c)
	if !ok {
		return
	}

	property.Lifecycle = models.PropertyActive
	if err := h.DB.Save(property).Error; err != nil {
		utils.InternalServerError(c, "Failed to restore property")
		return
	}

	utils.Success(c, "Property restored successfully", property)
}

// loadOwnedProperty fetches the path property and enforces that the caller
// owns it or is an admin. Replies on the context on failure.
func (h *PropertyHandler) loadOwnedProperty(c *gin.Context) (*models.Property, bool) {
	propertyID := c.Param("id")

	var property models.Property
	if err := h.DB.First(&property, "id = ?", propertyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Property not found")
		} else {
			utils.InternalServerError(c, "Database error")
		}
		return nil, false
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	if userRole != models.RoleAdmin && userID != property.OwnerID {
		utils.Forbidden(c, "You do not own this property")
		return nil, false
	}

	return &property, true
}

func archivedOrHidden(p *models.Property) bool {
	return p.Lifecycle != models.PropertyActive || !p.IsVisible
}
