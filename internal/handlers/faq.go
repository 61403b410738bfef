package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rentnest-server/internal/models"
	"rentnest-server/internal/utils"
)

// FAQHandler serves the public FAQ and its admin management.
type FAQHandler struct {
	DB *gorm.DB
}

// NewFAQHandler creates a new FAQHandler.
func NewFAQHandler(db *gorm.DB) *FAQHandler {
	return &FAQHandler{DB: db}
}

// ListFAQs returns published FAQ entries, optionally filtered by category.
// Public.
func (h *FAQHandler) ListFAQs(c *gin.Context) {
	query := h.DB.Where("published = ?", true)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var faqs []models.FAQ
	if err := query.Order("sort_order asc, created_at asc").Find(&faqs).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch FAQs")
		return
	}

	utils.Success(c, "FAQs fetched successfully", faqs)
}

// UpsertFAQRequest represents the request body for creating or updating an
// FAQ entry.
type UpsertFAQRequest struct {
	Question  string `json:"question" binding:"required"`
	Answer    string `json:"answer" binding:"required"`
	Category  string `json:"category"`
	SortOrder int    `json:"sortOrder"`
	Published *bool  `json:"published"`
}

// CreateFAQ adds an FAQ entry. Admin only.
func (h *FAQHandler) CreateFAQ(c *gin.Context) {
	var req UpsertFAQRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	faq := models.FAQ{
		Question:  req.Question,
		Answer:    req.Answer,
		Category:  req.Category,
		SortOrder: req.SortOrder,
		Published: true,
	}
	if req.Published != nil {
		faq.Published = *req.Published
	}

	if err := h.DB.Create(&faq).Error; err != nil {
		utils.InternalServerError(c, "Failed to create FAQ")
		return
	}

	utils.Created(c, "FAQ created successfully", faq)
}

// UpdateFAQ edits an FAQ entry. Admin only.
func (h *FAQHandler) UpdateFAQ(c *gin.Context) {
	var req UpsertFAQRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var faq models.FAQ
	if err := h.DB.First(&faq, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "FAQ not found")
		} else {
			utils.InternalServerError(c, "Database error")
		}
		return
	}

	faq.Question = req.Question
	faq.Answer = req.Answer
	faq.Category = req.Category
	faq.SortOrder = req.SortOrder
	if req.Published != nil {
		faq.Published = *req.Published
	}

	if err := h.DB.Save(&faq).Error; err != nil {
		utils.InternalServerError(c, "Failed to update FAQ")
		return
	}

	utils.Success(c, "FAQ updated successfully", faq)
}

// DeleteFAQ removes an FAQ entry. Admin only. FAQ rows carry no user
// history, so physical deletion is fine here.
func (h *FAQHandler) DeleteFAQ(c *gin.Context) {
	result := h.DB.Delete(&models.FAQ{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to delete FAQ")
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "FAQ not found")
		return
	}

	utils.Success(c, "FAQ deleted successfully", nil)
}
