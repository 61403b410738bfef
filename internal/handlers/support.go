package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rentnest-server/internal/middleware"
	"rentnest-server/internal/models"
	"rentnest-server/internal/notify"
	"rentnest-server/internal/utils"
)

// SupportHandler handles support tickets and their threads.
type SupportHandler struct {
	DB       *gorm.DB
	Notifier notify.Notifier
}

// NewSupportHandler creates a new SupportHandler.
func NewSupportHandler(db *gorm.DB, notifier notify.Notifier) *SupportHandler {
	return &SupportHandler{DB: db, Notifier: notifier}
}

// CreateTicketRequest represents the request body for raising a ticket.
type CreateTicketRequest struct {
	Subject     string `json:"subject" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high"`
}

// CreateTicket raises a new support ticket for the authenticated user.
func (h *SupportHandler) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	priority := models.TicketPriority(req.Priority)
	if req.Priority == "" {
		priority = models.PriorityMedium
	}

	ticket := models.SupportTicket{
		UserID:      userID,
		Subject:     req.Subject,
		Description: req.Description,
		Category:    req.Category,
		Status:      models.TicketOpen,
		Priority:    priority,
	}
	if err := h.DB.Create(&ticket).Error; err != nil {
		utils.InternalServerError(c, "Failed to create ticket")
		return
	}

	utils.Created(c, "Ticket created successfully", ticket)
}

// GetMyTickets lists the caller's tickets; admins get every ticket.
func (h *SupportHandler) GetMyTickets(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	var tickets []models.SupportTicket
	query := h.DB.Preload("Messages").Order("created_at desc")

	var err error
	if userRole == models.RoleAdmin {
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		err = query.Find(&tickets).Error
	} else {
		err = query.Where("user_id = ?", userID).Find(&tickets).Error
	}
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch tickets")
		return
	}

	utils.Success(c, "Tickets fetched successfully", tickets)
}

// AddTicketMessageRequest represents the request body for a ticket reply.
type AddTicketMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// AddTicketMessage appends to the ticket thread. The ticket's owner and
// admins may post; an admin reply moves an open ticket to in_progress.
func (h *SupportHandler) AddTicketMessage(c *gin.Context) {
	var req AddTicketMessageRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var ticket models.SupportTicket
	if err := h.DB.First(&ticket, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Ticket not found")
		} else {
			utils.InternalServerError(c, "Database error")
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	isStaff := userRole == models.RoleAdmin
	if !isStaff && userID != ticket.UserID {
		utils.Forbidden(c, "You are not part of this ticket")
		return
	}
	if ticket.Status == models.TicketClosed {
		utils.BadRequest(c, "Ticket is closed")
		return
	}

	message := models.TicketMessage{
		TicketID:  ticket.ID,
		AuthorID:  userID,
		Message:   req.Message,
		FromStaff: isStaff,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		if isStaff && ticket.Status == models.TicketOpen {
			ticket.Status = models.TicketInProgress
			return tx.Save(&ticket).Error
		}
		return nil
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to save message")
		return
	}

	if isStaff {
		h.Notifier.Notify(ticket.UserID, "ticket:reply", message)
	}

	utils.Created(c, "Message added successfully", message)
}

// UpdateTicketStatusRequest represents the request body for a ticket
// status change.
type UpdateTicketStatusRequest struct {
	Status models.TicketStatus `json:"status" binding:"required,oneof=open in_progress resolved closed"`
}

// UpdateTicketStatus moves a ticket through its lifecycle. Admin only.
func (h *SupportHandler) UpdateTicketStatus(c *gin.Context) {
	var req UpdateTicketStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var ticket models.SupportTicket
	if err := h.DB.First(&ticket, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Ticket not found")
		} else {
			utils.InternalServerError(c, "Database error")
		}
		return
	}

	ticket.Status = req.Status
	if err := h.DB.Save(&ticket).Error; err != nil {
		utils.InternalServerError(c, "Failed to update ticket")
		return
	}

	h.Notifier.Notify(ticket.UserID, "ticket:"+string(req.Status), ticket)

	utils.Success(c, "Ticket updated successfully", ticket)
}
