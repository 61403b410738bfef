package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rentnest-server/internal/middleware"
	"rentnest-server/internal/models"
	"rentnest-server/internal/notify"
	"rentnest-server/internal/utils"
)

// ChatHandler handles direct messaging between marketplace parties.
type ChatHandler struct {
	DB       *gorm.DB
	Notifier notify.Notifier
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(db *gorm.DB, notifier notify.Notifier) *ChatHandler {
	return &ChatHandler{DB: db, Notifier: notifier}
}

// SendMessageRequest represents the request body for sending a message.
type SendMessageRequest struct {
	RecipientID string `json:"recipientId" binding:"required,uuid"`
	Content     string `json:"content" binding:"required"`
	PropertyID  string `json:"propertyId" binding:"omitempty,uuid"`
}

// SendMessage handles sending a new chat message.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	senderID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Sender ID not found in token")
		return
	}
	if senderID == req.RecipientID {
		utils.BadRequest(c, "Cannot send a message to yourself")
		return
	}

	var recipient models.User
	if err := h.DB.First(&recipient, "id = ?", req.RecipientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Recipient not found")
		} else {
			utils.InternalServerError(c, "Database error")
		}
		return
	}
	if recipient.Status == models.AccountDeactivated {
		utils.BadRequest(c, "Recipient account is deactivated")
		return
	}

	message := models.ChatMessage{
		SenderID:   senderID,
		ReceiverID: req.RecipientID,
		PropertyID: req.PropertyID,
		Content:    req.Content,
		Status:     models.ChatSent,
	}
	if err := h.DB.Create(&message).Error; err != nil {
		utils.InternalServerError(c, "Failed to send message")
		return
	}

	h.Notifier.Notify(req.RecipientID, "chat:message", message)

	utils.Created(c, "Message sent successfully", message)
}

// GetConversation lists the messages between the caller and another user,
// oldest first.
func (h *ChatHandler) GetConversation(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	otherID := c.Param("userId")

	var messages []models.ChatMessage
	err := h.DB.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userID, otherID, otherID, userID).
		Order("created_at asc").Find(&messages).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch conversation")
		return
	}

	utils.Success(c, "Conversation fetched successfully", messages)
}

// GetConversations lists the distinct counterparts the caller has chatted
// with, most recent first.
func (h *ChatHandler) GetConversations(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var messages []models.ChatMessage
	err := h.DB.Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at desc").Find(&messages).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch conversations")
		return
	}

	seen := make(map[string]bool)
	var latest []models.ChatMessage
	for _, m := range messages {
		other := m.SenderID
		if other == userID {
			other = m.ReceiverID
		}
		if !seen[other] {
			seen[other] = true
			latest = append(latest, m)
		}
	}

	utils.Success(c, "Conversations fetched successfully", latest)
}

// MarkMessageAsRead marks a received message read.
func (h *ChatHandler) MarkMessageAsRead(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var message models.ChatMessage
	if err := h.DB.First(&message, "id = ?", c.Param("messageId")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Message not found")
		} else {
			utils.InternalServerError(c, "Database error")
		}
		return
	}

	if message.ReceiverID != userID {
		utils.Forbidden(c, "You can only mark your own received messages as read")
		return
	}

	now := time.Now()
	message.Status = models.ChatRead
	message.ReadAt = &now
	if err := h.DB.Save(&message).Error; err != nil {
		utils.InternalServerError(c, "Failed to mark message as read")
		return
	}

	utils.Success(c, "Message marked as read", message)
}
