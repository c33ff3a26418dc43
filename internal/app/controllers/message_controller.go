package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kisinia/yosa/internal/app/models/dto"
	"github.com/kisinia/yosa/internal/app/services"
	"github.com/kisinia/yosa/internal/middleware"
)

// MessageController handles messaging and feedback operations
type MessageController struct {
	messageService services.IMessageService
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService services.IMessageService) *MessageController {
	return &MessageController{
		messageService: messageService,
	}
}

// ListMessages retrieves the messages visible to the caller
// @Summary List messages
// @Description Retrieves received and sent messages, newest first, and marks unread received ones as read
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.MessageResponse} "Messages retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /messages [get]
func (c *MessageController) ListMessages(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	messages, err := c.messageService.ListMessages(ctx, userID, currentRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      messages,
		Timestamp: time.Now(),
	})
}

// SendMessage delivers a direct message
// @Summary Send a message
// @Description Sends a direct message to another user
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendMessageRequest true "Message"
// @Success 201 {object} dto.APIResponse{data=dto.MessageResponse} "Message sent"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or self-addressed message"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Receiver not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /messages [post]
func (c *MessageController) SendMessage(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	message, err := c.messageService.SendMessage(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      message,
		Timestamp: time.Now(),
	})
}

// GetMessage retrieves a single message
// @Summary Get message details
// @Description Retrieves a message the caller may see and marks it read when the caller is the receiver
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse} "Message retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid message ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not allowed to read this message"
// @Failure 404 {object} dto.ErrorResponse "Message not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /messages/{id} [get]
func (c *MessageController) GetMessage(ctx *gin.Context) {
	messageID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	message, err := c.messageService.GetMessage(ctx, messageID, userID, currentRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      message,
		Timestamp: time.Now(),
	})
}

// SubmitFeedback stores a feedback submission
// @Summary Submit feedback
// @Description Stores feedback with contact details appended to the content
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.FeedbackRequest true "Feedback"
// @Success 201 {object} dto.APIResponse{data=dto.MessageResponse} "Feedback submitted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /feedback [post]
func (c *MessageController) SubmitFeedback(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.FeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	message, err := c.messageService.SubmitFeedback(ctx, &userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      message,
		Timestamp: time.Now(),
	})
}
