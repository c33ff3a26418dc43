package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kisinia/yosa/internal/app/models/dto"
	"github.com/kisinia/yosa/internal/app/services"
	"github.com/kisinia/yosa/internal/middleware"
	"github.com/kisinia/yosa/internal/pkg/helpers"
)

// EventController handles event browsing, management and registrations
type EventController struct {
	eventService        services.IEventService
	registrationService services.IRegistrationService
}

// NewEventController creates a new EventController
func NewEventController(eventService services.IEventService, registrationService services.IRegistrationService) *EventController {
	return &EventController{
		eventService:        eventService,
		registrationService: registrationService,
	}
}

// GetHome retrieves the public landing payload
// @Summary Home
// @Description Retrieves the next upcoming events and the currently trending ones
// @Tags home
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.HomeResponse} "Home retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /home [get]
func (c *EventController) GetHome(ctx *gin.Context) {
	home, err := c.eventService.GetHome(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      home,
		Timestamp: time.Now(),
	})
}

// GetDashboard retrieves the authenticated landing payload
// @Summary Dashboard
// @Description Retrieves the caller's registrations, recommendations and trending events
// @Tags home
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse} "Dashboard retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard [get]
func (c *EventController) GetDashboard(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	dashboard, err := c.eventService.GetDashboard(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      dashboard,
		Timestamp: time.Now(),
	})
}

// ListEvents retrieves upcoming events, paginated
// @Summary List upcoming events
// @Description Retrieves upcoming active events ordered by date
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Events retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events [get]
func (c *EventController) ListEvents(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	events, pagination, err := c.eventService.ListUpcoming(ctx, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.PaginatedResponse{
			Items:      events,
			Pagination: pagination,
		},
		Timestamp: time.Now(),
	})
}

// GetEvent retrieves a single event with the caller's registration state
// @Summary Get event details
// @Description Retrieves an event with remaining capacity and whether the caller is registered
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.EventDetailResponse} "Event retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid event ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id} [get]
func (c *EventController) GetEvent(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	event, err := c.eventService.GetDetail(ctx, eventID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      event,
		Timestamp: time.Now(),
	})
}

// GetPastEvents retrieves past events and the caller's past registrations
// @Summary List past events
// @Description Retrieves events that already happened, newest first
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.PastEventsResponse} "Past events retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/past [get]
func (c *EventController) GetPastEvents(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	past, err := c.eventService.GetPast(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      past,
		Timestamp: time.Now(),
	})
}

// CreateEvent handles event creation
// @Summary Create a new event
// @Description Creates an event with an optional image; staff only
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param eventType formData string true "Event type" Enums(party, meetup, game, other)
// @Param date formData string true "Event date (RFC3339)"
// @Param location formData string true "Location"
// @Param maxAttendees formData int true "Maximum attendees"
// @Param image formData file false "Event image"
// @Success 201 {object} dto.APIResponse{data=dto.EventResponse} "Event created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Staff role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	var req dto.CreateEventRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	image, _ := ctx.FormFile("image")

	event, err := c.eventService.Create(ctx, &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      event,
		Timestamp: time.Now(),
	})
}

// UpdateEvent handles event editing
// @Summary Update an event
// @Description Edits an event, optionally replacing its image; staff only
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse} "Event updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Staff role required"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	image, _ := ctx.FormFile("image")

	event, err := c.eventService.Update(ctx, eventID, &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      event,
		Timestamp: time.Now(),
	})
}

// RegisterForEvent registers the caller for an event
// @Summary Register for an event
// @Description Creates a confirmed registration while a seat is available
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID" Format(int64) minimum(1)
// @Param request body dto.RegisterForEventRequest false "Optional special requests"
// @Success 201 {object} dto.APIResponse{data=dto.RegistrationResponse} "Registered"
// @Failure 400 {object} dto.ErrorResponse "Event inactive or in the past"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 409 {object} dto.ErrorResponse "Already registered or event full"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/register [post]
func (c *EventController) RegisterForEvent(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.RegisterForEventRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			middleware.HandleValidationError(ctx, err)
			return
		}
	}

	registration, err := c.registrationService.Register(ctx, userID, eventID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      registration,
		Timestamp: time.Now(),
	})
}

// CancelRegistration cancels the caller's registration for an event
// @Summary Cancel a registration
// @Description Cancels the caller's confirmed registration and releases the seat
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Registration cancelled"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Event or registration not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/cancel [post]
func (c *EventController) CancelRegistration(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	if err := c.registrationService.Cancel(ctx, userID, eventID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "Registration cancelled successfully",
		Timestamp: time.Now(),
	})
}
