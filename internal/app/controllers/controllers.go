// Package controllers contains the HTTP handlers binding requests to
// services.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kisinia/yosa/internal/app/models"
	"github.com/kisinia/yosa/internal/app/models/dto"
	"github.com/kisinia/yosa/internal/app/services"
	"github.com/kisinia/yosa/internal/middleware"
)

// Controllers holds every controller used by the router
type Controllers struct {
	Auth    *AuthController
	User    *UserController
	Event   *EventController
	Message *MessageController
	Admin   *AdminController
}

// NewControllers wires all controllers with their services
func NewControllers(svc *services.Services) *Controllers {
	return &Controllers{
		Auth:    NewAuthController(svc.Auth),
		User:    NewUserController(svc.Users),
		Event:   NewEventController(svc.Events, svc.Registrations),
		Message: NewMessageController(svc.Messages),
		Admin:   NewAdminController(svc.Admin),
	}
}

// currentUserID reads the authenticated user's ID set by the JWT middleware
func currentUserID(ctx *gin.Context) (int64, bool) {
	value, exists := ctx.Get(middleware.ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}

// currentRole reads the authenticated user's role set by the JWT middleware
func currentRole(ctx *gin.Context) models.Role {
	value, exists := ctx.Get(middleware.ContextRole)
	if !exists {
		return models.RoleUser
	}
	role, ok := value.(string)
	if !ok {
		return models.RoleUser
	}
	return models.Role(role)
}

// parseIDParam parses a numeric path parameter
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name)
		errorDetail = errorDetail.WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
