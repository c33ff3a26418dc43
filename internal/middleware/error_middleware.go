package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kisinia/yosa/internal/app/models/dto"
	"github.com/kisinia/yosa/internal/pkg/apperrors"
	"github.com/kisinia/yosa/internal/pkg/logger"
)

// HandleAPIError maps service errors onto the standard error envelope
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrEventNotFound,
		apperrors.ErrMessageNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, err.Error())

	case errors.Is(err, apperrors.ErrRegistrationNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "No confirmed registration for this event")

	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")

	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")

	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")

	case errors.Is(err, apperrors.ErrTokenNotFound):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found")

	case errors.Is(err, apperrors.ErrTokenRevoked):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Token revoked")

	case errors.Is(err, apperrors.ErrEventFull):
		respond(c, http.StatusConflict, dto.ErrorCodeEventFull, "Event is at full capacity")

	case errors.Is(err, apperrors.ErrAlreadyRegistered):
		respond(c, http.StatusConflict, dto.ErrorCodeAlreadyRegistered, "Already registered for this event")

	case errors.Is(err, apperrors.ErrUsernameAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Username already exists")

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists")

	case errors.Is(err, apperrors.ErrRegistrationCancelled):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceConflict, "Registration already cancelled")

	case apperrors.Is(err, apperrors.ErrBadRequest,
		apperrors.ErrValidationFailed,
		apperrors.ErrEventInactive,
		apperrors.ErrEventInPast,
		apperrors.ErrSelfMessage):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err.Error())

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}
