package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/schoolhub/schoolhub/internal/app/models/dto"
	"github.com/schoolhub/schoolhub/internal/pkg/apperrors"
	"github.com/schoolhub/schoolhub/internal/pkg/logger"
)

// HandleAPIError maps domain errors onto HTTP responses. Failures of a
// specific input value come back as 422 with the offending field named,
// matching the shape of binding validation failures.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respondError(c, http.StatusUnprocessableEntity,
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "The email has already been taken").WithField("email"))

	case errors.Is(err, apperrors.ErrUnsupportedRole), errors.Is(err, apperrors.ErrRoleNotFound):
		respondError(c, http.StatusUnprocessableEntity,
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "The selected role is invalid").WithField("role"))

	case errors.Is(err, apperrors.ErrInvalidPassword):
		respondError(c, http.StatusUnprocessableEntity,
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "The password must be at least 8 characters and contain a letter and a digit").WithField("password"))

	case errors.Is(err, apperrors.ErrAlreadyEnrolled):
		respondError(c, http.StatusUnprocessableEntity,
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Already enrolled in this course").WithField("course_id"))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized,
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid email or password"))

	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized,
			dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired"))

	case errors.Is(err, apperrors.ErrTokenNotFound),
		errors.Is(err, apperrors.ErrTokenRevoked),
		errors.Is(err, apperrors.ErrTokenInvalid):
		respondError(c, http.StatusUnauthorized,
			dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token"))

	case errors.Is(err, apperrors.ErrCourseNotFound):
		respondError(c, http.StatusNotFound,
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Course not found"))

	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrTeacherNotFound),
		errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, http.StatusNotFound,
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found"))

	case errors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict,
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Resource already exists"))

	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, http.StatusForbidden,
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied"))

	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		respondError(c, http.StatusInternalServerError,
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "An internal error occurred"))
	}
}

// HandleValidationError responds to a request binding failure
func HandleValidationError(c *gin.Context, err error) {
	respondError(c, http.StatusUnprocessableEntity, dto.HandleValidationError(err))
}

func respondError(c *gin.Context, status int, detail *dto.ErrorDetail) {
	c.JSON(status, dto.NewErrorResponse(detail))
	c.Abort()
}
