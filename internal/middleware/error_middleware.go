package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/timetabler/internal/app/models/dto"
	"github.com/yigit/timetabler/internal/pkg/apperrors"
	"github.com/yigit/timetabler/internal/pkg/logger"
)

// apiError maps a sentinel to its HTTP status, error code and public message.
type apiError struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

// Ordered: the first matching sentinel wins.
var apiErrors = []apiError{
	{apperrors.ErrNoEntriesDetected, http.StatusUnprocessableEntity, dto.ErrorCodeNoEntriesDetected, "No entries detected"},
	{apperrors.ErrImportInProgress, http.StatusConflict, dto.ErrorCodeImportInProgress, "Another import is in progress"},
	{apperrors.ErrPayloadTooLarge, http.StatusRequestEntityTooLarge, dto.ErrorCodePayloadTooLarge, "Document text too large"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrUnknownFormat, http.StatusBadRequest, dto.ErrorCodeBadRequest, "Unknown document format"},
	{apperrors.ErrUnknownKind, http.StatusBadRequest, dto.ErrorCodeBadRequest, "Unknown import kind"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{apperrors.ErrResourceAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	for _, e := range apiErrors {
		if errors.Is(err, e.target) {
			detail := dto.NewErrorDetail(e.code, e.message)
			if msg := err.Error(); msg != e.target.Error() {
				detail = detail.WithDetails(msg)
			}
			c.JSON(e.status, dto.NewErrorResponse(detail))
			return
		}
	}

	// Handle unknown errors
	logger.Error().Err(err).
		Str("path", c.Request.URL.Path).
		Msg("Unhandled API error")
	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
}
