package response

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookjournal-backend/internal/shared/apperror"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type Meta struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
	Total  int `json:"total"`
}

// Success responses
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

func SuccessWithMeta(c *gin.Context, statusCode int, data interface{}, meta *Meta) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message)
}

// ========================================
// ERROR MAPPING
// ========================================

// StatusFor map domain error -> (HTTP status, error code)
func StatusFor(err error) (int, string) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return http.StatusBadRequest, "VALIDATION_ERROR"
	}

	code := apperror.CodeOf(err)
	status := http.StatusInternalServerError

	switch apperror.KindOf(err) {
	case apperror.ErrNotFound:
		status = http.StatusNotFound
	case apperror.ErrForbidden:
		status = http.StatusForbidden
	case apperror.ErrInvalidState:
		status = http.StatusConflict
	case apperror.ErrInvalidOperation:
		status = http.StatusUnprocessableEntity
	case apperror.ErrValidation:
		status = http.StatusBadRequest
	case apperror.ErrConflict:
		status = http.StatusConflict
	case apperror.ErrUnauthorized:
		status = http.StatusUnauthorized
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}

	if code == "" {
		code = http.StatusText(status)
	}
	return status, code
}

// FromError writes the error envelope for err.
// Unknown errors are logged and surfaced as a generic 500.
func FromError(c *gin.Context, err error) {
	status, code := StatusFor(err)

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		ErrorWithDetails(c, status, code, "request validation failed", verrs)
		return
	}

	if status == http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
		InternalServerError(c, "Internal server error")
		return
	}

	ErrorResponse(c, status, code, err.Error())
}
