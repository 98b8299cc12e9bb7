package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/servepupil/api/pkg/errors"
)

// APIResponse is the envelope for every payload returned by the API.
type APIResponse struct {
	Success    bool        `json:"success"`
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message,omitempty"`
	Code       string      `json:"code,omitempty"`
	Data       interface{} `json:"data,omitempty"`
}

// Success sends a 200 OK response with data
func Success(c *gin.Context, data interface{}, message ...string) {
	msg := ""
	if len(message) > 0 {
		msg = message[0]
	}
	c.JSON(http.StatusOK, APIResponse{
		Success:    true,
		StatusCode: http.StatusOK,
		Message:    msg,
		Data:       data,
	})
}

// Created sends a 201 Created response
func Created(c *gin.Context, data interface{}, message ...string) {
	msg := ""
	if len(message) > 0 {
		msg = message[0]
	}
	c.JSON(http.StatusCreated, APIResponse{
		Success:    true,
		StatusCode: http.StatusCreated,
		Message:    msg,
		Data:       data,
	})
}

// Accepted sends a 200 response for an operation that completed with a
// distinct, non-failure outcome (e.g. a duplicate report).
func Accepted(c *gin.Context, data interface{}, code, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Success:    true,
		StatusCode: http.StatusOK,
		Message:    message,
		Code:       code,
		Data:       data,
	})
}

// Error sends an error response with custom status code and message
func Error(c *gin.Context, statusCode int, message string, errorCode ...string) {
	code := ""
	if len(errorCode) > 0 {
		code = errorCode[0]
	}
	c.JSON(statusCode, APIResponse{
		Success:    false,
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	})
}

// BadRequest sends a 400 Bad Request error
func BadRequest(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusBadRequest, message, errorCode...)
}

// Unauthorized sends a 401 Unauthorized error
func Unauthorized(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusUnauthorized, message, errorCode...)
}

// Forbidden sends a 403 Forbidden error
func Forbidden(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusForbidden, message, errorCode...)
}

// NotFound sends a 404 Not Found error
func NotFound(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusNotFound, message, errorCode...)
}

// Conflict sends a 409 Conflict error
func Conflict(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusConflict, message, errorCode...)
}

// InternalServerError sends a 500 Internal Server Error
func InternalServerError(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusInternalServerError, message, errorCode...)
}

// BadGateway sends a 502 for failed upstream store calls
func BadGateway(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusBadGateway, message, errorCode...)
}

// FromError maps a sentinel error from pkg/errors onto the matching HTTP
// error response. Remote errors keep the underlying message so the client
// can display it; nothing is retried.
func FromError(c *gin.Context, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrValidation):
		BadRequest(c, err.Error(), "VALIDATION_FAILED")
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		Unauthorized(c, err.Error(), "AUTH_REQUIRED")
	case apperrors.Is(err, apperrors.ErrForbidden):
		Forbidden(c, err.Error(), "FORBIDDEN")
	case apperrors.Is(err, apperrors.ErrBlocked):
		Forbidden(c, err.Error(), "ACCOUNT_BLOCKED")
	case apperrors.Is(err, apperrors.ErrNotFound):
		NotFound(c, err.Error(), "NOT_FOUND")
	case apperrors.Is(err, apperrors.ErrNotRegistered):
		Forbidden(c, err.Error(), "NOT_REGISTERED")
	case apperrors.Is(err, apperrors.ErrAlreadyReported):
		Conflict(c, err.Error(), "ALREADY_REPORTED")
	case apperrors.Is(err, apperrors.ErrPartialFailure):
		InternalServerError(c, err.Error(), "PARTIAL_FAILURE")
	case apperrors.Is(err, apperrors.ErrRemoteOperation):
		BadGateway(c, err.Error(), "REMOTE_OPERATION_FAILED")
	default:
		InternalServerError(c, err.Error(), "INTERNAL_ERROR")
	}
}
