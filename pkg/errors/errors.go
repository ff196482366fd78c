// Package errors defines the unified application error rendered at the
// API boundary.
package errors

import (
	"errors"
	"net/http"
	"time"

	"github.com/spacekeep/capture-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// AppError is the JSON error envelope returned by handlers.
type AppError struct {
	Code      int       `json:"code"`
	Message   string    `json:"message"`
	Details   []string  `json:"details,omitempty"`
	Cause     error     `json:"-"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError builds an AppError from a registered code.
func NewAppError(c *code.Code, cause error) *AppError {
	return &AppError{
		Code:      c.Code(),
		Message:   c.Msg(),
		Details:   c.Details(),
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// ErrorResponse converts any error into the unified JSON envelope.
// Registered codes and AppErrors keep their identity; everything else is
// reported as an internal error.
func ErrorResponse(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(http.StatusOK, appErr)
		return
	}

	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		c.JSON(http.StatusOK, &AppError{
			Code:      codeErr.Code(),
			Message:   codeErr.Msg(),
			Details:   codeErr.Details(),
			Timestamp: time.Now(),
		})
		return
	}

	c.JSON(http.StatusOK, &AppError{
		Code:      code.ErrorServerInternal.Code(),
		Message:   code.ErrorServerInternal.Msg(),
		Details:   []string{err.Error()},
		Timestamp: time.Now(),
	})
}

// IsAppError reports whether err wraps an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}
