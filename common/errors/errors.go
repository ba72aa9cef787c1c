package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on code and message so sentinel values work with errors.Is after Wrap.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Wrap returns a copy of sentinel carrying err. Sentinels are shared and must not be mutated.
func Wrap(sentinel *Error, err error) *Error {
	return &Error{Code: sentinel.Code, Message: sentinel.Message, Err: err}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Common error types
var (
	ErrBadRequest         = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized       = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrNotFound           = New(http.StatusNotFound, "Not found", nil)
	ErrTooManyRequests    = New(http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
	ErrInternalServer     = New(http.StatusInternalServerError, "Internal server error", nil)
	ErrBadGateway         = New(http.StatusBadGateway, "Upstream request failed", nil)
	ErrServiceUnavailable = New(http.StatusServiceUnavailable, "Service unavailable", nil)
)

// Validation error types
var (
	ErrValidation   = New(http.StatusBadRequest, "Validation error", nil)
	ErrInvalidInput = New(http.StatusBadRequest, "Invalid input", nil)
)

// Session and cart error types
var (
	ErrLoginRequired      = New(http.StatusUnauthorized, "Please login to continue", nil)
	ErrInvalidCredentials = New(http.StatusUnauthorized, "password or email is incorrect, try again", nil)
	ErrInvalidSession     = New(http.StatusUnauthorized, "Invalid session", nil)
	ErrInvalidQuantity    = New(http.StatusBadRequest, "Quantity must be at least 1", nil)
	ErrSuperseded         = New(http.StatusAccepted, "Superseded by a newer request", nil)
	ErrMissingCartOwner   = New(http.StatusNotFound, "User ID not found", nil)
	ErrEmptyCart          = New(http.StatusConflict, "Your cart is empty", nil)
)

// Account error types
var (
	ErrNoChanges          = New(http.StatusBadRequest, "No changes made", nil)
	ErrPasswordMismatch   = New(http.StatusBadRequest, "New passwords do not match", nil)
	ErrPasswordTooShort   = New(http.StatusBadRequest, "New password must be at least 6 characters", nil)
	ErrResetNotStarted    = New(http.StatusBadRequest, "Start the password reset from the beginning", nil)
	ErrRegistrationFailed = New(http.StatusBadRequest, "Registration failed. Please try again.", nil)
)

// ErrorMiddleware renders the last error attached to the gin context
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr, ok := As(err)
		if !ok {
			appErr = Wrap(ErrInternalServer, err)
		}
		c.AbortWithStatusJSON(appErr.Code, appErr)
	}
}
