package utils

import (
	"net/http"

	"bookly/services/errs"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Field   string `json:"field,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.FullPath()))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError aborts the request with a standardized JSON error response. It
// covers statuses outside the domain taxonomy (401, 429).
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details), zap.Int("status", status))
	c.AbortWithStatusJSON(status, ErrorResponse{Message: message, Details: details})
}

// StatusFor maps a domain error kind to its HTTP status.
func StatusFor(err error) int {
	switch errs.KindOf(err) {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindNotSchedulable:
		return http.StatusUnprocessableEntity
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindConflict:
		return http.StatusConflict
	case errs.KindAuthorization:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err using the domain taxonomy. Infrastructure failures
// are logged and hidden behind a generic 500.
func RespondError(c *gin.Context, message string, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		GetLogger().Error(message, zap.Error(err), zap.String("path", c.FullPath()))
		c.JSON(status, ErrorResponse{Message: message, Details: "internal error"})
		return
	}
	GetLogger().Debug(message, zap.Error(err))
	c.JSON(status, ErrorResponse{Message: message, Details: err.Error(), Field: errs.FieldOf(err)})
}
