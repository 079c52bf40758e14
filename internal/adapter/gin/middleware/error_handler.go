package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"user-rest-service/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// APIErrorResponse is the body rendered for domain API errors.
type APIErrorResponse struct {
	Title      string `json:"title"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	StackTrace string `json:"stackTrace,omitempty"`
}

// ValidationFailedResponse is the body rendered for malformed request shapes.
type ValidationFailedResponse struct {
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

// ErrorHandler is the single place where any error raised by a handler or
// the usecase becomes an HTTP response. Dispatch order, first match wins:
// request-shape failures (422), generic transport errors with an explicit
// status, domain API errors, then a generic 500 for anything unexpected.
func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		if details, ok := validationDetails(err); ok {
			log.Warn("request validation failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.JSON(http.StatusUnprocessableEntity, ValidationFailedResponse{
				Message: "Validation Failed",
				Details: details,
			})
			return
		}

		var httpErr *apierrors.HTTPError
		if errors.As(err, &httpErr) {
			c.JSON(httpErr.StatusCode, gin.H{"message": httpErr.Message})
			return
		}

		var apiErr *apierrors.Error
		if errors.As(err, &apiErr) {
			c.JSON(apiErr.StatusCode, APIErrorResponse{
				Title:      apiErr.Title,
				Message:    apiErr.Message,
				StatusCode: apiErr.StatusCode,
				StackTrace: apiErr.Stack,
			})
			return
		}

		log.Error("unexpected error", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "An internal server error occurred",
		})
	}
}

// validationDetails classifies body-shape failures: binding validation
// errors and unparseable or empty JSON bodies.
func validationDetails(err error) (map[string]string, bool) {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		details := make(map[string]string, len(vErrs))
		for _, fe := range vErrs {
			details[fe.Field()] = fe.Tag()
		}
		return details, true
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr),
		errors.As(err, &typeErr),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF):
		return map[string]string{"body": err.Error()}, true
	}

	return nil, false
}

// NoRouteHandler responds to unmatched routes.
func NoRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "No Route Found",
		})
	}
}
