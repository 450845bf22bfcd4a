package handlers

import (
	"errors"
	"regexp"

	"github.com/gin-gonic/gin"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/logger"
	"pennywise/internal/uuid"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// isDateParam reports whether s has the "YYYY-MM-DD" shape used for all
// date path and query parameters.
func isDateParam(s string) bool {
	return datePattern.MatchString(s)
}

// parsePathID validates a UUID path parameter.
// Returns ErrInvalidInput if the parameter is not a well-formed UUID.
func parsePathID(c *gin.Context, param string) (string, error) {
	id := c.Param(param)
	if !uuid.IsValid(id) {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}

// optionalString maps a request string field onto a nullable column
// patch. Absent leaves the column untouched, empty string clears it.
// encoding/json cannot distinguish null from absent for pointer fields,
// hence the empty-string sentinel.
func optionalString(v *string) **string {
	if v == nil {
		return nil
	}
	if *v == "" {
		var null *string
		return &null
	}
	return &v
}

// optionalInt maps a request int field onto a nullable column patch.
// Absent leaves the column untouched, zero or negative clears it.
func optionalInt(v *int) **int {
	if v == nil {
		return nil
	}
	if *v <= 0 {
		var null *int
		return &null
	}
	return &v
}

// optionalInt64 behaves like optionalInt for int64 fields.
func optionalInt64(v *int64) **int64 {
	if v == nil {
		return nil
	}
	if *v <= 0 {
		var null *int64
		return &null
	}
	return &v
}
