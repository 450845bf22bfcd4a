package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/logger"
)

// ErrorHandler returns a backstop middleware for errors attached to the
// context with c.Error. Handlers normally write their own error
// envelope; this only responds when none of them did, so an attached
// error can never leak out as an empty 200. AppErrors keep their code
// and status, anything else becomes a generic internal error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		log := logger.Get()
		requestID := RequestID(c)
		for _, ginErr := range c.Errors {
			log.Errorw("handler error",
				"request_id", requestID,
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"error", ginErr.Err.Error(),
			)
		}

		if c.Writer.Written() {
			return
		}

		var appErr *apperrors.AppError
		if !errors.As(c.Errors.Last().Err, &appErr) {
			appErr = apperrors.ErrInternalServer
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
	}
}
