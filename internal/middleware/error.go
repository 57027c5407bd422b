package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "resumeapi/internal/errors"
	"resumeapi/internal/logger"
)

// ErrorHandler converts errors set on the Gin context into the structured
// error body, unless the handler already wrote a response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		// Process the last error (most relevant in a middleware chain)
		RespondError(c, c.Errors.Last().Err)
	}
}

// Recovery turns a panic into an INTERNAL_ERROR response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Get().Errorw("panic recovered",
			"panic", fmt.Sprint(recovered),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		RespondError(c, apperrors.ErrInternalServer)
		c.Abort()
	})
}

// RespondError writes {success:false, error, code[, details]} for err.
// Errors that are not AppErrors are logged and reported as INTERNAL_ERROR.
func RespondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		appErr = apperrors.ErrInternalServer
	} else if appErr.Internal != nil && appErr.StatusCode >= http.StatusInternalServerError {
		logger.Get().Errorw("app error",
			"code", appErr.Code,
			"message", appErr.Message,
			"internal", appErr.Internal.Error(),
			"path", c.Request.URL.Path,
		)
	}

	body := gin.H{
		"success": false,
		"error":   appErr.Message,
		"code":    appErr.Code,
	}
	if details := appErr.Details(); details != "" {
		body["details"] = details
	}
	c.JSON(appErr.StatusCode, body)
}

func logRequestWarning(c *gin.Context, msg string, err error) {
	logger.Get().Warnw(msg,
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"client_ip", c.ClientIP(),
		"request_id", c.GetString(requestIDKey),
	)
}
