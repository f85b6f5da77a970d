package middleware

import (
	"log/slog"
	"net/http"

	"campus-placement/internal/handler/httperr"
	"campus-placement/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last public error recorded by httperr and logs
// server-side failures with their cause chain.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		logServerErrors(c)

		if c.Writer.Written() {
			return
		}
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]
			if err.IsType(gin.ErrorTypePublic) {
				if resp, ok := err.Meta.(httperr.Response); ok {
					c.JSON(resp.Status, resp)
					return
				}
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Internal server error"}})
	}
}

func logServerErrors(c *gin.Context) {
	if c.Writer.Status() < http.StatusInternalServerError {
		return
	}
	for _, e := range c.Errors {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"request_id", GetRequestID(c),
			"path", c.FullPath(),
			"kind", errs.KindOf(e.Err),
			"error", e.Err.Error(),
			"stack", errs.ExtractStackLines(e.Err, 12),
		)
	}
}

// CustomRecovery turns a panic into a 500. Upgraded sockets have already
// written their handshake, so for them the connection is just dropped.
func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("recovered from panic", "error", err, "path", c.Request.URL.Path, "request_id", GetRequestID(c))

				if c.Writer.Written() {
					c.Abort()
					return
				}
				resp := httperr.Response{Status: http.StatusInternalServerError}
				resp.Error.Message = "Internal server error"

				c.JSON(http.StatusInternalServerError, resp)
				c.Abort()
			}
		}()
		c.Next()
	}
}
