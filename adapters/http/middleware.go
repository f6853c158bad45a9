package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/linkedin-crm/pkg/apperror"
	"github.com/khoahotran/linkedin-crm/pkg/logger"
)

// ErrorMiddleware turns errors collected by handlers into the structured
// failure envelope. Anything that is not an AppError is treated as
// unexpected: logged with full context, reported opaquely.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			log.Error("Unexpected error handling request", err,
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			appErr = apperror.NewInternal("unexpected server error", err)
		} else if errors.Is(appErr, apperror.ErrStorage) || errors.Is(appErr, apperror.ErrInternal) {
			log.Error("Request failed", err, zap.String("path", c.Request.URL.Path))
		}

		c.JSON(apperror.ToHTTPStatus(appErr), appErr.ToJSON())
	}
}

// CORSMiddleware stays wide open: the browser extension posts from a
// chrome-extension:// origin.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
