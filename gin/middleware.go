package gin

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/webtab"
	"github.com/gin-gonic/gin"
)

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func(begin time.Time) {
			logger.Info("request",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"status", c.Writer.Status(),
				"duration", time.Since(begin),
			)
		}(time.Now())
		c.Next()
	}
}

// apiKeyAuth accepts either "X-API-Key: <key>" or "Authorization: Bearer <key>".
// With no keys configured every request passes.
func apiKeyAuth(keys []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if k != "" {
			allowed[k] = struct{}{}
		}
	}
	if len(allowed) == 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := c.GetHeader("X-API-Key")
		if key == "" {
			key = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		}
		if _, ok := allowed[key]; !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{
				Success: false,
				Error:   errorDetail{Code: "unauthorized", Message: "missing or invalid API key"},
			})
			return
		}
		c.Next()
	}
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Success bool        `json:"success"`
	Error   errorDetail `json:"error"`
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), errorResponse{
		Success: false,
		Error: errorDetail{
			Code:    webtab.ErrorCode(err),
			Message: webtab.ErrorMessage(err),
		},
	})
}

// statusFor translates application error codes to HTTP status codes.
func statusFor(err error) int {
	switch webtab.ErrorCode(err) {
	case webtab.EINVALID, webtab.EINVALIDURL:
		return http.StatusBadRequest
	case webtab.ERENDER, webtab.EPLAINFETCH, webtab.EFETCH, webtab.EEMPTY:
		return http.StatusBadGateway
	case webtab.EPARSE:
		return http.StatusUnprocessableEntity
	case webtab.ENOTFOUND:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
