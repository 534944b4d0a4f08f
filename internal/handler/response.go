package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "focusboard/backend/internal/errors"
	"focusboard/backend/internal/logger"
)

// writeError renders apiErr. Server-side failures are logged with their
// cause and reach the client only as a generic message.
func writeError(c *gin.Context, apiErr *apperrors.APIError) {
	if apiErr == nil || apiErr.Status >= http.StatusInternalServerError {
		fields := map[string]any{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}
		if apiErr != nil {
			fields["code"] = apiErr.Code
			fields["message"] = apiErr.Message
			if apiErr.Cause != nil {
				fields["error"] = apiErr.Cause.Error()
			}
		}
		logger.Error("request failed", fields)

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "internal_error",
				"message": "internal server error",
			},
		})
		return
	}

	errorBody := gin.H{
		"code":    apiErr.Code,
		"message": apiErr.Message,
	}
	if apiErr.Details != nil {
		errorBody["details"] = apiErr.Details
	}

	c.JSON(apiErr.Status, gin.H{
		"error": errorBody,
	})
}

func writeInvalidJSON(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": gin.H{
			"code":    "invalid_json",
			"message": "invalid request body",
		},
	})
}

func writeUnauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{"code": "unauthorized", "message": "unauthorized"},
	})
}
