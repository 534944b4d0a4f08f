package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"focusboard/backend/internal/middleware"
	"focusboard/backend/internal/service"
)

type PomodoroHandler struct {
	settingsService *service.SettingsService
}

type saveSettingsRequest struct {
	StudyTime *float64 `json:"studyTime"`
	BreakTime *float64 `json:"breakTime"`
}

func NewPomodoroHandler(settingsService *service.SettingsService) *PomodoroHandler {
	return &PomodoroHandler{settingsService: settingsService}
}

func (h *PomodoroHandler) GetSettings(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		writeUnauthorized(c)
		return
	}

	settings, apiErr := h.settingsService.Get(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *PomodoroHandler) SaveSettings(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		writeUnauthorized(c)
		return
	}

	var req saveSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	settings, apiErr := h.settingsService.Save(c.Request.Context(), userID, valueOrZero(req.StudyTime), valueOrZero(req.BreakTime))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
