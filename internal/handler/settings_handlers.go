package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) putSetting(c *gin.Context) {
	userID, ok := h.userIDFromContext(c)
	if !ok {
		return
	}
	workspaceID, ok := h.uuidParam(c, "workspaceID")
	if !ok {
		return
	}
	key := c.Param("key")

	var req putSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "Invalid request body: " + err.Error()})
		return
	}

	setting, err := h.settingsService.SetSetting(c.Request.Context(), userID, workspaceID, key, req.Value)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSettingResponse(setting))
}

func (h *Handler) getSetting(c *gin.Context) {
	userID, ok := h.userIDFromContext(c)
	if !ok {
		return
	}
	workspaceID, ok := h.uuidParam(c, "workspaceID")
	if !ok {
		return
	}
	key := c.Param("key")

	setting, err := h.settingsService.GetSetting(c.Request.Context(), userID, workspaceID, key)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSettingResponse(setting))
}

func (h *Handler) listSettings(c *gin.Context) {
	userID, ok := h.userIDFromContext(c)
	if !ok {
		return
	}
	workspaceID, ok := h.uuidParam(c, "workspaceID")
	if !ok {
		return
	}

	settings, err := h.settingsService.ListSettings(c.Request.Context(), userID, workspaceID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	resp := settingsListResponse{Settings: make([]settingResponse, 0, len(settings))}
	for i := range settings {
		resp.Settings = append(resp.Settings, toSettingResponse(&settings[i]))
	}
	c.JSON(http.StatusOK, resp)
}
