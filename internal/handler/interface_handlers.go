package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"showcase-server/internal/models"
)

func (h *Handler) createInterface(c *gin.Context) {
	userID, ok := h.userIDFromContext(c)
	if !ok {
		return
	}
	workspaceID, ok := h.uuidParam(c, "workspaceID")
	if !ok {
		return
	}

	var req createInterfaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "Invalid request body: " + err.Error()})
		return
	}

	iface, err := h.interfaceService.CreateInterface(c.Request.Context(), userID, workspaceID, req.Name, models.InterfaceKind(req.Kind))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toInterfaceResponse(iface))
}

func (h *Handler) listInterfaces(c *gin.Context) {
	userID, ok := h.userIDFromContext(c)
	if !ok {
		return
	}
	workspaceID, ok := h.uuidParam(c, "workspaceID")
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	cursor := c.Query("cursor")

	interfaces, nextCursor, err := h.interfaceService.ListInterfaces(c.Request.Context(), userID, workspaceID, cursor, limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	resp := interfaceListResponse{
		Interfaces: make([]interfaceResponse, 0, len(interfaces)),
		NextCursor: nextCursor,
	}
	for i := range interfaces {
		resp.Interfaces = append(resp.Interfaces, toInterfaceResponse(&interfaces[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getInterface(c *gin.Context) {
	userID, ok := h.userIDFromContext(c)
	if !ok {
		return
	}
	workspaceID, ok := h.uuidParam(c, "workspaceID")
	if !ok {
		return
	}
	interfaceID, ok := h.uuidParam(c, "interfaceID")
	if !ok {
		return
	}

	iface, err := h.interfaceService.GetInterface(c.Request.Context(), userID, workspaceID, interfaceID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toInterfaceResponse(iface))
}

func (h *Handler) renameInterface(c *gin.Context) {
	userID, ok := h.userIDFromContext(c)
	if !ok {
		return
	}
	workspaceID, ok := h.uuidParam(c, "workspaceID")
	if !ok {
		return
	}
	interfaceID, ok := h.uuidParam(c, "interfaceID")
	if !ok {
		return
	}

	var req renameInterfaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.interfaceService.RenameInterface(c.Request.Context(), userID, workspaceID, interfaceID, req.Name); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) deleteInterface(c *gin.Context) {
	userID, ok := h.userIDFromContext(c)
	if !ok {
		return
	}
	workspaceID, ok := h.uuidParam(c, "workspaceID")
	if !ok {
		return
	}
	interfaceID, ok := h.uuidParam(c, "interfaceID")
	if !ok {
		return
	}

	if err := h.interfaceService.DeleteInterface(c.Request.Context(), userID, workspaceID, interfaceID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
