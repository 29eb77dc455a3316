package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *Handler) createWorkspace(c *gin.Context) {
	userID, ok := h.userIDFromContext(c)
	if !ok {
		return
	}

	var req createWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "Invalid request body: " + err.Error()})
		return
	}

	workspace, err := h.workspaceService.CreateWorkspace(c.Request.Context(), userID, req.Name)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toWorkspaceResponse(workspace))
}

func (h *Handler) listWorkspaces(c *gin.Context) {
	userID, ok := h.userIDFromContext(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	cursor := c.Query("cursor")

	workspaces, nextCursor, err := h.workspaceService.ListWorkspaces(c.Request.Context(), userID, cursor, limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	resp := workspaceListResponse{
		Workspaces: make([]workspaceResponse, 0, len(workspaces)),
		NextCursor: nextCursor,
	}
	for i := range workspaces {
		resp.Workspaces = append(resp.Workspaces, toWorkspaceResponse(&workspaces[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getWorkspace(c *gin.Context) {
	userID, ok := h.userIDFromContext(c)
	if !ok {
		return
	}
	workspaceID, ok := h.uuidParam(c, "workspaceID")
	if !ok {
		return
	}

	workspace, err := h.workspaceService.GetWorkspace(c.Request.Context(), workspaceID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWorkspaceResponse(workspace))
}

func (h *Handler) deleteWorkspace(c *gin.Context) {
	userID, ok := h.userIDFromContext(c)
	if !ok {
		return
	}
	workspaceID, ok := h.uuidParam(c, "workspaceID")
	if !ok {
		return
	}

	if err := h.workspaceService.DeleteWorkspace(c.Request.Context(), workspaceID, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
