package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"showcase-server/internal/models"
)

const jsonContentType = "application/json; charset=utf-8"

// getContent returns the content document of the interface in wire form.
func (h *Handler) getContent(c *gin.Context) {
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

	doc, err := h.contentService.GetInterfaceView(c.Request.Context(), userID, workspaceID, interfaceID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.writeDocument(c, http.StatusOK, doc)
}

// saveHeader overwrites the two header fields verbatim.
func (h *Handler) saveHeader(c *gin.Context) {
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

	var req saveHeaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "Invalid request body: " + err.Error()})
		return
	}

	doc, err := h.contentService.SaveHeader(c.Request.Context(), userID, workspaceID, interfaceID, req.HeaderTitle, req.HeaderBackgroundImage)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.writeDocument(c, http.StatusOK, doc)
}

// upsertItem accepts one item in wire form (contentType discriminator plus
// the variant's fields, identifier optional) and adds it to or updates it in
// the document. Validation failures come back as 422 with field errors and
// leave the document untouched.
func (h *Handler) upsertItem(c *gin.Context) {
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

	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, APIError{Message: "Invalid request body"})
		return
	}
	item, err := models.DecodeContentItem(body)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	doc, saved, fieldErrs, err := h.contentService.UpsertItem(c.Request.Context(), userID, workspaceID, interfaceID, item)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	if len(fieldErrs) > 0 {
		rawDoc, encErr := models.EncodeContentDocument(doc)
		if encErr != nil {
			h.logger.Error("Failed to encode document", zap.Error(encErr))
			c.JSON(http.StatusInternalServerError, APIError{Message: "Internal server error"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, validationErrorResponse{ValidationErrors: fieldErrs, Document: rawDoc})
		return
	}

	rawItem, err := models.EncodeContentItem(saved)
	if err != nil {
		h.logger.Error("Failed to encode saved item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, APIError{Message: "Internal server error"})
		return
	}
	rawDoc, err := models.EncodeContentDocument(doc)
	if err != nil {
		h.logger.Error("Failed to encode document", zap.Error(err))
		c.JSON(http.StatusInternalServerError, APIError{Message: "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, upsertItemResponse{Item: rawItem, Document: rawDoc})
}

// deleteItem removes exactly one item; an unknown id is 404.
func (h *Handler) deleteItem(c *gin.Context) {
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
	itemID, ok := h.uuidParam(c, "itemID")
	if !ok {
		return
	}

	doc, err := h.contentService.DeleteItem(c.Request.Context(), userID, workspaceID, interfaceID, itemID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.writeDocument(c, http.StatusOK, doc)
}

// writeDocument serializes the document with the codec so responses carry
// exactly the wire shape that is stored.
func (h *Handler) writeDocument(c *gin.Context, status int, doc *models.ContentDocument) {
	raw, err := models.EncodeContentDocument(doc)
	if err != nil {
		h.logger.Error("Failed to encode document", zap.Error(err))
		c.JSON(http.StatusInternalServerError, APIError{Message: "Internal server error"})
		return
	}
	c.Data(status, jsonContentType, raw)
}
