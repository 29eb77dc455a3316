package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"showcase-server/internal/middleware"
	"showcase-server/internal/models"
	"showcase-server/internal/service"
)

// APIError is the JSON body of every error response.
type APIError struct {
	Message string `json:"message"`
}

// Handler owns the HTTP surface of the service.
type Handler struct {
	workspaceService service.WorkspaceService
	interfaceService service.InterfaceService
	contentService   service.ContentService
	settingsService  service.SettingsService
	logger           *zap.Logger
}

// NewHandler creates a new Handler.
func NewHandler(
	workspaceService service.WorkspaceService,
	interfaceService service.InterfaceService,
	contentService service.ContentService,
	settingsService service.SettingsService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		workspaceService: workspaceService,
		interfaceService: interfaceService,
		contentService:   contentService,
		settingsService:  settingsService,
		logger:           logger.Named("HTTPHandler"),
	}
}

// RegisterRoutes mounts all authenticated API routes on the router.
func (h *Handler) RegisterRoutes(router *gin.Engine, verifier middleware.TokenVerifier) {
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(verifier, h.logger))

	workspaces := api.Group("/workspaces")
	{
		workspaces.POST("", h.createWorkspace)
		workspaces.GET("", h.listWorkspaces)
		workspaces.GET("/:workspaceID", h.getWorkspace)
		workspaces.DELETE("/:workspaceID", h.deleteWorkspace)

		workspaces.GET("/:workspaceID/settings", h.listSettings)
		workspaces.GET("/:workspaceID/settings/:key", h.getSetting)
		workspaces.PUT("/:workspaceID/settings/:key", h.putSetting)

		interfaces := workspaces.Group("/:workspaceID/interfaces")
		{
			interfaces.POST("", h.createInterface)
			interfaces.GET("", h.listInterfaces)
			interfaces.GET("/:interfaceID", h.getInterface)
			interfaces.PATCH("/:interfaceID", h.renameInterface)
			interfaces.DELETE("/:interfaceID", h.deleteInterface)

			interfaces.GET("/:interfaceID/content", h.getContent)
			interfaces.PUT("/:interfaceID/content/header", h.saveHeader)
			interfaces.POST("/:interfaceID/content/items", h.upsertItem)
			interfaces.DELETE("/:interfaceID/content/items/:itemID", h.deleteItem)
		}
	}
}

// handleServiceError maps service errors to HTTP status codes.
func (h *Handler) handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var apiErr APIError

	switch {
	case errors.Is(err, models.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		apiErr = APIError{Message: "Unauthorized"}
	case errors.Is(err, models.ErrForbidden):
		statusCode = http.StatusForbidden
		apiErr = APIError{Message: "Forbidden"}
	case errors.Is(err, models.ErrNotFound),
		errors.Is(err, models.ErrWorkspaceNotFound),
		errors.Is(err, models.ErrInterfaceNotFound),
		errors.Is(err, models.ErrItemNotFound):
		statusCode = http.StatusNotFound
		apiErr = APIError{Message: "Resource not found or access denied"}
	case errors.Is(err, models.ErrNotContentInterface):
		statusCode = http.StatusConflict
		apiErr = APIError{Message: err.Error()}
	case errors.Is(err, models.ErrUnknownContentType):
		statusCode = http.StatusBadRequest
		apiErr = APIError{Message: err.Error()}
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrBadRequest):
		statusCode = http.StatusBadRequest
		apiErr = APIError{Message: err.Error()}
	case errors.Is(err, models.ErrInvalidCursor):
		statusCode = http.StatusBadRequest
		apiErr = APIError{Message: "Invalid pagination cursor"}
	case errors.Is(err, models.ErrMalformedDocument):
		statusCode = http.StatusInternalServerError
		apiErr = APIError{Message: "Stored configuration document is malformed"}
	default:
		h.logger.Error("Unhandled service error", zap.Error(err), zap.String("path", c.Request.URL.Path))
		statusCode = http.StatusInternalServerError
		apiErr = APIError{Message: "Internal server error"}
	}
	c.JSON(statusCode, apiErr)
}

// userIDFromContext extracts the authenticated user id set by the auth
// middleware.
func (h *Handler) userIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		h.logger.Error("Claims missing from request context", zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusUnauthorized, APIError{Message: "Unauthorized"})
		return uuid.Nil, false
	}
	return claims.UserID, true
}

// uuidParam parses a path parameter as a UUID, responding 400 on failure.
func (h *Handler) uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "Invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
