package handler

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"showcase-server/internal/models"
)

type createWorkspaceRequest struct {
	Name string `json:"name" binding:"required"`
}

type workspaceResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toWorkspaceResponse(w *models.Workspace) workspaceResponse {
	return workspaceResponse{
		ID:        w.ID,
		Name:      w.Name,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

type workspaceListResponse struct {
	Workspaces []workspaceResponse `json:"workspaces"`
	NextCursor string              `json:"nextCursor,omitempty"`
}

type createInterfaceRequest struct {
	Name string `json:"name" binding:"required"`
	Kind string `json:"kind" binding:"required"`
}

type renameInterfaceRequest struct {
	Name string `json:"name" binding:"required"`
}

type interfaceResponse struct {
	ID          uuid.UUID       `json:"id"`
	WorkspaceID uuid.UUID       `json:"workspaceId"`
	Name        string          `json:"name"`
	Kind        string          `json:"kind"`
	Config      json.RawMessage `json:"config"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func toInterfaceResponse(i *models.Interface) interfaceResponse {
	return interfaceResponse{
		ID:          i.ID,
		WorkspaceID: i.WorkspaceID,
		Name:        i.Name,
		Kind:        string(i.Kind),
		Config:      i.Config,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

type interfaceListResponse struct {
	Interfaces []interfaceResponse `json:"interfaces"`
	NextCursor string              `json:"nextCursor,omitempty"`
}

type saveHeaderRequest struct {
	HeaderTitle           string `json:"headerTitle"`
	HeaderBackgroundImage string `json:"headerBackgroundImage"`
}

// upsertItemResponse carries the saved item and the resulting document, both
// in wire form.
type upsertItemResponse struct {
	Item     json.RawMessage `json:"item"`
	Document json.RawMessage `json:"document"`
}

// validationErrorResponse is returned with 422 when item validation fails.
// Document is the stored document, untouched by the rejected item.
type validationErrorResponse struct {
	ValidationErrors models.FieldErrors `json:"validationErrors"`
	Document         json.RawMessage    `json:"document"`
}

type putSettingRequest struct {
	Value string `json:"value"`
}

type settingResponse struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toSettingResponse(s *models.Setting) settingResponse {
	return settingResponse{
		Key:       s.Key,
		Value:     s.Value,
		UpdatedAt: s.UpdatedAt,
	}
}

type settingsListResponse struct {
	Settings []settingResponse `json:"settings"`
}
