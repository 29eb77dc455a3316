package mocks

import (
	"context"

	"showcase-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock WorkspaceService
type WorkspaceService struct {
	mock.Mock
}

func (m *WorkspaceService) CreateWorkspace(ctx context.Context, ownerID uuid.UUID, name string) (*models.Workspace, error) {
	args := m.Called(ctx, ownerID, name)
	ws, _ := args.Get(0).(*models.Workspace)
	return ws, args.Error(1)
}
func (m *WorkspaceService) GetWorkspace(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*models.Workspace, error) {
	args := m.Called(ctx, id, ownerID)
	ws, _ := args.Get(0).(*models.Workspace)
	return ws, args.Error(1)
}
func (m *WorkspaceService) ListWorkspaces(ctx context.Context, ownerID uuid.UUID, cursor string, limit int) ([]models.Workspace, string, error) {
	args := m.Called(ctx, ownerID, cursor, limit)
	list, _ := args.Get(0).([]models.Workspace)
	return list, args.String(1), args.Error(2)
}
func (m *WorkspaceService) DeleteWorkspace(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

// Mock InterfaceService
type InterfaceService struct {
	mock.Mock
}

func (m *InterfaceService) CreateInterface(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, name string, kind models.InterfaceKind) (*models.Interface, error) {
	args := m.Called(ctx, ownerID, workspaceID, name, kind)
	iface, _ := args.Get(0).(*models.Interface)
	return iface, args.Error(1)
}
func (m *InterfaceService) GetInterface(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, id uuid.UUID) (*models.Interface, error) {
	args := m.Called(ctx, ownerID, workspaceID, id)
	iface, _ := args.Get(0).(*models.Interface)
	return iface, args.Error(1)
}
func (m *InterfaceService) ListInterfaces(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, cursor string, limit int) ([]models.Interface, string, error) {
	args := m.Called(ctx, ownerID, workspaceID, cursor, limit)
	list, _ := args.Get(0).([]models.Interface)
	return list, args.String(1), args.Error(2)
}
func (m *InterfaceService) RenameInterface(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, id uuid.UUID, name string) error {
	args := m.Called(ctx, ownerID, workspaceID, id, name)
	return args.Error(0)
}
func (m *InterfaceService) DeleteInterface(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, workspaceID, id)
	return args.Error(0)
}

// Mock ContentService
type ContentService struct {
	mock.Mock
}

func (m *ContentService) GetInterfaceView(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, interfaceID uuid.UUID) (*models.ContentDocument, error) {
	args := m.Called(ctx, ownerID, workspaceID, interfaceID)
	doc, _ := args.Get(0).(*models.ContentDocument)
	return doc, args.Error(1)
}
func (m *ContentService) SaveHeader(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, interfaceID uuid.UUID, title string, backgroundImage string) (*models.ContentDocument, error) {
	args := m.Called(ctx, ownerID, workspaceID, interfaceID, title, backgroundImage)
	doc, _ := args.Get(0).(*models.ContentDocument)
	return doc, args.Error(1)
}
func (m *ContentService) UpsertItem(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, interfaceID uuid.UUID, item models.ContentItem) (*models.ContentDocument, models.ContentItem, models.FieldErrors, error) {
	args := m.Called(ctx, ownerID, workspaceID, interfaceID, item)
	doc, _ := args.Get(0).(*models.ContentDocument)
	saved, _ := args.Get(1).(models.ContentItem)
	fieldErrs, _ := args.Get(2).(models.FieldErrors)
	return doc, saved, fieldErrs, args.Error(3)
}
func (m *ContentService) DeleteItem(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, interfaceID uuid.UUID, itemID uuid.UUID) (*models.ContentDocument, error) {
	args := m.Called(ctx, ownerID, workspaceID, interfaceID, itemID)
	doc, _ := args.Get(0).(*models.ContentDocument)
	return doc, args.Error(1)
}

// Mock SettingsService
type SettingsService struct {
	mock.Mock
}

func (m *SettingsService) SetSetting(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, key string, value string) (*models.Setting, error) {
	args := m.Called(ctx, ownerID, workspaceID, key, value)
	s, _ := args.Get(0).(*models.Setting)
	return s, args.Error(1)
}
func (m *SettingsService) GetSetting(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, key string) (*models.Setting, error) {
	args := m.Called(ctx, ownerID, workspaceID, key)
	s, _ := args.Get(0).(*models.Setting)
	return s, args.Error(1)
}
func (m *SettingsService) ListSettings(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID) ([]models.Setting, error) {
	args := m.Called(ctx, ownerID, workspaceID)
	list, _ := args.Get(0).([]models.Setting)
	return list, args.Error(1)
}
