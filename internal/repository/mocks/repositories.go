package mocks

import (
	"context"
	"encoding/json"
	"time"

	"showcase-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock WorkspaceRepository
type WorkspaceRepository struct {
	mock.Mock
}

func (m *WorkspaceRepository) Create(ctx context.Context, workspace *models.Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
}
func (m *WorkspaceRepository) GetByID(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*models.Workspace, error) {
	args := m.Called(ctx, id, ownerID)
	ws, _ := args.Get(0).(*models.Workspace)
	return ws, args.Error(1)
}
func (m *WorkspaceRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, cursor string, limit int) ([]models.Workspace, string, error) {
	args := m.Called(ctx, ownerID, cursor, limit)
	list, _ := args.Get(0).([]models.Workspace)
	return list, args.String(1), args.Error(2)
}
func (m *WorkspaceRepository) Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

// Mock InterfaceRepository
type InterfaceRepository struct {
	mock.Mock
}

func (m *InterfaceRepository) Create(ctx context.Context, iface *models.Interface) error {
	args := m.Called(ctx, iface)
	return args.Error(0)
}
func (m *InterfaceRepository) GetByID(ctx context.Context, id uuid.UUID, workspaceID uuid.UUID) (*models.Interface, error) {
	args := m.Called(ctx, id, workspaceID)
	iface, _ := args.Get(0).(*models.Interface)
	return iface, args.Error(1)
}
func (m *InterfaceRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, cursor string, limit int) ([]models.Interface, string, error) {
	args := m.Called(ctx, workspaceID, cursor, limit)
	list, _ := args.Get(0).([]models.Interface)
	return list, args.String(1), args.Error(2)
}
func (m *InterfaceRepository) UpdateName(ctx context.Context, id uuid.UUID, workspaceID uuid.UUID, name string) error {
	args := m.Called(ctx, id, workspaceID, name)
	return args.Error(0)
}
func (m *InterfaceRepository) UpdateConfig(ctx context.Context, id uuid.UUID, workspaceID uuid.UUID, config json.RawMessage) error {
	args := m.Called(ctx, id, workspaceID, config)
	return args.Error(0)
}
func (m *InterfaceRepository) Delete(ctx context.Context, id uuid.UUID, workspaceID uuid.UUID) error {
	args := m.Called(ctx, id, workspaceID)
	return args.Error(0)
}

// Mock SettingsRepository
type SettingsRepository struct {
	mock.Mock
}

func (m *SettingsRepository) Upsert(ctx context.Context, setting *models.Setting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}
func (m *SettingsRepository) GetByKey(ctx context.Context, workspaceID uuid.UUID, key string) (*models.Setting, error) {
	args := m.Called(ctx, workspaceID, key)
	s, _ := args.Get(0).(*models.Setting)
	return s, args.Error(1)
}
func (m *SettingsRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]models.Setting, error) {
	args := m.Called(ctx, workspaceID)
	list, _ := args.Get(0).([]models.Setting)
	return list, args.Error(1)
}

// Mock DocumentCache
type DocumentCache struct {
	mock.Mock
}

func (m *DocumentCache) Get(ctx context.Context, workspaceID uuid.UUID, interfaceID uuid.UUID) (json.RawMessage, error) {
	args := m.Called(ctx, workspaceID, interfaceID)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}
func (m *DocumentCache) Set(ctx context.Context, workspaceID uuid.UUID, interfaceID uuid.UUID, raw json.RawMessage, ttl time.Duration) error {
	args := m.Called(ctx, workspaceID, interfaceID, raw, ttl)
	return args.Error(0)
}
func (m *DocumentCache) Invalidate(ctx context.Context, workspaceID uuid.UUID, interfaceID uuid.UUID) error {
	args := m.Called(ctx, workspaceID, interfaceID)
	return args.Error(0)
}
