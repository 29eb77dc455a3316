package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"showcase-server/internal/models"
	"showcase-server/internal/repository"
)

// SettingsService manages the per-workspace key-value settings store.
type SettingsService interface {
	SetSetting(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, key string, value string) (*models.Setting, error)
	GetSetting(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, key string) (*models.Setting, error)
	ListSettings(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID) ([]models.Setting, error)
}

type settingsServiceImpl struct {
	workspaceRepo repository.WorkspaceRepository
	settingsRepo  repository.SettingsRepository
	logger        *zap.Logger
}

// NewSettingsService creates a new instance of SettingsService.
func NewSettingsService(
	workspaceRepo repository.WorkspaceRepository,
	settingsRepo repository.SettingsRepository,
	logger *zap.Logger,
) SettingsService {
	return &settingsServiceImpl{
		workspaceRepo: workspaceRepo,
		settingsRepo:  settingsRepo,
		logger:        logger.Named("SettingsService"),
	}
}

// SetSetting creates or overwrites the value under the key. The last write
// wins.
func (s *settingsServiceImpl) SetSetting(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, key string, value string) (*models.Setting, error) {
	log := s.logger.With(zap.String("workspaceID", workspaceID.String()), zap.String("key", key))

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("%w: setting key must not be empty", models.ErrInvalidInput)
	}
	if _, err := s.workspaceRepo.GetByID(ctx, workspaceID, ownerID); err != nil {
		return nil, err
	}

	setting := &models.Setting{
		WorkspaceID: workspaceID,
		Key:         key,
		Value:       value,
	}
	if err := s.settingsRepo.Upsert(ctx, setting); err != nil {
		log.Error("Failed to upsert setting", zap.Error(err))
		return nil, err
	}
	log.Info("Workspace setting saved")
	return setting, nil
}

func (s *settingsServiceImpl) GetSetting(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, key string) (*models.Setting, error) {
	if _, err := s.workspaceRepo.GetByID(ctx, workspaceID, ownerID); err != nil {
		return nil, err
	}
	return s.settingsRepo.GetByKey(ctx, workspaceID, key)
}

func (s *settingsServiceImpl) ListSettings(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID) ([]models.Setting, error) {
	if _, err := s.workspaceRepo.GetByID(ctx, workspaceID, ownerID); err != nil {
		return nil, err
	}
	return s.settingsRepo.ListByWorkspace(ctx, workspaceID)
}
