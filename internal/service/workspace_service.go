package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"showcase-server/internal/models"
	"showcase-server/internal/repository"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// WorkspaceService manages the tenant containers that own interfaces.
type WorkspaceService interface {
	CreateWorkspace(ctx context.Context, ownerID uuid.UUID, name string) (*models.Workspace, error)
	GetWorkspace(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*models.Workspace, error)
	ListWorkspaces(ctx context.Context, ownerID uuid.UUID, cursor string, limit int) ([]models.Workspace, string, error)
	DeleteWorkspace(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error
}

type workspaceServiceImpl struct {
	repo   repository.WorkspaceRepository
	logger *zap.Logger
}

// NewWorkspaceService creates a new instance of WorkspaceService.
func NewWorkspaceService(repo repository.WorkspaceRepository, logger *zap.Logger) WorkspaceService {
	return &workspaceServiceImpl{
		repo:   repo,
		logger: logger.Named("WorkspaceService"),
	}
}

func (s *workspaceServiceImpl) CreateWorkspace(ctx context.Context, ownerID uuid.UUID, name string) (*models.Workspace, error) {
	log := s.logger.With(zap.String("ownerID", ownerID.String()))

	now := time.Now().UTC()
	workspace := &models.Workspace{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, workspace); err != nil {
		log.Error("Failed to create workspace", zap.Error(err))
		return nil, err
	}
	log.Info("Workspace created", zap.String("workspaceID", workspace.ID.String()))
	return workspace, nil
}

func (s *workspaceServiceImpl) GetWorkspace(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*models.Workspace, error) {
	return s.repo.GetByID(ctx, id, ownerID)
}

func (s *workspaceServiceImpl) ListWorkspaces(ctx context.Context, ownerID uuid.UUID, cursor string, limit int) ([]models.Workspace, string, error) {
	return s.repo.ListByOwner(ctx, ownerID, cursor, clampLimit(limit))
}

// DeleteWorkspace removes the workspace row. Interfaces and settings go with
// it through the foreign key cascade.
func (s *workspaceServiceImpl) DeleteWorkspace(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	log := s.logger.With(zap.String("workspaceID", id.String()), zap.String("ownerID", ownerID.String()))
	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	log.Info("Workspace deleted")
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
