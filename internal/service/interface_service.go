package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"showcase-server/internal/messaging"
	"showcase-server/internal/models"
	"showcase-server/internal/repository"
)

// emptyWidgetConfig is the starting configuration of non-content interfaces.
var emptyWidgetConfig = json.RawMessage(`{}`)

// InterfaceService manages interface rows. Every operation verifies the
// workspace belongs to the calling user before touching interface rows.
type InterfaceService interface {
	CreateInterface(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, name string, kind models.InterfaceKind) (*models.Interface, error)
	GetInterface(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, id uuid.UUID) (*models.Interface, error)
	ListInterfaces(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, cursor string, limit int) ([]models.Interface, string, error)
	RenameInterface(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, id uuid.UUID, name string) error
	DeleteInterface(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, id uuid.UUID) error
}

type interfaceServiceImpl struct {
	workspaceRepo repository.WorkspaceRepository
	ifaceRepo     repository.InterfaceRepository
	cache         repository.DocumentCache
	publisher     messaging.InterfaceEventPublisher
	logger        *zap.Logger
}

// NewInterfaceService creates a new instance of InterfaceService.
func NewInterfaceService(
	workspaceRepo repository.WorkspaceRepository,
	ifaceRepo repository.InterfaceRepository,
	cache repository.DocumentCache,
	publisher messaging.InterfaceEventPublisher,
	logger *zap.Logger,
) InterfaceService {
	return &interfaceServiceImpl{
		workspaceRepo: workspaceRepo,
		ifaceRepo:     ifaceRepo,
		cache:         cache,
		publisher:     publisher,
		logger:        logger.Named("InterfaceService"),
	}
}

// CreateInterface creates the interface row together with its starting
// configuration document: an empty content document for content interfaces,
// an empty object for widget kinds.
func (s *interfaceServiceImpl) CreateInterface(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, name string, kind models.InterfaceKind) (*models.Interface, error) {
	log := s.logger.With(zap.String("workspaceID", workspaceID.String()), zap.String("kind", string(kind)))

	if !models.ValidInterfaceKind(kind) {
		return nil, fmt.Errorf("%w: unknown interface kind %q", models.ErrInvalidInput, kind)
	}
	if err := s.checkWorkspace(ctx, workspaceID, ownerID); err != nil {
		return nil, err
	}

	config := emptyWidgetConfig
	if kind == models.KindContent {
		raw, err := models.EncodeContentDocument(models.NewContentDocument())
		if err != nil {
			log.Error("Failed to encode empty content document", zap.Error(err))
			return nil, fmt.Errorf("%w: failed to encode empty content document: %v", models.ErrInternalServer, err)
		}
		config = raw
	}

	now := time.Now().UTC()
	iface := &models.Interface{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Name:        name,
		Kind:        kind,
		Config:      config,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.ifaceRepo.Create(ctx, iface); err != nil {
		log.Error("Failed to create interface", zap.Error(err))
		return nil, err
	}

	s.publishUpdate(ctx, iface, messaging.UpdateTypeCreated, log)
	log.Info("Interface created", zap.String("interfaceID", iface.ID.String()))
	return iface, nil
}

func (s *interfaceServiceImpl) GetInterface(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, id uuid.UUID) (*models.Interface, error) {
	if err := s.checkWorkspace(ctx, workspaceID, ownerID); err != nil {
		return nil, err
	}
	return s.ifaceRepo.GetByID(ctx, id, workspaceID)
}

func (s *interfaceServiceImpl) ListInterfaces(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, cursor string, limit int) ([]models.Interface, string, error) {
	if err := s.checkWorkspace(ctx, workspaceID, ownerID); err != nil {
		return nil, "", err
	}
	return s.ifaceRepo.ListByWorkspace(ctx, workspaceID, cursor, clampLimit(limit))
}

func (s *interfaceServiceImpl) RenameInterface(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, id uuid.UUID, name string) error {
	log := s.logger.With(zap.String("interfaceID", id.String()), zap.String("workspaceID", workspaceID.String()))

	if err := s.checkWorkspace(ctx, workspaceID, ownerID); err != nil {
		return err
	}
	if err := s.ifaceRepo.UpdateName(ctx, id, workspaceID, name); err != nil {
		return err
	}

	iface, err := s.ifaceRepo.GetByID(ctx, id, workspaceID)
	if err == nil {
		s.publishUpdate(ctx, iface, messaging.UpdateTypeRenamed, log)
	}
	log.Info("Interface renamed")
	return nil
}

func (s *interfaceServiceImpl) DeleteInterface(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, id uuid.UUID) error {
	log := s.logger.With(zap.String("interfaceID", id.String()), zap.String("workspaceID", workspaceID.String()))

	if err := s.checkWorkspace(ctx, workspaceID, ownerID); err != nil {
		return err
	}

	iface, err := s.ifaceRepo.GetByID(ctx, id, workspaceID)
	if err != nil {
		return err
	}
	if err := s.ifaceRepo.Delete(ctx, id, workspaceID); err != nil {
		return err
	}

	if err := s.cache.Invalidate(ctx, workspaceID, id); err != nil {
		log.Warn("Failed to invalidate cached document", zap.Error(err))
	}
	s.publishUpdate(ctx, iface, messaging.UpdateTypeDeleted, log)
	log.Info("Interface deleted")
	return nil
}

// checkWorkspace verifies the workspace exists and belongs to the user.
func (s *interfaceServiceImpl) checkWorkspace(ctx context.Context, workspaceID uuid.UUID, ownerID uuid.UUID) error {
	if _, err := s.workspaceRepo.GetByID(ctx, workspaceID, ownerID); err != nil {
		return err
	}
	return nil
}

func (s *interfaceServiceImpl) publishUpdate(ctx context.Context, iface *models.Interface, updateType string, log *zap.Logger) {
	payload := messaging.InterfaceUpdatePayload{
		InterfaceID: iface.ID,
		WorkspaceID: iface.WorkspaceID,
		Kind:        iface.Kind,
		UpdateType:  updateType,
		OccurredAt:  time.Now().UTC(),
	}
	if err := s.publisher.PublishInterfaceUpdate(ctx, payload); err != nil {
		log.Warn("Failed to publish interface update event", zap.Error(err))
	}
}
