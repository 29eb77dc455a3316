package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"showcase-server/internal/messaging"
	"showcase-server/internal/models"
	"showcase-server/internal/repository"
)

const documentCacheTTL = 5 * time.Minute

// ContentService manages the content document of a content interface: its
// header and its polymorphic item list.
type ContentService interface {
	GetInterfaceView(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, interfaceID uuid.UUID) (*models.ContentDocument, error)
	SaveHeader(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, interfaceID uuid.UUID, title string, backgroundImage string) (*models.ContentDocument, error)
	UpsertItem(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, interfaceID uuid.UUID, item models.ContentItem) (*models.ContentDocument, models.ContentItem, models.FieldErrors, error)
	DeleteItem(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, interfaceID uuid.UUID, itemID uuid.UUID) (*models.ContentDocument, error)
}

type contentServiceImpl struct {
	workspaceRepo repository.WorkspaceRepository
	ifaceRepo     repository.InterfaceRepository
	cache         repository.DocumentCache
	publisher     messaging.InterfaceEventPublisher
	logger        *zap.Logger
}

// NewContentService creates a new instance of ContentService.
func NewContentService(
	workspaceRepo repository.WorkspaceRepository,
	ifaceRepo repository.InterfaceRepository,
	cache repository.DocumentCache,
	publisher messaging.InterfaceEventPublisher,
	logger *zap.Logger,
) ContentService {
	return &contentServiceImpl{
		workspaceRepo: workspaceRepo,
		ifaceRepo:     ifaceRepo,
		cache:         cache,
		publisher:     publisher,
		logger:        logger.Named("ContentService"),
	}
}

// GetInterfaceView returns the decoded content document of the interface.
// Reads go through the cache; a miss falls back to the database and
// repopulates the cache.
func (s *contentServiceImpl) GetInterfaceView(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, interfaceID uuid.UUID) (*models.ContentDocument, error) {
	log := s.logger.With(zap.String("interfaceID", interfaceID.String()), zap.String("workspaceID", workspaceID.String()))

	// Ownership is checked before the cache so a hit never crosses tenants.
	if _, err := s.workspaceRepo.GetByID(ctx, workspaceID, ownerID); err != nil {
		return nil, err
	}

	if raw, err := s.cache.Get(ctx, workspaceID, interfaceID); err == nil {
		doc, decErr := models.DecodeContentDocument(raw)
		if decErr == nil {
			log.Debug("Content document served from cache")
			return doc, nil
		}
		log.Warn("Cached document failed to decode, falling back to database", zap.Error(decErr))
	}

	_, doc, raw, err := s.loadContentDocument(ctx, ownerID, workspaceID, interfaceID, log)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, workspaceID, interfaceID, raw, documentCacheTTL); err != nil {
		log.Warn("Failed to cache content document", zap.Error(err))
	}
	return doc, nil
}

// SaveHeader replaces both header fields of the document. The last save wins.
func (s *contentServiceImpl) SaveHeader(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, interfaceID uuid.UUID, title string, backgroundImage string) (*models.ContentDocument, error) {
	log := s.logger.With(zap.String("interfaceID", interfaceID.String()), zap.String("workspaceID", workspaceID.String()))

	iface, doc, _, err := s.loadContentDocument(ctx, ownerID, workspaceID, interfaceID, log)
	if err != nil {
		return nil, err
	}

	doc.HeaderTitle = title
	doc.HeaderBackgroundImage = backgroundImage

	if err := s.persistDocument(ctx, iface, doc, messaging.UpdateTypeHeaderSaved, log); err != nil {
		return nil, err
	}
	log.Info("Content header saved")
	return doc, nil
}

// UpsertItem validates the item against its per-type required fields and
// then either updates the stored item carrying the same id in place, or
// appends to the end of the list with a freshly minted identifier. An id the
// document does not contain is not an error: the item is appended as new.
// When validation fails the returned field errors are non-empty and the
// stored document is untouched.
func (s *contentServiceImpl) UpsertItem(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, interfaceID uuid.UUID, item models.ContentItem) (*models.ContentDocument, models.ContentItem, models.FieldErrors, error) {
	log := s.logger.With(
		zap.String("interfaceID", interfaceID.String()),
		zap.String("workspaceID", workspaceID.String()),
		zap.String("contentType", string(item.Type())),
		zap.String("itemID", item.ItemID().String()),
	)

	iface, doc, _, err := s.loadContentDocument(ctx, ownerID, workspaceID, interfaceID, log)
	if err != nil {
		return nil, nil, nil, err
	}

	if fieldErrs := validateContentItem(item); len(fieldErrs) > 0 {
		itemValidationFailures.WithLabelValues(string(item.Type())).Inc()
		log.Info("Content item rejected by validation", zap.Any("fieldErrors", fieldErrs))
		return doc, nil, fieldErrs, nil
	}

	idx := -1
	if item.ItemID() != uuid.Nil {
		idx = doc.FindItem(item.ItemID())
	}
	// Update in place only when the id hits an item of the same type. A
	// missing id, an unknown id or a type mismatch all append as new under a
	// fresh identifier, keeping identifiers unique within the document.
	if idx >= 0 && doc.Items[idx].Type() == item.Type() {
		doc.Items[idx] = item
		log.Debug("Content item updated in place", zap.Int("position", idx))
	} else {
		item = models.WithItemID(item, uuid.New())
		doc.Items = append(doc.Items, item)
		log.Debug("Content item appended", zap.Int("position", len(doc.Items)-1))
	}

	if err := s.persistDocument(ctx, iface, doc, messaging.UpdateTypeItemUpsert, log); err != nil {
		return nil, nil, nil, err
	}

	itemsUpserted.WithLabelValues(string(item.Type())).Inc()
	log.Info("Content item upserted")
	return doc, item, nil, nil
}

// DeleteItem removes the item with exactly the given id. Unlike upsert,
// delete is strict: an id the document does not contain is ErrItemNotFound.
func (s *contentServiceImpl) DeleteItem(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, interfaceID uuid.UUID, itemID uuid.UUID) (*models.ContentDocument, error) {
	log := s.logger.With(
		zap.String("interfaceID", interfaceID.String()),
		zap.String("workspaceID", workspaceID.String()),
		zap.String("itemID", itemID.String()),
	)

	iface, doc, _, err := s.loadContentDocument(ctx, ownerID, workspaceID, interfaceID, log)
	if err != nil {
		return nil, err
	}

	idx := doc.FindItem(itemID)
	if idx < 0 {
		log.Warn("Content item not found for deletion")
		return nil, models.ErrItemNotFound
	}
	doc.Items = append(doc.Items[:idx], doc.Items[idx+1:]...)

	if err := s.persistDocument(ctx, iface, doc, messaging.UpdateTypeItemDeleted, log); err != nil {
		return nil, err
	}

	itemsDeleted.Inc()
	log.Info("Content item deleted")
	return doc, nil
}

// loadContentDocument fetches the interface row scoped to the workspace,
// checks it actually holds a content document and decodes it. Items with an
// unknown content type are dropped with a warning rather than failing the
// whole document.
func (s *contentServiceImpl) loadContentDocument(ctx context.Context, ownerID uuid.UUID, workspaceID uuid.UUID, interfaceID uuid.UUID, log *zap.Logger) (*models.Interface, *models.ContentDocument, []byte, error) {
	if _, err := s.workspaceRepo.GetByID(ctx, workspaceID, ownerID); err != nil {
		return nil, nil, nil, err
	}
	iface, err := s.ifaceRepo.GetByID(ctx, interfaceID, workspaceID)
	if err != nil {
		return nil, nil, nil, err
	}
	if iface.Kind != models.KindContent {
		log.Warn("Interface is not a content interface", zap.String("kind", string(iface.Kind)))
		return nil, nil, nil, models.ErrNotContentInterface
	}

	doc, err := models.DecodeContentDocument(iface.Config)
	if err != nil {
		log.Error("Stored content document failed to decode", zap.Error(err))
		return nil, nil, nil, fmt.Errorf("%w: %v", models.ErrMalformedDocument, err)
	}
	if len(doc.DroppedTypes) > 0 {
		documentItemsDropped.Add(float64(len(doc.DroppedTypes)))
		log.Warn("Dropped stored items with unknown content type",
			zap.Strings("contentTypes", doc.DroppedTypes))
	}
	return iface, doc, iface.Config, nil
}

// persistDocument encodes the document, writes it back wholesale and then
// invalidates the cache and notifies subscribers. Cache and event failures
// are logged, not returned: the write already succeeded.
func (s *contentServiceImpl) persistDocument(ctx context.Context, iface *models.Interface, doc *models.ContentDocument, updateType string, log *zap.Logger) error {
	raw, err := models.EncodeContentDocument(doc)
	if err != nil {
		log.Error("Failed to encode content document", zap.Error(err))
		return fmt.Errorf("%w: failed to encode content document: %v", models.ErrInternalServer, err)
	}

	if err := s.ifaceRepo.UpdateConfig(ctx, iface.ID, iface.WorkspaceID, raw); err != nil {
		return err
	}

	if err := s.cache.Invalidate(ctx, iface.WorkspaceID, iface.ID); err != nil {
		log.Warn("Failed to invalidate cached document", zap.Error(err))
	}

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
	return nil
}

// validateContentItem checks the per-type required fields. It returns a map
// of field name to message, empty when the item is valid.
func validateContentItem(item models.ContentItem) models.FieldErrors {
	errs := models.FieldErrors{}
	switch v := item.(type) {
	case models.HeadlineItem:
		if strings.TrimSpace(v.Headline) == "" {
			errs["headline"] = "headline is required"
		}
	case models.LinkItem:
		if strings.TrimSpace(v.URL) == "" {
			errs["url"] = "url is required"
		}
		if strings.TrimSpace(v.Title) == "" {
			errs["title"] = "title is required"
		}
	case models.TextItem:
		if strings.TrimSpace(v.Text) == "" {
			errs["text"] = "text is required"
		}
	case models.ImageItem, models.VideoItem:
		// All fields optional, empty defaults are valid.
	}
	return errs
}
