package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	messagingMocks "showcase-server/internal/messaging/mocks"
	"showcase-server/internal/models"
	repositoryMocks "showcase-server/internal/repository/mocks"
	"showcase-server/internal/service"
)

type contentServiceFixture struct {
	workspaceRepo *repositoryMocks.WorkspaceRepository
	ifaceRepo     *repositoryMocks.InterfaceRepository
	cache         *repositoryMocks.DocumentCache
	publisher     *messagingMocks.InterfaceEventPublisher
	svc           service.ContentService

	ownerID     uuid.UUID
	workspaceID uuid.UUID
	interfaceID uuid.UUID
}

func newContentServiceFixture(t *testing.T) *contentServiceFixture {
	t.Helper()
	f := &contentServiceFixture{
		workspaceRepo: new(repositoryMocks.WorkspaceRepository),
		ifaceRepo:     new(repositoryMocks.InterfaceRepository),
		cache:         new(repositoryMocks.DocumentCache),
		publisher:     new(messagingMocks.InterfaceEventPublisher),
		ownerID:       uuid.New(),
		workspaceID:   uuid.New(),
		interfaceID:   uuid.New(),
	}
	f.svc = service.NewContentService(f.workspaceRepo, f.ifaceRepo, f.cache, f.publisher, zap.NewNop())
	return f
}

// expectLoad wires the workspace check and the interface fetch for a content
// interface holding the given document.
func (f *contentServiceFixture) expectLoad(t *testing.T, doc *models.ContentDocument) {
	t.Helper()
	raw, err := models.EncodeContentDocument(doc)
	require.NoError(t, err)

	f.workspaceRepo.On("GetByID", mock.Anything, f.workspaceID, f.ownerID).
		Return(&models.Workspace{ID: f.workspaceID, OwnerID: f.ownerID}, nil)
	f.ifaceRepo.On("GetByID", mock.Anything, f.interfaceID, f.workspaceID).
		Return(&models.Interface{
			ID:          f.interfaceID,
			WorkspaceID: f.workspaceID,
			Name:        "front page",
			Kind:        models.KindContent,
			Config:      raw,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}, nil)
}

// expectPersist wires the save path and captures the written document.
func (f *contentServiceFixture) expectPersist(t *testing.T, saved **models.ContentDocument) {
	t.Helper()
	f.ifaceRepo.On("UpdateConfig", mock.Anything, f.interfaceID, f.workspaceID, mock.Anything).
		Run(func(args mock.Arguments) {
			raw := args.Get(3).(json.RawMessage)
			doc, err := models.DecodeContentDocument(raw)
			require.NoError(t, err)
			*saved = doc
		}).
		Return(nil)
	f.cache.On("Invalidate", mock.Anything, f.workspaceID, f.interfaceID).Return(nil)
	f.publisher.On("PublishInterfaceUpdate", mock.Anything, mock.Anything).Return(nil)
}

func TestUpsertItemAppendsNewItem(t *testing.T) {
	ctx := context.Background()
	f := newContentServiceFixture(t)
	f.expectLoad(t, models.NewContentDocument())

	var persisted *models.ContentDocument
	f.expectPersist(t, &persisted)

	doc, saved, fieldErrs, err := f.svc.UpsertItem(ctx, f.ownerID, f.workspaceID, f.interfaceID,
		models.HeadlineItem{Headline: "Breaking"})
	require.NoError(t, err)
	assert.Empty(t, fieldErrs)

	require.Len(t, doc.Items, 1)
	headline, ok := saved.(models.HeadlineItem)
	require.True(t, ok)
	assert.NotEqual(t, uuid.Nil, headline.ID, "a fresh identifier must be minted")
	assert.Equal(t, "Breaking", headline.Headline)

	require.NotNil(t, persisted)
	require.Len(t, persisted.Items, 1)
	assert.Equal(t, headline.ID, persisted.Items[0].ItemID())
}

func TestUpsertItemUpdatesInPlace(t *testing.T) {
	ctx := context.Background()
	f := newContentServiceFixture(t)

	idA, idB, idC := uuid.New(), uuid.New(), uuid.New()
	doc := models.NewContentDocument()
	doc.Items = []models.ContentItem{
		models.TextItem{ID: idA, Text: "A"},
		models.TextItem{ID: idB, Text: "B"},
		models.TextItem{ID: idC, Text: "C"},
	}
	f.expectLoad(t, doc)

	var persisted *models.ContentDocument
	f.expectPersist(t, &persisted)

	updated, saved, fieldErrs, err := f.svc.UpsertItem(ctx, f.ownerID, f.workspaceID, f.interfaceID,
		models.TextItem{ID: idB, Text: "B edited"})
	require.NoError(t, err)
	assert.Empty(t, fieldErrs)

	require.Len(t, updated.Items, 3, "update must not change the item count")
	assert.Equal(t, idB, saved.ItemID(), "the identifier must be preserved")
	assert.Equal(t, idB, updated.Items[1].ItemID(), "the item must keep its position")
	assert.Equal(t, "B edited", updated.Items[1].(models.TextItem).Text)
	assert.Equal(t, idA, updated.Items[0].ItemID())
	assert.Equal(t, idC, updated.Items[2].ItemID())
}

func TestUpsertItemValidationIsNoOpOnStorage(t *testing.T) {
	ctx := context.Background()
	f := newContentServiceFixture(t)

	existing := models.HeadlineItem{ID: uuid.New(), Headline: "keep me"}
	doc := models.NewContentDocument()
	doc.Items = []models.ContentItem{existing}
	f.expectLoad(t, doc)

	current, saved, fieldErrs, err := f.svc.UpsertItem(ctx, f.ownerID, f.workspaceID, f.interfaceID,
		models.LinkItem{URL: "", Title: ""})
	require.NoError(t, err)
	assert.Nil(t, saved)

	require.Len(t, fieldErrs, 2)
	assert.Contains(t, fieldErrs, "url")
	assert.Contains(t, fieldErrs, "title")

	require.NotNil(t, current)
	require.Len(t, current.Items, 1)
	assert.Equal(t, existing, current.Items[0], "the document must be returned unmutated")

	f.ifaceRepo.AssertNotCalled(t, "UpdateConfig", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "PublishInterfaceUpdate", mock.Anything, mock.Anything)
}

func TestUpsertItemUnknownIDAppendsAsNew(t *testing.T) {
	ctx := context.Background()
	f := newContentServiceFixture(t)

	existing := models.TextItem{ID: uuid.New(), Text: "existing"}
	doc := models.NewContentDocument()
	doc.Items = []models.ContentItem{existing}
	f.expectLoad(t, doc)

	var persisted *models.ContentDocument
	f.expectPersist(t, &persisted)

	strayID := uuid.New()
	updated, saved, fieldErrs, err := f.svc.UpsertItem(ctx, f.ownerID, f.workspaceID, f.interfaceID,
		models.TextItem{ID: strayID, Text: "new"})
	require.NoError(t, err)
	assert.Empty(t, fieldErrs)

	require.Len(t, updated.Items, 2)
	assert.Equal(t, existing.ID, updated.Items[0].ItemID())
	assert.NotEqual(t, strayID, saved.ItemID(), "an unknown id appends under a fresh identifier")
	assert.Equal(t, saved.ItemID(), updated.Items[1].ItemID())
}

func TestDeleteItemRemovesExactlyOnePreservingOrder(t *testing.T) {
	ctx := context.Background()
	f := newContentServiceFixture(t)

	idA, idB, idC := uuid.New(), uuid.New(), uuid.New()
	doc := models.NewContentDocument()
	doc.Items = []models.ContentItem{
		models.HeadlineItem{ID: idA, Headline: "A"},
		models.HeadlineItem{ID: idB, Headline: "B"},
		models.HeadlineItem{ID: idC, Headline: "C"},
	}
	f.expectLoad(t, doc)

	var persisted *models.ContentDocument
	f.expectPersist(t, &persisted)

	updated, err := f.svc.DeleteItem(ctx, f.ownerID, f.workspaceID, f.interfaceID, idB)
	require.NoError(t, err)

	require.Len(t, updated.Items, 2)
	assert.Equal(t, idA, updated.Items[0].ItemID())
	assert.Equal(t, idC, updated.Items[1].ItemID())

	require.NotNil(t, persisted)
	require.Len(t, persisted.Items, 2)
}

func TestDeleteItemUnknownIDFailsNotFound(t *testing.T) {
	ctx := context.Background()
	f := newContentServiceFixture(t)

	doc := models.NewContentDocument()
	doc.Items = []models.ContentItem{models.HeadlineItem{ID: uuid.New(), Headline: "A"}}
	f.expectLoad(t, doc)

	_, err := f.svc.DeleteItem(ctx, f.ownerID, f.workspaceID, f.interfaceID, uuid.New())
	assert.ErrorIs(t, err, models.ErrItemNotFound)
	f.ifaceRepo.AssertNotCalled(t, "UpdateConfig", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestContentOperationsOnMissingInterface(t *testing.T) {
	ctx := context.Background()
	f := newContentServiceFixture(t)

	f.workspaceRepo.On("GetByID", mock.Anything, f.workspaceID, f.ownerID).
		Return(&models.Workspace{ID: f.workspaceID, OwnerID: f.ownerID}, nil)
	f.ifaceRepo.On("GetByID", mock.Anything, f.interfaceID, f.workspaceID).
		Return(nil, models.ErrNotFound)
	f.cache.On("Get", mock.Anything, f.workspaceID, f.interfaceID).
		Return(nil, assert.AnError)

	_, err := f.svc.GetInterfaceView(ctx, f.ownerID, f.workspaceID, f.interfaceID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = f.svc.SaveHeader(ctx, f.ownerID, f.workspaceID, f.interfaceID, "t", "bg")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, _, _, err = f.svc.UpsertItem(ctx, f.ownerID, f.workspaceID, f.interfaceID,
		models.HeadlineItem{Headline: "X"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSaveHeaderOverwritesBothFields(t *testing.T) {
	ctx := context.Background()
	f := newContentServiceFixture(t)

	doc := models.NewContentDocument()
	doc.HeaderTitle = "old"
	doc.Items = []models.ContentItem{models.TextItem{ID: uuid.New(), Text: "kept"}}
	f.expectLoad(t, doc)

	var persisted *models.ContentDocument
	f.expectPersist(t, &persisted)

	updated, err := f.svc.SaveHeader(ctx, f.ownerID, f.workspaceID, f.interfaceID, "  new title  ", "bg.png")
	require.NoError(t, err)

	assert.Equal(t, "  new title  ", updated.HeaderTitle, "header fields are saved verbatim, no trimming")
	assert.Equal(t, "bg.png", updated.HeaderBackgroundImage)
	require.Len(t, updated.Items, 1, "items are untouched by a header save")

	require.NotNil(t, persisted)
	assert.Equal(t, "  new title  ", persisted.HeaderTitle)
}

func TestUpsertItemOnWidgetInterface(t *testing.T) {
	ctx := context.Background()
	f := newContentServiceFixture(t)

	f.workspaceRepo.On("GetByID", mock.Anything, f.workspaceID, f.ownerID).
		Return(&models.Workspace{ID: f.workspaceID, OwnerID: f.ownerID}, nil)
	f.ifaceRepo.On("GetByID", mock.Anything, f.interfaceID, f.workspaceID).
		Return(&models.Interface{
			ID:          f.interfaceID,
			WorkspaceID: f.workspaceID,
			Kind:        models.KindClock,
			Config:      json.RawMessage(`{}`),
		}, nil)

	_, _, _, err := f.svc.UpsertItem(ctx, f.ownerID, f.workspaceID, f.interfaceID,
		models.HeadlineItem{Headline: "X"})
	assert.ErrorIs(t, err, models.ErrNotContentInterface)
}

func TestGetInterfaceViewCache(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the database", func(t *testing.T) {
		f := newContentServiceFixture(t)
		doc := models.NewContentDocument()
		doc.HeaderTitle = "cached"
		raw, err := models.EncodeContentDocument(doc)
		require.NoError(t, err)

		f.workspaceRepo.On("GetByID", mock.Anything, f.workspaceID, f.ownerID).
			Return(&models.Workspace{ID: f.workspaceID, OwnerID: f.ownerID}, nil)
		f.cache.On("Get", mock.Anything, f.workspaceID, f.interfaceID).Return(raw, nil)

		got, err := f.svc.GetInterfaceView(ctx, f.ownerID, f.workspaceID, f.interfaceID)
		require.NoError(t, err)
		assert.Equal(t, "cached", got.HeaderTitle)
		f.ifaceRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache miss falls back and repopulates", func(t *testing.T) {
		f := newContentServiceFixture(t)
		doc := models.NewContentDocument()
		doc.HeaderTitle = "from db"
		f.expectLoad(t, doc)

		f.cache.On("Get", mock.Anything, f.workspaceID, f.interfaceID).Return(nil, assert.AnError)
		f.cache.On("Set", mock.Anything, f.workspaceID, f.interfaceID, mock.Anything, mock.Anything).Return(nil)

		got, err := f.svc.GetInterfaceView(ctx, f.ownerID, f.workspaceID, f.interfaceID)
		require.NoError(t, err)
		assert.Equal(t, "from db", got.HeaderTitle)
		f.cache.AssertCalled(t, "Set", mock.Anything, f.workspaceID, f.interfaceID, mock.Anything, mock.Anything)
	})
}

// TestContentLifecycleScenario walks one document through append, a rejected
// edit and a delete.
func TestContentLifecycleScenario(t *testing.T) {
	ctx := context.Background()
	f := newContentServiceFixture(t)

	// Step 1: append a headline to an empty document.
	f.expectLoad(t, models.NewContentDocument())
	var persisted *models.ContentDocument
	f.expectPersist(t, &persisted)

	doc, saved, fieldErrs, err := f.svc.UpsertItem(ctx, f.ownerID, f.workspaceID, f.interfaceID,
		models.HeadlineItem{Headline: "Breaking"})
	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	require.Len(t, doc.Items, 1)
	itemID := saved.ItemID()

	// Step 2: an invalid edit of that item changes nothing.
	f2 := newContentServiceFixture(t)
	f2.expectLoad(t, persisted)

	current, _, fieldErrs, err := f2.svc.UpsertItem(ctx, f2.ownerID, f2.workspaceID, f2.interfaceID,
		models.HeadlineItem{ID: itemID, Headline: ""})
	require.NoError(t, err)
	require.Contains(t, fieldErrs, "headline")
	require.Len(t, current.Items, 1)
	assert.Equal(t, itemID, current.Items[0].ItemID())
	f2.ifaceRepo.AssertNotCalled(t, "UpdateConfig", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	// Step 3: delete the item, the document is empty again.
	f3 := newContentServiceFixture(t)
	f3.expectLoad(t, persisted)
	var afterDelete *models.ContentDocument
	f3.expectPersist(t, &afterDelete)

	final, err := f3.svc.DeleteItem(ctx, f3.ownerID, f3.workspaceID, f3.interfaceID, itemID)
	require.NoError(t, err)
	assert.Empty(t, final.Items)
	require.NotNil(t, afterDelete)
	assert.Empty(t, afterDelete.Items)
}
