package models_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showcase-server/internal/models"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	doc := models.NewContentDocument()
	doc.HeaderTitle = "Front page"
	doc.HeaderBackgroundImage = "https://cdn.example.com/bg.png"
	doc.Items = []models.ContentItem{
		models.HeadlineItem{ID: uuid.New(), Headline: "Breaking"},
		models.LinkItem{ID: uuid.New(), URL: "https://example.com", Title: "Example"},
		models.TextItem{ID: uuid.New(), Text: "Lorem ipsum"},
		models.ImageItem{ID: uuid.New(), URL: "https://cdn.example.com/a.jpg", Caption: "A"},
		models.VideoItem{ID: uuid.New(), URL: "https://cdn.example.com/v.mp4", ThumbnailURL: "https://cdn.example.com/t.jpg"},
	}

	raw, err := models.EncodeContentDocument(doc)
	require.NoError(t, err)

	decoded, err := models.DecodeContentDocument(raw)
	require.NoError(t, err)

	assert.Equal(t, doc.HeaderTitle, decoded.HeaderTitle)
	assert.Equal(t, doc.HeaderBackgroundImage, decoded.HeaderBackgroundImage)
	require.Len(t, decoded.Items, len(doc.Items))
	for i := range doc.Items {
		assert.Equal(t, doc.Items[i], decoded.Items[i], "item %d must survive the round trip", i)
	}
	assert.Empty(t, decoded.DroppedTypes)
}

func TestDecodeDiscriminatorKeyCaseInsensitive(t *testing.T) {
	id := uuid.New()
	cases := map[string]string{
		"lowercase key": `{"contenttype":"image","identifier":"` + id.String() + `","url":"u","caption":"c"}`,
		"camel key": `{"contentType":"image","identifier":"` + id.String() + `","url":"u","caption":"c"}`,
		"upper key": `{"CONTENTTYPE":"image","identifier":"` + id.String() + `","url":"u","caption":"c"}`,
		"upper value": `{"contentType":"IMAGE","identifier":"` + id.String() + `","url":"u","caption":"c"}`,
		"key not first": `{"url":"u","caption":"c","identifier":"` + id.String() + `","contentType":"image"}`,
	}

	for name, rawItem := range cases {
		t.Run(name, func(t *testing.T) {
			raw := json.RawMessage(`{"headerTitle":"","headerBackgroundImage":"","items":[` + rawItem + `]}`)
			doc, err := models.DecodeContentDocument(raw)
			require.NoError(t, err)
			require.Len(t, doc.Items, 1)

			img, ok := doc.Items[0].(models.ImageItem)
			require.True(t, ok, "discriminator image must decode to ImageItem, got %T", doc.Items[0])
			assert.Equal(t, id, img.ID)
			assert.Equal(t, "u", img.URL)
			assert.Equal(t, "c", img.Caption)
		})
	}
}

func TestDecodeUnknownDiscriminatorIsDropped(t *testing.T) {
	raw := json.RawMessage(`{
		"headerTitle": "t",
		"headerBackgroundImage": "",
		"items": [
			{"contentType": "headline", "identifier": "` + uuid.NewString() + `", "headline": "kept"},
			{"contentType": "podcast", "identifier": "` + uuid.NewString() + `", "episode": "dropped"},
			{"contentType": "text", "identifier": "` + uuid.NewString() + `", "text": "also kept"}
		]
	}`)

	doc, err := models.DecodeContentDocument(raw)
	require.NoError(t, err)
	require.Len(t, doc.Items, 2)
	assert.IsType(t, models.HeadlineItem{}, doc.Items[0])
	assert.IsType(t, models.TextItem{}, doc.Items[1])
	assert.Equal(t, []string{"podcast"}, doc.DroppedTypes)
}

func TestDecodeMissingFieldsDefaultToEmpty(t *testing.T) {
	raw := json.RawMessage(`{
		"headerTitle": "t",
		"items": [
			{"contentType": "link", "identifier": "` + uuid.NewString() + `"},
			{"contentType": "video"}
		]
	}`)

	doc, err := models.DecodeContentDocument(raw)
	require.NoError(t, err)
	require.Len(t, doc.Items, 2)

	link := doc.Items[0].(models.LinkItem)
	assert.Equal(t, "", link.URL)
	assert.Equal(t, "", link.Title)

	// Missing identifier gets a fresh one instead of failing the document.
	video := doc.Items[1].(models.VideoItem)
	assert.NotEqual(t, uuid.Nil, video.ItemID())
	assert.Equal(t, "", video.URL)
	assert.Equal(t, "", video.ThumbnailURL)
}

func TestDecodeEmptyAndNullDocuments(t *testing.T) {
	for _, raw := range []json.RawMessage{nil, json.RawMessage(``), json.RawMessage(`null`)} {
		doc, err := models.DecodeContentDocument(raw)
		require.NoError(t, err)
		assert.Equal(t, "", doc.HeaderTitle)
		assert.Empty(t, doc.Items)
	}
}

func TestDecodeMalformedDocumentFails(t *testing.T) {
	_, err := models.DecodeContentDocument(json.RawMessage(`{"items": "not-an-array"`))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrMalformedDocument)
}

func TestEncodeDiscriminatorFidelity(t *testing.T) {
	raw, err := models.EncodeContentItem(models.ImageItem{ID: uuid.New(), URL: "u"})
	require.NoError(t, err)

	var wire map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &wire))
	assert.Equal(t, "image", wire["contentType"])

	item, err := models.DecodeContentItem(raw)
	require.NoError(t, err)
	assert.IsType(t, models.ImageItem{}, item)
}

func TestDecodeContentItemUnknownType(t *testing.T) {
	_, err := models.DecodeContentItem(json.RawMessage(`{"contentType":"banner","identifier":"x"}`))
	assert.ErrorIs(t, err, models.ErrUnknownContentType)
}

func TestEncodeItemOrderPreserved(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	doc := models.NewContentDocument()
	doc.Items = []models.ContentItem{
		models.TextItem{ID: ids[0], Text: "first"},
		models.TextItem{ID: ids[1], Text: "second"},
		models.TextItem{ID: ids[2], Text: "third"},
	}

	raw, err := models.EncodeContentDocument(doc)
	require.NoError(t, err)
	decoded, err := models.DecodeContentDocument(raw)
	require.NoError(t, err)

	require.Len(t, decoded.Items, 3)
	for i, id := range ids {
		assert.Equal(t, id, decoded.Items[i].ItemID())
	}
}
