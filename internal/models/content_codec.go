package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ContentTypeKey is the discriminator property emitted with every item.
// The key name and the tag value set are fixed; decoding matches the key
// case-insensitively and regardless of property order.
const ContentTypeKey = "contentType"

// ErrUnknownContentType marks an item whose discriminator does not match any
// known variant. Document decoding skips such items instead of failing; the
// bad tag is recorded on ContentDocument.DroppedTypes.
var ErrUnknownContentType = errors.New("unknown content type")

type documentEnvelope struct {
	HeaderTitle           string            `json:"headerTitle"`
	HeaderBackgroundImage string            `json:"headerBackgroundImage"`
	Items                 []json.RawMessage `json:"items"`
}

type headlineItemJSON struct {
	ContentType string `json:"contentType"`
	ID          string `json:"identifier"`
	Headline    string `json:"headline"`
}

type linkItemJSON struct {
	ContentType string `json:"contentType"`
	ID          string `json:"identifier"`
	URL         string `json:"url"`
	Title       string `json:"title"`
}

type textItemJSON struct {
	ContentType string `json:"contentType"`
	ID          string `json:"identifier"`
	Text        string `json:"text"`
}

type imageItemJSON struct {
	ContentType string `json:"contentType"`
	ID          string `json:"identifier"`
	URL         string `json:"url"`
	Caption     string `json:"caption"`
}

type videoItemJSON struct {
	ContentType  string `json:"contentType"`
	ID           string `json:"identifier"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// DecodeContentDocument parses a stored configuration blob into a
// ContentDocument. A nil or JSON-null blob yields the empty document (a
// content interface starts life without a stored config). Items with an
// unknown discriminator are dropped and recorded on DroppedTypes; items with
// missing string fields decode with those fields empty. Only a blob that is
// not valid JSON at all fails.
func DecodeContentDocument(raw json.RawMessage) (*ContentDocument, error) {
	doc := NewContentDocument()
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return doc, nil
	}

	var env documentEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	doc.HeaderTitle = env.HeaderTitle
	doc.HeaderBackgroundImage = env.HeaderBackgroundImage
	for _, rawItem := range env.Items {
		item, err := decodeContentItem(rawItem)
		if err != nil {
			if errors.Is(err, ErrUnknownContentType) {
				doc.DroppedTypes = append(doc.DroppedTypes, itemDiscriminator(rawItem))
				continue
			}
			return nil, err
		}
		doc.Items = append(doc.Items, item)
	}
	return doc, nil
}

// EncodeContentDocument serializes the document back to its storage shape,
// emitting every item with its discriminator tag in encounter order.
func EncodeContentDocument(doc *ContentDocument) (json.RawMessage, error) {
	env := struct {
		HeaderTitle           string        `json:"headerTitle"`
		HeaderBackgroundImage string        `json:"headerBackgroundImage"`
		Items                 []interface{} `json:"items"`
	}{
		HeaderTitle:           doc.HeaderTitle,
		HeaderBackgroundImage: doc.HeaderBackgroundImage,
		Items:                 make([]interface{}, 0, len(doc.Items)),
	}

	for _, item := range doc.Items {
		wire, err := encodeContentItem(item)
		if err != nil {
			return nil, err
		}
		env.Items = append(env.Items, wire)
	}

	raw, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to encode content document: %w", err)
	}
	return raw, nil
}

// DecodeContentItem parses one item in wire form. The discriminator key is
// matched case-insensitively and the payload tolerates any property order.
// An unknown discriminator is ErrUnknownContentType.
func DecodeContentItem(raw json.RawMessage) (ContentItem, error) {
	return decodeContentItem(raw)
}

// EncodeContentItem serializes one item to wire form with its discriminator
// tag.
func EncodeContentItem(item ContentItem) (json.RawMessage, error) {
	wire, err := encodeContentItem(item)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal content item: %w", err)
	}
	return raw, nil
}

// itemDiscriminator extracts the raw discriminator value for dispatch and
// diagnostics. The key is matched case-insensitively.
func itemDiscriminator(raw json.RawMessage) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ""
	}
	for key, value := range fields {
		if strings.EqualFold(key, ContentTypeKey) {
			var tag string
			_ = json.Unmarshal(value, &tag)
			return tag
		}
	}
	return ""
}

func decodeContentItem(raw json.RawMessage) (ContentItem, error) {
	tag := ContentItemType(strings.ToLower(itemDiscriminator(raw)))

	switch tag {
	case ContentTypeHeadline:
		var w headlineItemJSON
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, fmt.Errorf("%w: headline item: %v", ErrMalformedDocument, err)
		}
		return HeadlineItem{ID: ensureItemID(w.ID), Headline: w.Headline}, nil
	case ContentTypeLink:
		var w linkItemJSON
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, fmt.Errorf("%w: link item: %v", ErrMalformedDocument, err)
		}
		return LinkItem{ID: ensureItemID(w.ID), URL: w.URL, Title: w.Title}, nil
	case ContentTypeText:
		var w textItemJSON
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, fmt.Errorf("%w: text item: %v", ErrMalformedDocument, err)
		}
		return TextItem{ID: ensureItemID(w.ID), Text: w.Text}, nil
	case ContentTypeImage:
		var w imageItemJSON
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, fmt.Errorf("%w: image item: %v", ErrMalformedDocument, err)
		}
		return ImageItem{ID: ensureItemID(w.ID), URL: w.URL, Caption: w.Caption}, nil
	case ContentTypeVideo:
		var w videoItemJSON
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, fmt.Errorf("%w: video item: %v", ErrMalformedDocument, err)
		}
		return VideoItem{ID: ensureItemID(w.ID), URL: w.URL, ThumbnailURL: w.ThumbnailURL}, nil
	default:
		return nil, ErrUnknownContentType
	}
}

func encodeContentItem(item ContentItem) (interface{}, error) {
	switch v := item.(type) {
	case HeadlineItem:
		return headlineItemJSON{ContentType: string(ContentTypeHeadline), ID: v.ID.String(), Headline: v.Headline}, nil
	case LinkItem:
		return linkItemJSON{ContentType: string(ContentTypeLink), ID: v.ID.String(), URL: v.URL, Title: v.Title}, nil
	case TextItem:
		return textItemJSON{ContentType: string(ContentTypeText), ID: v.ID.String(), Text: v.Text}, nil
	case ImageItem:
		return imageItemJSON{ContentType: string(ContentTypeImage), ID: v.ID.String(), URL: v.URL, Caption: v.Caption}, nil
	case VideoItem:
		return videoItemJSON{ContentType: string(ContentTypeVideo), ID: v.ID.String(), URL: v.URL, ThumbnailURL: v.ThumbnailURL}, nil
	default:
		return nil, fmt.Errorf("cannot encode content item of type %T", item)
	}
}

// ensureItemID keeps stored identifiers intact and mints a fresh one for
// legacy items persisted without a usable identifier.
func ensureItemID(raw string) uuid.UUID {
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.New()
	}
	return id
}
