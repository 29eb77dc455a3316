package models

import "github.com/google/uuid"

// ContentItemType is the discriminator tag of a content item variant.
type ContentItemType string

const (
	ContentTypeHeadline ContentItemType = "headline"
	ContentTypeLink     ContentItemType = "link"
	ContentTypeText     ContentItemType = "text"
	ContentTypeImage    ContentItemType = "image"
	ContentTypeVideo    ContentItemType = "video"
)

// ValidContentItemType reports whether t is one of the known tags.
func ValidContentItemType(t ContentItemType) bool {
	switch t {
	case ContentTypeHeadline, ContentTypeLink, ContentTypeText, ContentTypeImage, ContentTypeVideo:
		return true
	}
	return false
}

// ContentItem is one entry of a content document's ordered item list.
// The concrete type always agrees with Type().
type ContentItem interface {
	ItemID() uuid.UUID
	Type() ContentItemType
}

// HeadlineItem renders a single headline line.
type HeadlineItem struct {
	ID       uuid.UUID
	Headline string
}

func (i HeadlineItem) ItemID() uuid.UUID     { return i.ID }
func (i HeadlineItem) Type() ContentItemType { return ContentTypeHeadline }

// LinkItem renders a titled hyperlink.
type LinkItem struct {
	ID    uuid.UUID
	URL   string
	Title string
}

func (i LinkItem) ItemID() uuid.UUID     { return i.ID }
func (i LinkItem) Type() ContentItemType { return ContentTypeLink }

// TextItem renders a free-form text block.
type TextItem struct {
	ID   uuid.UUID
	Text string
}

func (i TextItem) ItemID() uuid.UUID     { return i.ID }
func (i TextItem) Type() ContentItemType { return ContentTypeText }

// ImageItem renders an image with an optional caption.
type ImageItem struct {
	ID      uuid.UUID
	URL     string
	Caption string
}

func (i ImageItem) ItemID() uuid.UUID     { return i.ID }
func (i ImageItem) Type() ContentItemType { return ContentTypeImage }

// VideoItem renders a video with an optional thumbnail.
type VideoItem struct {
	ID           uuid.UUID
	URL          string
	ThumbnailURL string
}

func (i VideoItem) ItemID() uuid.UUID     { return i.ID }
func (i VideoItem) Type() ContentItemType { return ContentTypeVideo }

// ContentDocument is the configuration document of a content interface.
// Items keeps insertion order; that order is the display order and survives
// every read-modify-write cycle.
type ContentDocument struct {
	HeaderTitle           string
	HeaderBackgroundImage string
	Items                 []ContentItem

	// DroppedTypes collects discriminator tags that were present in storage
	// but are not known to this build. Populated by DecodeContentDocument,
	// never encoded back.
	DroppedTypes []string `json:"-"`
}

// NewContentDocument returns the empty document a freshly created content
// interface starts with.
func NewContentDocument() *ContentDocument {
	return &ContentDocument{Items: []ContentItem{}}
}

// FindItem returns the index of the item with the given identifier, or -1.
func (d *ContentDocument) FindItem(id uuid.UUID) int {
	for i, item := range d.Items {
		if item.ItemID() == id {
			return i
		}
	}
	return -1
}

// WithItemID returns a copy of the item carrying the given identifier.
func WithItemID(item ContentItem, id uuid.UUID) ContentItem {
	switch v := item.(type) {
	case HeadlineItem:
		v.ID = id
		return v
	case LinkItem:
		v.ID = id
		return v
	case TextItem:
		v.ID = id
		return v
	case ImageItem:
		v.ID = id
		return v
	case VideoItem:
		v.ID = id
		return v
	}
	return item
}

// FieldErrors maps form field names to validation messages.
type FieldErrors map[string]string
