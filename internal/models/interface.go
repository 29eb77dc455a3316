package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// InterfaceKind identifies what an interface row presents.
type InterfaceKind string

const (
	KindContent InterfaceKind = "content"
	KindClock   InterfaceKind = "clock"
	KindWeather InterfaceKind = "weather"
	KindMap     InterfaceKind = "map"
	KindRSS     InterfaceKind = "rss"
)

// ValidInterfaceKind reports whether k is one of the known kinds.
func ValidInterfaceKind(k InterfaceKind) bool {
	switch k {
	case KindContent, KindClock, KindWeather, KindMap, KindRSS:
		return true
	}
	return false
}

// Interface represents one configurable unit of UI layout. Its entire
// configuration lives in the Config JSON column; for KindContent that JSON is
// a ContentDocument, for widget kinds it is free-form widget configuration.
type Interface struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	WorkspaceID uuid.UUID       `db:"workspace_id" json:"workspace_id"`
	Name        string          `db:"name" json:"name"`
	Kind        InterfaceKind   `db:"kind" json:"kind"`
	Config      json.RawMessage `db:"config" json:"config"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}
