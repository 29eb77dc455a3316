package models

import (
	"time"

	"github.com/google/uuid"
)

// Workspace is the tenant container that owns interfaces and settings.
type Workspace struct {
	ID        uuid.UUID `db:"id" json:"id"`
	OwnerID   uuid.UUID `db:"owner_id" json:"owner_id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Setting is one key-value pair of a workspace's settings store.
type Setting struct {
	WorkspaceID uuid.UUID `db:"workspace_id" json:"workspace_id"`
	Key         string    `db:"key" json:"key"`
	Value       string    `db:"value" json:"value"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
