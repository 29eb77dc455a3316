package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"showcase-server/internal/models"
)

// ErrInvalidCursor signals a malformed pagination cursor.
var ErrInvalidCursor = models.ErrInvalidCursor

// ErrCacheMiss signals that the document cache has no entry for the key.
var ErrCacheMiss = errors.New("cache miss")

// DBTX abstracts over *pgxpool.Pool and pgx.Tx so repositories can run inside
// or outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// WorkspaceRepository persists workspace rows. All lookups are scoped by the
// owning user so tenants cannot reach each other's rows.
type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *models.Workspace) error
	GetByID(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*models.Workspace, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, cursor string, limit int) ([]models.Workspace, string, error)
	Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error
}

// InterfaceRepository persists interface rows together with their JSON
// configuration document. Lookups are scoped by the owning workspace.
type InterfaceRepository interface {
	Create(ctx context.Context, iface *models.Interface) error
	GetByID(ctx context.Context, id uuid.UUID, workspaceID uuid.UUID) (*models.Interface, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, cursor string, limit int) ([]models.Interface, string, error)
	UpdateName(ctx context.Context, id uuid.UUID, workspaceID uuid.UUID, name string) error
	UpdateConfig(ctx context.Context, id uuid.UUID, workspaceID uuid.UUID, config json.RawMessage) error
	Delete(ctx context.Context, id uuid.UUID, workspaceID uuid.UUID) error
}

// SettingsRepository persists the per-workspace key-value settings store.
type SettingsRepository interface {
	Upsert(ctx context.Context, setting *models.Setting) error
	GetByKey(ctx context.Context, workspaceID uuid.UUID, key string) (*models.Setting, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]models.Setting, error)
}

// DocumentCache is a read cache of encoded configuration documents. Keys
// include the workspace so a hit never crosses tenant scope. Best-effort:
// callers treat any error as a miss.
type DocumentCache interface {
	Get(ctx context.Context, workspaceID uuid.UUID, interfaceID uuid.UUID) (json.RawMessage, error)
	Set(ctx context.Context, workspaceID uuid.UUID, interfaceID uuid.UUID, raw json.RawMessage, ttl time.Duration) error
	Invalidate(ctx context.Context, workspaceID uuid.UUID, interfaceID uuid.UUID) error
}
