package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"showcase-server/internal/models"
)

// Compile-time check
var _ WorkspaceRepository = (*pgWorkspaceRepository)(nil)

type pgWorkspaceRepository struct {
	db     DBTX
	logger *zap.Logger
}

func NewPgWorkspaceRepository(db DBTX, logger *zap.Logger) WorkspaceRepository {
	return &pgWorkspaceRepository{
		db:     db,
		logger: logger.Named("PgWorkspaceRepo"),
	}
}

func (r *pgWorkspaceRepository) Create(ctx context.Context, workspace *models.Workspace) error {
	query := `
        INSERT INTO workspaces (id, owner_id, name, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	logFields := []zap.Field{zap.String("workspaceID", workspace.ID.String()), zap.String("ownerID", workspace.OwnerID.String())}
	r.logger.Debug("Creating workspace", logFields...)

	_, err := r.db.Exec(ctx, query,
		workspace.ID,
		workspace.OwnerID,
		workspace.Name,
		workspace.CreatedAt,
		workspace.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create workspace", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to create workspace: %w", err)
	}
	r.logger.Info("Workspace created successfully", logFields...)
	return nil
}

func (r *pgWorkspaceRepository) GetByID(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*models.Workspace, error) {
	query := `
        SELECT id, owner_id, name, created_at, updated_at
        FROM workspaces
        WHERE id = $1 AND owner_id = $2
    `
	workspace := &models.Workspace{}
	logFields := []zap.Field{zap.String("workspaceID", id.String()), zap.String("ownerID", ownerID.String())}
	r.logger.Debug("Getting workspace by ID", logFields...)

	err := r.db.QueryRow(ctx, query, id, ownerID).Scan(
		&workspace.ID, &workspace.OwnerID, &workspace.Name, &workspace.CreatedAt, &workspace.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn("Workspace not found by ID for owner", logFields...)
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get workspace by ID", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to get workspace %s: %w", id, err)
	}
	return workspace, nil
}

// ListByOwner returns the owner's workspaces with cursor pagination, newest
// first.
func (r *pgWorkspaceRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, cursor string, limit int) ([]models.Workspace, string, error) {
	if limit <= 0 {
		limit = 10
	}
	// +1 to detect whether there is a next page
	fetchLimit := limit + 1

	cursorTime, cursorID, err := decodeCursor(cursor)
	if err != nil {
		r.logger.Warn("Failed to decode cursor", zap.String("ownerID", ownerID.String()), zap.String("cursor", cursor), zap.Error(err))
		return nil, "", ErrInvalidCursor
	}

	var queryBuilder strings.Builder
	args := []interface{}{ownerID}
	paramIndex := 2

	queryBuilder.WriteString(`
        SELECT id, owner_id, name, created_at, updated_at
        FROM workspaces
        WHERE owner_id = $1
    `)

	if !cursorTime.IsZero() {
		queryBuilder.WriteString(fmt.Sprintf(" AND (created_at, id) < ($%d, $%d)", paramIndex, paramIndex+1))
		args = append(args, cursorTime, cursorID)
		paramIndex += 2
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d", paramIndex))
	args = append(args, fetchLimit)

	logFields := []zap.Field{
		zap.String("ownerID", ownerID.String()),
		zap.Int("limit", limit),
		zap.String("cursor", cursor),
	}
	r.logger.Debug("Listing workspaces", logFields...)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.logger.Error("Failed to query workspaces", append(logFields, zap.Error(err))...)
		return nil, "", fmt.Errorf("failed to list workspaces: %w", err)
	}
	defer rows.Close()

	workspaces := make([]models.Workspace, 0, limit)
	for rows.Next() {
		var workspace models.Workspace
		err := rows.Scan(&workspace.ID, &workspace.OwnerID, &workspace.Name, &workspace.CreatedAt, &workspace.UpdatedAt)
		if err != nil {
			r.logger.Error("Failed to scan workspace row", append(logFields, zap.Error(err))...)
			return nil, "", fmt.Errorf("failed to scan workspace row: %w", err)
		}
		workspaces = append(workspaces, workspace)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating workspace rows", append(logFields, zap.Error(err))...)
		return nil, "", fmt.Errorf("error after reading workspace rows: %w", err)
	}

	var nextCursor string
	if len(workspaces) > limit {
		lastWorkspace := workspaces[limit-1]
		nextCursor = encodeCursor(lastWorkspace.CreatedAt, lastWorkspace.ID)
		workspaces = workspaces[:limit]
	}

	r.logger.Debug("Workspaces listed successfully", append(logFields, zap.Int("count", len(workspaces)))...)
	return workspaces, nextCursor, nil
}

func (r *pgWorkspaceRepository) Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	query := `DELETE FROM workspaces WHERE id = $1 AND owner_id = $2`
	logFields := []zap.Field{zap.String("workspaceID", id.String()), zap.String("ownerID", ownerID.String())}
	r.logger.Debug("Deleting workspace", logFields...)

	commandTag, err := r.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		r.logger.Error("Failed to delete workspace", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to delete workspace %s: %w", id, err)
	}
	if commandTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to delete non-existent or unauthorized workspace", logFields...)
		return models.ErrNotFound
	}

	r.logger.Info("Workspace deleted successfully", logFields...)
	return nil
}
