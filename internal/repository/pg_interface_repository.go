package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"showcase-server/internal/models"
)

// Compile-time check
var _ InterfaceRepository = (*pgInterfaceRepository)(nil)

type pgInterfaceRepository struct {
	db     DBTX
	logger *zap.Logger
}

func NewPgInterfaceRepository(db DBTX, logger *zap.Logger) InterfaceRepository {
	return &pgInterfaceRepository{
		db:     db,
		logger: logger.Named("PgInterfaceRepo"),
	}
}

func (r *pgInterfaceRepository) Create(ctx context.Context, iface *models.Interface) error {
	query := `
        INSERT INTO interfaces (id, workspace_id, name, kind, config, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	logFields := []zap.Field{
		zap.String("interfaceID", iface.ID.String()),
		zap.String("workspaceID", iface.WorkspaceID.String()),
		zap.String("kind", string(iface.Kind)),
	}
	r.logger.Debug("Creating interface", logFields...)

	_, err := r.db.Exec(ctx, query,
		iface.ID,
		iface.WorkspaceID,
		iface.Name,
		iface.Kind,
		iface.Config,
		iface.CreatedAt,
		iface.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create interface", append(logFields, zap.Error(err))...)
		return fmt.Errorf("ошибка создания интерфейса: %w", err)
	}

	r.logger.Info("Interface created successfully", logFields...)
	return nil
}

func (r *pgInterfaceRepository) GetByID(ctx context.Context, id uuid.UUID, workspaceID uuid.UUID) (*models.Interface, error) {
	query := `
        SELECT id, workspace_id, name, kind, config, created_at, updated_at
        FROM interfaces
        WHERE id = $1 AND workspace_id = $2
    `
	logFields := []zap.Field{zap.String("interfaceID", id.String()), zap.String("workspaceID", workspaceID.String())}
	r.logger.Debug("Getting interface by ID", logFields...)

	var iface models.Interface
	err := r.db.QueryRow(ctx, query, id, workspaceID).Scan(
		&iface.ID,
		&iface.WorkspaceID,
		&iface.Name,
		&iface.Kind,
		&iface.Config,
		&iface.CreatedAt,
		&iface.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn("Interface not found", logFields...)
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get interface by ID", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("ошибка получения интерфейса: %w", err)
	}

	return &iface, nil
}

func (r *pgInterfaceRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, cursor string, limit int) ([]models.Interface, string, error) {
	if limit <= 0 {
		limit = 10
	}
	logFields := []zap.Field{zap.String("workspaceID", workspaceID.String()), zap.Int("limit", limit), zap.String("cursor", cursor)}
	r.logger.Debug("Listing interfaces for workspace", logFields...)

	cursorTime, cursorID, err := decodeCursor(cursor)
	if err != nil {
		r.logger.Warn("Invalid cursor provided", append(logFields, zap.Error(err))...)
		return nil, "", ErrInvalidCursor
	}

	// Fetch one extra row to detect whether another page exists.
	fetchLimit := limit + 1

	queryBuilder := strings.Builder{}
	queryBuilder.WriteString(`
        SELECT id, workspace_id, name, kind, config, created_at, updated_at
        FROM interfaces
        WHERE workspace_id = $1
    `)
	args := []interface{}{workspaceID}
	argIdx := 2

	if cursor != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (created_at, id) < ($%d, $%d)", argIdx, argIdx+1))
		args = append(args, cursorTime, cursorID)
		argIdx += 2
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d", argIdx))
	args = append(args, fetchLimit)

	var interfaces []models.Interface
	if err := pgxscan.Select(ctx, r.db, &interfaces, queryBuilder.String(), args...); err != nil {
		r.logger.Error("Failed to list interfaces", append(logFields, zap.Error(err))...)
		return nil, "", fmt.Errorf("ошибка получения списка интерфейсов: %w", err)
	}

	nextCursor := ""
	if len(interfaces) == fetchLimit {
		interfaces = interfaces[:limit]
		last := interfaces[limit-1]
		nextCursor = encodeCursor(last.CreatedAt, last.ID)
	}

	r.logger.Debug("Interfaces listed", append(logFields, zap.Int("count", len(interfaces)))...)
	return interfaces, nextCursor, nil
}

func (r *pgInterfaceRepository) UpdateName(ctx context.Context, id uuid.UUID, workspaceID uuid.UUID, name string) error {
	query := `
        UPDATE interfaces
        SET name = $1, updated_at = $2
        WHERE id = $3 AND workspace_id = $4
    `
	logFields := []zap.Field{zap.String("interfaceID", id.String()), zap.String("workspaceID", workspaceID.String())}
	r.logger.Debug("Updating interface name", logFields...)

	tag, err := r.db.Exec(ctx, query, name, time.Now(), id, workspaceID)
	if err != nil {
		r.logger.Error("Failed to update interface name", append(logFields, zap.Error(err))...)
		return fmt.Errorf("ошибка обновления имени интерфейса: %w", err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn("Interface not found for name update", logFields...)
		return models.ErrNotFound
	}

	r.logger.Info("Interface name updated successfully", logFields...)
	return nil
}

// UpdateConfig replaces the stored configuration document wholesale. The
// caller that saved last wins.
func (r *pgInterfaceRepository) UpdateConfig(ctx context.Context, id uuid.UUID, workspaceID uuid.UUID, config json.RawMessage) error {
	query := `
        UPDATE interfaces
        SET config = $1, updated_at = $2
        WHERE id = $3 AND workspace_id = $4
    `
	logFields := []zap.Field{zap.String("interfaceID", id.String()), zap.String("workspaceID", workspaceID.String())}
	r.logger.Debug("Updating interface config", logFields...)

	tag, err := r.db.Exec(ctx, query, config, time.Now(), id, workspaceID)
	if err != nil {
		r.logger.Error("Failed to update interface config", append(logFields, zap.Error(err))...)
		return fmt.Errorf("ошибка обновления конфигурации интерфейса: %w", err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn("Interface not found for config update", logFields...)
		return models.ErrNotFound
	}

	r.logger.Info("Interface config updated successfully", logFields...)
	return nil
}

func (r *pgInterfaceRepository) Delete(ctx context.Context, id uuid.UUID, workspaceID uuid.UUID) error {
	query := `DELETE FROM interfaces WHERE id = $1 AND workspace_id = $2`
	logFields := []zap.Field{zap.String("interfaceID", id.String()), zap.String("workspaceID", workspaceID.String())}
	r.logger.Debug("Deleting interface", logFields...)

	tag, err := r.db.Exec(ctx, query, id, workspaceID)
	if err != nil {
		r.logger.Error("Failed to delete interface", append(logFields, zap.Error(err))...)
		return fmt.Errorf("ошибка удаления интерфейса: %w", err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn("Interface not found for deletion", logFields...)
		return models.ErrNotFound
	}

	r.logger.Info("Interface deleted successfully", logFields...)
	return nil
}
