package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	pgxV5 "github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"showcase-server/internal/models"
)

const (
	getSettingByKeyQuery = `
        SELECT workspace_id, key, value, created_at, updated_at
        FROM workspace_settings
        WHERE workspace_id = $1 AND key = $2
    `
	listSettingsQuery = `
        SELECT workspace_id, key, value, created_at, updated_at
        FROM workspace_settings
        WHERE workspace_id = $1
        ORDER BY key
    `
	upsertSettingQuery = `
        INSERT INTO workspace_settings (workspace_id, key, value)
        VALUES ($1, $2, $3)
        ON CONFLICT (workspace_id, key) DO UPDATE SET
            value = EXCLUDED.value,
            updated_at = NOW()
    `
)

// Compile-time check
var _ SettingsRepository = (*pgSettingsRepository)(nil)

type pgSettingsRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgSettingsRepository создает репозиторий настроек воркспейса.
func NewPgSettingsRepository(db DBTX, logger *zap.Logger) SettingsRepository {
	return &pgSettingsRepository{
		db:     db,
		logger: logger.Named("SettingsRepo"),
	}
}

// Upsert создает или обновляет настройку. Последняя запись побеждает.
func (r *pgSettingsRepository) Upsert(ctx context.Context, setting *models.Setting) error {
	log := r.logger.With(zap.String("workspaceID", setting.WorkspaceID.String()), zap.String("key", setting.Key))

	_, err := r.db.Exec(ctx, upsertSettingQuery, setting.WorkspaceID, setting.Key, setting.Value)
	if err != nil {
		log.Error("Error upserting workspace setting", zap.Error(err))
		return fmt.Errorf("failed to upsert setting %s: %w", setting.Key, err)
	}
	log.Info("Workspace setting upserted successfully")
	return nil
}

// GetByKey возвращает настройку по ее ключу.
func (r *pgSettingsRepository) GetByKey(ctx context.Context, workspaceID uuid.UUID, key string) (*models.Setting, error) {
	log := r.logger.With(zap.String("workspaceID", workspaceID.String()), zap.String("query_key", key))

	var setting models.Setting
	err := pgxscan.Get(ctx, r.db, &setting, getSettingByKeyQuery, workspaceID, key)
	if err != nil {
		if errors.Is(err, pgxV5.ErrNoRows) {
			log.Warn("Workspace setting not found by key")
			return nil, models.ErrNotFound
		}
		log.Error("Error getting workspace setting by key", zap.Error(err))
		return nil, fmt.Errorf("failed to get setting by key %s: %w", key, err)
	}
	return &setting, nil
}

// ListByWorkspace возвращает все настройки воркспейса, отсортированные по ключу.
func (r *pgSettingsRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]models.Setting, error) {
	log := r.logger.With(zap.String("workspaceID", workspaceID.String()))

	var settings []models.Setting
	err := pgxscan.Select(ctx, r.db, &settings, listSettingsQuery, workspaceID)
	if err != nil {
		if errors.Is(err, pgxV5.ErrNoRows) {
			return []models.Setting{}, nil
		}
		log.Error("Error listing workspace settings", zap.Error(err))
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return settings, nil
}
