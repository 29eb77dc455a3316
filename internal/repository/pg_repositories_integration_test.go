package repository_test // Используем _test пакет для изоляции

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"showcase-server/internal/models"
	"showcase-server/internal/repository"
	"showcase-server/migrations"
	"showcase-server/pkg/migration"
)

// RepositoryTestSuite гоняет PG-репозитории против реального PostgreSQL в
// контейнере, с примененными миграциями.
type RepositoryTestSuite struct {
	suite.Suite
	ctx         context.Context
	pgContainer *postgres.PostgresContainer
	pgPool      *pgxpool.Pool
	logger      *zap.Logger

	workspaceRepo repository.WorkspaceRepository
	ifaceRepo     repository.InterfaceRepository
	settingsRepo  repository.SettingsRepository
}

func (s *RepositoryTestSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error

	s.logger, err = zap.NewDevelopment()
	require.NoError(s.T(), err, "Failed to create logger for tests")

	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start postgres container")

	pgConnStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get postgres connection string")

	s.pgPool, err = pgxpool.New(s.ctx, pgConnStr)
	require.NoError(s.T(), err, "Failed to connect to test postgres")

	// Применяем миграции из встроенной FS, как это делает main.
	migrator := migration.NewMigrator(migration.Config{
		MigrationsPath: ".",
		MigrationsFS:   migrations.FS,
	}, s.pgPool)
	require.NoError(s.T(), migrator.Up(s.ctx), "Failed to run migrations")

	// Пул остаётся рабочим после закрытия мигратора и его *sql.DB.
	version, dirty, err := migrator.Version(s.ctx)
	require.NoError(s.T(), err)
	require.False(s.T(), dirty)
	require.NotZero(s.T(), version)
	require.NoError(s.T(), s.pgPool.Ping(s.ctx))

	s.workspaceRepo = repository.NewPgWorkspaceRepository(s.pgPool, s.logger)
	s.ifaceRepo = repository.NewPgInterfaceRepository(s.pgPool, s.logger)
	s.settingsRepo = repository.NewPgSettingsRepository(s.pgPool, s.logger)
}

func (s *RepositoryTestSuite) TearDownSuite() {
	if s.pgPool != nil {
		s.pgPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(s.ctx); err != nil {
			s.logger.Error("Failed to terminate postgres container", zap.Error(err))
		}
	}
}

// Перед каждым тестом чистим таблицы. CASCADE сносит интерфейсы и настройки.
func (s *RepositoryTestSuite) SetupTest() {
	_, err := s.pgPool.Exec(s.ctx, "TRUNCATE TABLE workspaces CASCADE")
	require.NoError(s.T(), err, "Failed to truncate workspaces table")
}

func TestRepositoryTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(RepositoryTestSuite))
}

// --- хелперы ---

func (s *RepositoryTestSuite) createWorkspace(ownerID uuid.UUID, name string) *models.Workspace {
	now := time.Now().UTC()
	ws := &models.Workspace{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(s.T(), s.workspaceRepo.Create(s.ctx, ws))
	return ws
}

func (s *RepositoryTestSuite) createInterface(workspaceID uuid.UUID, name string, kind models.InterfaceKind, createdAt time.Time) *models.Interface {
	iface := &models.Interface{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Name:        name,
		Kind:        kind,
		Config:      json.RawMessage(`{}`),
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	require.NoError(s.T(), s.ifaceRepo.Create(s.ctx, iface))
	return iface
}

// --- Сами Тестовые Функции ---

func (s *RepositoryTestSuite) TestWorkspaceCreateAndGet() {
	t := s.T()
	ownerID := uuid.New()

	ws := s.createWorkspace(ownerID, "my workspace")

	got, err := s.workspaceRepo.GetByID(s.ctx, ws.ID, ownerID)
	require.NoError(t, err)
	require.Equal(t, ws.ID, got.ID)
	require.Equal(t, ownerID, got.OwnerID)
	require.Equal(t, "my workspace", got.Name)

	// Чужой владелец не видит воркспейс.
	_, err = s.workspaceRepo.GetByID(s.ctx, ws.ID, uuid.New())
	require.ErrorIs(t, err, models.ErrNotFound)
}

func (s *RepositoryTestSuite) TestWorkspaceListByOwnerPagination() {
	t := s.T()
	ownerID := uuid.New()

	// Разное время создания, чтобы порядок был детерминированным.
	base := time.Now().UTC().Add(-time.Hour)
	var created []*models.Workspace
	for i := 0; i < 5; i++ {
		ts := base.Add(time.Duration(i) * time.Minute)
		ws := &models.Workspace{
			ID:        uuid.New(),
			OwnerID:   ownerID,
			Name:      "ws",
			CreatedAt: ts,
			UpdatedAt: ts,
		}
		require.NoError(t, s.workspaceRepo.Create(s.ctx, ws))
		created = append(created, ws)
	}

	// Первая страница: новейшие первыми.
	page1, cursor, err := s.workspaceRepo.ListByOwner(s.ctx, ownerID, "", 3)
	require.NoError(t, err)
	require.Len(t, page1, 3)
	require.NotEmpty(t, cursor)
	require.Equal(t, created[4].ID, page1[0].ID)
	require.Equal(t, created[2].ID, page1[2].ID)

	// Вторая страница добирает остаток, курсора больше нет.
	page2, cursor2, err := s.workspaceRepo.ListByOwner(s.ctx, ownerID, cursor, 3)
	require.NoError(t, err)
	require.Len(t, page2, 2)
	require.Empty(t, cursor2)
	require.Equal(t, created[1].ID, page2[0].ID)
	require.Equal(t, created[0].ID, page2[1].ID)

	// Невалидный курсор.
	_, _, err = s.workspaceRepo.ListByOwner(s.ctx, ownerID, "garbage-cursor", 3)
	require.ErrorIs(t, err, repository.ErrInvalidCursor)
}

func (s *RepositoryTestSuite) TestWorkspaceDeleteCascades() {
	t := s.T()
	ownerID := uuid.New()
	ws := s.createWorkspace(ownerID, "doomed")
	iface := s.createInterface(ws.ID, "front page", models.KindContent, time.Now().UTC())

	require.NoError(t, s.workspaceRepo.Delete(s.ctx, ws.ID, ownerID))

	_, err := s.workspaceRepo.GetByID(s.ctx, ws.ID, ownerID)
	require.ErrorIs(t, err, models.ErrNotFound)

	// Интерфейсы удаляются каскадом вместе с воркспейсом.
	_, err = s.ifaceRepo.GetByID(s.ctx, iface.ID, ws.ID)
	require.ErrorIs(t, err, models.ErrNotFound)

	// Повторное удаление.
	require.ErrorIs(t, s.workspaceRepo.Delete(s.ctx, ws.ID, ownerID), models.ErrNotFound)
}

func (s *RepositoryTestSuite) TestInterfaceCRUD() {
	t := s.T()
	ownerID := uuid.New()
	ws := s.createWorkspace(ownerID, "ws")
	iface := s.createInterface(ws.ID, "front page", models.KindContent, time.Now().UTC())

	got, err := s.ifaceRepo.GetByID(s.ctx, iface.ID, ws.ID)
	require.NoError(t, err)
	require.Equal(t, models.KindContent, got.Kind)
	require.JSONEq(t, `{}`, string(got.Config))

	// Интерфейс не виден через чужой воркспейс.
	otherWs := s.createWorkspace(uuid.New(), "other")
	_, err = s.ifaceRepo.GetByID(s.ctx, iface.ID, otherWs.ID)
	require.ErrorIs(t, err, models.ErrNotFound)

	require.NoError(t, s.ifaceRepo.UpdateName(s.ctx, iface.ID, ws.ID, "renamed"))
	got, err = s.ifaceRepo.GetByID(s.ctx, iface.ID, ws.ID)
	require.NoError(t, err)
	require.Equal(t, "renamed", got.Name)

	require.NoError(t, s.ifaceRepo.Delete(s.ctx, iface.ID, ws.ID))
	require.ErrorIs(t, s.ifaceRepo.Delete(s.ctx, iface.ID, ws.ID), models.ErrNotFound)
}

func (s *RepositoryTestSuite) TestInterfaceUpdateConfigLastWriteWins() {
	t := s.T()
	ownerID := uuid.New()
	ws := s.createWorkspace(ownerID, "ws")
	iface := s.createInterface(ws.ID, "front page", models.KindContent, time.Now().UTC())

	first := json.RawMessage(`{"headerTitle":"first","items":[]}`)
	second := json.RawMessage(`{"headerTitle":"second","items":[]}`)

	require.NoError(t, s.ifaceRepo.UpdateConfig(s.ctx, iface.ID, ws.ID, first))
	require.NoError(t, s.ifaceRepo.UpdateConfig(s.ctx, iface.ID, ws.ID, second))

	got, err := s.ifaceRepo.GetByID(s.ctx, iface.ID, ws.ID)
	require.NoError(t, err)
	require.JSONEq(t, string(second), string(got.Config))

	// Запись в несуществующий интерфейс.
	err = s.ifaceRepo.UpdateConfig(s.ctx, uuid.New(), ws.ID, first)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func (s *RepositoryTestSuite) TestInterfaceListByWorkspacePagination() {
	t := s.T()
	ownerID := uuid.New()
	ws := s.createWorkspace(ownerID, "ws")

	base := time.Now().UTC().Add(-time.Hour)
	var created []*models.Interface
	for i := 0; i < 4; i++ {
		iface := s.createInterface(ws.ID, "iface", models.KindContent, base.Add(time.Duration(i)*time.Minute))
		created = append(created, iface)
	}

	page1, cursor, err := s.ifaceRepo.ListByWorkspace(s.ctx, ws.ID, "", 3)
	require.NoError(t, err)
	require.Len(t, page1, 3)
	require.NotEmpty(t, cursor)
	require.Equal(t, created[3].ID, page1[0].ID)

	page2, cursor2, err := s.ifaceRepo.ListByWorkspace(s.ctx, ws.ID, cursor, 3)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	require.Empty(t, cursor2)
	require.Equal(t, created[0].ID, page2[0].ID)

	// Нулевой лимит заменяется дефолтным, без паники на срезе.
	pageDefault, _, err := s.ifaceRepo.ListByWorkspace(s.ctx, ws.ID, "", 0)
	require.NoError(t, err)
	require.Len(t, pageDefault, 4)
}

func (s *RepositoryTestSuite) TestSettingsUpsertAndList() {
	t := s.T()
	ownerID := uuid.New()
	ws := s.createWorkspace(ownerID, "ws")

	require.NoError(t, s.settingsRepo.Upsert(s.ctx, &models.Setting{
		WorkspaceID: ws.ID, Key: "theme", Value: "dark",
	}))
	require.NoError(t, s.settingsRepo.Upsert(s.ctx, &models.Setting{
		WorkspaceID: ws.ID, Key: "locale", Value: "ru",
	}))

	got, err := s.settingsRepo.GetByKey(s.ctx, ws.ID, "theme")
	require.NoError(t, err)
	require.Equal(t, "dark", got.Value)

	// Повторная запись того же ключа перезаписывает значение.
	require.NoError(t, s.settingsRepo.Upsert(s.ctx, &models.Setting{
		WorkspaceID: ws.ID, Key: "theme", Value: "light",
	}))
	got, err = s.settingsRepo.GetByKey(s.ctx, ws.ID, "theme")
	require.NoError(t, err)
	require.Equal(t, "light", got.Value)

	list, err := s.settingsRepo.ListByWorkspace(s.ctx, ws.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Сортировка по ключу.
	require.Equal(t, "locale", list[0].Key)
	require.Equal(t, "theme", list[1].Key)

	_, err = s.settingsRepo.GetByKey(s.ctx, ws.ID, "missing")
	require.ErrorIs(t, err, models.ErrNotFound)
}
