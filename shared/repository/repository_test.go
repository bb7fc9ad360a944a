package repository_test

import (
	"context"
	"errors"
	"regexp"
	"salon/infras/otel/mocks"
	"salon/infras/postgres"
	"salon/shared"
	"salon/shared/dto"
	"salon/shared/model"
	"salon/shared/repository"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	model.Metadata
}

var widgetColumns = []string{"id", "name", "created_at", "modified_at", "created_by", "modified_by"}

func newRepository(t *testing.T) (repository.Repository[widget], sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	conn := &postgres.Connection{Read: sqlxDB, Write: sqlxDB}

	return repository.NewRepository[widget]("widget", "widgets", "id", conn, mocks.NewOtel()), mock
}

func TestRepository_Insert(t *testing.T) {
	repo, mock := newRepository(t)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO widgets (id, name, created_at, modified_at, created_by, modified_by) VALUES ($1, $2, $3, $4, $5, $6)")).
		WithArgs("w-1", "Fade", now, now, "admin", "admin").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Insert(context.Background(), widget{
		ID:       "w-1",
		Name:     "Fade",
		Metadata: model.Metadata{CreatedAt: now, ModifiedAt: now, CreatedBy: "admin", ModifiedBy: "admin"},
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Get(t *testing.T) {
	repo, mock := newRepository(t)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT widgets.id, widgets.name, widgets.created_at, widgets.modified_at, widgets.created_by, widgets.modified_by FROM widgets WHERE (widgets.id = $1)")).
		ExpectQuery().
		WithArgs("w-1").
		WillReturnRows(sqlmock.NewRows(widgetColumns).AddRow("w-1", "Fade", now, now, "admin", "admin"))

	got, err := repo.Get(context.Background(), shared.FilterByID("w-1", "id", "widgets"))

	require.NoError(t, err)
	assert.Equal(t, "Fade", got.Name)
	assert.Equal(t, now, got.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetNoRowsReturnsZero(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare("SELECT (.+) FROM widgets").
		ExpectQuery().
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(widgetColumns))

	got, err := repo.Get(context.Background(), shared.FilterByID("missing", "id", "widgets"))

	require.NoError(t, err)
	assert.Empty(t, got.ID)
}

func TestRepository_GetAllPaginatedAndSorted(t *testing.T) {
	repo, mock := newRepository(t)
	now := time.Now().UTC()

	mock.ExpectPrepare(regexp.QuoteMeta("FROM widgets WHERE (widgets.name = $1) ORDER BY widgets.name ASC LIMIT $2 OFFSET $3")).
		ExpectQuery().
		WithArgs("Fade", 5, 5).
		WillReturnRows(sqlmock.NewRows(widgetColumns).
			AddRow("w-1", "Fade", now, now, "admin", "admin").
			AddRow("w-2", "Fade", now, now, "admin", "admin"))

	filter := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "name", Operator: dto.FilterOperatorEq, Value: "Fade", Table: "widgets"},
		},
	}

	got, err := repo.GetAll(context.Background(), dto.QueryParams{Page: 2, Limit: 5, SortBy: "name", SortDir: dto.SortDirAsc}, filter)

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetAllRejectsUnknownSort(t *testing.T) {
	repo, mock := newRepository(t)

	_, err := repo.GetAll(context.Background(), dto.QueryParams{SortBy: "name; DROP TABLE widgets", SortDir: dto.SortDirAsc}, dto.FilterGroup{})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CountAndExist(t *testing.T) {
	repo, mock := newRepository(t)
	filter := shared.FilterByID("w-1", "id", "widgets")

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT COUNT(widgets.id) FROM widgets")).
		ExpectQuery().
		WithArgs("w-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	count, err := repo.Count(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM widgets")).
		ExpectQuery().
		WithArgs("w-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exist, err := repo.Exist(context.Background(), filter)
	require.NoError(t, err)
	assert.True(t, exist)

	_, err = repo.Exist(context.Background(), dto.FilterGroup{})
	assert.Error(t, err, "exist requires a filter")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE widgets SET modified_by = $1, name = $2 WHERE (widgets.id = $3)")).
		WithArgs("admin", "Shave", "w-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), map[string]any{"name": "Shave", "modified_by": "admin"}, shared.FilterByID("w-1", "id", "widgets"))

	require.NoError(t, err)
	assert.ErrorContains(t, repo.Update(context.Background(), map[string]any{"name": "x"}, dto.FilterGroup{}), "required filter")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_WithTransaction(t *testing.T) {
	t.Run("commits on success", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM widgets").WithArgs("w-1").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.WithTransaction(context.Background(), func(sqltx *sqlx.Tx) error {
			_, err := sqltx.ExecContext(context.Background(), "DELETE FROM widgets WHERE id = $1", "w-1")

			return err
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		repo, mock := newRepository(t)
		boom := errors.New("boom")

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := repo.WithTransaction(context.Background(), func(_ *sqlx.Tx) error {
			return boom
		})

		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
