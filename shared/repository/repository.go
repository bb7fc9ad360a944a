// Package repository provides the generic CRUD table gateway embedded by the catalog, staff and
// schedule repositories. Columns come from the `db` tags of T, including embedded structs.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"salon/infras/otel"
	"salon/infras/postgres"
	"salon/shared/constant"
	"salon/shared/dto"
	"salon/shared/logger"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
)

var (
	errRequiredFilter = errors.New("required filter")
	errInvalidSort    = errors.New("invalid sort column")
)

type namedExecer interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
}

type Repository[T any] struct {
	db           *postgres.Connection
	otel         otel.Otel
	table        string
	entity       string
	primary      string
	columns      []string
	defaultOrder string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	return Repository[T]{
		db:      dbConnection,
		otel:    otl,
		table:   tableName,
		entity:  entityName,
		primary: primaryColumn,
		columns: dbColumns(reflect.TypeFor[T]()),
	}
}

// SetDefaultOrder sets the ORDER BY used by GetAll when the caller gives no sort column.
func (repo *Repository[T]) SetDefaultOrder(order string) {
	repo.defaultOrder = order
}

func (repo *Repository[T]) span(ctx context.Context, op string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName,
		constant.OtelRepositoryScopeName+"."+repo.entity+"."+op)
}

// fail logs and wraps a driver error with the operation and entity it came from.
func (repo *Repository[T]) fail(action string, err error) error {
	logger.ErrorWithStack(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) (err error) {
	ctx, scope := repo.span(ctx, "Insert")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return repo.insert(ctx, repo.db.Write, model)
}

func (repo *Repository[T]) insert(ctx context.Context, exec namedExecer, model T) error {
	placeholders := make([]string, len(repo.columns))
	for i, col := range repo.columns {
		placeholders[i] = ":" + col
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		repo.table, strings.Join(repo.columns, ", "), strings.Join(placeholders, ", "))

	if _, err := exec.NamedExecContext(ctx, query, model); err != nil {
		return repo.fail("insert data", err)
	}

	return nil
}

func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (model T, err error) {
	ctx, scope := repo.span(ctx, "Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	where, args := whereClause(filter)
	query := clause("SELECT", repo.selectList(columns), "FROM", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.query(ctx, query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &model, args) //nolint:wrapcheck
	})
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	if err != nil {
		return model, repo.fail("get data", err)
	}

	return model, nil
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) (models []T, err error) {
	ctx, scope := repo.span(ctx, "GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	order, err := repo.orderBy(params)
	if err != nil {
		return nil, err
	}

	where, args := whereClause(filter)

	var page string

	switch {
	case params.Limit > 0 && params.Page > 0:
		args["limit"], args["offset"] = params.Limit, (params.Page-1)*params.Limit
		page = "LIMIT :limit OFFSET :offset"
	case params.Limit > 0:
		args["limit"] = params.Limit
		page = "LIMIT :limit"
	}

	query := clause("SELECT", repo.selectList(columns), "FROM", repo.table, where, order, page)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.query(ctx, query, func(stmt *sqlx.NamedStmt) error {
		return stmt.SelectContext(ctx, &models, args) //nolint:wrapcheck
	})
	if err != nil {
		return nil, repo.fail("get all data", err)
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (count int, err error) {
	ctx, scope := repo.span(ctx, "Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	where, args := whereClause(filter)
	query := clause(fmt.Sprintf("SELECT COUNT(%s.%s)", repo.table, repo.primary), "FROM", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.query(ctx, query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &count, args) //nolint:wrapcheck
	})
	if err != nil {
		return 0, repo.fail("count data", err)
	}

	return count, nil
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (exist bool, err error) {
	ctx, scope := repo.span(ctx, "Exist")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	where, args := whereClause(filter)
	if where == "" {
		return false, errRequiredFilter
	}

	query := fmt.Sprintf("SELECT EXISTS(%s)", clause("SELECT 1 FROM", repo.table, where))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.query(ctx, query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &exist, args) //nolint:wrapcheck
	})
	if err != nil {
		return false, repo.fail("check exist data", err)
	}

	return exist, nil
}

// Update sets the given columns on every row matching filter. An empty filter is rejected.
func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) (err error) {
	ctx, scope := repo.span(ctx, "Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	where, args := whereClause(filter)
	if where == "" {
		return errRequiredFilter
	}

	assignments := make([]string, 0, len(mod))
	for _, col := range slices.Sorted(maps.Keys(mod)) {
		assignments = append(assignments, col+" = :"+col)
	}

	query := clause("UPDATE", repo.table, "SET", strings.Join(assignments, ", "), where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	maps.Copy(args, mod)

	if _, err = repo.db.Write.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail("update data", err)
	}

	return nil
}

// WithTransaction runs fn inside a write transaction, committing on nil and rolling back otherwise.
func (repo *Repository[T]) WithTransaction(ctx context.Context, fn func(sqltx *sqlx.Tx) error) (err error) {
	ctx, scope := repo.span(ctx, "WithTransaction")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sqltx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction (%s): %w", repo.entity, err)
	}

	if err = fn(sqltx); err != nil {
		if rbErr := sqltx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.ErrorWithStack(rbErr)
		}

		return err
	}

	if err = sqltx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction (%s): %w", repo.entity, err)
	}

	return nil
}

// query prepares a named statement on the read pool and hands it to run.
func (repo *Repository[T]) query(ctx context.Context, query string, run func(stmt *sqlx.NamedStmt) error) error {
	stmt, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	return run(stmt)
}

func (repo *Repository[T]) orderBy(params dto.QueryParams) (string, error) {
	if params.SortBy == "" {
		if repo.defaultOrder == "" {
			return "", nil
		}

		return "ORDER BY " + repo.defaultOrder, nil
	}

	if !slices.Contains(repo.columns, params.SortBy) {
		return "", fmt.Errorf("%w (%s): %s", errInvalidSort, repo.entity, params.SortBy)
	}

	dir := dto.SortDirDesc
	if params.SortDir == dto.SortDirAsc {
		dir = dto.SortDirAsc
	}

	return fmt.Sprintf("ORDER BY %s.%s %s", repo.table, params.SortBy, dir), nil
}

func (repo *Repository[T]) selectList(only []string) string {
	selected := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col) {
			continue
		}

		selected = append(selected, repo.table+"."+col)
	}

	return strings.Join(selected, ", ")
}

func whereClause(filter dto.FilterGroup) (string, map[string]any) {
	cond, args := filter.GetWhereClause()
	if cond == "" {
		return "", map[string]any{}
	}

	return "WHERE " + cond, args
}

// clause joins the non-empty parts of a statement with single spaces.
func clause(parts ...string) string {
	return strings.Join(slices.DeleteFunc(parts, func(p string) bool { return p == "" }), " ")
}

func dbColumns(typ reflect.Type) []string {
	var columns []string

	for i := range typ.NumField() {
		field := typ.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			columns = append(columns, dbColumns(field.Type)...)

			continue
		}

		if tag := field.Tag.Get("db"); tag != "" && tag != "-" {
			columns = append(columns, tag)
		}
	}

	return columns
}
