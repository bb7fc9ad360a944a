package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"salon/infras/otel"
	"salon/infras/postgres"
	"salon/internal/domains/staff/model"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	gRepo "salon/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Staff interface {
	Insert(ctx context.Context, model model.Staff) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Staff, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Staff, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	ListByService(ctx context.Context, serviceID string, activeOnly bool) ([]model.Staff, error)
	ServiceIDs(ctx context.Context, staffIDs ...string) (map[string][]string, error)
	ReplaceServices(ctx context.Context, staffID string, serviceIDs []string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Staff]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Staff {
	repo := gRepo.NewRepository[model.Staff](model.EntityName, model.TableName, model.FieldID, db, otel)
	repo.SetDefaultOrder(model.DefaultOrder)

	return &repositoryImpl{
		Repository: repo,
		db:         db,
		otel:       otel,
	}
}

const queryListByService = `SELECT s.id, s.user_id, s.display_name, s.specialty, s.bio, s.experience_years, s.photo_url, s.is_active,
	s.created_at, s.modified_at, s.created_by, s.modified_by
FROM staff s
JOIN staff_services ss ON ss.staff_id = s.id
WHERE ss.service_id = $1 AND ($2 = FALSE OR s.is_active)
ORDER BY s.display_name ASC`

// ListByService returns the staff assigned to a service, optionally only the active ones.
func (r *repositoryImpl) ListByService(ctx context.Context, serviceID string, activeOnly bool) ([]model.Staff, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".staff.ListByService")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryListByService)

	res := []model.Staff{}
	if err := r.db.Read.SelectContext(ctx, &res, queryListByService, serviceID, activeOnly); err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to list staff by service: %w", err)
	}

	return res, nil
}

const queryServiceIDs = `SELECT staff_id, service_id FROM staff_services WHERE staff_id = ANY($1) ORDER BY service_id`

// ServiceIDs returns the assigned service ids keyed by staff id.
func (r *repositoryImpl) ServiceIDs(ctx context.Context, staffIDs ...string) (map[string][]string, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".staff.ServiceIDs")
	defer scope.End()

	res := make(map[string][]string, len(staffIDs))
	if len(staffIDs) == 0 {
		return res, nil
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryServiceIDs)

	rows := []model.Assignment{}
	if err := r.db.Read.SelectContext(ctx, &rows, queryServiceIDs, pq.Array(staffIDs)); err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get staff services: %w", err)
	}

	for _, row := range rows {
		res[row.StaffID] = append(res[row.StaffID], row.ServiceID)
	}

	return res, nil
}

// ReplaceServices swaps the full assignment set of a staff member in one transaction.
func (r *repositoryImpl) ReplaceServices(ctx context.Context, staffID string, serviceIDs []string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".staff.ReplaceServices")
	defer scope.End()

	return r.WithTransaction(ctx, func(sqltx *sqlx.Tx) error { //nolint:wrapcheck
		if _, err := sqltx.ExecContext(ctx, `DELETE FROM staff_services WHERE staff_id = $1`, staffID); err != nil {
			return fmt.Errorf("failed to clear staff services: %w", err)
		}

		for _, serviceID := range serviceIDs {
			_, err := sqltx.ExecContext(ctx,
				`INSERT INTO staff_services (staff_id, service_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				staffID, serviceID)
			if err != nil {
				return fmt.Errorf("failed to assign service %s: %w", serviceID, err)
			}
		}

		return nil
	})
}
