package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"salon/infras/otel"
	"salon/infras/postgres"
	"salon/internal/domains/schedule/model"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	gRepo "salon/shared/repository"
)

type WorkingHours interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.WorkingHours, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.WorkingHours, error)
	Upsert(ctx context.Context, hours model.WorkingHours) error
}

type repositoryImpl struct {
	gRepo.Repository[model.WorkingHours]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) WorkingHours {
	repo := gRepo.NewRepository[model.WorkingHours](model.EntityName, model.TableName, model.FieldID, db, otel)
	repo.SetDefaultOrder(model.DefaultOrder)

	return &repositoryImpl{
		Repository: repo,
		db:         db,
		otel:       otel,
	}
}

const queryUpsert = `INSERT INTO working_hours (id, staff_id, day_of_week, start_time, end_time, is_active, created_at, modified_at, created_by, modified_by)
VALUES (:id, :staff_id, :day_of_week, :start_time, :end_time, :is_active, :created_at, :modified_at, :created_by, :modified_by)
ON CONFLICT (staff_id, day_of_week) DO UPDATE SET
	start_time = EXCLUDED.start_time,
	end_time = EXCLUDED.end_time,
	is_active = EXCLUDED.is_active,
	modified_at = EXCLUDED.modified_at,
	modified_by = EXCLUDED.modified_by`

// Upsert writes the shift for (staff_id, day_of_week), replacing any existing one.
func (r *repositoryImpl) Upsert(ctx context.Context, hours model.WorkingHours) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".working_hours.Upsert")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryUpsert)

	if _, err := r.db.Write.NamedExecContext(ctx, queryUpsert, hours); err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to upsert working hours: %w", err)
	}

	return nil
}
