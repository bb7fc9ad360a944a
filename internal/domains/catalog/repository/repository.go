package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"salon/infras/otel"
	"salon/infras/postgres"
	"salon/internal/domains/catalog/model"
	gDto "salon/shared/dto"
	gRepo "salon/shared/repository"
)

type Service interface {
	Insert(ctx context.Context, model model.Service) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Service, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Service, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Service]
}

func New(db *postgres.Connection, otel otel.Otel) Service {
	repo := gRepo.NewRepository[model.Service](model.EntityName, model.TableName, model.FieldID, db, otel)
	repo.SetDefaultOrder(model.DefaultOrder)

	return &repositoryImpl{
		Repository: repo,
	}
}
