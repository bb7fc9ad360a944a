package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"salon/config"
	"salon/infras/otel"
	"salon/internal/domains/catalog/model"
	"salon/internal/domains/catalog/model/dto"
	"salon/internal/domains/catalog/repository"
	"salon/shared"
	"salon/shared/cache"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetService    = "catalog:get"
	cacheGetAllService = "catalog:gets"
	cacheCountService  = "catalog:count"

	searchArg = "search"
)

// Catalog owns the services a salon offers and their durations and prices.
type Catalog interface {
	Create(ctx context.Context, req dto.CreateServiceRequest) (dto.ServiceResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, activeOnly bool) (dto.GetServicesResponse, error)
	Get(ctx context.Context, id string) (dto.ServiceResponse, error)
	Update(ctx context.Context, req dto.UpdateServiceRequest, id string) error
}

type serviceImpl struct {
	repo  repository.Service
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Service, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Catalog {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateServiceRequest) (res dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".catalog.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	service := req.ToModel(user)

	if err = s.repo.Insert(ctx, service); err != nil {
		log.Error().Err(err).Msg("failed to create service")

		return res, fmt.Errorf("failed to create service: %w", err)
	}

	s.invalidateLists(ctx)

	res.FromModel(service)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, activeOnly bool) (res dto.GetServicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".catalog.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	if activeOnly {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldIsActive,
			Operator: gDto.FilterOperatorEq,
			Value:    true,
			Table:    model.TableName,
		})
	}

	if req.Search != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  searchArg,
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    req.Search,
			Table:    model.TableName,
		})
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllService, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for services")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get services")

		return res, fmt.Errorf("failed to get services: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save services to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountService, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count services")

		return res, fmt.Errorf("failed to count services: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service count to cache")
		}
	}()

	return res, nil
}

// Get returns the service or a service_not_found failure. Inactive services are returned as is.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".catalog.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetService, id)
	bypass := cache.Bypassed(ctx)

	if !bypass {
		if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
			log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for service")

			return res, nil
		}
	}

	service, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("serviceId", id).Msg("failed to get service")

		return res, fmt.Errorf("failed to get service: %w", err)
	}

	if service.ID == constant.Empty {
		return res, failure.NotFoundWithReason("service not found", failure.ReasonServiceNotFound) //nolint:wrapcheck
	}

	res.FromModel(service)

	if bypass {
		return res, nil
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateServiceRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".catalog.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if service exists")

		return fmt.Errorf("failed to check if service exists: %w", err)
	}

	if !exist {
		return failure.NotFoundWithReason("service not found", failure.ReasonServiceNotFound) //nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update service")

		return fmt.Errorf("failed to update service: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetService, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete service from cache")
		}
	}()

	s.invalidateLists(ctx)

	return nil
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllService)
		shared.InvalidateCaches(c, s.cache, cacheCountService)
	}()
}
