package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"salon/config"
	"salon/infras/otel"
	"salon/internal/domains/schedule/model"
	"salon/internal/domains/schedule/model/dto"
	"salon/internal/domains/schedule/repository"
	staffService "salon/internal/domains/staff/service"
	"salon/shared"
	"salon/shared/cache"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/validator"

	"github.com/rs/zerolog/log"
)

const cacheListWorkingHours = "schedule:list"

// Schedule stores the weekly working hours of each staff member.
type Schedule interface {
	// Get returns the active shift of staffID on day, or nil when the staff member is off.
	Get(ctx context.Context, staffID string, day int) (*dto.WorkingHoursResponse, error)
	List(ctx context.Context, staffID string) ([]dto.WorkingHoursResponse, error)
	Upsert(ctx context.Context, req dto.UpsertWorkingHoursRequest, staffID string, day int) (dto.WorkingHoursResponse, error)
}

type serviceImpl struct {
	repo  repository.WorkingHours
	staff staffService.Directory
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.WorkingHours, staff staffService.Directory, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Schedule {
	return &serviceImpl{
		repo:  repo,
		staff: staff,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context, staffID string, day int) (res *dto.WorkingHoursResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".schedule.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateVar(day, "weekday"); err != nil {
		return nil, err
	}

	hours, err := s.List(ctx, staffID)
	if err != nil {
		return nil, err
	}

	for _, h := range hours {
		if h.DayOfWeek == day && h.IsActive {
			return &h, nil
		}
	}

	return nil, nil
}

func (s *serviceImpl) List(ctx context.Context, staffID string) (res []dto.WorkingHoursResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".schedule.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateVar(staffID, "required,uuid"); err != nil {
		return nil, err //nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheListWorkingHours, staffID)
	bypass := cache.Bypassed(ctx)

	if !bypass {
		if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
			log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for working hours")

			return res, nil
		}
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStaffID,
				Operator: gDto.FilterOperatorEq,
				Value:    staffID,
				Table:    model.TableName,
			},
		},
	}

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Str("staffId", staffID).Msg("failed to list working hours")

		return nil, fmt.Errorf("failed to list working hours: %w", err)
	}

	res = dto.FromModels(models)

	if bypass {
		return res, nil
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save working hours to cache")
		}
	}()

	return res, nil
}

// Upsert sets the shift of staffID on day. The window must satisfy start < end.
func (s *serviceImpl) Upsert(ctx context.Context, req dto.UpsertWorkingHoursRequest, staffID string, day int) (res dto.WorkingHoursResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".schedule.Upsert")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateVar(staffID, "required,uuid"); err != nil {
		return res, err //nolint:wrapcheck
	}

	if err = validator.ValidateVar(day, "weekday"); err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	hours, err := req.ToModel(staffID, day, user)
	if err != nil {
		return res, err
	}

	if _, err = s.staff.Get(ctx, staffID); err != nil {
		return res, err //nolint:wrapcheck
	}

	if err = s.repo.Upsert(ctx, hours); err != nil {
		log.Error().Err(err).Str("staffId", staffID).Int("day", day).Msg("failed to upsert working hours")

		return res, fmt.Errorf("failed to upsert working hours: %w", err)
	}

	if err := s.cache.Delete(context.WithoutCancel(ctx), shared.BuildCacheKey(cacheListWorkingHours, staffID)); err != nil {
		log.Error().Err(err).Msg("failed to delete working hours from cache")
	}

	res.FromModel(hours)

	return res, nil
}
