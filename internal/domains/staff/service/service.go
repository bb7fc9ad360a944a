package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"path"
	"salon/config"
	"salon/infras/otel"
	"salon/infras/s3"
	"salon/internal/domains/staff/model"
	"salon/internal/domains/staff/model/dto"
	"salon/internal/domains/staff/repository"
	"salon/shared"
	"salon/shared/cache"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/failure"
	"salon/shared/timezone"
	"slices"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetStaff       = "staff:get"
	cacheGetAllStaff    = "staff:gets"
	cacheCountStaff     = "staff:count"
	cacheStaffByService = "staff:by-service"
)

// Directory manages staff members and the services each of them performs.
type Directory interface {
	Create(ctx context.Context, req dto.CreateStaffRequest) (dto.StaffResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, activeOnly bool) (dto.GetStaffResponse, error)
	Get(ctx context.Context, id string) (dto.StaffResponse, error)
	Update(ctx context.Context, req dto.UpdateStaffRequest, id string) error
	AssignServices(ctx context.Context, req dto.AssignServicesRequest, id string) error
	ListForService(ctx context.Context, serviceID string) ([]dto.StaffResponse, error)
	UploadPhoto(ctx context.Context, req dto.UploadPhotoRequest, id string) (dto.PhotoResponse, error)
}

type serviceImpl struct {
	repo    repository.Staff
	cfg     *config.Config
	cache   cache.RedisCache
	storage s3.Storage
	otel    otel.Otel
}

func New(repo repository.Staff, cfg *config.Config, cache cache.RedisCache, storage s3.Storage, otel otel.Otel) Directory {
	return &serviceImpl{
		repo:    repo,
		cfg:     cfg,
		cache:   cache,
		storage: storage,
		otel:    otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateStaffRequest) (res dto.StaffResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".staff.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	staff := req.ToModel(user)

	if err = s.repo.Insert(ctx, staff); err != nil {
		log.Error().Err(err).Msg("failed to create staff")

		return res, fmt.Errorf("failed to create staff: %w", err)
	}

	serviceIDs := dedupe(req.ServiceIDs)
	if len(serviceIDs) > 0 {
		if err = s.replaceServices(ctx, staff.ID, serviceIDs); err != nil {
			return res, err
		}
	}

	s.invalidateLists(ctx)

	res.FromModel(staff, serviceIDs)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, activeOnly bool) (res dto.GetStaffResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".staff.GetAll")
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
		filter.Filters = append(filter.Filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{ArgName: "search_name", Field: model.FieldDisplayName, Operator: gDto.FilterOperatorLike, Value: req.Search, Table: model.TableName},
				gDto.Filter{ArgName: "search_specialty", Field: model.FieldSpecialty, Operator: gDto.FilterOperatorLike, Value: req.Search, Table: model.TableName},
			},
		})
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllStaff, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for staff list")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get staff")

		return res, fmt.Errorf("failed to get staff: %w", err)
	}

	ids := make([]string, len(models))
	for i, m := range models {
		ids[i] = m.ID
	}

	assignments, err := s.repo.ServiceIDs(ctx, ids...)
	if err != nil {
		log.Error().Err(err).Msg("failed to get staff services")

		return res, fmt.Errorf("failed to get staff services: %w", err)
	}

	res.FromModels(models, assignments, total, req.Limit)

	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountStaff, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count staff")

		return res, fmt.Errorf("failed to count staff: %w", err)
	}

	s.save(ctx, cacheKey, res)

	return res, nil
}

// Get returns the staff member with their assigned service ids, or a staff_not_found failure.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.StaffResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".staff.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetStaff, id)
	bypass := cache.Bypassed(ctx)

	if !bypass {
		if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
			log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for staff")

			return res, nil
		}
	}

	staff, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("staffId", id).Msg("failed to get staff")

		return res, fmt.Errorf("failed to get staff: %w", err)
	}

	if staff.ID == constant.Empty {
		return res, failure.NotFoundWithReason("staff not found", failure.ReasonStaffNotFound) //nolint:wrapcheck
	}

	assignments, err := s.repo.ServiceIDs(ctx, staff.ID)
	if err != nil {
		log.Error().Err(err).Str("staffId", id).Msg("failed to get staff services")

		return res, fmt.Errorf("failed to get staff services: %w", err)
	}

	res.FromModel(staff, assignments[staff.ID])

	if !bypass {
		s.save(ctx, cacheKey, res)
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateStaffRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".staff.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.ensureExists(ctx, filter); err != nil {
		return err
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update staff")

		return fmt.Errorf("failed to update staff: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// AssignServices replaces the set of services the staff member performs.
func (s *serviceImpl) AssignServices(ctx context.Context, req dto.AssignServicesRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".staff.AssignServices")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureExists(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		return err
	}

	if err = s.replaceServices(ctx, id, dedupe(req.ServiceIDs)); err != nil {
		return err
	}

	s.invalidate(ctx, id)

	return nil
}

// ListForService returns the active staff who perform the given service.
func (s *serviceImpl) ListForService(ctx context.Context, serviceID string) (res []dto.StaffResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".staff.ListForService")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheStaffByService, serviceID)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	models, err := s.repo.ListByService(ctx, serviceID, true)
	if err != nil {
		log.Error().Err(err).Str("serviceId", serviceID).Msg("failed to list staff for service")

		return nil, fmt.Errorf("failed to list staff for service: %w", err)
	}

	ids := make([]string, len(models))
	for i, m := range models {
		ids[i] = m.ID
	}

	assignments, err := s.repo.ServiceIDs(ctx, ids...)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff services: %w", err)
	}

	res = make([]dto.StaffResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m, assignments[m.ID])
	}

	s.save(ctx, cacheKey, res)

	return res, nil
}

// UploadPhoto stores a new photo for the staff member and removes the one it replaces.
func (s *serviceImpl) UploadPhoto(ctx context.Context, req dto.UploadPhotoRequest, id string) (res dto.PhotoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".staff.UploadPhoto")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ext, err := req.Validate(s.cfg.External.S3.MaxPhotoSizeMB << 20)
	if err != nil {
		return res, err
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	staff, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("staffId", id).Msg("failed to get staff")

		return res, fmt.Errorf("failed to get staff: %w", err)
	}

	if staff.ID == constant.Empty {
		return res, failure.NotFoundWithReason("staff not found", failure.ReasonStaffNotFound) //nolint:wrapcheck
	}

	url, err := s.storage.Upload(ctx, path.Join(model.EntityName, id), uuid.NewString()+ext, req.ContentType, req.Photo, req.Size)
	if err != nil {
		log.Error().Err(err).Str("staffId", id).Msg("failed to upload staff photo")

		return res, fmt.Errorf("failed to upload staff photo: %w", err)
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	err = s.repo.Update(ctx, map[string]any{
		model.FieldPhotoURL:      url,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}, filter)
	if err != nil {
		log.Error().Err(err).Str("staffId", id).Msg("failed to save staff photo")

		return res, fmt.Errorf("failed to save staff photo: %w", err)
	}

	if staff.PhotoURL != constant.Empty {
		go func() {
			if err := s.storage.Delete(context.WithoutCancel(ctx), staff.PhotoURL); err != nil {
				log.Warn().Err(err).Str("photoUrl", staff.PhotoURL).Msg("failed to delete replaced staff photo")
			}
		}()
	}

	s.invalidate(ctx, id)

	res.PhotoURL = url

	return res, nil
}

func (s *serviceImpl) ensureExists(ctx context.Context, filter gDto.FilterGroup) error {
	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if staff exists")

		return fmt.Errorf("failed to check if staff exists: %w", err)
	}

	if !exist {
		return failure.NotFoundWithReason("staff not found", failure.ReasonStaffNotFound) //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) replaceServices(ctx context.Context, id string, serviceIDs []string) error {
	err := s.repo.ReplaceServices(ctx, id, serviceIDs)
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeFkViolation {
		return failure.NotFoundWithReason("one or more services do not exist", failure.ReasonServiceNotFound) //nolint:wrapcheck
	}

	log.Error().Err(err).Str("staffId", id).Msg("failed to assign services")

	return fmt.Errorf("failed to assign services: %w", err)
}

func (s *serviceImpl) save(ctx context.Context, key string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, key, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to save staff to cache")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(context.WithoutCancel(ctx), shared.BuildCacheKey(cacheGetStaff, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete staff from cache")
	}

	s.invalidateLists(ctx)
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllStaff)
		shared.InvalidateCaches(c, s.cache, cacheCountStaff)
		shared.InvalidateCaches(c, s.cache, cacheStaffByService)
	}()
}

func dedupe(ids []string) []string {
	res := slices.Clone(ids)
	slices.Sort(res)

	return slices.Compact(res)
}
