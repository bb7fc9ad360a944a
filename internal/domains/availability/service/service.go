package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"salon/config"
	"salon/infras/metrics"
	"salon/infras/otel"
	"salon/internal/domains/availability/calculator"
	"salon/internal/domains/availability/model/dto"
	catalogService "salon/internal/domains/catalog/service"
	"salon/internal/domains/reservation/repository"
	scheduleService "salon/internal/domains/schedule/service"
	staffService "salon/internal/domains/staff/service"
	"salon/shared/clock"
	"salon/shared/constant"
	"salon/shared/failure"
	"salon/shared/timezone"
	"salon/shared/validator"
	"time"

	"github.com/rs/zerolog/log"
)

// Availability answers which start times a staff member can still take for a service on a date.
// Results are never cached.
type Availability interface {
	GetAvailableSlots(ctx context.Context, req dto.GetSlotsRequest) (dto.SlotsResponse, error)
}

type Option func(*serviceImpl)

func WithClock(now func() time.Time) Option {
	return func(s *serviceImpl) {
		s.now = now
	}
}

type serviceImpl struct {
	catalog  catalogService.Catalog
	staff    staffService.Directory
	schedule scheduleService.Schedule
	ledger   repository.Ledger
	cfg      *config.Config
	metrics  *metrics.BookingMetrics
	otel     otel.Otel
	now      func() time.Time
}

func New(
	catalog catalogService.Catalog,
	staff staffService.Directory,
	schedule scheduleService.Schedule,
	ledger repository.Ledger,
	cfg *config.Config,
	bookingMetrics *metrics.BookingMetrics,
	otel otel.Otel,
	opts ...Option,
) Availability {
	s := &serviceImpl{
		catalog:  catalog,
		staff:    staff,
		schedule: schedule,
		ledger:   ledger,
		cfg:      cfg,
		metrics:  bookingMetrics,
		otel:     otel,
		now:      timezone.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *serviceImpl) GetAvailableSlots(ctx context.Context, req dto.GetSlotsRequest) (res dto.SlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.GetAvailableSlots")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	defer s.metrics.ObserveAvailability(time.Now())

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	date, err := clock.ParseDate(req.Date)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res = dto.SlotsResponse{
		StaffID:   req.StaffID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Slots:     []calculator.Slot{},
	}

	service, err := s.catalog.Get(ctx, req.ServiceID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if !service.IsActive {
		return res, failure.Inactive("service is not active", failure.ReasonServiceInactive) //nolint:wrapcheck
	}

	res.DurationMinutes = service.DurationMinutes

	staff, err := s.staff.Get(ctx, req.StaffID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if !staff.IsActive || !staff.Performs(service.ID) {
		return res, nil
	}

	hours, err := s.schedule.Get(ctx, staff.ID, clock.Weekday(date))
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if hours == nil {
		return res, nil
	}

	busy, err := s.ledger.ListBusy(ctx, staff.ID, date)
	if err != nil {
		log.Error().Err(err).Str("staffId", staff.ID).Str("date", req.Date).Msg("failed to list busy intervals")

		return res, fmt.Errorf("failed to list busy intervals: %w", err)
	}

	res.Slots = calculator.Calculate(calculator.Input{
		StaffActive:        staff.IsActive,
		Windows:            []clock.Interval{hours.Window()},
		Busy:               busy,
		DurationMinutes:    service.DurationMinutes,
		GranularityMinutes: s.cfg.Booking.SlotGranularityMinutes,
		Date:               date,
		Now:                s.now(),
	})

	return res, nil
}
