package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"salon/config"
	"salon/infras/metrics"
	"salon/infras/otel"
	"salon/internal/domains/availability/calculator"
	catalogService "salon/internal/domains/catalog/service"
	"salon/internal/domains/reservation/model"
	"salon/internal/domains/reservation/model/dto"
	"salon/internal/domains/reservation/repository"
	scheduleService "salon/internal/domains/schedule/service"
	staffService "salon/internal/domains/staff/service"
	"salon/shared/cache"
	"salon/shared/clock"
	"salon/shared/constant"
	"salon/shared/failure"
	"salon/shared/timezone"
	"salon/shared/validator"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Manager commits reservations and moves them through their lifecycle. It fires no side effects.
type Manager interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	TransitionStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (dto.StatusChangeResponse, error)
	UpdatePaymentStatus(ctx context.Context, id string, req dto.UpdatePaymentRequest) (dto.PaymentChangeResponse, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, req dto.ListReservationsRequest) (dto.ListReservationsResponse, error)
}

type Option func(*managerImpl)

// WithClock replaces the wall clock used to reject past slots.
func WithClock(now func() time.Time) Option {
	return func(m *managerImpl) {
		m.now = now
	}
}

type managerImpl struct {
	ledger   repository.Ledger
	catalog  catalogService.Catalog
	staff    staffService.Directory
	schedule scheduleService.Schedule
	cfg      *config.Config
	metrics  *metrics.BookingMetrics
	otel     otel.Otel
	now      func() time.Time
}

func New(
	ledger repository.Ledger,
	catalog catalogService.Catalog,
	staff staffService.Directory,
	schedule scheduleService.Schedule,
	cfg *config.Config,
	bookingMetrics *metrics.BookingMetrics,
	otel otel.Otel,
	opts ...Option,
) Manager {
	m := &managerImpl{
		ledger:   ledger,
		catalog:  catalog,
		staff:    staff,
		schedule: schedule,
		cfg:      cfg,
		metrics:  bookingMetrics,
		otel:     otel,
		now:      timezone.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Create validates the request against the catalog, the staff directory and current availability,
// then inserts it through the ledger, which re-runs the availability check under the staff date lock.
func (m *managerImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Create")
	defer scope.End()
	defer func() {
		scope.TraceIfError(err)
		m.metrics.ObserveReservation(metrics.Outcome(err))
	}()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	actor := model.ActorFromContext(ctx)

	customerID, err := customerFor(actor, req.CustomerID)
	if err != nil {
		return res, err
	}

	date, err := clock.ParseDate(req.Date)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	start, err := clock.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	end, err := clock.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	// Commit decisions read the store of record, never a cached copy.
	fresh := cache.Bypass(ctx)

	service, err := m.catalog.Get(fresh, req.ServiceID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if !service.IsActive {
		return res, failure.Inactive("service is not active", failure.ReasonServiceInactive) //nolint:wrapcheck
	}

	staff, err := m.staff.Get(fresh, req.StaffID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if !staff.IsActive {
		return res, failure.Inactive("staff member is not active", failure.ReasonStaffInactive) //nolint:wrapcheck
	}

	if !staff.Performs(service.ID) {
		return res, failure.Inactive("staff member does not perform this service", failure.ReasonStaffNotAssignedToService) //nolint:wrapcheck
	}

	interval, err := clock.NewInterval(start, end)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if interval.Minutes() != service.DurationMinutes {
		return res, failure.InvalidInterval(fmt.Sprintf("interval %s does not match the %d minute duration of the service", interval, service.DurationMinutes)) //nolint:wrapcheck
	}

	hours, err := m.schedule.Get(fresh, staff.ID, clock.Weekday(date))
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	input := calculator.Input{
		StaffActive:        staff.IsActive,
		DurationMinutes:    service.DurationMinutes,
		GranularityMinutes: m.cfg.Booking.SlotGranularityMinutes,
		Date:               date,
		Now:                m.now(),
	}

	if hours != nil {
		input.Windows = []clock.Interval{hours.Window()}
	}

	if !calculator.Contains(calculator.Calculate(input), interval) {
		return res, failure.InvalidInterval(fmt.Sprintf("%s on %s is outside bookable working hours", interval, req.Date)) //nolint:wrapcheck
	}

	busy, err := m.ledger.ListBusy(ctx, staff.ID, date)
	if err != nil {
		log.Error().Err(err).Str("staffId", staff.ID).Str("date", req.Date).Msg("failed to list busy intervals")

		return res, fmt.Errorf("failed to list busy intervals: %w", err)
	}

	if err = m.fits(input, busy, interval); err != nil {
		return res, err
	}

	now := m.now()
	reservation := model.Reservation{
		ID:            uuid.NewString(),
		CustomerID:    customerID,
		StaffID:       staff.ID,
		ServiceID:     service.ID,
		Date:          date,
		StartTime:     interval.Start,
		EndTime:       interval.End,
		Status:        model.StatusConfirmed,
		PaymentStatus: model.PaymentPending,
		PaymentMethod: paymentMethod(req.PaymentMethod),
		Notes:         req.Notes,
		CreatedBy:     actor.UserID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	reservation.PriceCents = service.Price(reservation.PaymentMethod)

	err = m.ledger.Create(ctx, reservation, func(busy []clock.Interval) error {
		input.Now = m.now()

		return m.fits(input, busy, interval)
	})
	if err != nil {
		if !failure.IsConflict(err) {
			log.Error().Err(err).Str("staffId", staff.ID).Str("date", req.Date).Msg("failed to create reservation")
		}

		return res, err //nolint:wrapcheck
	}

	log.Info().
		Str("reservationId", reservation.ID).
		Str("staffId", staff.ID).
		Str("date", req.Date).
		Str("interval", interval.String()).
		Msg("reservation confirmed")

	res.FromModel(reservation)

	return res, nil
}

// fits rejects interval with a slot conflict when it is not among the slots left by busy.
func (m *managerImpl) fits(input calculator.Input, busy []clock.Interval, interval clock.Interval) error {
	input.Busy = busy

	if !calculator.Contains(calculator.Calculate(input), interval) {
		return failure.SlotNoLongerAvailable
	}

	return nil
}

func (m *managerImpl) TransitionStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (res dto.StatusChangeResponse, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.TransitionStatus")
	defer scope.End()

	from := "unknown"

	defer func() {
		scope.TraceIfError(err)
		m.metrics.ObserveTransition(from, string(req.Status), metrics.Outcome(err))
	}()

	if err = validator.ValidateVar(id, "required,uuid"); err != nil {
		return res, err //nolint:wrapcheck
	}

	actor := model.ActorFromContext(ctx)

	transition, err := m.ledger.Transition(ctx, id, req.Status, func(current model.Reservation) error {
		from = string(current.Status)

		return model.CheckTransition(current, req.Status, actor)
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	log.Info().
		Str("reservationId", id).
		Str("from", string(transition.Old)).
		Str("to", string(transition.New)).
		Str("role", actor.Role).
		Msg("reservation status changed")

	res.FromTransition(transition)

	return res, nil
}

func (m *managerImpl) UpdatePaymentStatus(ctx context.Context, id string, req dto.UpdatePaymentRequest) (res dto.PaymentChangeResponse, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.UpdatePaymentStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateVar(id, "required,uuid"); err != nil {
		return res, err //nolint:wrapcheck
	}

	actor := model.ActorFromContext(ctx)

	transition, err := m.ledger.UpdatePayment(ctx, id, req.PaymentStatus, func(current model.Reservation) error {
		return model.CheckPaymentTransition(current, req.PaymentStatus, actor)
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.FromTransition(transition)

	return res, nil
}

// Get returns a reservation. Customers only see their own.
func (m *managerImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateVar(id, "required,uuid"); err != nil {
		return res, err //nolint:wrapcheck
	}

	reservation, err := m.ledger.Get(ctx, id)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	actor := model.ActorFromContext(ctx)
	if !model.IsStaffRole(actor.Role) && reservation.CustomerID != actor.UserID {
		return res, failure.ResourceRestrictedError
	}

	res.FromModel(reservation)

	return res, nil
}

// GetAll lists reservations. A customer is always limited to their own.
func (m *managerImpl) GetAll(ctx context.Context, req dto.ListReservationsRequest) (res dto.ListReservationsResponse, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := model.ActorFromContext(ctx)
	if !model.IsStaffRole(actor.Role) {
		if actor.UserID == constant.Empty {
			return res, failure.ForbiddenError
		}

		req.CustomerID = actor.UserID
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	filter, err := req.ToFilter()
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	reservations, total, err := m.ledger.List(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list reservations")

		return res, fmt.Errorf("failed to list reservations: %w", err)
	}

	res.FromModels(reservations, total, req.Limit)

	return res, nil
}

// customerFor resolves whom a reservation is booked for. Customers always book for themselves.
func customerFor(actor model.Actor, requested string) (string, error) {
	switch {
	case actor.Role == constant.RoleCustomer:
		if requested != constant.Empty && requested != actor.UserID {
			return "", failure.Forbidden("customers may only book for themselves") //nolint:wrapcheck
		}

		return actor.UserID, nil
	case model.IsStaffRole(actor.Role):
		if requested == constant.Empty {
			return "", failure.BadRequestFromString("customer_id is required") //nolint:wrapcheck
		}

		return requested, nil
	default:
		return "", failure.Forbidden(fmt.Sprintf("role %q may not create reservations", actor.Role)) //nolint:wrapcheck
	}
}

func paymentMethod(requested string) string {
	if requested == model.PaymentMethodCard {
		return model.PaymentMethodCard
	}

	return model.PaymentMethodCash
}
