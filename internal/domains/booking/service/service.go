package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"salon/infras/metrics"
	"salon/infras/otel"
	availabilityDto "salon/internal/domains/availability/model/dto"
	availabilityService "salon/internal/domains/availability/service"
	"salon/internal/domains/booking/model"
	"salon/internal/domains/booking/repository"
	reservationDto "salon/internal/domains/reservation/model/dto"
	reservationService "salon/internal/domains/reservation/service"
	"salon/shared/constant"
	"salon/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Booking is the entry point the HTTP layer talks to. It announces committed changes as events.
type Booking interface {
	GetAvailableSlots(ctx context.Context, req availabilityDto.GetSlotsRequest) (availabilityDto.SlotsResponse, error)
	BookAppointment(ctx context.Context, req reservationDto.CreateReservationRequest) (reservationDto.ReservationResponse, error)
	SetReservationStatus(ctx context.Context, id string, req reservationDto.UpdateStatusRequest) (reservationDto.StatusChangeResponse, error)
	UpdatePaymentStatus(ctx context.Context, id string, req reservationDto.UpdatePaymentRequest) (reservationDto.PaymentChangeResponse, error)
	GetReservation(ctx context.Context, id string) (reservationDto.ReservationResponse, error)
	ListReservations(ctx context.Context, req reservationDto.ListReservationsRequest) (reservationDto.ListReservationsResponse, error)
}

type serviceImpl struct {
	availability availabilityService.Availability
	manager      reservationService.Manager
	events       repository.Events
	metrics      *metrics.BookingMetrics
	otel         otel.Otel
}

func New(
	availability availabilityService.Availability,
	manager reservationService.Manager,
	events repository.Events,
	bookingMetrics *metrics.BookingMetrics,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		availability: availability,
		manager:      manager,
		events:       events,
		metrics:      bookingMetrics,
		otel:         otel,
	}
}

func (s *serviceImpl) GetAvailableSlots(ctx context.Context, req availabilityDto.GetSlotsRequest) (availabilityDto.SlotsResponse, error) {
	return s.availability.GetAvailableSlots(ctx, req) //nolint:wrapcheck
}

func (s *serviceImpl) BookAppointment(ctx context.Context, req reservationDto.CreateReservationRequest) (res reservationDto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.BookAppointment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.manager.Create(ctx, req)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	s.publish(ctx, model.NewReservationCreated(model.ReservationCreated{
		ReservationID: res.ID,
		CustomerID:    res.CustomerID,
		ServiceID:     res.ServiceID,
		PriceCents:    res.PriceCents,
	}, timezone.Now()))

	return res, nil
}

func (s *serviceImpl) SetReservationStatus(ctx context.Context, id string, req reservationDto.UpdateStatusRequest) (res reservationDto.StatusChangeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.SetReservationStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.manager.TransitionStatus(ctx, id, req)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	s.publish(ctx, model.NewReservationStatusChanged(model.ReservationStatusChanged{
		ReservationID: res.ReservationID,
		OldStatus:     string(res.OldStatus),
		NewStatus:     string(res.NewStatus),
	}, timezone.Now()))

	return res, nil
}

func (s *serviceImpl) UpdatePaymentStatus(ctx context.Context, id string, req reservationDto.UpdatePaymentRequest) (res reservationDto.PaymentChangeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.UpdatePaymentStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.manager.UpdatePaymentStatus(ctx, id, req)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if res.OldPaymentStatus == res.NewPaymentStatus {
		return res, nil
	}

	s.publish(ctx, model.NewReservationPaymentChanged(model.ReservationPaymentChanged{
		ReservationID:    res.ReservationID,
		OldPaymentStatus: string(res.OldPaymentStatus),
		NewPaymentStatus: string(res.NewPaymentStatus),
	}, timezone.Now()))

	return res, nil
}

func (s *serviceImpl) GetReservation(ctx context.Context, id string) (reservationDto.ReservationResponse, error) {
	return s.manager.Get(ctx, id) //nolint:wrapcheck
}

func (s *serviceImpl) ListReservations(ctx context.Context, req reservationDto.ListReservationsRequest) (reservationDto.ListReservationsResponse, error) {
	return s.manager.GetAll(ctx, req) //nolint:wrapcheck
}

// publish never fails the caller: the reservation is already committed.
func (s *serviceImpl) publish(ctx context.Context, event model.Event) {
	err := s.events.Publish(context.WithoutCancel(ctx), event)
	if err != nil {
		log.Error().Err(err).Str("type", event.Type).Str("key", event.Key).Msg("failed to publish booking event")
	}

	s.metrics.ObserveEvent(event.Type, metrics.Outcome(err))
}
