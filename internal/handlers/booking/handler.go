package booking

import (
	"net/http"
	"salon/infras/otel"
	availabilityDto "salon/internal/domains/availability/model/dto"
	"salon/internal/domains/booking/service"
	"salon/internal/domains/reservation/model/dto"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/failure"
	"salon/shared/validator"
	"salon/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/staff/{id}/slots", handler.GetAvailableSlots)

	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.BookAppointment)
		routerGroup.Get("/", handler.GetReservations)
		routerGroup.Get("/mine", handler.GetMyReservations)
		routerGroup.Get("/{id}", handler.GetReservationByID)
		routerGroup.Patch("/{id}/status", handler.SetReservationStatus)
		routerGroup.Patch("/{id}/payment", handler.UpdatePaymentStatus)
	})
}

// GetAvailableSlots lists the start times a staff member can still take.
// @Summary Get available slots
// @Description Compute bookable slots for a staff member, service and date. Never cached.
// @Tags Booking
// @Produce json
// @Param id path string true "Staff ID"
// @Param service_id query string true "Service ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[availabilityDto.SlotsResponse] "Available slots"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff/{id}/slots [get]
func (handler *Handler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableSlots")
	defer scope.End()

	req := availabilityDto.GetSlotsRequest{
		StaffID:   chi.URLParam(r, constant.RequestParamID),
		ServiceID: r.URL.Query().Get(constant.RequestParamServiceID),
		Date:      r.URL.Query().Get(constant.RequestParamDate),
	}

	slots, err := handler.service.GetAvailableSlots(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("staffId", req.StaffID).Msg("failed to get available slots")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, slots)
}

// BookAppointment reserves a slot.
// @Summary Book an appointment
// @Description Create a confirmed reservation. Customers book for themselves, staff roles must pass customer_id.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Create Reservation Request"
// @Success 201 {object} response.Data[dto.ReservationResponse] "Reservation created"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error "slot_no_longer_available"
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BookAppointment")
	defer scope.End()

	req := dto.CreateReservationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.BookAppointment(ctx, req)
	if err != nil {
		scope.TraceError(err)

		if failure.IsConflict(err) {
			log.Warn().Err(err).Str("staffId", req.StaffID).Str("date", req.Date).Msg("slot taken")
		} else {
			log.Error().Err(err).Msg("failed to book appointment")
		}

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Reservation created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, reservation)
}

// GetReservations lists reservations for staff roles.
// @Summary Get reservations
// @Description List reservations filtered by staff, date and status. Staff filters return chronological order.
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param staff_id query string false "Filter by staff ID"
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Param status query string false "Filter by status (confirmed, completed, cancelled, no_show)"
// @Success 200 {object} response.Data[dto.ListReservationsResponse] "List of reservations"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	req := listRequest(r)
	req.StaffID = r.URL.Query().Get(constant.RequestParamStaffID)

	reservations, err := handler.service.ListReservations(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reservations)
}

// GetMyReservations lists the caller's own reservations, newest first.
// @Summary Get my reservations
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[dto.ListReservationsResponse] "List of the caller's reservations"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyReservations")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, failure.Unauthorized("unauthorized"))

		return
	}

	req := listRequest(r)
	req.CustomerID = userID

	reservations, err := handler.service.ListReservations(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reservations)
}

// GetReservationByID retrieves a reservation.
// @Summary Get a reservation by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Data[dto.ReservationResponse] "Reservation details"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	reservation, err := handler.service.GetReservation(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get reservation by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reservation)
}

// SetReservationStatus moves a reservation to completed, cancelled or no_show.
// @Summary Change reservation status
// @Description Terminal statuses are final. Customers may only cancel their own reservations.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body dto.UpdateStatusRequest true "Update Status Request"
// @Success 200 {object} response.Data[dto.StatusChangeResponse] "Old and new status"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error "forbidden, already_terminal or invalid_transition"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) SetReservationStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetReservationStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	change, err := handler.service.SetReservationStatus(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Str("status", string(req.Status)).Msg("failed to change reservation status")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Reservation status changed by user " + user)

	response.WithJSON(w, http.StatusOK, change)
}

// UpdatePaymentStatus records payment or refund.
// @Summary Change payment status
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body dto.UpdatePaymentRequest true "Update Payment Request"
// @Success 200 {object} response.Data[dto.PaymentChangeResponse] "Old and new payment status"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/payment [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePaymentStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdatePaymentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	change, err := handler.service.UpdatePaymentStatus(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to change payment status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, change)
}

func listRequest(r *http.Request) dto.ListReservationsRequest {
	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	return dto.ListReservationsRequest{
		Date:   r.URL.Query().Get(constant.RequestParamDate),
		Status: r.URL.Query().Get(constant.RequestParamStatus),
		Page:   queryParams.Page,
		Limit:  queryParams.Limit,
	}
}
