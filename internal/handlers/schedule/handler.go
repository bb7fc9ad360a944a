package schedule

import (
	"net/http"
	"salon/infras/otel"
	"salon/internal/domains/schedule/model/dto"
	"salon/internal/domains/schedule/service"
	"salon/shared/constant"
	"salon/shared/failure"
	"salon/shared/validator"
	"salon/transport/http/response"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Schedule
	otel    otel.Otel
}

func New(service service.Schedule, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/staff/{id}/working-hours", handler.GetWorkingHours)
	router.Put("/staff/{id}/working-hours/{day}", handler.UpsertWorkingHours)
}

// GetWorkingHours lists a staff member's weekly shifts ordered by day.
// @Summary Get working hours
// @Tags Schedule
// @Produce json
// @Param id path string true "Staff ID"
// @Success 200 {object} response.Data[[]dto.WorkingHoursResponse] "Weekly working hours"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff/{id}/working-hours [get]
func (handler *Handler) GetWorkingHours(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetWorkingHours")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	hours, err := handler.service.List(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("staffId", id).Msg("failed to get working hours")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, hours)
}

// UpsertWorkingHours sets the shift of one weekday, 0 being Sunday.
// @Summary Set working hours for a weekday
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path string true "Staff ID"
// @Param day path integer true "Day of week (0 = Sunday)"
// @Param request body dto.UpsertWorkingHoursRequest true "Upsert Working Hours Request"
// @Success 200 {object} response.Data[dto.WorkingHoursResponse] "Stored working hours"
// @Failure 400 {object} response.Error "validation or invalid_interval"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff/{id}/working-hours/{day} [put]
// @Security BearerAuth
func (handler *Handler) UpsertWorkingHours(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertWorkingHours")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	day, err := strconv.Atoi(chi.URLParam(r, constant.RequestParamDay))
	if err != nil {
		response.WithError(w, failure.BadRequestFromString("day must be an integer between 0 and 6"))

		return
	}

	req := dto.UpsertWorkingHoursRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	hours, err := handler.service.Upsert(ctx, req, id, day)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("staffId", id).Int("day", day).Msg("failed to upsert working hours")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Working hours updated by user " + user)

	response.WithJSON(w, http.StatusOK, hours)
}
