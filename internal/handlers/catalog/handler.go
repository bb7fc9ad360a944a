package catalog

import (
	"net/http"
	"salon/infras/otel"
	"salon/internal/domains/catalog/model/dto"
	"salon/internal/domains/catalog/service"
	"salon/shared"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/validator"
	"salon/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Catalog
	otel    otel.Otel
}

func New(service service.Catalog, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/services", handler.CreateService)
	router.Get("/services", handler.GetServices)
	router.Get("/services/{id}", handler.GetServiceByID)
	router.Patch("/services/{id}", handler.UpdateService)
}

// CreateService adds a service to the catalog.
// @Summary Create a service
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body dto.CreateServiceRequest true "Create Service Request"
// @Success 201 {object} response.Data[dto.ServiceResponse] "Service created"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services [post]
// @Security BearerAuth
func (handler *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateService")
	defer scope.End()

	req := dto.CreateServiceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	created, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create service")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Service created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, created)
}

// GetServices lists the catalog ordered by category and name.
// @Summary Get services
// @Tags Catalog
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param active query boolean false "Only active services (default true)"
// @Param search query string false "Case-insensitive match on the service name"
// @Success 200 {object} response.Data[dto.GetServicesResponse] "List of services"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services [get]
func (handler *Handler) GetServices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServices")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	active := shared.ConvertStringToBool(r.URL.Query().Get(constant.RequestParamActive))

	services, err := handler.service.GetAll(ctx, queryParams, active == nil || *active)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get services")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, services)
}

// GetServiceByID retrieves one service.
// @Summary Get a service by ID
// @Tags Catalog
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} response.Data[dto.ServiceResponse] "Service details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services/{id} [get]
func (handler *Handler) GetServiceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServiceByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	svc, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get service by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, svc)
}

// UpdateService changes a catalog entry. Existing reservations keep the price they were booked at.
// @Summary Update a service
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Param request body dto.UpdateServiceRequest true "Update Service Request"
// @Success 200 {object} response.Message "Service updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateService")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateServiceRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update service")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Service updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Service updated successfully")
}
