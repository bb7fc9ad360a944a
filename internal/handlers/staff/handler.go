package staff

import (
	"net/http"
	"salon/infras/otel"
	"salon/internal/domains/staff/model/dto"
	"salon/internal/domains/staff/service"
	"salon/shared"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/failure"
	"salon/shared/validator"
	"salon/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Directory
	otel    otel.Otel
}

func New(service service.Directory, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/staff", handler.CreateStaff)
	router.Get("/staff", handler.GetStaff)
	router.Get("/staff/{id}", handler.GetStaffByID)
	router.Patch("/staff/{id}", handler.UpdateStaff)
	router.Put("/staff/{id}/services", handler.AssignServices)
	router.Put("/staff/{id}/photo", handler.UploadPhoto)
	router.Get("/services/{id}/staff", handler.GetStaffForService)
}

// CreateStaff adds a staff member.
// @Summary Create a staff member
// @Tags Staff
// @Accept json
// @Produce json
// @Param request body dto.CreateStaffRequest true "Create Staff Request"
// @Success 201 {object} response.Data[dto.StaffResponse] "Staff member created"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error "service_not_found"
// @Failure 500 {object} response.Error
// @Router /v1/staff [post]
// @Security BearerAuth
func (handler *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateStaff")
	defer scope.End()

	req := dto.CreateStaffRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	created, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create staff")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Staff created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, created)
}

// GetStaff lists staff ordered by display name.
// @Summary Get staff
// @Tags Staff
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param active query boolean false "Only active staff (default true)"
// @Param search query string false "Case-insensitive match on display name or specialty"
// @Success 200 {object} response.Data[dto.GetStaffResponse] "List of staff"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff [get]
func (handler *Handler) GetStaff(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStaff")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	active := shared.ConvertStringToBool(r.URL.Query().Get(constant.RequestParamActive))

	staff, err := handler.service.GetAll(ctx, queryParams, active == nil || *active)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get staff")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, staff)
}

// GetStaffByID retrieves a staff member with their assigned services.
// @Summary Get a staff member by ID
// @Tags Staff
// @Produce json
// @Param id path string true "Staff ID"
// @Success 200 {object} response.Data[dto.StaffResponse] "Staff details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff/{id} [get]
func (handler *Handler) GetStaffByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStaffByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	staff, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get staff by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, staff)
}

// UpdateStaff changes a staff profile or deactivates it.
// @Summary Update a staff member
// @Tags Staff
// @Accept json
// @Produce json
// @Param id path string true "Staff ID"
// @Param request body dto.UpdateStaffRequest true "Update Staff Request"
// @Success 200 {object} response.Message "Staff updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateStaff")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateStaffRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update staff")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Staff updated successfully")
}

// AssignServices replaces the set of services a staff member performs.
// @Summary Assign services to a staff member
// @Tags Staff
// @Accept json
// @Produce json
// @Param id path string true "Staff ID"
// @Param request body dto.AssignServicesRequest true "Assign Services Request"
// @Success 200 {object} response.Message "Services assigned successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error "staff_not_found or service_not_found"
// @Failure 500 {object} response.Error
// @Router /v1/staff/{id}/services [put]
// @Security BearerAuth
func (handler *Handler) AssignServices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AssignServices")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.AssignServicesRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.AssignServices(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to assign services")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Services assigned successfully")
}

// GetStaffForService lists active staff who perform a service.
// @Summary Get staff for a service
// @Tags Staff
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} response.Data[[]dto.StaffResponse] "Active staff performing the service"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/services/{id}/staff [get]
func (handler *Handler) GetStaffForService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStaffForService")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	staff, err := handler.service.ListForService(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("serviceId", id).Msg("failed to get staff for service")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, staff)
}

// UploadPhoto replaces the staff member's photo.
// @Summary Upload a staff photo
// @Tags Staff
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Staff ID"
// @Param photo formData file true "png, jpeg or webp image"
// @Success 200 {object} response.Data[dto.PhotoResponse] "Photo uploaded"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error "staff_not_found"
// @Failure 501 {object} response.Error "photo storage is not configured"
// @Failure 500 {object} response.Error
// @Router /v1/staff/{id}/photo [put]
// @Security BearerAuth
func (handler *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadPhoto")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFilePhoto)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get photo from form")

		response.WithError(w, failure.BadRequest(err))

		return
	}
	defer file.Close()

	req := dto.UploadPhotoRequest{
		Photo:       file,
		ContentType: fileHeader.Header.Get(constant.RequestHeaderContentType),
		Size:        fileHeader.Size,
	}

	res, err := handler.service.UploadPhoto(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload staff photo")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Staff photo uploaded by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}
