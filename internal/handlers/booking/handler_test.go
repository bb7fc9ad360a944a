package booking_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "salon/infras/otel/mocks"
	availabilityDto "salon/internal/domains/availability/model/dto"
	bookingMocks "salon/internal/domains/booking/mocks"
	"salon/internal/domains/reservation/model"
	"salon/internal/domains/reservation/model/dto"
	"salon/internal/handlers/booking"
	"salon/shared/failure"
)

const (
	staffID   = "5b0c7a9e-3f55-4a8f-9b0e-4b1a9f5b7c11"
	serviceID = "c4f1a8f2-72d1-4d5e-8a8f-3a0c2f764a21"
)

type errorBody struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

func newRouter(t *testing.T) (http.Handler, *bookingMocks.MockBooking) {
	t.Helper()

	svc := bookingMocks.NewMockBooking(gomock.NewController(t))
	handler := booking.New(svc, otelMocks.NewOtel())

	router := chi.NewRouter()
	router.Route("/v1", handler.Router)

	return router, svc
}

func TestHandler_BookAppointment(t *testing.T) {
	body := `{"staff_id":"` + staffID + `","service_id":"` + serviceID + `","date":"2026-03-02","start_time":"10:00","end_time":"10:30"}`

	tests := []struct {
		name       string
		body       string
		setupMock  func(svc *bookingMocks.MockBooking)
		wantCode   int
		wantReason string
	}{
		{
			name: "created",
			body: body,
			setupMock: func(svc *bookingMocks.MockBooking) {
				svc.EXPECT().BookAppointment(gomock.Any(), gomock.Any()).Return(dto.ReservationResponse{ID: "r-1", Status: model.StatusConfirmed}, nil)
			},
			wantCode: http.StatusCreated,
		},
		{
			name: "slot taken",
			body: body,
			setupMock: func(svc *bookingMocks.MockBooking) {
				svc.EXPECT().BookAppointment(gomock.Any(), gomock.Any()).Return(dto.ReservationResponse{}, failure.SlotNoLongerAvailable)
			},
			wantCode:   http.StatusConflict,
			wantReason: failure.ReasonSlotNoLongerAvailable,
		},
		{
			name: "inactive staff",
			body: body,
			setupMock: func(svc *bookingMocks.MockBooking) {
				svc.EXPECT().BookAppointment(gomock.Any(), gomock.Any()).
					Return(dto.ReservationResponse{}, failure.Inactive("staff member is not active", failure.ReasonStaffInactive))
			},
			wantCode:   http.StatusUnprocessableEntity,
			wantReason: failure.ReasonStaffInactive,
		},
		{
			name:       "malformed time",
			body:       strings.Replace(body, `"10:00"`, `"10am"`, 1),
			setupMock:  func(*bookingMocks.MockBooking) {},
			wantCode:   http.StatusBadRequest,
			wantReason: failure.ReasonValidation,
		},
		{
			name:       "not json",
			body:       `{`,
			setupMock:  func(*bookingMocks.MockBooking) {},
			wantCode:   http.StatusBadRequest,
			wantReason: failure.ReasonValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newRouter(t)
			tt.setupMock(svc)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantReason != "" {
				var res errorBody
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
				assert.Equal(t, tt.wantReason, res.Reason)
				assert.NotEmpty(t, res.Error)
			}
		})
	}
}

func TestHandler_GetAvailableSlots(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().GetAvailableSlots(gomock.Any(), availabilityDto.GetSlotsRequest{StaffID: staffID, ServiceID: serviceID, Date: "2026-03-02"}).
		Return(availabilityDto.SlotsResponse{StaffID: staffID, ServiceID: serviceID, Date: "2026-03-02", DurationMinutes: 30}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/staff/"+staffID+"/slots?service_id="+serviceID+"&date=2026-03-02", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		Data availabilityDto.SlotsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 30, res.Data.DurationMinutes)
}

func TestHandler_SetReservationStatus(t *testing.T) {
	const id = "0d5b1c1e-8a43-4c55-9d0a-7f3f2b9b1e01"

	t.Run("already terminal", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().SetReservationStatus(gomock.Any(), id, dto.UpdateStatusRequest{Status: model.StatusCancelled}).
			Return(dto.StatusChangeResponse{}, failure.ForbiddenWithReason("reservation is already cancelled", failure.ReasonAlreadyTerminal))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/v1/bookings/"+id+"/status", strings.NewReader(`{"status":"cancelled"}`)))

		assert.Equal(t, http.StatusForbidden, rec.Code)

		var res errorBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, failure.ReasonAlreadyTerminal, res.Reason)
	})

	t.Run("missing status", func(t *testing.T) {
		router, _ := newRouter(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/v1/bookings/"+id+"/status", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ok", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().SetReservationStatus(gomock.Any(), id, dto.UpdateStatusRequest{Status: model.StatusCompleted}).
			Return(dto.StatusChangeResponse{ReservationID: id, OldStatus: model.StatusConfirmed, NewStatus: model.StatusCompleted}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/v1/bookings/"+id+"/status", strings.NewReader(`{"status":"completed"}`)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"old_status":"confirmed"`)
	})
}

func TestHandler_GetMyReservations_RequiresUser(t *testing.T) {
	router, _ := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/bookings/mine", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
