package service_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"salon/config"
	"salon/infras/metrics"
	otelMocks "salon/infras/otel/mocks"
	catalogMocks "salon/internal/domains/catalog/mocks"
	catalogDto "salon/internal/domains/catalog/model/dto"
	reservationMocks "salon/internal/domains/reservation/mocks"
	"salon/internal/domains/reservation/model"
	"salon/internal/domains/reservation/model/dto"
	"salon/internal/domains/reservation/repository"
	"salon/internal/domains/reservation/service"
	scheduleMocks "salon/internal/domains/schedule/mocks"
	scheduleDto "salon/internal/domains/schedule/model/dto"
	staffMocks "salon/internal/domains/staff/mocks"
	staffDto "salon/internal/domains/staff/model/dto"
	"salon/shared/cache"
	"salon/shared/clock"
	"salon/shared/constant"
	"salon/shared/failure"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	staffID   = "5b0c7a9e-3f55-4a8f-9b0e-4b1a9f5b7c11"
	serviceID = "c4f1a8f2-72d1-4d5e-8a8f-3a0c2f764a21"
	customer  = "cust-1"
)

// now is the Sunday before the Monday most tests book on.
var now = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

// world is the state the collaborators report back to the manager.
type world struct {
	service    catalogDto.ServiceResponse
	serviceErr error
	staff      staffDto.StaffResponse
	staffErr   error
	hours      *scheduleDto.WorkingHoursResponse

	// cachedReads counts collaborator lookups made without cache.Bypass.
	cachedReads atomic.Int32
}

func (w *world) read(ctx context.Context) {
	if !cache.Bypassed(ctx) {
		w.cachedReads.Add(1)
	}
}

func defaultWorld() *world {
	return &world{
		service: catalogDto.ServiceResponse{ID: serviceID, Name: "Haircut", DurationMinutes: 30, IsActive: true, CashPriceCents: 2500, CardPriceCents: 2700},
		staff:   staffDto.StaffResponse{ID: staffID, DisplayName: "Anna", IsActive: true, AssignedServiceIDs: []string{serviceID}},
		hours: &scheduleDto.WorkingHoursResponse{
			StaffID: staffID, DayOfWeek: 1, StartTime: clock.NewTimeOfDay(9, 0), EndTime: clock.NewTimeOfDay(17, 0), IsActive: true,
		},
	}
}

func newManager(t *testing.T, w *world, ledger repository.Ledger) service.Manager {
	t.Helper()

	ctrl := gomock.NewController(t)

	catalog := catalogMocks.NewMockCatalog(ctrl)
	directory := staffMocks.NewMockDirectory(ctrl)
	schedule := scheduleMocks.NewMockSchedule(ctrl)

	catalog.EXPECT().Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (catalogDto.ServiceResponse, error) {
			w.read(ctx)

			return w.service, w.serviceErr
		}).AnyTimes()
	directory.EXPECT().Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (staffDto.StaffResponse, error) {
			w.read(ctx)

			return w.staff, w.staffErr
		}).AnyTimes()
	schedule.EXPECT().Get(gomock.Any(), staffID, gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, day int) (*scheduleDto.WorkingHoursResponse, error) {
			w.read(ctx)

			if w.hours == nil || w.hours.DayOfWeek != day {
				return nil, nil
			}

			return w.hours, nil
		}).AnyTimes()

	cfg := &config.Config{}
	cfg.Booking.SlotGranularityMinutes = 30

	return service.New(ledger, catalog, directory, schedule, cfg, metrics.NewBookingMetrics(prometheus.NewRegistry()), otelMocks.NewOtel(),
		service.WithClock(func() time.Time { return now }))
}

func as(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func booking(start, end string) dto.CreateReservationRequest {
	return dto.CreateReservationRequest{StaffID: staffID, ServiceID: serviceID, Date: "2026-03-02", StartTime: start, EndTime: end}
}

func TestManager_Create_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		ctx        context.Context
		req        dto.CreateReservationRequest
		mutate     func(w *world)
		wantReason string
	}{
		{
			name:       "malformed date",
			req:        dto.CreateReservationRequest{StaffID: staffID, ServiceID: serviceID, Date: "02/03/2026", StartTime: "10:00", EndTime: "10:30"},
			wantReason: failure.ReasonValidation,
		},
		{
			name:       "malformed time",
			req:        booking("10", "10:30"),
			wantReason: failure.ReasonValidation,
		},
		{
			name:       "service not found",
			req:        booking("10:00", "10:30"),
			mutate:     func(w *world) { w.serviceErr = failure.NotFoundWithReason("service not found", failure.ReasonServiceNotFound) },
			wantReason: failure.ReasonServiceNotFound,
		},
		{
			name:       "service inactive",
			req:        booking("10:00", "10:30"),
			mutate:     func(w *world) { w.service.IsActive = false },
			wantReason: failure.ReasonServiceInactive,
		},
		{
			name:       "staff not found",
			req:        booking("10:00", "10:30"),
			mutate:     func(w *world) { w.staffErr = failure.NotFoundWithReason("staff not found", failure.ReasonStaffNotFound) },
			wantReason: failure.ReasonStaffNotFound,
		},
		{
			name:       "staff inactive",
			req:        booking("10:00", "10:30"),
			mutate:     func(w *world) { w.staff.IsActive = false },
			wantReason: failure.ReasonStaffInactive,
		},
		{
			name:       "staff not assigned",
			req:        booking("10:00", "10:30"),
			mutate:     func(w *world) { w.staff.AssignedServiceIDs = []string{"another-service"} },
			wantReason: failure.ReasonStaffNotAssignedToService,
		},
		{
			name:       "start after end",
			req:        booking("10:30", "10:00"),
			wantReason: failure.ReasonInvalidInterval,
		},
		{
			name:       "empty interval",
			req:        booking("10:00", "10:00"),
			wantReason: failure.ReasonInvalidInterval,
		},
		{
			name:       "length differs from service duration",
			req:        booking("10:00", "11:00"),
			wantReason: failure.ReasonInvalidInterval,
		},
		{
			name:       "before opening",
			req:        booking("08:30", "09:00"),
			wantReason: failure.ReasonInvalidInterval,
		},
		{
			name:       "overhangs closing",
			req:        booking("16:45", "17:15"),
			wantReason: failure.ReasonInvalidInterval,
		},
		{
			name:       "off the slot grid",
			req:        booking("10:10", "10:40"),
			wantReason: failure.ReasonInvalidInterval,
		},
		{
			name:       "day off",
			req:        booking("10:00", "10:30"),
			mutate:     func(w *world) { w.hours = nil },
			wantReason: failure.ReasonInvalidInterval,
		},
		{
			name: "past date",
			req: dto.CreateReservationRequest{
				StaffID: staffID, ServiceID: serviceID, Date: "2026-02-23", StartTime: "10:00", EndTime: "10:30",
			},
			wantReason: failure.ReasonInvalidInterval,
		},
		{
			name: "customer books for someone else",
			req: dto.CreateReservationRequest{
				CustomerID: "cust-2", StaffID: staffID, ServiceID: serviceID, Date: "2026-03-02", StartTime: "10:00", EndTime: "10:30",
			},
			wantReason: failure.ReasonForbidden,
		},
		{
			name:       "receptionist without customer",
			ctx:        as("rec-1", constant.RoleReceptionist),
			req:        booking("10:00", "10:30"),
			wantReason: failure.ReasonValidation,
		},
		{
			name:       "unknown role",
			ctx:        as("u-1", "guest"),
			req:        booking("10:00", "10:30"),
			wantReason: failure.ReasonForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := defaultWorld()
			if tt.mutate != nil {
				tt.mutate(w)
			}

			ledger := reservationMocks.NewMockLedger(gomock.NewController(t))
			manager := newManager(t, w, ledger)

			ctx := tt.ctx
			if ctx == nil {
				ctx = as(customer, constant.RoleCustomer)
			}

			_, err := manager.Create(ctx, tt.req)

			require.Error(t, err)
			assert.Equal(t, tt.wantReason, failure.GetReason(err))
			assert.False(t, failure.IsConflict(err), "only a lost slot is a conflict")
		})
	}
}

func TestManager_Create_Success(t *testing.T) {
	tests := []struct {
		name         string
		ctx          context.Context
		req          dto.CreateReservationRequest
		wantCustomer string
		wantPrice    int64
		wantMethod   string
	}{
		{
			name:         "customer pays cash by default",
			ctx:          as(customer, constant.RoleCustomer),
			req:          booking("10:00", "10:30"),
			wantCustomer: customer,
			wantPrice:    2500,
			wantMethod:   model.PaymentMethodCash,
		},
		{
			name: "receptionist books for a customer paying by card",
			ctx:  as("rec-1", constant.RoleReceptionist),
			req: dto.CreateReservationRequest{
				CustomerID:    "cust-9",
				StaffID:       staffID,
				ServiceID:     serviceID,
				Date:          "2026-03-02",
				StartTime:     "16:30",
				EndTime:       "17:00",
				PaymentMethod: model.PaymentMethodCard,
				Notes:         "walk in",
			},
			wantCustomer: "cust-9",
			wantPrice:    2700,
			wantMethod:   model.PaymentMethodCard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := reservationMocks.NewMockLedger(gomock.NewController(t))
			manager := newManager(t, defaultWorld(), ledger)

			ledger.EXPECT().ListBusy(gomock.Any(), staffID, gomock.Any()).
				Return([]clock.Interval{{Start: clock.NewTimeOfDay(9, 0), End: clock.NewTimeOfDay(9, 30)}}, nil)
			ledger.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, r model.Reservation, check repository.BusyCheck) error {
					assert.Equal(t, model.StatusConfirmed, r.Status)
					assert.Equal(t, model.PaymentPending, r.PaymentStatus)

					return check(nil)
				})

			res, err := manager.Create(tt.ctx, tt.req)

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, tt.wantCustomer, res.CustomerID)
			assert.Equal(t, tt.wantPrice, res.PriceCents)
			assert.Equal(t, tt.wantMethod, res.PaymentMethod)
			assert.Equal(t, "2026-03-02", res.Date)
			assert.Equal(t, tt.req.StartTime, res.StartTime.String())
			assert.Equal(t, tt.req.EndTime, res.EndTime.String())
		})
	}
}

func TestManager_Create_SkipsCache(t *testing.T) {
	w := defaultWorld()
	ledger := reservationMocks.NewMockLedger(gomock.NewController(t))
	manager := newManager(t, w, ledger)

	ledger.EXPECT().ListBusy(gomock.Any(), staffID, gomock.Any()).Return(nil, nil)
	ledger.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ model.Reservation, check repository.BusyCheck) error {
			return check(nil)
		})

	_, err := manager.Create(as(customer, constant.RoleCustomer), booking("10:00", "10:30"))

	require.NoError(t, err)
	assert.Zero(t, w.cachedReads.Load(), "service, staff and hours must come from the database")
}

func TestManager_Create_Conflicts(t *testing.T) {
	taken := []clock.Interval{{Start: clock.NewTimeOfDay(10, 0), End: clock.NewTimeOfDay(10, 30)}}

	t.Run("pre-check sees the slot taken", func(t *testing.T) {
		ledger := reservationMocks.NewMockLedger(gomock.NewController(t))
		manager := newManager(t, defaultWorld(), ledger)

		ledger.EXPECT().ListBusy(gomock.Any(), staffID, gomock.Any()).Return(taken, nil)

		_, err := manager.Create(as(customer, constant.RoleCustomer), booking("10:00", "10:30"))

		assert.ErrorIs(t, err, failure.SlotNoLongerAvailable)
		assert.True(t, failure.IsConflict(err))
	})

	t.Run("slot taken between pre-check and commit", func(t *testing.T) {
		ledger := reservationMocks.NewMockLedger(gomock.NewController(t))
		manager := newManager(t, defaultWorld(), ledger)

		ledger.EXPECT().ListBusy(gomock.Any(), staffID, gomock.Any()).Return(nil, nil)
		ledger.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ model.Reservation, check repository.BusyCheck) error {
				return check(taken)
			})

		_, err := manager.Create(as(customer, constant.RoleCustomer), booking("10:00", "10:30"))

		assert.Equal(t, failure.ReasonSlotNoLongerAvailable, failure.GetReason(err))
	})

	t.Run("ledger failure is internal", func(t *testing.T) {
		ledger := reservationMocks.NewMockLedger(gomock.NewController(t))
		manager := newManager(t, defaultWorld(), ledger)

		ledger.EXPECT().ListBusy(gomock.Any(), staffID, gomock.Any()).Return(nil, errors.New("connection refused"))

		_, err := manager.Create(as(customer, constant.RoleCustomer), booking("10:00", "10:30"))

		assert.Equal(t, failure.ReasonInternal, failure.GetReason(err))
	})
}

func TestManager_Get(t *testing.T) {
	ledger := repository.NewMemory()
	manager := newManager(t, defaultWorld(), ledger)

	created, err := manager.Create(as(customer, constant.RoleCustomer), booking("10:00", "10:30"))
	require.NoError(t, err)

	got, err := manager.Get(as(customer, constant.RoleCustomer), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = manager.Get(as("barber-1", constant.RoleBarber), created.ID)
	assert.NoError(t, err)

	_, err = manager.Get(as("cust-2", constant.RoleCustomer), created.ID)
	assert.Equal(t, failure.ReasonForbidden, failure.GetReason(err))

	_, err = manager.Get(as(customer, constant.RoleCustomer), "f2b0a2c8-9c0e-4f7e-8d8a-1b1c1d1e1f10")
	assert.Equal(t, failure.ReasonReservationNotFound, failure.GetReason(err))

	_, err = manager.Get(as(customer, constant.RoleCustomer), "not-a-uuid")
	assert.Equal(t, failure.ReasonValidation, failure.GetReason(err))
}

func TestManager_GetAll(t *testing.T) {
	ledger := repository.NewMemory()
	manager := newManager(t, defaultWorld(), ledger)

	for _, slot := range [][2]string{{"09:00", "09:30"}, {"10:00", "10:30"}} {
		_, err := manager.Create(as(customer, constant.RoleCustomer), booking(slot[0], slot[1]))
		require.NoError(t, err)
	}

	_, err := manager.Create(as("cust-2", constant.RoleCustomer), booking("11:00", "11:30"))
	require.NoError(t, err)

	mine, err := manager.GetAll(as(customer, constant.RoleCustomer), dto.ListReservationsRequest{CustomerID: "cust-2", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, mine.Reservations, 2, "customers only ever see their own")
	assert.Equal(t, "10:00", mine.Reservations[0].StartTime.String(), "newest first")

	day, err := manager.GetAll(as("rec-1", constant.RoleReceptionist), dto.ListReservationsRequest{StaffID: staffID, Date: "2026-03-02", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, day.Reservations, 3)
	assert.Equal(t, "09:00", day.Reservations[0].StartTime.String(), "staff views are chronological")
	assert.Equal(t, 3, day.TotalData)

	_, err = manager.GetAll(as("rec-1", constant.RoleReceptionist), dto.ListReservationsRequest{Status: "pending"})
	assert.Equal(t, failure.ReasonValidation, failure.GetReason(err))
}
