package repository_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salon/infras/otel/mocks"
	"salon/internal/domains/reservation/model"
	"salon/internal/domains/reservation/repository"
	"salon/shared/clock"
	"salon/shared/failure"
)

const (
	reservationID = "0f9a3c2e-6d1b-4e0a-9c55-8b2f1d3e4a77"
	staffID       = "5b0c7a9e-3f55-4a8f-9b0e-4b1a9f5b7c11"
	serviceID     = "c4f1a8f2-72d1-4d5e-8a8f-3a0c2f764a21"
)

var (
	monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	busy   = []string{"confirmed", "completed"}
)

var reservationColumns = []string{
	"id", "customer_id", "staff_id", "service_id", "date", "start_time", "end_time",
	"status", "payment_status", "payment_method", "price_cents", "notes", "created_by", "created_at", "updated_at",
}

func newLedger(t *testing.T) (repository.Ledger, pgxmock.PgxPoolIface) {
	t.Helper()

	pool, err := pgxmock.NewPool()
	require.NoError(t, err)

	t.Cleanup(pool.Close)

	return repository.New(pool, mocks.NewOtel()), pool
}

func reservation() model.Reservation {
	return model.Reservation{
		ID:            reservationID,
		CustomerID:    "cust-1",
		StaffID:       staffID,
		ServiceID:     serviceID,
		Date:          monday,
		StartTime:     clock.NewTimeOfDay(10, 0),
		EndTime:       clock.NewTimeOfDay(10, 30),
		Status:        model.StatusConfirmed,
		PaymentStatus: model.PaymentPending,
		PaymentMethod: model.PaymentMethodCash,
		PriceCents:    2500,
		CreatedBy:     "cust-1",
	}
}

func reservationRow(status string) *pgxmock.Rows {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	return pgxmock.NewRows(reservationColumns).AddRow(
		reservationID, "cust-1", staffID, serviceID, "2026-03-02", "10:00:00", "10:30:00",
		status, "pending", "cash", int64(2500), "", "cust-1", now, now,
	)
}

func TestLedger_ListBusy(t *testing.T) {
	ledger, pool := newLedger(t)

	pool.ExpectQuery("SELECT start_time::text, end_time::text FROM reservations").
		WithArgs(staffID, "2026-03-02", busy).
		WillReturnRows(pgxmock.NewRows([]string{"start_time", "end_time"}).
			AddRow("09:00:00", "09:30:00").
			AddRow("13:00:00", "14:00:00"))

	got, err := ledger.ListBusy(context.Background(), staffID, monday)

	require.NoError(t, err)
	assert.Equal(t, []clock.Interval{
		{Start: clock.NewTimeOfDay(9, 0), End: clock.NewTimeOfDay(9, 30)},
		{Start: clock.NewTimeOfDay(13, 0), End: clock.NewTimeOfDay(14, 0)},
	}, got)
	assert.NoError(t, pool.ExpectationsWereMet())
}

// expectLockedRead registers the advisory lock and the busy snapshot read that open every Create.
func expectLockedRead(pool pgxmock.PgxPoolIface, rows *pgxmock.Rows) {
	pool.ExpectBegin()
	pool.ExpectExec("SELECT pg_advisory_xact_lock").
		WithArgs(staffID + "|2026-03-02").
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	pool.ExpectQuery("SELECT start_time::text").
		WithArgs(staffID, "2026-03-02", busy).
		WillReturnRows(rows)
}

func insertArgs() []any {
	return []any{
		reservationID, "cust-1", staffID, serviceID, "2026-03-02", "10:00", "10:30",
		"confirmed", "pending", "cash", int64(2500), "", "cust-1", pgxmock.AnyArg(), pgxmock.AnyArg(),
	}
}

func busyRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"start_time", "end_time"})
}

func TestLedger_Create(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(pool pgxmock.PgxPoolIface)
		check     repository.BusyCheck
		wantErr   error
		wantCode  int
	}{
		{
			name: "inserts under the staff date lock",
			setupMock: func(pool pgxmock.PgxPoolIface) {
				expectLockedRead(pool, busyRows().AddRow("09:00:00", "10:00:00"))
				pool.ExpectExec("INSERT INTO reservations").
					WithArgs(insertArgs()...).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
				pool.ExpectCommit()
			},
			check: func(busy []clock.Interval) error {
				if len(busy) != 1 {
					return errors.New("expected the locked snapshot")
				}

				return nil
			},
		},
		{
			name: "check rejects and rolls back",
			setupMock: func(pool pgxmock.PgxPoolIface) {
				expectLockedRead(pool, busyRows().AddRow("10:00:00", "10:30:00"))
				pool.ExpectRollback()
			},
			check: func([]clock.Interval) error {
				return failure.SlotNoLongerAvailable
			},
			wantErr:  failure.SlotNoLongerAvailable,
			wantCode: http.StatusConflict,
		},
		{
			name: "exclusion constraint maps to slot conflict",
			setupMock: func(pool pgxmock.PgxPoolIface) {
				expectLockedRead(pool, busyRows())
				pool.ExpectExec("INSERT INTO reservations").
					WithArgs(insertArgs()...).
					WillReturnError(&pgconn.PgError{Code: "23P01", Message: "conflicting key value violates exclusion constraint"})
				pool.ExpectRollback()
			},
			check:    func([]clock.Interval) error { return nil },
			wantErr:  failure.SlotNoLongerAvailable,
			wantCode: http.StatusConflict,
		},
		{
			name: "other insert errors are wrapped",
			setupMock: func(pool pgxmock.PgxPoolIface) {
				expectLockedRead(pool, busyRows())
				pool.ExpectExec("INSERT INTO reservations").
					WithArgs(insertArgs()...).
					WillReturnError(&pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"})
				pool.ExpectRollback()
			},
			check:    func([]clock.Interval) error { return nil },
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger, pool := newLedger(t)
			tt.setupMock(pool)

			err := ledger.Create(context.Background(), reservation(), tt.check)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantCode != 0:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, failure.SlotNoLongerAvailable)
			default:
				assert.NoError(t, err)
			}

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}

			assert.NoError(t, pool.ExpectationsWereMet())
		})
	}
}

func TestLedger_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		ledger, pool := newLedger(t)

		pool.ExpectQuery("SELECT id::text").WithArgs(reservationID).WillReturnRows(reservationRow("confirmed"))

		got, err := ledger.Get(context.Background(), reservationID)

		require.NoError(t, err)
		assert.Equal(t, model.StatusConfirmed, got.Status)
		assert.Equal(t, monday, got.Date)
		assert.Equal(t, "10:00-10:30", got.Interval().String())
		assert.Equal(t, int64(2500), got.PriceCents)
	})

	t.Run("missing", func(t *testing.T) {
		ledger, pool := newLedger(t)

		pool.ExpectQuery("SELECT id::text").WithArgs(reservationID).WillReturnRows(pgxmock.NewRows(reservationColumns))

		_, err := ledger.Get(context.Background(), reservationID)

		assert.Equal(t, failure.ReasonReservationNotFound, failure.GetReason(err))
	})
}

func TestLedger_Transition(t *testing.T) {
	t.Run("locks the row and updates status", func(t *testing.T) {
		ledger, pool := newLedger(t)
		updatedAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

		pool.ExpectBegin()
		pool.ExpectQuery("FOR UPDATE").WithArgs(reservationID).WillReturnRows(reservationRow("confirmed"))
		pool.ExpectQuery("UPDATE reservations SET status").
			WithArgs(reservationID, "cancelled").
			WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(updatedAt))
		pool.ExpectCommit()

		got, err := ledger.Transition(context.Background(), reservationID, model.StatusCancelled, func(current model.Reservation) error {
			assert.Equal(t, model.StatusConfirmed, current.Status)

			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, model.StatusConfirmed, got.Old)
		assert.Equal(t, model.StatusCancelled, got.New)
		assert.Equal(t, model.StatusCancelled, got.Reservation.Status)
		assert.Equal(t, updatedAt, got.Reservation.UpdatedAt)
		assert.Equal(t, "10:00-10:30", got.Reservation.Interval().String(), "times never change")
		assert.NoError(t, pool.ExpectationsWereMet())
	})

	t.Run("check refuses", func(t *testing.T) {
		ledger, pool := newLedger(t)

		pool.ExpectBegin()
		pool.ExpectQuery("FOR UPDATE").WithArgs(reservationID).WillReturnRows(reservationRow("cancelled"))
		pool.ExpectRollback()

		_, err := ledger.Transition(context.Background(), reservationID, model.StatusCancelled, func(current model.Reservation) error {
			return model.CheckTransition(current, model.StatusCancelled, model.Actor{Role: "admin"})
		})

		assert.Equal(t, failure.ReasonAlreadyTerminal, failure.GetReason(err))
		assert.NoError(t, pool.ExpectationsWereMet())
	})

	t.Run("unknown reservation", func(t *testing.T) {
		ledger, pool := newLedger(t)

		pool.ExpectBegin()
		pool.ExpectQuery("FOR UPDATE").WithArgs(reservationID).WillReturnRows(pgxmock.NewRows(reservationColumns))
		pool.ExpectRollback()

		_, err := ledger.Transition(context.Background(), reservationID, model.StatusCancelled, func(model.Reservation) error { return nil })

		assert.Equal(t, failure.ReasonReservationNotFound, failure.GetReason(err))
		assert.NoError(t, pool.ExpectationsWereMet())
	})
}

func TestLedger_UpdatePayment(t *testing.T) {
	ledger, pool := newLedger(t)
	updatedAt := time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)

	pool.ExpectBegin()
	pool.ExpectQuery("FOR UPDATE").WithArgs(reservationID).WillReturnRows(reservationRow("completed"))
	pool.ExpectQuery("UPDATE reservations SET payment_status").
		WithArgs(reservationID, "paid").
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(updatedAt))
	pool.ExpectCommit()

	got, err := ledger.UpdatePayment(context.Background(), reservationID, model.PaymentPaid, func(model.Reservation) error { return nil })

	require.NoError(t, err)
	assert.Equal(t, model.PaymentPending, got.Old)
	assert.Equal(t, model.PaymentPaid, got.New)
	assert.Equal(t, model.StatusCompleted, got.Reservation.Status)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestLedger_List(t *testing.T) {
	ledger, pool := newLedger(t)

	pool.ExpectQuery("SELECT COUNT").WithArgs("cust-1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))
	pool.ExpectQuery("ORDER BY date DESC, start_time DESC LIMIT").WithArgs("cust-1", 2, 2).
		WillReturnRows(reservationRow("completed"))

	got, total, err := ledger.List(context.Background(), model.Filter{CustomerID: "cust-1", Page: 2, Limit: 2})

	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, got, 1)
	assert.Equal(t, model.StatusCompleted, got[0].Status)
	assert.NoError(t, pool.ExpectationsWereMet())
}
