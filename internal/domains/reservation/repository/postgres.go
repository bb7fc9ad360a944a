package repository

import (
	"context"
	"errors"
	"fmt"
	"salon/infras/otel"
	"salon/internal/domains/reservation/model"
	"salon/shared/clock"
	"salon/shared/constant"
	"salon/shared/failure"
	"salon/shared/logger"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Pool is the subset of *pgxpool.Pool the ledger uses.
type Pool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const (
	queryLock = `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`

	queryBusy = `SELECT start_time::text, end_time::text FROM reservations
WHERE staff_id = $1 AND date = $2::date AND status = ANY($3)
ORDER BY start_time`

	queryInsert = `INSERT INTO reservations (id, customer_id, staff_id, service_id, date, start_time, end_time,
	status, payment_status, payment_method, price_cents, notes, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5::date, $6::time, $7::time, $8, $9, $10, $11, $12, $13, $14, $15)`

	selectColumns = `SELECT id::text, customer_id, staff_id::text, service_id::text, date::text, start_time::text, end_time::text,
	status, payment_status, payment_method, price_cents, notes, created_by, created_at, updated_at
FROM reservations`

	queryUpdateStatus  = `UPDATE reservations SET status = $2, updated_at = now() WHERE id = $1 RETURNING updated_at`
	queryUpdatePayment = `UPDATE reservations SET payment_status = $2, updated_at = now() WHERE id = $1 RETURNING updated_at`
)

type postgresLedger struct {
	pool Pool
	otel otel.Otel
}

func New(pool Pool, otel otel.Otel) Ledger {
	return &postgresLedger{
		pool: pool,
		otel: otel,
	}
}

func (l *postgresLedger) ListBusy(ctx context.Context, staffID string, date time.Time) ([]clock.Interval, error) {
	ctx, scope := l.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.ListBusy")
	defer scope.End()

	res, err := listBusy(ctx, l.pool, staffID, date)
	if err != nil {
		scope.TraceError(err)
	}

	return res, err
}

func listBusy(ctx context.Context, q querier, staffID string, date time.Time) ([]clock.Interval, error) {
	rows, err := q.Query(ctx, queryBusy, staffID, clock.FormatDate(date), busyStatuses())
	if err != nil {
		return nil, fmt.Errorf("failed to list busy intervals: %w", err)
	}
	defer rows.Close()

	res := []clock.Interval{}

	for rows.Next() {
		var start, end string
		if err := rows.Scan(&start, &end); err != nil {
			return nil, fmt.Errorf("failed to scan busy interval: %w", err)
		}

		var interval clock.Interval
		if err := interval.Start.Scan(start); err != nil {
			return nil, err //nolint:wrapcheck
		}

		if err := interval.End.Scan(end); err != nil {
			return nil, err //nolint:wrapcheck
		}

		res = append(res, interval)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read busy intervals: %w", err)
	}

	return res, nil
}

// Create inserts the reservation while holding the transaction scoped advisory lock of its staff and date.
func (l *postgresLedger) Create(ctx context.Context, r model.Reservation, check BusyCheck) (err error) {
	ctx, scope := l.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin reservation transaction: %w", err)
	}
	defer rollback(ctx, tx, &err)

	if _, err = tx.Exec(ctx, queryLock, model.LockKey(r.StaffID, r.Date)); err != nil {
		return fmt.Errorf("failed to lock staff schedule: %w", err)
	}

	busy, err := listBusy(ctx, tx, r.StaffID, r.Date)
	if err != nil {
		return err
	}

	if err = check(busy); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, queryInsert,
		r.ID, r.CustomerID, r.StaffID, r.ServiceID, clock.FormatDate(r.Date), r.StartTime.String(), r.EndTime.String(),
		string(r.Status), string(r.PaymentStatus), r.PaymentMethod, r.PriceCents, r.Notes, r.CreatedBy, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return mapWriteError(err)
	}

	return nil
}

func (l *postgresLedger) Get(ctx context.Context, id string) (res model.Reservation, err error) {
	ctx, scope := l.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return scanReservation(l.pool.QueryRow(ctx, selectColumns+` WHERE id = $1`, id)) //nolint:wrapcheck
}

func (l *postgresLedger) List(ctx context.Context, filter model.Filter) (res []model.Reservation, total int, err error) {
	ctx, scope := l.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	where, args := whereClause(filter)

	if err = l.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reservations`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reservations: %w", err)
	}

	order := ` ORDER BY date ASC, start_time ASC`
	if filter.CustomerID != "" && filter.StaffID == "" {
		order = ` ORDER BY date DESC, start_time DESC`
	}

	query := selectColumns + where + order

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))

		if filter.Page > 1 {
			args = append(args, (filter.Page-1)*filter.Limit)
			query += fmt.Sprintf(" OFFSET $%d", len(args))
		}
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	rows, err := l.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()

	res = []model.Reservation{}

	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, 0, err
		}

		res = append(res, r)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read reservations: %w", err)
	}

	return res, total, nil
}

func (l *postgresLedger) Transition(ctx context.Context, id string, target model.Status, check func(current model.Reservation) error) (res model.Transition[model.Status], err error) {
	ctx, scope := l.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.Transition")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, updatedAt, err := l.lockAndUpdate(ctx, id, queryUpdateStatus, string(target), check)
	if err != nil {
		return res, err
	}

	res.Old = current.Status
	res.New = target
	res.Reservation = current
	res.Reservation.Status = target
	res.Reservation.UpdatedAt = updatedAt

	return res, nil
}

func (l *postgresLedger) UpdatePayment(ctx context.Context, id string, target model.PaymentStatus, check func(current model.Reservation) error) (res model.Transition[model.PaymentStatus], err error) {
	ctx, scope := l.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.UpdatePayment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, updatedAt, err := l.lockAndUpdate(ctx, id, queryUpdatePayment, string(target), check)
	if err != nil {
		return res, err
	}

	res.Old = current.PaymentStatus
	res.New = target
	res.Reservation = current
	res.Reservation.PaymentStatus = target
	res.Reservation.UpdatedAt = updatedAt

	return res, nil
}

// lockAndUpdate holds the row lock across check and update so concurrent changes of one reservation queue up.
func (l *postgresLedger) lockAndUpdate(ctx context.Context, id, update, value string, check func(model.Reservation) error) (current model.Reservation, updatedAt time.Time, err error) {
	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return current, updatedAt, fmt.Errorf("failed to begin reservation transaction: %w", err)
	}
	defer rollback(ctx, tx, &err)

	current, err = scanReservation(tx.QueryRow(ctx, selectColumns+` WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return current, updatedAt, err
	}

	if err = check(current); err != nil {
		return current, updatedAt, err
	}

	if err = tx.QueryRow(ctx, update, id, value).Scan(&updatedAt); err != nil {
		return current, updatedAt, fmt.Errorf("failed to update reservation: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return current, updatedAt, fmt.Errorf("failed to commit reservation update: %w", err)
	}

	return current, updatedAt, nil
}

func scanReservation(row pgx.Row) (model.Reservation, error) {
	var (
		r                 model.Reservation
		date, start, end  string
		status, payStatus string
	)

	err := row.Scan(
		&r.ID, &r.CustomerID, &r.StaffID, &r.ServiceID, &date, &start, &end,
		&status, &payStatus, &r.PaymentMethod, &r.PriceCents, &r.Notes, &r.CreatedBy, &r.CreatedAt, &r.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return r, failure.NotFoundWithReason("reservation not found", failure.ReasonReservationNotFound) //nolint:wrapcheck
	}

	if err != nil {
		return r, fmt.Errorf("failed to scan reservation: %w", err)
	}

	r.Status = model.Status(status)
	r.PaymentStatus = model.PaymentStatus(payStatus)

	if r.Date, err = clock.ParseDate(date); err != nil {
		return r, err
	}

	if err = r.StartTime.Scan(start); err != nil {
		return r, err //nolint:wrapcheck
	}

	if err = r.EndTime.Scan(end); err != nil {
		return r, err //nolint:wrapcheck
	}

	return r, nil
}

func whereClause(filter model.Filter) (string, []any) {
	var (
		conditions []string
		args       []any
	)

	add := func(condition string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter.CustomerID != "" {
		add("customer_id = $%d", filter.CustomerID)
	}

	if filter.StaffID != "" {
		add("staff_id = $%d", filter.StaffID)
	}

	if filter.Date != nil {
		add("date = $%d::date", clock.FormatDate(*filter.Date))
	}

	if filter.Status != "" {
		add("status = $%d", string(filter.Status))
	}

	if len(conditions) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

// mapWriteError turns the exclusion constraint violation into the slot conflict clients can retry on.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == constant.PqErrorCodeExclusionViolation {
		return failure.SlotNoLongerAvailable
	}

	return fmt.Errorf("failed to insert reservation: %w", err)
}

func rollback(ctx context.Context, tx pgx.Tx, err *error) {
	if *err == nil {
		return
	}

	if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
		logger.ErrorWithStack(rbErr)
	}
}
