package repository

import (
	"context"
	"salon/internal/domains/reservation/model"
	"salon/shared/clock"
	"salon/shared/failure"
	"salon/shared/timezone"
	"slices"
	"sync"
	"time"
)

// memoryLedger keeps reservations in process. It serializes writes per (staff, date) with one mutex
// per key, the way the postgres ledger does with advisory locks, and refuses overlapping busy rows
// the way the exclusion constraint does.
type memoryLedger struct {
	mu    sync.RWMutex
	locks map[string]*sync.Mutex
	rows  map[string]model.Reservation
}

// NewMemory returns a Ledger backed by maps, used by tests and local tooling.
func NewMemory() Ledger {
	return &memoryLedger{
		locks: map[string]*sync.Mutex{},
		rows:  map[string]model.Reservation{},
	}
}

func (l *memoryLedger) lock(key string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}

	return m
}

func (l *memoryLedger) ListBusy(_ context.Context, staffID string, date time.Time) ([]clock.Interval, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.busy(staffID, date), nil
}

func (l *memoryLedger) busy(staffID string, date time.Time) []clock.Interval {
	res := []clock.Interval{}

	for _, r := range l.rows {
		if r.StaffID == staffID && r.Date.Equal(date) && r.IsBusy() {
			res = append(res, r.Interval())
		}
	}

	slices.SortFunc(res, func(a, b clock.Interval) int {
		return int(a.Start) - int(b.Start)
	})

	return res
}

func (l *memoryLedger) Create(_ context.Context, r model.Reservation, check BusyCheck) error {
	m := l.lock(model.LockKey(r.StaffID, r.Date))
	m.Lock()
	defer m.Unlock()

	l.mu.RLock()
	busy := l.busy(r.StaffID, r.Date)
	l.mu.RUnlock()

	if err := check(busy); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, b := range l.busy(r.StaffID, r.Date) {
		if b.Overlaps(r.Interval()) {
			return failure.SlotNoLongerAvailable
		}
	}

	l.rows[r.ID] = r

	return nil
}

func (l *memoryLedger) Get(_ context.Context, id string) (model.Reservation, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	r, ok := l.rows[id]
	if !ok {
		return r, failure.NotFoundWithReason("reservation not found", failure.ReasonReservationNotFound) //nolint:wrapcheck
	}

	return r, nil
}

func (l *memoryLedger) List(_ context.Context, filter model.Filter) ([]model.Reservation, int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	res := []model.Reservation{}

	for _, r := range l.rows {
		switch {
		case filter.CustomerID != "" && r.CustomerID != filter.CustomerID:
		case filter.StaffID != "" && r.StaffID != filter.StaffID:
		case filter.Date != nil && !r.Date.Equal(*filter.Date):
		case filter.Status != "" && r.Status != filter.Status:
		default:
			res = append(res, r)
		}
	}

	newestFirst := filter.CustomerID != "" && filter.StaffID == ""

	slices.SortFunc(res, func(a, b model.Reservation) int {
		c := a.Date.Compare(b.Date)
		if c == 0 {
			c = int(a.StartTime) - int(b.StartTime)
		}

		if newestFirst {
			return -c
		}

		return c
	})

	total := len(res)

	if filter.Limit > 0 {
		from := min(max(filter.Page-1, 0)*filter.Limit, total)
		res = res[from:min(from+filter.Limit, total)]
	}

	return res, total, nil
}

func (l *memoryLedger) Transition(_ context.Context, id string, target model.Status, check func(current model.Reservation) error) (model.Transition[model.Status], error) {
	var res model.Transition[model.Status]

	l.mu.Lock()
	defer l.mu.Unlock()

	current, ok := l.rows[id]
	if !ok {
		return res, failure.NotFoundWithReason("reservation not found", failure.ReasonReservationNotFound) //nolint:wrapcheck
	}

	if err := check(current); err != nil {
		return res, err
	}

	updated := current
	updated.Status = target
	updated.UpdatedAt = timezone.Now()
	l.rows[id] = updated

	return model.Transition[model.Status]{Reservation: updated, Old: current.Status, New: target}, nil
}

func (l *memoryLedger) UpdatePayment(_ context.Context, id string, target model.PaymentStatus, check func(current model.Reservation) error) (model.Transition[model.PaymentStatus], error) {
	var res model.Transition[model.PaymentStatus]

	l.mu.Lock()
	defer l.mu.Unlock()

	current, ok := l.rows[id]
	if !ok {
		return res, failure.NotFoundWithReason("reservation not found", failure.ReasonReservationNotFound) //nolint:wrapcheck
	}

	if err := check(current); err != nil {
		return res, err
	}

	updated := current
	updated.PaymentStatus = target
	updated.UpdatedAt = timezone.Now()
	l.rows[id] = updated

	return model.Transition[model.PaymentStatus]{Reservation: updated, Old: current.PaymentStatus, New: target}, nil
}
