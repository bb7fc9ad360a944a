package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"salon/internal/domains/reservation/model"
	"salon/shared/clock"
	"time"
)

// BusyCheck inspects the busy intervals seen under the booking lock and rejects the insert by returning an error.
type BusyCheck func(busy []clock.Interval) error

// Ledger is the reservation store. Writes on one (staff, date) pair are serialized.
type Ledger interface {
	ListBusy(ctx context.Context, staffID string, date time.Time) ([]clock.Interval, error)
	Create(ctx context.Context, reservation model.Reservation, check BusyCheck) error
	Get(ctx context.Context, id string) (model.Reservation, error)
	List(ctx context.Context, filter model.Filter) ([]model.Reservation, int, error)
	// Transition locks the row, runs check against its current state and then writes target.
	Transition(ctx context.Context, id string, target model.Status, check func(current model.Reservation) error) (model.Transition[model.Status], error)
	UpdatePayment(ctx context.Context, id string, target model.PaymentStatus, check func(current model.Reservation) error) (model.Transition[model.PaymentStatus], error)
}

func busyStatuses() []string {
	res := make([]string, len(model.BusyStatuses))
	for i, s := range model.BusyStatuses {
		res[i] = string(s)
	}

	return res
}
