package model

import (
	"salon/shared/clock"
	"time"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// BusyStatuses are the statuses that occupy a staff member's time.
var BusyStatuses = []Status{StatusConfirmed, StatusCompleted}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
)

type Reservation struct {
	ID            string
	CustomerID    string
	StaffID       string
	ServiceID     string
	Date          time.Time
	StartTime     clock.TimeOfDay
	EndTime       clock.TimeOfDay
	Status        Status
	PaymentStatus PaymentStatus
	PaymentMethod string
	PriceCents    int64
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r Reservation) Interval() clock.Interval {
	return clock.Interval{Start: r.StartTime, End: r.EndTime}
}

// IsBusy reports whether the reservation blocks its interval.
func (r Reservation) IsBusy() bool {
	return r.Status == StatusConfirmed || r.Status == StatusCompleted
}

// LockKey identifies the (staff, date) pair whose bookings are serialized.
func LockKey(staffID string, date time.Time) string {
	return staffID + "|" + clock.FormatDate(date)
}

// Filter selects reservations for listing. Empty fields match everything.
type Filter struct {
	CustomerID string
	StaffID    string
	Date       *time.Time
	Status     Status
	Page       int
	Limit      int
}

// Transition is the outcome of a successful status or payment change.
type Transition[T ~string] struct {
	Reservation Reservation
	Old         T
	New         T
}
