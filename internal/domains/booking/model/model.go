package model

import (
	"time"
)

const (
	EventReservationCreated        = "booking.reservation.created.v1"
	EventReservationStatusChanged  = "booking.reservation.status_changed.v1"
	EventReservationPaymentChanged = "booking.reservation.payment_changed.v1"
)

// Event is a fact about a committed reservation. Key orders events of one reservation on a partition.
type Event struct {
	Key     string
	Type    string
	Payload any
	Created time.Time
}

type ReservationCreated struct {
	ReservationID string `json:"reservationId"`
	CustomerID    string `json:"customerId"`
	ServiceID     string `json:"serviceId"`
	PriceCents    int64  `json:"priceCents"`
}

type ReservationStatusChanged struct {
	ReservationID string `json:"reservationId"`
	OldStatus     string `json:"oldStatus"`
	NewStatus     string `json:"newStatus"`
}

type ReservationPaymentChanged struct {
	ReservationID    string `json:"reservationId"`
	OldPaymentStatus string `json:"oldPaymentStatus"`
	NewPaymentStatus string `json:"newPaymentStatus"`
}

func NewReservationCreated(payload ReservationCreated, at time.Time) Event {
	return Event{Key: payload.ReservationID, Type: EventReservationCreated, Payload: payload, Created: at}
}

func NewReservationStatusChanged(payload ReservationStatusChanged, at time.Time) Event {
	return Event{Key: payload.ReservationID, Type: EventReservationStatusChanged, Payload: payload, Created: at}
}

func NewReservationPaymentChanged(payload ReservationPaymentChanged, at time.Time) Event {
	return Event{Key: payload.ReservationID, Type: EventReservationPaymentChanged, Payload: payload, Created: at}
}
