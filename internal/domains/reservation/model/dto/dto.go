package dto

import (
	"salon/internal/domains/reservation/model"
	"salon/shared"
	"salon/shared/clock"
	"time"
)

type CreateReservationRequest struct {
	CustomerID    string `json:"customer_id"    validate:"omitempty,max=64"`
	StaffID       string `json:"staff_id"       validate:"required,uuid"`
	ServiceID     string `json:"service_id"     validate:"required,uuid"`
	Date          string `json:"date"           validate:"required,date"`
	StartTime     string `json:"start_time"     validate:"required,hhmm"`
	EndTime       string `json:"end_time"       validate:"required,hhmm"`
	Notes         string `json:"notes"          validate:"omitempty,max=500"`
	PaymentMethod string `json:"payment_method" validate:"omitempty,oneof=cash card"`
}

type UpdateStatusRequest struct {
	Status model.Status `json:"status" validate:"required"`
}

type UpdatePaymentRequest struct {
	PaymentStatus model.PaymentStatus `json:"payment_status" validate:"required"`
}

type ListReservationsRequest struct {
	CustomerID string
	StaffID    string `validate:"omitempty,uuid"`
	Date       string `validate:"omitempty,date"`
	Status     string `validate:"omitempty,oneof=confirmed completed cancelled no_show"`
	Page       int
	Limit      int
}

func (l ListReservationsRequest) ToFilter() (model.Filter, error) {
	filter := model.Filter{
		CustomerID: l.CustomerID,
		StaffID:    l.StaffID,
		Status:     model.Status(l.Status),
		Page:       l.Page,
		Limit:      l.Limit,
	}

	if l.Date != "" {
		date, err := clock.ParseDate(l.Date)
		if err != nil {
			return filter, err
		}

		filter.Date = &date
	}

	return filter, nil
}

type ReservationResponse struct {
	ID            string              `json:"id"`
	CustomerID    string              `json:"customer_id"`
	StaffID       string              `json:"staff_id"`
	ServiceID     string              `json:"service_id"`
	Date          string              `json:"date"`
	StartTime     clock.TimeOfDay     `json:"start_time"`
	EndTime       clock.TimeOfDay     `json:"end_time"`
	Status        model.Status        `json:"status"`
	PaymentStatus model.PaymentStatus `json:"payment_status"`
	PaymentMethod string              `json:"payment_method"`
	PriceCents    int64               `json:"price_cents"`
	Notes         string              `json:"notes,omitempty"`
	CreatedBy     string              `json:"created_by"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func (r *ReservationResponse) FromModel(m model.Reservation) {
	r.ID = m.ID
	r.CustomerID = m.CustomerID
	r.StaffID = m.StaffID
	r.ServiceID = m.ServiceID
	r.Date = clock.FormatDate(m.Date)
	r.StartTime = m.StartTime
	r.EndTime = m.EndTime
	r.Status = m.Status
	r.PaymentStatus = m.PaymentStatus
	r.PaymentMethod = m.PaymentMethod
	r.PriceCents = m.PriceCents
	r.Notes = m.Notes
	r.CreatedBy = m.CreatedBy
	r.CreatedAt = m.CreatedAt
	r.UpdatedAt = m.UpdatedAt
}

type StatusChangeResponse struct {
	ReservationID string              `json:"reservation_id"`
	OldStatus     model.Status        `json:"old_status"`
	NewStatus     model.Status        `json:"new_status"`
	Reservation   ReservationResponse `json:"reservation"`
}

func (s *StatusChangeResponse) FromTransition(t model.Transition[model.Status]) {
	s.ReservationID = t.Reservation.ID
	s.OldStatus = t.Old
	s.NewStatus = t.New
	s.Reservation.FromModel(t.Reservation)
}

type PaymentChangeResponse struct {
	ReservationID    string              `json:"reservation_id"`
	OldPaymentStatus model.PaymentStatus `json:"old_payment_status"`
	NewPaymentStatus model.PaymentStatus `json:"new_payment_status"`
}

func (p *PaymentChangeResponse) FromTransition(t model.Transition[model.PaymentStatus]) {
	p.ReservationID = t.Reservation.ID
	p.OldPaymentStatus = t.Old
	p.NewPaymentStatus = t.New
}

type ListReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (l *ListReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	l.TotalData = totalData
	l.TotalPage = shared.CalculateTotalPage(totalData, limit)

	l.Reservations = make([]ReservationResponse, len(models))
	for i, m := range models {
		l.Reservations[i].FromModel(m)
	}
}
