package dto

import (
	"salon/internal/domains/availability/calculator"
)

type GetSlotsRequest struct {
	StaffID   string `validate:"required,uuid"`
	ServiceID string `validate:"required,uuid"`
	Date      string `validate:"required,date"`
}

type SlotsResponse struct {
	StaffID         string            `json:"staff_id"`
	ServiceID       string            `json:"service_id"`
	Date            string            `json:"date"`
	DurationMinutes int               `json:"duration_minutes"`
	Slots           []calculator.Slot `json:"slots"`
}
