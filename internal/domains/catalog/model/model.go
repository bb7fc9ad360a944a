package model

import (
	"salon/shared/model"
)

const (
	TableName  = "services"
	EntityName = "service"

	FieldID              = "id"
	FieldName            = "name"
	FieldCategory        = "category"
	FieldCashPriceCents  = "cash_price_cents"
	FieldCardPriceCents  = "card_price_cents"
	FieldDurationMinutes = "duration_minutes"
	FieldIsActive        = "is_active"

	DefaultOrder = TableName + "." + FieldCategory + " ASC, " + TableName + "." + FieldName + " ASC"
)

const (
	CategoryMen   = "men"
	CategoryWomen = "women"
)

const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
)

type Service struct {
	ID              string `db:"id"`
	Name            string `db:"name"`
	Category        string `db:"category"`
	CashPriceCents  int64  `db:"cash_price_cents"`
	CardPriceCents  int64  `db:"card_price_cents"`
	DurationMinutes int    `db:"duration_minutes"`
	IsActive        bool   `db:"is_active"`
	model.Metadata
}

// Price returns the price charged for the given payment method. Anything but card pays the cash price.
func (s Service) Price(paymentMethod string) int64 {
	if paymentMethod == PaymentMethodCard {
		return s.CardPriceCents
	}

	return s.CashPriceCents
}
