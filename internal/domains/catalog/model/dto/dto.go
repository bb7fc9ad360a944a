package dto

import (
	"salon/internal/domains/catalog/model"
	"salon/shared"
	gDto "salon/shared/dto"
	gModel "salon/shared/model"
	"salon/shared/timezone"

	"github.com/google/uuid"
)

type CreateServiceRequest struct {
	Name            string `json:"name"             validate:"required,max=100"`
	Category        string `json:"category"         validate:"required,oneof=men women"`
	CashPriceCents  int64  `json:"cash_price_cents" validate:"min=0"`
	CardPriceCents  int64  `json:"card_price_cents" validate:"min=0"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=1,max=1440"`
	IsActive        *bool  `json:"is_active"        validate:"omitempty"`
}

func (c *CreateServiceRequest) ToModel(user string) model.Service {
	now := timezone.Now()

	active := true
	if c.IsActive != nil {
		active = *c.IsActive
	}

	return model.Service{
		ID:              uuid.NewString(),
		Name:            c.Name,
		Category:        c.Category,
		CashPriceCents:  c.CashPriceCents,
		CardPriceCents:  c.CardPriceCents,
		DurationMinutes: c.DurationMinutes,
		IsActive:        active,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateServiceRequest struct {
	Name            string `db:"name"             json:"name"             validate:"omitempty,max=100"`
	Category        string `db:"category"         json:"category"         validate:"omitempty,oneof=men women"`
	CashPriceCents  *int64 `db:"cash_price_cents" json:"cash_price_cents" validate:"omitempty,min=0"`
	CardPriceCents  *int64 `db:"card_price_cents" json:"card_price_cents" validate:"omitempty,min=0"`
	DurationMinutes int    `db:"duration_minutes" json:"duration_minutes" validate:"omitempty,min=1,max=1440"`
	IsActive        *bool  `db:"is_active"        json:"is_active"        validate:"omitempty"`
}

func (u UpdateServiceRequest) IsEmpty() bool {
	return u.Name == "" && u.Category == "" && u.CashPriceCents == nil && u.CardPriceCents == nil &&
		u.DurationMinutes == 0 && u.IsActive == nil
}

type ServiceResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	CashPriceCents  int64  `json:"cash_price_cents"`
	CardPriceCents  int64  `json:"card_price_cents"`
	DurationMinutes int    `json:"duration_minutes"`
	IsActive        bool   `json:"is_active"`
	gDto.Metadata
}

func (r *ServiceResponse) FromModel(m model.Service) {
	r.ID = m.ID
	r.Name = m.Name
	r.Category = m.Category
	r.CashPriceCents = m.CashPriceCents
	r.CardPriceCents = m.CardPriceCents
	r.DurationMinutes = m.DurationMinutes
	r.IsActive = m.IsActive
	r.Metadata.FromModel(m.Metadata)
}

// Price mirrors model.Service.Price for callers that only hold the response.
func (r ServiceResponse) Price(paymentMethod string) int64 {
	return model.Service{CashPriceCents: r.CashPriceCents, CardPriceCents: r.CardPriceCents}.Price(paymentMethod)
}

type GetServicesResponse struct {
	Services  []ServiceResponse `json:"services"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetServicesResponse) FromModels(models []model.Service, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Services = make([]ServiceResponse, len(models))
	for i, mod := range models {
		r.Services[i].FromModel(mod)
	}
}
