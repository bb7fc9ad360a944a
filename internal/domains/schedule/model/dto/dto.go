package dto

import (
	"salon/internal/domains/schedule/model"
	"salon/shared/clock"
	gModel "salon/shared/model"
	"salon/shared/timezone"

	"github.com/google/uuid"
)

type UpsertWorkingHoursRequest struct {
	StartTime string `json:"start_time" validate:"required,hhmm"`
	EndTime   string `json:"end_time"   validate:"required,hhmm"`
	IsActive  *bool  `json:"is_active"  validate:"omitempty"`
}

// ToModel validates the window and builds the row for staffID on day.
func (u UpsertWorkingHoursRequest) ToModel(staffID string, day int, user string) (model.WorkingHours, error) {
	window, err := clock.ParseInterval(u.StartTime, u.EndTime)
	if err != nil {
		return model.WorkingHours{}, err
	}

	active := true
	if u.IsActive != nil {
		active = *u.IsActive
	}

	now := timezone.Now()

	return model.WorkingHours{
		ID:        uuid.NewString(),
		StaffID:   staffID,
		DayOfWeek: day,
		StartTime: window.Start,
		EndTime:   window.End,
		IsActive:  active,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type WorkingHoursResponse struct {
	StaffID   string          `json:"staff_id"`
	DayOfWeek int             `json:"day_of_week"`
	StartTime clock.TimeOfDay `json:"start_time"`
	EndTime   clock.TimeOfDay `json:"end_time"`
	IsActive  bool            `json:"is_active"`
}

func (r *WorkingHoursResponse) FromModel(m model.WorkingHours) {
	r.StaffID = m.StaffID
	r.DayOfWeek = m.DayOfWeek
	r.StartTime = m.StartTime
	r.EndTime = m.EndTime
	r.IsActive = m.IsActive
}

func (r WorkingHoursResponse) Window() clock.Interval {
	return clock.Interval{Start: r.StartTime, End: r.EndTime}
}

func FromModels(models []model.WorkingHours) []WorkingHoursResponse {
	res := make([]WorkingHoursResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	return res
}
