package model

import (
	"salon/shared/clock"
	"salon/shared/model"
)

const (
	TableName  = "working_hours"
	EntityName = "working_hours"

	FieldID        = "id"
	FieldStaffID   = "staff_id"
	FieldDayOfWeek = "day_of_week"
	FieldStartTime = "start_time"
	FieldEndTime   = "end_time"
	FieldIsActive  = "is_active"

	DefaultOrder = TableName + "." + FieldDayOfWeek + " ASC"
)

// WorkingHours is the single shift of a staff member on one weekday, 0 being Sunday.
type WorkingHours struct {
	ID        string          `db:"id"`
	StaffID   string          `db:"staff_id"`
	DayOfWeek int             `db:"day_of_week"`
	StartTime clock.TimeOfDay `db:"start_time"`
	EndTime   clock.TimeOfDay `db:"end_time"`
	IsActive  bool            `db:"is_active"`
	model.Metadata
}

func (w WorkingHours) Window() clock.Interval {
	return clock.Interval{Start: w.StartTime, End: w.EndTime}
}
