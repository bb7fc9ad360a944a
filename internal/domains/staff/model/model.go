package model

import (
	"salon/shared/model"
)

const (
	TableName  = "staff"
	EntityName = "staff"

	FieldID              = "id"
	FieldUserID          = "user_id"
	FieldDisplayName     = "display_name"
	FieldSpecialty       = "specialty"
	FieldBio             = "bio"
	FieldExperienceYears = "experience_years"
	FieldPhotoURL        = "photo_url"
	FieldIsActive        = "is_active"

	DefaultOrder = TableName + "." + FieldDisplayName + " ASC"
)

const (
	AssignmentTableName  = "staff_services"
	AssignmentEntityName = "staff_service"

	FieldStaffID   = "staff_id"
	FieldServiceID = "service_id"
)

type Staff struct {
	ID              string `db:"id"`
	UserID          string `db:"user_id"`
	DisplayName     string `db:"display_name"`
	Specialty       string `db:"specialty"`
	Bio             string `db:"bio"`
	ExperienceYears int    `db:"experience_years"`
	PhotoURL        string `db:"photo_url"`
	IsActive        bool   `db:"is_active"`
	model.Metadata
}

// Assignment links a staff member to a service they perform.
type Assignment struct {
	StaffID   string `db:"staff_id"`
	ServiceID string `db:"service_id"`
}
