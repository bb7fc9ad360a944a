package dto

import (
	"fmt"
	"io"
	"salon/internal/domains/staff/model"
	"salon/shared"
	gDto "salon/shared/dto"
	"salon/shared/failure"
	gModel "salon/shared/model"
	"salon/shared/timezone"
	"slices"

	"github.com/google/uuid"
)

type CreateStaffRequest struct {
	UserID          string   `json:"user_id"          validate:"omitempty,max=64"`
	DisplayName     string   `json:"display_name"     validate:"required,max=100"`
	Specialty       string   `json:"specialty"        validate:"omitempty,max=100"`
	Bio             string   `json:"bio"              validate:"omitempty,max=1000"`
	ExperienceYears int      `json:"experience_years" validate:"min=0,max=80"`
	PhotoURL        string   `json:"photo_url"        validate:"omitempty,url"`
	IsActive        *bool    `json:"is_active"        validate:"omitempty"`
	ServiceIDs      []string `json:"service_ids"      validate:"omitempty,dive,uuid"`
}

func (c *CreateStaffRequest) ToModel(user string) model.Staff {
	now := timezone.Now()

	active := true
	if c.IsActive != nil {
		active = *c.IsActive
	}

	return model.Staff{
		ID:              uuid.NewString(),
		UserID:          c.UserID,
		DisplayName:     c.DisplayName,
		Specialty:       c.Specialty,
		Bio:             c.Bio,
		ExperienceYears: c.ExperienceYears,
		PhotoURL:        c.PhotoURL,
		IsActive:        active,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateStaffRequest struct {
	UserID          string `db:"user_id"          json:"user_id"          validate:"omitempty,max=64"`
	DisplayName     string `db:"display_name"     json:"display_name"     validate:"omitempty,max=100"`
	Specialty       string `db:"specialty"        json:"specialty"        validate:"omitempty,max=100"`
	Bio             string `db:"bio"              json:"bio"              validate:"omitempty,max=1000"`
	ExperienceYears *int   `db:"experience_years" json:"experience_years" validate:"omitempty,min=0,max=80"`
	PhotoURL        string `db:"photo_url"        json:"photo_url"        validate:"omitempty,url"`
	IsActive        *bool  `db:"is_active"        json:"is_active"        validate:"omitempty"`
}

func (u UpdateStaffRequest) IsEmpty() bool {
	return u.UserID == "" && u.DisplayName == "" && u.Specialty == "" && u.Bio == "" &&
		u.ExperienceYears == nil && u.PhotoURL == "" && u.IsActive == nil
}

type AssignServicesRequest struct {
	ServiceIDs []string `json:"service_ids" validate:"dive,uuid"`
}

type StaffResponse struct {
	ID                 string   `json:"id"`
	UserID             string   `json:"user_id,omitempty"`
	DisplayName        string   `json:"display_name"`
	Specialty          string   `json:"specialty,omitempty"`
	Bio                string   `json:"bio,omitempty"`
	ExperienceYears    int      `json:"experience_years"`
	PhotoURL           string   `json:"photo_url,omitempty"`
	IsActive           bool     `json:"is_active"`
	AssignedServiceIDs []string `json:"assigned_service_ids"`
	gDto.Metadata
}

func (r *StaffResponse) FromModel(m model.Staff, serviceIDs []string) {
	r.ID = m.ID
	r.UserID = m.UserID
	r.DisplayName = m.DisplayName
	r.Specialty = m.Specialty
	r.Bio = m.Bio
	r.ExperienceYears = m.ExperienceYears
	r.PhotoURL = m.PhotoURL
	r.IsActive = m.IsActive
	r.AssignedServiceIDs = serviceIDs

	if r.AssignedServiceIDs == nil {
		r.AssignedServiceIDs = []string{}
	}

	r.Metadata.FromModel(m.Metadata)
}

// Performs reports whether the staff member is assigned to the service.
func (r StaffResponse) Performs(serviceID string) bool {
	return slices.Contains(r.AssignedServiceIDs, serviceID)
}

type GetStaffResponse struct {
	Staff     []StaffResponse `json:"staff"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetStaffResponse) FromModels(models []model.Staff, assignments map[string][]string, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Staff = make([]StaffResponse, len(models))
	for i, mod := range models {
		r.Staff[i].FromModel(mod, assignments[mod.ID])
	}
}

var photoExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/webp": ".webp",
}

type UploadPhotoRequest struct {
	Photo       io.Reader
	ContentType string
	Size        int64
}

// Validate checks the photo type and size against maxBytes and returns the file extension to store it under.
func (u UploadPhotoRequest) Validate(maxBytes int64) (string, error) {
	ext, ok := photoExtensions[u.ContentType]
	if !ok {
		return "", failure.BadRequestFromString("photo must be a png, jpeg or webp image") //nolint:wrapcheck
	}

	if u.Size <= 0 || u.Size > maxBytes {
		return "", failure.BadRequestFromString(fmt.Sprintf("photo must be between 1 and %d bytes", maxBytes)) //nolint:wrapcheck
	}

	return ext, nil
}

type PhotoResponse struct {
	PhotoURL string `json:"photo_url"`
}
