package dto

import (
	"salon/shared/constant"
	"salon/shared/model"
	"salon/shared/timezone"
	"time"
)

// Metadata is the audit block rendered on every catalog, staff and schedule response.
// Timestamps are RFC 3339 in the salon timezone; a zero time renders as "".
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by"`
}

func (m *Metadata) FromModel(src model.Metadata) {
	*m = Metadata{
		CreatedAt:  stamp(src.CreatedAt),
		ModifiedAt: stamp(src.ModifiedAt),
		CreatedBy:  src.CreatedBy,
		ModifiedBy: src.ModifiedBy,
	}
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return timezone.Format(t, constant.DateFormat)
}
