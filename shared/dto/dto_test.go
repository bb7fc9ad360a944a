package dto_test

import (
	"net/http/httptest"
	"salon/shared/constant"
	"salon/shared/dto"
	"salon/shared/model"
	"salon/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2026, 3, 2, 17, 30, 0, 0, time.UTC)

	var metadata dto.Metadata
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "admin-1",
		ModifiedBy: "receptionist-2",
	})

	assert.Equal(t, timezone.Format(createdAt, constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, timezone.Format(modifiedAt, constant.DateFormat), metadata.ModifiedAt)
	assert.Equal(t, "admin-1", metadata.CreatedBy)
	assert.Equal(t, "receptionist-2", metadata.ModifiedBy)

	metadata.FromModel(model.Metadata{CreatedAt: createdAt, CreatedBy: "admin-1"})
	assert.Empty(t, metadata.ModifiedAt, "zero timestamps are left blank")
	assert.Empty(t, metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		withDefaults bool
		want         dto.QueryParams
	}{
		{
			name:         "all parameters",
			query:        "page=2&limit=20&sort_by=name&sort_dir=asc&search=%20cut%20",
			withDefaults: true,
			want:         dto.QueryParams{Page: 2, Limit: 20, SortBy: "name", SortDir: dto.SortDirAsc, Search: "cut"},
		},
		{
			name:         "defaults applied",
			withDefaults: true,
			want:         dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:  "no defaults",
			query: "sort_dir=DESC",
			want:  dto.QueryParams{SortDir: dto.SortDirDesc},
		},
		{
			name:         "invalid numbers fall back",
			query:        "page=-1&limit=abc",
			withDefaults: true,
			want:         dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:         "limit capped",
			query:        "limit=5000",
			withDefaults: true,
			want:         dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.MaxValueLimit},
		},
		{
			name:  "unknown sort direction ignored",
			query: "sort_dir=sideways",
			want:  dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/services?"+tt.query, nil)

			var got dto.QueryParams
			got.FromRequest(req, tt.withDefaults)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		group     dto.FilterGroup
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "empty",
			group:     dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
		{
			name: "active services",
			group: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{Field: "is_active", Value: true, Operator: dto.FilterOperatorEq, Table: "services"},
				},
			},
			wantWhere: "(services.is_active = :is_active)",
			wantArgs:  map[string]any{"is_active": true},
		},
		{
			name: "active staff matching a search",
			group: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{Field: "is_active", Value: true, Operator: dto.FilterOperatorEq, Table: "staff"},
					dto.FilterGroup{
						Operator: dto.FilterGroupOperatorOr,
						Filters: []any{
							dto.Filter{ArgName: "search_name", Field: "display_name", Value: "ann", Operator: dto.FilterOperatorLike, Table: "staff"},
							dto.Filter{ArgName: "search_specialty", Field: "specialty", Value: "ann", Operator: dto.FilterOperatorLike, Table: "staff"},
						},
					},
				},
			},
			wantWhere: "(staff.is_active = :is_active AND (LOWER(staff.display_name) LIKE LOWER(:search_name) OR LOWER(staff.specialty) LIKE LOWER(:search_specialty)))",
			wantArgs:  map[string]any{"is_active": true, "search_name": "%ann%", "search_specialty": "%ann%"},
		},
		{
			name: "missing operator joins with AND",
			group: dto.FilterGroup{
				Filters: []any{
					dto.Filter{Field: "staff_id", Value: "s-1", Operator: dto.FilterOperatorEq},
					dto.Filter{Field: "day_of_week", Value: 1, Operator: dto.FilterOperatorEq},
				},
			},
			wantWhere: "(staff_id = :staff_id AND day_of_week = :day_of_week)",
			wantArgs:  map[string]any{"staff_id": "s-1", "day_of_week": 1},
		},
		{
			name: "like escapes wildcards",
			group: dto.FilterGroup{
				Filters: []any{
					dto.Filter{Field: "name", Value: "50%_off", Operator: dto.FilterOperatorLike},
				},
			},
			wantWhere: "(LOWER(name) LIKE LOWER(:name))",
			wantArgs:  map[string]any{"name": `%50\%\_off%`},
		},
		{
			name: "unknown operator and foreign items are skipped",
			group: dto.FilterGroup{
				Filters: []any{
					dto.Filter{Field: "name", Value: "x", Operator: "gt"},
					"not a filter",
					dto.Filter{Field: "is_active", Value: true, Operator: dto.FilterOperatorEq},
				},
			},
			wantWhere: "(is_active = :is_active)",
			wantArgs:  map[string]any{"is_active": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.group.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
