package shared_test

import (
	"context"
	"errors"
	"salon/shared"
	cacheMocks "salon/shared/cache/mocks"
	"salon/shared/constant"
	"salon/shared/dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *bool
	}{
		{name: "true", input: "true", want: boolPtr(true)},
		{name: "numeric false", input: "0", want: boolPtr(false)},
		{name: "upper case", input: "TRUE", want: boolPtr(true)},
		{name: "empty means unset", input: "", want: nil},
		{name: "garbage means unset", input: "yes please", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{name: "no reservations still has one page", total: 0, limit: 10, want: 1},
		{name: "exact pages", total: 30, limit: 10, want: 3},
		{name: "partial last page", total: 31, limit: 10, want: 4},
		{name: "fewer than limit", total: 4, limit: 10, want: 1},
		{name: "zero limit", total: 12, limit: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

type serviceUpdate struct {
	Name            string `db:"name"`
	Category        string `db:"category"`
	CashPriceCents  *int64 `db:"cash_price_cents"`
	DurationMinutes int    `db:"duration_minutes"`
	IsActive        *bool  `db:"is_active"`
	Note            string
}

func TestTransformFields(t *testing.T) {
	zero := int64(0)

	tests := []struct {
		name string
		data serviceUpdate
		want map[string]any
	}{
		{
			name: "only set fields are updated",
			data: serviceUpdate{Name: "Beard trim", DurationMinutes: 30, Note: "untagged"},
			want: map[string]any{"name": "Beard trim", "duration_minutes": 30},
		},
		{
			name: "pointer to zero is an explicit update",
			data: serviceUpdate{CashPriceCents: &zero, IsActive: boolPtr(false)},
			want: map[string]any{"cash_price_cents": &zero, "is_active": boolPtr(false)},
		},
		{
			name: "empty request only touches metadata",
			data: serviceUpdate{},
			want: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shared.TransformFields(tt.data, "receptionist-1")

			assert.IsType(t, time.Time{}, got[constant.FieldModifiedAt])
			assert.Equal(t, "receptionist-1", got[constant.FieldModifiedBy])

			delete(got, constant.FieldModifiedAt)
			delete(got, constant.FieldModifiedBy)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("r-1", "id", "reservations")

	require.Len(t, filter.Filters, 1)
	assert.Equal(t, dto.Filter{
		Field:    "id",
		Value:    "r-1",
		Operator: dto.FilterOperatorEq,
		Table:    "reservations",
	}, filter.Filters[0])

	where, args := filter.GetWhereClause()
	assert.Equal(t, "(reservations.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "r-1"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "staff:get:s-1", shared.BuildCacheKey("staff:get", "s-1"))
	assert.Equal(t, "services:gets", shared.BuildCacheKey("services:gets"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	active := dto.FilterGroup{Filters: []any{dto.Filter{Field: "is_active", Value: true, Operator: dto.FilterOperatorEq, Table: "services"}}}

	first := shared.BuildCacheKeyWithQuery("services:gets", params, active)

	assert.Equal(t, first, shared.BuildCacheKeyWithQuery("services:gets", params, active), "same query gives the same key")
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("services:gets", dto.QueryParams{Page: 2, Limit: 10}, active))
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("services:gets", params, dto.FilterGroup{}))
	assert.Regexp(t, `^services:gets:[0-9a-f]{40}$`, first)
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "staff:gets*").Return(nil)
	mockCache.EXPECT().Clear(gomock.Any(), "staff:count*").Return(errors.New("redis down"))

	shared.InvalidateCaches(context.Background(), mockCache, "staff:gets")
	shared.InvalidateCaches(context.Background(), mockCache, "staff:count")
}

func boolPtr(b bool) *bool {
	return &b
}
