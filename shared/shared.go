package shared

import (
	"context"
	"crypto/sha1" //nolint:gosec
	"encoding/hex"
	"fmt"
	"reflect"
	"salon/shared/cache"
	"salon/shared/constant"
	"salon/shared/dto"
	"salon/shared/timezone"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

// ConvertStringToBool parses an optional boolean query value. Empty or malformed input yields nil,
// which callers treat as "not set".
func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Warn().Err(err).Str("value", value).Msg("ignoring malformed boolean parameter")

		return nil
	}

	return &parsed
}

// CalculateTotalPage returns how many pages of limit rows hold total rows; never less than one.
func CalculateTotalPage(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

// TransformFields maps the non-zero `db` tagged fields of a patch struct to column values and stamps
// the audit columns with the acting user.
func TransformFields(data any, username string) map[string]any {
	val := reflect.ValueOf(data)
	typ := val.Type()

	updatedFields := map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: username,
	}

	for i := range typ.NumField() {
		column := typ.Field(i).Tag.Get("db")
		if column == "" || val.Field(i).IsZero() {
			continue
		}

		updatedFields[column] = val.Field(i).Interface()
	}

	return updatedFields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins a cache prefix and its parts into one redis key.
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// BuildCacheKeyWithQuery derives a stable key for a list query from its params and filters.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()
	raw := fmt.Sprintf("%+v|%s|%v", params, where, args)

	sum := sha1.Sum([]byte(raw)) //nolint:gosec

	return BuildCacheKey(prefix, hex.EncodeToString(sum[:]))
}

// InvalidateCaches removes every key under prefix. Failures are logged, never returned.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
