package dto

import (
	"net/http"
	"salon/shared/constant"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
	Search  string `json:"search"   validate:"omitempty,max=100"`
}

// FromRequest reads page, limit, sort_by, sort_dir and search from the query string.
// With withDefaults the first page of DefaultValueLimit rows is used when paging is absent.
// Limit is capped at MaxValueLimit either way.
func (q *QueryParams) FromRequest(r *http.Request, withDefaults bool) {
	query := r.URL.Query()

	q.Page = positiveInt(query.Get(constant.RequestParamPage), q.Page)
	q.Limit = min(positiveInt(query.Get(constant.RequestParamLimit), q.Limit), constant.MaxValueLimit)

	if sortBy := query.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	if sortDir := strings.ToUpper(query.Get(constant.RequestParamSortDir)); sortDir == SortDirAsc || sortDir == SortDirDesc {
		q.SortDir = sortDir
	}

	if search := strings.TrimSpace(query.Get(constant.RequestParamSearch)); search != "" {
		q.Search = search
	}

	if !withDefaults {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}
}

func positiveInt(value string, fallback int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}

	return n
}
