package dto

import (
	"fmt"
	"maps"
	"strings"
)

const (
	FilterOperatorEq   = "eq"
	FilterOperatorLike = "like"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Filter is one named-parameter condition on a column. Table qualifies the column for joined queries.
// ArgName defaults to Field and must be unique across a FilterGroup.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq like"`
	Table    string
}

// GetWhereClause renders the condition. Like matches a case-insensitive substring, with the
// caller's own wildcards escaped. Unknown operators render nothing.
func (f *Filter) GetWhereClause() (string, map[string]any) {
	column := f.Field
	if f.Table != "" {
		column = f.Table + "." + f.Field
	}

	arg := f.ArgName
	if arg == "" {
		arg = f.Field
	}

	switch f.Operator {
	case FilterOperatorEq:
		return column + " = :" + arg, map[string]any{arg: f.Value}
	case FilterOperatorLike:
		pattern := "%" + likeEscaper.Replace(fmt.Sprint(f.Value)) + "%"

		return "LOWER(" + column + ") LIKE LOWER(:" + arg + ")", map[string]any{arg: pattern}
	default:
		return "", map[string]any{}
	}
}

// FilterGroup joins Filters, each a Filter or a nested FilterGroup, with Operator. An empty
// Operator means AND.
type FilterGroup struct {
	Filters  []any
	Operator string
}

type whereClauser interface {
	GetWhereClause() (string, map[string]any)
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	parts := make([]string, 0, len(f.Filters))

	for _, item := range f.Filters {
		var clauser whereClauser

		switch v := item.(type) {
		case Filter:
			clauser = &v
		case FilterGroup:
			clauser = &v
		default:
			continue
		}

		where, arg := clauser.GetWhereClause()
		if where == "" {
			continue
		}

		parts = append(parts, where)
		maps.Copy(args, arg)
	}

	if len(parts) == 0 {
		return "", args
	}

	op := f.Operator
	if op == "" {
		op = FilterGroupOperatorAnd
	}

	return "(" + strings.Join(parts, " "+op+" ") + ")", args
}
