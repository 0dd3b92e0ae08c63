package dto

import (
	"net/url"
	"strconv"
	"strings"
)

// rangeSuffixes maps query-parameter suffixes to typed filter operators,
// replacing the original's string-substitution query building with an
// explicit whitelist.
var rangeSuffixes = []struct {
	suffix   string
	operator string
}{
	{"_gt", FilterOperatorGreater},
	{"_gte", FilterOperatorGreaterEq},
	{"_lt", FilterOperatorLess},
	{"_lte", FilterOperatorLessEq},
	{"_in", FilterOperatorIn},
}

// EqualityFilterFromQuery appends an equality filter when the field is
// present in the query values.
func EqualityFilterFromQuery(values url.Values, field, table string, filters []any) []any {
	if v := values.Get(field); v != "" {
		filters = append(filters, Filter{
			Field:    field,
			Operator: FilterOperatorEq,
			Value:    v,
			Table:    table,
		})
	}

	return filters
}

// LikeFilterFromQuery appends a case-insensitive substring filter when the
// field is present in the query values.
func LikeFilterFromQuery(values url.Values, field, table string, filters []any) []any {
	if v := values.Get(field); v != "" {
		filters = append(filters, Filter{
			Field:    field,
			Operator: FilterOperatorLike,
			Value:    v,
			Table:    table,
		})
	}

	return filters
}

// RangeFiltersFromQuery appends typed comparison filters for a numeric
// field. The field itself maps to equality; the _gt/_gte/_lt/_lte suffixes
// map to range operators and _in to a membership test over a comma list.
func RangeFiltersFromQuery(values url.Values, field, table string, filters []any) []any {
	if v := values.Get(field); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filters = append(filters, Filter{
				Field:    field,
				Operator: FilterOperatorEq,
				Value:    n,
				Table:    table,
			})
		}
	}

	for _, r := range rangeSuffixes {
		v := values.Get(field + r.suffix)
		if v == "" {
			continue
		}

		if r.operator == FilterOperatorIn {
			members := []any{}

			for _, part := range strings.Split(v, ",") {
				if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
					members = append(members, n)
				}
			}

			if len(members) > 0 {
				filters = append(filters, Filter{
					ArgName:  field + r.suffix,
					Field:    field,
					Operator: FilterOperatorIn,
					Value:    members,
					Table:    table,
				})
			}

			continue
		}

		if n, err := strconv.Atoi(v); err == nil {
			filters = append(filters, Filter{
				ArgName:  field + r.suffix,
				Field:    field,
				Operator: r.operator,
				Value:    n,
				Table:    table,
			})
		}
	}

	return filters
}
