package handler

import (
	"fmt"
	"net/url"

	"github.com/oapi-codegen/runtime"

	"github.com/dingeldeiner/whitebook/internal/domain"
)

// facetParams maps repeatable query parameters to the columns they filter.
var facetParams = []struct {
	name   string
	column domain.Column
}{
	{"body_type", domain.ColumnBodyType},
	{"make", domain.ColumnMake},
	{"model", domain.ColumnModel},
	{"drivetrain", domain.ColumnDrivetrain},
	{"transmission", domain.ColumnTransmission},
	{"fuel_type", domain.ColumnFuelType},
}

// rangeParams maps min/max query parameter pairs to the columns they bound.
var rangeParams = []struct {
	min, max string
	column   domain.Column
}{
	{"year_min", "year_max", domain.ColumnYear},
	{"km_min", "km_max", domain.ColumnKilometers},
	{"price_min", "price_max", domain.ColumnPrice},
}

// parseSelections binds the selection query parameters into a SelectionSet in
// facet order. Absent parameters yield NoFilter selections.
// Returns domain.ErrValidation for a non-integer range bound.
func parseSelections(q url.Values) (domain.SelectionSet, error) {
	sels := make(domain.SelectionSet, 0, len(facetParams)+len(rangeParams))

	for _, p := range facetParams {
		values, err := bindStrings(q, p.name)
		if err != nil {
			return nil, err
		}
		sels = append(sels, domain.OneOf(p.column, values...))
	}

	for _, p := range rangeParams {
		lo, err := bindInt(q, p.min)
		if err != nil {
			return nil, err
		}
		hi, err := bindInt(q, p.max)
		if err != nil {
			return nil, err
		}
		if lo == nil && hi == nil {
			sels = append(sels, domain.Unselected(p.column))
			continue
		}
		sels = append(sels, domain.Between(p.column, toFloat(lo), toFloat(hi)))
	}
	return sels, nil
}

// parsePage binds ?page= and ?limit=. Out-of-range values fall back to the
// defaults in domain.NewPaginationParams.
func parsePage(q url.Values) (domain.PaginationParams, error) {
	page, err := bindInt(q, "page")
	if err != nil {
		return domain.PaginationParams{}, err
	}
	limit, err := bindInt(q, "limit")
	if err != nil {
		return domain.PaginationParams{}, err
	}
	return domain.NewPaginationParams(page, limit), nil
}

// bindStrings binds a repeatable (form, explode) parameter. Empty values are
// dropped so "?make=" means no selection.
func bindStrings(q url.Values, name string) ([]string, error) {
	var dest *[]string
	if err := runtime.BindQueryParameter("form", true, false, name, q, &dest); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrValidation, name, err)
	}
	if dest == nil {
		return nil, nil
	}
	out := make([]string, 0, len(*dest))
	for _, v := range *dest {
		if v != "" {
			out = append(out, v)
		}
	}
	return out, nil
}

// bindInt binds an optional integer parameter. An empty value counts as absent.
func bindInt(q url.Values, name string) (*int, error) {
	if q.Get(name) == "" {
		return nil, nil
	}
	var dest *int
	if err := runtime.BindQueryParameter("form", true, false, name, q, &dest); err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", domain.ErrValidation, name)
	}
	return dest, nil
}

func toFloat(p *int) *float64 {
	if p == nil {
		return nil
	}
	f := float64(*p)
	return &f
}
