// Package filter turns dashboard selections into a conjunctive predicate over
// listings and a human-readable description of what was selected.
//
// Values within one EqualsOneOf selection are OR-combined; every clause across
// all selections is AND-combined. A row with a missing value never satisfies a
// clause on that column.
package filter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dingeldeiner/whitebook/internal/domain"
)

type op int

const (
	opIn op = iota
	opGE
	opLE
)

type clause struct {
	column domain.Column
	op     op
	values []string
	set    map[string]struct{}
	bound  float64
}

func (c clause) match(l domain.Listing) bool {
	if c.op == opIn {
		v, ok := l.Text(c.column)
		if !ok {
			return false
		}
		_, hit := c.set[v]
		return hit
	}
	v, ok := l.Number(c.column)
	if !ok {
		return false
	}
	if c.op == opGE {
		return v >= c.bound
	}
	return v <= c.bound
}

func (c clause) String() string {
	switch c.op {
	case opIn:
		terms := make([]string, len(c.values))
		for i, v := range c.values {
			terms[i] = fmt.Sprintf("%s == '%s'", c.column, v)
		}
		return "(" + strings.Join(terms, " or ") + ")"
	case opGE:
		return fmt.Sprintf("%s >= %s", c.column, formatNumber(c.bound))
	default:
		return fmt.Sprintf("%s <= %s", c.column, formatNumber(c.bound))
	}
}

// Predicate is the AND of every clause produced by Build.
// The zero value has no clauses and matches everything.
type Predicate struct {
	clauses []clause
}

// IsEmpty reports whether the predicate has no clauses.
func (p Predicate) IsEmpty() bool {
	return len(p.clauses) == 0
}

// Match reports whether l satisfies every clause.
func (p Predicate) Match(l domain.Listing) bool {
	for _, c := range p.clauses {
		if !c.match(l) {
			return false
		}
	}
	return true
}

// Apply returns the listings that satisfy p as a new slice; the input is
// never modified. An empty predicate returns listings itself, unfiltered.
func (p Predicate) Apply(listings []domain.Listing) []domain.Listing {
	if p.IsEmpty() {
		return listings
	}
	out := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if p.Match(l) {
			out = append(out, l)
		}
	}
	return out
}

// String renders the predicate in query-expression form, e.g.
// "(Make == 'Toyota' or Make == 'Honda') and Year >= 2015".
// It is empty when the predicate has no clauses.
func (p Predicate) String() string {
	parts := make([]string, len(p.clauses))
	for i, c := range p.clauses {
		parts[i] = c.String()
	}
	return strings.Join(parts, " and ")
}

// Build converts selections into a predicate and the description list shown
// next to the record count.
//
// A Model selection is ignored unless the Make selection holds exactly one
// value. Returns domain.ErrFilter for a range with a NaN bound or min > max.
func Build(sels domain.SelectionSet) (Predicate, []string, error) {
	modelActive := ModelFacetActive(sels)

	var (
		p    Predicate
		desc []string
	)
	for _, sel := range sels {
		if sel.Column == domain.ColumnModel && !modelActive {
			continue
		}
		switch sel.Kind {
		case domain.NoFilter:
			continue
		case domain.EqualsOneOf:
			if len(sel.Values) == 0 {
				continue
			}
			set := make(map[string]struct{}, len(sel.Values))
			for _, v := range sel.Values {
				set[v] = struct{}{}
			}
			p.clauses = append(p.clauses, clause{column: sel.Column, op: opIn, values: sel.Values, set: set})
			desc = append(desc, sel.Values...)
		case domain.Range:
			if err := validateRange(sel); err != nil {
				return Predicate{}, nil, err
			}
			if sel.Min != nil {
				p.clauses = append(p.clauses, clause{column: sel.Column, op: opGE, bound: *sel.Min})
				desc = append(desc, fmt.Sprintf("%s > %s", sel.Column, formatNumber(*sel.Min)))
			}
			if sel.Max != nil {
				p.clauses = append(p.clauses, clause{column: sel.Column, op: opLE, bound: *sel.Max})
				desc = append(desc, fmt.Sprintf("%s < %s", sel.Column, formatNumber(*sel.Max)))
			}
		default:
			return Predicate{}, nil, fmt.Errorf("%w: unknown selection kind %d for %s", domain.ErrFilter, sel.Kind, sel.Column)
		}
	}
	return p, desc, nil
}

// ModelFacetActive reports whether Model may be offered and filtered:
// exactly one distinct make must be selected.
func ModelFacetActive(sels domain.SelectionSet) bool {
	mk := sels.Get(domain.ColumnMake)
	if mk.Kind != domain.EqualsOneOf || len(mk.Values) == 0 {
		return false
	}
	for _, v := range mk.Values[1:] {
		if v != mk.Values[0] {
			return false
		}
	}
	return true
}

func validateRange(sel domain.Selection) error {
	if sel.Min != nil && math.IsNaN(*sel.Min) || sel.Max != nil && math.IsNaN(*sel.Max) {
		return fmt.Errorf("%w: %s bound is not a number", domain.ErrFilter, sel.Column)
	}
	if sel.Min != nil && sel.Max != nil && *sel.Min > *sel.Max {
		return fmt.Errorf("%w: %s min %s is greater than max %s", domain.ErrFilter,
			sel.Column, formatNumber(*sel.Min), formatNumber(*sel.Max))
	}
	return nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
