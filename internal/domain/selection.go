package domain

// SelectionKind tags which variant a Selection holds.
type SelectionKind int

const (
	// NoFilter contributes no clause.
	NoFilter SelectionKind = iota
	// EqualsOneOf matches rows whose column equals any of Values.
	EqualsOneOf
	// Range matches rows whose column lies within [Min, Max].
	// A nil bound is not applied.
	Range
)

// Selection is one UI filter input bound to a column.
// The variant is decided where the request is parsed; the filter builder
// switches on Kind and never inspects value types.
type Selection struct {
	Column Column
	Kind   SelectionKind
	Values []string
	Min    *float64
	Max    *float64
}

// Unselected returns a NoFilter selection for c.
func Unselected(c Column) Selection {
	return Selection{Column: c, Kind: NoFilter}
}

// OneOf returns an EqualsOneOf selection. An empty value list collapses to
// NoFilter so the builder never sees an empty set.
func OneOf(c Column, values ...string) Selection {
	if len(values) == 0 {
		return Unselected(c)
	}
	return Selection{Column: c, Kind: EqualsOneOf, Values: values}
}

// Between returns a Range selection. Either bound may be nil.
func Between(c Column, min, max *float64) Selection {
	return Selection{Column: c, Kind: Range, Min: min, Max: max}
}

// SelectionSet is the ordered list of selections for one dashboard request,
// in facet order (see FacetOrder).
type SelectionSet []Selection

// Get returns the selection for column c, or a NoFilter selection if absent.
func (s SelectionSet) Get(c Column) Selection {
	for _, sel := range s {
		if sel.Column == c {
			return sel
		}
	}
	return Unselected(c)
}

// FacetOrder is the fixed order in which selections are built and described.
var FacetOrder = []Column{
	ColumnBodyType, ColumnMake, ColumnModel, ColumnDrivetrain, ColumnTransmission,
	ColumnFuelType, ColumnYear, ColumnKilometers, ColumnPrice,
}
