package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dingeldeiner/whitebook/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestColumnSetKey_OrderAndDuplicatesIgnored(t *testing.T) {
	a := domain.ColumnSetKey([]domain.Column{domain.ColumnPrice, domain.ColumnMake, domain.ColumnYear})
	b := domain.ColumnSetKey([]domain.Column{domain.ColumnYear, domain.ColumnPrice, domain.ColumnMake, domain.ColumnMake})

	assert.Equal(t, a, b)
	assert.Equal(t, "Make,Price,Year", a)
}

func TestColumn_Kind(t *testing.T) {
	kind, ok := domain.ColumnDatePosted.Kind()
	assert.True(t, ok)
	assert.Equal(t, domain.KindEpoch, kind)

	_, ok = domain.ColumnDatePostedS.Kind()
	assert.False(t, ok, "derived columns are not stored")

	_, ok = domain.Column("Horsepower").Kind()
	assert.False(t, ok)
}

func TestOneOf_EmptyCollapsesToNoFilter(t *testing.T) {
	sel := domain.OneOf(domain.ColumnMake)

	assert.Equal(t, domain.NoFilter, sel.Kind)
}

func TestSelectionSet_Get(t *testing.T) {
	set := domain.SelectionSet{domain.OneOf(domain.ColumnMake, "Toyota")}

	assert.Equal(t, []string{"Toyota"}, set.Get(domain.ColumnMake).Values)
	assert.Equal(t, domain.NoFilter, set.Get(domain.ColumnModel).Kind)
}

func TestListing_Number(t *testing.T) {
	l := domain.Listing{Year: ptr(2018), Price: ptr(21500.5), DatePostedS: ptr(int64(1675300000))}

	v, ok := l.Number(domain.ColumnYear)
	assert.True(t, ok)
	assert.Equal(t, 2018.0, v)

	v, ok = l.Number(domain.ColumnDatePostedS)
	assert.True(t, ok)
	assert.Equal(t, 1675300000.0, v)

	_, ok = l.Number(domain.ColumnKilometers)
	assert.False(t, ok, "missing value")

	_, ok = l.Number(domain.ColumnMake)
	assert.False(t, ok, "text column")
}

func TestBoundingBox_ContainsIsStrict(t *testing.T) {
	b := domain.MapBounds

	assert.True(t, b.Contains(domain.GeoPoint{Lat: 53.5, Lon: -113.5}))
	assert.False(t, b.Contains(domain.GeoPoint{Lat: 48, Lon: -113.5}), "edge is excluded")
	assert.False(t, b.Contains(domain.GeoPoint{Lat: 43.6, Lon: -79.4}))
	assert.False(t, b.Contains(domain.GeoPoint{Lat: 53.5, Lon: -123.1}))
}

func TestPaginationParams_Window(t *testing.T) {
	p := domain.NewPaginationParams(ptr(2), ptr(10))

	start, end := p.Window(25)
	assert.Equal(t, 10, start)
	assert.Equal(t, 20, end)

	start, end = p.Window(15)
	assert.Equal(t, 10, start)
	assert.Equal(t, 15, end)

	start, end = p.Window(5)
	assert.Equal(t, 5, start)
	assert.Equal(t, 5, end)
}

func TestPaginationParams_Window_HugePage(t *testing.T) {
	p := domain.NewPaginationParams(ptr(922337203685477581), ptr(20))

	start, end := p.Window(4)

	assert.Equal(t, 4, start)
	assert.Equal(t, 4, end)
	rows := make([]int, 4)
	assert.Empty(t, rows[start:end])
}

func TestPaginationParams_Window_LastPartialPage(t *testing.T) {
	p := domain.NewPaginationParams(ptr(3), ptr(10))

	start, end := p.Window(21)

	assert.Equal(t, 20, start)
	assert.Equal(t, 21, end)
}

func TestNewPaginationParams_CapsLimit(t *testing.T) {
	p := domain.NewPaginationParams(nil, ptr(500))

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.Limit)
}
