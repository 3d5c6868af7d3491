package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/d4nchik/VH-BookingService/internal/domain"
)

func testVenues() []*domain.Venue {
	return []*domain.Venue{
		{ID: 1, Name: "Grand Hall", City: "Kathmandu"},
		{ID: 2, Name: "Garden Palace", City: "Pokhara"},
		{ID: 3, Name: "Kathmandu Banquet", City: "Kathmandu"},
		{ID: 4, Name: "Riverside Hall", City: "Pokhara"},
	}
}

func TestIndex_LookupByNamePrefix(t *testing.T) {
	idx := Build(testVenues())

	assert.Equal(t, []int64{1, 2}, idx.Lookup("g"))
	assert.Equal(t, []int64{1}, idx.Lookup("grand"))
	assert.Equal(t, []int64{4}, idx.Lookup("river"))
}

func TestIndex_LookupByCityPrefix(t *testing.T) {
	idx := Build(testVenues())

	// "kath" матчит город двух площадок и название третьей, без дубликатов
	assert.Equal(t, []int64{1, 3}, idx.Lookup("kath"))
	assert.Equal(t, []int64{2, 4}, idx.Lookup("pokhara"))
}

func TestIndex_LookupCaseInsensitive(t *testing.T) {
	idx := Build(testVenues())

	assert.Equal(t, idx.Lookup("grand"), idx.Lookup("GRAND"))
	assert.Equal(t, idx.Lookup("grand"), idx.Lookup("  Grand "))
}

func TestIndex_LookupNoMatch(t *testing.T) {
	idx := Build(testVenues())

	assert.Empty(t, idx.Lookup("zzz"))
	assert.Empty(t, idx.Lookup(""))
}

func TestIndex_EmptyCatalog(t *testing.T) {
	idx := Build(nil)

	assert.Equal(t, 0, idx.Size())
	assert.Empty(t, idx.Lookup("anything"))
}

func TestIndex_RebuildReplacesContent(t *testing.T) {
	venues := testVenues()
	idx := Build(venues)
	assert.NotEmpty(t, idx.Lookup("grand"))

	// Площадка исчезла из каталога - свежий индекс её не знает,
	// старый остается нетронутым
	rebuilt := Build(venues[1:])
	assert.Empty(t, rebuilt.Lookup("grand"))
	assert.NotEmpty(t, idx.Lookup("grand"))
}
