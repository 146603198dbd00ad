package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_QueryIsDeterministic(t *testing.T) {
	s := New(10)
	s.SetFilter("search", "vit")
	s.SetFilter("category", "vitamins")
	s.SetFilter("inStock", "true")
	require.NoError(t, s.SetSort("price", SortAsc))

	first := s.Encode()
	assert.Equal(t, first, s.Encode())
	assert.Equal(t, "category=vitamins&inStock=true&limit=10&page=1&search=vit&sortBy=price&sortOrder=asc", first)
}

func TestState_FilterRoundTripRestoresQueryButPage(t *testing.T) {
	s := New(20)
	s.SetFilter("status", "pending")
	original := s.Encode()

	require.True(t, s.SetPage(4))
	s.SetFilter("status", "shipped")
	s.SetFilter("status", "pending")

	assert.Equal(t, original, s.Encode())
	assert.Equal(t, 1, s.Page())
}

func TestState_EmptyFiltersAreOmitted(t *testing.T) {
	s := New(10)
	s.SetFilter("search", "")
	s.SetFilter("brand", "Cipla")
	s.SetFilter("brand", "")

	q := s.Query()
	assert.False(t, q.Has("search"))
	assert.False(t, q.Has("brand"))
	assert.False(t, q.Has("sortBy"))
	assert.Equal(t, "limit=10&page=1", s.Encode())
}

func TestState_FilterResetsPage(t *testing.T) {
	s := New(10)
	s.SetFilter("search", "vit")
	assert.Equal(t, 1, s.Page())

	s.SetFilter("category", "vitamins")
	require.True(t, s.SetPage(3))
	assert.Equal(t, 3, s.Page())

	s.SetFilter("search", "vita")
	assert.Equal(t, 1, s.Page())
}

func TestState_SortKeepsPage(t *testing.T) {
	s := New(10)
	require.True(t, s.SetPage(2))
	require.NoError(t, s.SetSort("name", SortDesc))
	assert.Equal(t, 2, s.Page())

	assert.ErrorIs(t, s.SetSort("name", "sideways"), ErrInvalidSortOrder)
	key, order := s.Sort()
	assert.Equal(t, "name", key)
	assert.Equal(t, SortDesc, order)
}

func TestState_SetPageBounds(t *testing.T) {
	s := New(10)
	s.Apply(Pagination{Page: 1, Limit: 10, Total: 35, Pages: 4})

	assert.False(t, s.SetPage(0))
	assert.False(t, s.SetPage(5))
	assert.Equal(t, 1, s.Page())
	assert.True(t, s.SetPage(4))
	assert.False(t, s.Next())
	assert.Equal(t, 4, s.Page())
	assert.True(t, s.Prev())
	assert.Equal(t, 3, s.Page())
}

func TestState_SetPageUnknownTotal(t *testing.T) {
	s := New(10)
	assert.True(t, s.SetPage(7))
	assert.False(t, s.SetPage(-1))
	assert.Equal(t, 7, s.Page())
}

func TestState_ApplyDerivesPagesFromTotal(t *testing.T) {
	s := New(10)
	s.Apply(Pagination{Total: 21})
	assert.Equal(t, 3, s.TotalPages())
}

func TestState_ClearKeepsSort(t *testing.T) {
	s := New(10)
	s.SetFilter("search", "x")
	require.NoError(t, s.SetSort("createdAt", SortDesc))
	require.True(t, s.SetPage(2))

	s.Clear()
	assert.Empty(t, s.Filters())
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, "limit=10&page=1&sortBy=createdAt&sortOrder=desc", s.Encode())
}

func TestState_FiltersIsCopy(t *testing.T) {
	s := New(5)
	s.SetFilter("a", "1")
	f := s.Filters()
	f["a"] = "2"
	assert.Equal(t, "1", s.Filter("a"))
}
