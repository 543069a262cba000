package filters_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogo/internal/filters"
	"catalogo/internal/repositories"
)

func strPtr(s string) *string { return &s }

func TestProductListEmpty(t *testing.T) {
	f := filters.ProductList(filters.ProductListParams{})
	assert.Empty(t, f.Search)
	assert.Empty(t, f.Where)
	assert.Equal(t, "created_at DESC", f.OrderBy)
	assert.Zero(t, f.Limit)
}

func TestProductListCombinesConditions(t *testing.T) {
	f := filters.ProductList(filters.ProductListParams{
		Search:    "MoUSE",
		Category:  "Electrónicos",
		MinPrice:  "10",
		MaxPrice:  " 20.5 ",
		Available: strPtr("true"),
	})

	assert.Equal(t, "mouse", f.Search)
	assert.Equal(t, []string{"name_key", "description_key"}, f.SearchIn)
	assert.Equal(t, []repositories.Condition{
		{Column: "category", Op: repositories.OpEq, Value: "Electrónicos"},
		{Column: "price", Op: repositories.OpGte, Value: 10.0},
		{Column: "price", Op: repositories.OpLte, Value: 20.5},
		{Column: "available", Op: repositories.OpEq, Value: true},
	}, f.Where)
}

func TestProductListIgnoresInvalidPrices(t *testing.T) {
	f := filters.ProductList(filters.ProductListParams{MinPrice: "abc", MaxPrice: "12x"})
	assert.Empty(t, f.Where)
}

func TestProductListAvailableCoercion(t *testing.T) {
	for _, value := range []string{"false", "yes", "1", ""} {
		f := filters.ProductList(filters.ProductListParams{Available: strPtr(value)})
		require.Len(t, f.Where, 1, value)
		assert.Equal(t, false, f.Where[0].Value, value)
	}
}

func TestProductSearch(t *testing.T) {
	f, term, err := filters.ProductSearch("  Mo ")
	require.NoError(t, err)
	assert.Equal(t, "Mo", term)
	assert.Equal(t, "mo", f.Search)
	assert.Equal(t, "name ASC", f.OrderBy)
	assert.Equal(t, filters.SearchLimit, f.Limit)
	assert.Equal(t, []repositories.Condition{{Column: "available", Op: repositories.OpEq, Value: true}}, f.Where)
}

func TestProductSearchRejectsShortTerms(t *testing.T) {
	_, _, err := filters.ProductSearch("")
	assert.ErrorIs(t, err, filters.ErrSearchTermMissing)

	_, _, err = filters.ProductSearch("  m  ")
	assert.ErrorIs(t, err, filters.ErrSearchTermTooShort)

	_, _, err = filters.ProductSearch("ñu")
	assert.NoError(t, err)
}
