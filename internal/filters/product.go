// Package filters turns request parameters into store predicates.
package filters

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"catalogo/internal/models"
	"catalogo/internal/repositories"
)

const (
	// MinSearchLength is the shortest accepted search-by-name term, in characters.
	MinSearchLength = 2
	// SearchLimit caps the number of search-by-name results.
	SearchLimit = 20
)

var (
	ErrSearchTermMissing  = errors.New("search term 'q' is required")
	ErrSearchTermTooShort = errors.New("search term must be at least 2 characters")
)

var productSearchColumns = []string{"name_key", "description_key"}

// ProductListParams are the optional query parameters of the product listing.
type ProductListParams struct {
	Search   string
	Category string
	MinPrice string
	MaxPrice string
	// Available is nil when the parameter was not sent.
	Available *string
}

// ProductList builds the listing predicate. Unparsable prices are ignored and any
// available value other than "true" filters for unavailable products.
func ProductList(p ProductListParams) repositories.Filter {
	f := repositories.Filter{OrderBy: "created_at DESC"}

	if p.Search != "" {
		f.Search = models.Fold(p.Search)
		f.SearchIn = productSearchColumns
	}
	if p.Category != "" {
		f.Eq("category", p.Category)
	}
	if lo, ok := parsePrice(p.MinPrice); ok {
		f.Where = append(f.Where, repositories.Condition{Column: "price", Op: repositories.OpGte, Value: lo})
	}
	if hi, ok := parsePrice(p.MaxPrice); ok {
		f.Where = append(f.Where, repositories.Condition{Column: "price", Op: repositories.OpLte, Value: hi})
	}
	if p.Available != nil {
		f.Eq("available", *p.Available == "true")
	}
	return f
}

// ProductSearch builds the search-by-name predicate: available products whose name
// or description contains the trimmed term, alphabetical, capped at SearchLimit.
// The trimmed term is returned alongside the filter.
func ProductSearch(q string) (repositories.Filter, string, error) {
	if q == "" {
		return repositories.Filter{}, "", ErrSearchTermMissing
	}
	term := strings.TrimSpace(q)
	if utf8.RuneCountInString(term) < MinSearchLength {
		return repositories.Filter{}, term, ErrSearchTermTooShort
	}

	f := repositories.Filter{
		Search:   models.Fold(term),
		SearchIn: productSearchColumns,
		OrderBy:  "name ASC",
		Limit:    SearchLimit,
	}
	f.Eq("available", true)
	return f, term, nil
}

func parsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
