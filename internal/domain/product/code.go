package product

import (
	"strings"
	"unicode/utf8"

	"inventrack/internal/core/apperror"
	"inventrack/internal/core/numerator"
)

const (
	minCategoryLen    = 2
	minSubcategoryLen = 1
)

// CodeSeries returns the numbering series of a category/subcategory pair.
// The prefix is the first 2 letters of the category and up to 3 letters of the
// subcategory, upper-cased: ("Clothing", "Shirts") gives "CL-SHI-".
func CodeSeries(category, subcategory string) (numerator.Config, error) {
	category = strings.TrimSpace(category)
	subcategory = strings.TrimSpace(subcategory)

	if utf8.RuneCountInString(category) < minCategoryLen || utf8.RuneCountInString(subcategory) < minSubcategoryLen {
		return numerator.Config{}, apperror.NewValidation("Category must be at least 2 chars, Subcategory at least 1 char.").
			WithDetail("category", category).
			WithDetail("subcategory", subcategory)
	}

	prefix := strings.ToUpper(firstRunes(category, 2)) + "-" + strings.ToUpper(firstRunes(subcategory, 3)) + "-"
	return numerator.DefaultConfig(prefix), nil
}

func firstRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
