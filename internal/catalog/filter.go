package catalog

import "strings"

// Filter returns the products matching both the category (exact, unless it
// is empty or "All") and the query (case-insensitive substring of the
// name). Source order is preserved.
func Filter(products []Product, query, category string) []Product {
	query = strings.ToLower(query)
	allCategories := category == "" || category == AllCategories

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if !allCategories && p.Category != category {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func Trending(products []Product) []Product {
	out := make([]Product, 0)
	for _, p := range products {
		if p.IsTrending {
			out = append(out, p)
		}
	}
	return out
}

// Seasonal groups products by season category, omitting empty seasons.
func Seasonal(products []Product) []Section {
	sections := make([]Section, 0, len(Seasons))
	for _, season := range Seasons {
		items := Filter(products, "", season)
		if len(items) == 0 {
			continue
		}
		sections = append(sections, Section{Season: season, Products: items})
	}
	return sections
}
