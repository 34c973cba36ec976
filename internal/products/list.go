package product

import (
	"strings"

	"gorm.io/gorm"

	"github.com/amaclone/storefront/pkg/enums"
	"github.com/amaclone/storefront/pkg/pagination"
)

// ListFilters describe the supported filter knobs for the browse endpoint.
type ListFilters struct {
	Categories []enums.ProductCategory
	Query      string
	MinPrice   *float64
	MaxPrice   *float64
	MinRating  *float64
	Featured   *bool
}

// ListInput captures the inputs needed to filter and paginate the catalog.
type ListInput struct {
	Filters    ListFilters
	Pagination pagination.Params
}

// RelatedLimit caps the related products shown on a product page.
const RelatedLimit = 4

// applyFilters narrows q to the products matching f. Query matches name or description
// case-insensitively.
func applyFilters(q *gorm.DB, f ListFilters) *gorm.DB {
	if len(f.Categories) > 0 {
		q = q.Where("category IN ?", f.Categories)
	}
	if term := strings.ToLower(strings.TrimSpace(f.Query)); term != "" {
		like := "%" + escapeLike(term) + "%"
		q = q.Where("(LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\')", like, like)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.MinRating != nil {
		q = q.Where("rating >= ?", *f.MinRating)
	}
	if f.Featured != nil {
		q = q.Where("featured = ?", *f.Featured)
	}
	return q
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// ParseCategories splits a comma separated category list, dropping blanks.
// Unknown names are returned in the second slice.
func ParseCategories(raw string) ([]enums.ProductCategory, []string) {
	var (
		valid   []enums.ProductCategory
		invalid []string
	)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		category, err := enums.ParseProductCategory(part)
		if err != nil {
			invalid = append(invalid, part)
			continue
		}
		valid = append(valid, category)
	}
	return valid, invalid
}
