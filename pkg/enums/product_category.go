package enums

import "fmt"

// ProductCategory groups catalog listings.
type ProductCategory string

const (
	ProductCategoryElectronics ProductCategory = "electronics"
	ProductCategoryFashion     ProductCategory = "fashion"
	ProductCategoryHome        ProductCategory = "home"
	ProductCategoryBeauty      ProductCategory = "beauty"
	ProductCategoryBooks       ProductCategory = "books"
	ProductCategoryToys        ProductCategory = "toys"
)

var validProductCategories = []ProductCategory{
	ProductCategoryElectronics,
	ProductCategoryFashion,
	ProductCategoryHome,
	ProductCategoryBeauty,
	ProductCategoryBooks,
	ProductCategoryToys,
}

// String implements fmt.Stringer.
func (v ProductCategory) String() string {
	return string(v)
}

// IsValid reports whether the value is a known ProductCategory.
func (v ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// ProductCategoryValues returns every known category in display order.
func ProductCategoryValues() []ProductCategory {
	out := make([]ProductCategory, len(validProductCategories))
	copy(out, validProductCategories)
	return out
}
