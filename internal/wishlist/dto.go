package wishlist

import (
	"time"

	"github.com/google/uuid"

	productsvc "github.com/amaclone/storefront/internal/products"
	"github.com/amaclone/storefront/pkg/db/models"
	"github.com/amaclone/storefront/pkg/pagination"
)

// ItemDTO wraps the product included in a wishlist row.
type ItemDTO struct {
	ProductID uuid.UUID              `json:"productId"`
	Product   *productsvc.ProductDTO `json:"product,omitempty"`
	AddedAt   time.Time              `json:"addedAt"`
}

// PageDTO is one page of a user's wishlist.
type PageDTO struct {
	Items      []ItemDTO       `json:"items"`
	Pagination pagination.Meta `json:"pagination"`
}

func fromModels(rows []models.WishlistItem) []ItemDTO {
	out := make([]ItemDTO, 0, len(rows))
	for _, row := range rows {
		item := ItemDTO{ProductID: row.ProductID, AddedAt: row.CreatedAt}
		if row.Product != nil {
			p := productsvc.FromModel(*row.Product)
			item.Product = &p
		}
		out = append(out, item)
	}
	return out
}
