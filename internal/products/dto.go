package product

import (
	"time"

	"github.com/google/uuid"

	"github.com/amaclone/storefront/internal/reviews"
	"github.com/amaclone/storefront/pkg/db/models"
	"github.com/amaclone/storefront/pkg/enums"
	"github.com/amaclone/storefront/pkg/pagination"
)

// ProductDTO is the catalog payload returned to clients.
type ProductDTO struct {
	ID          uuid.UUID             `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Price       float64               `json:"price"`
	Images      []string              `json:"images"`
	Category    enums.ProductCategory `json:"category"`
	Rating      float64               `json:"rating"`
	Stock       int                   `json:"stock"`
	Featured    bool                  `json:"featured"`
	Brand       *string               `json:"brand,omitempty"`
	Model       *string               `json:"model,omitempty"`
	Reviews     []reviews.ReviewDTO   `json:"reviews,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// ListResult is one page of products plus the pagination block.
type ListResult struct {
	Products   []ProductDTO    `json:"products"`
	Pagination pagination.Meta `json:"pagination"`
}

// CreateInput carries a new catalog entry.
type CreateInput struct {
	Name        string
	Description string
	Price       float64
	Images      []string
	Category    enums.ProductCategory
	Stock       int
	Featured    bool
	Brand       *string
	Model       *string
}

// UpdateInput carries a partial update; nil fields are left untouched.
type UpdateInput struct {
	Name        *string
	Description *string
	Price       *float64
	Images      *[]string
	Category    *enums.ProductCategory
	Stock       *int
	Featured    *bool
	Brand       *string
	Model       *string
}

// FromModel maps a product row. Reviews are included when they were preloaded.
func FromModel(p models.Product) ProductDTO {
	images := []string(p.Images)
	if images == nil {
		images = []string{}
	}
	dto := ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Images:      images,
		Category:    p.Category,
		Rating:      p.Rating,
		Stock:       p.Stock,
		Featured:    p.Featured,
		Brand:       p.Brand,
		Model:       p.Model,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if len(p.Reviews) > 0 {
		dto.Reviews = reviews.FromModels(p.Reviews)
	}
	return dto
}

func fromModels(rows []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromModel(row))
	}
	return out
}
