package reviews

import (
	"time"

	"github.com/google/uuid"

	"github.com/amaclone/storefront/pkg/db/models"
)

// ReviewerDTO is the public slice of the reviewing user.
type ReviewerDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Image *string   `json:"image,omitempty"`
}

// ReviewDTO is a product review as returned to clients.
type ReviewDTO struct {
	ID        uuid.UUID    `json:"id"`
	ProductID uuid.UUID    `json:"productId"`
	Rating    int          `json:"rating"`
	Comment   string       `json:"comment"`
	User      *ReviewerDTO `json:"user,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

// CreateInput carries a new review.
type CreateInput struct {
	ProductID uuid.UUID
	UserID    uuid.UUID
	Rating    int
	Comment   string
}

// FromModel maps a review row, including the preloaded user when present.
func FromModel(review models.Review) ReviewDTO {
	dto := ReviewDTO{
		ID:        review.ID,
		ProductID: review.ProductID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
	if review.User != nil {
		dto.User = &ReviewerDTO{
			ID:    review.User.ID,
			Name:  review.User.Name,
			Image: review.User.Image,
		}
	}
	return dto
}

// FromModels maps a slice of review rows.
func FromModels(rows []models.Review) []ReviewDTO {
	out := make([]ReviewDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromModel(row))
	}
	return out
}
