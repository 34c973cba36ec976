package reviews

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amaclone/storefront/pkg/db"
	"github.com/amaclone/storefront/pkg/db/models"
	pkgerrors "github.com/amaclone/storefront/pkg/errors"
)

const (
	MinRating = 1
	MaxRating = 5
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes product review operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*ReviewDTO, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]ReviewDTO, error)
}

type service struct {
	repo *Repository
	tx   txRunner
}

// NewService builds a review service.
func NewService(repo *Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("review repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// Create stores the review and recomputes the product rating in the same transaction.
func (s *service) Create(ctx context.Context, input CreateInput) (*ReviewDTO, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user required")
	}
	if input.Rating < MinRating || input.Rating > MaxRating {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "rating must be between %d and %d", MinRating, MaxRating)
	}
	comment := strings.TrimSpace(input.Comment)
	if comment == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "comment is required")
	}

	review := &models.Review{
		ProductID: input.ProductID,
		UserID:    input.UserID,
		Rating:    input.Rating,
		Comment:   comment,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		exists, err := repo.ProductExists(ctx, input.ProductID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
		}
		if !exists {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		if err := repo.Create(ctx, review); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert review")
		}
		if _, err := repo.RefreshProductRating(ctx, input.ProductID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: refresh product rating")
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}

	created, err := s.repo.FindByID(ctx, review.ID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load review")
	}
	dto := FromModel(*created)
	return &dto, nil
}

func (s *service) ListByProduct(ctx context.Context, productID uuid.UUID) ([]ReviewDTO, error) {
	rows, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	return FromModels(rows), nil
}
