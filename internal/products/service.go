package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amaclone/storefront/pkg/db"
	"github.com/amaclone/storefront/pkg/db/models"
	pkgerrors "github.com/amaclone/storefront/pkg/errors"
	"github.com/amaclone/storefront/pkg/pagination"
)

// Service exposes catalog reads and admin product management.
type Service interface {
	List(ctx context.Context, input ListInput) (*ListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	Related(ctx context.Context, id uuid.UUID) ([]ProductDTO, error)
	Create(ctx context.Context, input CreateInput) (*ProductDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*ProductDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo *Repository
}

// NewService builds the catalog service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	f := input.Filters
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "minPrice cannot exceed maxPrice")
	}
	if f.MinRating != nil && (*f.MinRating < 0 || *f.MinRating > 5) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 0 and 5")
	}

	input.Pagination = input.Pagination.Normalize()
	rows, total, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return &ListResult{
		Products:   fromModels(rows),
		Pagination: pagination.NewMeta(input.Pagination, total),
	}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "load product")
	}
	dto := FromModel(*product)
	return &dto, nil
}

func (s *service) Related(ctx context.Context, id uuid.UUID) ([]ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "load product")
	}
	rows, err := s.repo.Related(ctx, product.Category, product.ID, RelatedLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list related products")
	}
	return fromModels(rows), nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*ProductDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if err := validatePrice(input.Price); err != nil {
		return nil, err
	}
	if err := validateStock(input.Stock); err != nil {
		return nil, err
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid category %q", input.Category)
	}

	product := &models.Product{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Price:       decimal.NewFromFloat(input.Price).Round(2),
		Images:      cleanImages(input.Images),
		Category:    input.Category,
		Stock:       input.Stock,
		Featured:    input.Featured,
		Brand:       trimmedOrNil(input.Brand),
		Model:       trimmedOrNil(input.Model),
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}
	dto := FromModel(*product)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "load product")
	}
	if err := applyUpdate(product, input); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
	}
	dto := FromModel(*product)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

func applyUpdate(product *models.Product, input UpdateInput) error {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		product.Name = name
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		if err := validatePrice(*input.Price); err != nil {
			return err
		}
		product.Price = decimal.NewFromFloat(*input.Price).Round(2)
	}
	if input.Images != nil {
		product.Images = cleanImages(*input.Images)
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return pkgerrors.Newf(pkgerrors.CodeValidation, "invalid category %q", *input.Category)
		}
		product.Category = *input.Category
	}
	if input.Stock != nil {
		if err := validateStock(*input.Stock); err != nil {
			return err
		}
		product.Stock = *input.Stock
	}
	if input.Featured != nil {
		product.Featured = *input.Featured
	}
	if input.Brand != nil {
		product.Brand = trimmedOrNil(input.Brand)
	}
	if input.Model != nil {
		product.Model = trimmedOrNil(input.Model)
	}
	return nil
}

func validatePrice(price float64) error {
	if price < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	return nil
}

func validateStock(stock int) error {
	if stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock must be non-negative")
	}
	return nil
}

func cleanImages(images []string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if img = strings.TrimSpace(img); img != "" {
			out = append(out, img)
		}
	}
	return out
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func notFoundOr(err error, action string) error {
	if db.IsNotFound(err) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}

