package product

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/amaclone/storefront/pkg/db/models"
	"github.com/amaclone/storefront/pkg/enums"
)

// Repository wires together the catalog persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// List returns one page of matching products, newest first, and the total match count.
// The page query and the count query run concurrently.
func (r *Repository) List(ctx context.Context, input ListInput) ([]models.Product, int64, error) {
	page := input.Pagination.Normalize()

	var (
		rows  []models.Product
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q := applyFilters(r.db.WithContext(gctx).Model(&models.Product{}), input.Filters)
		if err := q.Order("created_at DESC").Order("id DESC").
			Offset(page.Offset()).
			Limit(page.Limit).
			Find(&rows).Error; err != nil {
			return fmt.Errorf("find products: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		q := applyFilters(r.db.WithContext(gctx).Model(&models.Product{}), input.Filters)
		if err := q.Count(&total).Error; err != nil {
			return fmt.Errorf("count products: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindDetail loads the product with its reviews (newest first) and their reviewers.
func (r *Repository) FindDetail(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Reviews.User").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Related returns up to limit other products from category, best rated first.
func (r *Repository) Related(ctx context.Context, category enums.ProductCategory, exclude uuid.UUID, limit int) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("category = ? AND id <> ?", category, exclude).
		Order("rating DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *Repository) Save(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Omit("Reviews").Save(product).Error
}

// Delete removes the product. It reports false when no row matched.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
