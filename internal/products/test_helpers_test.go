package product

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/amaclone/storefront/pkg/db/models"
	"github.com/amaclone/storefront/pkg/enums"
	"github.com/amaclone/storefront/pkg/migrate/migratetest"
)

var baseTime = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	name     string
	desc     string
	price    string
	category enums.ProductCategory
	rating   float64
	featured bool
}

func seedCatalog(t *testing.T, conn *gorm.DB, fixtures []fixture) []models.Product {
	t.Helper()
	out := make([]models.Product, 0, len(fixtures))
	for i, f := range fixtures {
		p := models.Product{
			Name:        f.name,
			Description: f.desc,
			Price:       decimal.RequireFromString(f.price),
			Images:      []string{"/images/" + f.name + ".jpg"},
			Category:    f.category,
			Rating:      f.rating,
			Stock:       10,
			Featured:    f.featured,
			CreatedAt:   baseTime.Add(time.Duration(i) * time.Hour),
		}
		if err := conn.Create(&p).Error; err != nil {
			t.Fatalf("seed %s: %v", f.name, err)
		}
		out = append(out, p)
	}
	return out
}

func demoFixtures() []fixture {
	return []fixture{
		{"Headphones", "Wireless noise-cancelling", "299.99", enums.ProductCategoryElectronics, 4.5, true},
		{"Smart Watch", "Fitness tracking", "199.99", enums.ProductCategoryElectronics, 4.2, true},
		{"Denim Jacket", "Classic blue denim", "89.99", enums.ProductCategoryFashion, 4.7, false},
		{"Coffee Maker", "Programmable 12-cup brewer", "79.99", enums.ProductCategoryHome, 4.3, false},
		{"Face Serum", "Vitamin C serum", "34.99", enums.ProductCategoryBeauty, 3.9, false},
		{"Bluetooth Speaker", "Portable WIRELESS speaker", "59.99", enums.ProductCategoryElectronics, 4.0, false},
	}
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	client := migratetest.Open(t)
	svc, err := NewService(NewRepository(client.DB()))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, client.DB()
}
