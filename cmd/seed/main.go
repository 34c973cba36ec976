package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	productsvc "github.com/amaclone/storefront/internal/products"
	"github.com/amaclone/storefront/internal/users"
	"github.com/amaclone/storefront/pkg/config"
	"github.com/amaclone/storefront/pkg/db"
	"github.com/amaclone/storefront/pkg/enums"
	"github.com/amaclone/storefront/pkg/logger"
	"github.com/amaclone/storefront/pkg/migrate"
	"github.com/amaclone/storefront/pkg/security"
)

const placeholderImage = "/placeholder.svg?height=300&width=300"

var demoProducts = []productsvc.CreateInput{
	{
		Name:        "Wireless Noise-Cancelling Headphones",
		Description: "Premium wireless headphones with active noise cancellation",
		Price:       299.99,
		Category:    enums.ProductCategoryElectronics,
		Stock:       15,
		Featured:    true,
	},
	{
		Name:        "Smart Fitness Watch",
		Description: "Track your fitness goals with this advanced smartwatch",
		Price:       199.99,
		Category:    enums.ProductCategoryElectronics,
		Stock:       20,
		Featured:    true,
	},
	{
		Name:        "Organic Cotton T-Shirt",
		Description: "Comfortable and eco-friendly cotton t-shirt",
		Price:       29.99,
		Category:    enums.ProductCategoryFashion,
		Stock:       50,
		Featured:    true,
	},
	{
		Name:        "Professional Blender",
		Description: "High-performance blender for smoothies and food preparation",
		Price:       149.99,
		Category:    enums.ProductCategoryHome,
		Stock:       10,
		Featured:    true,
	},
	{
		Name:        "Leather Wallet",
		Description: "Genuine leather wallet with multiple card slots",
		Price:       49.99,
		Category:    enums.ProductCategoryFashion,
		Stock:       30,
	},
	{
		Name:        "Stainless Steel Water Bottle",
		Description: "Insulated water bottle that keeps drinks cold for 24 hours",
		Price:       24.99,
		Category:    enums.ProductCategoryHome,
		Stock:       40,
	},
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})
	_ = godotenv.Load()

	adminEmail := flag.String("admin-email", "", "create an admin account with this email")
	adminPassword := flag.String("admin-password", "", "password for -admin-email")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(context.Background(), logg, "config", err)

	ctx := logg.WithFields(context.Background(), map[string]any{"env": cfg.App.Env})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	requireResource(ctx, logg, "migrations", migrate.Up(ctx, dbClient))

	svc, err := productsvc.NewService(productsvc.NewRepository(dbClient.DB()))
	requireResource(ctx, logg, "product service", err)

	for _, input := range demoProducts {
		input.Images = []string{placeholderImage}
		product, err := svc.Create(ctx, input)
		requireResource(ctx, logg, "seed product", err)
		logg.Info(logg.WithField(ctx, "product_id", product.ID.String()), "seeded product")
	}

	if strings.TrimSpace(*adminEmail) != "" {
		requireResource(ctx, logg, "admin user", seedAdmin(ctx, cfg, dbClient, *adminEmail, *adminPassword))
		logg.Info(ctx, "seeded admin user")
	}
}

func seedAdmin(ctx context.Context, cfg *config.Config, client *db.Client, email, password string) error {
	if len(password) < 8 {
		return fmt.Errorf("admin password must be at least 8 characters")
	}
	hash, err := security.HashPassword(password, cfg.Password)
	if err != nil {
		return err
	}
	_, err = users.NewRepository(client.DB()).Create(ctx, users.CreateUserDTO{
		Name:         "Store Admin",
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		Role:         enums.UserRoleAdmin,
	})
	return err
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
