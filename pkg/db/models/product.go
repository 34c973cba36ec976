package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	dbtypes "github.com/amaclone/storefront/pkg/db/types"
	"github.com/amaclone/storefront/pkg/enums"
)

// Product is a catalog listing.
type Product struct {
	ID          uuid.UUID             `gorm:"column:id;type:text;primaryKey"`
	Name        string                `gorm:"column:name;not null"`
	Description string                `gorm:"column:description;not null"`
	Price       decimal.Decimal       `gorm:"column:price;type:numeric(12,2);not null"`
	Images      dbtypes.StringList    `gorm:"column:images;type:text;not null"`
	Category    enums.ProductCategory `gorm:"column:category;not null"`
	Rating      float64               `gorm:"column:rating;not null;default:0"`
	Stock       int                   `gorm:"column:stock;not null;default:0"`
	Featured    bool                  `gorm:"column:featured;not null;default:false"`
	Brand       *string               `gorm:"column:brand"`
	Model       *string               `gorm:"column:model"`
	Reviews     []Review              `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
