package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WishlistItem records that a user saved a product for later.
type WishlistItem struct {
	ID        uuid.UUID `gorm:"column:id;type:text;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:text;not null;uniqueIndex:idx_wishlist_user_product"`
	ProductID uuid.UUID `gorm:"column:product_id;type:text;not null;uniqueIndex:idx_wishlist_user_product"`
	Product   *Product  `gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (w *WishlistItem) BeforeCreate(*gorm.DB) error {
	ensureID(&w.ID)
	return nil
}
