package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is one customer's rating of a product.
type Review struct {
	ID        uuid.UUID `gorm:"column:id;type:text;primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:text;not null;index"`
	UserID    uuid.UUID `gorm:"column:user_id;type:text;not null"`
	User      *User     `gorm:"foreignKey:UserID"`
	Rating    int       `gorm:"column:rating;not null"`
	Comment   string    `gorm:"column:comment;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (r *Review) BeforeCreate(*gorm.DB) error {
	ensureID(&r.ID)
	return nil
}
