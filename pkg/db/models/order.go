package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/amaclone/storefront/pkg/enums"
)

// Order is a submitted checkout.
type Order struct {
	ID            uuid.UUID           `gorm:"column:id;type:text;primaryKey"`
	UserID        uuid.UUID           `gorm:"column:user_id;type:text;not null;index"`
	User          *User               `gorm:"foreignKey:UserID"`
	Total         decimal.Decimal     `gorm:"column:total;type:numeric(12,2);not null"`
	Status        enums.OrderStatus   `gorm:"column:status;not null"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;not null"`
	Shipping      ShippingDetails     `gorm:"embedded;embeddedPrefix:shipping_"`
	Notes         *string             `gorm:"column:notes"`
	Items         []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// ShippingDetails is the delivery address captured at checkout.
type ShippingDetails struct {
	FullName string `gorm:"column:full_name;not null"`
	Email    string `gorm:"column:email;not null"`
	Phone    string `gorm:"column:phone;not null"`
	Address  string `gorm:"column:address;not null"`
	City     string `gorm:"column:city;not null"`
	State    string `gorm:"column:state;not null"`
	ZipCode  string `gorm:"column:zip_code;not null"`
	Country  string `gorm:"column:country;not null"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	ensureID(&o.ID)
	return nil
}

// OrderItem snapshots one cart line at checkout time.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:text;primaryKey"`
	OrderID   uuid.UUID       `gorm:"column:order_id;type:text;not null;index"`
	ProductID string          `gorm:"column:product_id;not null"`
	Name      string          `gorm:"column:name;not null"`
	Image     string          `gorm:"column:image;not null"`
	Quantity  int             `gorm:"column:quantity;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
}

func (i *OrderItem) BeforeCreate(*gorm.DB) error {
	ensureID(&i.ID)
	return nil
}
