package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/amaclone/storefront/internal/cart"
	"github.com/amaclone/storefront/pkg/db/models"
	"github.com/amaclone/storefront/pkg/enums"
)

// ShippingInput is the delivery address submitted at checkout.
type ShippingInput struct {
	FullName string `json:"fullName" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,max=40"`
	Address  string `json:"address" validate:"required,max=255"`
	City     string `json:"city" validate:"required,max=120"`
	State    string `json:"state" validate:"required,max=120"`
	ZipCode  string `json:"zipCode" validate:"required,max=20"`
	Country  string `json:"country" validate:"required,max=120"`
}

// CheckoutInput carries everything needed to turn a cart into an order.
type CheckoutInput struct {
	UserID        uuid.UUID
	PaymentMethod enums.PaymentMethod
	Shipping      ShippingInput
	Notes         *string
	Items         []cart.LineItem
	Locale        string
}

type OrderItemDTO struct {
	ID        uuid.UUID `json:"id"`
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
}

type OrderDTO struct {
	ID            uuid.UUID           `json:"id"`
	UserID        uuid.UUID           `json:"userId"`
	Items         []OrderItemDTO      `json:"items"`
	Total         float64             `json:"total"`
	Status        enums.OrderStatus   `json:"status"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod"`
	Shipping      ShippingInput       `json:"shippingInfo"`
	Notes         *string             `json:"notes,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

func FromModel(o models.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemDTO{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Image:     it.Image,
			Quantity:  it.Quantity,
			Price:     it.Price.InexactFloat64(),
		})
	}
	return OrderDTO{
		ID:            o.ID,
		UserID:        o.UserID,
		Items:         items,
		Total:         o.Total.InexactFloat64(),
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		Shipping: ShippingInput{
			FullName: o.Shipping.FullName,
			Email:    o.Shipping.Email,
			Phone:    o.Shipping.Phone,
			Address:  o.Shipping.Address,
			City:     o.Shipping.City,
			State:    o.Shipping.State,
			ZipCode:  o.Shipping.ZipCode,
			Country:  o.Shipping.Country,
		},
		Notes:     o.Notes,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func FromModels(rows []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(rows))
	for _, o := range rows {
		out = append(out, FromModel(o))
	}
	return out
}

func (s ShippingInput) toModel() models.ShippingDetails {
	return models.ShippingDetails{
		FullName: s.FullName,
		Email:    s.Email,
		Phone:    s.Phone,
		Address:  s.Address,
		City:     s.City,
		State:    s.State,
		ZipCode:  s.ZipCode,
		Country:  s.Country,
	}
}
