package cart

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidCart marks persisted cart data that failed decoding or validation.
var ErrInvalidCart = errors.New("invalid persisted cart")

var itemValidator = validator.New(validator.WithRequiredStructEnabled())

// storedItem mirrors LineItem with pointer fields so absent keys can be told apart
// from zero values. Quantity has no lower bound: UpdateItemQuantity stores values
// verbatim and whatever the store persists must restore on reopen.
type storedItem struct {
	ID       *string  `json:"id" validate:"required,min=1"`
	Name     *string  `json:"name" validate:"required"`
	Price    *float64 `json:"price" validate:"required,gte=0"`
	Image    *string  `json:"image" validate:"required"`
	Quantity *int     `json:"quantity" validate:"required"`
}

// Encode serializes items as a JSON array. An empty cart encodes as "[]".
func Encode(items []LineItem) (string, error) {
	if items == nil {
		items = []LineItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	return string(b), nil
}

// Decode parses a persisted cart. Every entry must carry all five fields with valid
// values and ids must be unique; anything else is reported as ErrInvalidCart.
func Decode(raw string) ([]LineItem, error) {
	var stored []*storedItem
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCart, err)
	}
	if stored == nil {
		return nil, fmt.Errorf("%w: not an array", ErrInvalidCart)
	}

	items := make([]LineItem, 0, len(stored))
	seen := make(map[string]struct{}, len(stored))
	for i, entry := range stored {
		if entry == nil {
			return nil, fmt.Errorf("%w: entry %d is null", ErrInvalidCart, i)
		}
		if err := itemValidator.Struct(entry); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidCart, i, err)
		}
		if _, dup := seen[*entry.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidCart, *entry.ID)
		}
		seen[*entry.ID] = struct{}{}
		items = append(items, LineItem{
			ID:       *entry.ID,
			Name:     *entry.Name,
			Price:    *entry.Price,
			Image:    *entry.Image,
			Quantity: *entry.Quantity,
		})
	}
	return items, nil
}
