// Package cart holds the session shopping cart: an ordered set of line items that is
// written back to the session key-value store after every mutation.
package cart

// StorageKey is the session key the serialized cart lives under.
const StorageKey = "cart"

// LineItem is one product entry in the cart. Name, Price and Image are copied from the
// product when the item is first added and are not refreshed afterwards.
type LineItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

// Summary is the cart plus its derived values, as served to clients.
type Summary struct {
	Items     []LineItem `json:"items"`
	ItemCount int        `json:"itemCount"`
	Total     float64    `json:"total"`
	IsEmpty   bool       `json:"isEmpty"`
}
