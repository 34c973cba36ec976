package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/amaclone/storefront/api/middleware"
	"github.com/amaclone/storefront/api/responses"
	"github.com/amaclone/storefront/api/validators"
	"github.com/amaclone/storefront/internal/cart"
	productsvc "github.com/amaclone/storefront/internal/products"
	pkgerrors "github.com/amaclone/storefront/pkg/errors"
	"github.com/amaclone/storefront/pkg/logger"
)

// CartOpener restores the cart of a session.
type CartOpener interface {
	Open(ctx context.Context, sessionID string) (*cart.Store, error)
}

// ProductLookup loads a single catalog entry.
type ProductLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*productsvc.ProductDTO, error)
}

type addCartItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"omitempty,gte=1,lte=99"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"gte=1,lte=99"`
}

func openSessionCart(r *http.Request, carts CartOpener) (*cart.Store, error) {
	if carts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable")
	}
	return carts.Open(r.Context(), middleware.SessionIDFromContext(r.Context()))
}

// GetCart returns the session cart with its derived values.
func GetCart(carts CartOpener, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := openSessionCart(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store.Summary())
	}
}

// AddCartItem adds a product to the cart. Display fields come from the catalog, so the
// client only names the product and quantity.
func AddCartItem(carts CartOpener, products ProductLookup, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Quantity == 0 {
			payload.Quantity = 1
		}

		productID, err := uuid.Parse(payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid productId"))
			return
		}
		product, err := products.Get(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := openSessionCart(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0]
		}
		if err := store.AddItem(r.Context(), cart.LineItem{
			ID:       product.ID.String(),
			Name:     product.Name,
			Price:    product.Price,
			Image:    image,
			Quantity: payload.Quantity,
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store.Summary())
	}
}

// UpdateCartItem sets the quantity of a line item. Unknown items leave the cart unchanged.
func UpdateCartItem(carts CartOpener, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := openSessionCart(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := store.UpdateItemQuantity(r.Context(), itemIDParam(r), payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store.Summary())
	}
}

func RemoveCartItem(carts CartOpener, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := openSessionCart(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := store.RemoveItem(r.Context(), itemIDParam(r)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store.Summary())
	}
}

func ClearCart(carts CartOpener, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := openSessionCart(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := store.ClearCart(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store.Summary())
	}
}

func itemIDParam(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "itemId"))
}
