package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/amaclone/storefront/api/middleware"
	"github.com/amaclone/storefront/api/responses"
	"github.com/amaclone/storefront/api/validators"
	"github.com/amaclone/storefront/internal/localization"
	"github.com/amaclone/storefront/internal/orders"
	"github.com/amaclone/storefront/pkg/enums"
	pkgerrors "github.com/amaclone/storefront/pkg/errors"
	"github.com/amaclone/storefront/pkg/logger"
)

type checkoutRequest struct {
	PaymentMethod string               `json:"paymentMethod" validate:"required"`
	ShippingInfo  orders.ShippingInput `json:"shippingInfo"`
	Notes         *string              `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// Checkout turns the session cart into an order and clears the cart once the order is
// stored. A failure to clear is logged; the order stands.
func Checkout(svc orders.Service, carts CartOpener, locales LocaleOpener, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := middleware.UserUUIDFromContext(ctx)
		if userID == uuid.Nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		method, err := enums.ParsePaymentMethod(strings.TrimSpace(payload.PaymentMethod))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid paymentMethod"))
			return
		}

		store, err := openSessionCart(r, carts)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		locale := localization.DefaultLocale
		if locales != nil {
			if resolver, err := openSessionLocale(w, r, locales, nil); err == nil {
				locale = resolver.Locale()
			}
		}

		order, err := svc.Checkout(ctx, orders.CheckoutInput{
			UserID:        userID,
			PaymentMethod: method,
			Shipping:      payload.ShippingInfo,
			Notes:         payload.Notes,
			Items:         store.Items(),
			Locale:        locale,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := store.ClearCart(ctx); err != nil && logg != nil {
			logg.Error(logg.WithField(ctx, "order_id", order.ID.String()), "clear cart after checkout", err)
		}
		responses.WriteCreated(w, order)
	}
}

func ListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListByUser(r.Context(), middleware.UserUUIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func GetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserUUIDFromContext(r.Context())
		if userID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}
		orderID, err := validators.URLParamUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.Get(r.Context(), userID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
