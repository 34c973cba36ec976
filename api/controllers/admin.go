package controllers

import (
	"net/http"
	"strings"

	"github.com/amaclone/storefront/api/responses"
	"github.com/amaclone/storefront/api/validators"
	"github.com/amaclone/storefront/internal/orders"
	productsvc "github.com/amaclone/storefront/internal/products"
	"github.com/amaclone/storefront/pkg/enums"
	pkgerrors "github.com/amaclone/storefront/pkg/errors"
	"github.com/amaclone/storefront/pkg/logger"
)

type createProductRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description" validate:"required"`
	Price       float64  `json:"price" validate:"gte=0"`
	Images      []string `json:"images" validate:"omitempty,dive,required"`
	Category    string   `json:"category" validate:"required"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Featured    bool     `json:"featured"`
	Brand       *string  `json:"brand,omitempty"`
	Model       *string  `json:"model,omitempty"`
}

func (p createProductRequest) toInput() (productsvc.CreateInput, error) {
	category, err := enums.ParseProductCategory(strings.TrimSpace(p.Category))
	if err != nil {
		return productsvc.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
	}
	return productsvc.CreateInput{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Images:      p.Images,
		Category:    category,
		Stock:       p.Stock,
		Featured:    p.Featured,
		Brand:       p.Brand,
		Model:       p.Model,
	}, nil
}

type updateProductRequest struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,max=200"`
	Description *string   `json:"description,omitempty"`
	Price       *float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	Images      *[]string `json:"images,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Stock       *int      `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Featured    *bool     `json:"featured,omitempty"`
	Brand       *string   `json:"brand,omitempty"`
	Model       *string   `json:"model,omitempty"`
}

func (p updateProductRequest) toInput() (productsvc.UpdateInput, error) {
	input := productsvc.UpdateInput{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Images:      p.Images,
		Stock:       p.Stock,
		Featured:    p.Featured,
		Brand:       p.Brand,
		Model:       p.Model,
	}
	if p.Category != nil {
		category, err := enums.ParseProductCategory(strings.TrimSpace(*p.Category))
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		input.Category = &category
	}
	return input, nil
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func AdminCreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, product)
	}
}

func AdminUpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func AdminDeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func AdminUpdateOrderStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseOrderStatus(strings.TrimSpace(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}
		order, err := svc.UpdateStatus(r.Context(), id, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
