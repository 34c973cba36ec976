package controllers

import (
	"net/http"
	"strings"

	"github.com/amaclone/storefront/api/responses"
	"github.com/amaclone/storefront/api/validators"
	productsvc "github.com/amaclone/storefront/internal/products"
	"github.com/amaclone/storefront/pkg/enums"
	pkgerrors "github.com/amaclone/storefront/pkg/errors"
	"github.com/amaclone/storefront/pkg/logger"
	"github.com/amaclone/storefront/pkg/pagination"
)

// ListProducts serves the catalog browse endpoint.
// Query: category (comma separated), search, minPrice, maxPrice, rating, featured, page, limit.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := parseListInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func parseListInput(r *http.Request) (productsvc.ListInput, error) {
	var input productsvc.ListInput

	page, err := validators.ParseQueryInt(r, "page", pagination.DefaultPage, 1, 1<<20)
	if err != nil {
		return input, err
	}
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return input, err
	}
	input.Pagination = pagination.Params{Page: page, Limit: limit}

	q := r.URL.Query()
	if raw := strings.TrimSpace(q.Get("category")); raw != "" && !strings.EqualFold(raw, "all") {
		valid, invalid := productsvc.ParseCategories(raw)
		if len(invalid) > 0 {
			return input, pkgerrors.New(pkgerrors.CodeValidation, "invalid category").
				WithDetails(map[string]any{"field": "category", "invalid": invalid, "allowed": enums.ProductCategoryValues()})
		}
		input.Filters.Categories = valid
	}
	input.Filters.Query = strings.TrimSpace(q.Get("search"))

	if input.Filters.MinPrice, err = validators.ParseQueryFloat(r, "minPrice"); err != nil {
		return input, err
	}
	if input.Filters.MaxPrice, err = validators.ParseQueryFloat(r, "maxPrice"); err != nil {
		return input, err
	}
	if input.Filters.MinRating, err = validators.ParseQueryFloat(r, "rating"); err != nil {
		return input, err
	}
	if input.Filters.Featured, err = validators.ParseQueryBool(r, "featured"); err != nil {
		return input, err
	}
	return input, nil
}

func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func RelatedProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		related, err := svc.Related(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, related)
	}
}
