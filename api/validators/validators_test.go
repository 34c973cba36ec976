package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/amaclone/storefront/pkg/errors"
	"github.com/amaclone/storefront/pkg/types"
)

type quantityBody struct {
	Quantity int    `json:"quantity" validate:"gte=1"`
	Name     string `json:"name" validate:"required"`
}

func TestDecodeJSONBodyValidates(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quantity":0,"name":""}`))
	var body quantityBody
	err := DecodeJSONBody(req, &body)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	details, ok := pkgerrors.As(err).Details().(types.FieldErrors)
	if !ok {
		t.Fatalf("expected field errors, got %T", pkgerrors.As(err).Details())
	}
	if details["quantity"] != "must be at least 1" {
		t.Errorf("unexpected quantity message %q", details["quantity"])
	}
	if details["name"] != "is required" {
		t.Errorf("unexpected name message %q", details["name"])
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quantity":1,"name":"x","extra":true}`))
	var body quantityBody
	if err := DecodeJSONBody(req, &body); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for unknown field, got %v", err)
	}
}

func TestQueryParsers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=2&minPrice=10.5&featured=true&bad=x", nil)

	page, err := ParseQueryInt(req, "page", 1, 1, 100)
	if err != nil || page != 2 {
		t.Fatalf("page = %d, %v", page, err)
	}
	limit, err := ParseQueryInt(req, "limit", 10, 1, 100)
	if err != nil || limit != 10 {
		t.Fatalf("limit = %d, %v", limit, err)
	}

	min, err := ParseQueryFloat(req, "minPrice")
	if err != nil || min == nil || *min != 10.5 {
		t.Fatalf("minPrice = %v, %v", min, err)
	}
	missing, err := ParseQueryFloat(req, "maxPrice")
	if err != nil || missing != nil {
		t.Fatalf("maxPrice should be absent, got %v, %v", missing, err)
	}

	featured, err := ParseQueryBool(req, "featured")
	if err != nil || featured == nil || !*featured {
		t.Fatalf("featured = %v, %v", featured, err)
	}
	if _, err := ParseQueryBool(req, "bad"); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for bad bool, got %v", err)
	}
}

func TestURLParamUUID(t *testing.T) {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("productId", "not-a-uuid")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	if _, err := URLParamUUID(req, "productId"); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
