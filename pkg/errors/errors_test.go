package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required"},
		{code: CodeForbidden, status: http.StatusForbidden, publicMsg: "access denied"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected"},
		{code: CodeStateConflict, status: http.StatusUnprocessableEntity, publicMsg: "state transition disallowed", detailsOK: true},
		{code: CodeIdempotency, status: http.StatusConflict, publicMsg: "idempotency key reused", detailsOK: true},
		{code: CodeRateLimit, status: http.StatusTooManyRequests, publicMsg: "rate limit exceeded", retryable: true},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing foo")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing foo" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	detail := map[string]any{"field": "foo"}
	base.WithDetails(detail)
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeConflict, cause, "ctx")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeConflict {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
}

func TestAsReturnsTypedError(t *testing.T) {
	err := New(CodeForbidden, "no entry")
	if got := As(err); got == nil || got.Code() != CodeForbidden {
		t.Fatalf("As failed to return typed error")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
}

func TestIsCodeFollowsChain(t *testing.T) {
	inner := Newf(CodeNotFound, "product %s not found", "42")
	outer := fmt.Errorf("load product: %w", inner)
	if !IsCode(outer, CodeNotFound) {
		t.Fatalf("expected wrapped not found code")
	}
	if IsCode(outer, CodeConflict) {
		t.Fatalf("unexpected conflict match")
	}
	if inner.Message() != "product 42 not found" {
		t.Fatalf("unexpected message %q", inner.Message())
	}
	if IsCode(nil, CodeNotFound) {
		t.Fatalf("nil error must not match")
	}
}

func TestDumpCapturesDriverDetails(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key", TableName: "users"}
	d := Dump(Wrap(CodeConflict, fmt.Errorf("insert user: %w", pgErr), "email taken"))
	if d.Code != CodeConflict || d.Driver() != "postgres" {
		t.Fatalf("unexpected dump %+v", d)
	}
	if d.PGConstraint != "users_email_key" || d.PGTable != "users" {
		t.Fatalf("missing pg details %+v", d)
	}
	if len(d.Chain) != 3 {
		t.Fatalf("expected three links in chain, got %v", d.Chain)
	}

	liteErr := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}
	d = Dump(fmt.Errorf("insert order: %w", liteErr))
	if d.Driver() != "sqlite" || d.SQLiteCode == "" {
		t.Fatalf("expected sqlite details, got %+v", d)
	}

	if plain := Dump(stdErrors.New("boom")); plain.Driver() != "" || plain.Code != "" {
		t.Fatalf("plain errors carry no driver details %+v", plain)
	}
	if empty := Dump(nil); empty.TopMessage != "" {
		t.Fatalf("nil error should dump empty")
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) {
		t.Fatalf("nil is not retryable")
	}
	if Retryable(New(CodeValidation, "quantity must be positive")) {
		t.Fatalf("validation errors are final")
	}
	if !Retryable(fmt.Errorf("persist cart: %w", New(CodeDependency, "redis down"))) {
		t.Fatalf("dependency errors are retryable")
	}
	if !Retryable(stdErrors.New("unexpected")) {
		t.Fatalf("untyped errors map to internal and are retryable")
	}
}
