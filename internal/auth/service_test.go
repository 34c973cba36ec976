package auth

import (
	"context"
	"testing"
	"time"

	"github.com/amaclone/storefront/internal/users"
	pkgAuth "github.com/amaclone/storefront/pkg/auth"
	"github.com/amaclone/storefront/pkg/config"
	"github.com/amaclone/storefront/pkg/enums"
	pkgerrors "github.com/amaclone/storefront/pkg/errors"
	"github.com/amaclone/storefront/pkg/migrate/migratetest"
)

var testJWT = config.JWTConfig{Secret: "secret", Issuer: "storefront", ExpirationMinutes: 60}

func newTestService(t *testing.T) Service {
	t.Helper()
	client := migratetest.Open(t)
	svc, err := NewService(ServiceParams{
		UserRepo:       users.NewRepository(client.DB()),
		JWTConfig:      testJWT,
		PasswordConfig: config.PasswordConfig{ArgonMemoryKB: 8, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32},
		Now:            func() time.Time { return time.Now() },
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func expectCode(t *testing.T, err error, code pkgerrors.Code, what string) {
	t.Helper()
	if !pkgerrors.IsCode(err, code) {
		t.Errorf("%s: expected %s, got %v", what, code, err)
	}
}

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	registered, err := svc.Register(ctx, RegisterRequest{
		Name:            "Sam",
		Email:           " Sam@Example.com ",
		Password:        "correct-horse",
		ConfirmPassword: "correct-horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if registered.User.Email != "sam@example.com" {
		t.Errorf("expected normalized email, got %q", registered.User.Email)
	}
	if registered.User.Role != enums.UserRoleUser {
		t.Errorf("expected role user, got %s", registered.User.Role)
	}

	loggedIn, err := svc.Login(ctx, LoginRequest{Email: "SAM@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWT, loggedIn.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != registered.User.ID || claims.Role != enums.UserRoleUser {
		t.Errorf("unexpected claims user=%s role=%s", claims.UserID, claims.Role)
	}
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	cases := map[string]RegisterRequest{
		"short password":     {Name: "Sam", Email: "s@example.com", Password: "short", ConfirmPassword: "short"},
		"mismatched confirm": {Name: "Sam", Email: "s@example.com", Password: "long-enough", ConfirmPassword: "different!"},
		"blank name":         {Name: " ", Email: "s@example.com", Password: "long-enough", ConfirmPassword: "long-enough"},
	}
	for name, req := range cases {
		_, err := svc.Register(ctx, req)
		expectCode(t, err, pkgerrors.CodeValidation, name)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	req := RegisterRequest{Name: "Sam", Email: "dup@example.com", Password: "long-enough", ConfirmPassword: "long-enough"}

	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, req)
	expectCode(t, err, pkgerrors.CodeConflict, "duplicate email")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	if _, err := svc.Register(ctx, RegisterRequest{Name: "Sam", Email: "sam@example.com", Password: "long-enough", ConfirmPassword: "long-enough"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	cases := map[string]LoginRequest{
		"wrong password": {Email: "sam@example.com", Password: "wrong-password"},
		"unknown email":  {Email: "ghost@example.com", Password: "long-enough"},
		"blank email":    {Email: "", Password: "long-enough"},
	}
	for name, req := range cases {
		_, err := svc.Login(ctx, req)
		expectCode(t, err, pkgerrors.CodeUnauthorized, name)
	}
}
