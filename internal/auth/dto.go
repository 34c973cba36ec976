package auth

import (
	"github.com/amaclone/storefront/internal/users"
)

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest contains the payload required to open a customer account.
type RegisterRequest struct {
	Name            string `json:"name" validate:"required,max=120"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// AuthResponse contains the access token and the signed-in user.
type AuthResponse struct {
	AccessToken string         `json:"accessToken"`
	User        *users.UserDTO `json:"user"`
}
