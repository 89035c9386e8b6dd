package auth

import (
	"github.com/jcastillo-dev/comanda-backend/internal/users"
)

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the tokens and user produced by a successful login.
type LoginResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
}

// RegisterResponse returns the freshly created account with its trial plan.
type RegisterResponse struct {
	User *users.UserDTO `json:"user"`
}

// MeResponse wraps the authenticated user's profile.
type MeResponse struct {
	User *users.UserDTO `json:"user"`
}
