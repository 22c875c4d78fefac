package auth

import "github.com/delanoso/safetyhub/pkg/db/models"

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult carries the session token for the cookie plus the user payload.
type LoginResult struct {
	Token string
	User  *models.User
}
