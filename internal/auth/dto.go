package auth

import (
	"github.com/google/uuid"

	"github.com/vogelpark/storefront/pkg/enums"
)

// RegisterRequest carries the fields needed to open an account.
type RegisterRequest struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
}

// LoginRequest carries the submitted credentials.
type LoginRequest struct {
	Username string
	Password string
}

// LoginResponse is the payload handed back to a successful login.
type LoginResponse struct {
	Token    string     `json:"token"`
	ID       uuid.UUID  `json:"id"`
	Username string     `json:"username"`
	Role     enums.Role `json:"role"`
}

// RegisterResponse acknowledges a new account.
type RegisterResponse struct {
	Message string    `json:"message"`
	ID      uuid.UUID `json:"id"`
}
