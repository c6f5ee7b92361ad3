package domain

import (
	"errors"
	"time"
)

// Account models a local identity linked to a custodial wallet held by the
// external payment provider. The password hash never leaves the store layer's
// domain representation and is excluded from every JSON rendering.
type Account struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	ProviderUserID    string    `json:"-"`
	PaymentIdentifier string    `json:"paymentIdentifier"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrProvisioning       = errors.New("failed to create wallet")
)
