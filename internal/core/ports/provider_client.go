package ports

import "context"

// ProviderUser is the normalized shape of a wallet user created on the
// payment provider, after envelope unwrapping.
type ProviderUser struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	PaymentIdentifier string `json:"paymentIdentifier"`
	PublicKey         string `json:"publicKey"`
}

// TokenBalance is one entry of the provider's balance listing.
type TokenBalance struct {
	Name    string `json:"name"`
	Balance string `json:"balance"`
}

// ProviderClient is the outbound contract to the payment provider. All calls
// are attempted at most once; retries are the caller's decision (and nothing
// in the request path retries).
type ProviderClient interface {
	CreateUser(ctx context.Context, email, firstName, lastName string) (*ProviderUser, error)
	EnableGas(ctx context.Context, userID string) error
	GetBalance(ctx context.Context, userID string) ([]TokenBalance, error)
	Mint(ctx context.Context, amount float64, recipientPaymentID, note string) error
}
