package ports

import (
	"context"

	"github.com/lzar/wallet-gateway/internal/core/domain"
)

// AccountRepository defines the persistence contract for accounts.
//
// Insert must enforce uniqueness of email and provider user id itself
// (returning domain.ErrUserExists on a duplicate): any existence pre-check a
// caller performs is a fast path, not a correctness guarantee.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	Insert(ctx context.Context, account *domain.Account) (*domain.Account, error)
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
}
