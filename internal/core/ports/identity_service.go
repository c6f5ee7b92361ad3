package ports

import (
	"context"

	"github.com/lzar/wallet-gateway/internal/core/domain"
)

type IdentityService interface {
	Signup(ctx context.Context, email, password string) (string, *domain.Account, error)
	Login(ctx context.Context, email, password string) (string, *domain.Account, error)
	Profile(ctx context.Context, email string) (*domain.Account, float64, error)
	ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error
}
