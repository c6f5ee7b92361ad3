package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/lzar/wallet-gateway/internal/core/domain"
	"github.com/lzar/wallet-gateway/internal/core/ports"
)

const minPasswordLen = 8

// Deliberately permissive: real validation happens when the provider sends
// mail to the address. This only rejects obvious garbage.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// identityService orchestrates account provisioning against the payment
// provider and credential verification against the local store.
type identityService struct {
	accounts ports.AccountRepository
	provider ports.ProviderClient
	tokens   *TokenService
	balances ports.BalanceCache
	currency string
	log      zerolog.Logger
}

// NewIdentityService returns an IdentityService implementation. currency is
// the token name selected from the provider's balance listing (e.g. "ZAR").
func NewIdentityService(
	accounts ports.AccountRepository,
	provider ports.ProviderClient,
	tokens *TokenService,
	balances ports.BalanceCache,
	currency string,
	log zerolog.Logger,
) ports.IdentityService {
	return &identityService{
		accounts: accounts,
		provider: provider,
		tokens:   tokens,
		balances: balances,
		currency: currency,
		log:      log,
	}
}

// Signup creates the provider-side wallet and the local account as one
// logical unit. The local insert happens last, so a provider failure never
// leaves a local account without a wallet; the reverse window (provider user
// without a local account) is accepted and logged for manual reconciliation.
func (s *identityService) Signup(ctx context.Context, email, password string) (string, *domain.Account, error) {
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password required", domain.ErrInvalidInput)
	}
	if !emailPattern.MatchString(email) {
		return "", nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}

	// Fast path only. The unique index on email is the real guarantee; a
	// concurrent signup that slips past this check fails at Insert below.
	if _, err := s.accounts.FindByEmail(ctx, email); err == nil {
		return "", nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, fmt.Errorf("signup: %w", err)
	}

	firstName, _, _ := strings.Cut(email, "@")
	user, err := s.provider.CreateUser(ctx, email, firstName, "User")
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", domain.ErrProvisioning, err)
	}
	if user.ID == "" || user.PaymentIdentifier == "" {
		return "", nil, domain.ErrProvisioning
	}

	if err := s.provider.EnableGas(ctx, user.ID); err != nil {
		// The provider now holds a user we will never link. There is no
		// delete call in the provider contract, so flag it for manual
		// reconciliation and fail the signup.
		s.log.Warn().
			Str("provider_user_id", user.ID).
			Str("email", email).
			Err(err).
			Msg("orphaned provider user: gas enablement failed after creation")
		return "", nil, fmt.Errorf("%w: enable gas: %v", domain.ErrProvisioning, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	account, err := s.accounts.Insert(ctx, &domain.Account{
		Email:             email,
		PasswordHash:      string(hash),
		ProviderUserID:    user.ID,
		PaymentIdentifier: user.PaymentIdentifier,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(account.Email, account.ProviderUserID)
	if err != nil {
		return "", nil, err
	}
	return token, account, nil
}

// Login verifies credentials and issues a fresh session token. A missing
// account and a wrong password are indistinguishable to the caller.
func (s *identityService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password required", domain.ErrInvalidInput)
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(account.Email, account.ProviderUserID)
	if err != nil {
		return "", nil, err
	}
	return token, account, nil
}

// Profile resolves the account behind a validated token's email and attaches
// the wallet balance. Identity resolution is strict; the balance is
// best-effort and degrades to 0 on any provider or cache trouble.
func (s *identityService) Profile(ctx context.Context, email string) (*domain.Account, float64, error) {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, 0, err
	}
	return account, s.balance(ctx, account.ProviderUserID), nil
}

func (s *identityService) balance(ctx context.Context, providerUserID string) float64 {
	if s.balances != nil {
		if cached, ok, err := s.balances.Get(ctx, providerUserID); err == nil && ok {
			return cached
		}
	}

	tokens, err := s.provider.GetBalance(ctx, providerUserID)
	if err != nil {
		s.log.Warn().Err(err).Str("provider_user_id", providerUserID).Msg("balance fetch failed")
		return 0
	}

	var balance float64
	for _, t := range tokens {
		if t.Name != s.currency {
			continue
		}
		if parsed, err := strconv.ParseFloat(t.Balance, 64); err == nil {
			balance = parsed
		}
		break
	}

	if s.balances != nil {
		if err := s.balances.Set(ctx, providerUserID, balance); err != nil {
			s.log.Debug().Err(err).Msg("balance cache write failed")
		}
	}
	return balance
}

// ChangePassword swaps the stored hash after verifying the current password.
// Outstanding session tokens stay valid until their natural expiry.
func (s *identityService) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: old password and new password are required", domain.ErrInvalidInput)
	}
	if len(newPassword) < minPasswordLen {
		return fmt.Errorf("%w: new password must be at least 8 characters long", domain.ErrInvalidInput)
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// A valid token for a vanished account reads the same as a bad
			// token; don't reveal which check failed.
			return domain.ErrInvalidToken
		}
		return fmt.Errorf("change password: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(oldPassword)) != nil {
		return domain.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.accounts.UpdatePasswordHash(ctx, account.ID, string(hash))
}
