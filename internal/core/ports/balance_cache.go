package ports

import "context"

// BalanceCache is a best-effort cache of provider balances. A miss and an
// error are equivalent to callers: both mean "go ask the provider".
type BalanceCache interface {
	Get(ctx context.Context, providerUserID string) (float64, bool, error)
	Set(ctx context.Context, providerUserID string, balance float64) error
}
