// Package provider adapts the payment provider's HTTP API. The provider's
// response shapes are inconsistent (sometimes a bare object, sometimes
// wrapped in {"user": {...}}); all envelope unwrapping happens here so
// callers only ever see normalized types.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lzar/wallet-gateway/internal/api/metrics"
	"github.com/lzar/wallet-gateway/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// Config captures the settings for the provider client.
type Config struct {
	BaseURL  string
	APIToken string
	Timeout  time.Duration
}

// APIError is a classified non-2xx response from the provider. Body is the
// serialized provider payload; it is for logs and diagnostics, never for
// end-user responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("provider: status %d: %s", e.StatusCode, e.Body)
}

// Client implements ports.ProviderClient over HTTP.
type Client struct {
	baseURL  string
	apiToken string
	http     *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiToken: cfg.APIToken,
		http:     &http.Client{Timeout: timeout},
	}
}

// call performs one outbound request. On 2xx the body is returned JSON
// decoded, or as the raw string when it is not valid JSON. On anything else
// the result is an *APIError carrying status and body. At most one attempt.
func (c *Client) call(ctx context.Context, endpoint, method, path string, body any) (any, error) {
	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("provider: encode request: %w", err)
		}
		payload = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, fmt.Errorf("provider: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")
	if method != http.MethodGet {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		return nil, fmt.Errorf("provider: %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues(endpoint, "read_error").Inc()
		return nil, fmt.Errorf("provider: read response: %w", err)
	}

	metrics.ProviderRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		metrics.ProviderRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return nil, &APIError{StatusCode: res.StatusCode, Body: string(raw)}
	}
	metrics.ProviderRequestsTotal.WithLabelValues(endpoint, "ok").Inc()

	if len(raw) == 0 {
		return nil, nil
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		// Some provider endpoints answer 2xx with plain text.
		return string(raw), nil
	}
	return decoded, nil
}

type createUserRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// CreateUser provisions a wallet user on the provider.
func (c *Client) CreateUser(ctx context.Context, email, firstName, lastName string) (*ports.ProviderUser, error) {
	res, err := c.call(ctx, "create_user", http.MethodPost, "/users", createUserRequest{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return nil, err
	}

	obj, ok := res.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("provider: unexpected create user response %T", res)
	}
	// Unwrap {"user": {...}} when present; some deployments return the user
	// object bare.
	if inner, ok := obj["user"].(map[string]any); ok {
		obj = inner
	}

	user := &ports.ProviderUser{}
	user.ID, _ = obj["id"].(string)
	user.Email, _ = obj["email"].(string)
	user.PaymentIdentifier, _ = obj["paymentIdentifier"].(string)
	user.PublicKey, _ = obj["publicKey"].(string)
	return user, nil
}

type enableGasRequest struct {
	UserID string `json:"userId"`
}

// EnableGas grants the wallet a fee allowance so it can pay network fees.
func (c *Client) EnableGas(ctx context.Context, userID string) error {
	_, err := c.call(ctx, "enable_gas", http.MethodPost, "/enable-gas", enableGasRequest{UserID: userID})
	return err
}

// GetBalance lists the provider's token balances for a wallet user. An
// absent tokens field yields an empty slice, not an error.
func (c *Client) GetBalance(ctx context.Context, userID string) ([]ports.TokenBalance, error) {
	res, err := c.call(ctx, "get_balance", http.MethodGet, "/"+userID+"/balance", nil)
	if err != nil {
		return nil, err
	}

	obj, ok := res.(map[string]any)
	if !ok {
		return nil, nil
	}
	rawTokens, ok := obj["tokens"].([]any)
	if !ok {
		return nil, nil
	}

	tokens := make([]ports.TokenBalance, 0, len(rawTokens))
	for _, rt := range rawTokens {
		entry, ok := rt.(map[string]any)
		if !ok {
			continue
		}
		var tb ports.TokenBalance
		tb.Name, _ = entry["name"].(string)
		tb.Balance, _ = entry["balance"].(string)
		tokens = append(tokens, tb)
	}
	return tokens, nil
}

type mintRequest struct {
	TransactionAmount    float64 `json:"transactionAmount"`
	TransactionRecipient string  `json:"transactionRecipient"`
	TransactionNotes     string  `json:"transactionNotes,omitempty"`
}

// Mint credits funds to a payment identifier. Operational use only; nothing
// in the request-serving path mints.
func (c *Client) Mint(ctx context.Context, amount float64, recipientPaymentID, note string) error {
	_, err := c.call(ctx, "mint", http.MethodPost, "/mint", mintRequest{
		TransactionAmount:    amount,
		TransactionRecipient: recipientPaymentID,
		TransactionNotes:     note,
	})
	return err
}
