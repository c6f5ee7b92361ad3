// Command walletctl drives the payment provider directly for operational
// chores: creating trial wallet users, enabling fee allowances in bulk, and
// minting test funds. It shares the provider client with the gateway but is
// not part of the request-serving path.
//
// Usage:
//
//	walletctl create-user -email a@x.com [-first Test] [-last User]
//	walletctl enable-gas <provider-user-id> [<provider-user-id>...]
//	walletctl mint -amount 100 -recipient <payment-identifier> [-note "..."]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/lzar/wallet-gateway/internal/infrastructure/provider"
	"github.com/lzar/wallet-gateway/internal/pkg/config"
	"github.com/lzar/wallet-gateway/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	if cfg.Provider.APIToken == "" {
		log.Fatal().Msg("PROVIDER_API_TOKEN is required")
	}

	client := provider.NewClient(provider.Config{
		BaseURL:  cfg.Provider.BaseURL,
		APIToken: cfg.Provider.APIToken,
		Timeout:  cfg.Provider.Timeout,
	})

	ctx := context.Background()

	switch os.Args[1] {
	case "create-user":
		fs := flag.NewFlagSet("create-user", flag.ExitOnError)
		email := fs.String("email", "", "email for the new provider user (required)")
		first := fs.String("first", "Test", "first name")
		last := fs.String("last", "User", "last name")
		_ = fs.Parse(os.Args[2:])
		if *email == "" {
			fs.Usage()
			os.Exit(2)
		}

		user, err := client.CreateUser(ctx, *email, *first, *last)
		if err != nil {
			log.Fatal().Err(err).Msg("create user failed")
		}
		log.Info().
			Str("id", user.ID).
			Str("payment_identifier", user.PaymentIdentifier).
			Str("public_key", user.PublicKey).
			Str("email", user.Email).
			Msg("provider user created")

	case "enable-gas":
		ids := os.Args[2:]
		if len(ids) == 0 {
			fmt.Fprintln(os.Stderr, "enable-gas: at least one provider user id required")
			os.Exit(2)
		}
		// Best effort per id; a failure on one does not stop the rest.
		for _, id := range ids {
			if err := client.EnableGas(ctx, id); err != nil {
				log.Error().Err(err).Str("provider_user_id", id).Msg("enable gas failed")
				continue
			}
			log.Info().Str("provider_user_id", id).Msg("gas enabled")
		}

	case "mint":
		fs := flag.NewFlagSet("mint", flag.ExitOnError)
		amount := fs.Float64("amount", 0, "amount to mint (required)")
		recipient := fs.String("recipient", "", "recipient payment identifier (required)")
		note := fs.String("note", "", "transaction note")
		_ = fs.Parse(os.Args[2:])
		if *amount <= 0 || *recipient == "" {
			fs.Usage()
			os.Exit(2)
		}

		if err := client.Mint(ctx, *amount, *recipient, *note); err != nil {
			log.Fatal().Err(err).Msg("mint failed")
		}
		log.Info().Float64("amount", *amount).Str("recipient", *recipient).Msg("minted")

	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: walletctl <create-user|enable-gas|mint> [flags]")
}
