package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"exchange-sdk/internal/config"
	"exchange-sdk/internal/exchange/binance"
	"exchange-sdk/internal/exchange/okx"
	"exchange-sdk/internal/exchange/upbit"
	"exchange-sdk/internal/pipeline"
	"exchange-sdk/internal/transport"
)

// accountcheck fetches private balances for every configured exchange and
// reports one PASS/FAIL line each, so credentials can be verified before any
// order is placed.
func main() {
	var (
		configPath string
		envPath    string
		only       string
		verbose    bool
	)
	flag.StringVar(&configPath, "config", "config/config.yaml", "config yaml path")
	flag.StringVar(&envPath, "env", ".env", "dotenv file with credential variables (optional)")
	flag.StringVar(&only, "exchange", "", "check a single exchange instead of all configured ones")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
			fatal(err.Error())
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fatal(err.Error())
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	timeout := time.Duration(cfg.HTTPTimeoutSec) * time.Second
	doer := transport.NewHTTPClient(&http.Client{Timeout: timeout})

	ctx, cancel := context.WithTimeout(context.Background(), timeout+5*time.Second)
	defer cancel()

	targets := []string{config.Binance, config.Okx, config.Upbit}
	if only != "" {
		targets = []string{strings.ToLower(strings.TrimSpace(only))}
	}

	failed := 0
	for _, name := range targets {
		ex := cfg.Exchange(name)
		if ex.Credential().IsZero() {
			fmt.Printf("[SKIP] %s: no credentials configured\n", name)
			continue
		}
		opts := pipeline.Options{
			Credential: ex.Credential(),
			Transport:  doer,
			Logger:     logger,
		}

		start := time.Now()
		var detail string
		switch name {
		case config.Binance:
			detail, err = checkBinance(ctx, binance.NewClient(ex.BaseURL, opts))
		case config.Okx:
			detail, err = checkOkx(ctx, okx.NewClient(ex.BaseURL, opts))
		case config.Upbit:
			detail, err = checkUpbit(ctx, upbit.NewClient(ex.BaseURL, opts))
		default:
			err = fmt.Errorf("%s has no private signing support", name)
		}
		elapsed := time.Since(start).Round(time.Millisecond)
		if err != nil {
			failed++
			fmt.Printf("[FAIL] %s (%s) - %v\n", name, elapsed, err)
			continue
		}
		fmt.Printf("[PASS] %s (%s) - %s\n", name, elapsed, detail)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func checkBinance(ctx context.Context, client *binance.Client) (string, error) {
	account, err := client.Account(ctx)
	if err != nil {
		return "", err
	}
	nonZero := 0
	for _, b := range account.Balances {
		if !b.Free.IsZero() || !b.Locked.IsZero() {
			nonZero++
		}
	}
	return fmt.Sprintf("canTrade=%t balances=%d nonZero=%d", account.CanTrade, len(account.Balances), nonZero), nil
}

func checkOkx(ctx context.Context, client *okx.Client) (string, error) {
	balances, err := client.Balance(ctx)
	if err != nil {
		return "", err
	}
	details := 0
	for _, b := range balances {
		details += len(b.Details)
	}
	return fmt.Sprintf("accounts=%d currencies=%d", len(balances), details), nil
}

func checkUpbit(ctx context.Context, client *upbit.Client) (string, error) {
	accounts, err := client.Accounts(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("currencies=%d", len(accounts)), nil
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, strings.TrimSpace(msg))
	os.Exit(1)
}
