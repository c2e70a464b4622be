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

	"exchange-sdk/internal/config"
	"exchange-sdk/internal/exchange/binance"
	"exchange-sdk/internal/exchange/bithumb"
	"exchange-sdk/internal/exchange/cryptocom"
	"exchange-sdk/internal/exchange/okx"
	"exchange-sdk/internal/exchange/upbit"
	"exchange-sdk/internal/pipeline"
	"exchange-sdk/internal/transport"
)

func main() {
	var (
		exchangeName string
		symbol       string
		baseURL      string
		depth        int
		timeoutSec   int
		verbose      bool
	)
	flag.StringVar(&exchangeName, "exchange", config.Binance, "exchange: binance | okx | upbit | bithumb | cryptocom")
	flag.StringVar(&symbol, "symbol", "", "instrument in the exchange's native form, e.g. BTCUSDT / BTC-USDT / KRW-BTC / BTC_KRW / BTC_USDT")
	flag.StringVar(&baseURL, "base-url", "", "override the exchange REST base url")
	flag.IntVar(&depth, "depth", 5, "orderbook depth to print")
	flag.IntVar(&timeoutSec, "timeout-sec", 15, "http timeout seconds")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	exchangeName = strings.ToLower(strings.TrimSpace(exchangeName))
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		fatal("symbol is required")
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := pipeline.Options{
		Transport: transport.NewHTTPClient(&http.Client{Timeout: time.Duration(timeoutSec) * time.Second}),
		Logger:    logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec+5)*time.Second)
	defer cancel()

	var err error
	switch exchangeName {
	case config.Binance:
		err = showBinance(ctx, binance.NewClient(baseURL, opts), symbol, depth)
	case config.Okx:
		err = showOkx(ctx, okx.NewClient(baseURL, opts), symbol, depth)
	case config.Upbit:
		err = showUpbit(ctx, upbit.NewClient(baseURL, opts), symbol)
	case config.Bithumb:
		err = showBithumb(ctx, bithumb.NewClient(baseURL, opts), symbol, depth)
	case config.Cryptocom:
		err = showCryptocom(ctx, cryptocom.NewClient(baseURL, opts), symbol, depth)
	default:
		fatal("unknown exchange: " + exchangeName)
	}
	if err != nil {
		fatal(err.Error())
	}
}

func showBinance(ctx context.Context, client *binance.Client, symbol string, depth int) error {
	ticker, err := client.TickerPrice(ctx, symbol)
	if err != nil {
		return err
	}
	book, err := client.Depth(ctx, symbol, depth)
	if err != nil {
		return err
	}
	fmt.Printf("binance %s price=%s\n", ticker.Symbol, ticker.Price.String())
	for i := 0; i < depth && i < len(book.Bids) && i < len(book.Asks); i++ {
		fmt.Printf("  bid %s x %s | ask %s x %s\n",
			book.Bids[i].Price.String(), book.Bids[i].Qty.String(),
			book.Asks[i].Price.String(), book.Asks[i].Qty.String())
	}
	return nil
}

func showOkx(ctx context.Context, client *okx.Client, symbol string, depth int) error {
	books, err := client.Books(ctx, symbol, depth)
	if err != nil {
		return err
	}
	if len(books) == 0 {
		return fmt.Errorf("empty books response for %s", symbol)
	}
	book := books[0]
	fmt.Printf("okx %s\n", symbol)
	for i := 0; i < depth && i < len(book.Bids) && i < len(book.Asks); i++ {
		fmt.Printf("  bid %s x %s | ask %s x %s\n",
			book.Bids[i].Price.String(), book.Bids[i].Size.String(),
			book.Asks[i].Price.String(), book.Asks[i].Size.String())
	}
	return nil
}

func showUpbit(ctx context.Context, client *upbit.Client, symbol string) error {
	books, err := client.Orderbook(ctx, symbol)
	if err != nil {
		return err
	}
	if len(books) == 0 {
		return fmt.Errorf("empty orderbook response for %s", symbol)
	}
	book := books[0]
	fmt.Printf("upbit %s\n", book.Market)
	for _, unit := range book.OrderbookUnits {
		fmt.Printf("  bid %s x %s | ask %s x %s\n",
			unit.BidPrice.String(), unit.BidSize.String(),
			unit.AskPrice.String(), unit.AskSize.String())
	}
	return nil
}

func showBithumb(ctx context.Context, client *bithumb.Client, symbol string, depth int) error {
	order, payment, ok := strings.Cut(symbol, "_")
	if !ok {
		return fmt.Errorf("bithumb symbol must look like BTC_KRW, got %q", symbol)
	}
	book, err := client.Orderbook(ctx, order, payment, depth)
	if err != nil {
		return err
	}
	fmt.Printf("bithumb %s_%s\n", book.OrderCurrency, book.PaymentCurrency)
	for i := 0; i < depth && i < len(book.Bids) && i < len(book.Asks); i++ {
		fmt.Printf("  bid %s x %s | ask %s x %s\n",
			book.Bids[i].Price.String(), book.Bids[i].Quantity.String(),
			book.Asks[i].Price.String(), book.Asks[i].Quantity.String())
	}
	return nil
}

func showCryptocom(ctx context.Context, client *cryptocom.Client, symbol string, depth int) error {
	books, err := client.Book(ctx, symbol, depth)
	if err != nil {
		return err
	}
	if len(books) == 0 {
		return fmt.Errorf("empty book response for %s", symbol)
	}
	book := books[0]
	fmt.Printf("cryptocom %s\n", symbol)
	for i := 0; i < depth && i < len(book.Bids) && i < len(book.Asks); i++ {
		fmt.Printf("  bid %s x %s | ask %s x %s\n",
			book.Bids[i].Price.String(), book.Bids[i].Quantity.String(),
			book.Asks[i].Price.String(), book.Asks[i].Quantity.String())
	}
	return nil
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, strings.TrimSpace(msg))
	os.Exit(1)
}
