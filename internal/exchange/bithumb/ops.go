package bithumb

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"exchange-sdk/internal/core"
	"exchange-sdk/internal/pipeline"
)

const DefaultBaseURL = "https://api.bithumb.com"

type Client struct {
	pipe    *pipeline.Client
	baseURL string
}

func NewClient(baseURL string, opts pipeline.Options) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		pipe:    pipeline.New(New(), opts),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Ticker embeds the currency pair in the path; Bithumb's public endpoints
// are templated on ORDER_PAYMENT.
func (c *Client) Ticker(ctx context.Context, orderCurrency, paymentCurrency string) (Ticker, error) {
	path := c.baseURL + "/public/ticker/" + orderCurrency + "_" + paymentCurrency
	op := core.NewOperation(http.MethodGet, path, nil, core.AuthDisabled)
	var out Ticker
	err := c.pipe.Call(ctx, op, &out)
	return out, err
}

func (c *Client) Orderbook(ctx context.Context, orderCurrency, paymentCurrency string, count int) (Orderbook, error) {
	path := c.baseURL + "/public/orderbook/" + orderCurrency + "_" + paymentCurrency
	var params core.Params
	if count > 0 {
		params.Add("count", strconv.Itoa(count))
	}
	op := core.NewOperation(http.MethodGet, path, params, core.AuthDisabled)
	var out Orderbook
	err := c.pipe.Call(ctx, op, &out)
	return out, err
}

func (c *Client) TransactionHistory(ctx context.Context, orderCurrency, paymentCurrency string) ([]Transaction, error) {
	path := c.baseURL + "/public/transaction_history/" + orderCurrency + "_" + paymentCurrency
	op := core.NewOperation(http.MethodGet, path, nil, core.AuthDisabled)
	var out []Transaction
	err := c.pipe.Call(ctx, op, &out)
	return out, err
}

// Orders is tagged private, but no Bithumb signer is wired: the request
// goes out exactly as a public one would. Kept to document the gap.
func (c *Client) Orders(ctx context.Context, orderCurrency, paymentCurrency string, count int) ([]OrderInfo, error) {
	params := core.Params{
		{Key: "order_currency", Value: orderCurrency},
		{Key: "payment_currency", Value: paymentCurrency},
		{Key: "count", Value: strconv.Itoa(count)},
	}
	op := core.NewOperation(http.MethodPost, c.baseURL+"/info/orders", params, core.AuthPrivate)
	var out []OrderInfo
	err := c.pipe.Call(ctx, op, &out)
	return out, err
}
