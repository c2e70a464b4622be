package upbit

import (
	"context"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"exchange-sdk/internal/core"
	"exchange-sdk/internal/pipeline"
)

const DefaultBaseURL = "https://api.upbit.com"

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

// Orderbook uses the bracketed list-parameter form markets[]=..., which the
// encoder must not percent-escape.
func (c *Client) Orderbook(ctx context.Context, markets ...string) ([]Orderbook, error) {
	var params core.Params
	for _, m := range markets {
		params.Add("markets[]", m)
	}
	op := core.NewOperation(http.MethodGet, c.baseURL+"/v1/orderbook", params, core.AuthDisabled)
	var out []Orderbook
	err := c.pipe.Call(ctx, op, &out)
	return out, err
}

func (c *Client) Ticker(ctx context.Context, markets ...string) ([]Ticker, error) {
	params := core.Params{{Key: "markets", Value: strings.Join(markets, ",")}}
	op := core.NewOperation(http.MethodGet, c.baseURL+"/v1/ticker", params, core.AuthDisabled)
	var out []Ticker
	err := c.pipe.Call(ctx, op, &out)
	return out, err
}

// Accounts is private with an empty field set: the bearer token carries no
// query_hash claim for this call.
func (c *Client) Accounts(ctx context.Context) ([]Account, error) {
	op := core.NewOperation(http.MethodGet, c.baseURL+"/v1/accounts", nil, core.AuthPrivate)
	var out []Account
	err := c.pipe.Call(ctx, op, &out)
	return out, err
}

type PlaceOrderRequest struct {
	Market  string
	Side    string // bid, ask
	Volume  decimal.Decimal
	Price   decimal.Decimal
	OrdType string // limit, price, market
}

func (c *Client) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (Order, error) {
	params := core.Params{
		{Key: "market", Value: req.Market},
		{Key: "side", Value: req.Side},
	}
	if !req.Volume.IsZero() {
		params.Add("volume", req.Volume.String())
	}
	if !req.Price.IsZero() {
		params.Add("price", req.Price.String())
	}
	params.Add("ord_type", req.OrdType)
	op := core.NewOperation(http.MethodPost, c.baseURL+"/v1/orders", params, core.AuthPrivate)
	var out Order
	err := c.pipe.Call(ctx, op, &out)
	return out, err
}

func (c *Client) GetOrder(ctx context.Context, uuid string) (Order, error) {
	params := core.Params{{Key: "uuid", Value: uuid}}
	op := core.NewOperation(http.MethodGet, c.baseURL+"/v1/order", params, core.AuthPrivate)
	var out Order
	err := c.pipe.Call(ctx, op, &out)
	return out, err
}

func (c *Client) CancelOrder(ctx context.Context, uuid string) (Order, error) {
	params := core.Params{{Key: "uuid", Value: uuid}}
	op := core.NewOperation(http.MethodDelete, c.baseURL+"/v1/order", params, core.AuthPrivate)
	var out Order
	err := c.pipe.Call(ctx, op, &out)
	return out, err
}
