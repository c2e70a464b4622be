package okx

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"exchange-sdk/internal/core"
	"exchange-sdk/internal/pipeline"
)

const DefaultBaseURL = "https://www.okx.com"

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

func (c *Client) Tickers(ctx context.Context, instType string) ([]Ticker, error) {
	params := core.Params{{Key: "instType", Value: instType}}
	op := core.NewOperation(http.MethodGet, c.baseURL+"/api/v5/market/tickers", params, core.AuthDisabled)
	var out []Ticker
	err := c.pipe.Call(ctx, op, &out)
	return out, err
}

func (c *Client) Books(ctx context.Context, instID string, depth int) ([]Book, error) {
	params := core.Params{{Key: "instId", Value: instID}}
	if depth > 0 {
		params.Add("sz", strconv.Itoa(depth))
	}
	op := core.NewOperation(http.MethodGet, c.baseURL+"/api/v5/market/books", params, core.AuthDisabled)
	var out []Book
	err := c.pipe.Call(ctx, op, &out)
	return out, err
}

func (c *Client) Balance(ctx context.Context, currencies ...string) ([]Balance, error) {
	var params core.Params
	if len(currencies) > 0 {
		params.Add("ccy", strings.Join(currencies, ","))
	}
	op := core.NewOperation(http.MethodGet, c.baseURL+"/api/v5/account/balance", params, core.AuthPrivate)
	var out []Balance
	err := c.pipe.Call(ctx, op, &out)
	return out, err
}

type PlaceOrderRequest struct {
	InstID    string
	TradeMode string // cash, cross, isolated
	Side      string // buy, sell
	OrdType   string // limit, market, ...
	Size      decimal.Decimal
	Price     decimal.Decimal
	ClOrdID   string
}

func (c *Client) PlaceOrder(ctx context.Context, req PlaceOrderRequest) ([]OrderAck, error) {
	params := core.Params{
		{Key: "instId", Value: req.InstID},
		{Key: "tdMode", Value: req.TradeMode},
		{Key: "side", Value: req.Side},
		{Key: "ordType", Value: req.OrdType},
		{Key: "sz", Value: req.Size.String()},
	}
	if !req.Price.IsZero() {
		params.Add("px", req.Price.String())
	}
	if req.ClOrdID != "" {
		params.Add("clOrdId", req.ClOrdID)
	}
	op := core.NewOperation(http.MethodPost, c.baseURL+"/api/v5/trade/order", params, core.AuthPrivate)
	var out []OrderAck
	err := c.pipe.Call(ctx, op, &out)
	return out, err
}

func (c *Client) CancelOrder(ctx context.Context, instID, ordID string) ([]OrderAck, error) {
	params := core.Params{
		{Key: "instId", Value: instID},
		{Key: "ordId", Value: ordID},
	}
	op := core.NewOperation(http.MethodPost, c.baseURL+"/api/v5/trade/cancel-order", params, core.AuthPrivate)
	var out []OrderAck
	err := c.pipe.Call(ctx, op, &out)
	return out, err
}
