package binance

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"exchange-sdk/internal/core"
	"exchange-sdk/internal/pipeline"
)

const DefaultBaseURL = "https://api.binance.com"

// Client exposes typed Binance spot operations on top of the pipeline.
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

func (c *Client) Depth(ctx context.Context, symbol string, limit int) (Depth, error) {
	params := core.Params{{Key: "symbol", Value: symbol}}
	if limit > 0 {
		params.Add("limit", strconv.Itoa(limit))
	}
	op := core.NewOperation(http.MethodGet, c.baseURL+"/api/v3/depth", params, core.AuthDisabled)
	var out Depth
	err := c.pipe.Call(ctx, op, &out)
	return out, err
}

func (c *Client) TickerPrice(ctx context.Context, symbol string) (TickerPrice, error) {
	params := core.Params{{Key: "symbol", Value: symbol}}
	op := core.NewOperation(http.MethodGet, c.baseURL+"/api/v3/ticker/price", params, core.AuthDisabled)
	var out TickerPrice
	err := c.pipe.Call(ctx, op, &out)
	return out, err
}

func (c *Client) Account(ctx context.Context) (Account, error) {
	op := core.NewOperation(http.MethodGet, c.baseURL+"/api/v3/account", nil, core.AuthPrivate)
	var out Account
	err := c.pipe.Call(ctx, op, &out)
	return out, err
}

func (c *Client) OpenOrders(ctx context.Context, symbol string) ([]Order, error) {
	params := core.Params{{Key: "symbol", Value: symbol}}
	op := core.NewOperation(http.MethodGet, c.baseURL+"/api/v3/openOrders", params, core.AuthPrivate)
	var out []Order
	err := c.pipe.Call(ctx, op, &out)
	return out, err
}

type PlaceOrderRequest struct {
	Symbol        string
	Side          Side
	Type          OrderType
	TimeInForce   TimeInForce
	Quantity      decimal.Decimal
	Price         decimal.Decimal
	ClientOrderID string
}

// PlaceOrder builds the field set in the documented stable order; the signer
// appends recvWindow and timestamp after these fields.
func (c *Client) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (OrderAck, error) {
	params := core.Params{
		{Key: "symbol", Value: req.Symbol},
		{Key: "side", Value: string(req.Side)},
		{Key: "type", Value: string(req.Type)},
	}
	if req.TimeInForce != "" {
		params.Add("timeInForce", string(req.TimeInForce))
	}
	params.Add("quantity", req.Quantity.String())
	if !req.Price.IsZero() {
		params.Add("price", req.Price.String())
	}
	if req.ClientOrderID != "" {
		params.Add("newClientOrderId", req.ClientOrderID)
	}
	op := core.NewOperation(http.MethodPost, c.baseURL+"/api/v3/order", params, core.AuthPrivate)
	var out OrderAck
	err := c.pipe.Call(ctx, op, &out)
	return out, err
}

func (c *Client) CancelOrder(ctx context.Context, symbol string, orderID int64) (CancelAck, error) {
	params := core.Params{
		{Key: "symbol", Value: symbol},
		{Key: "orderId", Value: strconv.FormatInt(orderID, 10)},
	}
	op := core.NewOperation(http.MethodDelete, c.baseURL+"/api/v3/order", params, core.AuthPrivate)
	var out CancelAck
	err := c.pipe.Call(ctx, op, &out)
	return out, err
}
