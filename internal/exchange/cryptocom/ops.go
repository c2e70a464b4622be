package cryptocom

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"exchange-sdk/internal/core"
	"exchange-sdk/internal/pipeline"
)

const DefaultBaseURL = "https://api.crypto.com"

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

// Ticker returns all instruments when name is empty.
func (c *Client) Ticker(ctx context.Context, instrumentName string) ([]Ticker, error) {
	var params core.Params
	if instrumentName != "" {
		params.Add("instrument_name", instrumentName)
	}
	op := core.NewOperation(http.MethodGet, c.baseURL+"/v2/public/get-ticker", params, core.AuthDisabled)
	var out []Ticker
	err := c.pipe.Call(ctx, op, &out)
	return out, err
}

func (c *Client) Trades(ctx context.Context, instrumentName string) ([]Trade, error) {
	params := core.Params{{Key: "instrument_name", Value: instrumentName}}
	op := core.NewOperation(http.MethodGet, c.baseURL+"/v2/public/get-trades", params, core.AuthDisabled)
	var out []Trade
	err := c.pipe.Call(ctx, op, &out)
	return out, err
}

func (c *Client) Book(ctx context.Context, instrumentName string, depth int) ([]Book, error) {
	params := core.Params{{Key: "instrument_name", Value: instrumentName}}
	if depth > 0 {
		params.Add("depth", strconv.Itoa(depth))
	}
	op := core.NewOperation(http.MethodGet, c.baseURL+"/v2/public/get-book", params, core.AuthDisabled)
	var out []Book
	err := c.pipe.Call(ctx, op, &out)
	return out, err
}
