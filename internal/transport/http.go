package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"exchange-sdk/internal/core"
)

// Doer performs one wire exchange. Retry, rate limiting, pooling, and
// timeouts all belong to implementations of this interface, not to the
// pipeline layered on top of it.
type Doer interface {
	Do(ctx context.Context, req *core.WireRequest) (*core.WireResponse, error)
}

// HTTPClient is the net/http-backed Doer.
type HTTPClient struct {
	client *http.Client
}

func NewHTTPClient(client *http.Client) *HTTPClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPClient{client: client}
}

func (c *HTTPClient) Do(ctx context.Context, req *core.WireRequest) (*core.WireResponse, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, core.ConstructRequestError(err)
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, core.TransportError(err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, core.TransportError(err)
	}
	return &core.WireResponse{Status: resp.StatusCode, Body: raw}, nil
}
