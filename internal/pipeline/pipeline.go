// Package pipeline composes the three stages every operation flows through:
// exchange typing, authentication, and raw transport. A stage's failure
// propagates unchanged; there is no retry and no re-signing inside the
// pipeline.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"exchange-sdk/internal/core"
	"exchange-sdk/internal/exchange"
	"exchange-sdk/internal/transport"
)

type Options struct {
	Credential core.Credential
	Transport  transport.Doer
	Logger     *slog.Logger
	// Now and Nonce exist for tests; both default to the real thing and are
	// sampled once per call, at the moment of signing.
	Now   func() time.Time
	Nonce func() string
}

// Client binds one exchange codec to a credential and a transport. It holds
// no per-call state, so a single Client is safe for concurrent use.
type Client struct {
	exchange  exchange.Exchange
	cred      core.Credential
	transport transport.Doer
	log       *slog.Logger
	now       func() time.Time
	nonce     func() string
}

func New(ex exchange.Exchange, opts Options) *Client {
	c := &Client{
		exchange:  ex,
		cred:      opts.Credential,
		transport: opts.Transport,
		log:       opts.Logger,
		now:       opts.Now,
		nonce:     opts.Nonce,
	}
	if c.transport == nil {
		c.transport = transport.NewHTTPClient(nil)
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.nonce == nil {
		c.nonce = uuid.NewString
	}
	return c
}

// Call runs one operation through the pipeline and decodes the response
// into out. out may be nil when the caller does not need the payload.
func (c *Client) Call(ctx context.Context, op *core.Operation, out any) error {
	if op == nil {
		return core.ConstructRequestError(errors.New("nil operation"))
	}
	if op.Method == "" || op.Path == "" {
		return core.ConstructRequestError(errors.New("operation method and path are required"))
	}

	payload, err := c.exchange.Sign(op, c.cred, c.now(), c.nonce())
	if err != nil {
		return err
	}

	req, err := transport.Encode(op, payload)
	if err != nil {
		return err
	}
	c.log.Debug("exchange request",
		"exchange", c.exchange.Name(),
		"method", op.Method,
		"path", op.Path,
		"auth", op.Auth.String(),
		"credential", c.cred,
	)

	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		return err
	}
	c.log.Debug("exchange response",
		"exchange", c.exchange.Name(),
		"status", resp.Status,
		"bytes", len(resp.Body),
	)
	return c.exchange.Decode(resp, out)
}
