// Package cryptocom implements the Crypto.com codec. Like bithumb, no
// signing strategy is wired; Private-tagged operations are transmitted
// identical to Disabled ones.
package cryptocom

import (
	"encoding/json"
	"fmt"
	"time"

	"exchange-sdk/internal/core"
)

type Exchange struct{}

func New() Exchange { return Exchange{} }

func (Exchange) Name() string { return "cryptocom" }

func (Exchange) Sign(op *core.Operation, _ core.Credential, _ time.Time, _ string) (*core.SignedPayload, error) {
	return &core.SignedPayload{Query: op.Params.Encode()}, nil
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (Exchange) Decode(resp *core.WireResponse, out any) error {
	if resp.Status/100 != 2 {
		var e apiError
		if err := json.Unmarshal(resp.Body, &e); err != nil {
			return core.DeserializeResponseError(fmt.Errorf("error body for status %d: %w", resp.Status, err))
		}
		return core.RequestFailedError(e.Code, e.Message)
	}
	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return core.DeserializeResponseError(err)
	}
	if env.Data == nil {
		return core.DeserializeResponseError(fmt.Errorf("response has no data field"))
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return core.DeserializeResponseError(err)
	}
	return nil
}
