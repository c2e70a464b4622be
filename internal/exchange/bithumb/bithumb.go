// Package bithumb implements the Bithumb codec. No signing strategy is
// wired: Private-tagged operations go out identical to Disabled ones. The
// gap is deliberate and covered by tests rather than papered over.
package bithumb

import (
	"encoding/json"
	"fmt"
	"time"

	"exchange-sdk/internal/core"
	"exchange-sdk/internal/transport"
)

type Exchange struct{}

func New() Exchange { return Exchange{} }

func (Exchange) Name() string { return "bithumb" }

func (Exchange) Sign(op *core.Operation, _ core.Credential, _ time.Time, _ string) (*core.SignedPayload, error) {
	return &core.SignedPayload{Query: transport.RevertBrackets(op.Params.Encode())}, nil
}

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

type apiError struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Decode unwraps the {status,data} envelope on 2xx and parses the
// {status,message} error schema otherwise.
func (Exchange) Decode(resp *core.WireResponse, out any) error {
	if resp.Status/100 != 2 {
		var e apiError
		if err := json.Unmarshal(resp.Body, &e); err != nil {
			return core.DeserializeResponseError(fmt.Errorf("error body for status %d: %w", resp.Status, err))
		}
		return core.RequestFailedError(e.Status, e.Message)
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
