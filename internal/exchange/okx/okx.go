// Package okx implements the OKX codec: header-based HMAC-SHA256 signing
// over timestamp+method+path, the {"data":...} success envelope, and the
// {code,msg} error envelope.
package okx

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"exchange-sdk/internal/core"
)

const timestampLayout = "2006-01-02T15:04:05.000Z"

type Exchange struct{}

func New() Exchange { return Exchange{} }

func (Exchange) Name() string { return "okx" }

// Sign encodes the fields into a query string used as the GET suffix or as
// the raw write body, then derives the four OK-ACCESS-* headers. The signed
// prehash is timestamp + uppercase method + request path, with the "?query"
// suffix included whenever a query is present.
func (Exchange) Sign(op *core.Operation, cred core.Credential, at time.Time, _ string) (*core.SignedPayload, error) {
	query := op.Params.Encode()
	payload := &core.SignedPayload{Query: query}

	if op.Auth != core.AuthPrivate {
		return payload, nil
	}
	if cred.IsZero() {
		return nil, core.NotSupportedError("okx private operations require a credential")
	}

	u, err := url.Parse(op.Path)
	if err != nil {
		return nil, core.ConstructRequestError(err)
	}
	requestPath := u.Path
	if query != "" {
		requestPath += "?" + query
	}

	timestamp := at.UTC().Format(timestampLayout)
	prehash := timestamp + strings.ToUpper(op.Method) + requestPath
	mac := hmac.New(sha256.New, []byte(cred.Secret))
	mac.Write([]byte(prehash))

	payload.SetHeader("OK-ACCESS-KEY", cred.Key)
	payload.SetHeader("OK-ACCESS-TIMESTAMP", timestamp)
	payload.SetHeader("OK-ACCESS-PASSPHRASE", cred.Passphrase)
	payload.SetHeader("OK-ACCESS-SIGN", base64.StdEncoding.EncodeToString(mac.Sum(nil)))
	return payload, nil
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

type apiError struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

// Decode unwraps the data envelope on 2xx and parses the {code,msg} error
// schema otherwise.
func (Exchange) Decode(resp *core.WireResponse, out any) error {
	if resp.Status/100 != 2 {
		var e apiError
		if err := json.Unmarshal(resp.Body, &e); err != nil {
			return core.DeserializeResponseError(fmt.Errorf("error body for status %d: %w", resp.Status, err))
		}
		return core.RequestFailedError(e.Code, e.Msg)
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
