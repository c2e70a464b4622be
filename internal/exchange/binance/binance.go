// Package binance implements the Binance spot codec: query-string
// HMAC-SHA256 signing and the {code,msg} error envelope.
package binance

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"exchange-sdk/internal/core"
)

// recvWindowMillis is the maximum allowed age of a signed request's
// timestamp on the exchange side.
const recvWindowMillis = 5000

type Exchange struct{}

func New() Exchange { return Exchange{} }

func (Exchange) Name() string { return "binance" }

// Sign encodes the field set in declared order, appends recvWindow and
// timestamp, and signs the resulting string with HMAC-SHA256. The signature
// covers the final encoded bytes; reordering or re-encoding afterwards
// would invalidate it. Non-GET operations send the identical signed string
// as a form-encoded body.
func (Exchange) Sign(op *core.Operation, cred core.Credential, at time.Time, _ string) (*core.SignedPayload, error) {
	if op.Auth != core.AuthPrivate {
		if op.Method == http.MethodGet {
			return &core.SignedPayload{Query: op.Params.Encode()}, nil
		}
		body, err := op.Params.EncodeJSON()
		if err != nil {
			return nil, core.SerializeBodyError(err)
		}
		return &core.SignedPayload{Body: body, ContentType: "application/json"}, nil
	}
	if cred.IsZero() {
		return nil, core.NotSupportedError("binance private operations require a credential")
	}

	params := op.Params.Clone()
	params.Add("recvWindow", strconv.Itoa(recvWindowMillis))
	params.Add("timestamp", strconv.FormatInt(at.UnixMilli(), 10))
	encoded := params.Encode()

	combined := encoded
	if combined == "" {
		combined = "signature=" + signQuery(cred.Secret, encoded)
	} else {
		combined += "&signature=" + signQuery(cred.Secret, encoded)
	}

	payload := &core.SignedPayload{Query: combined}
	payload.SetHeader("X-MBX-APIKEY", cred.Key)
	if op.Method != http.MethodGet {
		payload.ContentType = "application/x-www-form-urlencoded"
	}
	return payload, nil
}

func signQuery(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

type apiError struct {
	Code int64  `json:"code"`
	Msg  string `json:"msg"`
}

// Decode treats exactly status 200 as success; Binance uses non-200 codes
// for every rejection. Success payloads are bare, without an envelope.
func (Exchange) Decode(resp *core.WireResponse, out any) error {
	if resp.Status != http.StatusOK {
		var e apiError
		if err := json.Unmarshal(resp.Body, &e); err != nil {
			return core.DeserializeResponseError(fmt.Errorf("error body for status %d: %w", resp.Status, err))
		}
		return core.RequestFailedError(strconv.FormatInt(e.Code, 10), e.Msg)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return core.DeserializeResponseError(err)
	}
	return nil
}
