// Package upbit implements the Upbit codec: an HS256 bearer token whose
// query_hash claim covers the URL-encoded parameter string, and the
// {error:{name,message}} error envelope.
//
// The token's hash covers the query-string encoding of the fields even for
// write operations, whose transmitted body is the JSON encoding of the same
// fields. The two encodings are produced independently; Upbit verifies the
// hash against the urlencoded form.
package upbit

import (
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"exchange-sdk/internal/core"
	"exchange-sdk/internal/transport"
)

type Exchange struct{}

func New() Exchange { return Exchange{} }

func (Exchange) Name() string { return "upbit" }

func (Exchange) Sign(op *core.Operation, cred core.Credential, _ time.Time, nonce string) (*core.SignedPayload, error) {
	query := transport.RevertBrackets(op.Params.Encode())
	payload := &core.SignedPayload{Query: query}

	if op.Method != http.MethodGet {
		body, err := op.Params.EncodeJSON()
		if err != nil {
			return nil, core.SerializeBodyError(err)
		}
		payload.Body = body
		payload.ContentType = "application/json"
	}

	if op.Auth != core.AuthPrivate {
		return payload, nil
	}
	if cred.IsZero() {
		return nil, core.NotSupportedError("upbit private operations require a credential")
	}

	claims := jwt.MapClaims{
		"access_key": cred.Key,
		"nonce":      nonce,
	}
	if query != "" {
		sum := sha512.Sum512([]byte(query))
		claims["query_hash"] = hex.EncodeToString(sum[:])
		claims["query_hash_alg"] = "SHA512"
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cred.Secret))
	if err != nil {
		return nil, core.ConstructRequestError(fmt.Errorf("sign bearer token: %w", err))
	}
	payload.SetHeader("Authorization", "Bearer "+token)
	return payload, nil
}

type apiError struct {
	Error struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	} `json:"error"`
}

// Decode returns the bare payload on 2xx and the nested error envelope
// otherwise.
func (Exchange) Decode(resp *core.WireResponse, out any) error {
	if resp.Status/100 != 2 {
		var e apiError
		if err := json.Unmarshal(resp.Body, &e); err != nil {
			return core.DeserializeResponseError(fmt.Errorf("error body for status %d: %w", resp.Status, err))
		}
		return core.RequestFailedError(e.Error.Name, e.Error.Message)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return core.DeserializeResponseError(err)
	}
	return nil
}
