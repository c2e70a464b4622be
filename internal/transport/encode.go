package transport

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"exchange-sdk/internal/core"
)

// Encode turns a signed payload into a concrete wire request. GET attaches
// the encoded query to the URL and carries no body; POST and DELETE carry
// the payload as the body. Any other method is rejected at this boundary.
func Encode(op *core.Operation, payload *core.SignedPayload) (*core.WireRequest, error) {
	if strings.Contains(op.Path, "?") {
		return nil, core.ConstructRequestError(fmt.Errorf("path %q already carries a query", op.Path))
	}
	if _, err := url.Parse(op.Path); err != nil {
		return nil, core.ConstructRequestError(err)
	}

	header := http.Header{}
	for key, values := range payload.Header {
		for _, v := range values {
			header.Add(key, v)
		}
	}
	header.Set("Accept", "application/json")

	switch op.Method {
	case http.MethodGet:
		target := op.Path
		if payload.Query != "" {
			target += "?" + payload.Query
		}
		return &core.WireRequest{Method: op.Method, URL: target, Header: header}, nil
	case http.MethodPost, http.MethodDelete:
		body := payload.Body
		if body == nil {
			body = []byte(payload.Query)
		}
		if payload.ContentType != "" {
			header.Set("Content-Type", payload.ContentType)
		}
		return &core.WireRequest{Method: op.Method, URL: op.Path, Header: header, Body: body}, nil
	default:
		return nil, core.NotSupportedError("http method " + op.Method)
	}
}

// RevertBrackets undoes the percent-encoding of square brackets after
// generic query encoding. Exchanges that take list parameters in the
// "name[]=" form reject the escaped variant. The transform is idempotent
// and touches nothing but the two escape sequences.
func RevertBrackets(query string) string {
	query = strings.ReplaceAll(query, "%5B", "[")
	return strings.ReplaceAll(query, "%5D", "]")
}
