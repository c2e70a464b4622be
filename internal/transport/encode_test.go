package transport

import (
	"net/http"
	"testing"

	"exchange-sdk/internal/core"
)

func TestEncodeGetAppendsQuery(t *testing.T) {
	op := core.NewOperation(http.MethodGet, "https://api.example.com/v1/ticker", nil, core.AuthDisabled)
	req, err := Encode(op, &core.SignedPayload{Query: "symbol=BTCUSDT"})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if req.URL != "https://api.example.com/v1/ticker?symbol=BTCUSDT" {
		t.Fatalf("URL = %q", req.URL)
	}
	if req.Body != nil {
		t.Fatalf("GET body = %q, want nil", req.Body)
	}
}

func TestEncodeGetEmptyQueryOmitsSeparator(t *testing.T) {
	op := core.NewOperation(http.MethodGet, "https://api.example.com/v1/accounts", nil, core.AuthDisabled)
	req, err := Encode(op, &core.SignedPayload{})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if req.URL != "https://api.example.com/v1/accounts" {
		t.Fatalf("URL = %q, want no trailing separator", req.URL)
	}
}

func TestEncodePostQueryBecomesBody(t *testing.T) {
	op := core.NewOperation(http.MethodPost, "https://api.example.com/v1/order", nil, core.AuthPrivate)
	payload := &core.SignedPayload{
		Query:       "symbol=BTCUSDT&side=BUY",
		ContentType: "application/x-www-form-urlencoded",
	}
	req, err := Encode(op, payload)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if req.URL != "https://api.example.com/v1/order" {
		t.Fatalf("URL = %q, want bare path", req.URL)
	}
	if string(req.Body) != "symbol=BTCUSDT&side=BUY" {
		t.Fatalf("Body = %q", req.Body)
	}
	if got := req.Header.Get("Content-Type"); got != "application/x-www-form-urlencoded" {
		t.Fatalf("Content-Type = %q", got)
	}
}

func TestEncodeBodyOverridesQuery(t *testing.T) {
	op := core.NewOperation(http.MethodPost, "https://api.example.com/v1/orders", nil, core.AuthPrivate)
	payload := &core.SignedPayload{
		Query:       "market=KRW-BTC",
		Body:        []byte(`{"market":"KRW-BTC"}`),
		ContentType: "application/json",
	}
	req, err := Encode(op, payload)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if string(req.Body) != `{"market":"KRW-BTC"}` {
		t.Fatalf("Body = %q, want the JSON override", req.Body)
	}
}

func TestEncodeDeleteCarriesBody(t *testing.T) {
	op := core.NewOperation(http.MethodDelete, "https://api.example.com/v1/order", nil, core.AuthPrivate)
	req, err := Encode(op, &core.SignedPayload{Query: "uuid=abc"})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if string(req.Body) != "uuid=abc" {
		t.Fatalf("Body = %q", req.Body)
	}
}

func TestEncodeRejectsPathWithQuery(t *testing.T) {
	op := core.NewOperation(http.MethodGet, "https://api.example.com/v1/ticker?x=1", nil, core.AuthDisabled)
	_, err := Encode(op, &core.SignedPayload{})
	if !core.IsKind(err, core.FailConstructRequest) {
		t.Fatalf("Encode() error = %v, want construct_request failure", err)
	}
}

func TestEncodeRejectsUnknownMethod(t *testing.T) {
	op := core.NewOperation(http.MethodPut, "https://api.example.com/v1/order", nil, core.AuthPrivate)
	_, err := Encode(op, &core.SignedPayload{})
	if !core.IsKind(err, core.FailNotSupported) {
		t.Fatalf("Encode() error = %v, want not_supported failure", err)
	}
}

func TestEncodeAlwaysSetsAccept(t *testing.T) {
	op := core.NewOperation(http.MethodGet, "https://api.example.com/v1/ticker", nil, core.AuthDisabled)
	req, err := Encode(op, &core.SignedPayload{})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if got := req.Header.Get("Accept"); got != "application/json" {
		t.Fatalf("Accept = %q", got)
	}
}

func TestEncodeCopiesPayloadHeaders(t *testing.T) {
	op := core.NewOperation(http.MethodGet, "https://api.example.com/v1/account", nil, core.AuthPrivate)
	payload := &core.SignedPayload{}
	payload.SetHeader("X-MBX-APIKEY", "key")
	req, err := Encode(op, payload)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if got := req.Header.Get("X-MBX-APIKEY"); got != "key" {
		t.Fatalf("X-MBX-APIKEY = %q", got)
	}
	// The original payload header must stay untouched by later mutation.
	req.Header.Set("X-MBX-APIKEY", "other")
	if got := payload.Header.Get("X-MBX-APIKEY"); got != "key" {
		t.Fatalf("payload header mutated to %q", got)
	}
}

func TestRevertBrackets(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"markets%5B%5D=KRW-BTC", "markets[]=KRW-BTC"},
		{"markets%5B%5D=KRW-BTC&markets%5B%5D=KRW-ETH", "markets[]=KRW-BTC&markets[]=KRW-ETH"},
		{"markets[]=KRW-BTC", "markets[]=KRW-BTC"},
		{"plain=value", "plain=value"},
		// Double-escaped sequences contain no %5B substring and pass through.
		{"x=%255B", "x=%255B"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := RevertBrackets(tc.in); got != tc.want {
			t.Fatalf("RevertBrackets(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRevertBracketsIdempotent(t *testing.T) {
	in := "markets%5B%5D=KRW-BTC"
	once := RevertBrackets(in)
	twice := RevertBrackets(once)
	if once != twice {
		t.Fatalf("RevertBrackets not idempotent: %q vs %q", once, twice)
	}
}
