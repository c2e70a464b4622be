package bithumb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"exchange-sdk/internal/core"
	"exchange-sdk/internal/pipeline"
	"exchange-sdk/internal/transport"
)

// A Private-tagged operation must produce the same wire payload as a
// Disabled one: there is no signer to invoke.
func TestSignPrivateSameAsDisabled(t *testing.T) {
	params := core.Params{
		{Key: "order_currency", Value: "BTC"},
		{Key: "payment_currency", Value: "KRW"},
	}
	private := core.NewOperation(http.MethodPost, "https://api.bithumb.com/info/orders", params, core.AuthPrivate)
	public := core.NewOperation(http.MethodPost, "https://api.bithumb.com/info/orders", params, core.AuthDisabled)
	cred := core.Credential{Key: "key", Secret: "secret"}

	fromPrivate, err := Exchange{}.Sign(private, cred, time.Now(), "nonce")
	if err != nil {
		t.Fatalf("Sign(private) error = %v", err)
	}
	fromPublic, err := Exchange{}.Sign(public, core.Credential{}, time.Now(), "other")
	if err != nil {
		t.Fatalf("Sign(disabled) error = %v", err)
	}
	if !reflect.DeepEqual(fromPrivate, fromPublic) {
		t.Fatalf("private payload %+v differs from disabled payload %+v", fromPrivate, fromPublic)
	}
	if len(fromPrivate.Header) != 0 {
		t.Fatalf("payload carries headers: %v", fromPrivate.Header)
	}
}

func TestSignRevertsBrackets(t *testing.T) {
	params := core.Params{{Key: "currencies[]", Value: "BTC"}}
	op := core.NewOperation(http.MethodGet, "https://api.bithumb.com/public/ticker/BTC_KRW", params, core.AuthDisabled)
	payload, err := Exchange{}.Sign(op, core.Credential{}, time.Now(), "")
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	if payload.Query != "currencies[]=BTC" {
		t.Fatalf("Query = %q, want literal brackets", payload.Query)
	}
}

func TestDecodeUnwrapsStatusDataEnvelope(t *testing.T) {
	body := []byte(`{"status":"0000","data":{"opening_price":"100","closing_price":"110","date":"1700000000000"}}`)
	var out Ticker
	if err := (Exchange{}).Decode(&core.WireResponse{Status: 200, Body: body}, &out); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if out.OpeningPrice.String() != "100" || out.ClosingPrice.String() != "110" {
		t.Fatalf("decoded %+v", out)
	}
}

func TestDecodeMissingDataIsDeserializeFailure(t *testing.T) {
	var out Ticker
	err := Exchange{}.Decode(&core.WireResponse{Status: 200, Body: []byte(`{"status":"0000"}`)}, &out)
	if !core.IsKind(err, core.FailDeserializeResponse) {
		t.Fatalf("Decode() error = %v, want deserialize_response failure", err)
	}
}

func TestDecodeErrorSchema(t *testing.T) {
	body := []byte(`{"status":"5100","message":"Bad Request"}`)
	err := Exchange{}.Decode(&core.WireResponse{Status: 400, Body: body}, nil)
	f, ok := core.AsFailure(err)
	if !ok || f.Kind != core.FailRequestFailed {
		t.Fatalf("Decode() error = %v, want request_failed failure", err)
	}
	if f.Code != "5100" || f.Message != "Bad Request" {
		t.Fatalf("Code/Message = %q/%q", f.Code, f.Message)
	}
}

// The credential must never reach the wire: Orders is private-tagged but
// goes out without any authentication material.
func TestClientOrdersWireHasNoAuthMaterial(t *testing.T) {
	var gotHeaders http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		_, _ = w.Write([]byte(`{"status":"0000","data":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, pipeline.Options{
		Credential: core.Credential{Key: "leakme", Secret: "leakme-too"},
		Transport:  transport.NewHTTPClient(server.Client()),
	})
	if _, err := client.Orders(context.Background(), "BTC", "KRW", 10); err != nil {
		t.Fatalf("Orders() error = %v", err)
	}
	for name, values := range gotHeaders {
		for _, v := range values {
			if v == "leakme" || v == "leakme-too" {
				t.Fatalf("credential material leaked in header %s", name)
			}
		}
	}
	if gotHeaders.Get("Authorization") != "" {
		t.Fatalf("Authorization = %q, want empty", gotHeaders.Get("Authorization"))
	}
}

func TestClientTickerPath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"status":"0000","data":{"closing_price":"42000000"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, pipeline.Options{Transport: transport.NewHTTPClient(server.Client())})
	ticker, err := client.Ticker(context.Background(), "BTC", "KRW")
	if err != nil {
		t.Fatalf("Ticker() error = %v", err)
	}
	if gotPath != "/public/ticker/BTC_KRW" {
		t.Fatalf("path = %q", gotPath)
	}
	if ticker.ClosingPrice.String() != "42000000" {
		t.Fatalf("decoded %+v", ticker)
	}
}
