package upbit

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"exchange-sdk/internal/core"
	"exchange-sdk/internal/pipeline"
	"exchange-sdk/internal/transport"
)

func parseBearer(t *testing.T, payload *core.SignedPayload, secret string) jwt.MapClaims {
	t.Helper()
	auth := payload.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		t.Fatalf("Authorization = %q, want Bearer token", auth)
	}
	token, err := jwt.Parse(strings.TrimPrefix(auth, "Bearer "), func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		t.Fatalf("token did not verify against the secret: %v", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("claims have type %T", token.Claims)
	}
	return claims
}

func TestSignBearerTokenClaims(t *testing.T) {
	params := core.Params{
		{Key: "markets[]", Value: "KRW-BTC"},
		{Key: "markets[]", Value: "KRW-ETH"},
	}
	op := core.NewOperation(http.MethodGet, "https://api.upbit.com/v1/orderbook", params, core.AuthPrivate)
	cred := core.Credential{Key: "access", Secret: "secret"}

	payload, err := Exchange{}.Sign(op, cred, time.Now(), "nonce-1")
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	wantQuery := "markets[]=KRW-BTC&markets[]=KRW-ETH"
	if payload.Query != wantQuery {
		t.Fatalf("Query = %q, want %q", payload.Query, wantQuery)
	}

	claims := parseBearer(t, payload, "secret")
	if claims["access_key"] != "access" {
		t.Fatalf("access_key = %v", claims["access_key"])
	}
	if claims["nonce"] != "nonce-1" {
		t.Fatalf("nonce = %v", claims["nonce"])
	}
	sum := sha512.Sum512([]byte(wantQuery))
	if claims["query_hash"] != hex.EncodeToString(sum[:]) {
		t.Fatalf("query_hash = %v, want hash of %q", claims["query_hash"], wantQuery)
	}
	if claims["query_hash_alg"] != "SHA512" {
		t.Fatalf("query_hash_alg = %v", claims["query_hash_alg"])
	}
}

func TestSignEmptyQueryOmitsHashClaims(t *testing.T) {
	op := core.NewOperation(http.MethodGet, "https://api.upbit.com/v1/accounts", nil, core.AuthPrivate)
	payload, err := Exchange{}.Sign(op, core.Credential{Key: "access", Secret: "secret"}, time.Now(), "n")
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	claims := parseBearer(t, payload, "secret")
	if _, ok := claims["query_hash"]; ok {
		t.Fatalf("query_hash present for empty field set")
	}
	if _, ok := claims["query_hash_alg"]; ok {
		t.Fatalf("query_hash_alg present for empty field set")
	}
}

// Write operations transmit JSON but the token hash still covers the
// urlencoded rendering of the same fields.
func TestSignWriteBodyIsJSONHashIsQuery(t *testing.T) {
	params := core.Params{
		{Key: "market", Value: "KRW-BTC"},
		{Key: "side", Value: "bid"},
		{Key: "volume", Value: "0.01"},
		{Key: "price", Value: "100000"},
		{Key: "ord_type", Value: "limit"},
	}
	op := core.NewOperation(http.MethodPost, "https://api.upbit.com/v1/orders", params, core.AuthPrivate)
	payload, err := Exchange{}.Sign(op, core.Credential{Key: "access", Secret: "secret"}, time.Now(), "n")
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	wantBody := `{"market":"KRW-BTC","side":"bid","volume":"0.01","price":"100000","ord_type":"limit"}`
	if string(payload.Body) != wantBody {
		t.Fatalf("Body = %s, want %s", payload.Body, wantBody)
	}
	if payload.ContentType != "application/json" {
		t.Fatalf("ContentType = %q", payload.ContentType)
	}

	wantQuery := "market=KRW-BTC&side=bid&volume=0.01&price=100000&ord_type=limit"
	claims := parseBearer(t, payload, "secret")
	sum := sha512.Sum512([]byte(wantQuery))
	if claims["query_hash"] != hex.EncodeToString(sum[:]) {
		t.Fatalf("query_hash covers %v, want the urlencoded form %q", claims["query_hash"], wantQuery)
	}
}

func TestSignDisabledCarriesNoAuthorization(t *testing.T) {
	params := core.Params{{Key: "markets", Value: "KRW-BTC"}}
	op := core.NewOperation(http.MethodGet, "https://api.upbit.com/v1/ticker", params, core.AuthDisabled)
	payload, err := Exchange{}.Sign(op, core.Credential{Key: "access", Secret: "secret"}, time.Now(), "n")
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	if got := payload.Header.Get("Authorization"); got != "" {
		t.Fatalf("Authorization = %q, want empty for disabled auth", got)
	}
}

func TestSignPrivateWithoutCredential(t *testing.T) {
	op := core.NewOperation(http.MethodGet, "https://api.upbit.com/v1/accounts", nil, core.AuthPrivate)
	_, err := Exchange{}.Sign(op, core.Credential{}, time.Now(), "n")
	if !core.IsKind(err, core.FailNotSupported) {
		t.Fatalf("Sign() error = %v, want not_supported failure", err)
	}
}

func TestDecodeErrorEnvelope(t *testing.T) {
	body := []byte(`{"error":{"name":"invalid_query_payload","message":"잘못된 요청입니다."}}`)
	err := Exchange{}.Decode(&core.WireResponse{Status: 401, Body: body}, nil)
	f, ok := core.AsFailure(err)
	if !ok || f.Kind != core.FailRequestFailed {
		t.Fatalf("Decode() error = %v, want request_failed failure", err)
	}
	if f.Code != "invalid_query_payload" {
		t.Fatalf("Code = %q", f.Code)
	}
}

func TestDecodeBarePayload(t *testing.T) {
	body := []byte(`[{"currency":"KRW","balance":"1000.5"}]`)
	var out []Account
	if err := (Exchange{}).Decode(&core.WireResponse{Status: 200, Body: body}, &out); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(out) != 1 || out[0].Currency != "KRW" || out[0].Balance.String() != "1000.5" {
		t.Fatalf("decoded %+v", out)
	}
}

func TestDecodeGarbageSuccessBody(t *testing.T) {
	var out []Account
	err := Exchange{}.Decode(&core.WireResponse{Status: 200, Body: []byte(`not json`)}, &out)
	if !core.IsKind(err, core.FailDeserializeResponse) {
		t.Fatalf("Decode() error = %v, want deserialize_response failure", err)
	}
}

func TestClientOrderbookBracketWire(t *testing.T) {
	var gotRawQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRawQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[{"market":"KRW-BTC","orderbook_units":[]}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, pipeline.Options{Transport: transport.NewHTTPClient(server.Client())})
	books, err := client.Orderbook(context.Background(), "KRW-BTC", "KRW-ETH")
	if err != nil {
		t.Fatalf("Orderbook() error = %v", err)
	}
	if len(books) != 1 || books[0].Market != "KRW-BTC" {
		t.Fatalf("decoded %+v", books)
	}
	if gotRawQuery != "markets[]=KRW-BTC&markets[]=KRW-ETH" {
		t.Fatalf("raw query = %q, want literal brackets", gotRawQuery)
	}
}

func TestClientCancelOrderSendsJSONBody(t *testing.T) {
	var gotBody []byte
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"uuid":"abc","state":"wait"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, pipeline.Options{
		Credential: core.Credential{Key: "access", Secret: "secret"},
		Transport:  transport.NewHTTPClient(server.Client()),
		Nonce:      func() string { return "nonce-1" },
	})
	order, err := client.CancelOrder(context.Background(), "abc")
	if err != nil {
		t.Fatalf("CancelOrder() error = %v", err)
	}
	if order.UUID != "abc" {
		t.Fatalf("decoded %+v", order)
	}
	var decoded map[string]string
	if err := json.Unmarshal(gotBody, &decoded); err != nil {
		t.Fatalf("body %q is not JSON: %v", gotBody, err)
	}
	if decoded["uuid"] != "abc" {
		t.Fatalf("body = %q", gotBody)
	}
	if !strings.HasPrefix(gotAuth, "Bearer ") {
		t.Fatalf("Authorization = %q", gotAuth)
	}
}
