package core

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// AuthClass declares how an operation must be authenticated. Strategy
// selection happens purely on this tag, never on the operation's type.
type AuthClass int

const (
	AuthDisabled AuthClass = iota
	AuthPrivate
)

func (a AuthClass) String() string {
	switch a {
	case AuthDisabled:
		return "disabled"
	case AuthPrivate:
		return "private"
	default:
		return "unknown"
	}
}

// Credential holds exchange-scoped secret material. It is created once at
// client construction and shared read-only across calls. Passphrase is only
// used by exchanges that require one.
type Credential struct {
	Key        string
	Secret     string
	Passphrase string
}

func (c Credential) IsZero() bool {
	return c.Key == "" && c.Secret == "" && c.Passphrase == ""
}

// String elides the secret material so a credential can never leak through
// %v, %s, or error wrapping.
func (c Credential) String() string {
	if c.IsZero() {
		return "Credential(empty)"
	}
	return "Credential(key=" + redactKey(c.Key) + ")"
}

func (c Credential) GoString() string {
	return c.String()
}

// LogValue keeps slog output as redacted as String.
func (c Credential) LogValue() slog.Value {
	return slog.StringValue(c.String())
}

func redactKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return key[:4] + "****"
}

// Field is one key/value pair of an operation's parameter set.
type Field struct {
	Key   string
	Value string
}

// Params is an ordered field set. Order is significant: signatures are
// computed over the encoded string in declared order, so Params never sorts.
// Repeated keys are allowed for list-valued fields (e.g. "markets[]").
type Params []Field

func (p *Params) Add(key, value string) {
	*p = append(*p, Field{Key: key, Value: value})
}

// Get returns the value of the first field with the given key.
func (p Params) Get(key string) string {
	for _, f := range p {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}

func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	copy(out, p)
	return out
}

// Encode renders the fields as an application/x-www-form-urlencoded string
// in declared order.
func (p Params) Encode() string {
	var b strings.Builder
	for i, f := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(f.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(f.Value))
	}
	return b.String()
}

// EncodeJSON renders the fields as a JSON object in declared order. A "[]"
// suffix on a key marks a list-valued field: it is dropped from the member
// name and the values, however many, become a JSON array.
func (p Params) EncodeJSON() ([]byte, error) {
	type member struct {
		key  string
		list bool
		vals []string
	}
	members := make([]*member, 0, len(p))
	index := make(map[string]*member, len(p))
	for _, f := range p {
		key := strings.TrimSuffix(f.Key, "[]")
		if m, ok := index[key]; ok {
			m.vals = append(m.vals, f.Value)
			m.list = true
			continue
		}
		m := &member{key: key, list: strings.HasSuffix(f.Key, "[]"), vals: []string{f.Value}}
		index[key] = m
		members = append(members, m)
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range members {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		var encoded []byte
		if m.list {
			encoded, err = json.Marshal(m.vals)
		} else {
			encoded, err = json.Marshal(m.vals[0])
		}
		if err != nil {
			return nil, err
		}
		buf.Write(encoded)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Operation describes one API call before encoding and signing. It is
// constructed per call and consumed exactly once: a retry needs a fresh
// Operation because timestamps and nonces are derived during signing.
type Operation struct {
	Method string
	Path   string // absolute URL without a query component
	Params Params
	Auth   AuthClass
}

func NewOperation(method, path string, params Params, auth AuthClass) *Operation {
	return &Operation{Method: method, Path: path, Params: params, Auth: auth}
}

// SignedPayload is the wire-ready output of a signing strategy. Query holds
// the final encoded parameter string, signature included where the strategy
// puts it there. Body, when set, replaces Query as the write-method body
// (Upbit transmits JSON while signing over the query encoding).
type SignedPayload struct {
	Query       string
	Body        []byte
	ContentType string
	Header      http.Header
}

func (p *SignedPayload) SetHeader(key, value string) {
	if p.Header == nil {
		p.Header = http.Header{}
	}
	p.Header.Set(key, value)
}

// WireRequest is a concrete HTTP request. GET never carries a body.
type WireRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// WireResponse is the raw result of a wire exchange, before classification.
type WireResponse struct {
	Status int
	Body   []byte
}
