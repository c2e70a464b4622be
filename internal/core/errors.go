package core

import (
	"errors"
	"fmt"
)

// FailureKind classifies where in the pipeline a call died. All kinds are
// terminal: the pipeline never retries, the caller decides.
type FailureKind int

const (
	// FailConstructRequest: URI/method assembly failed before anything was sent.
	FailConstructRequest FailureKind = iota + 1
	// FailSerializeBody: the field set could not be encoded.
	FailSerializeBody
	// FailTransport: network/connection/TLS failure, surfaced unchanged.
	FailTransport
	// FailRequestFailed: the exchange answered with a parsed error envelope.
	FailRequestFailed
	// FailDeserializeResponse: success status but the body did not parse as
	// the expected type.
	FailDeserializeResponse
	// FailNotSupported: the operation cannot be performed by this exchange
	// client, detected at the call boundary.
	FailNotSupported
)

func (k FailureKind) String() string {
	switch k {
	case FailConstructRequest:
		return "construct_request"
	case FailSerializeBody:
		return "serialize_body"
	case FailTransport:
		return "transport"
	case FailRequestFailed:
		return "request_failed"
	case FailDeserializeResponse:
		return "deserialize_response"
	case FailNotSupported:
		return "not_supported"
	default:
		return "unknown"
	}
}

// Failure is the uniform error value every pipeline stage produces. Code and
// Message carry the exchange's own diagnostics when Kind is
// FailRequestFailed; Err carries the underlying cause otherwise.
type Failure struct {
	Kind    FailureKind
	Code    string
	Message string
	Err     error
}

func (f *Failure) Error() string {
	switch f.Kind {
	case FailRequestFailed:
		return fmt.Sprintf("request failed: code=%s message=%s", f.Code, f.Message)
	case FailNotSupported:
		return "not supported: " + f.Message
	default:
		if f.Err != nil {
			return fmt.Sprintf("%s: %v", f.Kind, f.Err)
		}
		return f.Kind.String()
	}
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func ConstructRequestError(err error) *Failure {
	return &Failure{Kind: FailConstructRequest, Err: err}
}

func SerializeBodyError(err error) *Failure {
	return &Failure{Kind: FailSerializeBody, Err: err}
}

func TransportError(err error) *Failure {
	return &Failure{Kind: FailTransport, Err: err}
}

func RequestFailedError(code, message string) *Failure {
	return &Failure{Kind: FailRequestFailed, Code: code, Message: message}
}

func DeserializeResponseError(err error) *Failure {
	return &Failure{Kind: FailDeserializeResponse, Err: err}
}

func NotSupportedError(message string) *Failure {
	return &Failure{Kind: FailNotSupported, Message: message}
}

// AsFailure unwraps err into a *Failure if one is in the chain.
func AsFailure(err error) (*Failure, bool) {
	if err == nil {
		return nil, false
	}
	var f *Failure
	if !errors.As(err, &f) {
		return nil, false
	}
	return f, true
}

// IsKind reports whether err is a Failure of the given kind.
func IsKind(err error, kind FailureKind) bool {
	f, ok := AsFailure(err)
	return ok && f.Kind == kind
}
