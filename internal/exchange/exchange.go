// Package exchange defines the contract every exchange codec implements:
// converting an operation plus a credential into a signed payload, and
// classifying the raw response back into a typed value or a Failure.
package exchange

import (
	"time"

	"exchange-sdk/internal/core"
)

// Exchange is one exchange's signing strategy and response codec. Sign
// receives the clock sample and nonce from the pipeline so that signing is
// deterministic under test; both are sampled exactly once per call.
type Exchange interface {
	Name() string
	Sign(op *core.Operation, cred core.Credential, at time.Time, nonce string) (*core.SignedPayload, error)
	Decode(resp *core.WireResponse, out any) error
}
