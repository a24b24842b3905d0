package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
)

// Kind identifies the family of a gateway failure.
type Kind int

// Error kinds, one per status family.
const (
	KindAuthentication Kind = iota + 1
	KindInsufficientCredits
	KindRateLimit
	KindProvider
	KindServer
)

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindInsufficientCredits:
		return "insufficient_credits"
	case KindRateLimit:
		return "rate_limit"
	case KindProvider:
		return "provider"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Sentinel errors, one per Kind. *Error unwraps to the sentinel of its kind.
var (
	ErrAuthentication      = errors.New("authentication failed")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrRateLimited         = errors.New("rate limited")
	ErrProvider            = errors.New("provider error")
	ErrServer              = errors.New("server error")
)

// Sentinel errors for failures that never produced a gateway status.
var (
	ErrNetwork       = errors.New("network error")
	ErrDecode        = errors.New("decode error")
	ErrEncode        = errors.New("encode error")
	ErrNoBody        = errors.New("response body is nil")
	ErrInvalidParams = errors.New("invalid parameters")
)

// ErrorBody is the error envelope returned by the gateway:
//
//	{"error":{"message":"...","type":"...","code":"..."}}
//
// Credit errors (402) carry the extra remediation fields.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail is the inner object of ErrorBody.
type ErrorDetail struct {
	Message             string  `json:"message"`
	Type                string  `json:"type"`
	Code                string  `json:"code"`
	NeedsCredits        *bool   `json:"needsCredits,omitempty"`
	TopUpURL            *string `json:"topUpUrl,omitempty"`
	CurrentBalanceCents *int64  `json:"currentBalanceCents,omitempty"`
	RequiredCents       *int64  `json:"requiredCents,omitempty"`
}

// IsZero reports whether the envelope carries no error information at all.
func (b ErrorBody) IsZero() bool {
	d := b.Error
	return d.Message == "" && d.Type == "" && d.Code == "" &&
		d.NeedsCredits == nil && d.TopUpURL == nil &&
		d.CurrentBalanceCents == nil && d.RequiredCents == nil
}

// ParseErrorBody decodes a failed response body field by field. A field
// with an unexpected JSON type is dropped on its own; the rest of the
// envelope is kept. Credit amounts may be sent as any JSON number and are
// rounded to whole cents. ok is false when data is not JSON, has no "error"
// object, or the object carries none of the known fields.
func ParseErrorBody(data []byte) (body ErrorBody, ok bool) {
	var env struct {
		Error map[string]json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(data, &env); err != nil || env.Error == nil {
		return ErrorBody{}, false
	}

	f := env.Error
	body.Error = ErrorDetail{
		Message:             stringField(f["message"]),
		Type:                stringField(f["type"]),
		Code:                stringField(f["code"]),
		NeedsCredits:        boolField(f["needsCredits"]),
		TopUpURL:            optionalStringField(f["topUpUrl"]),
		CurrentBalanceCents: centsField(f["currentBalanceCents"]),
		RequiredCents:       centsField(f["requiredCents"]),
	}
	if body.IsZero() {
		return ErrorBody{}, false
	}
	return body, true
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func stringField(raw json.RawMessage) string {
	var s string
	if isNull(raw) || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func optionalStringField(raw json.RawMessage) *string {
	var s string
	if isNull(raw) || json.Unmarshal(raw, &s) != nil {
		return nil
	}
	return &s
}

func boolField(raw json.RawMessage) *bool {
	var b bool
	if isNull(raw) || json.Unmarshal(raw, &b) != nil {
		return nil
	}
	return &b
}

func centsField(raw json.RawMessage) *int64 {
	var n json.Number
	if isNull(raw) || json.Unmarshal(raw, &n) != nil {
		return nil
	}
	if v, err := n.Int64(); err == nil {
		return &v
	}
	f, err := n.Float64()
	if err != nil || math.IsInf(f, 0) || math.Abs(f) >= math.MaxInt64 {
		return nil
	}
	v := int64(math.Round(f))
	return &v
}

// FallbackErrorBody builds the envelope used when a failed response has no
// parseable error body.
func FallbackErrorBody(status int, statusText string) ErrorBody {
	if statusText == "" {
		statusText = http.StatusText(status)
	}
	return ErrorBody{
		Error: ErrorDetail{
			Message: fmt.Sprintf("HTTP %d: %s", status, statusText),
			Type:    "server_error",
			Code:    "unknown_error",
		},
	}
}

// Error is a classified gateway failure. Exactly one Kind is assigned per
// status code; the credit fields are only set for KindInsufficientCredits.
type Error struct {
	StatusCode int
	Kind       Kind
	Message    string
	Type       string
	Code       string

	NeedsCredits        bool
	TopUpURL            *string
	CurrentBalanceCents *int64
	RequiredCents       *int64
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("wopr: %s (status=%d, kind=%s, code=%s)",
		e.Message, e.StatusCode, e.Kind, e.Code)
}

// Unwrap returns the sentinel for the error's kind.
func (e *Error) Unwrap() error {
	switch e.Kind {
	case KindAuthentication:
		return ErrAuthentication
	case KindInsufficientCredits:
		return ErrInsufficientCredits
	case KindRateLimit:
		return ErrRateLimited
	case KindProvider:
		return ErrProvider
	default:
		return ErrServer
	}
}

// Classify maps a non-2xx status and its error envelope to a classified error.
// The first matching rule wins:
//
//  1. 401 -> KindAuthentication
//  2. 402 -> KindInsufficientCredits (NeedsCredits defaults to true)
//  3. 429 -> KindRateLimit
//  4. any other 4xx -> KindProvider
//  5. everything else -> KindServer
//
// Classify is pure and never fails.
func Classify(status int, body ErrorBody) *Error {
	e := &Error{
		StatusCode: status,
		Kind:       kindForStatus(status),
		Message:    body.Error.Message,
		Type:       body.Error.Type,
		Code:       body.Error.Code,
	}

	if e.Kind == KindInsufficientCredits {
		e.NeedsCredits = true
		if body.Error.NeedsCredits != nil {
			e.NeedsCredits = *body.Error.NeedsCredits
		}
		e.TopUpURL = body.Error.TopUpURL
		e.CurrentBalanceCents = body.Error.CurrentBalanceCents
		e.RequiredCents = body.Error.RequiredCents
	}

	return e
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindAuthentication
	case status == http.StatusPaymentRequired:
		return KindInsufficientCredits
	case status == http.StatusTooManyRequests:
		return KindRateLimit
	case status >= 400 && status < 500:
		return KindProvider
	default:
		return KindServer
	}
}

// IsKind reports whether err is a classified error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// ValidationError reports request parameters rejected before any network call.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid parameters: " + e.Message
	}
	return fmt.Sprintf("invalid parameters: %s: %s", e.Field, e.Message)
}

// Unwrap returns ErrInvalidParams.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidParams
}
