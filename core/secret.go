package core

import "log/slog"

const redacted = "[REDACTED]"

// Secret holds the gateway service key. Its value never shows up in fmt
// output, JSON, text encodings or slog records; Expose is the only way
// to read it.
//
//	key := NewSecret("wopr_sk_abc")
//	fmt.Println(key)  // [REDACTED]
//	key.Bearer()      // "Bearer wopr_sk_abc"
type Secret struct {
	value string
}

// NewSecret wraps value.
func NewSecret(value string) Secret {
	return Secret{value: value}
}

// String implements fmt.Stringer.
func (s Secret) String() string {
	return redacted
}

// GoString implements fmt.GoStringer.
func (s Secret) GoString() string {
	return "core.Secret{" + redacted + "}"
}

// MarshalJSON implements json.Marshaler.
func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redacted + `"`), nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Secret) MarshalText() ([]byte, error) {
	return []byte(redacted), nil
}

// LogValue implements slog.LogValuer.
func (s Secret) LogValue() slog.Value {
	return slog.StringValue(redacted)
}

// Expose returns the raw value. Only use it to build the Authorization header.
func (s Secret) Expose() string {
	return s.value
}

// Bearer returns the Authorization header value for the key.
func (s Secret) Bearer() string {
	return "Bearer " + s.value
}

// IsEmpty reports whether the key is empty.
func (s Secret) IsEmpty() bool {
	return s.value == ""
}
