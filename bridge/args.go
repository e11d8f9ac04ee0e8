package bridge

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// argError reports a problem with a command's arguments. It matches ErrBadArgs.
type argError struct {
	msg string
}

func (e *argError) Error() string {
	return e.msg
}

func (e *argError) Unwrap() error {
	return ErrBadArgs
}

func badArgs(format string, a ...any) error {
	return &argError{msg: fmt.Sprintf(format, a...)}
}

// Args are the decoded arguments of a single invocation
type Args struct {
	raw    json.RawMessage
	fields map[string]json.RawMessage
}

// ParseArgs decodes a JSON object of arguments
func ParseArgs(raw json.RawMessage) (Args, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Args{raw: json.RawMessage("{}"), fields: map[string]json.RawMessage{}}, nil
	}

	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return Args{}, badArgs("arguments must be a JSON object: %v", err)
	}
	return Args{raw: json.RawMessage(trimmed), fields: fields}, nil
}

// MustArgs builds Args from a Go value, panicking if it cannot be encoded.
// It is meant for in-process callers and tests.
func MustArgs(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

// Has reports whether key is present, even with a null value
func (a Args) Has(key string) bool {
	_, ok := a.fields[key]
	return ok
}

// IsNull reports whether key is absent or explicitly null
func (a Args) IsNull(key string) bool {
	v, ok := a.fields[key]
	return !ok || isNull(v)
}

// Decode unmarshals the whole argument object into v
func (a Args) Decode(v any) error {
	if err := json.Unmarshal(a.raw, v); err != nil {
		return badArgs("invalid arguments: %v", err)
	}
	return nil
}

// Value unmarshals a required key into v
func (a Args) Value(key string, v any) error {
	field, ok := a.fields[key]
	if !ok {
		return badArgs("missing required key %s", key)
	}
	if isNull(field) {
		return badArgs("invalid type: null for key %s", key)
	}
	if err := json.Unmarshal(field, v); err != nil {
		return badArgs("invalid value for key %s: %v", key, err)
	}
	return nil
}

// String returns a required string argument
func (a Args) String(key string) (string, error) {
	var s string
	err := a.Value(key, &s)
	return s, err
}

// OptionalString returns a string argument, or "" when absent or null
func (a Args) OptionalString(key string) (string, error) {
	if a.IsNull(key) {
		return "", nil
	}
	return a.String(key)
}

// Float returns a required numeric argument
func (a Args) Float(key string) (float64, error) {
	var f float64
	err := a.Value(key, &f)
	return f, err
}

// Bool returns a required boolean argument
func (a Args) Bool(key string) (bool, error) {
	var b bool
	err := a.Value(key, &b)
	return b, err
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}
