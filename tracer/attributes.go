package tracer

import (
	"bytes"
	"fmt"

	"github.com/bytedance/sonic"
)

// Attributes is an optional JSON document attached to a log event or span.
//
// The zero value means "no attributes" and is stored as NULL. Constructors validate
// their input eagerly but defer the error: a malformed value is rejected with
// ErrInvalidAttributes by the Log or StartSpan call that receives it. This keeps
// call sites on one line:
//
//	tr.Log(ctx, "order placed", tracer.Attrs(map[string]interface{}{"order_id": id}))
type Attributes struct {
	raw []byte
	err error
}

var jsonNull = []byte("null")

// JSON wraps an encoded JSON document. Empty input and the literal null mean no
// attributes.
func JSON(doc string) Attributes {
	a, _ := ParseAttributes(doc)
	return a
}

// ParseAttributes is like JSON but also returns the validation error.
func ParseAttributes(doc string) (Attributes, error) {
	raw := bytes.TrimSpace([]byte(doc))
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) {
		return Attributes{}, nil
	}
	if !sonic.Valid(raw) {
		err := fmt.Errorf("%w: not a JSON document: %.64q", ErrInvalidAttributes, doc)
		return Attributes{err: err}, err
	}
	return Attributes{raw: raw}, nil
}

// Attrs encodes a map of attributes. A nil or empty map means no attributes.
func Attrs(kv map[string]interface{}) Attributes {
	if len(kv) == 0 {
		return Attributes{}
	}
	return Marshal(kv)
}

// Marshal encodes any JSON-serializable value.
func Marshal(v interface{}) Attributes {
	if v == nil {
		return Attributes{}
	}
	raw, err := sonic.Marshal(v)
	if err != nil {
		return Attributes{err: fmt.Errorf("%w: %w", ErrInvalidAttributes, err)}
	}
	if bytes.Equal(raw, jsonNull) {
		return Attributes{}
	}
	return Attributes{raw: raw}
}

// IsZero reports whether no attributes are set.
func (a Attributes) IsZero() bool {
	return len(a.raw) == 0 && a.err == nil
}

// Err returns the validation error, if any.
func (a Attributes) Err() error {
	return a.err
}

// Bytes returns a copy of the encoded document, or nil.
func (a Attributes) Bytes() []byte {
	return bytes.Clone(a.raw)
}

// String returns the encoded document, or "" when no attributes are set.
func (a Attributes) String() string {
	return string(a.raw)
}

// Map decodes the document into a map. It fails when the document is not an object.
func (a Attributes) Map() (map[string]interface{}, error) {
	if a.err != nil {
		return nil, a.err
	}
	m := map[string]interface{}{}
	if len(a.raw) == 0 {
		return m, nil
	}
	if err := sonic.Unmarshal(a.raw, &m); err != nil {
		return nil, fmt.Errorf("%w: not a JSON object: %w", ErrInvalidAttributes, err)
	}
	return m, nil
}

// With returns a copy of a with the keys of kv set, overriding existing keys.
// It fails when a holds something other than a JSON object.
func (a Attributes) With(kv map[string]interface{}) (Attributes, error) {
	if len(kv) == 0 {
		return a, a.err
	}
	m, err := a.Map()
	if err != nil {
		return a, err
	}
	for k, v := range kv {
		m[k] = v
	}
	merged := Marshal(m)
	return merged, merged.err
}
