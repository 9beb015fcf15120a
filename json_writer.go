package fintrack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// jsonObject builds a JSON object whose fields keep their insertion order.
// The first marshalling error sticks and is returned by MarshalJSON.
type jsonObject struct {
	buf bytes.Buffer
	err error
}

// Field appends key with value marshalled by json.Marshal.
func (o *jsonObject) Field(key string, value any) *jsonObject {
	if o.err != nil {
		return o
	}
	v, err := json.Marshal(value)
	if err != nil {
		o.err = fmt.Errorf("field %q: %w", key, err)
		return o
	}
	k, _ := json.Marshal(key)
	if o.buf.Len() > 0 {
		o.buf.WriteByte(',')
	}
	o.buf.Write(k)
	o.buf.WriteByte(':')
	o.buf.Write(v)
	return o
}

// OmitEmpty appends key unless value is the zero value of its type.
func (o *jsonObject) OmitEmpty(key string, value any) *jsonObject {
	if v := reflect.ValueOf(value); !v.IsValid() || v.IsZero() {
		return o
	}
	return o.Field(key, value)
}

// MarshalJSON returns the object built so far.
func (o *jsonObject) MarshalJSON() ([]byte, error) {
	if o.err != nil {
		return nil, o.err
	}
	out := make([]byte, 0, o.buf.Len()+2)
	out = append(out, '{')
	out = append(out, o.buf.Bytes()...)
	return append(out, '}'), nil
}
