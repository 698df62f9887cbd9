package utils

import (
	"bytes"
	"encoding/json"
	"reflect"
	"time"
)

// OptionalTime tracks presence and value of a nullable JSON timestamp:
//   - Present=false: field absent (leave unchanged)
//   - Present=true, Value=nil: field is null (clear)
//   - Present=true, Value set: new value
type OptionalTime struct {
	Present bool
	Value   *time.Time
}

// UnmarshalJSON is only called when the field is present.
func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		// UnmarshalTypeError lets the decoder attach the field name.
		return &json.UnmarshalTypeError{Value: string(data), Type: reflect.TypeOf(t)}
	}
	o.Value = &t
	return nil
}

// Truthy decodes any JSON value into a flag: false, null, 0, "", [] and {}
// are false, everything else is true.
type Truthy bool

func (b *Truthy) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*b = false
	case bool:
		*b = Truthy(x)
	case float64:
		*b = x != 0
	case string:
		*b = x != ""
	case []interface{}:
		*b = len(x) > 0
	case map[string]interface{}:
		*b = len(x) > 0
	default:
		*b = true
	}
	return nil
}
