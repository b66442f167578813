package foolson

import (
	"encoding/json"
	"fmt"
)

// Direction identifies one of the four conversions between foolson, JSON
// and Go values. Only the two that read foolson are supported.
type Direction int8

const (
	FoolsonToJSON = Direction(iota)
	FoolsonToValue
	JSONToFoolson
	ValueToFoolson
)

func (d Direction) String() string {
	switch d {
	case FoolsonToJSON:
		return "foolson→json"
	case FoolsonToValue:
		return "foolson→value"
	case JSONToFoolson:
		return "json→foolson"
	case ValueToFoolson:
		return "value→foolson"
	default:
		panic("Unknown Direction")
	}
}

// Supported reports whether conversions in this direction are implemented.
func (d Direction) Supported() bool {
	return d == FoolsonToJSON || d == FoolsonToValue
}

func unsupported(d Direction) error {
	return &UnsupportedError{
		Direction: d,
		Msg:       fmt.Sprintf("no one has ever needed %s conversion, so it has not been implemented; please file a bug report if you need it", d),
	}
}

// Unmarshal converts the foolson document to JSON, and parses the result
// into v using [encoding/json.Unmarshal]. Errors from the JSON parser are
// wrapped, so [errors.As] can be used to recover a [*json.SyntaxError].
func Unmarshal(data []byte, v any) error {
	return unmarshal(data, v, Options{})
}

// UnmarshalWithOptions is like [Unmarshal] with transpiler options.
func UnmarshalWithOptions(data []byte, v any, opts Options) error {
	return unmarshal(data, v, opts)
}

func unmarshal(data []byte, v any, opts Options) error {
	js, err := ToJSONWithOptions(string(data), opts)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(js), v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// Decode parses the foolson document into a Go value. Objects become
// map[string]any, arrays []any, and scalars string, float64, bool or nil;
// as with [encoding/json].
func Decode(data []byte) (any, error) {
	var v any
	if err := Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// FromJSON would convert a JSON document to foolson. It always returns an
// [UnsupportedError].
func FromJSON(data []byte) ([]byte, error) {
	return nil, unsupported(JSONToFoolson)
}

// Marshal would convert a Go value to foolson. It always returns an
// [UnsupportedError].
func Marshal(v any) ([]byte, error) {
	return nil, unsupported(ValueToFoolson)
}

// Convert performs the conversion in direction d on the document in data.
// The result is the JSON text ([]byte) for [FoolsonToJSON] and the decoded
// value for [FoolsonToValue]. The other directions always fail.
func Convert(d Direction, data []byte) (any, error) {
	if !d.Supported() {
		return nil, unsupported(d)
	}
	if d == FoolsonToJSON {
		js, err := ToJSON(string(data))
		if err != nil {
			return nil, err
		}
		return []byte(js), nil
	}
	return Decode(data)
}
