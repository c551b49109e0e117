package data

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind tells what a Value holds
type Kind uint8

const (
	KindMissing Kind = iota
	KindText
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	default:
		return "missing"
	}
}

// MissingDisplay is how a missing cell is rendered as text
const MissingDisplay = "NA"

// Value is a single table cell: text, number, or explicitly missing.
// The zero Value is missing.
type Value struct {
	kind Kind
	text string
	num  float64
}

// Text returns a text cell
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Number returns a numeric cell. NaN is stored as missing so that
// every value stays comparable; negative zero is stored as zero.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Missing()
	}
	if f == 0 {
		f = 0
	}
	return Value{kind: KindNumber, num: f}
}

// Missing returns a missing cell
func Missing() Value {
	return Value{}
}

func (v Value) Kind() Kind      { return v.kind }
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// AsText returns the text content; ok is false unless the value is text.
func (v Value) AsText() (string, bool) {
	return v.text, v.kind == KindText
}

// AsNumber returns the numeric content; ok is false unless the value is a number.
func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// String renders the value for display. Numbers use the shortest
// representation that round-trips.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return MissingDisplay
	}
}

// ToText converts a number to its text form; text and missing values
// are returned unchanged.
func (v Value) ToText() Value {
	if v.kind == KindNumber {
		return Text(v.String())
	}
	return v
}

// Equal reports whether both values have the same kind and content
func (v Value) Equal(other Value) bool {
	return v == other
}

// Key returns a string that identifies the value including its kind,
// used to group rows by cell contents.
func (v Value) Key() string {
	switch v.kind {
	case KindText:
		return "t:" + v.text
	case KindNumber:
		return "n:" + v.String()
	default:
		return "m:"
	}
}

// MarshalJSON encodes missing as null, numbers as JSON numbers
// and text as JSON strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindText:
		return json.Marshal(v.text)
	case KindNumber:
		if math.IsInf(v.num, 0) {
			return nil, fmt.Errorf("cannot encode infinite number as JSON")
		}
		return json.Marshal(v.num)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler
func (v *Value) UnmarshalJSON(b []byte) error {
	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := FromInterface(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// FromInterface converts a Go scalar (as produced by encoding/json or
// database/sql) into a Value.
func FromInterface(raw interface{}) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Missing(), nil
	case string:
		return Text(x), nil
	case []byte:
		return Text(string(x)), nil
	case float64:
		return Number(x), nil
	case float32:
		return Number(float64(x)), nil
	case int:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	case int32:
		return Number(float64(x)), nil
	case bool:
		return Text(strconv.FormatBool(x)), nil
	case Value:
		return x, nil
	default:
		return Value{}, fmt.Errorf("unsupported cell type %T", raw)
	}
}

// Interface returns the value as a plain Go scalar: nil, string or float64.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return v.num
	default:
		return nil
	}
}

// KeyOf encodes a sequence of values into one string that is equal for two
// sequences exactly when all their values are equal.
func KeyOf(values ...Value) string {
	var sb strings.Builder
	for _, v := range values {
		k := v.Key()
		sb.WriteString(strconv.Itoa(len(k)))
		sb.WriteByte(':')
		sb.WriteString(k)
	}
	return sb.String()
}
