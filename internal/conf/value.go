package conf

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Kind tags the scalar type stored in a leaf.
type Kind int

const (
	KindString Kind = iota
	KindInt32
	KindInt64
	KindFloat64
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindFloat64:
		return "float64"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Scalar is the set of Go types a leaf can hold.
type Scalar interface {
	string | int32 | int64 | float64 | bool
}

func kindOf[T Scalar]() Kind {
	var zero T
	switch any(zero).(type) {
	case string:
		return KindString
	case int32:
		return KindInt32
	case int64:
		return KindInt64
	case float64:
		return KindFloat64
	default:
		return KindBool
	}
}

// fromDocument converts a value of the generic document tree into T.
//
// The document tree is what toml.Decode produces for map[string]any targets:
// strings, int64 integers, float64 floats and bools. No coercion happens
// between those kinds, so `max_lines = "10"` or `auto_max_age = 30` are
// rejected rather than guessed at.
func fromDocument[T Scalar](v any) (T, error) {
	var zero T
	var out any
	switch any(zero).(type) {
	case string:
		s, ok := v.(string)
		if !ok {
			return zero, newError("Invalid string")
		}
		out = s
	case int64:
		i, ok := v.(int64)
		if !ok {
			return zero, newError("Invalid integer")
		}
		out = i
	case int32:
		i, ok := v.(int64)
		if !ok {
			return zero, newError("Invalid integer")
		}
		if i < math.MinInt32 || i > math.MaxInt32 {
			return zero, newError("Integer %d out of range for int32", i)
		}
		out = int32(i)
	case float64:
		f, ok := v.(float64)
		if !ok {
			return zero, newError("Invalid float")
		}
		out = f
	case bool:
		b, ok := v.(bool)
		if !ok {
			return zero, newError("Invalid boolean")
		}
		out = b
	}
	return out.(T), nil
}

// fromText parses command line text into T using Go literal rules.
func fromText[T Scalar](s string) (T, error) {
	var zero T
	var out any
	switch any(zero).(type) {
	case string:
		out = s
	case int64:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return zero, wrapError(err, "Invalid integer %q", s)
		}
		out = i
	case int32:
		i, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return zero, wrapError(err, "Invalid integer %q", s)
		}
		out = int32(i)
	case float64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return zero, wrapError(err, "Invalid float %q", s)
		}
		out = f
	case bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return zero, wrapError(err, "Invalid boolean %q", s)
		}
		out = b
	}
	return out.(T), nil
}

// formatKeyValue renders `key = value` as a single TOML line.
func formatKeyValue(key string, value any) string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(map[string]any{key: value}); err != nil {
		// Scalars always encode; anything else is a programming error.
		panic(fmt.Sprintf("encoding %s: %v", key, err))
	}
	return buf.String()
}
