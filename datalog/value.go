package datalog

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Value represents any value that can be stored in a Triple.
// Like the rest of the engine we use interface{} with direct Go types.
type Value interface{}

// Valid value types:
// - string
// - any Go integer kind (compared as int64)
// - float32, float64 (compared as float64; integral floats equal integers)
// - bool
// - time.Time
// - []byte
// - Keyword
// - nil

// Helper functions for creating typed values
func String(s string) Value        { return s }
func Int(i int64) Value            { return i }
func Float(f float64) Value        { return f }
func Bool(b bool) Value            { return b }
func Time(t time.Time) Value       { return t }
func Bytes(b []byte) Value         { return b }
func KeywordValue(k Keyword) Value { return k }

// float64 bounds of the int64 range: [-2^63, 2^63)
const (
	minInt64Float  = -9223372036854775808.0
	maxInt64Float  = 9223372036854775808.0
	maxUint64Float = 18446744073709551616.0
)

// Normalize maps a value onto its canonical representation for comparison.
// Integer kinds become int64, except unsigned values above MaxInt64 which
// stay uint64. float32 becomes float64, and integral floats become the
// integer they equal when one of those two types can hold it.
// Normalize never changes what is stored in a Triple; it is only used to
// decide equality and to derive index keys.
func Normalize(v Value) Value {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case uint:
		return normalizeUint(uint64(n))
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		return normalizeUint(n)
	case float32:
		return normalizeFloat(float64(n))
	case float64:
		return normalizeFloat(n)
	case *Keyword:
		if n == nil {
			return nil
		}
		return *n
	}
	return v
}

func normalizeUint(u uint64) Value {
	if u <= math.MaxInt64 {
		return int64(u)
	}
	return u
}

func normalizeFloat(f float64) Value {
	if f != math.Trunc(f) {
		return f
	}
	switch {
	case f >= minInt64Float && f < maxInt64Float:
		return int64(f)
	case f >= maxInt64Float && f < maxUint64Float:
		return uint64(f)
	}
	return f
}

// FormatValue renders a value for display
func FormatValue(v Value) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(val)
	case Keyword:
		return val.String()
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case []byte:
		return fmt.Sprintf("#bytes %x", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
