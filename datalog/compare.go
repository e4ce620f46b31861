package datalog

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// bytesKey is the index key for []byte values, which are not comparable
type bytesKey string

// timeKey is the index key for time.Time values. Two times that are Equal
// share a key regardless of location or monotonic reading.
type timeKey struct {
	sec  int64
	nsec int
}

// opaqueKey is the index key for values of non-comparable types
type opaqueKey string

// IndexKey returns a comparable key for v such that
//
//	ValuesEqual(a, b) == (IndexKey(a) == IndexKey(b))
//
// It is used to key the fact store's single-field indexes.
func IndexKey(v Value) interface{} {
	switch n := Normalize(v).(type) {
	case nil:
		return nil
	case int64, uint64, float64, string, bool, Keyword:
		return n
	case []byte:
		return bytesKey(n)
	case time.Time:
		return timeKey{sec: n.Unix(), nsec: n.Nanosecond()}
	default:
		if strictlyComparable(reflect.TypeOf(n)) {
			return n
		}
		return opaqueKey(fmt.Sprintf("%T:%v", n, n))
	}
}

// strictlyComparable reports whether every value of t can be hashed.
// Comparable types holding interfaces still panic as map keys when the
// dynamic value is a slice, map or func.
func strictlyComparable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface:
		return false
	case reflect.Array:
		return strictlyComparable(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !strictlyComparable(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return t.Comparable()
	}
}

// ValuesEqual checks if two values are equal under value equality.
// Numeric kinds are compared after normalization, so int(1979),
// int64(1979) and 1979.0 are all equal.
func ValuesEqual(a, b interface{}) bool {
	a, b = Normalize(a), Normalize(b)

	switch av := a.(type) {
	case nil:
		return b == nil
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case uint64:
		bv, ok := b.(uint64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case Keyword:
		bv, ok := b.(Keyword)
		return ok && av.value == bv.value
	case []byte:
		bv, ok := b.([]byte)
		return ok && bytes.Equal(av, bv)
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	}

	// Remaining types compare through their index keys
	return IndexKey(a) == IndexKey(b)
}

// typeRank orders values of different types for CompareValues
func typeRank(v Value) int {
	switch v.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case int64, uint64, float64:
		return 2
	case string:
		return 3
	case Keyword:
		return 4
	case time.Time:
		return 5
	case []byte:
		return 6
	default:
		return 7
	}
}

// CompareValues compares two values and returns:
//
//	-1 if left < right
//	 0 if left == right
//	 1 if left > right
//
// Values of different types are ordered by type (nil, bool, number, string,
// keyword, time, bytes, other). Numbers compare numerically across int and
// float representations.
func CompareValues(left, right interface{}) int {
	left, right = Normalize(left), Normalize(right)

	lr, rr := typeRank(left), typeRank(right)
	if lr != rr {
		return compareInts(lr, rr)
	}

	switch l := left.(type) {
	case nil:
		return 0
	case bool:
		r := right.(bool)
		if l == r {
			return 0
		}
		if !l {
			return -1
		}
		return 1
	case int64, uint64, float64:
		return compareNumbers(l, right)
	case string:
		return strings.Compare(l, right.(string))
	case Keyword:
		return l.Compare(right.(Keyword))
	case time.Time:
		r := right.(time.Time)
		if l.Before(r) {
			return -1
		} else if l.After(r) {
			return 1
		}
		return 0
	case []byte:
		return bytes.Compare(l, right.([]byte))
	}

	// Fall back to string comparison for unknown types
	return strings.Compare(fmt.Sprintf("%v", left), fmt.Sprintf("%v", right))
}

// compareNumbers orders two normalized numbers. A uint64 here is always
// above MaxInt64, and a float64 is either fractional or outside the integer
// ranges.
func compareNumbers(left, right Value) int {
	switch l := left.(type) {
	case int64:
		switch r := right.(type) {
		case int64:
			return compareInt64s(l, r)
		case uint64:
			return -1
		case float64:
			return compareFloats(float64(l), r)
		}
	case uint64:
		switch r := right.(type) {
		case int64:
			return 1
		case uint64:
			return compareUint64s(l, r)
		case float64:
			return compareUintFloat(l, r)
		}
	case float64:
		switch r := right.(type) {
		case int64:
			return compareFloats(l, float64(r))
		case uint64:
			return -compareUintFloat(r, l)
		case float64:
			return compareFloats(l, r)
		}
	}
	return 0
}

// compareUintFloat compares a uint64 above MaxInt64 with a float that no
// integer type holds
func compareUintFloat(u uint64, f float64) int {
	switch {
	case f >= maxUint64Float:
		return -1
	case f < maxInt64Float:
		return 1
	}
	return compareFloats(float64(u), f)
}

// compareUint64s compares two uint64 values
func compareUint64s(a, b uint64) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

// compareInts compares two int values
func compareInts(a, b int) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

// compareInt64s compares two int64 values
func compareInt64s(a, b int64) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

// compareFloats compares two float64 values
func compareFloats(a, b float64) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}
