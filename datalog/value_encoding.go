package datalog

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

// ValueType represents the type tag of an encoded value
type ValueType byte

const (
	TypeNil ValueType = iota
	TypeString
	TypeInt
	TypeFloat
	TypeBool
	TypeTime
	TypeBytes
	TypeKeyword
	TypeUint
)

// Type returns the type tag of a value
func Type(v Value) (ValueType, error) {
	switch val := Normalize(v).(type) {
	case nil:
		return TypeNil, nil
	case string:
		return TypeString, nil
	case int64:
		return TypeInt, nil
	case uint64:
		return TypeUint, nil
	case float64:
		return TypeFloat, nil
	case bool:
		return TypeBool, nil
	case time.Time:
		return TypeTime, nil
	case []byte:
		return TypeBytes, nil
	case Keyword:
		return TypeKeyword, nil
	default:
		return 0, fmt.Errorf("unsupported value type: %T", val)
	}
}

// AppendValue appends the encoding of v to buf: one type byte, a uvarint
// payload length and the payload.
// Integers are written as int64 (uint64 above MaxInt64) and integral floats
// as integers, so a decoded
// value is ValuesEqual to the original but not necessarily the same Go type.
func AppendValue(buf []byte, v Value) ([]byte, error) {
	vType, err := Type(v)
	if err != nil {
		return nil, err
	}

	var payload []byte
	switch val := Normalize(v).(type) {
	case nil:
	case string:
		payload = []byte(val)
	case int64:
		payload = binary.BigEndian.AppendUint64(nil, uint64(val))
	case uint64:
		payload = binary.BigEndian.AppendUint64(nil, val)
	case float64:
		payload = binary.BigEndian.AppendUint64(nil, math.Float64bits(val))
	case bool:
		if val {
			payload = []byte{1}
		} else {
			payload = []byte{0}
		}
	case time.Time:
		payload = binary.BigEndian.AppendUint64(nil, uint64(val.Unix()))
		payload = binary.BigEndian.AppendUint32(payload, uint32(val.Nanosecond()))
	case []byte:
		payload = val
	case Keyword:
		payload = []byte(val.String())
	}

	buf = append(buf, byte(vType))
	buf = binary.AppendUvarint(buf, uint64(len(payload)))
	return append(buf, payload...), nil
}

// ReadValue decodes one value from the front of data and returns it with
// the number of bytes consumed
func ReadValue(data []byte) (Value, int, error) {
	if len(data) < 1 {
		return nil, 0, fmt.Errorf("value encoding truncated: missing type byte")
	}
	vType := ValueType(data[0])

	size, n := binary.Uvarint(data[1:])
	if n <= 0 {
		return nil, 0, fmt.Errorf("value encoding truncated: bad length")
	}
	start := 1 + n
	end := start + int(size)
	if end > len(data) || end < start {
		return nil, 0, fmt.Errorf("value encoding truncated: need %d bytes, have %d", end, len(data))
	}

	v, err := ValueFromBytes(vType, data[start:end])
	if err != nil {
		return nil, 0, err
	}
	return v, end, nil
}

// ValueFromBytes deserializes a value payload of the given type
func ValueFromBytes(vType ValueType, data []byte) (Value, error) {
	switch vType {
	case TypeNil:
		return nil, nil
	case TypeString:
		return string(data), nil
	case TypeInt:
		if len(data) != 8 {
			return nil, fmt.Errorf("int value must be 8 bytes, got %d", len(data))
		}
		return int64(binary.BigEndian.Uint64(data)), nil
	case TypeUint:
		if len(data) != 8 {
			return nil, fmt.Errorf("uint value must be 8 bytes, got %d", len(data))
		}
		return binary.BigEndian.Uint64(data), nil
	case TypeFloat:
		if len(data) != 8 {
			return nil, fmt.Errorf("float value must be 8 bytes, got %d", len(data))
		}
		return math.Float64frombits(binary.BigEndian.Uint64(data)), nil
	case TypeBool:
		if len(data) != 1 {
			return nil, fmt.Errorf("bool value must be 1 byte, got %d", len(data))
		}
		return data[0] != 0, nil
	case TypeTime:
		if len(data) != 12 {
			return nil, fmt.Errorf("time value must be 12 bytes, got %d", len(data))
		}
		sec := int64(binary.BigEndian.Uint64(data[:8]))
		nsec := int64(binary.BigEndian.Uint32(data[8:]))
		return time.Unix(sec, nsec).UTC(), nil
	case TypeBytes:
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil
	case TypeKeyword:
		return NewKeyword(string(data)), nil
	default:
		return nil, fmt.Errorf("unknown value type: %v", vType)
	}
}

// EncodeTriple serializes a triple as three consecutive encoded values
func EncodeTriple(t Triple) ([]byte, error) {
	buf := make([]byte, 0, 32)
	for pos := 0; pos < 3; pos++ {
		var err error
		buf, err = AppendValue(buf, t.Field(pos))
		if err != nil {
			return nil, fmt.Errorf("triple position %d: %w", pos, err)
		}
	}
	return buf, nil
}

// DecodeTriple deserializes a triple written by EncodeTriple
func DecodeTriple(data []byte) (Triple, error) {
	var fields [3]Value
	offset := 0
	for pos := range fields {
		v, n, err := ReadValue(data[offset:])
		if err != nil {
			return Triple{}, fmt.Errorf("triple position %d: %w", pos, err)
		}
		fields[pos] = v
		offset += n
	}
	if offset != len(data) {
		return Triple{}, fmt.Errorf("trailing %d bytes after triple", len(data)-offset)
	}
	return Triple{E: fields[0], A: fields[1], V: fields[2]}, nil
}
