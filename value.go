package rowbinary

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Value represents a single column value of a row.
//
// Values carry one of a small set of canonical kinds (Bool, Int64, UInt64,
// Float64, String, UUID, DateTime, Array) independently of the width of the
// column they are encoded to; the codec narrows or widens values to the
// column type and errors when a value does not fit. The zero value of Value
// is the NULL value.
type Value struct {
	// data
	u64 uint64
	b   []byte
	a   []Value
	// type; XOR(Kind) so the zero-value is null
	kind int8
}

// Null constant used to represent the NULL value in rows.
var Null = Value{}

// ValueOf constructs a Value from a Go value.
//
// The Go types supported are booleans, signed and unsigned integers,
// floating point numbers, strings, byte slices, uuid.UUID, time.Time, and
// slices of Value. A nil interface produces the NULL value, and values of
// type Value are returned unchanged.
//
// The function panics for any other type.
func ValueOf(v interface{}) Value {
	switch value := v.(type) {
	case nil:
		return Value{}
	case Value:
		return value
	case bool:
		return makeValueBoolean(value)
	case int:
		return makeValueInt64(int64(value))
	case int8:
		return makeValueInt64(int64(value))
	case int16:
		return makeValueInt64(int64(value))
	case int32:
		return makeValueInt64(int64(value))
	case int64:
		return makeValueInt64(value)
	case uint:
		return makeValueUint64(uint64(value))
	case uint8:
		return makeValueUint64(uint64(value))
	case uint16:
		return makeValueUint64(uint64(value))
	case uint32:
		return makeValueUint64(uint64(value))
	case uint64:
		return makeValueUint64(value)
	case float32:
		return makeValueFloat64(float64(value))
	case float64:
		return makeValueFloat64(value)
	case string:
		return makeValueBytes([]byte(value))
	case []byte:
		return makeValueBytes(value)
	case uuid.UUID:
		return makeValueUUID(value)
	case time.Time:
		return makeValueTime(value)
	case []Value:
		return makeValueArray(value)
	default:
		panic(fmt.Sprintf("rowbinary: cannot create value from go value of type %T", v))
	}
}

func makeValueBoolean(value bool) Value {
	v := Value{kind: ^int8(Bool)}
	if value {
		v.u64 = 1
	}
	return v
}

func makeValueInt64(value int64) Value {
	return Value{kind: ^int8(Int64), u64: uint64(value)}
}

func makeValueUint64(value uint64) Value {
	return Value{kind: ^int8(UInt64), u64: value}
}

func makeValueFloat64(value float64) Value {
	return Value{kind: ^int8(Float64), u64: math.Float64bits(value)}
}

func makeValueBytes(value []byte) Value {
	return Value{kind: ^int8(String), b: value}
}

func makeValueUUID(value uuid.UUID) Value {
	b := make([]byte, 16)
	copy(b, value[:])
	return Value{kind: ^int8(UUID), b: b}
}

func makeValueTime(value time.Time) Value {
	return Value{kind: ^int8(DateTime), u64: uint64(value.Unix())}
}

func makeValueArray(values []Value) Value {
	if values == nil {
		values = []Value{}
	}
	return Value{kind: ^int8(Array), a: values}
}

// Kind returns the canonical kind of v, or -1 if v is the NULL value.
func (v Value) Kind() Kind { return ^Kind(v.kind) }

// IsNull returns true if v is the NULL value.
func (v Value) IsNull() bool { return v.kind == 0 }

// Boolean returns v as a bool, assuming the underlying kind is Bool.
func (v Value) Boolean() bool { return v.u64 != 0 }

// Int64 returns v as an int64, assuming the underlying kind is Int64.
func (v Value) Int64() int64 { return int64(v.u64) }

// Uint64 returns v as an uint64, assuming the underlying kind is UInt64.
func (v Value) Uint64() uint64 { return v.u64 }

// Float64 returns v as a float64, assuming the underlying kind is Float64.
func (v Value) Float64() float64 { return math.Float64frombits(v.u64) }

// ByteArray returns v as a byte slice, assuming the underlying kind is
// String. The returned slice aliases the content of the value and must be
// treated as immutable.
func (v Value) ByteArray() []byte { return v.b }

// UUID returns v as a uuid.UUID, assuming the underlying kind is UUID.
func (v Value) UUID() (u uuid.UUID) {
	copy(u[:], v.b)
	return u
}

// Time returns v as a time.Time in UTC, assuming the underlying kind is
// DateTime.
func (v Value) Time() time.Time { return time.Unix(int64(v.u64), 0).UTC() }

// Array returns the elements of v, assuming the underlying kind is Array.
func (v Value) Array() []Value { return v.a }

// Equal returns true if v and w are the same value.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch ^Kind(v.kind) {
	case String, UUID:
		return bytes.Equal(v.b, w.b)
	case Array:
		if len(v.a) != len(w.a) {
			return false
		}
		for i := range v.a {
			if !v.a[i].Equal(w.a[i]) {
				return false
			}
		}
		return true
	default:
		return v.u64 == w.u64
	}
}

// String returns a human-readable representation of v.
func (v Value) String() string {
	switch ^Kind(v.kind) {
	case Bool:
		return strconv.FormatBool(v.Boolean())
	case Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case UInt64:
		return strconv.FormatUint(v.Uint64(), 10)
	case Float64:
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case String:
		return strconv.Quote(string(v.b))
	case UUID:
		return v.UUID().String()
	case DateTime:
		return v.Time().Format(time.RFC3339)
	case Array:
		s := make([]byte, 0, 2+8*len(v.a))
		s = append(s, '[')
		for i, e := range v.a {
			if i > 0 {
				s = append(s, ',')
			}
			s = append(s, e.String()...)
		}
		return string(append(s, ']'))
	default:
		return "<null>"
	}
}
