package rowbinary

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is an enumeration of the column types supported by the RowBinary
// format.
type Kind int8

const (
	Int8 Kind = iota
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
	Float32
	Float64
	Bool
	String
	FixedString
	UUID
	Date
	DateTime
	Nullable
	Array
)

func (k Kind) String() string {
	switch k {
	case Int8:
		return "Int8"
	case Int16:
		return "Int16"
	case Int32:
		return "Int32"
	case Int64:
		return "Int64"
	case UInt8:
		return "UInt8"
	case UInt16:
		return "UInt16"
	case UInt32:
		return "UInt32"
	case UInt64:
		return "UInt64"
	case Float32:
		return "Float32"
	case Float64:
		return "Float64"
	case Bool:
		return "Bool"
	case String:
		return "String"
	case FixedString:
		return "FixedString"
	case UUID:
		return "UUID"
	case Date:
		return "Date"
	case DateTime:
		return "DateTime"
	case Nullable:
		return "Nullable"
	case Array:
		return "Array"
	default:
		return "<nil>"
	}
}

// Type represents the type of a column of a RowBinary schema.
//
// Types are either scalar (Int32, String, UUID, ...) or composed of an
// element type (Nullable, Array). Types are constructed from the package
// level variables and functions (Int32Type, NullableType, ...) or parsed
// from their ClickHouse spelling by ParseType.
type Type struct {
	kind Kind
	size int
	elem *Type
}

var (
	Int8Type     = Type{kind: Int8, size: 1}
	Int16Type    = Type{kind: Int16, size: 2}
	Int32Type    = Type{kind: Int32, size: 4}
	Int64Type    = Type{kind: Int64, size: 8}
	UInt8Type    = Type{kind: UInt8, size: 1}
	UInt16Type   = Type{kind: UInt16, size: 2}
	UInt32Type   = Type{kind: UInt32, size: 4}
	UInt64Type   = Type{kind: UInt64, size: 8}
	Float32Type  = Type{kind: Float32, size: 4}
	Float64Type  = Type{kind: Float64, size: 8}
	BoolType     = Type{kind: Bool, size: 1}
	StringType   = Type{kind: String}
	UUIDType     = Type{kind: UUID, size: 16}
	DateType     = Type{kind: Date, size: 2}
	DateTimeType = Type{kind: DateTime, size: 4}
)

// FixedStringType constructs the type of fixed-length byte string columns
// holding exactly size bytes per value.
//
// The function panics if size is not positive.
func FixedStringType(size int) Type {
	if size <= 0 {
		panic("rowbinary: fixed string size must be positive: " + strconv.Itoa(size))
	}
	return Type{kind: FixedString, size: size}
}

// NullableType constructs the type of columns holding either a value of the
// element type or NULL.
//
// Nullable columns of composite types are not supported by the RowBinary
// format, the function panics if elem is itself nullable or an array.
func NullableType(elem Type) Type {
	switch elem.kind {
	case Nullable, Array:
		panic("rowbinary: cannot create nullable type of " + elem.String())
	}
	e := elem
	return Type{kind: Nullable, elem: &e}
}

// ArrayType constructs the type of columns holding a variable number of
// values of the element type.
func ArrayType(elem Type) Type {
	e := elem
	return Type{kind: Array, elem: &e}
}

// Kind returns the kind of t.
func (t Type) Kind() Kind { return t.kind }

// Size returns the encoded size of values of t in bytes, or zero if values
// of t have a variable encoded size.
func (t Type) Size() int { return t.size }

// Elem returns the element type of nullable and array types. It returns the
// zero Type for scalar types.
func (t Type) Elem() Type {
	if t.elem != nil {
		return *t.elem
	}
	return Type{}
}

// Equal returns true if t and u represent the same column type.
func (t Type) Equal(u Type) bool {
	if t.kind != u.kind || t.size != u.size {
		return false
	}
	if t.elem != nil {
		return u.elem != nil && t.elem.Equal(*u.elem)
	}
	return u.elem == nil
}

// String returns the ClickHouse spelling of t, e.g. "Nullable(String)" or
// "FixedString(16)".
func (t Type) String() string {
	switch t.kind {
	case FixedString:
		return "FixedString(" + strconv.Itoa(t.size) + ")"
	case Nullable:
		return "Nullable(" + t.Elem().String() + ")"
	case Array:
		return "Array(" + t.Elem().String() + ")"
	default:
		return t.kind.String()
	}
}

var scalarTypes = map[string]Type{
	"Int8":     Int8Type,
	"Int16":    Int16Type,
	"Int32":    Int32Type,
	"Int64":    Int64Type,
	"UInt8":    UInt8Type,
	"UInt16":   UInt16Type,
	"UInt32":   UInt32Type,
	"UInt64":   UInt64Type,
	"Float32":  Float32Type,
	"Float64":  Float64Type,
	"Bool":     BoolType,
	"String":   StringType,
	"UUID":     UUIDType,
	"Date":     DateType,
	"DateTime": DateTimeType,
}

// ParseType parses the ClickHouse spelling of a column type.
//
// ParseType is the inverse of Type.String, it accepts the scalar type names
// along with the FixedString(N), Nullable(T) and Array(T) forms.
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)

	if t, ok := scalarTypes[s]; ok {
		return t, nil
	}

	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Type{}, fmt.Errorf("rowbinary: unsupported type: %q", s)
	}
	arg := s[open+1 : len(s)-1]

	switch s[:open] {
	case "FixedString":
		size, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil || size <= 0 {
			return Type{}, fmt.Errorf("rowbinary: invalid fixed string size: %q", arg)
		}
		return FixedStringType(size), nil

	case "Nullable":
		elem, err := ParseType(arg)
		if err != nil {
			return Type{}, err
		}
		switch elem.kind {
		case Nullable, Array:
			return Type{}, fmt.Errorf("rowbinary: unsupported type: %q", s)
		}
		return NullableType(elem), nil

	case "Array":
		elem, err := ParseType(arg)
		if err != nil {
			return Type{}, err
		}
		return ArrayType(elem), nil

	default:
		return Type{}, fmt.Errorf("rowbinary: unsupported type: %q", s)
	}
}
