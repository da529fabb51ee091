package rowbinary

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Row represents a single row as an ordered sequence of values, one per
// column of the schema the row is bound to.
type Row []Value

// MakeRow constructs a row from a sequence of Go values, converting each of
// them with ValueOf.
func MakeRow(values ...interface{}) Row {
	row := make(Row, len(values))
	for i, v := range values {
		row[i] = ValueOf(v)
	}
	return row
}

// Equal returns true if rows r and other contain the same values.
func (r Row) Equal(other Row) bool {
	if len(r) != len(other) {
		return false
	}
	for i := range r {
		if !r[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// AppendRow appends the RowBinary encoding of row to dst and returns the
// extended slice.
//
// The row must hold exactly one value per column of s, with each value's
// kind matching its column's type; otherwise an error is returned and dst is
// left unchanged (no partial row is ever appended).
func (s *Schema) AppendRow(dst []byte, row Row) ([]byte, error) {
	if len(row) != len(s.columns) {
		return dst, fmt.Errorf("%w: got %d values for %d columns", ErrColumnCount, len(row), len(s.columns))
	}
	b := dst
	for i, c := range s.columns {
		var err error
		if b, err = appendValue(b, c.Type, row[i]); err != nil {
			return dst, fmt.Errorf("encoding column %q: %w", c.Name, err)
		}
	}
	return b, nil
}

// DecodeRow decodes one row from the beginning of data and returns it along
// with the number of bytes consumed.
//
// Byte string values of the returned row are copied out of data, the row
// remains valid after data is reused or discarded.
func (s *Schema) DecodeRow(data []byte) (Row, int, error) {
	row := make(Row, len(s.columns))
	offset := 0
	for i, c := range s.columns {
		v, n, err := decodeValue(data[offset:], c.Type)
		if err != nil {
			return nil, 0, fmt.Errorf("decoding column %q: %w", c.Name, err)
		}
		row[i] = v
		offset += n
	}
	return row, offset, nil
}

// skipRow returns the encoded length of the row at the beginning of data
// without materializing its values. This is what frame offset tables are
// built from.
func (s *Schema) skipRow(data []byte) (int, error) {
	offset := 0
	for i := range s.columns {
		n, err := skipValue(data[offset:], s.columns[i].Type)
		if err != nil {
			return 0, fmt.Errorf("decoding column %q: %w", s.columns[i].Name, err)
		}
		offset += n
	}
	return offset, nil
}

func appendValue(b []byte, t Type, v Value) ([]byte, error) {
	if t.kind != Nullable && v.IsNull() {
		return b, fmt.Errorf("%w: null value for %s column", ErrTypeMismatch, t)
	}

	switch t.kind {
	case Int8, Int16, Int32, Int64:
		i, err := signedValue(t, v)
		if err != nil {
			return b, err
		}
		switch t.kind {
		case Int8:
			return append(b, byte(i)), nil
		case Int16:
			return binary.LittleEndian.AppendUint16(b, uint16(i)), nil
		case Int32:
			return binary.LittleEndian.AppendUint32(b, uint32(i)), nil
		default:
			return binary.LittleEndian.AppendUint64(b, uint64(i)), nil
		}

	case UInt8, UInt16, UInt32, UInt64:
		u, err := unsignedValue(t, v)
		if err != nil {
			return b, err
		}
		switch t.kind {
		case UInt8:
			return append(b, byte(u)), nil
		case UInt16:
			return binary.LittleEndian.AppendUint16(b, uint16(u)), nil
		case UInt32:
			return binary.LittleEndian.AppendUint32(b, uint32(u)), nil
		default:
			return binary.LittleEndian.AppendUint64(b, u), nil
		}

	case Float32:
		if v.Kind() != Float64 {
			return b, typeMismatch(t, v)
		}
		return binary.LittleEndian.AppendUint32(b, math.Float32bits(float32(v.Float64()))), nil

	case Float64:
		if v.Kind() != Float64 {
			return b, typeMismatch(t, v)
		}
		return binary.LittleEndian.AppendUint64(b, math.Float64bits(v.Float64())), nil

	case Bool:
		if v.Kind() != Bool {
			return b, typeMismatch(t, v)
		}
		if v.Boolean() {
			return append(b, 1), nil
		}
		return append(b, 0), nil

	case String:
		if v.Kind() != String {
			return b, typeMismatch(t, v)
		}
		b = binary.AppendUvarint(b, uint64(len(v.b)))
		return append(b, v.b...), nil

	case FixedString:
		if v.Kind() != String {
			return b, typeMismatch(t, v)
		}
		if len(v.b) > t.size {
			return b, fmt.Errorf("%w: %d bytes in %s column", ErrValueOutOfRange, len(v.b), t)
		}
		b = append(b, v.b...)
		for n := t.size - len(v.b); n > 0; n-- {
			b = append(b, 0)
		}
		return b, nil

	case UUID:
		switch {
		case v.Kind() == UUID:
		case v.Kind() == String && len(v.b) == 16:
		default:
			return b, typeMismatch(t, v)
		}
		// ClickHouse serializes UUIDs as two little-endian 64 bits words.
		for i := 7; i >= 0; i-- {
			b = append(b, v.b[i])
		}
		for i := 15; i >= 8; i-- {
			b = append(b, v.b[i])
		}
		return b, nil

	case Date:
		if v.Kind() != DateTime {
			return b, typeMismatch(t, v)
		}
		seconds := int64(v.u64)
		days := seconds / 86400
		if seconds < 0 || days > math.MaxUint16 {
			return b, fmt.Errorf("%w: %s in %s column", ErrValueOutOfRange, v.Time(), t)
		}
		return binary.LittleEndian.AppendUint16(b, uint16(days)), nil

	case DateTime:
		if v.Kind() != DateTime {
			return b, typeMismatch(t, v)
		}
		seconds := int64(v.u64)
		if seconds < 0 || seconds > math.MaxUint32 {
			return b, fmt.Errorf("%w: %s in %s column", ErrValueOutOfRange, v.Time(), t)
		}
		return binary.LittleEndian.AppendUint32(b, uint32(seconds)), nil

	case Nullable:
		if v.IsNull() {
			return append(b, 1), nil
		}
		return appendValue(append(b, 0), t.Elem(), v)

	case Array:
		if v.Kind() != Array {
			return b, typeMismatch(t, v)
		}
		b = binary.AppendUvarint(b, uint64(len(v.a)))
		elem := t.Elem()
		for _, e := range v.a {
			var err error
			if b, err = appendValue(b, elem, e); err != nil {
				return b, err
			}
		}
		return b, nil

	default:
		return b, fmt.Errorf("rowbinary: unsupported column type: %s", t)
	}
}

func typeMismatch(t Type, v Value) error {
	return fmt.Errorf("%w: %s value for %s column", ErrTypeMismatch, v.Kind(), t)
}

func signedValue(t Type, v Value) (int64, error) {
	var i int64
	switch v.Kind() {
	case Int64:
		i = v.Int64()
	case UInt64:
		if v.u64 > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d in %s column", ErrValueOutOfRange, v.u64, t)
		}
		i = int64(v.u64)
	default:
		return 0, typeMismatch(t, v)
	}
	if t.size < 8 {
		// 8*size bits of two's complement range
		bits := 8 * uint(t.size)
		if min, max := -(int64(1) << (bits - 1)), (int64(1)<<(bits-1))-1; i < min || i > max {
			return 0, fmt.Errorf("%w: %d in %s column", ErrValueOutOfRange, i, t)
		}
	}
	return i, nil
}

func unsignedValue(t Type, v Value) (uint64, error) {
	var u uint64
	switch v.Kind() {
	case UInt64:
		u = v.u64
	case Int64:
		if v.Int64() < 0 {
			return 0, fmt.Errorf("%w: %d in %s column", ErrValueOutOfRange, v.Int64(), t)
		}
		u = v.u64
	default:
		return 0, typeMismatch(t, v)
	}
	if t.size < 8 {
		if max := (uint64(1) << (8 * uint(t.size))) - 1; u > max {
			return 0, fmt.Errorf("%w: %d in %s column", ErrValueOutOfRange, u, t)
		}
	}
	return u, nil
}

func decodeValue(data []byte, t Type) (Value, int, error) {
	switch t.kind {
	case Int8, Int16, Int32, Int64, UInt8, UInt16, UInt32, UInt64, Float32, Float64, Bool, Date, DateTime, UUID, FixedString:
		if len(data) < t.size {
			return Value{}, 0, fmt.Errorf("%w: %d bytes remaining, %s value requires %d", ErrTruncated, len(data), t, t.size)
		}
	}

	switch t.kind {
	case Int8:
		return makeValueInt64(int64(int8(data[0]))), 1, nil
	case Int16:
		return makeValueInt64(int64(int16(binary.LittleEndian.Uint16(data)))), 2, nil
	case Int32:
		return makeValueInt64(int64(int32(binary.LittleEndian.Uint32(data)))), 4, nil
	case Int64:
		return makeValueInt64(int64(binary.LittleEndian.Uint64(data))), 8, nil
	case UInt8:
		return makeValueUint64(uint64(data[0])), 1, nil
	case UInt16:
		return makeValueUint64(uint64(binary.LittleEndian.Uint16(data))), 2, nil
	case UInt32:
		return makeValueUint64(uint64(binary.LittleEndian.Uint32(data))), 4, nil
	case UInt64:
		return makeValueUint64(binary.LittleEndian.Uint64(data)), 8, nil
	case Float32:
		return makeValueFloat64(float64(math.Float32frombits(binary.LittleEndian.Uint32(data)))), 4, nil
	case Float64:
		return makeValueFloat64(math.Float64frombits(binary.LittleEndian.Uint64(data))), 8, nil

	case Bool:
		switch data[0] {
		case 0:
			return makeValueBoolean(false), 1, nil
		case 1:
			return makeValueBoolean(true), 1, nil
		default:
			return Value{}, 0, fmt.Errorf("rowbinary: invalid boolean byte: %d", data[0])
		}

	case String:
		size, n := binary.Uvarint(data)
		if n <= 0 || uint64(len(data)-n) < size {
			return Value{}, 0, fmt.Errorf("%w: invalid string of length %d", ErrTruncated, size)
		}
		b := make([]byte, size)
		copy(b, data[n:n+int(size)])
		return makeValueBytes(b), n + int(size), nil

	case FixedString:
		b := make([]byte, t.size)
		copy(b, data[:t.size])
		return makeValueBytes(b), t.size, nil

	case UUID:
		b := make([]byte, 16)
		for i := 0; i < 8; i++ {
			b[i] = data[7-i]
		}
		for i := 8; i < 16; i++ {
			b[i] = data[23-i]
		}
		return Value{kind: ^int8(UUID), b: b}, 16, nil

	case Date:
		days := binary.LittleEndian.Uint16(data)
		return Value{kind: ^int8(DateTime), u64: 86400 * uint64(days)}, 2, nil

	case DateTime:
		seconds := binary.LittleEndian.Uint32(data)
		return Value{kind: ^int8(DateTime), u64: uint64(seconds)}, 4, nil

	case Nullable:
		if len(data) == 0 {
			return Value{}, 0, fmt.Errorf("%w: missing null flag", ErrTruncated)
		}
		switch data[0] {
		case 1:
			return Value{}, 1, nil
		case 0:
			v, n, err := decodeValue(data[1:], t.Elem())
			return v, n + 1, err
		default:
			return Value{}, 0, fmt.Errorf("rowbinary: invalid null flag: %d", data[0])
		}

	case Array:
		// Every element encodes to at least one byte, so a count larger than
		// the remaining input is corrupt; checking before allocating keeps a
		// hostile length prefix from forcing a huge allocation.
		size, n := binary.Uvarint(data)
		if n <= 0 || size > uint64(len(data)-n) {
			return Value{}, 0, fmt.Errorf("%w: invalid array of length %d", ErrTruncated, size)
		}
		elem := t.Elem()
		values := make([]Value, size)
		offset := n
		for i := range values {
			v, vn, err := decodeValue(data[offset:], elem)
			if err != nil {
				return Value{}, 0, err
			}
			values[i] = v
			offset += vn
		}
		return makeValueArray(values), offset, nil

	default:
		return Value{}, 0, fmt.Errorf("rowbinary: unsupported column type: %s", t)
	}
}

func skipValue(data []byte, t Type) (int, error) {
	if t.size > 0 {
		if len(data) < t.size {
			return 0, fmt.Errorf("%w: %d bytes remaining, %s value requires %d", ErrTruncated, len(data), t, t.size)
		}
		return t.size, nil
	}

	switch t.kind {
	case String:
		size, n := binary.Uvarint(data)
		if n <= 0 || uint64(len(data)-n) < size {
			return 0, fmt.Errorf("%w: invalid string of length %d", ErrTruncated, size)
		}
		return n + int(size), nil

	case Nullable:
		if len(data) == 0 {
			return 0, fmt.Errorf("%w: missing null flag", ErrTruncated)
		}
		switch data[0] {
		case 1:
			return 1, nil
		case 0:
			n, err := skipValue(data[1:], t.Elem())
			return n + 1, err
		default:
			return 0, fmt.Errorf("rowbinary: invalid null flag: %d", data[0])
		}

	case Array:
		size, n := binary.Uvarint(data)
		if n <= 0 || size > uint64(len(data)-n) {
			return 0, fmt.Errorf("%w: invalid array of length %d", ErrTruncated, size)
		}
		elem := t.Elem()
		offset := n
		for i := uint64(0); i < size; i++ {
			vn, err := skipValue(data[offset:], elem)
			if err != nil {
				return 0, err
			}
			offset += vn
		}
		return offset, nil

	default:
		return 0, fmt.Errorf("rowbinary: unsupported column type: %s", t)
	}
}
