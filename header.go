package rowbinary

import (
	"encoding/binary"
	"fmt"
)

// appendHeader appends the stream header of the given format variant to dst.
// The header is written once per logical stream, before any row.
func (f Format) appendHeader(dst []byte, schema *Schema) []byte {
	if f == RowBinary {
		return dst
	}
	dst = binary.AppendUvarint(dst, uint64(schema.NumColumns()))
	for _, c := range schema.Columns() {
		dst = binary.AppendUvarint(dst, uint64(len(c.Name)))
		dst = append(dst, c.Name...)
	}
	if f == RowBinaryWithNamesAndTypes {
		for _, c := range schema.Columns() {
			t := c.Type.String()
			dst = binary.AppendUvarint(dst, uint64(len(t)))
			dst = append(dst, t...)
		}
	}
	return dst
}

// decodeHeader consumes the stream header of the given format variant from
// the beginning of data and verifies it against schema, returning the number
// of bytes consumed. A header which disagrees with the schema is reported as
// ErrSchemaMismatch.
func (f Format) decodeHeader(data []byte, schema *Schema) (int, error) {
	if f == RowBinary {
		return 0, nil
	}

	count, offset := binary.Uvarint(data)
	if offset <= 0 {
		return 0, fmt.Errorf("%w: invalid column count", ErrTruncated)
	}
	if count != uint64(schema.NumColumns()) {
		return 0, fmt.Errorf("%w: header has %d columns, schema has %d", ErrSchemaMismatch, count, schema.NumColumns())
	}

	for _, c := range schema.Columns() {
		name, n, err := decodeHeaderString(data[offset:])
		if err != nil {
			return 0, err
		}
		offset += n
		if name != c.Name {
			return 0, fmt.Errorf("%w: header column %q, schema column %q", ErrSchemaMismatch, name, c.Name)
		}
	}

	if f == RowBinaryWithNamesAndTypes {
		for _, c := range schema.Columns() {
			typ, n, err := decodeHeaderString(data[offset:])
			if err != nil {
				return 0, err
			}
			offset += n
			t, err := ParseType(typ)
			if err != nil {
				return 0, err
			}
			if !t.Equal(c.Type) {
				return 0, fmt.Errorf("%w: header column %q has type %s, schema has %s", ErrSchemaMismatch, c.Name, t, c.Type)
			}
		}
	}

	return offset, nil
}

func decodeHeaderString(data []byte) (string, int, error) {
	size, n := binary.Uvarint(data)
	if n <= 0 || uint64(len(data)-n) < size {
		return "", 0, fmt.Errorf("%w: invalid header string", ErrTruncated)
	}
	return string(data[n : n+int(size)]), n + int(size), nil
}
