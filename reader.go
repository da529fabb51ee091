package rowbinary

import (
	"io"
)

// A Reader decodes rows from a plain RowBinary payload, as returned by
// ClickHouse for SELECT ... FORMAT RowBinary queries.
//
// The payload is consumed front to back:
//
//	reader := rowbinary.NewReader(payload, schema)
//	for {
//		row, err := reader.ReadRow()
//		if err != nil {
//			if err == io.EOF {
//				break
//			}
//			...
//		}
//		...
//	}
//
// Reader is not safe to use concurrently from multiple goroutines.
type Reader struct {
	data   []byte
	offset int
	config *ReaderConfig
	schema *Schema
	header bool
}

// NewReader constructs a reader decoding the plain RowBinary payload held by
// data, with rows of the given schema.
//
// The function panics if the reader configuration is invalid.
func NewReader(data []byte, schema *Schema, options ...ReaderOption) *Reader {
	config, err := NewReaderConfig(options...)
	if err != nil {
		panic(err)
	}
	if schema == nil {
		panic("rowbinary: creating reader with nil schema")
	}
	return &Reader{
		data:   data,
		config: config,
		schema: schema,
	}
}

// Schema returns the schema the reader was constructed with.
func (r *Reader) Schema() *Schema { return r.schema }

// ReadHeader consumes the stream header of the configured format variant and
// verifies it against the schema, failing with ErrSchemaMismatch when they
// disagree. The header is consumed at most once; ReadRow consumes it
// implicitly when it was not consumed explicitly.
func (r *Reader) ReadHeader() error {
	if r.header {
		return nil
	}
	n, err := r.config.Format.decodeHeader(r.data[r.offset:], r.schema)
	if err != nil {
		return err
	}
	r.offset += n
	r.header = true
	return nil
}

// ReadRow decodes and returns the next row of the payload. It returns io.EOF
// once the payload is exhausted.
func (r *Reader) ReadRow() (Row, error) {
	if err := r.ReadHeader(); err != nil {
		return nil, err
	}
	if r.offset == len(r.data) {
		return nil, io.EOF
	}
	row, n, err := r.schema.DecodeRow(r.data[r.offset:])
	if err != nil {
		return nil, err
	}
	r.offset += n
	return row, nil
}

// ReadAll decodes and returns all remaining rows of the payload.
func (r *Reader) ReadAll() ([]Row, error) {
	var rows []Row
	for {
		row, err := r.ReadRow()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
}

// Reset clears the state of the reader and sets its input to the payload
// passed as argument, allowing the reader to be reused.
func (r *Reader) Reset(data []byte) {
	r.data = data
	r.offset = 0
	r.header = false
}
