package rowbinary

import "errors"

var (
	// ErrSchemaMismatch is returned when opening a file or decoding a stream
	// header whose persisted schema does not match the schema expected by the
	// caller.
	ErrSchemaMismatch = errors.New("rowbinary: schema mismatch")

	// ErrSeekOutOfRange is returned by Seek and SeekRelative when the target
	// row index falls outside of [0, NumRows). The cursor is left unchanged.
	ErrSeekOutOfRange = errors.New("rowbinary: seek out of range")

	// ErrWriterClosed is returned when attempting to write rows to a writer
	// after it was closed.
	ErrWriterClosed = errors.New("rowbinary: writer is closed")

	// ErrTypeMismatch is returned when encoding a value whose type does not
	// match the type of its column.
	ErrTypeMismatch = errors.New("rowbinary: value type does not match column type")

	// ErrValueOutOfRange is returned when encoding a numeric value which does
	// not fit in the width of its column type.
	ErrValueOutOfRange = errors.New("rowbinary: value out of range for column type")

	// ErrColumnCount is returned when encoding a row which does not have
	// exactly one value per column of the schema.
	ErrColumnCount = errors.New("rowbinary: row does not have one value per column")

	// ErrTruncated is returned when decoding rows from an input which ends in
	// the middle of a value.
	ErrTruncated = errors.New("rowbinary: truncated input")
)
