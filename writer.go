package rowbinary

import (
	"io"
)

// A Writer produces a plain (uncompressed, non-seekable) RowBinary stream to
// an io.Writer, in the exact format ClickHouse consumes for INSERT ... FORMAT
// RowBinary statements.
//
// Writers are typically used to rebatch rows read from seekable files into
// plain payloads:
//
//	batch := new(bytes.Buffer)
//	writer := rowbinary.NewWriter(batch, schema, rowbinary.FileFormat(rowbinary.RowBinaryWithNamesAndTypes))
//
//	for _, row := range rows {
//		if err := writer.WriteRow(row); err != nil {
//			...
//		}
//	}
//
// Writer is not safe to use concurrently from multiple goroutines.
type Writer struct {
	writer  io.Writer
	config  *WriterConfig
	schema  *Schema
	scratch []byte
	numRows int64
	header  bool
}

// NewWriter constructs a writer producing a plain RowBinary stream to output
// with rows of the given schema.
//
// The function panics if the writer configuration is invalid, see
// NewSeekableWriter.
func NewWriter(output io.Writer, schema *Schema, options ...WriterOption) *Writer {
	config, err := NewWriterConfig(options...)
	if err != nil {
		panic(err)
	}
	if schema == nil {
		panic("rowbinary: creating writer with nil schema")
	}
	return &Writer{
		writer: output,
		config: config,
		schema: schema,
	}
}

// Schema returns the schema the writer was constructed with.
func (w *Writer) Schema() *Schema { return w.schema }

// NumRows returns the number of rows written to w so far.
func (w *Writer) NumRows() int64 { return w.numRows }

// WriteHeader writes the stream header of the configured format variant.
// The header is written at most once, before the first row; WriteRow writes
// it implicitly when it was not written explicitly.
func (w *Writer) WriteHeader() error {
	if w.header {
		return nil
	}
	w.scratch = w.config.Format.appendHeader(w.scratch[:0], w.schema)
	if len(w.scratch) > 0 {
		if _, err := w.writer.Write(w.scratch); err != nil {
			return err
		}
	}
	w.header = true
	return nil
}

// WriteRow encodes row and writes it to the output.
//
// Encoding errors are reported before anything is written, a failed call
// leaves the output untouched.
func (w *Writer) WriteRow(row Row) error {
	if err := w.WriteHeader(); err != nil {
		return err
	}
	scratch, err := w.schema.AppendRow(w.scratch[:0], row)
	w.scratch = scratch
	if err != nil {
		return err
	}
	if _, err := w.writer.Write(scratch); err != nil {
		return err
	}
	w.numRows++
	return nil
}

// WriteRows writes a batch of rows, stopping at the first error.
func (w *Writer) WriteRows(rows []Row) error {
	for i := range rows {
		if err := w.WriteRow(rows[i]); err != nil {
			return err
		}
	}
	return nil
}

// WriteRowBytes writes one pre-encoded row to the output, bypassing the row
// codec. The caller guarantees that data holds exactly one complete row
// encoded with the writer's schema; the bytes are not re-validated.
func (w *Writer) WriteRowBytes(data []byte) error {
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if _, err := w.writer.Write(data); err != nil {
		return err
	}
	w.numRows++
	return nil
}

// Reset clears the state of the writer and sets its output to the io.Writer
// passed as argument, allowing the writer to be reused to produce another
// stream.
func (w *Writer) Reset(output io.Writer) {
	w.writer = output
	w.numRows = 0
	w.header = false
}
