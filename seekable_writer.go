package rowbinary

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/segmentio/encoding/thrift"
	"github.com/segmentio/rowbinary-go/format"
)

// A SeekableWriter produces a seekable RowBinary file to an io.Writer:
// encoded rows are accumulated into frames, each frame is compressed and
// appended to the output, and closing the writer records the frame index in
// a footer so readers can later jump to any row without decompressing the
// whole file.
//
// This example showcases a typical use of seekable writers:
//
//	writer := rowbinary.NewSeekableWriter(output, schema)
//	defer writer.Close()
//
//	for _, row := range rows {
//		if err := writer.WriteRow(row); err != nil {
//			...
//		}
//	}
//
//	if err := writer.Close(); err != nil {
//		...
//	}
//
// Close must run on every exit path, including early returns on errors,
// otherwise the file has no footer and cannot be opened; the deferred call
// covers the error paths and the explicit one surfaces the errors of the
// final flush. The output is written strictly sequentially, the writer never
// seeks back.
//
// SeekableWriter is not safe to use concurrently from multiple goroutines.
type SeekableWriter struct {
	writer     io.Writer
	config     *WriterConfig
	schema     *Schema
	buffer     []byte
	compressed []byte
	bufferRows int32
	numRows    int64
	offset     int64
	frames     []format.Frame
	header     bool
	closed     bool
}

// NewSeekableWriter constructs a seekable writer producing a file to output
// with rows of the given schema.
//
// The function panics if the writer configuration is invalid. Programs that
// cannot guarantee the validity of the options passed to NewSeekableWriter
// should construct the writer configuration independently prior to calling
// this function:
//
//	config, err := rowbinary.NewWriterConfig(options...)
//	if err != nil {
//		// handle the configuration error
//		...
//	} else {
//		// this call to create a writer is guaranteed not to panic
//		writer := rowbinary.NewSeekableWriter(output, schema, config)
//		...
//	}
//
func NewSeekableWriter(output io.Writer, schema *Schema, options ...WriterOption) *SeekableWriter {
	config, err := NewWriterConfig(options...)
	if err != nil {
		panic(err)
	}
	if schema == nil {
		panic("rowbinary: creating seekable writer with nil schema")
	}
	return &SeekableWriter{
		writer: output,
		config: config,
		schema: schema,
		buffer: make([]byte, 0, config.FrameBufferSize),
	}
}

// Schema returns the schema the writer was constructed with.
func (w *SeekableWriter) Schema() *Schema { return w.schema }

// NumRows returns the number of rows written to w so far.
func (w *SeekableWriter) NumRows() int64 { return w.numRows }

// WriteRow encodes row and appends it to the frame being built, flushing the
// frame to the output when it reaches the configured thresholds.
//
// Encoding errors leave the writer state untouched, no partial row ever
// enters a frame.
func (w *SeekableWriter) WriteRow(row Row) error {
	if w.closed {
		return ErrWriterClosed
	}
	if err := w.writeHeader(); err != nil {
		return err
	}
	buffer, err := w.schema.AppendRow(w.buffer, row)
	if err != nil {
		return err
	}
	w.buffer = buffer
	w.bufferRows++
	w.numRows++
	return w.maybeFlush()
}

// WriteRows writes a batch of rows, stopping at the first error.
func (w *SeekableWriter) WriteRows(rows []Row) error {
	for i := range rows {
		if err := w.WriteRow(rows[i]); err != nil {
			return err
		}
	}
	return nil
}

// WriteRowBytes appends one pre-encoded row to the frame being built,
// bypassing the row codec.
//
// The caller guarantees that data holds exactly one complete row encoded
// with the writer's schema; the bytes are not re-validated. This is the
// write half of the zero-copy passthrough used to move rows between files
// without decoding them, see SeekableReader.CurrentRowBytes.
func (w *SeekableWriter) WriteRowBytes(data []byte) error {
	if w.closed {
		return ErrWriterClosed
	}
	if err := w.writeHeader(); err != nil {
		return err
	}
	w.buffer = append(w.buffer, data...)
	w.bufferRows++
	w.numRows++
	return w.maybeFlush()
}

// Close flushes the last frame, writes the footer and the trailer, and marks
// the writer closed. Closing a writer which was already closed does nothing.
func (w *SeekableWriter) Close() error {
	if w.closed {
		return nil
	}
	if err := w.writeHeader(); err != nil {
		return err
	}
	if err := w.flushFrame(); err != nil {
		return err
	}

	footer, err := thrift.Marshal(new(thrift.CompactProtocol), &format.FileFooter{
		Version:     formatVersion,
		Format:      int32(w.config.Format),
		Compression: w.config.Compression.CompressionCodec(),
		Schema:      w.schema.formatColumns(),
		Frames:      w.frames,
		NumRows:     w.numRows,
		CreatedBy:   w.config.CreatedBy,
	})
	if err != nil {
		return fmt.Errorf("encoding footer of rowbinary file: %w", err)
	}

	footerOffset := w.offset
	if err := w.write(footer); err != nil {
		return err
	}

	trailer := make([]byte, 0, trailerLength)
	trailer = binary.LittleEndian.AppendUint64(trailer, uint64(footerOffset))
	trailer = binary.LittleEndian.AppendUint64(trailer, uint64(len(footer)))
	trailer = append(trailer, magic...)
	if err := w.write(trailer); err != nil {
		return err
	}

	w.closed = true
	return nil
}

// Reset clears the state of the writer and sets its output to the io.Writer
// passed as argument, allowing the writer to be reused to produce another
// file.
//
// Reset may be called at any time, including after a writer was closed.
func (w *SeekableWriter) Reset(output io.Writer) {
	w.writer = output
	w.buffer = w.buffer[:0]
	w.bufferRows = 0
	w.numRows = 0
	w.offset = 0
	w.frames = w.frames[:0]
	w.header = false
	w.closed = false
}

func (w *SeekableWriter) writeHeader() error {
	if w.header {
		return nil
	}
	header := append(make([]byte, 0, len(magic)), magic...)
	header = w.config.Format.appendHeader(header, w.schema)
	if err := w.write(header); err != nil {
		return err
	}
	w.header = true
	return nil
}

func (w *SeekableWriter) maybeFlush() error {
	if len(w.buffer) >= w.config.FrameBufferSize || int(w.bufferRows) >= w.config.FrameRowCount {
		return w.flushFrame()
	}
	return nil
}

// flushFrame compresses the buffered rows into one frame, appends it to the
// output, and records its descriptor. Frames with no rows are never flushed.
func (w *SeekableWriter) flushFrame() error {
	if w.bufferRows == 0 {
		return nil
	}

	compressed, err := w.config.Compression.Encode(w.compressed[:0], w.buffer)
	w.compressed = compressed
	if err != nil {
		return fmt.Errorf("compressing frame %d of rowbinary file: %w", len(w.frames), err)
	}

	if err := w.write(compressed); err != nil {
		return err
	}

	w.frames = append(w.frames, format.Frame{
		Offset:             w.offset - int64(len(compressed)),
		CompressedLength:   int64(len(compressed)),
		UncompressedLength: int64(len(w.buffer)),
		RowCount:           w.bufferRows,
		FirstRowIndex:      w.numRows - int64(w.bufferRows),
	})

	w.buffer = w.buffer[:0]
	w.bufferRows = 0
	return nil
}

func (w *SeekableWriter) write(data []byte) error {
	n, err := w.writer.Write(data)
	w.offset += int64(n)
	return err
}
