package rowbinary

import (
	"fmt"
	"io"
)

// A SeekableReader reads rows from a seekable RowBinary file through a
// cursor which can be repositioned to any row index.
//
// The reader holds a single decompressed frame at a time; moving the cursor
// within the cached frame costs one offset-table lookup, moving it to
// another frame costs one frame read and decompression. Access patterns that
// are sequential or local therefore decompress each frame once.
//
// This example showcases a typical use of seekable readers:
//
//	reader := rowbinary.NewSeekableReader(file)
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
// SeekableReader is not safe to use concurrently from multiple goroutines,
// but any number of readers may be constructed from the same File.
type SeekableReader struct {
	file   *File
	cursor int64
	frame  frameCache
}

// frameCache is the single-slot cache of the most recently visited frame:
// its decompressed bytes plus the derived table of row boundary offsets,
// built by one linear scan of the frame when it is loaded.
type frameCache struct {
	ordinal    int
	data       []byte
	compressed []byte
	offsets    []int32
}

// NewSeekableReader constructs a reader positioned on the first row of the
// file. When the file holds no rows the cursor starts past the end.
func NewSeekableReader(file *File) *SeekableReader {
	return &SeekableReader{
		file:  file,
		frame: frameCache{ordinal: -1},
	}
}

// Schema returns the schema of the rows read by r.
func (r *SeekableReader) Schema() *Schema { return r.file.schema }

// File returns the file r reads from.
func (r *SeekableReader) File() *File { return r.file }

// NumRows returns the total number of rows of the underlying file.
func (r *SeekableReader) NumRows() int64 { return r.file.NumRows() }

// CurrentRowIndex returns the row index the cursor is positioned on, which
// equals NumRows when the cursor is past the end of the file.
func (r *SeekableReader) CurrentRowIndex() int64 { return r.cursor }

// Seek positions the cursor on the given row index.
//
// Seeking outside of [0, NumRows) fails with ErrSeekOutOfRange and leaves
// the cursor unchanged.
func (r *SeekableReader) Seek(rowIndex int64) error {
	if rowIndex < 0 || rowIndex >= r.file.NumRows() {
		return fmt.Errorf("%w: row %d of %d", ErrSeekOutOfRange, rowIndex, r.file.NumRows())
	}
	r.cursor = rowIndex
	return nil
}

// SeekRelative moves the cursor by delta rows, forward or backward.
//
// Like Seek, a target outside of [0, NumRows) fails with ErrSeekOutOfRange
// and leaves the cursor unchanged.
func (r *SeekableReader) SeekRelative(delta int64) error {
	return r.Seek(r.cursor + delta)
}

// ReadCurrent decodes and returns the row under the cursor without advancing
// it. It returns io.EOF when the cursor is past the end of the file.
//
// Decode errors do not move the cursor.
func (r *SeekableReader) ReadCurrent() (Row, error) {
	data, err := r.currentRowBytes()
	if err != nil {
		return nil, err
	}
	row, n, err := r.file.schema.DecodeRow(data)
	if err != nil {
		return nil, err
	}
	if n != len(data) {
		return nil, fmt.Errorf("rowbinary: row %d decoded to %d bytes, offset table records %d", r.cursor, n, len(data))
	}
	return row, nil
}

// CurrentRowBytes returns the raw encoded bytes of the row under the cursor
// without decoding them, or io.EOF when the cursor is past the end of the
// file. This is the read half of the zero-copy passthrough used to move rows
// between files, see SeekableWriter.WriteRowBytes.
//
// The returned slice aliases the cached frame and is only valid until the
// cursor moves to a row of another frame.
func (r *SeekableReader) CurrentRowBytes() ([]byte, error) {
	return r.currentRowBytes()
}

// ReadRow returns the row under the cursor and advances the cursor by one.
// It returns io.EOF when the cursor is past the end of the file, so reading
// rows in a loop until io.EOF consumes the file exactly once from the
// current position; restarting requires an explicit Seek(0).
func (r *SeekableReader) ReadRow() (Row, error) {
	row, err := r.ReadCurrent()
	if err != nil {
		return nil, err
	}
	r.cursor++
	return row, nil
}

// ReadRows reads up to n rows from the cursor position, advancing the cursor
// past the rows read. Fewer than n rows are returned when the end of the
// file is reached first; this is not an error.
func (r *SeekableReader) ReadRows(n int) ([]Row, error) {
	rows := make([]Row, 0, n)
	for len(rows) < n {
		row, err := r.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (r *SeekableReader) currentRowBytes() ([]byte, error) {
	if r.cursor >= r.file.NumRows() {
		return nil, io.EOF
	}
	ordinal, rowOffset, err := r.file.frames.locate(r.cursor)
	if err != nil {
		return nil, err
	}
	if err := r.loadFrame(ordinal); err != nil {
		return nil, err
	}
	start := r.frame.offsets[rowOffset]
	end := r.frame.offsets[rowOffset+1]
	return r.frame.data[start:end], nil
}

// loadFrame makes the i-th frame the cached frame, evicting the previous one
// and building the row offset table with a single scan of the frame.
func (r *SeekableReader) loadFrame(i int) error {
	if r.frame.ordinal == i {
		return nil
	}
	r.frame.ordinal = -1

	compressed, data, err := r.file.readFrame(i, r.frame.compressed, r.frame.data[:0])
	r.frame.compressed = compressed
	r.frame.data = data
	if err != nil {
		return err
	}

	descriptor := r.file.frames[i]
	rowCount := int(descriptor.RowCount)
	if cap(r.frame.offsets) < rowCount+1 {
		r.frame.offsets = make([]int32, 0, rowCount+1)
	}
	offsets := r.frame.offsets[:0]
	offsets = append(offsets, 0)

	position := 0
	for n := 0; n < rowCount; n++ {
		size, err := r.file.schema.skipRow(data[position:])
		if err != nil {
			return fmt.Errorf("scanning row %d of frame %d: %w", n, i, err)
		}
		position += size
		offsets = append(offsets, int32(position))
	}
	if position != len(data) {
		return fmt.Errorf("rowbinary: frame %d holds %d row bytes, scanned %d", i, len(data), position)
	}

	r.frame.offsets = offsets
	r.frame.ordinal = i
	return nil
}
