package rowbinary

import (
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/segmentio/encoding/thrift"
	"github.com/segmentio/rowbinary-go/compress"
	"github.com/segmentio/rowbinary-go/format"
)

// Magic bytes written at the beginning and at the very end of seekable
// RowBinary files.
const magic = "RBS1"

// Fixed-size trailer at the end of a file: footer offset, footer length,
// and the closing magic.
const trailerLength = 8 + 8 + 4

const formatVersion = 1

// File represents a seekable RowBinary file opened for reading.
//
// Opening a file reads only the fixed-size trailer and the footer it points
// to; frames are left untouched until rows are read, which means that
// successfully opening a file does not validate that its frames are not
// corrupted. Files are immutable and safe to share between multiple readers.
type File struct {
	reader io.ReaderAt
	size   int64
	footer format.FileFooter
	schema *Schema
	codec  compress.Codec
	frames frameIndex
}

// OpenFile opens a seekable RowBinary file from the content between offset 0
// and the given size in r.
func OpenFile(r io.ReaderAt, size int64, options ...ReaderOption) (*File, error) {
	config, err := NewReaderConfig(options...)
	if err != nil {
		return nil, err
	}

	if size < int64(len(magic))+trailerLength {
		return nil, fmt.Errorf("rowbinary: file is too short to hold a trailer: %d bytes", size)
	}

	f := &File{reader: r, size: size}

	var buffer [trailerLength]byte
	if _, err := r.ReadAt(buffer[:4], 0); err != nil {
		return nil, fmt.Errorf("reading magic header of rowbinary file: %w", err)
	}
	if string(buffer[:4]) != magic {
		return nil, fmt.Errorf("rowbinary: invalid magic header: %q", buffer[:4])
	}

	if _, err := r.ReadAt(buffer[:], size-trailerLength); err != nil {
		return nil, fmt.Errorf("reading trailer of rowbinary file: %w", err)
	}
	if string(buffer[16:20]) != magic {
		return nil, fmt.Errorf("rowbinary: invalid magic trailer: %q", buffer[16:20])
	}

	// Each bound is checked on its own: summing attacker-controlled offset
	// and length can wrap around int64 and sneak past a combined check.
	footerOffset := int64(binary.LittleEndian.Uint64(buffer[0:8]))
	footerLength := int64(binary.LittleEndian.Uint64(buffer[8:16]))
	if footerOffset < int64(len(magic)) || footerLength < 0 ||
		footerLength > size-trailerLength ||
		footerOffset > size-trailerLength-footerLength {
		return nil, fmt.Errorf("rowbinary: invalid footer location: offset=%d length=%d size=%d", footerOffset, footerLength, size)
	}

	footerData := make([]byte, footerLength)
	if _, err := r.ReadAt(footerData, footerOffset); err != nil {
		return nil, fmt.Errorf("reading footer of rowbinary file: %w", err)
	}
	if err := thrift.Unmarshal(new(thrift.CompactProtocol), footerData, &f.footer); err != nil {
		return nil, fmt.Errorf("decoding footer of rowbinary file: %w", err)
	}
	if f.footer.Version != formatVersion {
		return nil, fmt.Errorf("rowbinary: unsupported file version: %d", f.footer.Version)
	}

	switch Format(f.footer.Format) {
	case RowBinary, RowBinaryWithNames, RowBinaryWithNamesAndTypes:
	default:
		return nil, fmt.Errorf("rowbinary: unsupported format variant: %d", f.footer.Format)
	}

	if f.schema, err = schemaOfFormat(f.footer.Schema); err != nil {
		return nil, fmt.Errorf("decoding schema of rowbinary file: %w", err)
	}
	if f.codec, err = lookupCompressionCodec(f.footer.Compression); err != nil {
		return nil, err
	}

	f.frames = frameIndex(f.footer.Frames)
	if err := f.frames.validate(f.footer.NumRows, footerOffset); err != nil {
		return nil, err
	}

	if config.Schema != nil && !config.Schema.Equal(f.schema) {
		return nil, fmt.Errorf("%w: file schema %s does not match expected schema %s",
			ErrSchemaMismatch, f.schema, config.Schema)
	}

	return f, nil
}

// Schema returns the schema persisted in the footer of f.
func (f *File) Schema() *Schema { return f.schema }

// Format returns the RowBinary format variant of the rows of f.
func (f *File) Format() Format { return Format(f.footer.Format) }

// CompressionCodec returns the codec that frames of f are compressed with.
func (f *File) CompressionCodec() compress.Codec { return f.codec }

// CreatedBy returns the name of the application which produced f, or an
// empty string if it was not recorded.
func (f *File) CreatedBy() string { return f.footer.CreatedBy }

// NumRows returns the total number of rows stored in f.
func (f *File) NumRows() int64 { return f.frames.numRows() }

// NumFrames returns the number of compressed frames of f.
func (f *File) NumFrames() int { return len(f.frames) }

// FrameDescriptor returns the descriptor of the i-th frame of f.
func (f *File) FrameDescriptor(i int) format.Frame { return f.frames[i] }

// Size returns the size of f (in bytes).
func (f *File) Size() int64 { return f.size }

// readFrame reads and decompresses the i-th frame of f, appending the
// uncompressed bytes to dst.
func (f *File) readFrame(i int, compressed, dst []byte) ([]byte, []byte, error) {
	frame := &f.frames[i]

	if cap(compressed) < int(frame.CompressedLength) {
		compressed = make([]byte, frame.CompressedLength)
	} else {
		compressed = compressed[:frame.CompressedLength]
	}
	if _, err := f.reader.ReadAt(compressed, frame.Offset); err != nil {
		return compressed, dst, fmt.Errorf("reading frame %d of rowbinary file: %w", i, err)
	}

	data, err := f.codec.Decode(dst, compressed)
	if err != nil {
		return compressed, data, fmt.Errorf("decompressing frame %d of rowbinary file: %w", i, err)
	}
	if int64(len(data)) != frame.UncompressedLength {
		return compressed, data, fmt.Errorf("rowbinary: frame %d decompressed to %d bytes, footer records %d",
			i, len(data), frame.UncompressedLength)
	}
	return compressed, data, nil
}

// frameIndex is the ordered sequence of frame descriptors of a file, sorted
// by first row index with no gaps and no overlaps.
type frameIndex []format.Frame

// locate performs a binary search for the frame containing the given row
// index, returning the frame ordinal and the offset of the row within the
// frame.
func (index frameIndex) locate(rowIndex int64) (int, int64, error) {
	if rowIndex < 0 || rowIndex >= index.numRows() {
		return 0, 0, fmt.Errorf("%w: row %d of %d", ErrSeekOutOfRange, rowIndex, index.numRows())
	}
	i := sort.Search(len(index), func(i int) bool {
		return index[i].FirstRowIndex+int64(index[i].RowCount) > rowIndex
	})
	return i, rowIndex - index[i].FirstRowIndex, nil
}

func (index frameIndex) numRows() int64 {
	if len(index) == 0 {
		return 0
	}
	last := &index[len(index)-1]
	return last.FirstRowIndex + int64(last.RowCount)
}

// validate checks the invariant making binary search possible: descriptors
// are contiguous, gapless, and cover exactly numRows rows. It also bounds
// every descriptor against dataEnd, the offset where frame bytes stop, so
// that a corrupt footer is rejected here instead of reaching readFrame.
func (index frameIndex) validate(numRows, dataEnd int64) error {
	nextRowIndex := int64(0)
	for i := range index {
		frame := &index[i]
		if frame.FirstRowIndex != nextRowIndex {
			return fmt.Errorf("rowbinary: frame %d starts at row %d, expected row %d", i, frame.FirstRowIndex, nextRowIndex)
		}
		if frame.RowCount <= 0 {
			return fmt.Errorf("rowbinary: frame %d has invalid row count: %d", i, frame.RowCount)
		}
		if frame.Offset < int64(len(magic)) || frame.CompressedLength <= 0 ||
			frame.UncompressedLength < 0 ||
			frame.CompressedLength > dataEnd-frame.Offset {
			return fmt.Errorf("rowbinary: frame %d has invalid location: offset=%d length=%d", i, frame.Offset, frame.CompressedLength)
		}
		nextRowIndex += int64(frame.RowCount)
	}
	if nextRowIndex != numRows {
		return fmt.Errorf("rowbinary: frames hold %d rows, footer records %d", nextRowIndex, numRows)
	}
	return nil
}
