// Package format contains the serialized representation of the footer of
// seekable RowBinary files.
//
// The structures declared in this package are encoded with the thrift compact
// protocol, the footer is the only section of a file with a self-describing
// encoding; everything else is raw RowBinary or compressed frame bytes.
package format

// CompressionCodec identifies the compression algorithm applied to the frames
// of a file. The codes are persisted in file footers and must not be changed.
type CompressionCodec int32

const (
	Uncompressed CompressionCodec = 0
	Zstd         CompressionCodec = 1
	Lz4          CompressionCodec = 2
	Snappy       CompressionCodec = 3
	Gzip         CompressionCodec = 4
	Brotli       CompressionCodec = 5
)

func (c CompressionCodec) String() string {
	switch c {
	case Uncompressed:
		return "UNCOMPRESSED"
	case Zstd:
		return "ZSTD"
	case Lz4:
		return "LZ4"
	case Snappy:
		return "SNAPPY"
	case Gzip:
		return "GZIP"
	case Brotli:
		return "BROTLI"
	default:
		return "unknown"
	}
}

// Column describes one column of the schema persisted in a file footer.
// The type is stored as its ClickHouse type string (e.g. "Nullable(String)").
type Column struct {
	Name string `thrift:"1,required"`
	Type string `thrift:"2,required"`
}

// Frame locates one compressed frame within the file and within the logical
// row sequence.
//
// Frames are stored in row order; for every pair of consecutive descriptors
// FirstRowIndex[i+1] == FirstRowIndex[i] + RowCount[i].
type Frame struct {
	// Byte offset of the compressed frame from the start of the file.
	Offset int64 `thrift:"1,required"`

	// Length of the compressed frame in bytes.
	CompressedLength int64 `thrift:"2,required"`

	// Length of the frame after decompression in bytes.
	UncompressedLength int64 `thrift:"3,required"`

	// Number of rows held by the frame; always greater than zero.
	RowCount int32 `thrift:"4,required"`

	// Index of the first row of the frame in the whole file.
	FirstRowIndex int64 `thrift:"5,required"`
}

// FileFooter is the footer of a seekable RowBinary file, located via the
// fixed-size trailer at the very end of the file.
type FileFooter struct {
	// Version of the file layout, currently always 1.
	Version int32 `thrift:"1,required"`

	// RowBinary format variant used for the stream header and rows
	// (0 = RowBinary, 1 = RowBinaryWithNames, 2 = RowBinaryWithNamesAndTypes).
	Format int32 `thrift:"2,required"`

	// Compression codec applied to every frame of the file.
	Compression CompressionCodec `thrift:"3,required"`

	// Schema of the rows stored in the file, in column order.
	Schema []Column `thrift:"4,required"`

	// Descriptors of the frames of the file, in row order.
	Frames []Frame `thrift:"5"`

	// Total number of rows in the file.
	NumRows int64 `thrift:"6,required"`

	// Application that produced the file, omitted when empty.
	CreatedBy string `thrift:"7,optional"`
}
