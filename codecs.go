package rowbinary

import (
	"fmt"

	"github.com/segmentio/rowbinary-go/compress"
	"github.com/segmentio/rowbinary-go/compress/brotli"
	"github.com/segmentio/rowbinary-go/compress/gzip"
	"github.com/segmentio/rowbinary-go/compress/lz4"
	"github.com/segmentio/rowbinary-go/compress/snappy"
	"github.com/segmentio/rowbinary-go/compress/uncompressed"
	"github.com/segmentio/rowbinary-go/compress/zstd"
	"github.com/segmentio/rowbinary-go/format"
)

var (
	// Uncompressed is a parameter to the Compression option writing frames
	// without compression.
	Uncompressed compress.Codec = new(uncompressed.Codec)

	// Zstd is a parameter to the Compression option enabling zstd frame
	// compression. This is the default codec.
	Zstd compress.Codec = new(zstd.Codec)

	// Lz4 is a parameter to the Compression option enabling lz4 frame
	// compression.
	Lz4 compress.Codec = new(lz4.Codec)

	// Snappy is a parameter to the Compression option enabling snappy frame
	// compression.
	Snappy compress.Codec = new(snappy.Codec)

	// Gzip is a parameter to the Compression option enabling gzip frame
	// compression.
	Gzip compress.Codec = new(gzip.Codec)

	// Brotli is a parameter to the Compression option enabling brotli frame
	// compression.
	Brotli compress.Codec = new(brotli.Codec)

	compressionCodecs = [...]compress.Codec{
		format.Uncompressed: Uncompressed,
		format.Zstd:         Zstd,
		format.Lz4:          Lz4,
		format.Snappy:       Snappy,
		format.Gzip:         Gzip,
		format.Brotli:       Brotli,
	}
)

// lookupCompressionCodec resolves the codec code read from a file footer to
// the codec implementation used to decompress its frames.
func lookupCompressionCodec(codec format.CompressionCodec) (compress.Codec, error) {
	if codec >= 0 && int(codec) < len(compressionCodecs) {
		if c := compressionCodecs[codec]; c != nil {
			return c, nil
		}
	}
	return nil, fmt.Errorf("rowbinary: unsupported compression codec: %d", codec)
}
