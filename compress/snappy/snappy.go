// Package snappy implements the SNAPPY frame compression codec.
package snappy

import (
	"io"

	"github.com/klauspost/compress/snappy"
	"github.com/segmentio/rowbinary-go/compress"
	"github.com/segmentio/rowbinary-go/format"
)

type Codec struct {
	compress.Compressor
	compress.Decompressor
}

func (c *Codec) String() string {
	return "SNAPPY"
}

func (c *Codec) CompressionCodec() format.CompressionCodec {
	return format.Snappy
}

func (c *Codec) Encode(dst, src []byte) ([]byte, error) {
	return c.Compressor.Encode(dst, src, func(w io.Writer) (compress.Writer, error) {
		return writer{snappy.NewBufferedWriter(w)}, nil
	})
}

func (c *Codec) Decode(dst, src []byte) ([]byte, error) {
	return c.Decompressor.Decode(dst, src, func(r io.Reader) (compress.Reader, error) {
		return reader{snappy.NewReader(r)}, nil
	})
}

type reader struct{ *snappy.Reader }

func (r reader) Close() error             { return nil }
func (r reader) Reset(rr io.Reader) error { r.Reader.Reset(rr); return nil }

type writer struct{ *snappy.Writer }
