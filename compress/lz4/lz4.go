// Package lz4 implements the LZ4 frame compression codec.
package lz4

import (
	"io"

	"github.com/pierrec/lz4/v4"
	"github.com/segmentio/rowbinary-go/compress"
	"github.com/segmentio/rowbinary-go/format"
)

type Codec struct {
	compress.Compressor
	compress.Decompressor
}

func (c *Codec) String() string {
	return "LZ4"
}

func (c *Codec) CompressionCodec() format.CompressionCodec {
	return format.Lz4
}

func (c *Codec) Encode(dst, src []byte) ([]byte, error) {
	return c.Compressor.Encode(dst, src, func(w io.Writer) (compress.Writer, error) {
		return writer{lz4.NewWriter(w)}, nil
	})
}

func (c *Codec) Decode(dst, src []byte) ([]byte, error) {
	return c.Decompressor.Decode(dst, src, func(r io.Reader) (compress.Reader, error) {
		return reader{lz4.NewReader(r)}, nil
	})
}

type reader struct{ *lz4.Reader }

func (r reader) Close() error             { return nil }
func (r reader) Reset(rr io.Reader) error { r.Reader.Reset(rr); return nil }

type writer struct{ *lz4.Writer }

func (w writer) Reset(ww io.Writer) { w.Writer.Reset(nonNilWriter(ww)) }

func nonNilWriter(w io.Writer) io.Writer {
	if w == nil {
		w = io.Discard
	}
	return w
}
