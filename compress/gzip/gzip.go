// Package gzip implements the GZIP frame compression codec.
package gzip

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/segmentio/rowbinary-go/compress"
	"github.com/segmentio/rowbinary-go/format"
)

const (
	NoCompression      = gzip.NoCompression
	BestSpeed          = gzip.BestSpeed
	BestCompression    = gzip.BestCompression
	DefaultCompression = gzip.DefaultCompression
	HuffmanOnly        = gzip.HuffmanOnly
)

type Codec struct {
	Level int

	compress.Compressor
	compress.Decompressor
}

func (c *Codec) String() string {
	return "GZIP"
}

func (c *Codec) CompressionCodec() format.CompressionCodec {
	return format.Gzip
}

func (c *Codec) Encode(dst, src []byte) ([]byte, error) {
	return c.Compressor.Encode(dst, src, func(w io.Writer) (compress.Writer, error) {
		z, err := gzip.NewWriterLevel(w, c.level())
		if err != nil {
			return nil, err
		}
		return writer{z}, nil
	})
}

func (c *Codec) Decode(dst, src []byte) ([]byte, error) {
	return c.Decompressor.Decode(dst, src, func(r io.Reader) (compress.Reader, error) {
		z, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return reader{z}, nil
	})
}

func (c *Codec) level() int {
	if c.Level != 0 {
		return c.Level
	}
	return DefaultCompression
}

// Minimal valid gzip header used to reset pooled readers when they are
// returned to the pool, since gzip readers consume the stream header eagerly
// and cannot be reset against a nil reader.
var emptyGzip = [10]byte{0x1f, 0x8b, 8, 0, 0, 0, 0, 0, 0, 0xff}

type reader struct{ *gzip.Reader }

func (r reader) Reset(rr io.Reader) error {
	if rr == nil {
		rr = bytes.NewReader(emptyGzip[:])
	}
	return r.Reader.Reset(rr)
}

type writer struct{ *gzip.Writer }

func (w writer) Reset(ww io.Writer) {
	if ww == nil {
		ww = io.Discard
	}
	w.Writer.Reset(ww)
}
