package format_test

import (
	"reflect"
	"testing"

	"github.com/segmentio/encoding/thrift"
	"github.com/segmentio/rowbinary-go/format"
)

func TestMarshalUnmarshalFileFooter(t *testing.T) {
	protocol := &thrift.CompactProtocol{}
	footer := &format.FileFooter{
		Version:     1,
		Format:      2,
		Compression: format.Zstd,
		Schema: []format.Column{
			{Name: "id", Type: "UInt64"},
			{Name: "name", Type: "String"},
		},
		Frames: []format.Frame{
			{Offset: 4, CompressedLength: 100, UncompressedLength: 400, RowCount: 10, FirstRowIndex: 0},
			{Offset: 104, CompressedLength: 90, UncompressedLength: 360, RowCount: 9, FirstRowIndex: 10},
		},
		NumRows:   19,
		CreatedBy: "rowbinary-test",
	}

	b, err := thrift.Marshal(protocol, footer)
	if err != nil {
		t.Fatal(err)
	}

	decoded := &format.FileFooter{}
	if err := thrift.Unmarshal(protocol, b, &decoded); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(footer, decoded) {
		t.Error("values mismatch:")
		t.Logf("expected:\n%#v", footer)
		t.Logf("found:\n%#v", decoded)
	}
}

func TestCompressionCodecString(t *testing.T) {
	codecs := map[format.CompressionCodec]string{
		format.Uncompressed: "UNCOMPRESSED",
		format.Zstd:         "ZSTD",
		format.Lz4:          "LZ4",
		format.Snappy:       "SNAPPY",
		format.Gzip:         "GZIP",
		format.Brotli:       "BROTLI",
	}

	for codec, want := range codecs {
		if s := codec.String(); s != want {
			t.Errorf("string mismatch for codec %d: got %s, want %s", codec, s, want)
		}
	}
}
