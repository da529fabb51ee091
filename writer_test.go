package rowbinary_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	rowbinary "github.com/segmentio/rowbinary-go"
	"github.com/segmentio/rowbinary-go/internal/quick"
)

var formats = [...]rowbinary.Format{
	rowbinary.RowBinary,
	rowbinary.RowBinaryWithNames,
	rowbinary.RowBinaryWithNamesAndTypes,
}

func TestWriterReaderRoundTrip(t *testing.T) {
	schema := mustSchema(t,
		mustColumn(t, "id", "UInt64"),
		mustColumn(t, "name", "String"),
		mustColumn(t, "active", "Bool"),
	)

	rows := []rowbinary.Row{
		rowbinary.MakeRow(uint64(1), "Alice", true),
		rowbinary.MakeRow(uint64(2), "Bob", false),
		rowbinary.MakeRow(uint64(3), "Charlie", true),
	}

	for _, format := range formats {
		t.Run(format.String(), func(t *testing.T) {
			buffer := new(bytes.Buffer)
			writer := rowbinary.NewWriter(buffer, schema, rowbinary.FileFormat(format))

			if err := writer.WriteRows(rows); err != nil {
				t.Fatal(err)
			}
			if n := writer.NumRows(); n != 3 {
				t.Errorf("writer row count mismatch: got %d, want 3", n)
			}

			reader := rowbinary.NewReader(buffer.Bytes(), schema, rowbinary.FileFormat(format))
			read, err := reader.ReadAll()
			if err != nil {
				t.Fatal(err)
			}
			if len(read) != len(rows) {
				t.Fatalf("row count mismatch: got %d, want %d", len(read), len(rows))
			}
			for i := range rows {
				if !read[i].Equal(rows[i]) {
					t.Errorf("row %d mismatch: got %v, want %v", i, read[i], rows[i])
				}
			}

			if _, err := reader.ReadRow(); err != io.EOF {
				t.Errorf("reading after the last row: got %v, want io.EOF", err)
			}
		})
	}
}

func TestWriterExplicitHeader(t *testing.T) {
	schema := mustSchema(t, mustColumn(t, "id", "UInt64"))

	buffer := new(bytes.Buffer)
	writer := rowbinary.NewWriter(buffer, schema,
		rowbinary.FileFormat(rowbinary.RowBinaryWithNamesAndTypes))

	if err := writer.WriteHeader(); err != nil {
		t.Fatal(err)
	}
	headerLength := buffer.Len()
	if headerLength == 0 {
		t.Fatal("expected a non-empty header")
	}
	// Writing the header twice must be a no-op.
	if err := writer.WriteHeader(); err != nil {
		t.Fatal(err)
	}
	if buffer.Len() != headerLength {
		t.Error("the header was written twice")
	}

	reader := rowbinary.NewReader(buffer.Bytes(), schema,
		rowbinary.FileFormat(rowbinary.RowBinaryWithNamesAndTypes))
	if err := reader.ReadHeader(); err != nil {
		t.Fatal(err)
	}
	if _, err := reader.ReadRow(); err != io.EOF {
		t.Errorf("reading rows of an empty stream: got %v, want io.EOF", err)
	}
}

func TestReaderHeaderMismatch(t *testing.T) {
	written := mustSchema(t, mustColumn(t, "id", "UInt64"), mustColumn(t, "name", "String"))
	expected := mustSchema(t, mustColumn(t, "id", "UInt64"), mustColumn(t, "email", "String"))

	buffer := new(bytes.Buffer)
	writer := rowbinary.NewWriter(buffer, written,
		rowbinary.FileFormat(rowbinary.RowBinaryWithNames))
	if err := writer.WriteRow(rowbinary.MakeRow(uint64(1), "Alice")); err != nil {
		t.Fatal(err)
	}

	reader := rowbinary.NewReader(buffer.Bytes(), expected,
		rowbinary.FileFormat(rowbinary.RowBinaryWithNames))
	if err := reader.ReadHeader(); !errors.Is(err, rowbinary.ErrSchemaMismatch) {
		t.Errorf("error mismatch: got %v, want %v", err, rowbinary.ErrSchemaMismatch)
	}
}

func TestWriterReset(t *testing.T) {
	schema := mustSchema(t, mustColumn(t, "id", "UInt64"))

	b1 := new(bytes.Buffer)
	writer := rowbinary.NewWriter(b1, schema)
	if err := writer.WriteRow(rowbinary.MakeRow(uint64(1))); err != nil {
		t.Fatal(err)
	}

	b2 := new(bytes.Buffer)
	writer.Reset(b2)
	if n := writer.NumRows(); n != 0 {
		t.Errorf("row count after reset: got %d, want 0", n)
	}
	if err := writer.WriteRow(rowbinary.MakeRow(uint64(2))); err != nil {
		t.Fatal(err)
	}

	reader := rowbinary.NewReader(b2.Bytes(), schema)
	row, err := reader.ReadRow()
	if err != nil {
		t.Fatal(err)
	}
	if row[0].Uint64() != 2 {
		t.Errorf("row mismatch after reset: got %s", row[0])
	}
}

func TestWriterRowBytesPassthrough(t *testing.T) {
	schema := mustSchema(t, mustColumn(t, "id", "UInt64"), mustColumn(t, "name", "String"))

	encoded, err := schema.AppendRow(nil, rowbinary.MakeRow(uint64(42), "raw"))
	if err != nil {
		t.Fatal(err)
	}

	buffer := new(bytes.Buffer)
	writer := rowbinary.NewWriter(buffer, schema)
	if err := writer.WriteRowBytes(encoded); err != nil {
		t.Fatal(err)
	}
	if n := writer.NumRows(); n != 1 {
		t.Errorf("row count mismatch: got %d, want 1", n)
	}

	reader := rowbinary.NewReader(buffer.Bytes(), schema)
	row, err := reader.ReadRow()
	if err != nil {
		t.Fatal(err)
	}
	if row[0].Uint64() != 42 || string(row[1].ByteArray()) != "raw" {
		t.Errorf("unexpected row: %v", row)
	}
}

func TestWriterReaderRoundTripProperty(t *testing.T) {
	schema := mustSchema(t,
		mustColumn(t, "id", "UInt64"),
		mustColumn(t, "payload", "String"),
		mustColumn(t, "values", "Array(Int32)"),
	)

	err := quick.Check(schema, func(rows []rowbinary.Row) bool {
		buffer := new(bytes.Buffer)
		writer := rowbinary.NewWriter(buffer, schema,
			rowbinary.FileFormat(rowbinary.RowBinaryWithNamesAndTypes))
		if err := writer.WriteHeader(); err != nil {
			t.Error(err)
			return false
		}
		if err := writer.WriteRows(rows); err != nil {
			t.Error(err)
			return false
		}

		reader := rowbinary.NewReader(buffer.Bytes(), schema,
			rowbinary.FileFormat(rowbinary.RowBinaryWithNamesAndTypes))
		read, err := reader.ReadAll()
		if err != nil {
			t.Error(err)
			return false
		}
		if len(read) != len(rows) {
			t.Errorf("row count mismatch: got %d, want %d", len(read), len(rows))
			return false
		}
		for i := range rows {
			if !read[i].Equal(rows[i]) {
				t.Errorf("row %d mismatch: got %v, want %v", i, read[i], rows[i])
				return false
			}
		}
		return true
	})
	if err != nil {
		t.Error(err)
	}
}
