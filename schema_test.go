package rowbinary_test

import (
	"testing"

	rowbinary "github.com/segmentio/rowbinary-go"
)

func TestNewSchema(t *testing.T) {
	schema := mustSchema(t,
		mustColumn(t, "id", "UInt64"),
		mustColumn(t, "name", "String"),
		mustColumn(t, "score", "Nullable(Float64)"),
	)

	if n := schema.NumColumns(); n != 3 {
		t.Errorf("column count mismatch: got %d, want 3", n)
	}

	names := schema.Names()
	for i, want := range []string{"id", "name", "score"} {
		if names[i] != want {
			t.Errorf("column %d name mismatch: got %s, want %s", i, names[i], want)
		}
		if c := schema.Column(i); c.Name != want {
			t.Errorf("Column(%d) name mismatch: got %s, want %s", i, c.Name, want)
		}
	}

	if c, ok := schema.Lookup("name"); !ok || !c.Type.Equal(rowbinary.StringType) {
		t.Errorf("lookup of existing column failed: %v %t", c, ok)
	}
	if _, ok := schema.Lookup("missing"); ok {
		t.Error("lookup of missing column succeeded")
	}
}

func TestNewSchemaErrors(t *testing.T) {
	t.Run("empty column name", func(t *testing.T) {
		_, err := rowbinary.NewSchema(rowbinary.Column{Name: "", Type: rowbinary.Int8Type})
		if err == nil {
			t.Error("expected an error for a column with no name")
		}
	})

	t.Run("duplicate column name", func(t *testing.T) {
		_, err := rowbinary.NewSchema(
			rowbinary.Column{Name: "x", Type: rowbinary.Int8Type},
			rowbinary.Column{Name: "x", Type: rowbinary.StringType},
		)
		if err == nil {
			t.Error("expected an error for duplicate column names")
		}
	})
}

func TestSchemaEqual(t *testing.T) {
	s1 := mustSchema(t, mustColumn(t, "id", "UInt64"), mustColumn(t, "name", "String"))
	s2 := mustSchema(t, mustColumn(t, "id", "UInt64"), mustColumn(t, "name", "String"))
	s3 := mustSchema(t, mustColumn(t, "id", "UInt64"), mustColumn(t, "name", "FixedString(8)"))
	s4 := mustSchema(t, mustColumn(t, "id", "UInt64"))

	if !s1.Equal(s2) {
		t.Error("schemas with the same columns must be equal")
	}
	if s1.Equal(s3) {
		t.Error("schemas with different column types must not be equal")
	}
	if s1.Equal(s4) {
		t.Error("schemas with different column counts must not be equal")
	}
	if !s1.Equal(s1) {
		t.Error("a schema must be equal to itself")
	}
}

func TestSchemaString(t *testing.T) {
	schema := mustSchema(t,
		mustColumn(t, "id", "UInt64"),
		mustColumn(t, "tags", "Array(String)"),
	)
	want := "{\n\tid UInt64\n\ttags Array(String)\n}"
	if s := schema.String(); s != want {
		t.Errorf("string mismatch:\ngot  %q\nwant %q", s, want)
	}
}
