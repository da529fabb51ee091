package rowbinary_test

import (
	"fmt"
	"strings"
	"testing"

	rowbinary "github.com/segmentio/rowbinary-go"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

func TestPrintSchema(t *testing.T) {
	tests := []struct {
		name    string
		columns []rowbinary.Column
		print   string
	}{
		{
			name: "users",
			columns: []rowbinary.Column{
				mustColumn(t, "id", "UInt64"),
				mustColumn(t, "name", "String"),
				mustColumn(t, "active", "Bool"),
			},
			print: `table users {
	id UInt64
	name String
	active Bool
}`,
		},

		{
			name: "events",
			columns: []rowbinary.Column{
				mustColumn(t, "token", "UUID"),
				mustColumn(t, "at", "DateTime"),
				mustColumn(t, "tags", "Array(String)"),
				mustColumn(t, "note", "Nullable(String)"),
			},
			print: `table events {
	token UUID
	at DateTime
	tags Array(String)
	note Nullable(String)
}`,
		},

		{
			name: "",
			columns: []rowbinary.Column{
				mustColumn(t, "code", "FixedString(2)"),
			},
			print: `table {
	code FixedString(2)
}`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			schema := mustSchema(t, test.columns...)

			buf := new(strings.Builder)
			if err := rowbinary.Print(buf, test.name, schema); err != nil {
				t.Fatal(err)
			}

			if s := buf.String(); s != test.print {
				edits := myers.ComputeEdits(span.URIFromPath("schema"), test.print, s)
				diff := fmt.Sprint(gotextdiff.ToUnified("want", "got", test.print, edits))
				t.Errorf("schema print mismatch:\n%s", diff)
			}
		})
	}
}

func TestPrintIndent(t *testing.T) {
	schema := mustSchema(t,
		mustColumn(t, "id", "UInt64"),
		mustColumn(t, "name", "String"),
	)

	buf := new(strings.Builder)
	if err := rowbinary.PrintIndent(buf, "users", schema, "", " "); err != nil {
		t.Fatal(err)
	}

	want := `table users { id UInt64 name String }`
	if s := buf.String(); s != want {
		t.Errorf("schema print mismatch:\ngot  %q\nwant %q", s, want)
	}
}
