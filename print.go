package rowbinary

import (
	"io"
)

// Print writes a textual representation of schema to w, in the style of a
// ClickHouse table definition:
//
//	table users {
//		id UInt64
//		name String
//		active Bool
//	}
//
func Print(w io.Writer, name string, schema *Schema) error {
	return PrintIndent(w, name, schema, "\t", "\n")
}

// PrintIndent behaves like Print but lets the caller customize the
// indentation pattern and line separator.
func PrintIndent(w io.Writer, name string, schema *Schema, pattern, newline string) error {
	pw := &printWriter{writer: w}
	pw.WriteString("table ")

	if name == "" {
		pw.WriteString("{")
	} else {
		pw.WriteString(name)
		pw.WriteString(" {")
	}

	for _, column := range schema.Columns() {
		pw.WriteString(newline)
		pw.WriteString(pattern)
		pw.WriteString(column.Name)
		pw.WriteString(" ")
		pw.WriteString(column.Type.String())
	}

	pw.WriteString(newline)
	pw.WriteString("}")
	return pw.err
}

type printWriter struct {
	writer io.Writer
	err    error
}

func (w *printWriter) WriteString(s string) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := io.WriteString(w.writer, s)
	w.err = err
	return n, err
}
