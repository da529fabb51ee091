package rowbinary

import (
	"fmt"

	"github.com/segmentio/rowbinary-go/format"
)

// Column describes one column of a schema.
type Column struct {
	Name string
	Type Type
}

// ParseColumn constructs a column from its name and the ClickHouse spelling
// of its type.
func ParseColumn(name, typ string) (Column, error) {
	t, err := ParseType(typ)
	if err != nil {
		return Column{}, err
	}
	return Column{Name: name, Type: t}, nil
}

// Schema is an ordered sequence of named, typed columns.
//
// Schemas are immutable once constructed; the column order is significant
// and fixed for the lifetime of the files they are bound to. A schema must
// match between the writer which produced a file and the readers which
// consume it.
type Schema struct {
	columns []Column
	names   map[string]int
}

// NewSchema constructs a schema from the given sequence of columns.
//
// The function returns an error if a column name is empty or appears more
// than once.
func NewSchema(columns ...Column) (*Schema, error) {
	s := &Schema{
		columns: make([]Column, len(columns)),
		names:   make(map[string]int, len(columns)),
	}
	copy(s.columns, columns)

	for i, c := range s.columns {
		if c.Name == "" {
			return nil, fmt.Errorf("rowbinary: schema column %d has no name", i)
		}
		if _, exists := s.names[c.Name]; exists {
			return nil, fmt.Errorf("rowbinary: schema has duplicate column name %q", c.Name)
		}
		s.names[c.Name] = i
	}

	return s, nil
}

// NumColumns returns the number of columns of s.
func (s *Schema) NumColumns() int { return len(s.columns) }

// Column returns the i-th column of s.
func (s *Schema) Column(i int) Column { return s.columns[i] }

// Columns returns the columns of s in order. The returned slice is shared
// and must not be modified.
func (s *Schema) Columns() []Column { return s.columns }

// Names returns the column names of s in order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}
	return names
}

// Lookup returns the column with the given name.
func (s *Schema) Lookup(name string) (Column, bool) {
	if i, ok := s.names[name]; ok {
		return s.columns[i], true
	}
	return Column{}, false
}

// Equal returns true if s and other have the same columns in the same order.
func (s *Schema) Equal(other *Schema) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil || len(s.columns) != len(other.columns) {
		return false
	}
	for i := range s.columns {
		if s.columns[i].Name != other.columns[i].Name {
			return false
		}
		if !s.columns[i].Type.Equal(other.columns[i].Type) {
			return false
		}
	}
	return true
}

// String returns a representation of s with one column per line, in the
// style of a ClickHouse table definition.
func (s *Schema) String() string {
	b := make([]byte, 0, 16*len(s.columns))
	b = append(b, '{')
	for _, c := range s.columns {
		b = append(b, "\n\t"...)
		b = append(b, c.Name...)
		b = append(b, ' ')
		b = append(b, c.Type.String()...)
	}
	b = append(b, "\n}"...)
	return string(b)
}

func (s *Schema) formatColumns() []format.Column {
	columns := make([]format.Column, len(s.columns))
	for i, c := range s.columns {
		columns[i] = format.Column{Name: c.Name, Type: c.Type.String()}
	}
	return columns
}

func schemaOfFormat(columns []format.Column) (*Schema, error) {
	parsed := make([]Column, len(columns))
	for i, c := range columns {
		column, err := ParseColumn(c.Name, c.Type)
		if err != nil {
			return nil, err
		}
		parsed[i] = column
	}
	return NewSchema(parsed...)
}
