package rowbinary_test

import (
	"testing"

	rowbinary "github.com/segmentio/rowbinary-go"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		input string
		typ   rowbinary.Type
	}{
		{input: "Int8", typ: rowbinary.Int8Type},
		{input: "Int16", typ: rowbinary.Int16Type},
		{input: "Int32", typ: rowbinary.Int32Type},
		{input: "Int64", typ: rowbinary.Int64Type},
		{input: "UInt8", typ: rowbinary.UInt8Type},
		{input: "UInt16", typ: rowbinary.UInt16Type},
		{input: "UInt32", typ: rowbinary.UInt32Type},
		{input: "UInt64", typ: rowbinary.UInt64Type},
		{input: "Float32", typ: rowbinary.Float32Type},
		{input: "Float64", typ: rowbinary.Float64Type},
		{input: "Bool", typ: rowbinary.BoolType},
		{input: "String", typ: rowbinary.StringType},
		{input: "UUID", typ: rowbinary.UUIDType},
		{input: "Date", typ: rowbinary.DateType},
		{input: "DateTime", typ: rowbinary.DateTimeType},
		{input: "FixedString(16)", typ: rowbinary.FixedStringType(16)},
		{input: "Nullable(String)", typ: rowbinary.NullableType(rowbinary.StringType)},
		{input: "Nullable(FixedString(3))", typ: rowbinary.NullableType(rowbinary.FixedStringType(3))},
		{input: "Array(UInt8)", typ: rowbinary.ArrayType(rowbinary.UInt8Type)},
		{input: "Array(Array(String))", typ: rowbinary.ArrayType(rowbinary.ArrayType(rowbinary.StringType))},
		{input: "Array(Nullable(Int64))", typ: rowbinary.ArrayType(rowbinary.NullableType(rowbinary.Int64Type))},
		{input: " Nullable( String ) ", typ: rowbinary.NullableType(rowbinary.StringType)},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			typ, err := rowbinary.ParseType(test.input)
			if err != nil {
				t.Fatal(err)
			}
			if !typ.Equal(test.typ) {
				t.Errorf("parsed type mismatch: got %s, want %s", typ, test.typ)
			}
		})
	}
}

func TestParseTypeRoundTrip(t *testing.T) {
	types := []rowbinary.Type{
		rowbinary.Int32Type,
		rowbinary.UInt64Type,
		rowbinary.StringType,
		rowbinary.FixedStringType(8),
		rowbinary.NullableType(rowbinary.DateTimeType),
		rowbinary.ArrayType(rowbinary.NullableType(rowbinary.UUIDType)),
	}

	for _, typ := range types {
		t.Run(typ.String(), func(t *testing.T) {
			parsed, err := rowbinary.ParseType(typ.String())
			if err != nil {
				t.Fatal(err)
			}
			if !parsed.Equal(typ) {
				t.Errorf("type did not round-trip through its string form: got %s", parsed)
			}
		})
	}
}

func TestParseTypeErrors(t *testing.T) {
	inputs := []string{
		"",
		"int8",
		"UInt128",
		"FixedString",
		"FixedString(0)",
		"FixedString(-1)",
		"FixedString(x)",
		"Nullable(Nullable(Int8))",
		"Nullable(Array(Int8))",
		"Nullable()",
		"Array(",
		"Tuple(Int8, Int8)",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			if typ, err := rowbinary.ParseType(input); err == nil {
				t.Errorf("expected parse error, got type %s", typ)
			}
		})
	}
}

func TestTypeSize(t *testing.T) {
	tests := []struct {
		typ  rowbinary.Type
		size int
	}{
		{typ: rowbinary.Int8Type, size: 1},
		{typ: rowbinary.Int64Type, size: 8},
		{typ: rowbinary.BoolType, size: 1},
		{typ: rowbinary.DateType, size: 2},
		{typ: rowbinary.DateTimeType, size: 4},
		{typ: rowbinary.UUIDType, size: 16},
		{typ: rowbinary.FixedStringType(5), size: 5},
		{typ: rowbinary.StringType, size: 0},
		{typ: rowbinary.NullableType(rowbinary.Int8Type), size: 0},
		{typ: rowbinary.ArrayType(rowbinary.Int8Type), size: 0},
	}

	for _, test := range tests {
		if size := test.typ.Size(); size != test.size {
			t.Errorf("%s: size mismatch: got %d, want %d", test.typ, size, test.size)
		}
	}
}
