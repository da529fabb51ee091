// Package quick generates pseudo-random row sets for property tests, in the
// spirit of the standard testing/quick package but driven by a RowBinary
// schema and exercising larger set sizes.
package quick

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	rowbinary "github.com/segmentio/rowbinary-go"
)

var sizes = [...]int{0, 1, 2, 3, 5, 10, 37, 123, 1000, 4096, 10000}

// Check generates row sets of increasing sizes for the given schema and
// calls f on each of them, reporting the first size at which f returns
// false. The generator is deterministically seeded so failures reproduce.
func Check(schema *rowbinary.Schema, f func(rows []rowbinary.Row) bool) error {
	prng := rand.New(rand.NewSource(0))
	for _, n := range sizes {
		if !f(GenerateRows(prng, schema, n)) {
			return fmt.Errorf("test failed on a set of %d rows", n)
		}
	}
	return nil
}

// GenerateRows returns n pseudo-random rows matching schema.
func GenerateRows(prng *rand.Rand, schema *rowbinary.Schema, n int) []rowbinary.Row {
	rows := make([]rowbinary.Row, n)
	for i := range rows {
		row := make(rowbinary.Row, schema.NumColumns())
		for j, column := range schema.Columns() {
			row[j] = GenerateValue(prng, column.Type)
		}
		rows[i] = row
	}
	return rows
}

// GenerateValue returns one pseudo-random value encodable to a column of
// type t and decodable back to an equal value.
func GenerateValue(prng *rand.Rand, t rowbinary.Type) rowbinary.Value {
	switch t.Kind() {
	case rowbinary.Int8:
		return rowbinary.ValueOf(int8(prng.Uint64()))
	case rowbinary.Int16:
		return rowbinary.ValueOf(int16(prng.Uint64()))
	case rowbinary.Int32:
		return rowbinary.ValueOf(int32(prng.Uint64()))
	case rowbinary.Int64:
		return rowbinary.ValueOf(int64(prng.Uint64()))
	case rowbinary.UInt8:
		return rowbinary.ValueOf(uint8(prng.Uint64()))
	case rowbinary.UInt16:
		return rowbinary.ValueOf(uint16(prng.Uint64()))
	case rowbinary.UInt32:
		return rowbinary.ValueOf(uint32(prng.Uint64()))
	case rowbinary.UInt64:
		return rowbinary.ValueOf(prng.Uint64())
	case rowbinary.Float32:
		return rowbinary.ValueOf(prng.Float32())
	case rowbinary.Float64:
		return rowbinary.ValueOf(prng.NormFloat64())
	case rowbinary.Bool:
		return rowbinary.ValueOf(prng.Int()%2 == 0)
	case rowbinary.String:
		return rowbinary.ValueOf(generateBytes(prng, prng.Intn(65)))
	case rowbinary.FixedString:
		return rowbinary.ValueOf(generateBytes(prng, t.Size()))
	case rowbinary.UUID:
		u, err := uuid.NewRandomFromReader(prng)
		if err != nil {
			panic(err)
		}
		return rowbinary.ValueOf(u)
	case rowbinary.Date:
		days := int64(prng.Intn(65536))
		return rowbinary.ValueOf(time.Unix(86400*days, 0).UTC())
	case rowbinary.DateTime:
		return rowbinary.ValueOf(time.Unix(int64(prng.Uint32()), 0).UTC())
	case rowbinary.Nullable:
		if prng.Intn(4) == 0 {
			return rowbinary.Null
		}
		return GenerateValue(prng, t.Elem())
	case rowbinary.Array:
		values := make([]rowbinary.Value, prng.Intn(5))
		for i := range values {
			values[i] = GenerateValue(prng, t.Elem())
		}
		return rowbinary.ValueOf(values)
	default:
		panic("cannot generate value of type " + t.String())
	}
}

func generateBytes(prng *rand.Rand, n int) []byte {
	b := make([]byte, n)
	prng.Read(b)
	return b
}
