/*
Package rowbinary implements the ClickHouse RowBinary format, along with a
seekable container format which stores RowBinary rows in compressed frames
indexed by row number.

Writing

The SeekableWriter type produces files which can later be opened for random
access by row index:

	writer := rowbinary.NewSeekableWriter(output, schema)

	for _, row := range rows {
		if err := writer.WriteRow(row); err != nil {
			...
		}
	}

	if err := writer.Close(); err != nil {
		...
	}

Reading

Files are opened from an io.ReaderAt, only the footer is read up front; the
SeekableReader type then exposes a cursor which can be repositioned to any
row of the file:

	file, err := rowbinary.OpenFile(input, size)
	if err != nil {
		...
	}

	reader := rowbinary.NewSeekableReader(file)
	if err := reader.Seek(5000); err != nil {
		...
	}
	row, err := reader.ReadCurrent()

The plain Writer and Reader types read and write uncompressed RowBinary
streams, as produced and consumed by ClickHouse itself.

Tooling

This package additionally provides tooling to inspect seekable RowBinary
files. The program is available at ./cmd/rbtools.
*/
package rowbinary

// Format is an enumeration of the RowBinary format variants, which differ
// only by the optional header preceding the row stream.
type Format int32

const (
	// RowBinary is the bare format variant, rows are not preceded by any
	// header.
	RowBinary Format = iota

	// RowBinaryWithNames prefixes the row stream with the number of columns
	// and the column names.
	RowBinaryWithNames

	// RowBinaryWithNamesAndTypes prefixes the row stream with the number of
	// columns, the column names, and the column type strings.
	RowBinaryWithNamesAndTypes
)

func (f Format) String() string {
	switch f {
	case RowBinary:
		return "RowBinary"
	case RowBinaryWithNames:
		return "RowBinaryWithNames"
	case RowBinaryWithNamesAndTypes:
		return "RowBinaryWithNamesAndTypes"
	default:
		return "unknown"
	}
}
