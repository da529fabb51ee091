package main

import (
	"bufio"
	"io"
	"os"

	rowbinary "github.com/segmentio/rowbinary-go"
	"github.com/segmentio/rowbinary-go/internal/debug"
)

type catFlags struct {
	_      struct{} `help:"Dump the rows of a seekable RowBinary file to stdout"`
	Debug  bool     `flag:"--debug" help:"Display debugging logs" default:"false"`
	Offset int64    `flag:"--offset" help:"Index of the first row to print" default:"0"`
	Limit  int      `flag:"--limit" help:"Maximum number of rows to print, -1 for all" default:"-1"`
}

func catCommand(flags catFlags, path string) {
	debug.Toggle(flags.Debug)

	file, size, err := openFile(path)
	if err != nil {
		perrorf("could not open file: %s", err)
		return
	}
	defer closeFile(file)

	f, err := rowbinary.OpenFile(file, size)
	if err != nil {
		perrorf("could not parse rowbinary file: %s", err)
		return
	}
	pdebugf("%s: %d rows in %d frames", path, f.NumRows(), f.NumFrames())

	reader := rowbinary.NewSeekableReader(f)
	if flags.Offset != 0 {
		if err := reader.Seek(flags.Offset); err != nil {
			perrorf("could not seek to row %d: %s", flags.Offset, err)
			return
		}
	}

	output := bufio.NewWriter(os.Stdout)
	defer output.Flush()

	for n := 0; flags.Limit < 0 || n < flags.Limit; n++ {
		row, err := reader.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			perrorf("error reading row %d: %s", reader.CurrentRowIndex(), err)
			return
		}
		printRow(output, row)
	}
}

func printRow(w *bufio.Writer, row rowbinary.Row) {
	for i, v := range row {
		if i > 0 {
			_ = w.WriteByte('\t')
		}
		_, _ = w.WriteString(v.String())
	}
	_ = w.WriteByte('\n')
}

func openFile(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, stat.Size(), nil
}

func closeFile(f *os.File) {
	if err := f.Close(); err != nil {
		perrorf("could not close file: %s", err)
	}
}
