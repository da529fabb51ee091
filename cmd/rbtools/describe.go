package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	rowbinary "github.com/segmentio/rowbinary-go"
	"github.com/segmentio/rowbinary-go/internal/debug"
)

type describeFlags struct {
	_     struct{} `help:"Print the schema and frame index of a seekable RowBinary file"`
	Debug bool     `flag:"--debug" help:"Display debugging logs" default:"false"`
}

func describeCommand(flags describeFlags, path string) {
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

	fmt.Printf("file:        %s (%d bytes)\n", path, f.Size())
	fmt.Printf("format:      %s\n", f.Format())
	fmt.Printf("compression: %s\n", f.CompressionCodec())
	fmt.Printf("rows:        %d\n", f.NumRows())
	if createdBy := f.CreatedBy(); createdBy != "" {
		fmt.Printf("created by:  %s\n", createdBy)
	}
	fmt.Println()

	if err := rowbinary.Print(os.Stdout, "", f.Schema()); err != nil {
		perrorf("could not print schema: %s", err)
		return
	}
	fmt.Println()
	fmt.Println()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"frame", "offset", "compressed", "uncompressed", "rows", "first row"})
	for i := 0; i < f.NumFrames(); i++ {
		frame := f.FrameDescriptor(i)
		table.Append([]string{
			strconv.Itoa(i),
			strconv.FormatInt(frame.Offset, 10),
			strconv.FormatInt(frame.CompressedLength, 10),
			strconv.FormatInt(frame.UncompressedLength, 10),
			strconv.FormatInt(int64(frame.RowCount), 10),
			strconv.FormatInt(frame.FirstRowIndex, 10),
		})
	}
	table.Render()
}
