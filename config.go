package rowbinary

import (
	"fmt"
	"strings"

	"github.com/segmentio/rowbinary-go/compress"
)

const (
	// DefaultFrameBufferSize is the default number of uncompressed row bytes
	// buffered before a frame is flushed.
	DefaultFrameBufferSize = 64 * 1024

	// DefaultFrameRowCount is the default maximum number of rows held by a
	// single frame.
	DefaultFrameRowCount = 4096
)

// The WriterConfig type carries configuration options for RowBinary writers.
//
// WriterConfig implements the WriterOption interface so it can be used
// directly as argument to the NewSeekableWriter function when needed, for
// example:
//
//	writer := rowbinary.NewSeekableWriter(output, schema, &rowbinary.WriterConfig{
//		CreatedBy: "my test program",
//	})
//
type WriterConfig struct {
	CreatedBy       string
	Format          Format
	Compression     compress.Codec
	FrameBufferSize int
	FrameRowCount   int
}

// DefaultWriterConfig returns a new WriterConfig value initialized with the
// default writer configuration.
func DefaultWriterConfig() *WriterConfig {
	return &WriterConfig{
		Format:          RowBinary,
		Compression:     Zstd,
		FrameBufferSize: DefaultFrameBufferSize,
		FrameRowCount:   DefaultFrameRowCount,
	}
}

// NewWriterConfig constructs a new writer configuration applying the options
// passed as arguments, and returns an error if any of the options carry
// invalid values.
func NewWriterConfig(options ...WriterOption) (*WriterConfig, error) {
	config := DefaultWriterConfig()
	config.Apply(options...)
	return config, config.Validate()
}

// Apply applies the given list of options to c.
func (c *WriterConfig) Apply(options ...WriterOption) {
	for _, opt := range options {
		opt.ConfigureWriter(c)
	}
}

// ConfigureWriter applies configuration options from c to config.
func (c *WriterConfig) ConfigureWriter(config *WriterConfig) {
	*config = WriterConfig{
		CreatedBy:       coalesceString(c.CreatedBy, config.CreatedBy),
		Format:          coalesceFormat(c.Format, config.Format),
		Compression:     coalesceCompression(c.Compression, config.Compression),
		FrameBufferSize: coalesceInt(c.FrameBufferSize, config.FrameBufferSize),
		FrameRowCount:   coalesceInt(c.FrameRowCount, config.FrameRowCount),
	}
}

// Validate returns a non-nil error if the configuration of c is invalid.
func (c *WriterConfig) Validate() error {
	const baseName = "rowbinary.(*WriterConfig)."
	return errorInvalidConfiguration(
		validateNotNil(baseName+"Compression", c.Compression),
		validatePositiveInt(baseName+"FrameBufferSize", c.FrameBufferSize),
		validatePositiveInt(baseName+"FrameRowCount", c.FrameRowCount),
		validateOneOfFormat(baseName+"Format", c.Format),
	)
}

// The ReaderConfig type carries configuration options for RowBinary readers.
//
// ReaderConfig implements the ReaderOption interface so it can be used
// directly as argument to the OpenFile function when needed.
type ReaderConfig struct {
	Schema *Schema
	Format Format
}

// DefaultReaderConfig returns a new ReaderConfig value initialized with the
// default reader configuration.
func DefaultReaderConfig() *ReaderConfig {
	return &ReaderConfig{}
}

// NewReaderConfig constructs a new reader configuration applying the options
// passed as arguments, and returns an error if any of the options carry
// invalid values.
func NewReaderConfig(options ...ReaderOption) (*ReaderConfig, error) {
	config := DefaultReaderConfig()
	config.Apply(options...)
	return config, config.Validate()
}

// Apply applies the given list of options to c.
func (c *ReaderConfig) Apply(options ...ReaderOption) {
	for _, opt := range options {
		opt.ConfigureReader(c)
	}
}

// ConfigureReader applies configuration options from c to config.
func (c *ReaderConfig) ConfigureReader(config *ReaderConfig) {
	*config = ReaderConfig{
		Schema: coalesceSchema(c.Schema, config.Schema),
		Format: coalesceFormat(c.Format, config.Format),
	}
}

// Validate returns a non-nil error if the configuration of c is invalid.
func (c *ReaderConfig) Validate() error {
	const baseName = "rowbinary.(*ReaderConfig)."
	return errorInvalidConfiguration(
		validateOneOfFormat(baseName+"Format", c.Format),
	)
}

// WriterOption is an interface implemented by types that carry configuration
// options for RowBinary writers.
type WriterOption interface {
	ConfigureWriter(*WriterConfig)
}

// ReaderOption is an interface implemented by types that carry configuration
// options for RowBinary readers.
type ReaderOption interface {
	ConfigureReader(*ReaderConfig)
}

// CreatedBy creates a configuration option which sets the name of the
// application recorded in the footer of seekable files.
//
// By default, this information is omitted.
func CreatedBy(createdBy string) WriterOption {
	return writerOption(func(config *WriterConfig) { config.CreatedBy = createdBy })
}

// FileFormat creates a configuration option which sets the RowBinary format
// variant used for the stream header, on both writers and readers.
//
// Defaults to the bare RowBinary variant (no header). Files opened with
// OpenFile take their format variant from the footer instead.
func FileFormat(format Format) interface {
	WriterOption
	ReaderOption
} {
	return fileFormat(format)
}

type fileFormat Format

func (f fileFormat) ConfigureWriter(config *WriterConfig) { config.Format = Format(f) }
func (f fileFormat) ConfigureReader(config *ReaderConfig) { config.Format = Format(f) }

// Compression creates a configuration option which sets the compression
// codec applied to the frames of seekable files.
//
// Defaults to ZSTD.
func Compression(codec compress.Codec) WriterOption {
	return writerOption(func(config *WriterConfig) { config.Compression = codec })
}

// FrameBufferSize creates a configuration option which sets the number of
// uncompressed row bytes buffered before a frame is flushed.
//
// Note that the size refers to the in-memory buffer where encoded rows are
// accumulated, not to the size of frames after compression. Frames always
// hold whole rows, so a frame may exceed this size when a single row does.
//
// Defaults to 64 KiB.
func FrameBufferSize(size int) WriterOption {
	return writerOption(func(config *WriterConfig) { config.FrameBufferSize = size })
}

// FrameRowCount creates a configuration option which sets the maximum number
// of rows buffered before a frame is flushed.
//
// Defaults to 4096.
func FrameRowCount(count int) WriterOption {
	return writerOption(func(config *WriterConfig) { config.FrameRowCount = count })
}

// ExpectedSchema creates a configuration option which makes OpenFile verify
// that the schema persisted in the file footer matches the given schema, and
// fail with ErrSchemaMismatch otherwise.
//
// By default, the persisted schema is trusted.
func ExpectedSchema(schema *Schema) ReaderOption {
	return readerOption(func(config *ReaderConfig) { config.Schema = schema })
}

type writerOption func(*WriterConfig)

func (opt writerOption) ConfigureWriter(config *WriterConfig) { opt(config) }

type readerOption func(*ReaderConfig)

func (opt readerOption) ConfigureReader(config *ReaderConfig) { opt(config) }

func coalesceInt(i1, i2 int) int {
	if i1 != 0 {
		return i1
	}
	return i2
}

func coalesceString(s1, s2 string) string {
	if s1 != "" {
		return s1
	}
	return s2
}

func coalesceFormat(f1, f2 Format) Format {
	if f1 != 0 {
		return f1
	}
	return f2
}

func coalesceCompression(c1, c2 compress.Codec) compress.Codec {
	if c1 != nil {
		return c1
	}
	return c2
}

func coalesceSchema(s1, s2 *Schema) *Schema {
	if s1 != nil {
		return s1
	}
	return s2
}

func validatePositiveInt(optionName string, optionValue int) error {
	if optionValue > 0 {
		return nil
	}
	return errorInvalidOptionValue(optionName, optionValue)
}

func validateNotNil(optionName string, optionValue interface{}) error {
	if optionValue != nil {
		return nil
	}
	return errorInvalidOptionValue(optionName, optionValue)
}

func validateOneOfFormat(optionName string, optionValue Format) error {
	switch optionValue {
	case RowBinary, RowBinaryWithNames, RowBinaryWithNamesAndTypes:
		return nil
	}
	return errorInvalidOptionValue(optionName, optionValue)
}

func errorInvalidOptionValue(optionName string, optionValue interface{}) error {
	return fmt.Errorf("invalid option value: %s: %v", optionName, optionValue)
}

func errorInvalidConfiguration(reasons ...error) error {
	var err *invalidConfiguration

	for _, reason := range reasons {
		if reason != nil {
			if err == nil {
				err = new(invalidConfiguration)
			}
			err.reasons = append(err.reasons, reason)
		}
	}

	if err != nil {
		return err
	}

	return nil
}

type invalidConfiguration struct {
	reasons []error
}

func (err *invalidConfiguration) Error() string {
	errorMessage := new(strings.Builder)
	for _, reason := range err.reasons {
		errorMessage.WriteString(reason.Error())
		errorMessage.WriteString("\n")
	}
	errorString := errorMessage.String()
	if errorString != "" {
		errorString = errorString[:len(errorString)-1]
	}
	return errorString
}
