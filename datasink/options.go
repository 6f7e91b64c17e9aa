package datasink

import (
	"fmt"

	"github.com/go-sif/sift/errors"
)

// ExportMode describes how an export treats an existing destination
type ExportMode string

const (
	// ModeOverwrite atomically replaces any existing destination
	ModeOverwrite ExportMode = "overwrite"
	// ModeErrorIfExists fails with a DestinationConflictError if the destination exists, leaving it untouched
	ModeErrorIfExists ExportMode = "error_if_exists"
	// ModeAppend atomically appends Rows to the existing content of the destination
	ModeAppend ExportMode = "append"
)

// Format is an output file format
type Format string

const (
	// FormatDSV produces delimiter-separated values (CSV by default)
	FormatDSV Format = "dsv"
	// FormatJSONL produces one JSON object per line
	FormatJSONL Format = "jsonl"
	// FormatParquet produces a Parquet file
	FormatParquet Format = "parquet"
)

// Compression is a codec applied to exported data
type Compression string

const (
	// CompressionNone leaves output uncompressed
	CompressionNone Compression = "none"
	// CompressionLZ4 compresses output with LZ4 frames
	CompressionLZ4 Compression = "lz4"
	// CompressionSnappy compresses output with the Snappy framing format
	CompressionSnappy Compression = "snappy"
	// CompressionZstd compresses output with Zstandard
	CompressionZstd Compression = "zstd"
)

// ExportOptions configures an export
type ExportOptions struct {
	Mode        ExportMode  // How to treat an existing destination. Defaults to ModeErrorIfExists.
	Format      Format      // The output format. Defaults to FormatDSV.
	Compression Compression // The compression codec. For Parquet, this is the column codec. Defaults to CompressionNone.
	Delimiter   rune        // The DSV delimiter. Defaults to ,
	NoHeader    bool        // If true, DSV output omits the header line. Otherwise a header is written whenever the destination is new or empty.
	NilValue    string      // The DSV representation of nil values. Defaults to "" (the empty string).
}

// CloneOptions copies ExportOptions, filling in default values. A nil input produces the defaults.
func CloneOptions(opts *ExportOptions) *ExportOptions {
	result := &ExportOptions{}
	if opts != nil {
		*result = *opts
	}
	if len(result.Mode) == 0 {
		result.Mode = ModeErrorIfExists
	}
	if len(result.Format) == 0 {
		result.Format = FormatDSV
	}
	if len(result.Compression) == 0 {
		result.Compression = CompressionNone
	}
	if result.Delimiter == 0 {
		result.Delimiter = ','
	}
	return result
}

// Validate confirms that a combination of ExportOptions is supported
func (opts *ExportOptions) Validate() error {
	switch opts.Mode {
	case ModeOverwrite, ModeErrorIfExists, ModeAppend:
	default:
		return errors.UnsupportedModeError{Mode: string(opts.Mode), Reason: "unknown export mode"}
	}
	switch opts.Format {
	case FormatDSV, FormatJSONL:
	case FormatParquet:
		if opts.Mode == ModeAppend {
			return errors.UnsupportedModeError{Mode: string(opts.Mode), Reason: "parquet files cannot be appended to"}
		}
	default:
		return errors.UnsupportedFormatError{Format: string(opts.Format)}
	}
	switch opts.Compression {
	case CompressionNone, CompressionLZ4, CompressionSnappy, CompressionZstd:
	default:
		return errors.UnsupportedFormatError{Format: fmt.Sprintf("compression %s", opts.Compression)}
	}
	return nil
}

// ExportResult describes a completed export
type ExportResult struct {
	Path         string     // The destination which was written
	Format       Format     // The format of the written data
	Mode         ExportMode // The mode of the export
	RowsWritten  int64      // The number of Rows written by this export
	BytesWritten int64      // The number of (possibly compressed) bytes written by this export, excluding any existing content
}
