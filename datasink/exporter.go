package datasink

import (
	"context"
	"fmt"
	"io"

	"github.com/go-sif/sift"
	"github.com/go-sif/sift/errors"
)

// Exporter writes Partitions, in order, to the staging area of a Destination, and commits them
type Exporter struct {
	dest       Destination
	opts       *ExportOptions
	staging    Staging
	counter    *countingWriter
	compressor io.WriteCloser
	encoder    encoder
	rows       int64
	done       bool
}

// CreateExporter validates options against a Destination, and prepares a staging area. A destination
// which already exists fails immediately under ModeErrorIfExists, before any data is processed.
func CreateExporter(ctx context.Context, dest Destination, schema sift.Schema, opts *ExportOptions) (*Exporter, error) {
	opts = CloneOptions(opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	exists, size, err := dest.Stat(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to inspect export destination %s: %w", dest.Path(), err)
	}
	if exists && opts.Mode == ModeErrorIfExists {
		return nil, errors.DestinationConflictError{Path: dest.Path()}
	}
	staging, err := dest.Stage(ctx, opts.Mode == ModeAppend)
	if err != nil {
		return nil, err
	}
	e := &Exporter{dest: dest, opts: opts, staging: staging, counter: &countingWriter{w: staging}}
	codec := opts.Compression
	if opts.Format == FormatParquet {
		// parquet compresses column chunks internally
		codec = CompressionNone
	}
	// rows appended to plain text lacking a final newline would join its last line
	if tail := staging.Tail(); opts.Mode == ModeAppend && codec == CompressionNone && len(tail) > 0 && tail[0] != '\n' {
		if _, err := e.counter.Write([]byte{'\n'}); err != nil {
			staging.Abort()
			return nil, err
		}
	}
	if e.compressor, err = compress(e.counter, codec); err != nil {
		staging.Abort()
		return nil, err
	}
	// headers only begin new files
	header := !(exists && size > 0 && opts.Mode == ModeAppend)
	if e.encoder, err = createEncoder(e.compressor, schema, opts, header); err != nil {
		staging.Abort()
		return nil, err
	}
	return e, nil
}

// WritePartition encodes every Row of a Partition
func (e *Exporter) WritePartition(part sift.Partition) error {
	if e.done {
		return fmt.Errorf("export to %s has already completed", e.dest.Path())
	}
	for i := 0; i < part.GetNumRows(); i++ {
		if err := e.encoder.Write(part.GetRow(i)); err != nil {
			return err
		}
		e.rows++
	}
	return nil
}

// Commit flushes all encoded data and atomically publishes it to the Destination
func (e *Exporter) Commit(ctx context.Context) (*ExportResult, error) {
	if e.done {
		return nil, fmt.Errorf("export to %s has already completed", e.dest.Path())
	}
	e.done = true
	if err := e.encoder.Close(); err != nil {
		e.staging.Abort()
		return nil, err
	}
	if err := e.compressor.Close(); err != nil {
		e.staging.Abort()
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		e.staging.Abort()
		return nil, err
	}
	if err := e.staging.Commit(ctx, e.opts.Mode); err != nil {
		e.staging.Abort()
		return nil, err
	}
	return &ExportResult{
		Path:         e.dest.Path(),
		Format:       e.opts.Format,
		Mode:         e.opts.Mode,
		RowsWritten:  e.rows,
		BytesWritten: e.counter.count,
	}, nil
}

// Abort discards any staged data. It is safe to call Abort after Commit.
func (e *Exporter) Abort() error {
	if e.done {
		return nil
	}
	e.done = true
	return e.staging.Abort()
}
