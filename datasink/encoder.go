package datasink

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/go-sif/sift"
	"github.com/parquet-go/parquet-go"
)

// encoder serializes Rows to a Writer
type encoder interface {
	Write(row sift.Row) error
	Close() error // Close flushes any buffered data, without closing the underlying Writer
}

func createEncoder(w io.Writer, schema sift.Schema, opts *ExportOptions, header bool) (encoder, error) {
	switch opts.Format {
	case FormatDSV:
		return createDSVEncoder(w, schema, opts, header)
	case FormatJSONL:
		return &jsonlEncoder{w: w, names: schema.ColumnNames()}, nil
	case FormatParquet:
		return createParquetEncoder(w, schema, opts.Compression)
	default:
		return nil, fmt.Errorf("unknown format %s", opts.Format)
	}
}

type dsvEncoder struct {
	w        *csv.Writer
	names    []string
	types    []sift.ColumnType
	nilValue string
	record   []string
}

func createDSVEncoder(w io.Writer, schema sift.Schema, opts *ExportOptions, header bool) (*dsvEncoder, error) {
	cw := csv.NewWriter(w)
	cw.Comma = opts.Delimiter
	enc := &dsvEncoder{
		w:        cw,
		names:    schema.ColumnNames(),
		types:    schema.ColumnTypes(),
		nilValue: opts.NilValue,
		record:   make([]string, schema.NumColumns()),
	}
	if header && !opts.NoHeader {
		if err := cw.Write(enc.names); err != nil {
			return nil, err
		}
	}
	return enc, nil
}

func (e *dsvEncoder) Write(row sift.Row) error {
	for i, name := range e.names {
		v, err := row.Get(name)
		if err != nil {
			return err
		}
		if v == nil {
			e.record[i] = e.nilValue
		} else {
			e.record[i] = e.types[i].ToString(v)
		}
	}
	return e.w.Write(e.record)
}

func (e *dsvEncoder) Close() error {
	e.w.Flush()
	return e.w.Error()
}

// jsonlEncoder writes one object per line, with keys in Schema order
type jsonlEncoder struct {
	w     io.Writer
	names []string
	line  []byte
}

func (e *jsonlEncoder) Write(row sift.Row) error {
	e.line = append(e.line[:0], '{')
	for i, name := range e.names {
		if i > 0 {
			e.line = append(e.line, ',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return err
		}
		v, err := row.Get(name)
		if err != nil {
			return err
		}
		if t, ok := v.(time.Time); ok {
			col, err := row.Schema().GetOffset(name)
			if err != nil {
				return err
			}
			v = col.Type().ToString(t)
		}
		// JSON has no representation for NaN or infinities
		if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			v = nil
		}
		val, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("Column %s: %w", name, err)
		}
		e.line = append(e.line, key...)
		e.line = append(e.line, ':')
		e.line = append(e.line, val...)
	}
	e.line = append(e.line, '}', '\n')
	_, err := e.w.Write(e.line)
	return err
}

func (e *jsonlEncoder) Close() error {
	return nil
}

// parquetEncoder buffers Rows into row groups of a single Parquet file
type parquetEncoder struct {
	w     *parquet.GenericWriter[map[string]interface{}]
	names []string
	batch []map[string]interface{}
}

const parquetBatchSize = 1024

func parquetNode(colType sift.ColumnType) (parquet.Node, error) {
	switch colType.(type) {
	case *sift.BoolColumnType:
		return parquet.Leaf(parquet.BooleanType), nil
	case *sift.Int32ColumnType:
		return parquet.Leaf(parquet.Int32Type), nil
	case *sift.Int64ColumnType:
		return parquet.Leaf(parquet.Int64Type), nil
	case *sift.Float64ColumnType:
		return parquet.Leaf(parquet.DoubleType), nil
	case *sift.TimeColumnType:
		return parquet.Timestamp(parquet.Nanosecond), nil
	case *sift.VarStringColumnType:
		return parquet.String(), nil
	case *sift.VarBytesColumnType:
		return parquet.Leaf(parquet.ByteArrayType), nil
	default:
		return nil, fmt.Errorf("Parquet export does not support column type %T", colType)
	}
}

func parquetCodec(codec Compression) parquet.WriterOption {
	switch codec {
	case CompressionLZ4:
		return parquet.Compression(&parquet.Lz4Raw)
	case CompressionSnappy:
		return parquet.Compression(&parquet.Snappy)
	case CompressionZstd:
		return parquet.Compression(&parquet.Zstd)
	default:
		return parquet.Compression(&parquet.Uncompressed)
	}
}

func createParquetEncoder(w io.Writer, schema sift.Schema, codec Compression) (*parquetEncoder, error) {
	group := make(parquet.Group)
	err := schema.ForEachColumn(func(name string, col sift.Column) error {
		node, err := parquetNode(col.Type())
		if err != nil {
			return err
		}
		group[name] = parquet.Optional(node)
		return nil
	})
	if err != nil {
		return nil, err
	}
	pschema := parquet.NewSchema("sift", group)
	return &parquetEncoder{
		w:     parquet.NewGenericWriter[map[string]interface{}](w, pschema, parquetCodec(codec)),
		names: schema.ColumnNames(),
		batch: make([]map[string]interface{}, 0, parquetBatchSize),
	}, nil
}

func (e *parquetEncoder) Write(row sift.Row) error {
	record := make(map[string]interface{}, len(e.names))
	for _, name := range e.names {
		v, err := row.Get(name)
		if err != nil {
			return err
		}
		if t, ok := v.(time.Time); ok {
			v = t.UnixNano()
		}
		record[name] = v
	}
	e.batch = append(e.batch, record)
	if len(e.batch) == parquetBatchSize {
		return e.flush()
	}
	return nil
}

func (e *parquetEncoder) flush() error {
	if len(e.batch) == 0 {
		return nil
	}
	if _, err := e.w.Write(e.batch); err != nil {
		return err
	}
	e.batch = e.batch[:0]
	return nil
}

func (e *parquetEncoder) Close() error {
	if err := e.flush(); err != nil {
		return err
	}
	return e.w.Close()
}
