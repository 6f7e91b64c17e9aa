package datasink_test

import (
	"bytes"
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-sif/sift"
	"github.com/go-sif/sift/datasink"
	"github.com/go-sif/sift/datasink/file"
	"github.com/go-sif/sift/datasource"
	"github.com/go-sif/sift/errors"
	"github.com/go-sif/sift/schema"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/parquet-go/parquet-go"
	"github.com/pierrec/lz4"
	"github.com/stretchr/testify/require"
)

func createTestPartition(t *testing.T) sift.Partition {
	s := schema.CreateSchema()
	var err error
	s, err = s.CreateColumn("id", &sift.Int32ColumnType{})
	require.Nil(t, err)
	s, err = s.CreateColumn("name", &sift.VarStringColumnType{})
	require.Nil(t, err)
	s, err = s.CreateColumn("score", &sift.Float64ColumnType{})
	require.Nil(t, err)
	s, err = s.CreateColumn("joined", &sift.TimeColumnType{Format: "2006-01-02"})
	require.Nil(t, err)
	part := datasource.CreateBuildablePartition(3, s)
	joined := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	require.Nil(t, part.AppendRowValues([]interface{}{1, "ann", 1.5, joined}))
	require.Nil(t, part.AppendRowValues([]interface{}{2, "bob, jr", nil, joined}))
	require.Nil(t, part.AppendRowValues([]interface{}{3, nil, 3.0, nil}))
	return part
}

func export(t *testing.T, path string, part sift.Partition, opts *datasink.ExportOptions) (*datasink.ExportResult, error) {
	ctx := context.Background()
	exporter, err := datasink.CreateExporter(ctx, file.CreateDestination(path), part.GetSchema(), opts)
	if err != nil {
		return nil, err
	}
	if err = exporter.WritePartition(part); err != nil {
		exporter.Abort()
		return nil, err
	}
	return exporter.Commit(ctx)
}

func readFile(t *testing.T, path string) string {
	data, err := os.ReadFile(path)
	require.Nil(t, err)
	return string(data)
}

func TestExportDSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	part := createTestPartition(t)
	res, err := export(t, path, part, nil)
	require.Nil(t, err)
	expected := "id,name,score,joined\n1,ann,1.5,2020-01-02\n2,\"bob, jr\",,2020-01-02\n3,,3,\n"
	require.Equal(t, expected, readFile(t, path))
	require.Equal(t, &datasink.ExportResult{
		Path:         path,
		Format:       datasink.FormatDSV,
		Mode:         datasink.ModeErrorIfExists,
		RowsWritten:  3,
		BytesWritten: int64(len(expected)),
	}, res)

	// the default mode refuses to replace the file
	_, err = export(t, path, part, nil)
	require.ErrorAs(t, err, &errors.DestinationConflictError{})
	require.Equal(t, expected, readFile(t, path))

	// appending omits the header
	res, err = export(t, path, part, &datasink.ExportOptions{Mode: datasink.ModeAppend, Delimiter: '|', NilValue: "null"})
	require.Nil(t, err)
	require.EqualValues(t, 3, res.RowsWritten)
	require.Equal(t, expected+"1|ann|1.5|2020-01-02\n2|bob, jr|null|2020-01-02\n3|null|3|null\n", readFile(t, path))

	// overwriting writes a header again
	_, err = export(t, path, part, &datasink.ExportOptions{Mode: datasink.ModeOverwrite})
	require.Nil(t, err)
	require.Equal(t, expected, readFile(t, path))
}

func TestExportAppendToEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.Nil(t, os.WriteFile(path, []byte{}, 0644))
	_, err := export(t, path, createTestPartition(t), &datasink.ExportOptions{Mode: datasink.ModeAppend})
	require.Nil(t, err)
	require.Contains(t, readFile(t, path), "id,name,score,joined\n")
}

func TestExportJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	_, err := export(t, path, createTestPartition(t), &datasink.ExportOptions{Format: datasink.FormatJSONL})
	require.Nil(t, err)
	require.Equal(t,
		"{\"id\":1,\"name\":\"ann\",\"score\":1.5,\"joined\":\"2020-01-02\"}\n"+
			"{\"id\":2,\"name\":\"bob, jr\",\"score\":null,\"joined\":\"2020-01-02\"}\n"+
			"{\"id\":3,\"name\":null,\"score\":3,\"joined\":null}\n",
		readFile(t, path))
}

func TestExportParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.parquet")
	res, err := export(t, path, createTestPartition(t), &datasink.ExportOptions{Format: datasink.FormatParquet, Compression: datasink.CompressionSnappy})
	require.Nil(t, err)
	require.EqualValues(t, 3, res.RowsWritten)
	data, err := os.ReadFile(path)
	require.Nil(t, err)
	f, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	require.Nil(t, err)
	require.EqualValues(t, 3, f.NumRows())

	_, err = export(t, path, createTestPartition(t), &datasink.ExportOptions{Format: datasink.FormatParquet, Mode: datasink.ModeAppend})
	require.ErrorAs(t, err, &errors.UnsupportedModeError{})
}

func TestExportOptionsValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out")
	_, err := export(t, path, createTestPartition(t), &datasink.ExportOptions{Format: "xlsx"})
	require.ErrorAs(t, err, &errors.UnsupportedFormatError{})
	_, err = export(t, path, createTestPartition(t), &datasink.ExportOptions{Compression: "brotli"})
	require.ErrorAs(t, err, &errors.UnsupportedFormatError{})
	_, err = export(t, path, createTestPartition(t), &datasink.ExportOptions{Mode: "upsert"})
	require.ErrorAs(t, err, &errors.UnsupportedModeError{})
	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
}

func TestExportCompression(t *testing.T) {
	expected := "id,name,score,joined\n1,ann,1.5,2020-01-02\n2,\"bob, jr\",,2020-01-02\n3,,3,\n"
	body := "1,ann,1.5,2020-01-02\n2,\"bob, jr\",,2020-01-02\n3,,3,\n"
	decoders := map[datasink.Compression]func(r io.Reader) io.Reader{
		datasink.CompressionLZ4: func(r io.Reader) io.Reader {
			return lz4.NewReader(r)
		},
		datasink.CompressionSnappy: func(r io.Reader) io.Reader {
			return snappy.NewReader(r)
		},
		datasink.CompressionZstd: func(r io.Reader) io.Reader {
			d, err := zstd.NewReader(r)
			require.Nil(t, err)
			return d
		},
	}
	for codec, decode := range decoders {
		path := filepath.Join(t.TempDir(), "out.csv."+string(codec))
		_, err := export(t, path, createTestPartition(t), &datasink.ExportOptions{Compression: codec})
		require.Nil(t, err)
		f, err := os.Open(path)
		require.Nil(t, err)
		data, err := io.ReadAll(decode(f))
		f.Close()
		require.Nil(t, err, codec)
		require.Equal(t, expected, string(data), codec)
	}
	// appended zstd and snappy streams decode as a single stream
	for _, codec := range []datasink.Compression{datasink.CompressionSnappy, datasink.CompressionZstd} {
		path := filepath.Join(t.TempDir(), "out.csv."+string(codec))
		for i := 0; i < 2; i++ {
			_, err := export(t, path, createTestPartition(t), &datasink.ExportOptions{Compression: codec, Mode: datasink.ModeAppend})
			require.Nil(t, err)
		}
		f, err := os.Open(path)
		require.Nil(t, err)
		data, err := io.ReadAll(decoders[codec](f))
		f.Close()
		require.Nil(t, err, codec)
		require.Equal(t, expected+body, string(data), codec)
	}
}

func TestExportAbort(t *testing.T) {
	dir := t.TempDir()
	part := createTestPartition(t)
	exporter, err := datasink.CreateExporter(context.Background(), file.CreateDestination(filepath.Join(dir, "out.csv")), part.GetSchema(), nil)
	require.Nil(t, err)
	require.Nil(t, exporter.WritePartition(part))
	require.Nil(t, exporter.Abort())
	entries, err := os.ReadDir(dir)
	require.Nil(t, err)
	require.Empty(t, entries)
	require.NotNil(t, exporter.WritePartition(part))
}

func TestExportAppendJSONLWithoutTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	require.Nil(t, os.WriteFile(path, []byte(`{"id":0}`), 0644))
	res, err := export(t, path, createTestPartition(t), &datasink.ExportOptions{Mode: datasink.ModeAppend, Format: datasink.FormatJSONL})
	require.Nil(t, err)
	lines := strings.Split(strings.TrimSuffix(readFile(t, path), "\n"), "\n")
	require.Len(t, lines, 1+int(res.RowsWritten))
	require.Equal(t, `{"id":0}`, lines[0])
	require.True(t, strings.HasPrefix(lines[1], "{"))
}

func TestExportJSONLNonFiniteFloats(t *testing.T) {
	s, err := schema.CreateSchema().CreateColumn("score", &sift.Float64ColumnType{})
	require.Nil(t, err)
	part := datasource.CreateBuildablePartition(4, s)
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 2.5} {
		require.Nil(t, part.AppendRowValues([]interface{}{f}))
	}
	path := filepath.Join(t.TempDir(), "out.jsonl")
	res, err := export(t, path, part, &datasink.ExportOptions{Format: datasink.FormatJSONL})
	require.Nil(t, err)
	require.EqualValues(t, 4, res.RowsWritten)
	require.Equal(t, "{\"score\":null}\n{\"score\":null}\n{\"score\":null}\n{\"score\":2.5}\n", readFile(t, path))
}
