package integration

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-sif/sift"
	"github.com/go-sif/sift/datasink"
	"github.com/go-sif/sift/datasource/file"
	"github.com/go-sif/sift/datasource/memorystream"
	"github.com/go-sif/sift/datasource/parser/dsv"
	"github.com/go-sif/sift/datasource/parser/jsonl"
	"github.com/go-sif/sift/errors"
	ops "github.com/go-sif/sift/operations/transform"
	"github.com/go-sif/sift/schema"
	"github.com/go-sif/sift/session"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func createPeopleSchema(t *testing.T) sift.Schema {
	s, err := schema.CreateSchema().CreateColumn("id", &sift.Int64ColumnType{})
	require.Nil(t, err)
	s, err = s.CreateColumn("name", &sift.VarStringColumnType{})
	require.Nil(t, err)
	s, err = s.CreateColumn("age", &sift.Int32ColumnType{})
	require.Nil(t, err)
	return s
}

// writePeople writes numFiles csv files of people into dir, returning the expected rows in order
func writePeople(t *testing.T, dir string, numFiles int, rowsPerFile int) [][]interface{} {
	expected := [][]interface{}{}
	for f := 0; f < numFiles; f++ {
		var sb strings.Builder
		sb.WriteString("id,name,age\n")
		for r := 0; r < rowsPerFile; r++ {
			id := int64(f*rowsPerFile + r + 1)
			age := int32((id * 13) % 97)
			fmt.Fprintf(&sb, "%d,person %d,%d\n", id, id, age)
			expected = append(expected, []interface{}{id, fmt.Sprintf("person %d", id), age})
		}
		path := filepath.Join(dir, fmt.Sprintf("people-%02d.csv", f))
		require.Nil(t, os.WriteFile(path, []byte(sb.String()), 0644))
	}
	return expected
}

func createPeopleFrame(t *testing.T, dir string) sift.DataFrame {
	parser := dsv.CreateParser(&dsv.ParserConf{PartitionSize: 7, HeaderLines: 1})
	return file.CreateDataFrame(filepath.Join(dir, "people-*.csv"), parser, createPeopleSchema(t))
}

func createSession(t *testing.T, opts *session.Options) *session.Session {
	if opts == nil {
		opts = &session.Options{}
	}
	opts.Logger = log.New(io.Discard, "", 0)
	s, err := session.CreateSession(opts)
	require.Nil(t, err)
	t.Cleanup(func() {
		require.Nil(t, s.Stop())
	})
	return s
}

func tableRows(t *testing.T, table sift.LocalTable) [][]interface{} {
	rows := make([][]interface{}, 0, table.NumRows())
	require.Nil(t, table.ForEachRow(func(row sift.Row) error {
		values := make([]interface{}, 0, table.NumColumns())
		for _, name := range table.ColumnNames() {
			v, err := row.Get(name)
			if err != nil {
				return err
			}
			values = append(values, v)
		}
		rows = append(rows, values)
		return nil
	}))
	return rows
}

func TestFilterThenSelect(t *testing.T) {
	dir := t.TempDir()
	people := writePeople(t, dir, 3, 20)
	s := createSession(t, &session.Options{NumWorkers: 4})
	df, err := createPeopleFrame(t, dir).To(
		ops.Where("age > 60"),
		ops.SelectColumns("id"),
	)
	require.Nil(t, err)
	table, err := s.Collect(context.Background(), df)
	require.Nil(t, err)

	expected := [][]interface{}{}
	for _, p := range people {
		if p[2].(int32) > 60 {
			expected = append(expected, []interface{}{p[0]})
		}
	}
	require.NotEmpty(t, expected)
	if diff := cmp.Diff(expected, tableRows(t, table)); diff != "" {
		t.Errorf("collected rows mismatch (-want +got):\n%s", diff)
	}

	count, err := s.Count(context.Background(), df)
	require.Nil(t, err)
	require.EqualValues(t, len(expected), count)
}

func TestExportTwiceWithErrorIfExists(t *testing.T) {
	dir := t.TempDir()
	people := writePeople(t, dir, 2, 15)
	s := createSession(t, nil)
	df := createPeopleFrame(t, dir)
	out := filepath.Join(t.TempDir(), "export.csv")
	opts := &datasink.ExportOptions{Mode: datasink.ModeErrorIfExists}

	res, err := s.Export(context.Background(), df, out, opts)
	require.Nil(t, err)
	require.EqualValues(t, len(people), res.RowsWritten)
	before, err := os.ReadFile(out)
	require.Nil(t, err)

	_, err = s.Export(context.Background(), df, out, opts)
	var conflict errors.DestinationConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, out, conflict.Path)
	after, err := os.ReadFile(out)
	require.Nil(t, err)
	require.Equal(t, before, after)

	// the export reads back as the original data, in order
	parser := dsv.CreateParser(&dsv.ParserConf{HeaderLines: 1})
	table, err := s.Collect(context.Background(), file.CreateDataFrame(out, parser, createPeopleSchema(t)))
	require.Nil(t, err)
	if diff := cmp.Diff(people, tableRows(t, table)); diff != "" {
		t.Errorf("exported rows mismatch (-want +got):\n%s", diff)
	}
}

func TestExportJSONLines(t *testing.T) {
	dir := t.TempDir()
	people := writePeople(t, dir, 2, 10)
	s := createSession(t, nil)
	df, err := createPeopleFrame(t, dir).To(ops.Where("age < 50 OR name = 'person 3'"))
	require.Nil(t, err)
	expected, err := s.Collect(context.Background(), df)
	require.Nil(t, err)

	out := filepath.Join(t.TempDir(), "export.jsonl")
	res, err := s.Export(context.Background(), df, out, &datasink.ExportOptions{Mode: datasink.ModeOverwrite, Format: datasink.FormatJSONL})
	require.Nil(t, err)
	require.EqualValues(t, expected.NumRows(), res.RowsWritten)
	require.LessOrEqual(t, expected.NumRows(), len(people))

	parser := jsonl.CreateParser(&jsonl.ParserConf{})
	table, err := s.Collect(context.Background(), file.CreateDataFrame(out, parser, createPeopleSchema(t)))
	require.Nil(t, err)
	if diff := cmp.Diff(tableRows(t, expected), tableRows(t, table)); diff != "" {
		t.Errorf("exported rows mismatch (-want +got):\n%s", diff)
	}
}

func TestSampling(t *testing.T) {
	dir := t.TempDir()
	writePeople(t, dir, 4, 50)
	seeded := sift.SampleSpec{Fraction: 0.4, Seed: sift.Seed(2024)}

	run := func(spec sift.SampleSpec, numWorkers int) [][]interface{} {
		s := createSession(t, &session.Options{NumWorkers: numWorkers})
		df, err := createPeopleFrame(t, dir).To(ops.Sample(spec), ops.SelectColumns("id"))
		require.Nil(t, err)
		table, err := s.Collect(context.Background(), df)
		require.Nil(t, err)
		return tableRows(t, table)
	}
	first := run(seeded, 1)
	if diff := cmp.Diff(first, run(seeded, 8)); diff != "" {
		t.Errorf("seeded samples differ (-first +second):\n%s", diff)
	}
	require.Greater(t, len(first), 0)
	require.Less(t, len(first), 200)

	unseeded := sift.SampleSpec{Fraction: 0.5}
	require.False(t, cmp.Equal(run(unseeded, 4), run(unseeded, 4)))
}

func TestCollectCapacityExceeded(t *testing.T) {
	dir := t.TempDir()
	writePeople(t, dir, 2, 100)
	s := createSession(t, &session.Options{MaxCollectBytes: 256})
	table, err := s.Collect(context.Background(), createPeopleFrame(t, dir))
	require.Nil(t, table)
	require.ErrorAs(t, err, &errors.CapacityExceededError{})

	// smaller results still fit
	df, err := createPeopleFrame(t, dir).To(ops.Where("id <= 2"), ops.SelectColumns("id"))
	require.Nil(t, err)
	table, err = s.Collect(context.Background(), df)
	require.Nil(t, err)
	require.Equal(t, 2, table.NumRows())
}

func TestExportStream(t *testing.T) {
	s := createSession(t, nil)
	sch, err := schema.CreateSchema().CreateColumn("value", &sift.Int64ColumnType{})
	require.Nil(t, err)
	next := int64(0)
	gen := func() []byte {
		next++
		return []byte(fmt.Sprintf("{\"value\": %d}\n", next))
	}
	df := memorystream.CreateDataFrame([]func() []byte{gen}, 10, jsonl.CreateParser(&jsonl.ParserConf{PartitionSize: 3}), sch)
	_, err = s.Collect(context.Background(), df)
	require.NotNil(t, err)

	out := filepath.Join(t.TempDir(), "stream.csv")
	opts := &datasink.ExportOptions{Mode: datasink.ModeAppend, NoHeader: true}
	for i := 0; i < 2; i++ {
		res, err := s.Export(context.Background(), df, out, opts)
		require.Nil(t, err)
		require.EqualValues(t, 10, res.RowsWritten)
	}
	data, err := os.ReadFile(out)
	require.Nil(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 20)
	require.Equal(t, "1", lines[0])
	require.Equal(t, "20", lines[19])
}
