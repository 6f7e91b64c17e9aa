package partition

import (
	"fmt"
	"math"
	"testing"

	"github.com/go-sif/sift"
	"github.com/go-sif/sift/errors"
	"github.com/go-sif/sift/schema"
	"github.com/stretchr/testify/require"
)

func createPartitionTestSchema(t *testing.T) sift.Schema {
	schema := schema.CreateSchema()
	schema, err := schema.CreateColumn("id", &sift.Int64ColumnType{})
	require.Nil(t, err)
	schema, err = schema.CreateColumn("name", &sift.VarStringColumnType{})
	require.Nil(t, err)
	return schema
}

func createTestPartition(t *testing.T, maxRows int, numRows int) *partitionImpl {
	part := createPartitionImpl(maxRows, createPartitionTestSchema(t))
	for i := 0; i < numRows; i++ {
		require.Nil(t, part.AppendRowValues([]interface{}{i, fmt.Sprintf("row%d", i)}))
	}
	return part
}

func TestCreatePartitionImpl(t *testing.T) {
	part := createPartitionImpl(4, createPartitionTestSchema(t))
	require.Equal(t, 4, part.GetMaxRows())
	require.Equal(t, 0, part.GetNumRows())
	require.NotEmpty(t, part.ID())
	require.Equal(t, 0, part.EstimateSize())
}

func TestAppendRowValues(t *testing.T) {
	part := createTestPartition(t, 4, 2)
	require.Equal(t, 2, part.GetNumRows())
	val, err := part.GetRow(1).GetInt64("id")
	require.Nil(t, err)
	require.Equal(t, int64(1), val)
	err = part.AppendRowValues([]interface{}{"oops", "row"})
	require.ErrorAs(t, err, &errors.IncompatibleTypeError{})
	require.Equal(t, 2, part.GetNumRows())
	require.NotNil(t, part.AppendRowValues([]interface{}{1}))
}

func TestPartitionFullError(t *testing.T) {
	part := createTestPartition(t, 1, 1)
	err := part.AppendRowValues([]interface{}{2, "two"})
	require.ErrorAs(t, err, &errors.PartitionFullError{})
	_, err = part.AppendEmptyRow()
	require.ErrorAs(t, err, &errors.PartitionFullError{})
}

func TestAppendEmptyRow(t *testing.T) {
	part := createTestPartition(t, 2, 0)
	row, err := part.AppendEmptyRow()
	require.Nil(t, err)
	require.True(t, row.IsNil("id"))
	require.Nil(t, row.SetInt64("id", 12))
	val, err := part.GetRow(0).GetInt64("id")
	require.Nil(t, err)
	require.Equal(t, int64(12), val)
}

func TestFilterRows(t *testing.T) {
	part := createTestPartition(t, 10, 10)
	part.SetOrdinal(7)
	result, err := part.FilterRows(func(row sift.Row) (bool, error) {
		id, err := row.GetInt64("id")
		return id%2 == 0, err
	})
	require.Nil(t, err)
	require.Equal(t, 5, result.GetNumRows())
	require.Equal(t, uint64(7), result.Ordinal())
	for i := 0; i < result.GetNumRows(); i++ {
		id, err := result.GetRow(i).GetInt64("id")
		require.Nil(t, err)
		require.Equal(t, int64(i*2), id)
	}
	// source partition is unchanged
	require.Equal(t, 10, part.GetNumRows())
}

func TestFilterRowsKeepAll(t *testing.T) {
	part := createTestPartition(t, 10, 10)
	result, err := part.FilterRows(func(row sift.Row) (bool, error) {
		return true, nil
	})
	require.Nil(t, err)
	require.Equal(t, 10, result.GetNumRows())
}

func TestFilterRowsErrors(t *testing.T) {
	part := createTestPartition(t, 10, 10)
	result, err := part.FilterRows(func(row sift.Row) (bool, error) {
		id, err := row.GetInt64("id")
		if id == 3 || id == 4 {
			return true, fmt.Errorf("bad row %d", id)
		}
		return true, err
	})
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "2 errors occurred")
	require.Equal(t, 8, result.GetNumRows())
}

func TestSampleRowsWithCopies(t *testing.T) {
	part := createTestPartition(t, 3, 3)
	result, err := part.SampleRows(func(row sift.Row) (int, error) {
		id, err := row.GetInt64("id")
		return int(id), err
	})
	require.Nil(t, err)
	// 0 copies of row 0, 1 of row 1, 2 of row 2
	require.Equal(t, 3, result.GetNumRows())
	require.GreaterOrEqual(t, result.GetMaxRows(), 3)
	ids := []int64{}
	result.(*partitionImpl).ForEachRow(func(row sift.Row) error {
		id, err := row.GetInt64("id")
		ids = append(ids, id)
		return err
	})
	require.Equal(t, []int64{1, 2, 2}, ids)
	// copies do not share storage
	require.Nil(t, result.GetRow(2).SetVarString("name", "changed"))
	name, err := result.GetRow(1).GetVarString("name")
	require.Nil(t, err)
	require.Equal(t, "row2", name)
}

func TestProjectRows(t *testing.T) {
	part := createTestPartition(t, 4, 4)
	newSchema, err := part.GetSchema().Project("name")
	require.Nil(t, err)
	newSchema, err = newSchema.CreateColumn("double", &sift.Int64ColumnType{})
	require.Nil(t, err)
	result, err := part.ProjectRows(newSchema, func(in sift.Row, out sift.Row) error {
		id, err := in.GetInt64("id")
		if err != nil {
			return err
		}
		if id == 1 {
			return fmt.Errorf("skip")
		}
		name, err := in.GetVarString("name")
		if err != nil {
			return err
		}
		if err = out.SetVarString("name", name); err != nil {
			return err
		}
		return out.SetInt64("double", id*2)
	})
	require.NotNil(t, err)
	require.Equal(t, 3, result.GetNumRows())
	require.Equal(t, []string{"name", "double"}, result.GetSchema().ColumnNames())
	double, err := result.GetRow(2).GetInt64("double")
	require.Nil(t, err)
	require.Equal(t, int64(6), double)
}

func TestEstimateSize(t *testing.T) {
	part := createTestPartition(t, 4, 1)
	// row overhead + 2 value headers + int64 + string header and bytes
	require.Equal(t, rowOverhead+2*valueOverhead+8+16+4, part.EstimateSize())
}

func TestCreateLocalTable(t *testing.T) {
	p1 := createTestPartition(t, 4, 2)
	p1.SetOrdinal(1)
	p2 := createTestPartition(t, 4, 1)
	p2.SetOrdinal(0)
	require.Nil(t, p2.GetRow(0).SetInt64("id", 100))
	table := CreateLocalTable(p1.GetSchema(), []sift.Partition{p1, p2})
	require.Equal(t, 3, table.NumRows())
	ids, err := table.Column("id")
	require.Nil(t, err)
	require.Equal(t, []interface{}{int64(100), int64(0), int64(1)}, ids)
	// the table is a snapshot
	require.Nil(t, p2.GetRow(0).SetInt64("id", 5))
	id, err := table.GetRow(0).GetInt64("id")
	require.Nil(t, err)
	require.Equal(t, int64(100), id)
	_, err = table.Column("missing")
	require.ErrorAs(t, err, &errors.SchemaError{})
}

func TestCreateRowRejectsOutOfRangeInts(t *testing.T) {
	s, err := schema.CreateSchema().CreateColumn("age", &sift.Int32ColumnType{})
	require.Nil(t, err)
	row, err := CreateRow(s, []interface{}{math.MaxInt32})
	require.Nil(t, err)
	age, err := row.GetInt32("age")
	require.Nil(t, err)
	require.EqualValues(t, math.MaxInt32, age)

	big := math.MaxInt32
	big++
	_, err = CreateRow(s, []interface{}{big})
	require.ErrorAs(t, err, &errors.IncompatibleTypeError{})
	small := math.MinInt32
	small--
	_, err = CreateRow(s, []interface{}{small})
	require.ErrorAs(t, err, &errors.IncompatibleTypeError{})
}
