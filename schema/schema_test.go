package schema

import (
	"testing"

	"github.com/go-sif/sift"
	"github.com/go-sif/sift/errors"
	"github.com/stretchr/testify/require"
)

func createTestSchema(t *testing.T, names []string, types []sift.ColumnType) sift.Schema {
	schema := CreateSchema()
	for i, name := range names {
		var err error
		schema, err = schema.CreateColumn(name, types[i])
		require.Nil(t, err)
	}
	return schema
}

func TestSchemaEqualityBasic(t *testing.T) {
	schema1 := createTestSchema(t, []string{"col1", "col2", "col3"}, []sift.ColumnType{&sift.Int64ColumnType{}, &sift.VarStringColumnType{}, &sift.TimeColumnType{Format: "2006"}})
	schema2 := createTestSchema(t, []string{"col1", "col2", "col3"}, []sift.ColumnType{&sift.Int64ColumnType{}, &sift.VarStringColumnType{}, &sift.TimeColumnType{Format: "2006"}})
	require.Nil(t, schema1.Equals(schema2))
}

func TestSchemaEqualityDifferentTypeFields(t *testing.T) {
	schema1 := createTestSchema(t, []string{"col1", "col2"}, []sift.ColumnType{&sift.Int64ColumnType{}, &sift.TimeColumnType{Format: "2006"}})
	schema2 := createTestSchema(t, []string{"col1", "col2"}, []sift.ColumnType{&sift.Int64ColumnType{}, &sift.TimeColumnType{Format: "2006-01"}})
	require.NotNil(t, schema1.Equals(schema2))
}

func TestSchemaEqualityOrder(t *testing.T) {
	schema1 := createTestSchema(t, []string{"col1", "col2", "col3"}, []sift.ColumnType{&sift.Int64ColumnType{}, &sift.Int32ColumnType{}, &sift.VarStringColumnType{}})
	schema2 := createTestSchema(t, []string{"col1", "col3", "col2"}, []sift.ColumnType{&sift.Int64ColumnType{}, &sift.VarStringColumnType{}, &sift.Int32ColumnType{}})
	require.NotNil(t, schema1.Equals(schema2))
}

func TestCreateColumnDoesNotModifyReceiver(t *testing.T) {
	schema1 := createTestSchema(t, []string{"col1"}, []sift.ColumnType{&sift.Int64ColumnType{}})
	schema2, err := schema1.CreateColumn("col2", &sift.Float64ColumnType{})
	require.Nil(t, err)
	require.Equal(t, 1, schema1.NumColumns())
	require.Equal(t, 2, schema2.NumColumns())
	require.Equal(t, []string{"col1", "col2"}, schema2.ColumnNames())
	require.Equal(t, 16, schema2.RowWidth())
}

func TestCreateDuplicateColumn(t *testing.T) {
	schema := createTestSchema(t, []string{"col1"}, []sift.ColumnType{&sift.Int64ColumnType{}})
	_, err := schema.CreateColumn("col1", &sift.Int64ColumnType{})
	require.ErrorAs(t, err, &errors.DuplicateColumnError{})
}

func TestRenameColumn(t *testing.T) {
	schema := createTestSchema(t, []string{"col1", "col2"}, []sift.ColumnType{&sift.Int64ColumnType{}, &sift.BoolColumnType{}})
	renamed, err := schema.RenameColumn("col1", "id")
	require.Nil(t, err)
	require.Equal(t, []string{"id", "col2"}, renamed.ColumnNames())
	require.True(t, schema.HasColumn("col1"))
	_, err = schema.RenameColumn("missing", "other")
	require.ErrorAs(t, err, &errors.SchemaError{})
	_, err = schema.RenameColumn("col1", "col2")
	require.ErrorAs(t, err, &errors.DuplicateColumnError{})
}

func TestRemoveColumn(t *testing.T) {
	schema := createTestSchema(t, []string{"col1", "col2", "col3"}, []sift.ColumnType{&sift.Int64ColumnType{}, &sift.BoolColumnType{}, &sift.VarStringColumnType{}})
	removed, err := schema.RemoveColumn("col2")
	require.Nil(t, err)
	require.Equal(t, []string{"col1", "col3"}, removed.ColumnNames())
	col, err := removed.GetOffset("col3")
	require.Nil(t, err)
	require.Equal(t, 1, col.Index())
	require.Equal(t, 3, schema.NumColumns())
	_, err = schema.RemoveColumn("col4")
	require.ErrorAs(t, err, &errors.SchemaError{})
}

func TestProject(t *testing.T) {
	schema := createTestSchema(t, []string{"col1", "col2", "col3"}, []sift.ColumnType{&sift.Int64ColumnType{}, &sift.BoolColumnType{}, &sift.VarStringColumnType{}})
	projected, err := schema.Project("col3", "col1")
	require.Nil(t, err)
	require.Equal(t, []string{"col3", "col1"}, projected.ColumnNames())
	require.Equal(t, 1, projected.NumVariableLengthColumns())
	_, err = schema.Project("col1", "col1")
	require.ErrorAs(t, err, &errors.DuplicateColumnError{})
	_, err = schema.Project("nope")
	require.ErrorAs(t, err, &errors.SchemaError{})
}
