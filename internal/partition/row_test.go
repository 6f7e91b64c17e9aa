package partition

import (
	"testing"
	"time"

	"github.com/go-sif/sift"
	"github.com/go-sif/sift/errors"
	"github.com/go-sif/sift/schema"
	"github.com/stretchr/testify/require"
)

func createRowTestSchema(t *testing.T) sift.Schema {
	schema := schema.CreateSchema()
	var err error
	for _, col := range []struct {
		name    string
		colType sift.ColumnType
	}{
		{"b", &sift.BoolColumnType{}},
		{"i32", &sift.Int32ColumnType{}},
		{"i64", &sift.Int64ColumnType{}},
		{"f64", &sift.Float64ColumnType{}},
		{"t", &sift.TimeColumnType{}},
		{"s", &sift.VarStringColumnType{}},
		{"raw", &sift.VarBytesColumnType{}},
	} {
		schema, err = schema.CreateColumn(col.name, col.colType)
		require.Nil(t, err)
	}
	return schema
}

func TestGetSetTyped(t *testing.T) {
	now := time.Now()
	row, err := CreateRow(createRowTestSchema(t), []interface{}{true, 1, 2, 3.5, now, "str", []byte{1, 2}})
	require.Nil(t, err)
	b, err := row.GetBool("b")
	require.Nil(t, err)
	require.True(t, b)
	i32, err := row.GetInt32("i32")
	require.Nil(t, err)
	require.Equal(t, int32(1), i32)
	i64, err := row.GetInt64("i64")
	require.Nil(t, err)
	require.Equal(t, int64(2), i64)
	f64, err := row.GetFloat64("f64")
	require.Nil(t, err)
	require.Equal(t, 3.5, f64)
	tv, err := row.GetTime("t")
	require.Nil(t, err)
	require.True(t, now.Equal(tv))
	s, err := row.GetVarString("s")
	require.Nil(t, err)
	require.Equal(t, "str", s)
	raw, err := row.GetVarBytes("raw")
	require.Nil(t, err)
	require.Equal(t, []byte{1, 2}, raw)

	require.Nil(t, row.SetInt32("i32", 42))
	i32, err = row.GetInt32("i32")
	require.Nil(t, err)
	require.Equal(t, int32(42), i32)
	require.Nil(t, row.SetFloat64("f64", -1))
	require.Nil(t, row.SetBool("b", false))
	require.Nil(t, row.SetVarString("s", "other"))
	require.Nil(t, row.SetTime("t", now.Add(time.Hour)))
	require.Nil(t, row.SetVarBytes("raw", []byte("abc")))
	require.Nil(t, row.SetInt64("i64", 0))
}

func TestTypeMismatch(t *testing.T) {
	row, err := CreateRow(createRowTestSchema(t), []interface{}{true, 1, 2, 3.5, nil, nil, nil})
	require.Nil(t, err)
	_, err = row.GetInt64("b")
	require.ErrorAs(t, err, &errors.IncompatibleTypeError{})
	err = row.SetInt64("f64", 12)
	require.ErrorAs(t, err, &errors.IncompatibleTypeError{})
	err = row.Set("b", "yes")
	var ite errors.IncompatibleTypeError
	require.ErrorAs(t, err, &ite)
	require.Equal(t, "b", ite.Column)
	_, err = row.GetInt64("missing")
	require.ErrorAs(t, err, &errors.SchemaError{})
}

func TestNilValues(t *testing.T) {
	row, err := CreateRow(createRowTestSchema(t), []interface{}{nil, nil, 7, nil, nil, nil, nil})
	require.Nil(t, err)
	require.True(t, row.IsNil("b"))
	require.False(t, row.IsNil("i64"))
	require.False(t, row.IsNil("missing"))
	_, err = row.GetVarString("s")
	require.ErrorAs(t, err, &errors.NilValueError{})
	v, err := row.Get("s")
	require.Nil(t, err)
	require.Nil(t, v)
	require.Nil(t, row.SetNil("i64"))
	require.True(t, row.IsNil("i64"))
	require.Nil(t, row.Set("i64", int32(3)))
	i64, err := row.GetInt64("i64")
	require.Nil(t, err)
	require.Equal(t, int64(3), i64)
	require.Nil(t, row.Set("i64", nil))
	require.True(t, row.IsNil("i64"))
}

func TestRowToString(t *testing.T) {
	s, err := schema.CreateSchema().CreateColumn("id", &sift.Int64ColumnType{})
	require.Nil(t, err)
	s, err = s.CreateColumn("name", &sift.VarStringColumnType{})
	require.Nil(t, err)
	row, err := CreateRow(s, []interface{}{int64(4), nil})
	require.Nil(t, err)
	require.Equal(t, `{"id": 4, "name": nil}`, row.ToString())
}
