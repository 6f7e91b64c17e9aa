package partition

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-sif/sift"
	"github.com/go-sif/sift/errors"
)

// rowImpl is a view of a single row of a Partition,
// along with a reference to the Schema for that row.
// Values are stored in Schema order, in their canonical
// Go representation, with nil marking a missing value.
type rowImpl struct {
	partID string
	values []interface{}
	schema sift.Schema
}

// CreateRow builds a standalone Row from values in Schema order, converting each to its column's representation
func CreateRow(schema sift.Schema, values []interface{}) (sift.Row, error) {
	part := createPartitionImpl(1, schema)
	if err := part.AppendRowValues(values); err != nil {
		return nil, err
	}
	return part.GetRow(0), nil
}

// withColumn attaches a column name to a type error which lacks one
func withColumn(err error, colName string) error {
	if ite, ok := err.(errors.IncompatibleTypeError); ok && len(ite.Column) == 0 {
		ite.Column = colName
		return ite
	}
	return err
}

// Schema returns the schema for a row
func (r *rowImpl) Schema() sift.Schema {
	return r.schema
}

// ToString returns a string representation of this row
func (r *rowImpl) ToString() string {
	var res strings.Builder
	fmt.Fprint(&res, "{")
	r.schema.ForEachColumn(func(name string, col sift.Column) error {
		if col.Index() > 0 {
			fmt.Fprint(&res, ", ")
		}
		fmt.Fprintf(&res, "%q: %s", name, sift.PreviewValue(col.Type(), r.values[col.Index()]))
		return nil
	})
	fmt.Fprint(&res, "}")
	return res.String()
}

// IsNil returns true iff the given column value is nil in this row. If an error occurs, this function will return false.
func (r *rowImpl) IsNil(colName string) bool {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return false
	}
	return r.values[offset.Index()] == nil
}

// SetNil sets the given column value to nil within this row
func (r *rowImpl) SetNil(colName string) error {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return err
	}
	r.values[offset.Index()] = nil
	return nil
}

// getValue fetches a non-nil value
func (r *rowImpl) getValue(colName string) (interface{}, error) {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return nil, err
	}
	v := r.values[offset.Index()]
	if v == nil {
		return nil, errors.NilValueError{Name: colName}
	}
	return v, nil
}

func incompatible(colName string, expected string, v interface{}) error {
	return errors.IncompatibleTypeError{Column: colName, Expected: expected, Actual: fmt.Sprintf("%T", v)}
}

// Get returns the value of any column as an interface{}, if it exists. nil values are returned as nil.
func (r *rowImpl) Get(colName string) (col interface{}, err error) {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return nil, err
	}
	return r.values[offset.Index()], nil
}

// Set stores any value in a column, converting it to the column's representation. A nil value sets the column to nil.
func (r *rowImpl) Set(colName string, value interface{}) (err error) {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return err
	}
	coerced, err := sift.CoerceValue(offset.Type(), value)
	if err != nil {
		return withColumn(err, colName)
	}
	r.values[offset.Index()] = coerced
	return nil
}

// setTyped stores a value after confirming the column has the expected type
func (r *rowImpl) setTyped(colName string, value interface{}, matches func(sift.ColumnType) bool) error {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return err
	}
	if !matches(offset.Type()) {
		return errors.IncompatibleTypeError{Column: colName, Expected: offset.Type().Name(), Actual: fmt.Sprintf("%T", value)}
	}
	r.values[offset.Index()] = value
	return nil
}

// GetBool retrieves a single bool from the column with the given name.
func (r *rowImpl) GetBool(colName string) (col bool, err error) {
	v, err := r.getValue(colName)
	if err != nil {
		return
	}
	col, ok := v.(bool)
	if !ok {
		err = incompatible(colName, "bool", v)
	}
	return
}

// GetInt32 retrieves a single int32 from the column with the given name
func (r *rowImpl) GetInt32(colName string) (col int32, err error) {
	v, err := r.getValue(colName)
	if err != nil {
		return
	}
	col, ok := v.(int32)
	if !ok {
		err = incompatible(colName, "int32", v)
	}
	return
}

// GetInt64 retrieves a single int64 from the column with the given name
func (r *rowImpl) GetInt64(colName string) (col int64, err error) {
	v, err := r.getValue(colName)
	if err != nil {
		return
	}
	col, ok := v.(int64)
	if !ok {
		err = incompatible(colName, "int64", v)
	}
	return
}

// GetFloat64 retrieves a single float64 from the column with the given name
func (r *rowImpl) GetFloat64(colName string) (col float64, err error) {
	v, err := r.getValue(colName)
	if err != nil {
		return
	}
	col, ok := v.(float64)
	if !ok {
		err = incompatible(colName, "float64", v)
	}
	return
}

// GetTime retrieves a single Time from the column with the given name
func (r *rowImpl) GetTime(colName string) (col time.Time, err error) {
	v, err := r.getValue(colName)
	if err != nil {
		return
	}
	col, ok := v.(time.Time)
	if !ok {
		err = incompatible(colName, "time", v)
	}
	return
}

// GetVarString retrieves a single string from the column with the given name
func (r *rowImpl) GetVarString(colName string) (col string, err error) {
	v, err := r.getValue(colName)
	if err != nil {
		return
	}
	col, ok := v.(string)
	if !ok {
		err = incompatible(colName, "string", v)
	}
	return
}

// GetVarBytes retrieves a variable-length byte array from the column with the given name
func (r *rowImpl) GetVarBytes(colName string) (col []byte, err error) {
	v, err := r.getValue(colName)
	if err != nil {
		return
	}
	col, ok := v.([]byte)
	if !ok {
		err = incompatible(colName, "bytes", v)
	}
	return
}

// SetBool modifies a single bool from the column with the given name.
func (r *rowImpl) SetBool(colName string, value bool) (err error) {
	return r.setTyped(colName, value, func(t sift.ColumnType) bool {
		_, ok := t.(*sift.BoolColumnType)
		return ok
	})
}

// SetInt32 modifies a single int32 from the column with the given name.
func (r *rowImpl) SetInt32(colName string, value int32) (err error) {
	return r.setTyped(colName, value, func(t sift.ColumnType) bool {
		_, ok := t.(*sift.Int32ColumnType)
		return ok
	})
}

// SetInt64 modifies a single int64 from the column with the given name.
func (r *rowImpl) SetInt64(colName string, value int64) (err error) {
	return r.setTyped(colName, value, func(t sift.ColumnType) bool {
		_, ok := t.(*sift.Int64ColumnType)
		return ok
	})
}

// SetFloat64 modifies a single float64 from the column with the given name.
func (r *rowImpl) SetFloat64(colName string, value float64) (err error) {
	return r.setTyped(colName, value, func(t sift.ColumnType) bool {
		_, ok := t.(*sift.Float64ColumnType)
		return ok
	})
}

// SetTime modifies a single Time from the column with the given name.
func (r *rowImpl) SetTime(colName string, value time.Time) (err error) {
	return r.setTyped(colName, value, func(t sift.ColumnType) bool {
		_, ok := t.(*sift.TimeColumnType)
		return ok
	})
}

// SetVarString modifies a single string from the column with the given name.
func (r *rowImpl) SetVarString(colName string, value string) (err error) {
	return r.setTyped(colName, value, func(t sift.ColumnType) bool {
		_, ok := t.(*sift.VarStringColumnType)
		return ok
	})
}

// SetVarBytes modifies a single variable-length byte array from the column with the given name.
func (r *rowImpl) SetVarBytes(colName string, value []byte) (err error) {
	cp := make([]byte, len(value))
	copy(cp, value)
	return r.setTyped(colName, cp, func(t sift.ColumnType) bool {
		_, ok := t.(*sift.VarBytesColumnType)
		return ok
	})
}
