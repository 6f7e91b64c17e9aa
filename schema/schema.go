package schema

import (
	"fmt"
	"reflect"

	"github.com/go-sif/sift"
	"github.com/go-sif/sift/errors"
)

// Column describes the position and
// type of a field in a Row.
type column struct {
	idx     int
	colType sift.ColumnType
}

// Clone returns a copy of this Column
func (c *column) Clone() sift.Column {
	return &column{c.idx, c.colType} // column types are stateless descriptors, and safe to share
}

// Index returns the index of this Column within a Schema
func (c *column) Index() int {
	return c.idx
}

// Type returns the ColumnType of this Column
func (c *column) Type() sift.ColumnType {
	return c.colType
}

// Schema is an ordered mapping from column names to
// Columns. Every modification produces a new Schema,
// so that DataFrames sharing a Schema never observe
// each other's changes.
type schema struct {
	schema map[string]*column
	names  []string
	size   int
}

// CreateSchema is a factory for Schemas
func CreateSchema() sift.Schema {
	return &schema{
		schema: make(map[string]*column),
		names:  []string{},
		size:   0,
	}
}

// Equals returns nil iff this and another Schema are equivalent, and a descriptive error otherwise
func (s *schema) Equals(otherSchema sift.Schema) error {
	if s.NumColumns() != otherSchema.NumColumns() {
		return fmt.Errorf("Schemas have unequal numbers of columns")
	}
	if s.NumFixedLengthColumns() != otherSchema.NumFixedLengthColumns() {
		return fmt.Errorf("Schemas have unequal numbers of fixed-length columns")
	}
	if s.NumVariableLengthColumns() != otherSchema.NumVariableLengthColumns() {
		return fmt.Errorf("Schemas have unequal numbers of variable-length columns")
	}
	return s.ForEachColumn(func(name string, offset sift.Column) error {
		otherOffset, err := otherSchema.GetOffset(name)
		if err != nil {
			return err
		}
		if offset.Index() != otherOffset.Index() {
			return fmt.Errorf("Column %s indices do not match", name)
		}
		if reflect.TypeOf(offset.Type()) != reflect.TypeOf(otherOffset.Type()) {
			return fmt.Errorf("Column %s types do not match", name)
		}
		if !reflect.DeepEqual(offset.Type(), otherOffset.Type()) {
			return fmt.Errorf("Column %s type fields do not match", name)
		}
		return nil
	})
}

// Clone returns a copy of this Schema
func (s *schema) Clone() sift.Schema {
	newSchema := make(map[string]*column, len(s.schema))
	for k, v := range s.schema {
		newSchema[k] = &column{v.idx, v.colType}
	}
	newNames := make([]string, len(s.names))
	copy(newNames, s.names)
	return &schema{schema: newSchema, names: newNames, size: s.size}
}

// RowWidth returns the byte size of the fixed-length data within a Row respecting this Schema
func (s *schema) RowWidth() int {
	return s.size
}

// NumColumns returns the number of columns (fixed-length and variable-length) in this Schema
func (s *schema) NumColumns() int {
	return len(s.names)
}

// NumFixedLengthColumns returns the number of fixed-length columns in this Schema
func (s *schema) NumFixedLengthColumns() int {
	i := 0
	for _, col := range s.schema {
		if !sift.IsVariableLength(col.Type()) {
			i++
		}
	}
	return i
}

// NumVariableLengthColumns returns the number of variable-length columns in this Schema
func (s *schema) NumVariableLengthColumns() int {
	return s.NumColumns() - s.NumFixedLengthColumns()
}

// GetOffset returns the Column with the given name
func (s *schema) GetOffset(colName string) (offset sift.Column, err error) {
	col, ok := s.schema[colName]
	if !ok {
		return nil, errors.SchemaError{Column: colName}
	}
	return col, nil
}

// HasColumn returns true iff this schema contains a column with the given name
func (s *schema) HasColumn(colName string) bool {
	_, ok := s.schema[colName]
	return ok
}

// CreateColumn returns a new Schema with an additional column, appended after existing columns
func (s *schema) CreateColumn(colName string, columnType sift.ColumnType) (sift.Schema, error) {
	if len(colName) == 0 {
		return nil, errors.SchemaError{Column: colName, Reason: "column names cannot be empty"}
	}
	if columnType == nil {
		return nil, errors.SchemaError{Column: colName, Reason: "column type cannot be nil"}
	}
	if s.HasColumn(colName) {
		return nil, errors.DuplicateColumnError{Column: colName}
	}
	newSchema := s.Clone().(*schema)
	newSchema.schema[colName] = &column{len(newSchema.names), columnType}
	newSchema.names = append(newSchema.names, colName)
	newSchema.size += columnType.Size()
	return newSchema, nil
}

// RenameColumn returns a new Schema in which a column has been renamed, retaining its position
func (s *schema) RenameColumn(oldName string, newName string) (sift.Schema, error) {
	col, ok := s.schema[oldName]
	if !ok {
		return nil, errors.SchemaError{Column: oldName}
	}
	if oldName == newName {
		return s.Clone(), nil
	}
	if s.HasColumn(newName) {
		return nil, errors.DuplicateColumnError{Column: newName}
	}
	newSchema := s.Clone().(*schema)
	delete(newSchema.schema, oldName)
	newSchema.schema[newName] = &column{col.idx, col.colType}
	newSchema.names[col.idx] = newName
	return newSchema, nil
}

// RemoveColumn returns a new Schema without the given column. Subsequent columns shift down one position.
func (s *schema) RemoveColumn(colName string) (sift.Schema, error) {
	if !s.HasColumn(colName) {
		return nil, errors.SchemaError{Column: colName}
	}
	remaining := make([]string, 0, len(s.names)-1)
	for _, name := range s.names {
		if name != colName {
			remaining = append(remaining, name)
		}
	}
	return s.Project(remaining...)
}

// Project returns a new Schema containing exactly the given columns, in the given order
func (s *schema) Project(colNames ...string) (sift.Schema, error) {
	var newSchema sift.Schema = CreateSchema()
	for _, name := range colNames {
		col, ok := s.schema[name]
		if !ok {
			return nil, errors.SchemaError{Column: name}
		}
		var err error
		newSchema, err = newSchema.CreateColumn(name, col.colType)
		if err != nil {
			return nil, err
		}
	}
	return newSchema, nil
}

// ColumnNames returns the names in the schema, in index order
func (s *schema) ColumnNames() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// ColumnTypes returns the types in the schema, in index order
func (s *schema) ColumnTypes() []sift.ColumnType {
	types := make([]sift.ColumnType, len(s.names))
	for i, name := range s.names {
		types[i] = s.schema[name].colType
	}
	return types
}

// ForEachColumn iterates over the columns in this Schema, in index order
func (s *schema) ForEachColumn(fn func(name string, col sift.Column) error) error {
	for _, name := range s.names {
		err := fn(name, s.schema[name])
		if err != nil {
			return err
		}
	}
	return nil
}
