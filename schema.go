package sift

// Schema is an ordered mapping from column names to
// Columns. It allows one to obtain a column's position
// and type by name. Schemas are never modified in place:
// every method which alters columns returns a new Schema.
type Schema interface {
	Equals(otherSchema Schema) error
	Clone() Schema
	RowWidth() int // the size in bytes of the fixed-length data within a row
	NumColumns() int
	NumFixedLengthColumns() int
	NumVariableLengthColumns() int
	GetOffset(colName string) (offset Column, err error)
	HasColumn(colName string) bool
	CreateColumn(colName string, columnType ColumnType) (newSchema Schema, err error)
	RenameColumn(oldName string, newName string) (newSchema Schema, err error)
	RemoveColumn(colName string) (newSchema Schema, err error)
	Project(colNames ...string) (newSchema Schema, err error)
	ColumnNames() []string
	ColumnTypes() []ColumnType
	ForEachColumn(fn func(name string, col Column) error) error
}
