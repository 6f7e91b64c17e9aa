package sift

// A LocalTable is a fully materialized, in-memory snapshot of a DataFrame,
// produced by collecting it. Later changes to the source data do not
// affect a LocalTable.
type LocalTable interface {
	Schema() Schema                                          // Schema returns the Schema of this LocalTable
	NumRows() int                                            // NumRows returns the number of Rows in this LocalTable
	NumColumns() int                                         // NumColumns returns the number of columns in this LocalTable
	ColumnNames() []string                                   // ColumnNames returns the names of the columns in this LocalTable, in order
	GetRow(rowNum int) Row                                   // GetRow retrieves a specific Row. Rows are read-only.
	ForEachRow(fn MapOperation) error                        // ForEachRow iterates over Rows in order, stopping at the first error
	Column(colName string) (values []interface{}, err error) // Column returns a copy of all values in a particular column
}
