package sift

// A DataFrame is a tool for constructing a chain of
// transformations applied to tabular data. DataFrames are
// immutable: To() always produces a new DataFrame, leaving
// the receiver untouched, and no data is read until a
// Session materializes the DataFrame.
type DataFrame interface {
	ID() string                                   // ID returns a unique identifier for this DataFrame
	GetSchema() Schema                            // GetSchema returns the Schema of a DataFrame
	GetDataSource() DataSource                    // GetDataSource returns the DataSource of a DataFrame
	GetParser() DataSourceParser                  // GetParser returns the DataSourceParser of a DataFrame
	NumColumns() int                              // NumColumns returns the number of columns in this DataFrame
	ColumnNames() []string                        // ColumnNames returns the names of the columns in this DataFrame, in order
	To(...*DataFrameOperation) (DataFrame, error) // To is a "functional operations" factory method for DataFrames, chaining operations onto the current one(s).
}
