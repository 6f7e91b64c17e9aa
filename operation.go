package sift

// MapOperation - A generic function for visiting (and possibly manipulating) Rows
type MapOperation func(row Row) error

// FilterOperation - A generic function for determining whether or not a Row should be retained
type FilterOperation func(row Row) (bool, error)

// ProjectionOperation - A generic function for populating a Row of a new Schema from a Row of the previous one
type ProjectionOperation func(in Row, out Row) error

// SampleOperation - A generic function for determining how many copies of a Row should be retained
type SampleOperation func(row Row) (copies int, err error)

// DataFrameOperationResult is the result of a DataFrameOperation
type DataFrameOperationResult struct {
	Task       Task
	DataSchema Schema
}

// A DataFrameOperation - A generic DataFrame transform, returning a Task that performs the "work" and a (potentially) altered Schema.
// Do is invoked when the operation is chained onto a DataFrame via To(), so any validation errors surface immediately,
// without reading any data.
type DataFrameOperation struct {
	TaskType TaskType
	Do       func(d DataFrame) (*DataFrameOperationResult, error)
}
