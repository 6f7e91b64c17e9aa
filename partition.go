package sift

// A Partition is a portion of a tabular dataset, consisting of multiple Rows.
// Partitions are not generally interacted with directly, instead being
// manipulated in parallel by DataFrame Tasks.
type Partition interface {
	ID() string            // ID retrieves the ID of this Partition
	Ordinal() uint64       // Ordinal retrieves the position of this Partition within the dataset. Partitions are always reassembled in Ordinal order.
	GetMaxRows() int       // GetMaxRows retrieves the maximum number of rows in this Partition
	GetNumRows() int       // GetNumRows retrieves the number of rows in this Partition
	GetRow(rowNum int) Row // GetRow retrieves a specific row from this Partition
	GetSchema() Schema     // GetSchema retrieves the Schema of the Rows in this Partition
	EstimateSize() int     // EstimateSize estimates the in-memory size of this Partition's data, in bytes
}

// A BuildablePartition can be built. Used in the implementation of DataSources and Parsers
type BuildablePartition interface {
	Partition
	ForEachRow(fn MapOperation) error           // ForEachRow iterates over Rows in a Partition
	AppendEmptyRow() (Row, error)               // AppendEmptyRow is a convenient way to add an empty (all nil) Row to the end of this Partition, returning the Row so that Row methods can be used to populate it
	AppendRowValues(values []interface{}) error // AppendRowValues copies a Row's worth of values, in Schema order, onto the end of this Partition, if it isn't full
	SetOrdinal(ordinal uint64)                  // SetOrdinal assigns this Partition a position within the dataset
}

// An OperablePartition can be operated on
type OperablePartition interface {
	Partition
	FilterRows(fn FilterOperation) (OperablePartition, error)                        // FilterRows filters the Rows in the current Partition, creating a new one
	SampleRows(fn SampleOperation) (OperablePartition, error)                        // SampleRows retains zero or more copies of each Row in the current Partition, creating a new one
	ProjectRows(newSchema Schema, fn ProjectionOperation) (OperablePartition, error) // ProjectRows produces a new Partition with the given Schema, populating each of its Rows from the corresponding Row in this Partition
}
