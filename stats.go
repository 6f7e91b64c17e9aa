package sift

import "time"

// RuntimeStatistics facilitates the retrieval of statistics about materializations run by a Session
type RuntimeStatistics interface {
	// GetStartTime returns the start time of the most recent run
	GetStartTime() time.Time
	// GetRuntime returns the running time of the most recent run
	GetRuntime() time.Duration
	// GetNumRowsProcessed returns the number of Rows which have been read from DataSources so far
	GetNumRowsProcessed() int64
	// GetNumRowsProduced returns the number of Rows which have been produced by plans so far
	GetNumRowsProduced() int64
	// GetNumPartitionsProcessed returns the number of Partitions which have been processed so far
	GetNumPartitionsProcessed() int64
	// GetNumRuns returns the number of materializations which have been run so far
	GetNumRuns() int64
	// GetCurrentPartitionProcessingTime returns a rolling average of partition processing time
	GetCurrentPartitionProcessingTime() time.Duration
}
