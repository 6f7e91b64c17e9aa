package sift

import "io"

// PartitionLoader is a description of how to load specific Partitions of data from a particular DataSource.
// DataSources implement this interface to implement data-loading logic. PartitionLoaders are handed out to
// workers in order, and the Partitions a loader produces are numbered in the order they are produced, so that
// results can be reassembled deterministically.
type PartitionLoader interface {
	ToString() string                                                       // for logging
	Load(parser DataSourceParser, schema Schema) (PartitionIterator, error) // how to actually load data
}

// PartitionMap is an interface describing an iterator for PartitionLoaders.
// Returned by DataSource.Analyze(), a Session will iterate through
// PartitionLoaders and assign them to workers.
type PartitionMap interface {
	HasNext() bool
	Next() PartitionLoader
}

// DataSource is a source of data which will be manipulated according to transformations defined in a DataFrame.
// It represents information about how to load data from the source as Partitions.
type DataSource interface {
	Analyze() (PartitionMap, error)
	IsStreaming() bool
}

// DataSourceParser is a parser for raw data coming from a DataSource
type DataSourceParser interface {
	PartitionSize() int                                                                                   // returns the maximum size in rows of Partitions produced by this parser
	Parse(r io.Reader, source DataSource, schema Schema, onIteratorEnd func()) (PartitionIterator, error) // lazily converts bytes from a Reader into Partitions
}
