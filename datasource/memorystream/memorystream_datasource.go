package memorystream

import (
	"github.com/go-sif/sift"
	"github.com/go-sif/sift/datasource"
)

// DataSource is a set of generators which continuously produce data, to be manipulated according to a DataFrame.
// Each time the DataSource is analyzed, every generator is asked for one batch of records.
type DataSource struct {
	generators []func() []byte
	batchSize  int // the number of records to process at one time
	schema     sift.Schema
}

// CreateDataFrame is a factory for DataSources
func CreateDataFrame(generators []func() []byte, batchSize int, parser sift.DataSourceParser, schema sift.Schema) sift.DataFrame {
	source := &DataSource{generators, batchSize, schema}
	return datasource.CreateDataFrame(source, parser, schema)
}

// Analyze returns a PartitionMap, describing how the source data will be divided into Partitions
func (ms *DataSource) Analyze() (sift.PartitionMap, error) {
	return &PartitionMap{
		source: ms,
	}, nil
}

// IsStreaming returns true iff this DataSource provides a continuous stream of data
func (ms *DataSource) IsStreaming() bool {
	return true
}
