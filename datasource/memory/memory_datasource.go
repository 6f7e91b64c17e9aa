package memory

import (
	"fmt"

	"github.com/go-sif/sift"
	"github.com/go-sif/sift/datasource"
)

// DataSource is a buffer containing data which will be manipulating according to a DataFrame.
// Data is held either as raw chunks, which are decoded by a DataSourceParser, or as
// already-decoded rows of values.
type DataSource struct {
	data          [][]byte
	rows          [][]interface{}
	partitionSize int
	schema        sift.Schema
}

// CreateDataFrame is a factory for DataSources. Each chunk of data is
// parsed independently, and forms at least one Partition.
func CreateDataFrame(data [][]byte, parser sift.DataSourceParser, schema sift.Schema) sift.DataFrame {
	source := &DataSource{data: data, schema: schema}
	return datasource.CreateDataFrame(source, parser, schema)
}

// CreateDataFrameFromRows produces a DataFrame from rows of values, each supplied in Schema order.
// Rows are divided into Partitions of at most partitionSize rows (defaulting to 128). Every row is
// validated against the Schema immediately.
func CreateDataFrameFromRows(rows [][]interface{}, partitionSize int, schema sift.Schema) (sift.DataFrame, error) {
	if partitionSize <= 0 {
		partitionSize = 128
	}
	for i, values := range rows {
		if err := datasource.ValidateRow(schema, values); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	source := &DataSource{rows: rows, partitionSize: partitionSize, schema: schema}
	return datasource.CreateDataFrame(source, nil, schema), nil
}

// Analyze returns a PartitionMap, describing how the source data will be divided into Partitions
func (fs *DataSource) Analyze() (sift.PartitionMap, error) {
	if fs.rows != nil {
		return &PartitionMap{source: fs, total: (len(fs.rows) + fs.partitionSize - 1) / fs.partitionSize}, nil
	}
	return &PartitionMap{source: fs, total: len(fs.data)}, nil
}

// IsStreaming returns true iff this DataSource provides a continuous stream of data
func (fs *DataSource) IsStreaming() bool {
	return false
}
