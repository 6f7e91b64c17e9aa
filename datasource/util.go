package datasource

import (
	"github.com/go-sif/sift"
	"github.com/go-sif/sift/internal/dataframe"
	"github.com/go-sif/sift/internal/partition"
)

// CreateDataFrame produces a fresh DataFrame (useful for the implementation of DataSources)
func CreateDataFrame(source sift.DataSource, parser sift.DataSourceParser, schema sift.Schema) sift.DataFrame {
	return dataframe.CreateDataFrame(source, parser, schema)
}

// CreateBuildablePartition creates a new Partition containing an empty byte array and a schema (useful for the implementation of DataSourceParsers)
func CreateBuildablePartition(maxRows int, schema sift.Schema) sift.BuildablePartition {
	return partition.CreateBuildablePartition(maxRows, schema)
}

// ValidateRow confirms that a Row's worth of values, in Schema order, can be stored within a Partition with the given Schema
func ValidateRow(schema sift.Schema, values []interface{}) error {
	_, err := partition.CreateRow(schema, values)
	return err
}
