package file

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/go-sif/sift"
	"github.com/go-sif/sift/datasource"
)

// DataSource is a set of files containing data which will be manipulating according to a DataFrame
type DataSource struct {
	glob   string
	schema sift.Schema
}

// CreateDataFrame is a factory for DataSources. Files matching the glob are
// read in lexical order, which determines the order of their rows.
func CreateDataFrame(glob string, parser sift.DataSourceParser, schema sift.Schema) sift.DataFrame {
	source := &DataSource{glob, schema}
	return datasource.CreateDataFrame(source, parser, schema)
}

// Analyze returns a PartitionMap, describing how the source files will be divided into Partitions
func (fs *DataSource) Analyze() (sift.PartitionMap, error) {
	matches, err := filepath.Glob(fs.glob)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("glob %s produced 0 files", fs.glob)
	}
	sort.Strings(matches)
	return &PartitionMap{
		files:  matches,
		source: fs,
	}, nil
}

// IsStreaming returns true iff this DataSource provides a continuous stream of data
func (fs *DataSource) IsStreaming() bool {
	return false
}
