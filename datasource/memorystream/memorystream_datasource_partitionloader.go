package memorystream

import (
	"bytes"
	"fmt"

	"github.com/go-sif/sift"
)

// PartitionLoader is capable of loading a batch of records from a generator
type PartitionLoader struct {
	idx    int
	source *DataSource
}

// ToString returns a string representation of this PartitionLoader
func (pl *PartitionLoader) ToString() string {
	return fmt.Sprintf("Memory stream loader index: %d", pl.idx)
}

// Load draws a batch of records from a generator and parses them
func (pl *PartitionLoader) Load(parser sift.DataSourceParser, schema sift.Schema) (sift.PartitionIterator, error) {
	var data bytes.Buffer
	for i := 0; i < pl.source.batchSize; i++ {
		data.Write(pl.source.generators[pl.idx]())
	}
	return parser.Parse(&data, pl.source, schema, nil)
}
