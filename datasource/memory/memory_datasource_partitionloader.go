package memory

import (
	"bytes"
	"fmt"

	"github.com/go-sif/sift"
	"github.com/go-sif/sift/datasource"
	"github.com/go-sif/sift/errors"
)

// PartitionLoader is capable of loading partitions of data from memory
type PartitionLoader struct {
	idx    int
	source *DataSource
}

// ToString returns a string representation of this PartitionLoader
func (pl *PartitionLoader) ToString() string {
	return fmt.Sprintf("Memory loader index: %d", pl.idx)
}

// Load is capable of loading partitions of data from memory
func (pl *PartitionLoader) Load(parser sift.DataSourceParser, schema sift.Schema) (sift.PartitionIterator, error) {
	if pl.source.rows != nil {
		start := pl.idx * pl.source.partitionSize
		end := start + pl.source.partitionSize
		if end > len(pl.source.rows) {
			end = len(pl.source.rows)
		}
		return &rowsPartitionIterator{rows: pl.source.rows[start:end], schema: schema, hasNext: true}, nil
	}
	if parser == nil {
		return nil, fmt.Errorf("a parser is required to load %s", pl.ToString())
	}
	r := bytes.NewReader(pl.source.data[pl.idx])
	return parser.Parse(r, pl.source, schema, nil)
}

// rowsPartitionIterator produces a single Partition from rows of values
type rowsPartitionIterator struct {
	rows    [][]interface{}
	schema  sift.Schema
	hasNext bool
	onEnd   []func()
}

func (it *rowsPartitionIterator) HasNextPartition() bool {
	return it.hasNext
}

func (it *rowsPartitionIterator) NextPartition() (sift.BuildablePartition, error) {
	if !it.hasNext {
		return nil, errors.NoMorePartitionsError{}
	}
	it.hasNext = false
	defer func() {
		for _, fn := range it.onEnd {
			fn()
		}
	}()
	part := datasource.CreateBuildablePartition(len(it.rows), it.schema)
	for _, values := range it.rows {
		if err := part.AppendRowValues(values); err != nil {
			return nil, err
		}
	}
	return part, nil
}

func (it *rowsPartitionIterator) OnEnd(onEnd func()) {
	it.onEnd = append(it.onEnd, onEnd)
}
