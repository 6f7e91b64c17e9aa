package partition

import (
	"log"

	"github.com/go-sif/sift"
	uuid "github.com/gofrs/uuid"
)

// rowOverhead approximates the bookkeeping cost of a single row (slice header)
const rowOverhead = 24

// valueOverhead approximates the cost of storing a single value behind an interface{}
const valueOverhead = 16

// partitionImpl is Sift's internal implementation of Partition
type partitionImpl struct {
	id      string
	ordinal uint64
	maxRows int
	rows    [][]interface{}
	schema  sift.Schema
}

// createPartitionImpl creates a new, empty Partition with the given schema
func createPartitionImpl(maxRows int, schema sift.Schema) *partitionImpl {
	id, err := uuid.NewV4()
	if err != nil {
		log.Fatalf("failed to generate UUID for Partition: %v", err)
	}
	initialCapacity := maxRows
	if initialCapacity > 1024 {
		initialCapacity = 1024
	}
	return &partitionImpl{
		id:      id.String(),
		maxRows: maxRows,
		rows:    make([][]interface{}, 0, initialCapacity),
		schema:  schema,
	}
}

// derive creates an empty Partition sharing this Partition's position within the dataset
func (p *partitionImpl) derive(schema sift.Schema) *partitionImpl {
	result := createPartitionImpl(p.maxRows, schema)
	result.ordinal = p.ordinal
	return result
}

// ID retrieves the ID of this Partition
func (p *partitionImpl) ID() string {
	return p.id
}

// Ordinal retrieves the position of this Partition within the dataset
func (p *partitionImpl) Ordinal() uint64 {
	return p.ordinal
}

// SetOrdinal assigns this Partition a position within the dataset
func (p *partitionImpl) SetOrdinal(ordinal uint64) {
	p.ordinal = ordinal
}

// GetMaxRows retrieves the maximum number of rows in this Partition
func (p *partitionImpl) GetMaxRows() int {
	return p.maxRows
}

// GetNumRows retrieves the number of rows in this Partition
func (p *partitionImpl) GetNumRows() int {
	return len(p.rows)
}

// GetRow retrieves a specific row from this Partition
func (p *partitionImpl) GetRow(rowNum int) sift.Row {
	return &rowImpl{
		partID: p.id,
		values: p.rows[rowNum],
		schema: p.schema,
	}
}

// GetSchema retrieves the Schema from this Partition
func (p *partitionImpl) GetSchema() sift.Schema {
	return p.schema
}

// EstimateSize estimates the in-memory size of this Partition's data, in bytes
func (p *partitionImpl) EstimateSize() int {
	types := p.schema.ColumnTypes()
	size := 0
	for _, values := range p.rows {
		size += rowOverhead
		for i, v := range values {
			size += valueOverhead + sift.EstimateValueSize(types[i], v)
		}
	}
	return size
}
