package partition

import (
	"fmt"

	"github.com/go-sif/sift"
	"github.com/go-sif/sift/errors"
)

// CreateBuildablePartition creates a new, empty Partition which can hold up to maxRows Rows
func CreateBuildablePartition(maxRows int, schema sift.Schema) sift.BuildablePartition {
	return createPartitionImpl(maxRows, schema)
}

// ForEachRow iterates over Rows in a Partition
func (p *partitionImpl) ForEachRow(fn sift.MapOperation) error {
	for i := 0; i < p.GetNumRows(); i++ {
		if err := fn(p.GetRow(i)); err != nil {
			return err
		}
	}
	return nil
}

// AppendEmptyRow is a convenient way to add an empty Row to the end of this Partition, returning the Row so that Row methods can be used to populate it
func (p *partitionImpl) AppendEmptyRow() (sift.Row, error) {
	if len(p.rows) >= p.maxRows {
		return nil, errors.PartitionFullError{}
	}
	p.rows = append(p.rows, make([]interface{}, p.schema.NumColumns()))
	return p.GetRow(len(p.rows) - 1), nil
}

// AppendRowValues copies a Row's worth of values onto the end of this Partition, converting each to its column's representation
func (p *partitionImpl) AppendRowValues(values []interface{}) error {
	if len(p.rows) >= p.maxRows {
		return errors.PartitionFullError{}
	}
	if len(values) != p.schema.NumColumns() {
		return fmt.Errorf("Row has %d values, but Schema has %d columns", len(values), p.schema.NumColumns())
	}
	types := p.schema.ColumnTypes()
	names := p.schema.ColumnNames()
	row := make([]interface{}, len(values))
	for i, v := range values {
		coerced, err := sift.CoerceValue(types[i], v)
		if err != nil {
			return withColumn(err, names[i])
		}
		row[i] = coerced
	}
	p.rows = append(p.rows, row)
	return nil
}

// appendRow adds an existing row's values without conversion. The values are shared, not copied.
func (p *partitionImpl) appendRow(values []interface{}) {
	p.rows = append(p.rows, values)
	if len(p.rows) > p.maxRows {
		p.maxRows = len(p.rows)
	}
}
