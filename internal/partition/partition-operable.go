package partition

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/go-sif/sift"
	"github.com/hashicorp/go-multierror"
)

// CreateOperablePartition wraps a BuildablePartition produced by a DataSourceParser so that it can be operated on
func CreateOperablePartition(part sift.BuildablePartition) (sift.OperablePartition, error) {
	if p, ok := part.(*partitionImpl); ok {
		return p, nil
	}
	result := createPartitionImpl(part.GetMaxRows(), part.GetSchema())
	result.ordinal = part.Ordinal()
	names := part.GetSchema().ColumnNames()
	err := part.ForEachRow(func(row sift.Row) error {
		values := make([]interface{}, len(names))
		for i, name := range names {
			v, err := row.Get(name)
			if err != nil {
				return err
			}
			values[i] = v
		}
		result.appendRow(values)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// selectRows produces a new Partition containing the rows whose indices are present in the selection, in order
func (p *partitionImpl) selectRows(selection *roaring.Bitmap) *partitionImpl {
	if selection.GetCardinality() == uint64(len(p.rows)) {
		return p
	}
	result := p.derive(p.schema)
	it := selection.Iterator()
	for it.HasNext() {
		result.appendRow(p.rows[it.Next()])
	}
	return result
}

// FilterRows filters the Rows in the current Partition, creating a new one
func (p *partitionImpl) FilterRows(fn sift.FilterOperation) (sift.OperablePartition, error) {
	var multierr *multierror.Error
	kept := roaring.New()
	for i := 0; i < p.GetNumRows(); i++ {
		shouldKeep, err := fn(p.GetRow(i))
		if err != nil {
			multierr = multierror.Append(multierr, err)
			continue
		}
		if shouldKeep {
			kept.Add(uint32(i))
		}
	}
	return p.selectRows(kept), multierr.ErrorOrNil()
}

// SampleRows retains zero or more copies of each Row in the current Partition, creating a new one.
// Repeated copies are independent of one another.
func (p *partitionImpl) SampleRows(fn sift.SampleOperation) (sift.OperablePartition, error) {
	var multierr *multierror.Error
	kept := roaring.New()
	copies := make(map[uint32]int)
	for i := 0; i < p.GetNumRows(); i++ {
		n, err := fn(p.GetRow(i))
		if err != nil {
			multierr = multierror.Append(multierr, err)
			continue
		}
		if n > 0 {
			kept.Add(uint32(i))
		}
		if n > 1 {
			copies[uint32(i)] = n
		}
	}
	if len(copies) == 0 {
		return p.selectRows(kept), multierr.ErrorOrNil()
	}
	result := p.derive(p.schema)
	it := kept.Iterator()
	for it.HasNext() {
		i := it.Next()
		result.appendRow(p.rows[i])
		for c := 1; c < copies[i]; c++ {
			result.appendRow(copyValues(p.rows[i]))
		}
	}
	return result, multierr.ErrorOrNil()
}

// ProjectRows produces a new Partition with the given Schema, populating each of its Rows from the corresponding Row in this Partition
func (p *partitionImpl) ProjectRows(newSchema sift.Schema, fn sift.ProjectionOperation) (sift.OperablePartition, error) {
	var multierr *multierror.Error
	result := p.derive(newSchema)
	for i := 0; i < p.GetNumRows(); i++ {
		out, err := result.AppendEmptyRow()
		if err != nil {
			return nil, err
		}
		if err = fn(p.GetRow(i), out); err != nil {
			multierr = multierror.Append(multierr, err)
			result.rows = result.rows[:len(result.rows)-1]
		}
	}
	return result, multierr.ErrorOrNil()
}

// copyValues deep-copies a row's values
func copyValues(values []interface{}) []interface{} {
	result := make([]interface{}, len(values))
	for i, v := range values {
		if b, ok := v.([]byte); ok {
			cp := make([]byte, len(b))
			copy(cp, b)
			result[i] = cp
		} else {
			result[i] = v
		}
	}
	return result
}
