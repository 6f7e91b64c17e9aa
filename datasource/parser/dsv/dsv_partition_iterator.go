package dsv

import (
	"encoding/csv"
	"io"
	"sync"

	"github.com/go-sif/sift"
	"github.com/go-sif/sift/datasource"
	"github.com/go-sif/sift/errors"
)

type dsvFilePartitionIterator struct {
	parser       *Parser
	reader       *csv.Reader
	hasNext      bool
	source       sift.DataSource
	schema       sift.Schema
	lock         sync.Mutex
	endListeners []func()
}

// OnEnd registers a listener which fires when this iterator runs out of Partitions
func (dsvi *dsvFilePartitionIterator) OnEnd(onEnd func()) {
	dsvi.lock.Lock()
	defer dsvi.lock.Unlock()
	dsvi.endListeners = append(dsvi.endListeners, onEnd)
}

// HasNextPartition returns true iff this PartitionIterator can produce another Partition
func (dsvi *dsvFilePartitionIterator) HasNextPartition() bool {
	dsvi.lock.Lock()
	defer dsvi.lock.Unlock()
	return dsvi.hasNext
}

// end marks this iterator as exhausted and notifies listeners. Callers must hold the lock, or have exclusive access.
func (dsvi *dsvFilePartitionIterator) end() {
	dsvi.hasNext = false
	for _, l := range dsvi.endListeners {
		l()
	}
	dsvi.endListeners = []func(){}
}

// NextPartition returns the next Partition if one is available, or an error
func (dsvi *dsvFilePartitionIterator) NextPartition() (sift.BuildablePartition, error) {
	dsvi.lock.Lock()
	defer dsvi.lock.Unlock()
	if !dsvi.hasNext {
		return nil, errors.NoMorePartitionsError{}
	}
	colNames := dsvi.schema.ColumnNames()
	colTypes := dsvi.schema.ColumnTypes()
	part := datasource.CreateBuildablePartition(dsvi.parser.PartitionSize(), dsvi.schema)
	for part.GetNumRows() < part.GetMaxRows() {
		rowStrings, err := dsvi.reader.Read()
		if err == io.EOF {
			dsvi.end()
			return part, nil
		} else if err != nil {
			dsvi.end()
			return nil, err
		}
		values, err := scanRow(dsvi.parser.conf, colNames, colTypes, rowStrings)
		if err != nil {
			dsvi.end()
			return nil, err
		}
		if err = part.AppendRowValues(values); err != nil {
			dsvi.end()
			return nil, err
		}
	}
	return part, nil
}
