package transform

import (
	"fmt"

	"github.com/go-sif/sift"
)

type repartitionTask struct {
	numPartitions int
}

// RunWorker passes Partitions through unchanged. Rows are regrouped once every
// Partition has been processed.
func (s *repartitionTask) RunWorker(previous sift.OperablePartition) ([]sift.OperablePartition, error) {
	return []sift.OperablePartition{previous}, nil
}

func (s *repartitionTask) NumPartitions() int {
	return s.numPartitions
}

// Repartition regroups all Rows into numPartitions Partitions of
// (nearly) equal size, preserving Row order
func Repartition(numPartitions int) *sift.DataFrameOperation {
	return &sift.DataFrameOperation{
		TaskType: sift.RepartitionTaskType,
		Do: func(d sift.DataFrame) (*sift.DataFrameOperationResult, error) {
			if numPartitions < 1 {
				return nil, fmt.Errorf("Number of partitions must be at least 1, got %d", numPartitions)
			}
			return &sift.DataFrameOperationResult{
				Task:       &repartitionTask{numPartitions: numPartitions},
				DataSchema: d.GetSchema(),
			}, nil
		},
	}
}

// Coalesce regroups all Rows into a single Partition
func Coalesce() *sift.DataFrameOperation {
	return Repartition(1)
}
