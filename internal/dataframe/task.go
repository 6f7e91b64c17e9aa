package dataframe

import (
	"github.com/go-sif/sift"
)

// noOpTask is a task that does nothing
type noOpTask struct{}

// RunWorker for noOpTask does nothing
func (s *noOpTask) RunWorker(previous sift.OperablePartition) ([]sift.OperablePartition, error) {
	return []sift.OperablePartition{previous}, nil
}
