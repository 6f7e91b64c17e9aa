package dataframe

import (
	"github.com/go-sif/sift"
)

// Stage is a group of tasks which can be applied to each Partition
// independently. A Stage which ends in a repartition blocks the
// execution of further stages until it is complete.
type stageImpl struct {
	id             int
	incomingSchema sift.Schema
	outgoingSchema sift.Schema
	frames         []*dataFrameImpl
	repartition    sift.RepartitionTask
}

// createStage is a factory for Stages
func createStage(id int, incomingSchema sift.Schema) *stageImpl {
	return &stageImpl{
		id:             id,
		incomingSchema: incomingSchema,
		frames:         []*dataFrameImpl{},
	}
}

// ID returns the ID for this Stage
func (s *stageImpl) ID() int {
	return s.id
}

// IncomingSchema is the Schema for data entering this Stage
func (s *stageImpl) IncomingSchema() sift.Schema {
	return s.incomingSchema
}

// OutgoingSchema is the Schema for data leaving this Stage
func (s *stageImpl) OutgoingSchema() sift.Schema {
	return s.outgoingSchema
}

// EndsInRepartition returns true iff this Stage ends with a repartition task
func (s *stageImpl) EndsInRepartition() bool {
	return s.repartition != nil
}

// WorkerExecute runs a stage against a Partition of data, returning the resulting
// Partition(s). Errors produced by a task are passed through onError, which may
// choose to suppress them, in which case execution continues with the task's output.
func (s *stageImpl) WorkerExecute(part sift.OperablePartition, onError func(error) error) ([]sift.OperablePartition, error) {
	var prev = []sift.OperablePartition{part}
	for _, frame := range s.frames {
		next := make([]sift.OperablePartition, 0, len(prev))
		for _, p := range prev {
			out, err := frame.task.RunWorker(p)
			if err != nil {
				if err = onError(err); err != nil {
					return nil, err
				}
			}
			next = append(next, out...)
		}
		prev = next
	}
	return prev, nil
}
