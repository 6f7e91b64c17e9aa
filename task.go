package sift

// A Task is a transformation applied
// to Partitions of tabular data.
type Task interface {
	RunWorker(previous OperablePartition) ([]OperablePartition, error)
}

// A RepartitionTask is a Task which regroups all incoming Partitions
// into a fixed number of Partitions. It forms a barrier within a plan.
type RepartitionTask interface {
	Task
	NumPartitions() int
}
