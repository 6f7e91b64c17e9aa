package sift

// TaskType describes the type of a Task, used internally to control behaviour
type TaskType string

const (
	// NoOpTaskType indicates that this task does not manipulate data
	NoOpTaskType TaskType = "no_op"
	// ExtractTaskType indicates that this task sources data from a DataSource
	ExtractTaskType TaskType = "extract"
	// FilterTaskType indicates that this task triggers a Filter
	FilterTaskType TaskType = "filter"
	// ProjectTaskType indicates that this task changes the set of columns (select, drop, with_column, rename)
	ProjectTaskType TaskType = "project"
	// SampleTaskType indicates that this task triggers a Sample
	SampleTaskType TaskType = "sample"
	// RepartitionTaskType indicates that this task regroups rows into a new number of Partitions
	RepartitionTaskType TaskType = "repartition"
)
