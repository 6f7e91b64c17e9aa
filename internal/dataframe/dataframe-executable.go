package dataframe

import (
	"fmt"

	"github.com/go-sif/sift"
)

// Optimize splits a DataFrame's chain of tasks into stages. Each stage's
// execution is blocked until the completion of the previous stage.
func Optimize(d sift.DataFrame) (*Plan, error) {
	df, ok := d.(*dataFrameImpl)
	if !ok {
		return nil, fmt.Errorf("DataFrame of type %T was not created by a Sift DataSource", d)
	}
	// create a slice of frames, in order of execution, by following parent links
	frames := []*dataFrameImpl{}
	for next := df; next != nil; next = next.parent {
		frames = append([]*dataFrameImpl{next}, frames...)
	}
	// split into stages at repartitions
	stages := []*stageImpl{createStage(0, frames[0].schema)}
	for i, f := range frames {
		currentStage := stages[len(stages)-1]
		currentStage.frames = append(currentStage.frames, f)
		currentStage.outgoingSchema = f.schema
		if f.taskType != sift.RepartitionTaskType {
			continue
		}
		rTask, ok := f.task.(sift.RepartitionTask)
		if !ok {
			return nil, fmt.Errorf("taskType is RepartitionTaskType but Task is not a RepartitionTask. Task is misdefined.")
		}
		currentStage.repartition = rTask
		if i+1 < len(frames) {
			stages = append(stages, createStage(len(stages), f.schema))
		}
	}
	return &Plan{
		stages:       stages,
		parser:       df.parser,
		source:       df.source,
		sourceSchema: frames[0].schema,
	}, nil
}
