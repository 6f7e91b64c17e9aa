package transform

import (
	"github.com/go-sif/sift"
	"github.com/go-sif/sift/expr"
	iutil "github.com/go-sif/sift/internal/util"
)

type filterTask struct {
	fn sift.FilterOperation
}

func (s *filterTask) RunWorker(previous sift.OperablePartition) ([]sift.OperablePartition, error) {
	return single(previous.FilterRows(s.fn))
}

// Filter retains only those Rows for which a predicate is true. Rows for which
// the predicate is false or nil are removed. Columns referenced by the predicate
// are validated against the DataFrame's Schema immediately.
func Filter(pred expr.Expr) *sift.DataFrameOperation {
	return &sift.DataFrameOperation{
		TaskType: sift.FilterTaskType,
		Do: func(d sift.DataFrame) (*sift.DataFrameOperationResult, error) {
			if err := expr.ValidatePredicate(pred, d.GetSchema()); err != nil {
				return nil, err
			}
			return &sift.DataFrameOperationResult{
				Task: &filterTask{fn: iutil.SafeFilterOperation(func(row sift.Row) (bool, error) {
					return expr.EvalPredicate(pred, row)
				})},
				DataSchema: d.GetSchema(),
			}, nil
		},
	}
}

// Where is Filter, with the predicate expressed as a SQL condition (e.g. "age > 60 AND id != 3")
func Where(condition string) *sift.DataFrameOperation {
	pred, err := expr.ParseCondition(condition)
	if err != nil {
		return failed(sift.FilterTaskType, err)
	}
	return Filter(pred)
}

// FilterFunc filters Rows using an arbitrary function
func FilterFunc(fn sift.FilterOperation) *sift.DataFrameOperation {
	return &sift.DataFrameOperation{
		TaskType: sift.FilterTaskType,
		Do: func(d sift.DataFrame) (*sift.DataFrameOperationResult, error) {
			return &sift.DataFrameOperationResult{
				Task:       &filterTask{fn: iutil.SafeFilterOperation(fn)},
				DataSchema: d.GetSchema(),
			}, nil
		},
	}
}

// single wraps the output of a partition-level operation. Row errors are
// returned alongside the surviving Rows, so that they may be ignored.
func single(result sift.OperablePartition, err error) ([]sift.OperablePartition, error) {
	if result == nil {
		return nil, err
	}
	return []sift.OperablePartition{result}, err
}

// failed produces an operation which reports err when applied
func failed(taskType sift.TaskType, err error) *sift.DataFrameOperation {
	return &sift.DataFrameOperation{
		TaskType: taskType,
		Do: func(d sift.DataFrame) (*sift.DataFrameOperationResult, error) {
			return nil, err
		},
	}
}
