package util

import (
	"fmt"

	"github.com/go-sif/sift"
)

// recovered converts a recovered panic into an error
func recovered(kind string, r interface{}, row sift.Row) error {
	if anErr, ok := r.(error); ok {
		return fmt.Errorf("%s Panic: %w\nRow: %s\n%s", kind, anErr, row.ToString(), GetTrace())
	}
	return fmt.Errorf("%s Panic: %v\nRow: %s\n%s", kind, r, row.ToString(), GetTrace())
}

// SafeFilterOperation wraps a FilterOperation such that panics are recovered and nice error messages are constructed
func SafeFilterOperation(filterOp sift.FilterOperation) (safeFilterOp sift.FilterOperation) {
	return func(row sift.Row) (shouldKeep bool, err error) {
		defer func() {
			if r := recover(); r != nil {
				shouldKeep = false
				err = recovered("Filter", r, row)
			} else if err != nil {
				err = fmt.Errorf("Filter Error: %w\nRow: %s", err, row.ToString())
			}
		}()
		shouldKeep, err = filterOp(row)
		return
	}
}

// SafeProjectionOperation wraps a ProjectionOperation such that panics are recovered and nice error messages are constructed
func SafeProjectionOperation(projectionOp sift.ProjectionOperation) (safeProjectionOp sift.ProjectionOperation) {
	return func(in sift.Row, out sift.Row) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered("Projection", r, in)
			} else if err != nil {
				err = fmt.Errorf("Projection Error: %w\nRow: %s", err, in.ToString())
			}
		}()
		err = projectionOp(in, out)
		return
	}
}

// SafeSampleOperation wraps a SampleOperation such that panics are recovered and nice error messages are constructed
func SafeSampleOperation(sampleOp sift.SampleOperation) (safeSampleOp sift.SampleOperation) {
	return func(row sift.Row) (copies int, err error) {
		defer func() {
			if r := recover(); r != nil {
				copies = 0
				err = recovered("Sample", r, row)
			} else if err != nil {
				err = fmt.Errorf("Sample Error: %w\nRow: %s", err, row.ToString())
			}
		}()
		copies, err = sampleOp(row)
		return
	}
}
