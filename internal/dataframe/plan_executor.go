package dataframe

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/go-sif/sift"
	"github.com/go-sif/sift/errors"
	"github.com/go-sif/sift/internal/partition"
	"github.com/go-sif/sift/internal/stats"
	iutil "github.com/go-sif/sift/internal/util"
	"github.com/go-sif/sift/logging"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// ExecutorConfig configures the execution of a Plan
type ExecutorConfig struct {
	Operation       string                          // the name of the materialization, for logging and errors
	NumWorkers      int                             // the maximum number of Partitions processed concurrently. Defaults to GOMAXPROCS.
	IgnoreRowErrors bool                            // if true, Rows which produce errors are logged and dropped. Otherwise, they fail execution.
	Retain          bool                            // if true, the Partitions produced by the Plan are returned by Execute
	MemoryLimit     int64                           // the maximum estimated size of retained or buffered Partitions. 0 means no limit.
	OnPartition     func(part sift.Partition) error // called serially with each Partition produced by the Plan. An error cancels execution.
	Logger          *logging.Logger
	Stats           *stats.RunStatistics
}

// planExecutor executes a Plan locally, on a bounded pool of goroutines
type planExecutor struct {
	plan *Plan
	conf *ExecutorConfig
}

// Execute runs a Plan to completion, returning the produced Partitions (if conf.Retain is set) in ordinal order.
// Cancelling ctx aborts execution.
func Execute(ctx context.Context, plan *Plan, conf *ExecutorConfig) ([]sift.Partition, error) {
	if conf.NumWorkers <= 0 {
		conf.NumWorkers = runtime.GOMAXPROCS(0)
	}
	if conf.Stats == nil {
		conf.Stats = &stats.RunStatistics{}
	}
	pe := &planExecutor{plan: plan, conf: conf}
	conf.Stats.Start()
	defer conf.Stats.Finish()

	pm, err := plan.source.Analyze()
	if err != nil {
		return nil, err
	}
	loaders := []sift.PartitionLoader{}
	for pm.HasNext() {
		loaders = append(loaders, pm.Next())
	}
	conf.Logger.Debugf("%s: executing %d stage(s) over %d partition loader(s)", conf.Operation, plan.Size(), len(loaders))

	var incoming []sift.OperablePartition
	for sidx, stage := range plan.stages {
		last := sidx == len(plan.stages)-1
		// the final stage emits directly, unless it ends in a repartition
		emitting := last && !stage.EndsInRepartition()
		var outputs []sift.OperablePartition
		if sidx == 0 {
			outputs, err = pe.runStage(ctx, stage, loaders, nil, emitting)
		} else {
			outputs, err = pe.runStage(ctx, stage, nil, incoming, emitting)
		}
		if err != nil {
			return nil, err
		}
		conf.Logger.Debugf("%s: finished stage %d", conf.Operation, stage.ID())
		if emitting {
			return toPartitions(outputs), nil
		}
		incoming = partition.Repartition(outputs, stage.repartition.NumPartitions(), stage.OutgoingSchema())
	}
	// the plan ended in a repartition
	tracker := &memoryTracker{limit: conf.MemoryLimit, operation: conf.Operation}
	results := make([]sift.Partition, 0, len(incoming))
	for _, part := range incoming {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if conf.OnPartition != nil {
			if err := conf.OnPartition(part); err != nil {
				return nil, err
			}
		}
		if conf.Retain {
			if err := tracker.add(part); err != nil {
				return nil, err
			}
			results = append(results, part)
		}
	}
	return results, nil
}

// runStage applies a Stage to every incoming Partition, which are either loaded from a DataSource (first Stage) or
// produced by a previous Stage
func (pe *planExecutor) runStage(ctx context.Context, stage *stageImpl, loaders []sift.PartitionLoader, incoming []sift.OperablePartition, emitting bool) ([]sift.OperablePartition, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pe.conf.NumWorkers)
	var lock sync.Mutex
	results := []sift.OperablePartition{}
	tracker := &memoryTracker{limit: pe.conf.MemoryLimit, operation: pe.conf.Operation}
	retain := !emitting || pe.conf.Retain
	emit := func(parts []sift.OperablePartition) error {
		lock.Lock()
		defer lock.Unlock()
		for _, part := range parts {
			if emitting && pe.conf.OnPartition != nil {
				if err := pe.conf.OnPartition(part); err != nil {
					return err
				}
			}
			if retain {
				if err := tracker.add(part); err != nil {
					return err
				}
				results = append(results, part)
			}
		}
		return nil
	}
	process := func(part sift.OperablePartition) error {
		start := time.Now()
		out, err := stage.WorkerExecute(part, pe.handleRowErrors)
		if err != nil {
			return err
		}
		rowsOut := 0
		for _, p := range out {
			rowsOut += p.GetNumRows()
		}
		pe.conf.Stats.EndPartition(start, part.GetNumRows(), rowsOut)
		return emit(out)
	}
	for i, loader := range loaders {
		i, loader := i, loader
		g.Go(func() error {
			pe.conf.Logger.Tracef("%s: loading partitions from %s", pe.conf.Operation, loader.ToString())
			it, err := loader.Load(pe.plan.parser, pe.plan.sourceSchema)
			if err != nil {
				return fmt.Errorf("failed to load partitions from %s: %w", loader.ToString(), err)
			}
			for seq := uint64(0); it.HasNextPartition(); seq++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				bpart, err := it.NextPartition()
				if _, ok := err.(errors.NoMorePartitionsError); ok {
					break
				} else if err != nil {
					return err
				}
				bpart.SetOrdinal(uint64(i)<<32 | seq)
				part, err := partition.CreateOperablePartition(bpart)
				if err != nil {
					return err
				}
				if err = process(part); err != nil {
					return err
				}
			}
			return nil
		})
	}
	for _, part := range incoming {
		part := part
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return process(part)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sortPartitions(results)
	return results, nil
}

// handleRowErrors suppresses (and logs) aggregated row errors if configured to do so
func (pe *planExecutor) handleRowErrors(err error) error {
	merr, ok := err.(*multierror.Error)
	if !ok || !pe.conf.IgnoreRowErrors {
		return err
	}
	pe.conf.Logger.Warnf("%s: dropped %d row(s) which produced errors:\n%s", pe.conf.Operation, len(merr.Errors), iutil.FormatMultiError(merr.Errors))
	return nil
}

// memoryTracker accumulates estimated Partition sizes against a limit
type memoryTracker struct {
	limit     int64
	operation string
	total     int64
}

func (mt *memoryTracker) add(part sift.Partition) error {
	mt.total += int64(part.EstimateSize())
	if mt.limit > 0 && mt.total > mt.limit {
		return errors.CapacityExceededError{Operation: mt.operation, Limit: mt.limit, Estimated: mt.total}
	}
	return nil
}
