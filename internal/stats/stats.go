package stats

import (
	"sync"
	"time"
)

const statisticRollingWindows = 5

// RunStatistics contains statistics about materializations run by a Session.
// It is safe for concurrent use by partition workers.
type RunStatistics struct {
	lock                        sync.Mutex
	started                     bool
	finished                    bool
	startTime                   time.Time
	totalRuntime                time.Duration
	rowsProcessed               int64
	rowsProduced                int64
	partitionsProcessed         int64
	numRuns                     int64
	recentPartitionRuntimes     []time.Duration // for rolling average of recent partition processing times
	recentPartitionRuntimesHead int
}

// Start triggers statistics tracking for a new run
func (rs *RunStatistics) Start() {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	rs.started = true
	rs.finished = false
	rs.startTime = time.Now()
	rs.numRuns++
	if rs.recentPartitionRuntimes == nil {
		rs.recentPartitionRuntimes = make([]time.Duration, statisticRollingWindows)
	}
}

// Finish completes statistics tracking for the current run
func (rs *RunStatistics) Finish() {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	rs.finished = true
	rs.totalRuntime = time.Since(rs.startTime)
}

// EndPartition tracks the end of the processing of a partition, which began at start
func (rs *RunStatistics) EndPartition(start time.Time, rowsIn int, rowsOut int) {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if rs.recentPartitionRuntimes == nil {
		rs.recentPartitionRuntimes = make([]time.Duration, statisticRollingWindows)
	}
	rs.recentPartitionRuntimes[rs.recentPartitionRuntimesHead] = time.Since(start)
	rs.recentPartitionRuntimesHead = (rs.recentPartitionRuntimesHead + 1) % len(rs.recentPartitionRuntimes)
	rs.rowsProcessed += int64(rowsIn)
	rs.rowsProduced += int64(rowsOut)
	rs.partitionsProcessed++
}

// GetStartTime returns the start time of the most recent run
func (rs *RunStatistics) GetStartTime() time.Time {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.startTime
}

// GetRuntime returns the running time of the most recent run
func (rs *RunStatistics) GetRuntime() time.Duration {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if !rs.started {
		return 0
	} else if rs.finished {
		return rs.totalRuntime
	}
	return time.Since(rs.startTime)
}

// GetNumRowsProcessed returns the number of Rows which have been read from DataSources so far
func (rs *RunStatistics) GetNumRowsProcessed() int64 {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.rowsProcessed
}

// GetNumRowsProduced returns the number of Rows which have been produced by plans so far
func (rs *RunStatistics) GetNumRowsProduced() int64 {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.rowsProduced
}

// GetNumPartitionsProcessed returns the number of Partitions which have been processed so far
func (rs *RunStatistics) GetNumPartitionsProcessed() int64 {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.partitionsProcessed
}

// GetNumRuns returns the number of materializations which have been started so far
func (rs *RunStatistics) GetNumRuns() int64 {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.numRuns
}

// GetCurrentPartitionProcessingTime returns a rolling average of partition processing time
func (rs *RunStatistics) GetCurrentPartitionProcessingTime() time.Duration {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	var total time.Duration
	for _, d := range rs.recentPartitionRuntimes {
		total += d
	}
	return total / statisticRollingWindows
}

// Merge folds a completed run's statistics into rs. Counters accumulate, while the start
// time and runtime reported by rs become those of the merged run.
func (rs *RunStatistics) Merge(run *RunStatistics) {
	run.lock.Lock()
	startTime, runtime := run.startTime, run.totalRuntime
	rowsIn, rowsOut, parts, runs := run.rowsProcessed, run.rowsProduced, run.partitionsProcessed, run.numRuns
	recent := make([]time.Duration, 0, len(run.recentPartitionRuntimes))
	for i := range run.recentPartitionRuntimes {
		d := run.recentPartitionRuntimes[(run.recentPartitionRuntimesHead+i)%len(run.recentPartitionRuntimes)]
		if d > 0 {
			recent = append(recent, d)
		}
	}
	run.lock.Unlock()

	rs.lock.Lock()
	defer rs.lock.Unlock()
	if rs.recentPartitionRuntimes == nil {
		rs.recentPartitionRuntimes = make([]time.Duration, statisticRollingWindows)
	}
	rs.started = true
	rs.finished = true
	rs.startTime = startTime
	rs.totalRuntime = runtime
	rs.rowsProcessed += rowsIn
	rs.rowsProduced += rowsOut
	rs.partitionsProcessed += parts
	rs.numRuns += runs
	for _, d := range recent {
		rs.recentPartitionRuntimes[rs.recentPartitionRuntimesHead] = d
		rs.recentPartitionRuntimesHead = (rs.recentPartitionRuntimesHead + 1) % len(rs.recentPartitionRuntimes)
	}
}
