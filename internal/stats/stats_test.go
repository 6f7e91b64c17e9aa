package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/go-sif/sift"
	"github.com/stretchr/testify/require"
)

func TestRunStatistics(t *testing.T) {
	var rs sift.RuntimeStatistics = &RunStatistics{}
	require.Equal(t, time.Duration(0), rs.GetRuntime())
	stats := rs.(*RunStatistics)
	stats.Start()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stats.EndPartition(time.Now(), 10, 4)
		}()
	}
	wg.Wait()
	stats.Finish()
	require.Equal(t, int64(100), rs.GetNumRowsProcessed())
	require.Equal(t, int64(40), rs.GetNumRowsProduced())
	require.Equal(t, int64(10), rs.GetNumPartitionsProcessed())
	require.Equal(t, int64(1), rs.GetNumRuns())
	runtime := rs.GetRuntime()
	require.Equal(t, runtime, rs.GetRuntime())
	require.False(t, rs.GetStartTime().IsZero())
}

func TestMergeRuns(t *testing.T) {
	total := &RunStatistics{}
	runs := make([]*RunStatistics, 3)
	var wg sync.WaitGroup
	for i := range runs {
		runs[i] = &RunStatistics{}
		wg.Add(1)
		go func(run *RunStatistics, n int) {
			defer wg.Done()
			run.Start()
			for j := 0; j < n; j++ {
				run.EndPartition(time.Now().Add(-time.Millisecond), 10, 1)
			}
			run.Finish()
			total.Merge(run)
		}(runs[i], i+1)
	}
	wg.Wait()
	require.Equal(t, int64(3), total.GetNumRuns())
	require.Equal(t, int64(6), total.GetNumPartitionsProcessed())
	require.Equal(t, int64(60), total.GetNumRowsProcessed())
	require.Equal(t, int64(6), total.GetNumRowsProduced())
	require.True(t, total.GetCurrentPartitionProcessingTime() > 0)
	require.Contains(t, []time.Duration{runs[0].GetRuntime(), runs[1].GetRuntime(), runs[2].GetRuntime()}, total.GetRuntime())

	// each run only counts its own partitions
	require.Equal(t, int64(1), runs[0].GetNumPartitionsProcessed())
	require.Equal(t, int64(3), runs[2].GetNumPartitionsProcessed())
}
