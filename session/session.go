// Package session runs DataFrames. A Session is created explicitly, configured with Options,
// and stopped when no longer needed:
//
//	s, err := session.CreateSession(&session.Options{NumWorkers: 4})
//	defer s.Stop()
//	table, err := s.Collect(ctx, df)
package session

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/dgraph-io/ristretto"
	"github.com/go-sif/sift"
	"github.com/go-sif/sift/datasink"
	fsink "github.com/go-sif/sift/datasink/file"
	"github.com/go-sif/sift/datasink/s3"
	"github.com/go-sif/sift/errors"
	"github.com/go-sif/sift/internal/dataframe"
	"github.com/go-sif/sift/internal/partition"
	"github.com/go-sif/sift/internal/stats"
	"github.com/go-sif/sift/logging"
	"github.com/go-sif/sift/operations/transform"
	"github.com/gofrs/uuid"
	"github.com/moby/locker"
)

// A Session materializes DataFrames, via Collect, Count and Export. A Session is safe for concurrent use,
// and must be stopped when it is no longer needed.
type Session struct {
	id      string
	opts    *Options
	logger  *logging.Logger
	stats   *stats.RunStatistics
	counts  *ristretto.Cache
	locks   *locker.Locker
	lock    sync.RWMutex
	stopped bool
	running sync.WaitGroup
	s3Once  sync.Once
	s3      s3.API
	s3Err   error
}

// CreateSession is a factory for Sessions
func CreateSession(opts *Options) (*Session, error) {
	if opts == nil {
		opts = &Options{}
	}
	opts = CloneOptions(opts)
	ensureDefaultOptionsValues(opts)
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	counts, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: opts.CountCacheSize * 10,
		MaxCost:     opts.CountCacheSize,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create count cache: %w", err)
	}
	s := &Session{
		id:     id.String(),
		opts:   opts,
		logger: logging.CreateLogger(opts.LogLevel, opts.Logger),
		stats:  &stats.RunStatistics{},
		counts: counts,
		locks:  locker.New(),
		s3:     opts.S3Client,
	}
	s.logger.Infof("Started session %s with %d worker(s)", s.id, opts.NumWorkers)
	return s, nil
}

// ID returns the unique identifier of this Session
func (s *Session) ID() string {
	return s.id
}

// Stats returns statistics about the materializations run by this Session
func (s *Session) Stats() sift.RuntimeStatistics {
	return s.stats
}

// Stop waits for running materializations to complete and releases the resources held by this Session.
// Any subsequent materialization fails with a SessionStoppedError.
func (s *Session) Stop() error {
	s.lock.Lock()
	if s.stopped {
		s.lock.Unlock()
		return errors.SessionStoppedError{}
	}
	s.stopped = true
	s.lock.Unlock()
	s.running.Wait()

	s.counts.Close()
	if s.stats.GetNumRuns() > 0 {
		s.logger.Debugf("Session %s ran %d materialization(s) over %d partition(s)", s.id, s.stats.GetNumRuns(), s.stats.GetNumPartitionsProcessed())
	}
	s.logger.Infof("Stopped session %s", s.id)
	return nil
}

// begin registers a running materialization, unless the Session has been stopped
func (s *Session) begin() error {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if s.stopped {
		return errors.SessionStoppedError{}
	}
	s.running.Add(1)
	return nil
}

// execute optimizes a DataFrame and runs the resulting Plan. Each run is tracked separately
// and folded into the Session's totals once it ends.
func (s *Session) execute(ctx context.Context, operation string, plan *dataframe.Plan, retain bool, onPartition func(sift.Partition) error) ([]sift.Partition, error) {
	run := &stats.RunStatistics{}
	defer s.stats.Merge(run)
	parts, err := dataframe.Execute(ctx, plan, &dataframe.ExecutorConfig{
		Operation:       operation,
		NumWorkers:      s.opts.NumWorkers,
		IgnoreRowErrors: s.opts.IgnoreRowErrors,
		Retain:          retain,
		MemoryLimit:     s.opts.MaxCollectBytes,
		OnPartition:     onPartition,
		Logger:          s.logger,
		Stats:           run,
	})
	if err != nil {
		s.logger.Debugf("%s failed after %s: %v", operation, run.GetRuntime(), err)
		return nil, err
	}
	s.logger.Debugf("%s finished in %s: %d row(s) read, %d row(s) produced", operation, run.GetRuntime(), run.GetNumRowsProcessed(), run.GetNumRowsProduced())
	return parts, nil
}

// Collect materializes a DataFrame into a LocalTable. If the estimated size of the table would exceed
// Options.MaxCollectBytes, execution is cancelled and a CapacityExceededError is returned instead.
func (s *Session) Collect(ctx context.Context, df sift.DataFrame) (sift.LocalTable, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.running.Done()
	if df.GetDataSource().IsStreaming() {
		return nil, fmt.Errorf("cannot collect DataFrame %s: its DataSource is streaming", df.ID())
	}
	plan, err := dataframe.Optimize(df)
	if err != nil {
		return nil, err
	}
	parts, err := s.execute(ctx, "collect", plan, true, nil)
	if err != nil {
		return nil, err
	}
	return partition.CreateLocalTable(plan.Schema(), parts), nil
}

// Count materializes a DataFrame, returning the number of Rows it produces. Counts of DataFrames
// over non-streaming DataSources are memoized.
func (s *Session) Count(ctx context.Context, df sift.DataFrame) (int64, error) {
	if err := s.begin(); err != nil {
		return 0, err
	}
	defer s.running.Done()
	cacheable := !df.GetDataSource().IsStreaming()
	if cacheable {
		if count, ok := s.counts.Get(df.ID()); ok {
			return count.(int64), nil
		}
	}
	plan, err := dataframe.Optimize(df)
	if err != nil {
		return 0, err
	}
	var count int64
	_, err = s.execute(ctx, "count", plan, false, func(part sift.Partition) error {
		count += int64(part.GetNumRows())
		return nil
	})
	if err != nil {
		return 0, err
	}
	if cacheable {
		s.counts.Set(df.ID(), count, 1)
	}
	return count, nil
}

// Export materializes a DataFrame into a single output at destination, which is either a local path or an
// s3://bucket/key URL. Rows are written in order, and the output only becomes visible once complete.
// Concurrent exports to the same destination within this Session are serialized.
func (s *Session) Export(ctx context.Context, df sift.DataFrame, destination string, opts *datasink.ExportOptions) (*datasink.ExportResult, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.running.Done()
	dest, err := s.createDestination(ctx, destination)
	if err != nil {
		return nil, err
	}
	s.locks.Lock(dest.Path())
	defer s.locks.Unlock(dest.Path())

	// a single output unit, written in ordinal order
	coalesced, err := df.To(transform.Coalesce())
	if err != nil {
		return nil, err
	}
	plan, err := dataframe.Optimize(coalesced)
	if err != nil {
		return nil, err
	}
	exporter, err := datasink.CreateExporter(ctx, dest, plan.Schema(), opts)
	if err != nil {
		return nil, err
	}
	if _, err = s.execute(ctx, "export", plan, false, exporter.WritePartition); err != nil {
		if aerr := exporter.Abort(); aerr != nil {
			s.logger.Warnf("Unable to discard staged export to %s: %v", dest.Path(), aerr)
		}
		return nil, err
	}
	result, err := exporter.Commit(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Infof("Exported %d row(s) (%d bytes) to %s", result.RowsWritten, result.BytesWritten, result.Path)
	return result, nil
}

// createDestination resolves an export destination path
func (s *Session) createDestination(ctx context.Context, destination string) (datasink.Destination, error) {
	if s3.IsS3Path(destination) {
		client, err := s.s3Client(ctx)
		if err != nil {
			return nil, err
		}
		return s3.CreateDestination(client, destination)
	}
	if destination == "" {
		return nil, fmt.Errorf("export destination must not be empty")
	}
	path, err := filepath.Abs(destination)
	if err != nil {
		return nil, err
	}
	return fsink.CreateDestination(path), nil
}

// s3Client returns the configured S3 client, creating one from Options.S3Config on first use
func (s *Session) s3Client(ctx context.Context) (s3.API, error) {
	s.s3Once.Do(func() {
		if s.s3 != nil {
			return
		}
		client, err := s3.CreateClient(ctx, s.opts.S3Config)
		if err != nil {
			s.s3Err = err
			return
		}
		s.s3 = client
	})
	return s.s3, s.s3Err
}
