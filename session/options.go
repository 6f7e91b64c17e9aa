package session

import (
	"log"
	"runtime"

	"github.com/go-sif/sift/datasink/s3"
	"github.com/go-sif/sift/logging"
)

const defaultMaxCollectBytes = 512 * 1024 * 1024

// Options describes configuration for a Session
type Options struct {
	NumWorkers      int         // [default: GOMAXPROCS] The maximum number of Partitions processed concurrently
	IgnoreRowErrors bool        // [default: false] Rows which produce errors are logged and dropped, rather than failing the materialization
	MaxCollectBytes int64       // [default: 512MiB] The maximum estimated size of data materialized by Collect, or coalesced by Export
	LogLevel        int         // [default: logging.InfoLevel] The minimum level of log messages written by the Session
	Logger          *log.Logger // [default: stderr] The destination for log messages
	CountCacheSize  int64       // [default: 1024] The maximum number of memoized DataFrame row counts
	S3Client        s3.API      // [default: created from S3Config on first use] The client used for s3:// export destinations
	S3Config        s3.Config   // Configuration for the default S3 client
}

// CloneOptions is a helper function to clone Options
func CloneOptions(opts *Options) *Options {
	return &Options{
		NumWorkers:      opts.NumWorkers,
		IgnoreRowErrors: opts.IgnoreRowErrors,
		MaxCollectBytes: opts.MaxCollectBytes,
		LogLevel:        opts.LogLevel,
		Logger:          opts.Logger,
		CountCacheSize:  opts.CountCacheSize,
		S3Client:        opts.S3Client,
		S3Config:        opts.S3Config,
	}
}

// ensureDefaultOptionsValues fills zero-valued Options with defaults
func ensureDefaultOptionsValues(opts *Options) {
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = runtime.GOMAXPROCS(0)
	}
	if opts.MaxCollectBytes <= 0 {
		opts.MaxCollectBytes = defaultMaxCollectBytes
	}
	// zero is TraceLevel, which is almost never intended
	if opts.LogLevel <= logging.TraceLevel {
		opts.LogLevel = logging.InfoLevel
	}
	if opts.CountCacheSize <= 0 {
		opts.CountCacheSize = 1024
	}
}
