// Package siftest provides helpers for testing DataFrames
package siftest

import (
	"context"
	"io"
	"log"

	"github.com/go-sif/sift"
	"github.com/go-sif/sift/session"
	"github.com/hashicorp/go-multierror"
)

// LocalCollect runs a DataFrame in a temporary, quiet Session with a certain number of workers, and collects the result
func LocalCollect(ctx context.Context, frame sift.DataFrame, opts *session.Options, numWorkers int) (table sift.LocalTable, err error) {
	s, err := startSession(opts, numWorkers)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = stopSession(s, err)
	}()
	return s.Collect(ctx, frame)
}

// LocalCount runs a DataFrame in a temporary, quiet Session with a certain number of workers, and counts the result
func LocalCount(ctx context.Context, frame sift.DataFrame, opts *session.Options, numWorkers int) (count int64, err error) {
	s, err := startSession(opts, numWorkers)
	if err != nil {
		return 0, err
	}
	defer func() {
		err = stopSession(s, err)
	}()
	return s.Count(ctx, frame)
}

func startSession(opts *session.Options, numWorkers int) (*session.Session, error) {
	if opts == nil {
		opts = &session.Options{}
	}
	opts = session.CloneOptions(opts)
	opts.NumWorkers = numWorkers
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	return session.CreateSession(opts)
}

func stopSession(s *session.Session, err error) error {
	if serr := s.Stop(); serr != nil {
		return multierror.Append(err, serr)
	}
	return err
}
