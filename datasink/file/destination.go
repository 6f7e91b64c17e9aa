// Package file commits exported data to the local filesystem. Data is staged in a hidden
// temporary file alongside the destination, and published with a rename (or, when the
// destination must not already exist, a hard link).
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-sif/sift/datasink"
	"github.com/go-sif/sift/errors"
	uuid "github.com/gofrs/uuid"
)

// Destination is a file on the local filesystem
type Destination struct {
	path string
}

// CreateDestination returns a Destination for the given path
func CreateDestination(path string) *Destination {
	return &Destination{path: filepath.Clean(path)}
}

// Path returns the path of this Destination
func (d *Destination) Path() string {
	return d.path
}

// Stat reports whether the destination file exists, and its size
func (d *Destination) Stat(ctx context.Context) (bool, int64, error) {
	if err := ctx.Err(); err != nil {
		return false, 0, err
	}
	info, err := os.Stat(d.path)
	if os.IsNotExist(err) {
		return false, 0, nil
	} else if err != nil {
		return false, 0, err
	}
	if info.IsDir() {
		return false, 0, fmt.Errorf("export destination %s is a directory", d.path)
	}
	return true, info.Size(), nil
}

// Stage creates a hidden temporary file in the destination's directory
func (d *Destination) Stage(ctx context.Context, keepExisting bool) (datasink.Staging, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir, base := filepath.Split(d.path)
	if len(dir) == 0 {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, id.String()))
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	s := &staging{dest: d, file: f, tmpPath: tmpPath}
	if keepExisting {
		if err := s.copyExisting(); err != nil {
			s.Abort()
			return nil, err
		}
	}
	return s, nil
}

type staging struct {
	dest    *Destination
	file    *os.File
	tmpPath string
	closed  bool
	tail    []byte
}

func (s *staging) copyExisting() error {
	existing, err := os.Open(s.dest.path)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return err
	}
	defer existing.Close()
	s.tail, err = datasink.CopyExisting(s.file, existing)
	return err
}

// Tail returns the final byte of the copied destination content, if any
func (s *staging) Tail() []byte {
	return s.tail
}

func (s *staging) Write(p []byte) (int, error) {
	return s.file.Write(p)
}

func (s *staging) close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.file.Close()
}

// Commit publishes the staged file. With ModeErrorIfExists, the file is hard-linked into place,
// which fails if the destination has been created in the meantime.
func (s *staging) Commit(ctx context.Context, mode datasink.ExportMode) error {
	if err := s.file.Sync(); err != nil {
		return err
	}
	if err := s.close(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if mode == datasink.ModeErrorIfExists {
		if err := os.Link(s.tmpPath, s.dest.path); err != nil {
			if os.IsExist(err) {
				return errors.DestinationConflictError{Path: s.dest.path}
			}
			return err
		}
		// the export is visible, so a leftover staging file is not a failure
		os.Remove(s.tmpPath)
		return nil
	}
	return os.Rename(s.tmpPath, s.dest.path)
}

// Abort removes the staged file
func (s *staging) Abort() error {
	s.close()
	if err := os.Remove(s.tmpPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
