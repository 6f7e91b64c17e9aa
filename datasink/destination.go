package datasink

import (
	"context"
	"io"
)

// Destination is a location to which exported data is committed
type Destination interface {
	Path() string                                                  // Path identifies the destination, for locking and reporting
	Stat(ctx context.Context) (exists bool, size int64, err error) // Stat reports whether the destination exists, and its size in bytes
	Stage(ctx context.Context, keepExisting bool) (Staging, error) // Stage creates a private staging area. If keepExisting is set, the staging area begins with the destination's current content.
}

// Staging is a private area to which data is written before it is committed to a Destination
type Staging interface {
	io.Writer
	Commit(ctx context.Context, mode ExportMode) error // Commit atomically publishes the staged content. With ModeErrorIfExists, a destination created in the meantime produces a DestinationConflictError.
	Abort() error                                      // Abort discards the staged content
	Tail() []byte                                      // Tail returns the final byte of the existing content copied into the staging area, or nil if none was copied
}

// tailWriter remembers the final byte written through it
type tailWriter struct {
	w    io.Writer
	tail []byte
}

func (tw *tailWriter) Write(p []byte) (int, error) {
	n, err := tw.w.Write(p)
	if n > 0 {
		tw.tail = []byte{p[n-1]}
	}
	return n, err
}

// CopyExisting copies the existing content of a destination into a staging area,
// returning the final byte copied (nil if src was empty)
func CopyExisting(dst io.Writer, src io.Reader) ([]byte, error) {
	tw := &tailWriter{w: dst}
	_, err := io.Copy(tw, src)
	return tw.tail, err
}
