package util

import (
	"fmt"
	"runtime"
	"strings"
)

// maxLoggedErrors bounds the number of row errors rendered by FormatMultiError
const maxLoggedErrors = 20

// GetTrace renders the calling goroutine's stack, omitting runtime frames
func GetTrace() string {
	var pc [16]uintptr
	var res strings.Builder
	frames := runtime.CallersFrames(pc[:runtime.Callers(3, pc[:])])
	for {
		frame, more := frames.Next()
		if !strings.HasPrefix(frame.Function, "runtime.") {
			fmt.Fprintf(&res, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return res.String()
}

// FormatMultiError formats row errors for logging, one per line. Long lists are truncated.
func FormatMultiError(merrs []error) string {
	var msg strings.Builder
	for i, err := range merrs {
		if i == maxLoggedErrors {
			fmt.Fprintf(&msg, "... and %d more\n", len(merrs)-i)
			break
		}
		fmt.Fprintf(&msg, "%+v\n", err)
	}
	return msg.String()
}
