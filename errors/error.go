package errors

import (
	"fmt"
)

// NilValueError occurs when a value in a Row is null
type NilValueError struct{ Name string }

// Error returns a textual representation of this NilValueError
func (e NilValueError) Error() string {
	return fmt.Sprintf("Value for column %s is nil", e.Name)
}

// IncompatibleTypeError occurs when a value does not match the type of the column it is read from or stored in
type IncompatibleTypeError struct {
	Column   string
	Expected string
	Actual   string
}

// Error returns a textual representation of this IncompatibleTypeError
func (e IncompatibleTypeError) Error() string {
	if len(e.Column) == 0 {
		return fmt.Sprintf("Expected a value of type %s, got %s", e.Expected, e.Actual)
	}
	return fmt.Sprintf("Column %s expected a value of type %s, got %s", e.Column, e.Expected, e.Actual)
}

// PartitionFullError occurs when a Partition has reached its max size an a new Row insertion is attempted
type PartitionFullError struct{}

// Error returns a textual representation of this PartitionFullError
func (e PartitionFullError) Error() string {
	return "Partition is full"
}

// NoMorePartitionsError occurs when there are no more partitions in a PartitionIterator
type NoMorePartitionsError struct{}

// Error returns a textual representation of this NoMorePartitionsError
func (e NoMorePartitionsError) Error() string {
	return "No more partitions"
}

// SchemaError occurs when an operation references a column which is not present in a Schema
type SchemaError struct {
	Column string
	Reason string
}

// Error returns a textual representation of this SchemaError
func (e SchemaError) Error() string {
	if len(e.Reason) > 0 {
		return fmt.Sprintf("Schema error for column %q: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("Schema does not contain column with name %q", e.Column)
}

// DuplicateColumnError occurs when two columns of a Schema would share a name
type DuplicateColumnError struct{ Column string }

// Error returns a textual representation of this DuplicateColumnError
func (e DuplicateColumnError) Error() string {
	return fmt.Sprintf("Schema already contains column with name %q", e.Column)
}

// InvalidFractionError occurs when a sample fraction lies outside of (0,1]
type InvalidFractionError struct{ Fraction float64 }

// Error returns a textual representation of this InvalidFractionError
func (e InvalidFractionError) Error() string {
	return fmt.Sprintf("Sample fraction %v must be greater than 0 and at most 1", e.Fraction)
}

// CapacityExceededError occurs when materializing or coalescing data would exceed the configured memory threshold
type CapacityExceededError struct {
	Operation string
	Limit     int64
	Estimated int64
}

// Error returns a textual representation of this CapacityExceededError
func (e CapacityExceededError) Error() string {
	return fmt.Sprintf("%s would materialize at least %d bytes, exceeding the limit of %d bytes", e.Operation, e.Estimated, e.Limit)
}

// DestinationConflictError occurs when an export destination already exists and the export mode forbids replacing it
type DestinationConflictError struct{ Path string }

// Error returns a textual representation of this DestinationConflictError
func (e DestinationConflictError) Error() string {
	return fmt.Sprintf("Export destination %s already exists", e.Path)
}

// UnsupportedModeError occurs when an export mode cannot be used with a particular format or destination
type UnsupportedModeError struct {
	Mode   string
	Reason string
}

// Error returns a textual representation of this UnsupportedModeError
func (e UnsupportedModeError) Error() string {
	return fmt.Sprintf("Export mode %s is not supported: %s", e.Mode, e.Reason)
}

// UnsupportedFormatError occurs when an unknown export format or compression codec is requested
type UnsupportedFormatError struct{ Format string }

// Error returns a textual representation of this UnsupportedFormatError
func (e UnsupportedFormatError) Error() string {
	return fmt.Sprintf("Unsupported format %q", e.Format)
}

// SessionStoppedError occurs when a stopped Session is asked to run a DataFrame
type SessionStoppedError struct{}

// Error returns a textual representation of this SessionStoppedError
func (e SessionStoppedError) Error() string {
	return "Session has been stopped"
}

// IntegerOverflowError occurs when integer arithmetic would exceed the range of an int64
type IntegerOverflowError struct{ Operation string }

// Error returns a textual representation of this IntegerOverflowError
func (e IntegerOverflowError) Error() string {
	return fmt.Sprintf("Integer overflow evaluating %s", e.Operation)
}
