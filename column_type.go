package sift

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/go-sif/sift/errors"
)

// IsVariableLength returns true iff colType is a VarColumnType
func IsVariableLength(colType ColumnType) (isVariableLength bool) {
	_, isVariableLength = colType.(VarColumnType)
	return
}

// IsNumeric returns true iff colType holds integer or floating point values
func IsNumeric(colType ColumnType) bool {
	switch colType.(type) {
	case *Int32ColumnType, *Int64ColumnType, *Float64ColumnType:
		return true
	default:
		return false
	}
}

// ColumnType is an interface which is implemented to define supported fixed-width column types.
// Sift provides a variety of built-in types.
type ColumnType interface {
	Size() int                     // returns size in bytes of a column type
	ToString(v interface{}) string // produces a string representation of a value of this type
	Name() string                  // a short name for this type, used in error messages and file schemas
}

// VarColumnType is an interface which is implemented to define supported variable-length column types.
// Size() for VarColumnTypes should always return 0.
type VarColumnType interface {
	ColumnType
	EstimateSize(v interface{}) int // Estimates the in-memory size in bytes of a particular value
}

// BoolColumnType is a column type which stores a boolean value
type BoolColumnType struct{}

// Size in bytes of a BoolColumn
func (b *BoolColumnType) Size() int {
	return 1
}

// ToString produces a string representation of a value of a BoolColumnType value
func (b *BoolColumnType) ToString(v interface{}) string {
	return strconv.FormatBool(v.(bool))
}

// Name returns the name of this type
func (b *BoolColumnType) Name() string {
	return "bool"
}

// Int32ColumnType is a column type which stores an int32 value
type Int32ColumnType struct{}

// Size in bytes of an Int32Column
func (b *Int32ColumnType) Size() int {
	return 4
}

// ToString produces a string representation of a value of an Int32ColumnType value
func (b *Int32ColumnType) ToString(v interface{}) string {
	return strconv.FormatInt(int64(v.(int32)), 10)
}

// Name returns the name of this type
func (b *Int32ColumnType) Name() string {
	return "int32"
}

// Int64ColumnType is a column type which stores an int64 value
type Int64ColumnType struct{}

// Size in bytes of an Int64Column
func (b *Int64ColumnType) Size() int {
	return 8
}

// ToString produces a string representation of a value of an Int64ColumnType value
func (b *Int64ColumnType) ToString(v interface{}) string {
	return strconv.FormatInt(v.(int64), 10)
}

// Name returns the name of this type
func (b *Int64ColumnType) Name() string {
	return "int64"
}

// Float64ColumnType is a column type which stores a float64 value
type Float64ColumnType struct{}

// Size in bytes of a Float64Column
func (b *Float64ColumnType) Size() int {
	return 8
}

// ToString produces a string representation of a value of a Float64ColumnType value
func (b *Float64ColumnType) ToString(v interface{}) string {
	return strconv.FormatFloat(v.(float64), 'g', -1, 64)
}

// Name returns the name of this type
func (b *Float64ColumnType) Name() string {
	return "float64"
}

// TimeColumnType is a column type which stores a time.Time value.
// Format is used to parse and print values (defaults to time.RFC3339).
type TimeColumnType struct {
	Format string
}

// Size in bytes of a TimeColumn
func (b *TimeColumnType) Size() int {
	return 24
}

// ToString produces a string representation of a value of a TimeColumnType value
func (b *TimeColumnType) ToString(v interface{}) string {
	return v.(time.Time).Format(b.Layout())
}

// Name returns the name of this type
func (b *TimeColumnType) Name() string {
	return "time"
}

// Layout returns the configured Format, or time.RFC3339 if none was configured
func (b *TimeColumnType) Layout() string {
	if len(b.Format) == 0 {
		return time.RFC3339
	}
	return b.Format
}

// CoerceValue converts v into the canonical Go representation for colType
// (bool, int32, int64, float64, time.Time, string or []byte). nil values are passed through.
func CoerceValue(colType ColumnType, v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	switch colType.(type) {
	case *BoolColumnType:
		if bval, ok := v.(bool); ok {
			return bval, nil
		}
	case *Int32ColumnType:
		switch n := v.(type) {
		case int32:
			return n, nil
		case int:
			if n < math.MinInt32 || n > math.MaxInt32 {
				return nil, errors.IncompatibleTypeError{Expected: colType.Name(), Actual: fmt.Sprintf("out-of-range int %d", n)}
			}
			return int32(n), nil
		case int8:
			return int32(n), nil
		case int16:
			return int32(n), nil
		}
	case *Int64ColumnType:
		switch n := v.(type) {
		case int64:
			return n, nil
		case int:
			return int64(n), nil
		case int32:
			return int64(n), nil
		case int16:
			return int64(n), nil
		case int8:
			return int64(n), nil
		case uint32:
			return int64(n), nil
		}
	case *Float64ColumnType:
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int:
			return float64(n), nil
		case int32:
			return float64(n), nil
		case int64:
			return float64(n), nil
		}
	case *TimeColumnType:
		if tval, ok := v.(time.Time); ok {
			return tval, nil
		}
	case *VarStringColumnType:
		if sval, ok := v.(string); ok {
			return sval, nil
		}
	case *VarBytesColumnType:
		if bval, ok := v.([]byte); ok {
			cp := make([]byte, len(bval))
			copy(cp, bval)
			return cp, nil
		}
	default:
		return nil, fmt.Errorf("Unsupported column type %T", colType)
	}
	return nil, errors.IncompatibleTypeError{Expected: colType.Name(), Actual: fmt.Sprintf("%T", v)}
}

// EstimateValueSize estimates the number of bytes a value of colType occupies once materialized
func EstimateValueSize(colType ColumnType, v interface{}) int {
	if vct, ok := colType.(VarColumnType); ok {
		if v == nil {
			return 0
		}
		return vct.EstimateSize(v)
	}
	return colType.Size()
}
