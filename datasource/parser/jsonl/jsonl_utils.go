package jsonl

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/go-sif/sift"
	"github.com/go-sif/sift/errors"
	"github.com/tidwall/gjson"
)

func parseValue(val gjson.Result, colName string, colType sift.ColumnType) (interface{}, error) {
	switch ct := colType.(type) {
	case *sift.BoolColumnType:
		if val.Type != gjson.True && val.Type != gjson.False {
			return nil, fmt.Errorf("Column %s was not a boolean. Was: %s", colName, val.Raw)
		}
		return val.Bool(), nil
	case *sift.Int32ColumnType:
		if val.Type != gjson.Number {
			return nil, fmt.Errorf("Column %s was not a number. Was: %s", colName, val.Raw)
		}
		n, err := parseInt(val, colName, colType, 32)
		if err != nil {
			return nil, err
		}
		return int32(n), nil
	case *sift.Int64ColumnType:
		if val.Type != gjson.Number {
			return nil, fmt.Errorf("Column %s was not a number. Was: %s", colName, val.Raw)
		}
		return parseInt(val, colName, colType, 64)
	case *sift.Float64ColumnType:
		if val.Type != gjson.Number {
			return nil, fmt.Errorf("Column %s was not a number. Was: %s", colName, val.Raw)
		}
		return val.Float(), nil
	case *sift.TimeColumnType:
		if val.Type != gjson.String {
			return nil, fmt.Errorf("Column %s was not a string. Was: %s", colName, val.Raw)
		}
		tval, err := time.Parse(ct.Layout(), val.Str)
		if err != nil {
			return nil, fmt.Errorf("Column %s could not be parsed as datetime with format %s. Was: %#v", colName, ct.Layout(), val.Str)
		}
		return tval, nil
	case *sift.VarStringColumnType:
		switch val.Type {
		case gjson.String:
			return val.Str, nil
		case gjson.JSON:
			// nested objects and arrays are retained as raw JSON
			return val.Raw, nil
		default:
			return nil, fmt.Errorf("Column %s was not a string. Was: %s", colName, val.Raw)
		}
	case *sift.VarBytesColumnType:
		if val.Type != gjson.String {
			return nil, fmt.Errorf("Column %s was not a string. Was: %s", colName, val.Raw)
		}
		return []byte(val.Str), nil
	default:
		return nil, fmt.Errorf("JSONL parsing does not support column type %T", colType)
	}
}

// parseInt reads an integral JSON number which fits in bitSize bits. Fractional
// and out-of-range numbers are rejected rather than truncated.
func parseInt(val gjson.Result, colName string, colType sift.ColumnType, bitSize int) (int64, error) {
	if n, err := strconv.ParseInt(val.Raw, 10, bitSize); err == nil {
		return n, nil
	}
	// exponent forms such as 1e3
	limit := math.Ldexp(1, bitSize-1)
	if val.Num == math.Trunc(val.Num) && val.Num >= -limit && val.Num < limit {
		return int64(val.Num), nil
	}
	return 0, errors.IncompatibleTypeError{Column: colName, Expected: colType.Name(), Actual: val.Raw}
}

// ParseJSONRow extracts a Row's worth of values from a parsed JSON document. Each
// column name is treated as a gjson path. Missing and null values are nil.
func ParseJSONRow(names []string, colTypes []sift.ColumnType, rowJSON gjson.Result) ([]interface{}, error) {
	values := make([]interface{}, len(names))
	for i, colName := range names {
		val := rowJSON.Get(colName)
		if !val.Exists() || val.Type == gjson.Null {
			continue
		}
		v, err := parseValue(val, colName, colTypes[i])
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
