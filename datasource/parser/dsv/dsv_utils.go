package dsv

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-sif/sift"
)

// scanValue parses a single DSV field according to a column type
func scanValue(name string, colType sift.ColumnType, colVal string) (interface{}, error) {
	switch ct := colType.(type) {
	case *sift.BoolColumnType:
		return strconv.ParseBool(colVal)
	case *sift.Int32ColumnType:
		ival, err := strconv.ParseInt(colVal, 10, 32)
		if err != nil {
			return nil, err
		}
		return int32(ival), nil
	case *sift.Int64ColumnType:
		return strconv.ParseInt(colVal, 10, 64)
	case *sift.Float64ColumnType:
		return strconv.ParseFloat(colVal, 64)
	case *sift.TimeColumnType:
		tval, err := time.Parse(ct.Layout(), colVal)
		if err != nil {
			return nil, fmt.Errorf("Column %s could not be parsed as datetime with format %s. Was: %#v", name, ct.Layout(), colVal)
		}
		return tval, nil
	case *sift.VarStringColumnType:
		return colVal, nil
	case *sift.VarBytesColumnType:
		return []byte(colVal), nil
	default:
		return nil, fmt.Errorf("DSV parsing does not support column type %T", colType)
	}
}

// Parses a slice of strings into a Row's worth of values, according to a schema
func scanRow(conf *ParserConf, names []string, colTypes []sift.ColumnType, rowStrings []string) ([]interface{}, error) {
	values := make([]interface{}, len(rowStrings))
	for i, colVal := range rowStrings {
		// check for a nil value
		if len(colVal) == 0 || colVal == conf.NilValue {
			continue
		}
		v, err := scanValue(names[i], colTypes[i], colVal)
		if err != nil {
			return nil, fmt.Errorf("Column %s: %w", names[i], err)
		}
		values[i] = v
	}
	return values, nil
}
