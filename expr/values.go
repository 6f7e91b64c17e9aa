package expr

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-sif/sift"
	"github.com/go-sif/sift/errors"
)

// kind groups column types which can be compared with one another
type kind int

const (
	kindNull kind = iota
	kindBool
	kindInt
	kindFloat
	kindString
	kindBytes
	kindTime
)

func (k kind) String() string {
	switch k {
	case kindBool:
		return "bool"
	case kindInt:
		return "int64"
	case kindFloat:
		return "float64"
	case kindString:
		return "string"
	case kindBytes:
		return "bytes"
	case kindTime:
		return "time"
	default:
		return "null"
	}
}

func (k kind) isNumeric() bool {
	return k == kindInt || k == kindFloat
}

func kindOf(colType sift.ColumnType) kind {
	switch colType.(type) {
	case *sift.BoolColumnType:
		return kindBool
	case *sift.Int32ColumnType, *sift.Int64ColumnType:
		return kindInt
	case *sift.Float64ColumnType:
		return kindFloat
	case *sift.VarStringColumnType:
		return kindString
	case *sift.VarBytesColumnType:
		return kindBytes
	case *sift.TimeColumnType:
		return kindTime
	default:
		return kindNull
	}
}

func kindOfValue(v interface{}) kind {
	switch v.(type) {
	case bool:
		return kindBool
	case int64:
		return kindInt
	case float64:
		return kindFloat
	case string:
		return kindString
	case []byte:
		return kindBytes
	case time.Time:
		return kindTime
	default:
		return kindNull
	}
}

func typeOfKind(k kind) sift.ColumnType {
	switch k {
	case kindBool:
		return &sift.BoolColumnType{}
	case kindInt:
		return &sift.Int64ColumnType{}
	case kindFloat:
		return &sift.Float64ColumnType{}
	case kindString:
		return &sift.VarStringColumnType{}
	case kindBytes:
		return &sift.VarBytesColumnType{}
	case kindTime:
		return &sift.TimeColumnType{}
	default:
		return nil
	}
}

func typeName(t sift.ColumnType) string {
	if t == nil {
		return "null"
	}
	return t.Name()
}

// normalize converts a value to the representation used during evaluation
func normalize(v interface{}) (interface{}, error) {
	switch n := v.(type) {
	case nil, bool, int64, float64, string, []byte, time.Time:
		return n, nil
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case float32:
		return float64(n), nil
	default:
		return nil, errors.IncompatibleTypeError{Expected: "bool, integer, float, string, bytes or time", Actual: fmt.Sprintf("%T", v)}
	}
}

// canCompare returns true iff values of kinds l and r can be compared
func canCompare(l kind, r kind) bool {
	return l == kindNull || r == kindNull || l == r || (l.isNumeric() && r.isNumeric())
}

func cmpInt(l int64, r int64) int {
	if l < r {
		return -1
	} else if l > r {
		return 1
	}
	return 0
}

func cmpFloat(l float64, r float64) int {
	if l < r {
		return -1
	} else if l > r {
		return 1
	}
	return 0
}

// compareValues compares two non-nil values
func compareValues(l interface{}, r interface{}) (int, error) {
	l, err := normalize(l)
	if err != nil {
		return 0, err
	}
	r, err = normalize(r)
	if err != nil {
		return 0, err
	}
	switch lv := l.(type) {
	case int64:
		switch rv := r.(type) {
		case int64:
			return cmpInt(lv, rv), nil
		case float64:
			return cmpFloat(float64(lv), rv), nil
		}
	case float64:
		switch rv := r.(type) {
		case int64:
			return cmpFloat(lv, float64(rv)), nil
		case float64:
			return cmpFloat(lv, rv), nil
		}
	case string:
		if rv, ok := r.(string); ok {
			return strings.Compare(lv, rv), nil
		}
	case bool:
		if rv, ok := r.(bool); ok {
			if lv == rv {
				return 0, nil
			} else if !lv {
				return -1, nil
			}
			return 1, nil
		}
	case []byte:
		if rv, ok := r.([]byte); ok {
			return bytes.Compare(lv, rv), nil
		}
	case time.Time:
		if rv, ok := r.(time.Time); ok {
			return lv.Compare(rv), nil
		}
	}
	return 0, errors.IncompatibleTypeError{Expected: kindOfValue(l).String(), Actual: kindOfValue(r).String()}
}

// asBool interprets a value as a SQL boolean
func asBool(v interface{}) (b bool, isNull bool, err error) {
	switch bv := v.(type) {
	case nil:
		return false, true, nil
	case bool:
		return bv, false, nil
	default:
		return false, false, errors.IncompatibleTypeError{Expected: "bool", Actual: fmt.Sprintf("%T", v)}
	}
}
