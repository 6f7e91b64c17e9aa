package expr

import (
	"fmt"
	"math"

	"github.com/go-sif/sift"
	"github.com/go-sif/sift/errors"
)

type notExpr struct {
	inner Expr
}

// Not negates a predicate. The negation of nil is nil.
func Not(e Expr) Expr {
	return &notExpr{inner: e}
}

func (e *notExpr) String() string {
	return fmt.Sprintf("(NOT %s)", e.inner)
}

func (e *notExpr) Columns() []string {
	return e.inner.Columns()
}

func (e *notExpr) Type(schema sift.Schema) (sift.ColumnType, error) {
	t, err := e.inner.Type(schema)
	if err != nil {
		return nil, err
	}
	if k := kindOf(t); k != kindBool && k != kindNull {
		return nil, errors.IncompatibleTypeError{Column: e.String(), Expected: "bool", Actual: typeName(t)}
	}
	return &sift.BoolColumnType{}, nil
}

func (e *notExpr) Eval(row sift.Row) (interface{}, error) {
	v, err := e.inner.Eval(row)
	if err != nil {
		return nil, err
	}
	b, isNull, err := asBool(v)
	if err != nil || isNull {
		return nil, err
	}
	return !b, nil
}

type absExpr struct {
	inner Expr
}

// Abs computes the absolute value of a numeric Expr
func Abs(e Expr) Expr {
	return &absExpr{inner: e}
}

func (e *absExpr) String() string {
	return fmt.Sprintf("abs(%s)", e.inner)
}

func (e *absExpr) Columns() []string {
	return e.inner.Columns()
}

func (e *absExpr) Type(schema sift.Schema) (sift.ColumnType, error) {
	t, err := e.inner.Type(schema)
	if err != nil {
		return nil, err
	}
	switch kindOf(t) {
	case kindInt, kindNull:
		return &sift.Int64ColumnType{}, nil
	case kindFloat:
		return &sift.Float64ColumnType{}, nil
	default:
		return nil, errors.IncompatibleTypeError{Column: e.String(), Expected: "numeric", Actual: typeName(t)}
	}
}

func (e *absExpr) Eval(row sift.Row) (interface{}, error) {
	v, err := e.inner.Eval(row)
	if err != nil || v == nil {
		return nil, err
	}
	v, err = normalize(v)
	if err != nil {
		return nil, err
	}
	switch n := v.(type) {
	case int64:
		if n == math.MinInt64 {
			return nil, errors.IntegerOverflowError{Operation: fmt.Sprintf("ABS(%d)", n)}
		}
		if n < 0 {
			return -n, nil
		}
		return n, nil
	case float64:
		return math.Abs(n), nil
	default:
		return nil, errors.IncompatibleTypeError{Expected: "numeric", Actual: fmt.Sprintf("%T", v)}
	}
}

type nullTestExpr struct {
	inner   Expr
	notNull bool
}

// IsNull tests whether an Expr evaluates to nil
func IsNull(e Expr) Expr {
	return &nullTestExpr{inner: e}
}

// IsNotNull tests whether an Expr evaluates to a non-nil value
func IsNotNull(e Expr) Expr {
	return &nullTestExpr{inner: e, notNull: true}
}

func (e *nullTestExpr) String() string {
	if e.notNull {
		return fmt.Sprintf("(%s IS NOT NULL)", e.inner)
	}
	return fmt.Sprintf("(%s IS NULL)", e.inner)
}

func (e *nullTestExpr) Columns() []string {
	return e.inner.Columns()
}

func (e *nullTestExpr) Type(schema sift.Schema) (sift.ColumnType, error) {
	if _, err := e.inner.Type(schema); err != nil {
		return nil, err
	}
	return &sift.BoolColumnType{}, nil
}

func (e *nullTestExpr) Eval(row sift.Row) (interface{}, error) {
	v, err := e.inner.Eval(row)
	if err != nil {
		return nil, err
	}
	return (v == nil) != e.notNull, nil
}
