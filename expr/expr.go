package expr

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-sif/sift"
	"github.com/go-sif/sift/errors"
)

// Expr is an expression which can be evaluated against a Row
type Expr interface {
	String() string                                   // String returns a SQL-like representation of this Expr, which is also used to name unlabelled outputs
	Columns() []string                                // Columns returns the names of all columns referenced by this Expr
	Type(schema sift.Schema) (sift.ColumnType, error) // Type validates this Expr against a Schema, and infers its result type. The type of a nil literal is nil.
	Eval(row sift.Row) (interface{}, error)           // Eval computes the value of this Expr for a Row
}

// A Named Expr carries its own output column name
type Named interface {
	Expr
	Name() string
}

// OutputName returns the name of the column produced by selecting an Expr
func OutputName(e Expr) string {
	if n, ok := e.(Named); ok {
		return n.Name()
	}
	return e.String()
}

type columnExpr struct {
	name string
}

// Col references the column with the given name
func Col(name string) Expr {
	return &columnExpr{name: name}
}

func (e *columnExpr) String() string {
	return e.name
}

func (e *columnExpr) Name() string {
	return e.name
}

func (e *columnExpr) Columns() []string {
	return []string{e.name}
}

func (e *columnExpr) Type(schema sift.Schema) (sift.ColumnType, error) {
	col, err := schema.GetOffset(e.name)
	if err != nil {
		return nil, err
	}
	return col.Type(), nil
}

func (e *columnExpr) Eval(row sift.Row) (interface{}, error) {
	return row.Get(e.name)
}

type literalExpr struct {
	value interface{}
	err   error
}

// Lit produces a constant value. Supported values are nil, bool, integers,
// floats, string, []byte and time.Time.
func Lit(value interface{}) Expr {
	v, err := normalize(value)
	return &literalExpr{value: v, err: err}
}

func (e *literalExpr) String() string {
	switch v := e.value.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return "'" + v.Format(time.RFC3339Nano) + "'"
	case []byte:
		return fmt.Sprintf("'\\x%x'", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (e *literalExpr) Columns() []string {
	return []string{}
}

func (e *literalExpr) Type(schema sift.Schema) (sift.ColumnType, error) {
	if e.err != nil {
		return nil, e.err
	}
	return typeOfKind(kindOfValue(e.value)), nil
}

func (e *literalExpr) Eval(row sift.Row) (interface{}, error) {
	return e.value, e.err
}

type aliasExpr struct {
	inner Expr
	name  string
}

// Alias labels the output of an Expr with a column name
func Alias(e Expr, name string) Expr {
	return &aliasExpr{inner: e, name: name}
}

func (e *aliasExpr) String() string {
	return e.name
}

func (e *aliasExpr) Name() string {
	return e.name
}

func (e *aliasExpr) Columns() []string {
	return e.inner.Columns()
}

func (e *aliasExpr) Type(schema sift.Schema) (sift.ColumnType, error) {
	if len(e.name) == 0 {
		return nil, errors.SchemaError{Column: e.name, Reason: "column names cannot be empty"}
	}
	return e.inner.Type(schema)
}

func (e *aliasExpr) Eval(row sift.Row) (interface{}, error) {
	return e.inner.Eval(row)
}

// ValidatePredicate confirms that an Expr can be used to filter Rows with the given Schema
func ValidatePredicate(pred Expr, schema sift.Schema) error {
	if pred == nil {
		return fmt.Errorf("Predicate cannot be nil")
	}
	t, err := pred.Type(schema)
	if err != nil {
		return err
	}
	if k := kindOf(t); k != kindBool && k != kindNull {
		return errors.IncompatibleTypeError{Column: pred.String(), Expected: "bool", Actual: t.Name()}
	}
	return nil
}

// EvalPredicate evaluates a predicate against a Row. A nil result is treated as false.
func EvalPredicate(pred Expr, row sift.Row) (bool, error) {
	v, err := pred.Eval(row)
	if err != nil {
		return false, err
	}
	b, isNull, err := asBool(v)
	if err != nil || isNull {
		return false, err
	}
	return b, nil
}

// mergeColumns combines column lists without duplicates, preserving order
func mergeColumns(exprs ...Expr) []string {
	seen := make(map[string]bool)
	result := []string{}
	for _, e := range exprs {
		for _, name := range e.Columns() {
			if !seen[name] {
				seen[name] = true
				result = append(result, name)
			}
		}
	}
	return result
}
