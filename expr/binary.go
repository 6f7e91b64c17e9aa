package expr

import (
	"fmt"
	"math"

	"github.com/go-sif/sift"
	"github.com/go-sif/sift/errors"
)

// BinaryOp represents binary operation types
type BinaryOp int

const (
	// OpEq tests for equality
	OpEq BinaryOp = iota
	// OpNeq tests for inequality
	OpNeq
	// OpGt tests whether the left operand is greater than the right operand
	OpGt
	// OpLt tests whether the left operand is less than the right operand
	OpLt
	// OpGte tests whether the left operand is greater than or equal to the right operand
	OpGte
	// OpLte tests whether the left operand is less than or equal to the right operand
	OpLte
	// OpAnd is logical conjunction
	OpAnd
	// OpOr is logical disjunction
	OpOr
	// OpAdd is numeric addition
	OpAdd
	// OpSub is numeric subtraction
	OpSub
	// OpMul is numeric multiplication
	OpMul
	// OpDiv is numeric division. Integer division truncates.
	OpDiv
)

func (op BinaryOp) String() string {
	switch op {
	case OpEq:
		return "="
	case OpNeq:
		return "!="
	case OpGt:
		return ">"
	case OpLt:
		return "<"
	case OpGte:
		return ">="
	case OpLte:
		return "<="
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "?"
	}
}

func (op BinaryOp) isComparison() bool {
	return op >= OpEq && op <= OpLte
}

func (op BinaryOp) isLogical() bool {
	return op == OpAnd || op == OpOr
}

// BinaryOpExpr applies a BinaryOp to two operands
type BinaryOpExpr struct {
	Left  Expr
	Op    BinaryOp
	Right Expr
}

// Eq tests whether two values are equal
func Eq(left Expr, right Expr) Expr { return &BinaryOpExpr{Left: left, Op: OpEq, Right: right} }

// Neq tests whether two values are not equal
func Neq(left Expr, right Expr) Expr { return &BinaryOpExpr{Left: left, Op: OpNeq, Right: right} }

// Gt tests whether left > right
func Gt(left Expr, right Expr) Expr { return &BinaryOpExpr{Left: left, Op: OpGt, Right: right} }

// Lt tests whether left < right
func Lt(left Expr, right Expr) Expr { return &BinaryOpExpr{Left: left, Op: OpLt, Right: right} }

// Gte tests whether left >= right
func Gte(left Expr, right Expr) Expr { return &BinaryOpExpr{Left: left, Op: OpGte, Right: right} }

// Lte tests whether left <= right
func Lte(left Expr, right Expr) Expr { return &BinaryOpExpr{Left: left, Op: OpLte, Right: right} }

// Add computes left + right
func Add(left Expr, right Expr) Expr { return &BinaryOpExpr{Left: left, Op: OpAdd, Right: right} }

// Sub computes left - right
func Sub(left Expr, right Expr) Expr { return &BinaryOpExpr{Left: left, Op: OpSub, Right: right} }

// Mul computes left * right
func Mul(left Expr, right Expr) Expr { return &BinaryOpExpr{Left: left, Op: OpMul, Right: right} }

// Div computes left / right
func Div(left Expr, right Expr) Expr { return &BinaryOpExpr{Left: left, Op: OpDiv, Right: right} }

// And is the conjunction of one or more predicates
func And(first Expr, rest ...Expr) Expr {
	result := first
	for _, e := range rest {
		result = &BinaryOpExpr{Left: result, Op: OpAnd, Right: e}
	}
	return result
}

// Or is the disjunction of one or more predicates
func Or(first Expr, rest ...Expr) Expr {
	result := first
	for _, e := range rest {
		result = &BinaryOpExpr{Left: result, Op: OpOr, Right: e}
	}
	return result
}

func (e *BinaryOpExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right)
}

// Columns returns the names of all columns referenced by either operand
func (e *BinaryOpExpr) Columns() []string {
	return mergeColumns(e.Left, e.Right)
}

// Type validates both operands, and infers the result type of this operation
func (e *BinaryOpExpr) Type(schema sift.Schema) (sift.ColumnType, error) {
	lt, err := e.Left.Type(schema)
	if err != nil {
		return nil, err
	}
	rt, err := e.Right.Type(schema)
	if err != nil {
		return nil, err
	}
	lk, rk := kindOf(lt), kindOf(rt)
	switch {
	case e.Op.isComparison():
		if !canCompare(lk, rk) {
			return nil, errors.IncompatibleTypeError{Column: e.String(), Expected: typeName(lt), Actual: typeName(rt)}
		}
		return &sift.BoolColumnType{}, nil
	case e.Op.isLogical():
		for _, t := range []sift.ColumnType{lt, rt} {
			if k := kindOf(t); k != kindBool && k != kindNull {
				return nil, errors.IncompatibleTypeError{Column: e.String(), Expected: "bool", Actual: typeName(t)}
			}
		}
		return &sift.BoolColumnType{}, nil
	default:
		for _, t := range []sift.ColumnType{lt, rt} {
			if k := kindOf(t); !k.isNumeric() && k != kindNull {
				return nil, errors.IncompatibleTypeError{Column: e.String(), Expected: "numeric", Actual: typeName(t)}
			}
		}
		if lk == kindFloat || rk == kindFloat {
			return &sift.Float64ColumnType{}, nil
		}
		return &sift.Int64ColumnType{}, nil
	}
}

// Eval computes the value of this operation for a Row
func (e *BinaryOpExpr) Eval(row sift.Row) (interface{}, error) {
	if e.Op.isLogical() {
		return e.evalLogical(row)
	}
	lv, err := e.Left.Eval(row)
	if err != nil {
		return nil, err
	}
	rv, err := e.Right.Eval(row)
	if err != nil {
		return nil, err
	}
	if lv == nil || rv == nil {
		return nil, nil
	}
	if e.Op.isComparison() {
		c, err := compareValues(lv, rv)
		if err != nil {
			return nil, err
		}
		switch e.Op {
		case OpEq:
			return c == 0, nil
		case OpNeq:
			return c != 0, nil
		case OpGt:
			return c > 0, nil
		case OpLt:
			return c < 0, nil
		case OpGte:
			return c >= 0, nil
		default:
			return c <= 0, nil
		}
	}
	return arithmetic(e.Op, lv, rv)
}

// evalLogical applies three-valued AND/OR logic, skipping the right operand where possible
func (e *BinaryOpExpr) evalLogical(row sift.Row) (interface{}, error) {
	decisive := e.Op == OpOr // true decides an OR, false decides an AND
	lv, err := e.Left.Eval(row)
	if err != nil {
		return nil, err
	}
	lb, lnull, err := asBool(lv)
	if err != nil {
		return nil, err
	}
	if !lnull && lb == decisive {
		return decisive, nil
	}
	rv, err := e.Right.Eval(row)
	if err != nil {
		return nil, err
	}
	rb, rnull, err := asBool(rv)
	if err != nil {
		return nil, err
	}
	if !rnull && rb == decisive {
		return decisive, nil
	}
	if lnull || rnull {
		return nil, nil
	}
	return !decisive, nil
}

// arithmetic applies a numeric BinaryOp to two non-nil values
func arithmetic(op BinaryOp, l interface{}, r interface{}) (interface{}, error) {
	l, err := normalize(l)
	if err != nil {
		return nil, err
	}
	r, err = normalize(r)
	if err != nil {
		return nil, err
	}
	li, lIsInt := l.(int64)
	ri, rIsInt := r.(int64)
	if lIsInt && rIsInt {
		return integerArithmetic(op, li, ri)
	}
	lf, err := asFloat(l)
	if err != nil {
		return nil, err
	}
	rf, err := asFloat(r)
	if err != nil {
		return nil, err
	}
	switch op {
	case OpAdd:
		return lf + rf, nil
	case OpSub:
		return lf - rf, nil
	case OpMul:
		return lf * rf, nil
	default:
		return lf / rf, nil
	}
}

// integerArithmetic applies a numeric BinaryOp to two int64s, failing instead of wrapping around
func integerArithmetic(op BinaryOp, l int64, r int64) (interface{}, error) {
	overflow := errors.IntegerOverflowError{Operation: fmt.Sprintf("%d %s %d", l, op, r)}
	switch op {
	case OpAdd:
		sum := l + r
		if (l^sum)&(r^sum) < 0 {
			return nil, overflow
		}
		return sum, nil
	case OpSub:
		diff := l - r
		if (l^r)&(l^diff) < 0 {
			return nil, overflow
		}
		return diff, nil
	case OpMul:
		product := l * r
		if l != 0 && (product/l != r || (l == -1 && r == math.MinInt64)) {
			return nil, overflow
		}
		return product, nil
	default:
		if r == 0 {
			return nil, fmt.Errorf("integer division by zero")
		}
		if l == math.MinInt64 && r == -1 {
			return nil, overflow
		}
		return l / r, nil
	}
}

func asFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, errors.IncompatibleTypeError{Expected: "numeric", Actual: fmt.Sprintf("%T", v)}
	}
}
