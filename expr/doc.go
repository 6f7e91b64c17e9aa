// Package expr provides expressions over the columns of a Row: column
// references, literals, comparisons, boolean logic and arithmetic. They
// are used as Filter predicates and as derived columns in a Select.
//
// Expressions follow SQL semantics for nil values: comparisons and
// arithmetic involving nil produce nil, and a predicate which evaluates
// to nil does not retain its Row.
//
// Expressions may also be parsed from SQL text:
//
//	pred, err := expr.ParseCondition("age > 60 AND name IS NOT NULL")
//	cols, err := expr.ParseProjection("id, age * 2 AS double_age")
package expr
