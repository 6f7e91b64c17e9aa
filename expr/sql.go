package expr

import (
	"fmt"
	"strconv"
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v6"
)

// ParseCondition parses a SQL boolean expression, such as
// "age > 60 AND name IS NOT NULL", into a predicate Expr
func ParseCondition(condition string) (Expr, error) {
	stmt, err := parseSelect("SELECT 1 WHERE " + condition)
	if err != nil {
		return nil, err
	}
	if stmt.WhereClause == nil {
		return nil, fmt.Errorf("no condition found in %q", condition)
	}
	return fromNode(stmt.WhereClause)
}

// ParseProjection parses a SQL select list, such as
// "id, age * 2 AS double_age", into a list of output Exprs
func ParseProjection(selectList string) ([]Expr, error) {
	stmt, err := parseSelect("SELECT " + selectList)
	if err != nil {
		return nil, err
	}
	outputs := make([]Expr, 0, len(stmt.TargetList))
	for _, target := range stmt.TargetList {
		resTarget := target.GetResTarget()
		if resTarget == nil {
			return nil, fmt.Errorf("unsupported select target in %q", selectList)
		}
		e, err := fromNode(resTarget.Val)
		if err != nil {
			return nil, err
		}
		if resTarget.Name != "" {
			e = Alias(e, resTarget.Name)
		}
		outputs = append(outputs, e)
	}
	return outputs, nil
}

// parseSelect parses a single SELECT statement without FROM, GROUP BY, ORDER BY or LIMIT clauses
func parseSelect(sql string) (*pg_query.SelectStmt, error) {
	result, err := pg_query.Parse(sql)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SQL: %w", err)
	}
	if len(result.Stmts) != 1 {
		return nil, fmt.Errorf("expected a single expression, found %d statements", len(result.Stmts))
	}
	stmt := result.Stmts[0].Stmt.GetSelectStmt()
	if stmt == nil {
		return nil, fmt.Errorf("unsupported statement type")
	}
	if len(stmt.FromClause) > 0 || len(stmt.GroupClause) > 0 || stmt.HavingClause != nil ||
		len(stmt.SortClause) > 0 || stmt.LimitCount != nil || stmt.LimitOffset != nil {
		return nil, fmt.Errorf("unsupported clause in expression")
	}
	return stmt, nil
}

func fromNodes(nodes []*pg_query.Node) ([]Expr, error) {
	exprs := make([]Expr, 0, len(nodes))
	for _, node := range nodes {
		e, err := fromNode(node)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return exprs, nil
}

// fromNode converts a node of a PostgreSQL parse tree into an Expr
func fromNode(node *pg_query.Node) (Expr, error) {
	if node == nil {
		return nil, fmt.Errorf("missing expression")
	}
	if columnRef := node.GetColumnRef(); columnRef != nil {
		// qualified names (t.col) refer to the last component
		last := columnRef.Fields[len(columnRef.Fields)-1]
		if last.GetAStar() != nil {
			return nil, fmt.Errorf("* is not supported in expressions")
		}
		return Col(last.GetString_().Sval), nil
	}
	if aConst := node.GetAConst(); aConst != nil {
		return fromConst(aConst)
	}
	if boolExpr := node.GetBoolExpr(); boolExpr != nil {
		args, err := fromNodes(boolExpr.Args)
		if err != nil {
			return nil, err
		}
		if len(args) == 0 {
			return nil, fmt.Errorf("boolean expression has no arguments")
		}
		switch boolExpr.Boolop {
		case pg_query.BoolExprType_AND_EXPR:
			return And(args[0], args[1:]...), nil
		case pg_query.BoolExprType_OR_EXPR:
			return Or(args[0], args[1:]...), nil
		case pg_query.BoolExprType_NOT_EXPR:
			return Not(args[0]), nil
		}
		return nil, fmt.Errorf("unsupported boolean operator %s", boolExpr.Boolop)
	}
	if aExpr := node.GetAExpr(); aExpr != nil {
		return fromAExpr(aExpr)
	}
	if nullTest := node.GetNullTest(); nullTest != nil {
		arg, err := fromNode(nullTest.Arg)
		if err != nil {
			return nil, err
		}
		if nullTest.Nulltesttype == pg_query.NullTestType_IS_NOT_NULL {
			return IsNotNull(arg), nil
		}
		return IsNull(arg), nil
	}
	if funcCall := node.GetFuncCall(); funcCall != nil {
		name := strings.ToLower(funcCall.Funcname[len(funcCall.Funcname)-1].GetString_().Sval)
		args, err := fromNodes(funcCall.Args)
		if err != nil {
			return nil, err
		}
		if name == "abs" && len(args) == 1 {
			return Abs(args[0]), nil
		}
		return nil, fmt.Errorf("unsupported function %s with %d argument(s)", name, len(args))
	}
	return nil, fmt.Errorf("unsupported expression: %s", node.String())
}

func fromConst(aConst *pg_query.A_Const) (Expr, error) {
	if aConst.Isnull {
		return Lit(nil), nil
	}
	if ival := aConst.GetIval(); ival != nil {
		return Lit(int64(ival.Ival)), nil
	} else if sval := aConst.GetSval(); sval != nil {
		return Lit(sval.Sval), nil
	} else if fval := aConst.GetFval(); fval != nil {
		// integers which overflow int32 are represented as Floats
		if i, err := strconv.ParseInt(fval.Fval, 10, 64); err == nil {
			return Lit(i), nil
		}
		f, err := strconv.ParseFloat(fval.Fval, 64)
		if err != nil {
			return nil, err
		}
		return Lit(f), nil
	} else if bval := aConst.GetBoolval(); bval != nil {
		return Lit(bval.Boolval), nil
	}
	return nil, fmt.Errorf("unsupported constant")
}

func fromAExpr(aExpr *pg_query.A_Expr) (Expr, error) {
	op := aExpr.Name[len(aExpr.Name)-1].GetString_().Sval
	switch aExpr.Kind {
	case pg_query.A_Expr_Kind_AEXPR_IN:
		left, err := fromNode(aExpr.Lexpr)
		if err != nil {
			return nil, err
		}
		list := aExpr.Rexpr.GetList()
		if list == nil || len(list.Items) == 0 {
			return nil, fmt.Errorf("IN requires a list of values")
		}
		values, err := fromNodes(list.Items)
		if err != nil {
			return nil, err
		}
		tests := make([]Expr, len(values))
		for i, v := range values {
			tests[i] = Eq(left, v)
		}
		result := Or(tests[0], tests[1:]...)
		if op == "<>" {
			return Not(result), nil
		}
		return result, nil
	case pg_query.A_Expr_Kind_AEXPR_BETWEEN, pg_query.A_Expr_Kind_AEXPR_NOT_BETWEEN:
		left, err := fromNode(aExpr.Lexpr)
		if err != nil {
			return nil, err
		}
		list := aExpr.Rexpr.GetList()
		if list == nil || len(list.Items) != 2 {
			return nil, fmt.Errorf("BETWEEN requires two bounds")
		}
		bounds, err := fromNodes(list.Items)
		if err != nil {
			return nil, err
		}
		result := And(Gte(left, bounds[0]), Lte(left, bounds[1]))
		if aExpr.Kind == pg_query.A_Expr_Kind_AEXPR_NOT_BETWEEN {
			return Not(result), nil
		}
		return result, nil
	case pg_query.A_Expr_Kind_AEXPR_OP:
	default:
		return nil, fmt.Errorf("unsupported operator expression %s", aExpr.Kind)
	}
	right, err := fromNode(aExpr.Rexpr)
	if err != nil {
		return nil, err
	}
	if aExpr.Lexpr == nil {
		// prefix operators
		switch op {
		case "-":
			return Sub(Lit(0), right), nil
		case "+":
			return right, nil
		}
		return nil, fmt.Errorf("unsupported prefix operator %s", op)
	}
	left, err := fromNode(aExpr.Lexpr)
	if err != nil {
		return nil, err
	}
	switch op {
	case "=":
		return Eq(left, right), nil
	case "<>", "!=":
		return Neq(left, right), nil
	case ">":
		return Gt(left, right), nil
	case "<":
		return Lt(left, right), nil
	case ">=":
		return Gte(left, right), nil
	case "<=":
		return Lte(left, right), nil
	case "+":
		return Add(left, right), nil
	case "-":
		return Sub(left, right), nil
	case "*":
		return Mul(left, right), nil
	case "/":
		return Div(left, right), nil
	}
	return nil, fmt.Errorf("unsupported operator %s", op)
}
