package transform

import (
	"github.com/go-sif/sift"
	"github.com/go-sif/sift/errors"
	"github.com/go-sif/sift/expr"
	iutil "github.com/go-sif/sift/internal/util"
	"github.com/go-sif/sift/schema"
)

type projectTask struct {
	schema sift.Schema
	fn     sift.ProjectionOperation
}

func (s *projectTask) RunWorker(previous sift.OperablePartition) ([]sift.OperablePartition, error) {
	return single(previous.ProjectRows(s.schema, s.fn))
}

// projection validates a list of outputs against a Schema, producing the Schema they define
func projection(in sift.Schema, outputs []expr.Expr) (sift.Schema, []string, error) {
	if len(outputs) == 0 {
		return nil, nil, errors.SchemaError{Reason: "a selection must contain at least one column"}
	}
	out := schema.CreateSchema()
	names := make([]string, len(outputs))
	for i, e := range outputs {
		if e == nil {
			return nil, nil, errors.SchemaError{Reason: "a selection cannot contain a nil expression"}
		}
		names[i] = expr.OutputName(e)
		colType, err := e.Type(in)
		if err != nil {
			return nil, nil, err
		}
		if colType == nil {
			return nil, nil, errors.SchemaError{Column: names[i], Reason: "cannot infer the type of a NULL expression"}
		}
		out, err = out.CreateColumn(names[i], colType)
		if err != nil {
			return nil, nil, err
		}
	}
	return out, names, nil
}

// Select produces a DataFrame consisting of exactly the given outputs, in order.
// An output may be a bare column reference (expr.Col) or a derived expression. Derived
// expressions are named with expr.Alias, or after their textual representation otherwise.
func Select(outputs ...expr.Expr) *sift.DataFrameOperation {
	return &sift.DataFrameOperation{
		TaskType: sift.ProjectTaskType,
		Do: func(d sift.DataFrame) (*sift.DataFrameOperationResult, error) {
			newSchema, names, err := projection(d.GetSchema(), outputs)
			if err != nil {
				return nil, err
			}
			return &sift.DataFrameOperationResult{
				Task: &projectTask{
					schema: newSchema,
					fn: iutil.SafeProjectionOperation(func(in sift.Row, out sift.Row) error {
						for i, e := range outputs {
							v, err := e.Eval(in)
							if err != nil {
								return err
							}
							if err = out.Set(names[i], v); err != nil {
								return err
							}
						}
						return nil
					}),
				},
				DataSchema: newSchema,
			}, nil
		},
	}
}

// SelectColumns is Select, for bare column references
func SelectColumns(colNames ...string) *sift.DataFrameOperation {
	outputs := make([]expr.Expr, len(colNames))
	for i, name := range colNames {
		outputs[i] = expr.Col(name)
	}
	return Select(outputs...)
}

// SelectSQL is Select, with the outputs expressed as a SQL select list (e.g. "id, age * 2 AS double_age")
func SelectSQL(selectList string) *sift.DataFrameOperation {
	outputs, err := expr.ParseProjection(selectList)
	if err != nil {
		return failed(sift.ProjectTaskType, err)
	}
	return Select(outputs...)
}

// deferred builds an operation whose outputs depend upon the incoming Schema
func deferred(fn func(in sift.Schema) ([]expr.Expr, error)) *sift.DataFrameOperation {
	return &sift.DataFrameOperation{
		TaskType: sift.ProjectTaskType,
		Do: func(d sift.DataFrame) (*sift.DataFrameOperationResult, error) {
			outputs, err := fn(d.GetSchema())
			if err != nil {
				return nil, err
			}
			return Select(outputs...).Do(d)
		},
	}
}

// DropColumn removes existing columns. Every named column must exist,
// and at least one column must remain.
func DropColumn(colNames ...string) *sift.DataFrameOperation {
	return deferred(func(in sift.Schema) ([]expr.Expr, error) {
		next := in
		for _, name := range colNames {
			var err error
			if next, err = next.RemoveColumn(name); err != nil {
				return nil, err
			}
		}
		outputs := []expr.Expr{}
		for _, name := range next.ColumnNames() {
			outputs = append(outputs, expr.Col(name))
		}
		return outputs, nil
	})
}

// WithColumn adds a derived column to the end of the Schema, or
// replaces the values of an existing column with the same name in place
func WithColumn(colName string, e expr.Expr) *sift.DataFrameOperation {
	return deferred(func(in sift.Schema) ([]expr.Expr, error) {
		outputs := []expr.Expr{}
		replaced := false
		for _, name := range in.ColumnNames() {
			if name == colName {
				outputs = append(outputs, expr.Alias(e, colName))
				replaced = true
			} else {
				outputs = append(outputs, expr.Col(name))
			}
		}
		if !replaced {
			outputs = append(outputs, expr.Alias(e, colName))
		}
		return outputs, nil
	})
}

// RenameColumn renames an existing column, retaining its position
func RenameColumn(oldName string, newName string) *sift.DataFrameOperation {
	return deferred(func(in sift.Schema) ([]expr.Expr, error) {
		if _, err := in.RenameColumn(oldName, newName); err != nil {
			return nil, err
		}
		outputs := []expr.Expr{}
		for _, name := range in.ColumnNames() {
			if name == oldName {
				outputs = append(outputs, expr.Alias(expr.Col(oldName), newName))
			} else {
				outputs = append(outputs, expr.Col(name))
			}
		}
		return outputs, nil
	})
}
