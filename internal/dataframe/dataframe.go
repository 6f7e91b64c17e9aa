package dataframe

import (
	"fmt"
	"log"

	"github.com/go-sif/sift"
	uuid "github.com/gofrs/uuid"
)

// A dataFrameImpl implements DataFrame internally for Sift
type dataFrameImpl struct {
	id       string                // a unique identifier for this DataFrame
	parent   *dataFrameImpl        // the parent DataFrame. Nil if this is the root.
	task     sift.Task             // the task represented by this DataFrame, executed to produce the next one
	taskType sift.TaskType         // the type of task this DataFrame represents
	source   sift.DataSource       // the source of the data
	parser   sift.DataSourceParser // the parser for the source data
	schema   sift.Schema           // the schema of the data produced by this DataFrame's task
}

func createID() string {
	id, err := uuid.NewV4()
	if err != nil {
		log.Fatalf("failed to generate UUID for DataFrame: %v", err)
	}
	return id.String()
}

// CreateDataFrame is a factory for DataFrames. This function is not intended to be used directly,
// as DataFrames are returned by DataSource packages.
func CreateDataFrame(source sift.DataSource, parser sift.DataSourceParser, schema sift.Schema) sift.DataFrame {
	return &dataFrameImpl{
		id:       createID(),
		parent:   nil,
		task:     &noOpTask{},
		taskType: sift.ExtractTaskType,
		source:   source,
		parser:   parser,
		schema:   schema.Clone(),
	}
}

// ID returns a unique identifier for this DataFrame
func (df *dataFrameImpl) ID() string {
	return df.id
}

// GetSchema returns the Schema of a DataFrame
func (df *dataFrameImpl) GetSchema() sift.Schema {
	return df.schema
}

// GetDataSource returns the DataSource of a DataFrame
func (df *dataFrameImpl) GetDataSource() sift.DataSource {
	return df.source
}

// GetParser returns the DataSourceParser of a DataFrame
func (df *dataFrameImpl) GetParser() sift.DataSourceParser {
	return df.parser
}

// NumColumns returns the number of columns in this DataFrame
func (df *dataFrameImpl) NumColumns() int {
	return df.schema.NumColumns()
}

// ColumnNames returns the names of the columns in this DataFrame, in order
func (df *dataFrameImpl) ColumnNames() []string {
	return df.schema.ColumnNames()
}

// To is a "functional operations" factory method for DataFrames,
// chaining operations onto the current one(s).
func (df *dataFrameImpl) To(ops ...*sift.DataFrameOperation) (sift.DataFrame, error) {
	next := df
	// See https://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis for details of approach
	for i, op := range ops {
		if op == nil || op.Do == nil {
			return nil, fmt.Errorf("Operation %d is nil", i)
		}
		result, err := op.Do(next)
		if err != nil {
			return nil, err
		}
		schema := result.DataSchema
		if schema == nil {
			schema = next.schema
		}
		next = &dataFrameImpl{
			id:       createID(),
			parent:   next,
			task:     result.Task,
			taskType: op.TaskType,
			source:   df.source,
			parser:   df.parser,
			schema:   schema,
		}
	}
	return next, nil
}
