package dataframe

import (
	"github.com/go-sif/sift"
)

// Plan is an execution Plan for a DataFrame: a sequence of
// Stages separated by repartition barriers.
type Plan struct {
	stages       []*stageImpl
	parser       sift.DataSourceParser
	source       sift.DataSource
	sourceSchema sift.Schema
}

// Size returns the number of stages in this Plan
func (p *Plan) Size() int {
	return len(p.stages)
}

// Parser returns this Plan's DataSourceParser
func (p *Plan) Parser() sift.DataSourceParser {
	return p.parser
}

// Source returns this Plan's DataSource
func (p *Plan) Source() sift.DataSource {
	return p.source
}

// Schema returns the Schema of the data produced by this Plan
func (p *Plan) Schema() sift.Schema {
	return p.stages[len(p.stages)-1].outgoingSchema
}
