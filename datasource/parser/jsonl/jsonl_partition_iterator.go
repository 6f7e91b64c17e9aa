package jsonl

import (
	"bufio"
	"fmt"
	"strings"
	"sync"

	"github.com/go-sif/sift"
	"github.com/go-sif/sift/datasource"
	"github.com/go-sif/sift/errors"
	"github.com/tidwall/gjson"
)

type jsonlFilePartitionIterator struct {
	parser       *Parser
	scanner      *bufio.Scanner
	hasNext      bool
	source       sift.DataSource
	schema       sift.Schema
	lock         sync.Mutex
	endListeners []func()
}

// OnEnd registers a listener which fires when this iterator runs out of Partitions
func (jsonli *jsonlFilePartitionIterator) OnEnd(onEnd func()) {
	jsonli.lock.Lock()
	defer jsonli.lock.Unlock()
	jsonli.endListeners = append(jsonli.endListeners, onEnd)
}

// HasNextPartition returns true iff this PartitionIterator can produce another Partition
func (jsonli *jsonlFilePartitionIterator) HasNextPartition() bool {
	jsonli.lock.Lock()
	defer jsonli.lock.Unlock()
	return jsonli.hasNext
}

func (jsonli *jsonlFilePartitionIterator) end() {
	jsonli.hasNext = false
	for _, l := range jsonli.endListeners {
		l()
	}
	jsonli.endListeners = []func(){}
}

// NextPartition returns the next Partition if one is available, or an error
func (jsonli *jsonlFilePartitionIterator) NextPartition() (sift.BuildablePartition, error) {
	jsonli.lock.Lock()
	defer jsonli.lock.Unlock()
	if !jsonli.hasNext {
		return nil, errors.NoMorePartitionsError{}
	}
	colNames := jsonli.schema.ColumnNames()
	colTypes := jsonli.schema.ColumnTypes()
	part := datasource.CreateBuildablePartition(jsonli.parser.PartitionSize(), jsonli.schema)
	for part.GetNumRows() < part.GetMaxRows() {
		if !jsonli.scanner.Scan() {
			jsonli.end()
			if err := jsonli.scanner.Err(); err != nil {
				return nil, err
			}
			return part, nil
		}
		rowString := jsonli.scanner.Text()
		if len(strings.TrimSpace(rowString)) == 0 {
			continue
		}
		if c := jsonli.parser.conf.Comment; c != 0 && strings.HasPrefix(rowString, string(c)) {
			continue
		}
		if !gjson.Valid(rowString) {
			jsonli.end()
			return nil, fmt.Errorf("Unable to parse line as JSON:\n\t%s", rowString)
		}
		values, err := ParseJSONRow(colNames, colTypes, gjson.Parse(rowString))
		if err != nil {
			jsonli.end()
			return nil, fmt.Errorf("Unable to parse line:\n\t%s\n%w", rowString, err)
		}
		if err = part.AppendRowValues(values); err != nil {
			jsonli.end()
			return nil, err
		}
	}
	return part, nil
}
