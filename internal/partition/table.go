package partition

import (
	"sort"

	"github.com/go-sif/sift"
)

// tableImpl is Sift's internal implementation of LocalTable
type tableImpl struct {
	schema sift.Schema
	rows   [][]interface{}
}

// CreateLocalTable assembles a LocalTable from collected Partitions, ordered by Partition ordinal.
// All values are copied, so the resulting table shares no memory with the Partitions.
func CreateLocalTable(schema sift.Schema, parts []sift.Partition) sift.LocalTable {
	sorted := make([]sift.Partition, len(parts))
	copy(sorted, parts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Ordinal() < sorted[j].Ordinal()
	})
	numRows := 0
	for _, part := range sorted {
		numRows += part.GetNumRows()
	}
	table := &tableImpl{schema: schema.Clone(), rows: make([][]interface{}, 0, numRows)}
	for _, part := range sorted {
		for _, values := range rowValues(part) {
			table.rows = append(table.rows, copyValues(values))
		}
	}
	return table
}

// rowValues exposes the values of each row of a Partition, in Schema order
func rowValues(part sift.Partition) [][]interface{} {
	if p, ok := part.(*partitionImpl); ok {
		return p.rows
	}
	names := part.GetSchema().ColumnNames()
	rows := make([][]interface{}, part.GetNumRows())
	for i := range rows {
		row := part.GetRow(i)
		rows[i] = make([]interface{}, len(names))
		for j, name := range names {
			rows[i][j], _ = row.Get(name)
		}
	}
	return rows
}

// Schema returns the Schema of this LocalTable
func (t *tableImpl) Schema() sift.Schema {
	return t.schema
}

// NumRows returns the number of Rows in this LocalTable
func (t *tableImpl) NumRows() int {
	return len(t.rows)
}

// NumColumns returns the number of columns in this LocalTable
func (t *tableImpl) NumColumns() int {
	return t.schema.NumColumns()
}

// ColumnNames returns the names of the columns in this LocalTable, in order
func (t *tableImpl) ColumnNames() []string {
	return t.schema.ColumnNames()
}

// GetRow retrieves a specific Row. Modifying the returned Row does not modify the table.
func (t *tableImpl) GetRow(rowNum int) sift.Row {
	return &rowImpl{values: copyValues(t.rows[rowNum]), schema: t.schema}
}

// ForEachRow iterates over Rows in order, stopping at the first error
func (t *tableImpl) ForEachRow(fn sift.MapOperation) error {
	for i := range t.rows {
		if err := fn(t.GetRow(i)); err != nil {
			return err
		}
	}
	return nil
}

// Column returns a copy of all values in a particular column
func (t *tableImpl) Column(colName string) ([]interface{}, error) {
	offset, err := t.schema.GetOffset(colName)
	if err != nil {
		return nil, err
	}
	values := make([]interface{}, len(t.rows))
	for i, row := range t.rows {
		values[i] = copyValues(row[offset.Index():offset.Index()+1])[0]
	}
	return values, nil
}
