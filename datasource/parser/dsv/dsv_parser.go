package dsv

import (
	"encoding/csv"
	"io"

	"github.com/go-sif/sift"
)

// ParserConf configures a DSV Parser
type ParserConf struct {
	PartitionSize int    // The maximum number of rows per Partition. Defaults to 128.
	HeaderLines   int    // The number of lines to ignore from the beginning of each file. Defaults to 0.
	Delimiter     rune   // The delimiter separating columns in the file. Defaults to ,
	Comment       rune   // Lines beginning with the comment character are ignored. Cannot be equal to the Delimiter. Defaults to no comment character.
	NilValue      string // A special string which represents nil values in the dataset. Empty values are always nil. Defaults to "" (the empty string).
	LazyQuotes    bool   // If true, a quote may appear in an unquoted field, and a non-doubled quote may appear in a quoted field
}

// Parser produces partitions from DSV data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new DSV Parser
func CreateParser(conf *ParserConf) *Parser {
	if conf.PartitionSize == 0 {
		conf.PartitionSize = 128
	}
	if conf.Delimiter == 0 {
		conf.Delimiter = ','
	}
	return &Parser{conf: conf}
}

// PartitionSize returns the maximum size in rows of Partitions produced by this Parser
func (p *Parser) PartitionSize() int {
	return p.conf.PartitionSize
}

// Parse parses DSV data to produce Partitions
func (p *Parser) Parse(r io.Reader, source sift.DataSource, schema sift.Schema, onIteratorEnd func()) (sift.PartitionIterator, error) {
	reader := csv.NewReader(r)
	reader.Comma = p.conf.Delimiter
	reader.Comment = p.conf.Comment
	reader.FieldsPerRecord = schema.NumColumns()
	reader.LazyQuotes = p.conf.LazyQuotes
	reader.ReuseRecord = true

	iterator := &dsvFilePartitionIterator{
		parser:       p,
		reader:       reader,
		hasNext:      true,
		source:       source,
		schema:       schema,
		endListeners: []func(){},
	}
	if onIteratorEnd != nil {
		iterator.OnEnd(onIteratorEnd)
	}
	// ignore header lines, if configured to do so
	for i := 0; i < p.conf.HeaderLines; i++ {
		if _, err := reader.Read(); err == io.EOF {
			iterator.end()
			break
		} else if err != nil {
			iterator.end()
			return nil, err
		}
	}
	return iterator, nil
}
