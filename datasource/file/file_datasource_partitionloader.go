package file

import (
	"fmt"
	"log"
	"os"

	"github.com/go-sif/sift"
)

// PartitionLoader is capable of loading partitions of data from a file
type PartitionLoader struct {
	path   string
	source *DataSource
}

// ToString returns a string representation of this PartitionLoader
func (pl *PartitionLoader) ToString() string {
	return fmt.Sprintf("File loader filename: %s", pl.path)
}

// Load opens a file and parses it lazily. The file is closed once the parser has consumed it.
func (pl *PartitionLoader) Load(parser sift.DataSourceParser, schema sift.Schema) (sift.PartitionIterator, error) {
	f, err := os.Open(pl.path)
	if err != nil {
		return nil, err
	}
	pi, err := parser.Parse(f, pl.source, schema, func() {
		if err := f.Close(); err != nil {
			log.Printf("[WARN] couldn't close file %s: %v", pl.path, err)
		}
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	return pi, nil
}
