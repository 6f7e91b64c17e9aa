package partition

import (
	"sort"

	"github.com/go-sif/sift"
)

// Repartition regroups the rows of a set of Partitions into at most numPartitions Partitions of
// roughly equal size. Rows keep their relative order (by Partition ordinal, then position), and
// the resulting Partitions are assigned ordinals 0..n-1.
func Repartition(parts []sift.OperablePartition, numPartitions int, schema sift.Schema) []sift.OperablePartition {
	if numPartitions < 1 {
		numPartitions = 1
	}
	sorted := make([]sift.OperablePartition, len(parts))
	copy(sorted, parts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Ordinal() < sorted[j].Ordinal()
	})
	total := 0
	for _, part := range sorted {
		total += part.GetNumRows()
	}
	perPartition := (total + numPartitions - 1) / numPartitions
	if perPartition == 0 {
		perPartition = 1
	}
	result := make([]sift.OperablePartition, 0, numPartitions)
	current := createPartitionImpl(perPartition, schema)
	for _, part := range sorted {
		for _, values := range rowValues(part) {
			if len(current.rows) >= perPartition {
				result = append(result, current)
				current = createPartitionImpl(perPartition, schema)
				current.ordinal = uint64(len(result))
			}
			current.appendRow(values)
		}
	}
	if len(current.rows) > 0 || len(result) == 0 {
		result = append(result, current)
	}
	return result
}
