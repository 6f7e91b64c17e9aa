package dataframe

import (
	"sort"

	"github.com/go-sif/sift"
)

// sortPartitions orders Partitions by ordinal, in place
func sortPartitions(parts []sift.OperablePartition) {
	sort.SliceStable(parts, func(i, j int) bool {
		return parts[i].Ordinal() < parts[j].Ordinal()
	})
}

// toPartitions converts a slice of OperablePartitions into a slice of Partitions
func toPartitions(parts []sift.OperablePartition) []sift.Partition {
	result := make([]sift.Partition, len(parts))
	for i, part := range parts {
		result[i] = part
	}
	return result
}
