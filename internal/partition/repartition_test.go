package partition

import (
	"testing"

	"github.com/go-sif/sift"
	"github.com/stretchr/testify/require"
)

func TestRepartitionPreservesOrder(t *testing.T) {
	p1 := createTestPartition(t, 10, 3)
	p1.SetOrdinal(5)
	p2 := createTestPartition(t, 10, 4)
	p2.SetOrdinal(2)
	parts := Repartition([]sift.OperablePartition{p1, p2}, 3, p1.GetSchema())
	require.Len(t, parts, 3)
	ids := []int64{}
	for i, part := range parts {
		require.Equal(t, uint64(i), part.Ordinal())
		require.LessOrEqual(t, part.GetNumRows(), 3)
		for r := 0; r < part.GetNumRows(); r++ {
			id, err := part.GetRow(r).GetInt64("id")
			require.Nil(t, err)
			ids = append(ids, id)
		}
	}
	require.Equal(t, []int64{0, 1, 2, 3, 0, 1, 2}, ids)
}

func TestCoalesceEmpty(t *testing.T) {
	p1 := createTestPartition(t, 10, 0)
	parts := Repartition([]sift.OperablePartition{p1}, 1, p1.GetSchema())
	require.Len(t, parts, 1)
	require.Equal(t, 0, parts[0].GetNumRows())
}
