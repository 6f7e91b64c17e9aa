package transform

import (
	"encoding/binary"
	"math"
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
	"github.com/go-sif/sift"
	"github.com/go-sif/sift/errors"
	iutil "github.com/go-sif/sift/internal/util"
)

type sampleTask struct {
	fraction        float64
	withReplacement bool
	seed            int64
}

// partitionSeed derives the PRNG seed for one Partition, so that results
// depend only on the sample seed and the Partition's position in the dataset
func partitionSeed(seed int64, ordinal uint64) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(seed))
	binary.LittleEndian.PutUint64(buf[8:], ordinal)
	return xxhash.Sum64(buf[:])
}

func (s *sampleTask) RunWorker(previous sift.OperablePartition) ([]sift.OperablePartition, error) {
	pseed := partitionSeed(s.seed, previous.Ordinal())
	rng := rand.New(rand.NewPCG(pseed, pseed^0x9e3779b97f4a7c15))
	var fn sift.SampleOperation
	if s.withReplacement {
		limit := math.Exp(-s.fraction)
		fn = func(row sift.Row) (int, error) {
			return poisson(rng, limit), nil
		}
	} else {
		fn = func(row sift.Row) (int, error) {
			if rng.Float64() < s.fraction {
				return 1, nil
			}
			return 0, nil
		}
	}
	return single(previous.SampleRows(iutil.SafeSampleOperation(fn)))
}

// poisson draws from a Poisson distribution with mean -ln(limit) (Knuth)
func poisson(rng *rand.Rand, limit float64) int {
	k := 0
	for p := rng.Float64(); p > limit; p *= rng.Float64() {
		k++
	}
	return k
}

// Sample retains a random subset of Rows. The size of the sample is approximately
// spec.Fraction times the number of Rows, which must lie in (0,1]. Without replacement,
// each Row is retained independently with probability spec.Fraction. With replacement,
// each Row is repeated a Poisson-distributed number of times with mean spec.Fraction.
func Sample(spec sift.SampleSpec) *sift.DataFrameOperation {
	return &sift.DataFrameOperation{
		TaskType: sift.SampleTaskType,
		Do: func(d sift.DataFrame) (*sift.DataFrameOperationResult, error) {
			if !(spec.Fraction > 0 && spec.Fraction <= 1) {
				return nil, errors.InvalidFractionError{Fraction: spec.Fraction}
			}
			var seed int64
			if spec.Seed != nil {
				seed = *spec.Seed
			} else {
				seed = rand.Int64()
			}
			return &sift.DataFrameOperationResult{
				Task: &sampleTask{
					fraction:        spec.Fraction,
					withReplacement: spec.WithReplacement,
					seed:            seed,
				},
				DataSchema: d.GetSchema(),
			}, nil
		},
	}
}
