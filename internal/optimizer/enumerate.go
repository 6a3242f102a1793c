package optimizer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// EnumerateSolver evaluates every count vector that satisfies the bounds and
// sums to the roster size, keeping the best.
//
// Vectors are partitioned by the first position's count and each partition is
// scanned by its own goroutine. Workers only read the Problem and write their
// own slot in results; the merge is a max-reduction in partition order, so
// among equal totals the lexicographically smallest vector wins.
type EnumerateSolver struct {
	// Workers caps concurrent partitions; <= 0 uses GOMAXPROCS.
	Workers int
}

func (s *EnumerateSolver) Name() string { return "enumerate" }

type partitionBest struct {
	counts []int
	value  float64
	found  bool
}

func (s *EnumerateSolver) Solve(ctx context.Context, pb *Problem) ([]int, error) {
	nPos := len(pb.Positions)
	if nPos == 0 {
		return nil, constraintErr("", ErrInvalidConstraint, "no positions configured")
	}

	// suffixMin[i]/suffixMax[i] bound the players positions i.. can still take.
	suffixMin := make([]int, nPos+1)
	suffixMax := make([]int, nPos+1)
	for i := nPos - 1; i >= 0; i-- {
		suffixMin[i] = suffixMin[i+1] + pb.minCount(i)
		suffixMax[i] = suffixMax[i+1] + pb.maxCount(i)
	}

	lo, hi := pb.minCount(0), pb.maxCount(0)
	if hi < lo {
		return nil, constraintErr(pb.Positions[0], ErrInfeasibleConstraints, "no usable count")
	}
	results := make([]partitionBest, hi-lo+1)

	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for first := lo; first <= hi; first++ {
		first := first
		g.Go(func() error {
			out := &results[first-lo]
			counts := make([]int, nPos)
			counts[0] = first
			return enumerateFrom(gctx, pb, counts, 1, pb.Total-first, suffixMin, suffixMax, out)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var best *partitionBest
	for i := range results {
		r := &results[i]
		if !r.found {
			continue
		}
		if best == nil || r.value > best.value {
			best = r
		}
	}
	if best == nil {
		return nil, constraintErr("", ErrInfeasibleConstraints, "no count split satisfies the position bounds and roster size %d", pb.Total)
	}
	return best.counts, nil
}

// enumerateFrom fills counts[i:] in ascending lexicographic order with
// remaining players left to place.
func enumerateFrom(ctx context.Context, pb *Problem, counts []int, i, remaining int, suffixMin, suffixMax []int, out *partitionBest) error {
	if remaining < suffixMin[i] || remaining > suffixMax[i] {
		return nil
	}
	if i == len(counts) {
		if err := ctx.Err(); err != nil {
			return err
		}
		v := pb.Value(counts)
		if !out.found || v > out.value {
			out.counts = append(out.counts[:0], counts...)
			out.value = v
			out.found = true
		}
		return nil
	}
	for c := pb.minCount(i); c <= pb.maxCount(i) && c <= remaining; c++ {
		counts[i] = c
		if err := enumerateFrom(ctx, pb, counts, i+1, remaining-c, suffixMin, suffixMax, out); err != nil {
			return err
		}
	}
	counts[i] = 0
	return nil
}
