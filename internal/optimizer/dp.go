package optimizer

import (
	"context"
	"fmt"
)

// DPSolver is an exact dynamic program over (positions decided, slots used).
//
// best[p][k] is the highest value reachable when the first p positions hold k
// players in total; the transition tries every count in position p's usable
// range. Positions are coupled only through the shared total, so this is a
// grouped knapsack with unit weights.
type DPSolver struct{}

func (s *DPSolver) Name() string { return "dp" }

func (s *DPSolver) Solve(ctx context.Context, pb *Problem) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	nPos := len(pb.Positions)
	total := pb.Total
	negInf := -1e300

	best := make([][]float64, nPos+1)
	choice := make([][]int, nPos+1)
	for p := range best {
		best[p] = make([]float64, total+1)
		choice[p] = make([]int, total+1)
		for k := range best[p] {
			best[p][k] = negInf
			choice[p][k] = -1
		}
	}
	best[0][0] = 0

	for p := 0; p < nPos; p++ {
		lo, hi := pb.minCount(p), pb.maxCount(p)
		for k := 0; k <= total; k++ {
			if best[p][k] <= negInf/2 {
				continue
			}
			for c := lo; c <= hi && k+c <= total; c++ {
				v := best[p][k] + pb.Prefix[p][c]
				// Strict comparison keeps the first (smallest) count on ties.
				if v > best[p+1][k+c] {
					best[p+1][k+c] = v
					choice[p+1][k+c] = c
				}
			}
		}
	}

	if best[nPos][total] <= negInf/2 {
		return nil, constraintErr("", ErrInfeasibleConstraints, "no count split satisfies the position bounds and roster size %d", total)
	}

	// Walk the backpointers from the full roster down to the first position.
	counts := make([]int, nPos)
	k := total
	for p := nPos; p > 0; p-- {
		c := choice[p][k]
		if c < 0 {
			return nil, fmt.Errorf("dp reconstruction failed at position %s", pb.Positions[p-1])
		}
		counts[p-1] = c
		k -= c
	}
	return counts, nil
}
