package optimizer

import (
	"context"
	"fmt"
	"time"

	"fantasy-draft/internal/model"

	"github.com/sirupsen/logrus"
)

// Solver picks how many players each position gets. Given the counts, the
// best players per position are fixed by Problem's sorted pools.
type Solver interface {
	Name() string
	Solve(ctx context.Context, pb *Problem) ([]int, error)
}

const DefaultSolver = "dp"

// NewSolver returns the named solver; "" selects DefaultSolver.
func NewSolver(name string) (Solver, error) {
	switch name {
	case "", "dp":
		return &DPSolver{}, nil
	case "enumerate":
		return &EnumerateSolver{}, nil
	default:
		return nil, fmt.Errorf("unsupported solver: %q", name)
	}
}

// SolverNames lists the accepted solver names.
func SolverNames() []string {
	return []string{"dp", "enumerate"}
}

// Optimizer runs one solver over validated problems.
type Optimizer struct {
	solver Solver
	logger *logrus.Entry
}

// New wraps a solver; nil selects the DP solver.
func New(solver Solver) *Optimizer {
	if solver == nil {
		solver = &DPSolver{}
	}
	return &Optimizer{
		solver: solver,
		logger: logrus.WithField("component", "roster_optimizer"),
	}
}

// SelectRoster scores the candidates, validates the model and solves it.
// On error no partial selection is returned.
func (o *Optimizer) SelectRoster(ctx context.Context, candidates map[model.Position][]model.PlayerRecord, w model.ScoringWeights, c model.RosterConstraints) (*model.SelectionResult, error) {
	start := time.Now()

	pb, err := NewProblem(candidates, w, c)
	if err != nil {
		o.logger.WithError(err).Warn("Roster model rejected")
		return nil, err
	}

	o.logger.WithFields(logrus.Fields{
		"solver":      o.solver.Name(),
		"positions":   len(pb.Positions),
		"roster_size": pb.Total,
	}).Debug("Solving roster model")

	counts, err := o.solver.Solve(ctx, pb)
	if err != nil {
		return nil, err
	}
	if !pb.Feasible(counts) {
		return nil, fmt.Errorf("solver %s returned an infeasible count vector %v", o.solver.Name(), counts)
	}

	res := pb.Result(counts, o.solver.Name())
	o.logger.WithFields(logrus.Fields{
		"solver":      o.solver.Name(),
		"total_value": res.TotalValue,
		"selected":    res.Size(),
		"duration":    time.Since(start),
	}).Info("Roster optimization completed")
	return res, nil
}

// SelectRoster solves with the default solver.
func SelectRoster(candidates map[model.Position][]model.PlayerRecord, w model.ScoringWeights, c model.RosterConstraints) (*model.SelectionResult, error) {
	return New(nil).SelectRoster(context.Background(), candidates, w, c)
}
