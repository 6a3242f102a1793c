package optimizer

import (
	"errors"
	"fmt"

	"fantasy-draft/internal/model"
)

var (
	// ErrInvalidConstraint marks malformed roster bounds (negative, min > max).
	ErrInvalidConstraint = errors.New("invalid roster constraint")

	// ErrInvalidWeights marks non-finite scoring coefficients.
	ErrInvalidWeights = errors.New("invalid scoring weights")

	// ErrInfeasibleConstraints means no 0/1 assignment satisfies every bound.
	ErrInfeasibleConstraints = errors.New("infeasible roster constraints")

	// ErrEmptyCandidatePool is the infeasible case where a position with a
	// positive minimum has no candidates at all.
	ErrEmptyCandidatePool = fmt.Errorf("empty candidate pool: %w", ErrInfeasibleConstraints)
)

// ConstraintError names the constraint that failed. Position is empty for
// roster-wide constraints.
type ConstraintError struct {
	Position model.Position
	Reason   string
	Err      error
}

func (e *ConstraintError) Error() string {
	if e.Position == "" {
		return fmt.Sprintf("%v: %s", e.Err, e.Reason)
	}
	return fmt.Sprintf("%v: %s: %s", e.Err, e.Position, e.Reason)
}

func (e *ConstraintError) Unwrap() error { return e.Err }

func constraintErr(pos model.Position, kind error, format string, args ...any) error {
	return &ConstraintError{Position: pos, Reason: fmt.Sprintf(format, args...), Err: kind}
}
