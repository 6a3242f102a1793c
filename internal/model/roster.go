package model

import "sort"

// PositionBounds is the allowed selected-count range for one position.
type PositionBounds struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// RosterConstraints bounds a roster per position and in total.
// TotalRosterSize is an exact count, not a cap.
type RosterConstraints struct {
	Positions       map[Position]PositionBounds `json:"positions" yaml:"positions"`
	TotalRosterSize int                         `json:"total" yaml:"total"`
}

// DefaultRosterConstraints is a 16-man roster without kickers or defenses.
func DefaultRosterConstraints() RosterConstraints {
	return RosterConstraints{
		Positions: map[Position]PositionBounds{
			PositionQB: {Min: 1, Max: 3},
			PositionRB: {Min: 4, Max: 6},
			PositionWR: {Min: 4, Max: 7},
			PositionTE: {Min: 1, Max: 3},
		},
		TotalRosterSize: 16,
	}
}

// OrderedPositions returns the constrained positions, known positions first
// in display order, then any others alphabetically.
func (c RosterConstraints) OrderedPositions() []Position {
	out := make([]Position, 0, len(c.Positions))
	seen := map[Position]bool{}
	for _, p := range Positions {
		if _, ok := c.Positions[p]; ok {
			out = append(out, p)
			seen[p] = true
		}
	}
	var rest []Position
	for p := range c.Positions {
		if !seen[p] {
			rest = append(rest, p)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(out, rest...)
}

// MinSum is the sum of all per-position minimums.
func (c RosterConstraints) MinSum() int {
	n := 0
	for _, b := range c.Positions {
		n += b.Min
	}
	return n
}

// MaxSum is the sum of all per-position maximums.
func (c RosterConstraints) MaxSum() int {
	n := 0
	for _, b := range c.Positions {
		n += b.Max
	}
	return n
}

// SelectionResult is the chosen roster.
type SelectionResult struct {
	ByPosition map[Position][]ScoredPlayer `json:"by_position"`
	Counts     map[Position]int            `json:"counts"`
	TotalValue float64                     `json:"total_value"`
	Solver     string                      `json:"solver"`
}

// Size is the number of selected players across all positions.
func (r *SelectionResult) Size() int {
	n := 0
	for _, c := range r.Counts {
		n += c
	}
	return n
}

// Names returns the selected player names per position.
func (r *SelectionResult) Names() map[Position][]string {
	out := make(map[Position][]string, len(r.ByPosition))
	for p, players := range r.ByPosition {
		names := make([]string, len(players))
		for i, pl := range players {
			names[i] = pl.Name
		}
		out[p] = names
	}
	return out
}
