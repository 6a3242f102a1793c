package models

import "fantasy-draft/internal/model"

// RosterRequest represents the request body for a roster optimization
type RosterRequest struct {
	// League selects a preset from LEAGUE_DIR; explicit weights and
	// constraints override it.
	League      string                   `json:"league,omitempty"`
	Players     []PlayerInput            `json:"players" binding:"required,min=1,dive"`
	Weights     *model.ScoringWeights    `json:"weights,omitempty"`
	Constraints *model.RosterConstraints `json:"constraints,omitempty"`
	Drafted     []string                 `json:"drafted,omitempty"`
	Solver      string                   `json:"solver,omitempty"` // "dp" (default) or "enumerate"
	Options     RosterOptions            `json:"options,omitempty"`
}

// PlayerInput is one candidate with per-season average statistics
type PlayerInput struct {
	Name     string            `json:"name" binding:"required"`
	Position string            `json:"position" binding:"required"`
	Seasons  int               `json:"seasons,omitempty"` // default: 1
	Stats    model.SeasonStats `json:"stats"`
}

// RosterOptions contains optional roster parameters
type RosterOptions struct {
	IncludeStats bool `json:"include_stats,omitempty"` // default: false
	NoCache      bool `json:"no_cache,omitempty"`
}

// RankRequest represents the request body for ranking position pools
type RankRequest struct {
	League  string                `json:"league,omitempty"`
	Players []PlayerInput         `json:"players" binding:"required,min=1,dive"`
	Weights *model.ScoringWeights `json:"weights,omitempty"`
	Drafted []string              `json:"drafted,omitempty"`
	Top     int                   `json:"top,omitempty"` // default: 10
}
