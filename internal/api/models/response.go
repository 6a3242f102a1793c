package models

import (
	"time"

	"fantasy-draft/internal/model"
)

// RosterResponse represents the result of a roster optimization
type RosterResponse struct {
	ID         string              `json:"id"`
	Status     string              `json:"status"`
	Cached     bool                `json:"cached"`
	CreatedAt  time.Time           `json:"created_at"`
	Solver     string              `json:"solver"`
	RosterSize int                 `json:"roster_size"`
	TotalValue float64             `json:"total_value"`
	Positions  []PositionSelection `json:"positions"`
}

// PositionSelection lists the players chosen at one position
type PositionSelection struct {
	Position string           `json:"position"`
	Count    int              `json:"count"`
	Value    float64          `json:"value"`
	Players  []SelectedPlayer `json:"players"`
}

// SelectedPlayer is one rostered player
type SelectedPlayer struct {
	Name    string             `json:"name"`
	Value   float64            `json:"value"`
	Seasons int                `json:"seasons"`
	Stats   *model.SeasonStats `json:"stats,omitempty"`
}

// RankResponse represents the response from ranking position pools
type RankResponse struct {
	Rankings []Ranking `json:"rankings"`
}

// Ranking summarizes one position pool
type Ranking struct {
	Rank         int            `json:"rank"`
	Position     string         `json:"position"`
	Count        int            `json:"count"`
	Min          float64        `json:"min"`
	Max          float64        `json:"max"`
	Mean         float64        `json:"mean"`
	P05          float64        `json:"p05"`
	P95          float64        `json:"p95"`
	SpreadP95P05 float64        `json:"spread_p95_p05"`
	Top          []RankedPlayer `json:"top"`
}

// RankedPlayer is one player in a position ranking
type RankedPlayer struct {
	Rank  int     `json:"rank"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ScoringInfo describes the scoring model and solvers
type ScoringInfo struct {
	StatKeys       []string                `json:"stat_keys"`
	DefaultWeights model.ScoringWeights    `json:"default_weights"`
	DefaultRoster  model.RosterConstraints `json:"default_roster"`
	Solvers        []SolverInfo            `json:"solvers"`
}

// SolverInfo describes a roster solver
type SolverInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Default     bool   `json:"default,omitempty"`
}

// LeagueInfo represents a league preset
type LeagueInfo struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	File        string                  `json:"file"`
	Solver      string                  `json:"solver"`
	Weights     model.ScoringWeights    `json:"weights"`
	Constraints model.RosterConstraints `json:"constraints"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
