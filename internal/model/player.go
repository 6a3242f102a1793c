package model

import (
	"fmt"
	"strings"
)

// Position is a roster position category. Keep these values stable; they are
// used as CSV values, YAML keys and JSON keys.
type Position string

const (
	PositionQB Position = "QB"
	PositionRB Position = "RB"
	PositionWR Position = "WR"
	PositionTE Position = "TE"
)

// Positions lists the draftable positions in display order.
var Positions = []Position{PositionQB, PositionRB, PositionWR, PositionTE}

// ParsePosition normalizes a raw position label ("qb", " WR ").
// Kickers, defenses and anything else outside the draft pool are rejected.
func ParsePosition(s string) (Position, error) {
	p := Position(strings.ToUpper(strings.TrimSpace(s)))
	switch p {
	case PositionQB, PositionRB, PositionWR, PositionTE:
		return p, nil
	default:
		return "", fmt.Errorf("unsupported position %q", s)
	}
}

// SeasonStats holds the statistics the scoring formula consumes.
// On a PlayerRecord these are per-season averages, not raw totals.
type SeasonStats struct {
	PassYds     float64 `json:"pass_yds" yaml:"pass_yds"`
	PassTDs     float64 `json:"pass_tds" yaml:"pass_tds"`
	PassInts    float64 `json:"pass_ints" yaml:"pass_ints"`
	RushYds     float64 `json:"rush_yds" yaml:"rush_yds"`
	RushTDs     float64 `json:"rush_tds" yaml:"rush_tds"`
	RecYds      float64 `json:"rec_yds" yaml:"rec_yds"`
	RecTDs      float64 `json:"rec_tds" yaml:"rec_tds"`
	Receptions  float64 `json:"rec_receptions" yaml:"rec_receptions"`
	FumblesLost float64 `json:"fumbles_lost" yaml:"fumbles_lost"`
}

// Add returns the field-wise sum of s and o.
func (s SeasonStats) Add(o SeasonStats) SeasonStats {
	return SeasonStats{
		PassYds:     s.PassYds + o.PassYds,
		PassTDs:     s.PassTDs + o.PassTDs,
		PassInts:    s.PassInts + o.PassInts,
		RushYds:     s.RushYds + o.RushYds,
		RushTDs:     s.RushTDs + o.RushTDs,
		RecYds:      s.RecYds + o.RecYds,
		RecTDs:      s.RecTDs + o.RecTDs,
		Receptions:  s.Receptions + o.Receptions,
		FumblesLost: s.FumblesLost + o.FumblesLost,
	}
}

// Scale multiplies every field by f.
func (s SeasonStats) Scale(f float64) SeasonStats {
	return SeasonStats{
		PassYds:     s.PassYds * f,
		PassTDs:     s.PassTDs * f,
		PassInts:    s.PassInts * f,
		RushYds:     s.RushYds * f,
		RushTDs:     s.RushTDs * f,
		RecYds:      s.RecYds * f,
		RecTDs:      s.RecTDs * f,
		Receptions:  s.Receptions * f,
		FumblesLost: s.FumblesLost * f,
	}
}

// Vector returns the statistics in StatKeys order.
func (s SeasonStats) Vector() []float64 {
	return []float64{
		s.PassYds, s.PassTDs, s.PassInts,
		s.RushYds, s.RushTDs,
		s.RecYds, s.Receptions, s.RecTDs,
		s.FumblesLost,
	}
}

// PlayerRecord is one draft candidate. Built once per run and not mutated
// afterwards.
type PlayerRecord struct {
	Name     string      `json:"name"`
	Position Position    `json:"position"`
	Stats    SeasonStats `json:"stats"`

	// Seasons is the number of seasons the averages were computed over (>= 1).
	Seasons int `json:"seasons"`
}

// ScoredPlayer pairs a record with its fantasy value.
type ScoredPlayer struct {
	PlayerRecord
	Value float64 `json:"value"`
}

// GroupByPosition builds the position -> candidates lookup once.
func GroupByPosition(records []PlayerRecord) map[Position][]PlayerRecord {
	out := map[Position][]PlayerRecord{}
	for _, r := range records {
		out[r.Position] = append(out[r.Position], r)
	}
	return out
}
