package model

// StatKeys names the scored statistics, in the order used by
// SeasonStats.Vector and ScoringWeights.Vector.
var StatKeys = []string{
	"pass_yd", "pass_td", "pass_int",
	"rush_yd", "rush_td",
	"rec_yd", "reception", "rec_td",
	"fumble",
}

// ScoringWeights are the per-statistic coefficients of a league's scoring rules.
// Units: points per yard, per touchdown, per interception, per reception,
// per fumble lost.
type ScoringWeights struct {
	PassYd    float64 `json:"pass_yd" yaml:"pass_yd"`
	PassTD    float64 `json:"pass_td" yaml:"pass_td"`
	PassInt   float64 `json:"pass_int" yaml:"pass_int"`
	RushYd    float64 `json:"rush_yd" yaml:"rush_yd"`
	RushTD    float64 `json:"rush_td" yaml:"rush_td"`
	RecYd     float64 `json:"rec_yd" yaml:"rec_yd"`
	Reception float64 `json:"reception" yaml:"reception"`
	RecTD     float64 `json:"rec_td" yaml:"rec_td"`
	Fumble    float64 `json:"fumble" yaml:"fumble"`
}

// DefaultWeights is the standard point-per-reception rule set.
func DefaultWeights() ScoringWeights {
	return ScoringWeights{
		PassYd:    0.05,
		PassTD:    4,
		PassInt:   -2,
		RushYd:    0.1,
		RushTD:    6,
		RecYd:     0.1,
		Reception: 1,
		RecTD:     6,
		Fumble:    -2,
	}
}

// Vector returns the coefficients in StatKeys order.
func (w ScoringWeights) Vector() []float64 {
	return []float64{
		w.PassYd, w.PassTD, w.PassInt,
		w.RushYd, w.RushTD,
		w.RecYd, w.Reception, w.RecTD,
		w.Fumble,
	}
}

// IsZero reports whether no coefficient is set.
func (w ScoringWeights) IsZero() bool {
	return w == ScoringWeights{}
}
