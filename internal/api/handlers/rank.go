package handlers

import (
	"errors"
	"net/http"

	"fantasy-draft/internal/analysis"
	"fantasy-draft/internal/api/models"
	"fantasy-draft/internal/scoring"

	"github.com/gin-gonic/gin"
)

const defaultRankTop = 10

// RankHandler handles position ranking requests
type RankHandler struct {
	leagues LeagueLookup
}

// NewRankHandler creates a new rank handler
func NewRankHandler(leagues LeagueLookup) *RankHandler {
	return &RankHandler{leagues: leagues}
}

// RankPositions handles POST /api/v1/rank
func (h *RankHandler) RankPositions(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	lg, err := resolveLeague(h.leagues, req.League, req.Weights, nil, "")
	if err != nil {
		if errors.Is(err, ErrUnknownLeague) {
			writeError(c, http.StatusBadRequest, "UNKNOWN_LEAGUE", err.Error(), nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "LEAGUE_LOAD_ERROR", err.Error(), nil)
		return
	}
	if err := scoring.ValidateWeights(lg.weights); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_WEIGHTS", err.Error(), nil)
		return
	}

	candidates, err := buildCandidates(req.Players, req.Drafted)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	top := req.Top
	if top <= 0 {
		top = defaultRankTop
	}

	summaries := analysis.RankPositions(candidates, lg.weights, top)
	resp := models.RankResponse{Rankings: make([]models.Ranking, 0, len(summaries))}
	for i, s := range summaries {
		r := models.Ranking{
			Rank:         i + 1,
			Position:     string(s.Position),
			Count:        s.Count,
			Min:          s.Min,
			Max:          s.Max,
			Mean:         s.Mean,
			P05:          s.P05,
			P95:          s.P95,
			SpreadP95P05: s.SpreadP95P05,
			Top:          make([]models.RankedPlayer, 0, len(s.Top)),
		}
		for j, p := range s.Top {
			r.Top = append(r.Top, models.RankedPlayer{Rank: j + 1, Name: p.Name, Value: p.Value})
		}
		resp.Rankings = append(resp.Rankings, r)
	}
	c.JSON(http.StatusOK, resp)
}
