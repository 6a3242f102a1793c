package handlers

import (
	"net/http"

	"fantasy-draft/internal/api/models"
	"fantasy-draft/internal/model"
	"fantasy-draft/internal/optimizer"

	"github.com/gin-gonic/gin"
)

// ScoringHandler describes the scoring model
type ScoringHandler struct{}

// NewScoringHandler creates a new scoring handler
func NewScoringHandler() *ScoringHandler {
	return &ScoringHandler{}
}

var solverDescriptions = map[string]string{
	"dp":        "Exact dynamic program over positions and roster slots. Fast for any pool size.",
	"enumerate": "Exact parallel enumeration of every per-position count split that fills the roster.",
}

// GetScoring handles GET /api/v1/scoring
func (h *ScoringHandler) GetScoring(c *gin.Context) {
	info := models.ScoringInfo{
		StatKeys:       model.StatKeys,
		DefaultWeights: model.DefaultWeights(),
		DefaultRoster:  model.DefaultRosterConstraints(),
	}
	for _, name := range optimizer.SolverNames() {
		info.Solvers = append(info.Solvers, models.SolverInfo{
			Name:        name,
			Description: solverDescriptions[name],
			Default:     name == optimizer.DefaultSolver,
		})
	}
	c.JSON(http.StatusOK, info)
}
