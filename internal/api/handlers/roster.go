package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"fantasy-draft/internal/api/models"
	"fantasy-draft/internal/cache"
	"fantasy-draft/internal/config"
	"fantasy-draft/internal/metrics"
	"fantasy-draft/internal/model"
	"fantasy-draft/internal/optimizer"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LeagueLookup resolves a league preset by ID
type LeagueLookup interface {
	Lookup(id string) (*config.Config, error)
}

// RosterHandler handles roster optimization requests
type RosterHandler struct {
	leagues      LeagueLookup
	store        cache.Store
	metrics      *metrics.Recorder
	solveTimeout time.Duration
	maxPlayers   int
	logger       *logrus.Entry
}

// RosterOptions configures a RosterHandler
type RosterOptions struct {
	SolveTimeout time.Duration
	MaxPlayers   int
}

// NewRosterHandler creates a new roster handler
func NewRosterHandler(leagues LeagueLookup, store cache.Store, rec *metrics.Recorder, opts RosterOptions) *RosterHandler {
	return &RosterHandler{
		leagues:      leagues,
		store:        store,
		metrics:      rec,
		solveTimeout: opts.SolveTimeout,
		maxPlayers:   opts.MaxPlayers,
		logger:       logrus.WithField("component", "roster_handler"),
	}
}

// league holds the settings a request resolves to
type league struct {
	weights     model.ScoringWeights
	constraints model.RosterConstraints
	solver      string
}

// resolveLeague applies defaults, then the preset, then explicit overrides.
func resolveLeague(leagues LeagueLookup, id string, w *model.ScoringWeights, rc *model.RosterConstraints, solver string) (league, error) {
	out := league{
		weights:     model.DefaultWeights(),
		constraints: model.DefaultRosterConstraints(),
		solver:      optimizer.DefaultSolver,
	}
	if id != "" {
		if leagues == nil {
			return out, fmt.Errorf("%w: %q", ErrUnknownLeague, id)
		}
		cfg, err := leagues.Lookup(id)
		if err != nil {
			return out, err
		}
		out.weights = cfg.Weights()
		out.constraints = cfg.Constraints()
		if cfg.Solver != "" {
			out.solver = cfg.Solver
		}
	}
	if w != nil {
		out.weights = *w
	}
	if rc != nil {
		positions, err := normalizeConstraintPositions(rc.Positions)
		if err != nil {
			return out, err
		}
		out.constraints = model.RosterConstraints{Positions: positions, TotalRosterSize: rc.TotalRosterSize}
	}
	if solver != "" {
		out.solver = solver
	}
	return out, nil
}

// normalizeConstraintPositions maps request keys such as "qb" onto the
// positions candidates are grouped by.
func normalizeConstraintPositions(in map[model.Position]model.PositionBounds) (map[model.Position]model.PositionBounds, error) {
	out := make(map[model.Position]model.PositionBounds, len(in))
	for key, b := range in {
		pos, err := model.ParsePosition(string(key))
		if err != nil {
			return nil, &optimizer.ConstraintError{Position: key, Reason: err.Error(), Err: optimizer.ErrInvalidConstraint}
		}
		if _, dup := out[pos]; dup {
			return nil, &optimizer.ConstraintError{Position: pos, Reason: "bounds given more than once", Err: optimizer.ErrInvalidConstraint}
		}
		out[pos] = b
	}
	return out, nil
}

// CreateRoster handles POST /api/v1/roster
func (h *RosterHandler) CreateRoster(c *gin.Context) {
	var req models.RosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	if h.maxPlayers > 0 && len(req.Players) > h.maxPlayers {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST",
			fmt.Sprintf("too many players: %d (max %d)", len(req.Players), h.maxPlayers), nil)
		return
	}

	lg, err := resolveLeague(h.leagues, req.League, req.Weights, req.Constraints, req.Solver)
	if err != nil {
		if errors.Is(err, ErrUnknownLeague) {
			writeError(c, http.StatusBadRequest, "UNKNOWN_LEAGUE", err.Error(), nil)
			return
		}
		if errors.Is(err, optimizer.ErrInvalidConstraint) {
			writeOptimizationError(c, err)
			return
		}
		writeError(c, http.StatusInternalServerError, "LEAGUE_LOAD_ERROR", err.Error(), nil)
		return
	}

	solver, err := optimizer.NewSolver(lg.solver)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	candidates, err := buildCandidates(req.Players, req.Drafted)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	ctx := c.Request.Context()
	reqKey, keyErr := cache.RequestKey(candidates, lg.weights, lg.constraints, solver.Name())
	if keyErr != nil {
		h.logger.WithError(keyErr).Warn("Failed to derive request cache key")
	}
	if h.store != nil && keyErr == nil && !req.Options.NoCache {
		rec, err := h.store.Get(ctx, reqKey)
		switch {
		case err == nil:
			h.metrics.RecordCacheLookup("hit")
			c.JSON(http.StatusOK, buildRosterResponse(rec, true, req.Options.IncludeStats))
			return
		case errors.Is(err, cache.ErrNotFound):
			h.metrics.RecordCacheLookup("miss")
		default:
			h.metrics.RecordCacheLookup("error")
			h.logger.WithError(err).Warn("Roster cache lookup failed")
		}
	}

	if h.solveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.solveTimeout)
		defer cancel()
	}

	start := time.Now()
	result, err := optimizer.New(solver).SelectRoster(ctx, candidates, lg.weights, lg.constraints)
	if err != nil {
		code := writeOptimizationError(c, err)
		h.metrics.RecordSolve(solver.Name(), code, time.Since(start))
		return
	}
	h.metrics.RecordSolve(solver.Name(), "ok", time.Since(start))

	rec := &cache.Record{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Result:    result,
	}
	if h.store != nil {
		if err := h.store.Set(ctx, cache.IDKey(rec.ID), rec); err != nil {
			h.logger.WithError(err).Warn("Failed to cache roster result")
		} else if keyErr == nil {
			if err := h.store.Set(ctx, reqKey, rec); err != nil {
				h.logger.WithError(err).Warn("Failed to cache roster request key")
			}
		}
	}

	h.logger.WithFields(logrus.Fields{
		"roster_id":   rec.ID,
		"solver":      result.Solver,
		"total_value": result.TotalValue,
	}).Info("Roster created")
	c.JSON(http.StatusOK, buildRosterResponse(rec, false, req.Options.IncludeStats))
}

// GetRoster handles GET /api/v1/roster/:id
func (h *RosterHandler) GetRoster(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "id must be a UUID", nil)
		return
	}
	if h.store == nil {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "roster results are not stored", nil)
		return
	}

	rec, err := h.store.Get(c.Request.Context(), cache.IDKey(id))
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			h.metrics.RecordCacheLookup("miss")
			writeError(c, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("roster %s not found or expired", id), nil)
			return
		}
		h.metrics.RecordCacheLookup("error")
		writeError(c, http.StatusInternalServerError, "CACHE_ERROR", err.Error(), nil)
		return
	}
	h.metrics.RecordCacheLookup("hit")
	c.JSON(http.StatusOK, buildRosterResponse(rec, true, c.Query("include_stats") == "true"))
}

func buildRosterResponse(rec *cache.Record, cached, includeStats bool) models.RosterResponse {
	res := rec.Result
	out := models.RosterResponse{
		ID:         rec.ID,
		Status:     "completed",
		Cached:     cached,
		CreatedAt:  rec.CreatedAt,
		Solver:     res.Solver,
		RosterSize: res.Size(),
		TotalValue: res.TotalValue,
		Positions:  []models.PositionSelection{},
	}
	for _, pos := range orderedPositions(res.ByPosition) {
		players := res.ByPosition[pos]
		sel := models.PositionSelection{
			Position: string(pos),
			Count:    len(players),
			Players:  make([]models.SelectedPlayer, 0, len(players)),
		}
		for _, p := range players {
			sp := models.SelectedPlayer{Name: p.Name, Value: p.Value, Seasons: p.Seasons}
			if includeStats {
				stats := p.Stats
				sp.Stats = &stats
			}
			sel.Value += p.Value
			sel.Players = append(sel.Players, sp)
		}
		out.Positions = append(out.Positions, sel)
	}
	return out
}

func orderedPositions(byPos map[model.Position][]model.ScoredPlayer) []model.Position {
	rc := model.RosterConstraints{Positions: make(map[model.Position]model.PositionBounds, len(byPos))}
	for p := range byPos {
		rc.Positions[p] = model.PositionBounds{}
	}
	return rc.OrderedPositions()
}
