package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"fantasy-draft/internal/api/models"
	"fantasy-draft/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrUnknownLeague is returned by Lookup for an ID with no preset.
var ErrUnknownLeague = errors.New("unknown league")

// LeagueHandler serves the league presets in a directory
type LeagueHandler struct {
	leagueDir string
	logger    *logrus.Entry
}

// NewLeagueHandler creates a league handler reading presets from dir
func NewLeagueHandler(dir string) *LeagueHandler {
	// Convert to absolute path for reliability
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	logger := logrus.WithField("component", "league_handler")
	logger.WithField("league_dir", dir).Info("Using league directory")
	return &LeagueHandler{leagueDir: dir, logger: logger}
}

// ListLeagues handles GET /api/v1/leagues
func (h *LeagueHandler) ListLeagues(c *gin.Context) {
	leagues := []models.LeagueInfo{}

	loaded, err := h.load()
	if err != nil {
		if os.IsNotExist(err) {
			h.logger.WithField("league_dir", h.leagueDir).Warn("League directory does not exist")
			c.JSON(http.StatusOK, gin.H{"leagues": leagues})
			return
		}
		writeError(c, http.StatusInternalServerError, "LEAGUE_LOAD_ERROR", err.Error(), nil)
		return
	}

	for _, l := range loaded {
		name := l.Config.Name
		if name == "" {
			name = l.ID
		}
		leagues = append(leagues, models.LeagueInfo{
			ID:          l.ID,
			Name:        name,
			File:        l.Path,
			Solver:      l.Config.Solver,
			Weights:     l.Config.Weights(),
			Constraints: l.Config.Constraints(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"leagues": leagues})
}

// Lookup returns the preset with the given ID.
func (h *LeagueHandler) Lookup(id string) (*config.Config, error) {
	loaded, err := h.load()
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	l, ok := config.FindLeague(loaded, id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLeague, id)
	}
	return l.Config, nil
}

func (h *LeagueHandler) load() ([]config.League, error) {
	return config.LoadLeagueDir(h.leagueDir)
}
