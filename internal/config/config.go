package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fantasy-draft/internal/data"
	"fantasy-draft/internal/model"
	"fantasy-draft/internal/optimizer"
	"fantasy-draft/internal/scoring"

	"gopkg.in/yaml.v3"
)

const DefaultStatDir = "Player_Statistics"

// Config is the on-disk league configuration (YAML).
type Config struct {
	// Optional: load a base league from a separate YAML (e.g. leagues/*.yaml).
	// Sections present in this file override the base.
	LeagueFile string `yaml:"league_file"`

	Name    string                   `yaml:"name"`
	Scoring *model.ScoringWeights    `yaml:"scoring"`
	Roster  *model.RosterConstraints `yaml:"roster"`
	Data    DataConfig               `yaml:"data"`
	Solver  string                   `yaml:"solver"`

	// dir is the directory of the loaded file; relative paths resolve there first.
	dir string
}

type DataConfig struct {
	StatDir     string `yaml:"stat_dir"`
	FirstSeason int    `yaml:"first_season"`
	LastSeason  int    `yaml:"last_season"`

	// PlayersFile is an aggregated players CSV used instead of season files.
	PlayersFile string `yaml:"players_file"`
	DraftedFile string `yaml:"drafted_file"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not default or validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.dir = filepath.Dir(path)

	if c.LeagueFile != "" {
		base, err := LoadLeagueFile(c.ResolvePath(c.LeagueFile))
		if err != nil {
			return nil, err
		}
		merged := MergeLeague(*base, *c)
		merged.dir = c.dir
		c = &merged
	}
	return c, nil
}

// Parse decodes a league document without touching the filesystem.
func Parse(raw []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadLeagueFile reads a base league. Bases do not chain: a league_file
// inside one is ignored.
func LoadLeagueFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("league file: %w", err)
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("league file %s: %w", path, err)
	}
	c.LeagueFile = ""
	return c, nil
}

// MergeLeague overlays override onto base. Scoring and roster sections
// replace the base section whole, since zero is a legitimate weight or bound;
// scalar fields override when non-zero.
func MergeLeague(base, override Config) Config {
	out := base
	out.LeagueFile = override.LeagueFile
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.Scoring != nil {
		w := *override.Scoring
		out.Scoring = &w
	}
	if override.Roster != nil {
		r := *override.Roster
		out.Roster = &r
	}
	if override.Solver != "" {
		out.Solver = override.Solver
	}
	if override.Data.StatDir != "" {
		out.Data.StatDir = override.Data.StatDir
	}
	if override.Data.FirstSeason != 0 {
		out.Data.FirstSeason = override.Data.FirstSeason
	}
	if override.Data.LastSeason != 0 {
		out.Data.LastSeason = override.Data.LastSeason
	}
	if override.Data.PlayersFile != "" {
		out.Data.PlayersFile = override.Data.PlayersFile
	}
	if override.Data.DraftedFile != "" {
		out.Data.DraftedFile = override.Data.DraftedFile
	}
	return out
}

// ApplyDefaults fills missing sections with the standard league.
func (c *Config) ApplyDefaults() {
	if c.Scoring == nil {
		w := model.DefaultWeights()
		c.Scoring = &w
	}
	if c.Roster == nil {
		r := model.DefaultRosterConstraints()
		c.Roster = &r
	} else {
		c.Roster.Positions = normalizePositions(c.Roster.Positions)
	}
	if c.Data.StatDir == "" {
		c.Data.StatDir = DefaultStatDir
	}
	// A single season when only one end of the range is given.
	if c.Data.FirstSeason == 0 {
		c.Data.FirstSeason = c.Data.LastSeason
	}
	if c.Data.LastSeason == 0 {
		c.Data.LastSeason = c.Data.FirstSeason
	}
	if c.Solver == "" {
		c.Solver = optimizer.DefaultSolver
	}
}

// normalizePositions upper-cases position keys so "qb" and "QB" agree.
func normalizePositions(in map[model.Position]model.PositionBounds) map[model.Position]model.PositionBounds {
	out := make(map[model.Position]model.PositionBounds, len(in))
	for p, b := range in {
		out[model.Position(strings.ToUpper(strings.TrimSpace(string(p))))] = b
	}
	return out
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Scoring == nil {
		return errors.New("scoring is required")
	}
	if err := scoring.ValidateWeights(*c.Scoring); err != nil {
		return fmt.Errorf("scoring invalid: %w", err)
	}
	if c.Roster == nil {
		return errors.New("roster is required")
	}
	if err := optimizer.ValidateConstraints(*c.Roster); err != nil {
		return fmt.Errorf("roster invalid: %w", err)
	}
	if _, err := optimizer.NewSolver(c.Solver); err != nil {
		return err
	}
	if c.Data.PlayersFile == "" {
		if c.Data.FirstSeason <= 0 || c.Data.LastSeason <= 0 {
			return errors.New("data.first_season/data.last_season or data.players_file is required")
		}
		if c.Data.FirstSeason > c.Data.LastSeason {
			return fmt.Errorf("data.first_season %d is after data.last_season %d", c.Data.FirstSeason, c.Data.LastSeason)
		}
	}
	return nil
}

// Weights returns the configured scoring, or the defaults when unset.
func (c *Config) Weights() model.ScoringWeights {
	if c.Scoring == nil {
		return model.DefaultWeights()
	}
	return *c.Scoring
}

// Constraints returns the configured roster, or the defaults when unset.
func (c *Config) Constraints() model.RosterConstraints {
	if c.Roster == nil {
		return model.DefaultRosterConstraints()
	}
	return *c.Roster
}

// SeasonFiles lists <stat_dir>/<year>.csv for every configured season,
// oldest first.
func (c *Config) SeasonFiles() []data.SeasonFile {
	if c.Data.FirstSeason <= 0 || c.Data.LastSeason < c.Data.FirstSeason {
		return nil
	}
	dir := c.ResolvePath(c.Data.StatDir)
	out := make([]data.SeasonFile, 0, c.Data.LastSeason-c.Data.FirstSeason+1)
	for y := c.Data.FirstSeason; y <= c.Data.LastSeason; y++ {
		out = append(out, data.SeasonFile{Year: y, Path: filepath.Join(dir, fmt.Sprintf("%d.csv", y))})
	}
	return out
}

// ResolvePath interprets a relative path against the config file directory,
// falling back to the path as given (relative to cwd) if that doesn't exist.
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	cand := filepath.Join(c.dir, p)
	if _, err := os.Stat(cand); err == nil {
		return cand
	}
	return p
}
