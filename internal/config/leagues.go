package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// League is a preset loaded from a league directory.
type League struct {
	ID     string  `json:"id"`
	Path   string  `json:"path"`
	Config *Config `json:"-"`
}

// LoadLeagueDir reads every *.yaml / *.yml preset in dir, sorted by ID (the
// file name without extension). Presets get defaults applied but the data
// section is not required.
func LoadLeagueDir(dir string) ([]League, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []League
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		c, err := LoadUnchecked(path)
		if err != nil {
			return nil, err
		}
		c.ApplyDefaults()
		out = append(out, League{
			ID:     strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
			Path:   path,
			Config: c,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FindLeague returns the preset with the given ID.
func FindLeague(leagues []League, id string) (League, bool) {
	for _, l := range leagues {
		if l.ID == id {
			return l, true
		}
	}
	return League{}, false
}
