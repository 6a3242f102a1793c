package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"fantasy-draft/internal/model"

	"github.com/sirupsen/logrus"
)

// Column indexes in the Pro-Football-Reference fantasy export.
const (
	colRank        = 0
	colName        = 1
	colPosition    = 3
	colPassYds     = 9
	colPassTDs     = 10
	colPassInts    = 11
	colRushYds     = 13
	colRushTDs     = 15
	colReceptions  = 17
	colRecYds      = 18
	colRecTDs      = 20
	colFumblesLost = 22

	minColumns = colFumblesLost + 1
)

// SeasonRow is one player's raw totals for one season.
type SeasonRow struct {
	Name     string
	Position model.Position
	Stats    model.SeasonStats
}

// Season is the parsed contents of one season file.
type Season struct {
	Year   int
	Source string
	Rows   []SeasonRow
}

// ParseError points at the offending line of a stats file.
type ParseError struct {
	Source string
	Line   int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Source, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LoadSeasonCSV reads one season export from disk.
func LoadSeasonCSV(path string, year int) (*Season, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := ReadSeasonCSV(f, path)
	if err != nil {
		return nil, err
	}
	return &Season{Year: year, Source: path, Rows: rows}, nil
}

// ReadSeasonCSV parses an export. The first line is a column-group banner and
// the second the real header; both are skipped, as are header rows repeated
// inside the table. Rows for positions outside the draft pool are dropped.
func ReadSeasonCSV(r io.Reader, source string) ([]SeasonRow, error) {
	log := logrus.WithFields(logrus.Fields{"component": "stats_loader", "source": source})

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []SeasonRow
	skipped := 0
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Source: source, Line: line, Err: err}
		}
		if line <= 2 || isHeaderRow(rec) {
			continue
		}
		if len(rec) < minColumns {
			return nil, &ParseError{Source: source, Line: line, Err: fmt.Errorf("expected at least %d columns, got %d", minColumns, len(rec))}
		}

		name := CleanName(rec[colName])
		pos, err := model.ParsePosition(rec[colPosition])
		if name == "" || err != nil {
			skipped++
			continue
		}

		stats, err := parseStats(rec)
		if err != nil {
			return nil, &ParseError{Source: source, Line: line, Err: err}
		}
		rows = append(rows, SeasonRow{Name: name, Position: pos, Stats: stats})
	}

	log.WithFields(logrus.Fields{"rows": len(rows), "skipped": skipped}).Debug("Season file parsed")
	return rows, nil
}

// CleanName strips the Pro Bowl (*) and All-Pro (+) markers and any trailing
// player id ("Name\ID") from an export name cell.
func CleanName(raw string) string {
	if i := strings.IndexByte(raw, '\\'); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.ReplaceAll(raw, "*", "")
	raw = strings.ReplaceAll(raw, "+", "")
	return strings.TrimSpace(raw)
}

func isHeaderRow(rec []string) bool {
	return len(rec) > colRank && strings.TrimSpace(rec[colRank]) == "Rk"
}

func parseStats(rec []string) (model.SeasonStats, error) {
	var s model.SeasonStats
	fields := []struct {
		col int
		dst *float64
	}{
		{colPassYds, &s.PassYds},
		{colPassTDs, &s.PassTDs},
		{colPassInts, &s.PassInts},
		{colRushYds, &s.RushYds},
		{colRushTDs, &s.RushTDs},
		{colReceptions, &s.Receptions},
		{colRecYds, &s.RecYds},
		{colRecTDs, &s.RecTDs},
		{colFumblesLost, &s.FumblesLost},
	}
	for _, f := range fields {
		v, err := parseNumber(rec[f.col])
		if err != nil {
			return model.SeasonStats{}, fmt.Errorf("column %d: %w", f.col, err)
		}
		*f.dst = v
	}
	return s, nil
}

// parseNumber treats an empty cell as zero. NaN and infinities are rejected.
func parseNumber(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite number %q", raw)
	}
	return v, nil
}
