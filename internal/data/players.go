package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"fantasy-draft/internal/model"
)

var playersHeader = []string{
	"name", "position", "seasons",
	"pass_yds", "pass_tds", "pass_ints",
	"rush_yds", "rush_tds",
	"rec_yds", "receptions", "rec_tds",
	"fumbles_lost",
}

// WritePlayersCSV writes aggregated records so later runs can skip the
// season files.
func WritePlayersCSV(path string, records []model.PlayerRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := EncodePlayersCSV(f, records); err != nil {
		return err
	}
	return f.Close()
}

func EncodePlayersCSV(out io.Writer, records []model.PlayerRecord) error {
	w := csv.NewWriter(out)
	if err := w.Write(playersHeader); err != nil {
		return err
	}
	for _, r := range records {
		s := r.Stats
		row := []string{
			r.Name,
			string(r.Position),
			strconv.Itoa(r.Seasons),
			fmtFloat(s.PassYds), fmtFloat(s.PassTDs), fmtFloat(s.PassInts),
			fmtFloat(s.RushYds), fmtFloat(s.RushTDs),
			fmtFloat(s.RecYds), fmtFloat(s.Receptions), fmtFloat(s.RecTDs),
			fmtFloat(s.FumblesLost),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// LoadPlayersCSV reads a file written by WritePlayersCSV.
func LoadPlayersCSV(path string) ([]model.PlayerRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodePlayersCSV(f, path)
}

func DecodePlayersCSV(in io.Reader, source string) ([]model.PlayerRecord, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = len(playersHeader)

	var out []model.PlayerRecord
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Source: source, Line: line, Err: err}
		}
		if line == 1 {
			continue
		}

		pos, err := model.ParsePosition(rec[1])
		if err != nil {
			return nil, &ParseError{Source: source, Line: line, Err: err}
		}
		seasons, err := strconv.Atoi(rec[2])
		if err != nil || seasons < 1 {
			return nil, &ParseError{Source: source, Line: line, Err: fmt.Errorf("invalid seasons %q", rec[2])}
		}

		vals := make([]float64, len(rec)-3)
		for i, raw := range rec[3:] {
			v, err := parseNumber(raw)
			if err != nil {
				return nil, &ParseError{Source: source, Line: line, Err: fmt.Errorf("%s: %w", playersHeader[i+3], err)}
			}
			vals[i] = v
		}
		out = append(out, model.PlayerRecord{
			Name:     rec[0],
			Position: pos,
			Seasons:  seasons,
			Stats: model.SeasonStats{
				PassYds: vals[0], PassTDs: vals[1], PassInts: vals[2],
				RushYds: vals[3], RushTDs: vals[4],
				RecYds: vals[5], Receptions: vals[6], RecTDs: vals[7],
				FumblesLost: vals[8],
			},
		})
	}
	return out, nil
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
