package report

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"fantasy-draft/internal/model"
)

var selectionHeader = []string{
	"position",
	"rank",
	"name",
	"value",
	"seasons",
	"pass_yds",
	"pass_tds",
	"pass_ints",
	"rush_yds",
	"rush_tds",
	"rec_yds",
	"receptions",
	"rec_tds",
	"fumbles_lost",
}

func WriteSelectionCSV(path string, res *model.SelectionResult, positions []model.Position) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := EncodeSelectionCSV(f, res, positions); err != nil {
		return err
	}
	return f.Close()
}

// EncodeSelectionCSV writes one row per selected player, grouped by position
// in the given order and ranked by value within each position.
func EncodeSelectionCSV(out io.Writer, res *model.SelectionResult, positions []model.Position) error {
	w := csv.NewWriter(out)
	if err := w.Write(selectionHeader); err != nil {
		return err
	}

	for _, pos := range orderPositions(res, positions) {
		for i, p := range res.ByPosition[pos] {
			s := p.Stats
			row := []string{
				string(pos),
				strconv.Itoa(i + 1),
				p.Name,
				fmtFloat(p.Value),
				strconv.Itoa(p.Seasons),
				fmtFloat(s.PassYds),
				fmtFloat(s.PassTDs),
				fmtFloat(s.PassInts),
				fmtFloat(s.RushYds),
				fmtFloat(s.RushTDs),
				fmtFloat(s.RecYds),
				fmtFloat(s.Receptions),
				fmtFloat(s.RecTDs),
				fmtFloat(s.FumblesLost),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
