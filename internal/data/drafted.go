package data

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"fantasy-draft/internal/model"
)

// DraftedSet holds cleaned names of players already taken.
type DraftedSet map[string]struct{}

func NewDraftedSet(names ...string) DraftedSet {
	s := DraftedSet{}
	for _, n := range names {
		if n = CleanName(n); n != "" {
			s[n] = struct{}{}
		}
	}
	return s
}

func (s DraftedSet) Contains(name string) bool {
	_, ok := s[CleanName(name)]
	return ok
}

// LoadDrafted reads a drafted list: one name per line, or a CSV whose first
// column is the name. Blank lines and lines starting with # are ignored.
func LoadDrafted(path string) (DraftedSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadDrafted(f, path)
}

func ReadDrafted(r io.Reader, source string) (DraftedSet, error) {
	s := DraftedSet{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		name := text
		if strings.ContainsAny(text, ",\"") {
			rec, err := csv.NewReader(strings.NewReader(text)).Read()
			if err != nil {
				return nil, &ParseError{Source: source, Line: line, Err: err}
			}
			name = rec[0]
		}
		if name = CleanName(name); name != "" {
			s[name] = struct{}{}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// ExcludeDrafted returns the records whose names are not in drafted. The
// input slice is left untouched.
func ExcludeDrafted(records []model.PlayerRecord, drafted DraftedSet) []model.PlayerRecord {
	if len(drafted) == 0 {
		return records
	}
	out := make([]model.PlayerRecord, 0, len(records))
	for _, r := range records {
		if drafted.Contains(r.Name) {
			continue
		}
		out = append(out, r)
	}
	return out
}
