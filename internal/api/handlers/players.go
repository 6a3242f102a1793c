package handlers

import (
	"fmt"

	"fantasy-draft/internal/api/models"
	"fantasy-draft/internal/data"
	"fantasy-draft/internal/model"
)

// buildCandidates converts request players into records, drops drafted
// names and groups the rest by position.
func buildCandidates(players []models.PlayerInput, drafted []string) (map[model.Position][]model.PlayerRecord, error) {
	records := make([]model.PlayerRecord, 0, len(players))
	for i, p := range players {
		pos, err := model.ParsePosition(p.Position)
		if err != nil {
			return nil, fmt.Errorf("players[%d] (%s): %w", i, p.Name, err)
		}
		seasons := p.Seasons
		if seasons < 0 {
			return nil, fmt.Errorf("players[%d] (%s): seasons must be >= 0", i, p.Name)
		}
		if seasons == 0 {
			seasons = 1
		}
		records = append(records, model.PlayerRecord{
			Name:     data.CleanName(p.Name),
			Position: pos,
			Stats:    p.Stats,
			Seasons:  seasons,
		})
	}
	records = data.ExcludeDrafted(records, data.NewDraftedSet(drafted...))
	return model.GroupByPosition(records), nil
}
