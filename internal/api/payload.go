package api

import (
	"encoding/json"
	"fmt"
	"ranking-dashboard/internal/domain"
)

// flexID accepts identifiers sent either as JSON strings or numbers.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("identifier must be a string or a number: %w", err)
	}
	*f = flexID(n.String())
	return nil
}

type playerPayload struct {
	GameName      string   `json:"game_name"`
	TagLine       string   `json:"tag_line"`
	Tier          string   `json:"tier"`
	Rank          string   `json:"rank"`
	LP            int      `json:"lp"`
	WinRate       float64  `json:"win_rate"`
	Wins          int      `json:"wins"`
	Losses        int      `json:"losses"`
	ProfileIconID flexID   `json:"profile_icon_id"`
	TopChampions  []flexID `json:"top_champions"`
	InitialLP     int      `json:"initial_lp"`
}

type newPlayerPayload struct {
	GameName string `json:"game_name"`
	TagLine  string `json:"tag_line"`
}

// detailPayload is the error body shape of the ranking backend.
type detailPayload struct {
	Detail json.RawMessage `json:"detail"`
}

func (p playerPayload) toDomain() domain.Player {
	champions := make([]string, 0, len(p.TopChampions))
	for _, c := range p.TopChampions {
		if c != "" {
			champions = append(champions, string(c))
		}
	}

	return domain.Player{
		GameName:      p.GameName,
		TagLine:       p.TagLine,
		Tier:          domain.ParseTier(p.Tier),
		Rank:          p.Rank,
		LP:            p.LP,
		WinRate:       p.WinRate,
		Wins:          p.Wins,
		Losses:        p.Losses,
		ProfileIconID: string(p.ProfileIconID),
		TopChampions:  champions,
		InitialLP:     p.InitialLP,
	}
}
