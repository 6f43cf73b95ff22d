package domain

import (
	"fmt"
	"net/url"
	"strings"
)

type Tier string

const (
	TierIron        Tier = "IRON"
	TierBronze      Tier = "BRONZE"
	TierSilver      Tier = "SILVER"
	TierGold        Tier = "GOLD"
	TierPlatinum    Tier = "PLATINUM"
	TierEmerald     Tier = "EMERALD"
	TierDiamond     Tier = "DIAMOND"
	TierMaster      Tier = "MASTER"
	TierGrandmaster Tier = "GRANDMASTER"
	TierChallenger  Tier = "CHALLENGER"
	TierUnranked    Tier = "UNRANKED"
)

var knownTiers = map[Tier]struct{}{
	TierIron: {}, TierBronze: {}, TierSilver: {}, TierGold: {}, TierPlatinum: {}, TierEmerald: {},
	TierDiamond: {}, TierMaster: {}, TierGrandmaster: {}, TierChallenger: {}, TierUnranked: {},
}

// ParseTier is case-insensitive; anything unrecognised is UNRANKED.
func ParseTier(s string) Tier {
	t := Tier(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := knownTiers[t]; ok {
		return t
	}
	return TierUnranked
}

// IsApex reports tiers without divisions.
func (t Tier) IsApex() bool {
	return t == TierMaster || t == TierGrandmaster || t == TierChallenger
}

type Player struct {
	GameName      string
	TagLine       string
	Tier          Tier
	Rank          string // I-IV, empty for apex tiers
	LP            int
	WinRate       float64
	Wins          int
	Losses        int
	ProfileIconID string
	TopChampions  []string
	InitialLP     int // not displayed
}

// Key is the unique display key "gameName#tagLine".
func (p Player) Key() string {
	return fmt.Sprintf("%s#%s", p.GameName, p.TagLine)
}

// Division is the badge text, e.g. "GOLD II" or "CHALLENGER".
func (p Player) Division() string {
	if p.Rank == "" {
		return string(p.Tier)
	}
	return string(p.Tier) + " " + p.Rank
}

// ProfileURL is the external profile page for the player.
func (p Player) ProfileURL(region string) string {
	slug := strings.ReplaceAll(p.GameName+"-"+p.TagLine, "#", "-")
	return fmt.Sprintf("https://www.leagueofgraphs.com/summoner/%s/%s", url.PathEscape(region), url.PathEscape(slug))
}

type Draft struct {
	Name string
	Tag  string
}

// Complete reports whether both fields carry something other than whitespace.
func (d Draft) Complete() bool {
	return strings.TrimSpace(d.Name) != "" && strings.TrimSpace(d.Tag) != ""
}

type DraftPatch struct {
	Name *string
	Tag  *string
}

func (d Draft) Apply(p DraftPatch) Draft {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Tag != nil {
		d.Tag = *p.Tag
	}
	return d
}
