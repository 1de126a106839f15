package overlay

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Alex-Aron/LeagueOverlay/internal/schema"
)

// Stats is what the overlay shows for the active player. It is derived from
// one snapshot and never stored back into it.
type Stats struct {
	RiotID       string               `json:"riotId"`
	Name         string               `json:"name"`
	Champion     string               `json:"champion"`
	Team         string               `json:"team"`
	Level        int                  `json:"level"`
	GameMode     string               `json:"gameMode"`
	GameTime     float64              `json:"gameTime"`
	CSPerMin     *float64             `json:"csPerMin,omitempty"`
	CurrentGold  float64              `json:"currentGold"`
	ItemGold     int                  `json:"itemGold"`
	TotalGold    float64              `json:"totalGold"`
	Kills        int                  `json:"kills"`
	Deaths       int                  `json:"deaths"`
	Assists      int                  `json:"assists"`
	CreepScore   int                  `json:"creepScore"`
	WardScore    float64              `json:"wardScore"`
	IsDead       bool                 `json:"isDead"`
	RespawnTimer float64              `json:"respawnTimer"`
	Champ        schema.ChampionStats `json:"championStats"`
}

// Compute joins the active player to its allPlayers entry by riot id. ok is
// false when there is no match, in which case nothing is derived.
func Compute(g *schema.GameInfo) (Stats, bool) {
	if g == nil {
		return Stats{}, false
	}
	self, ok := g.Self()
	if !ok {
		return Stats{}, false
	}

	active := g.ActivePlayer
	itemGold := self.ItemGold()
	s := Stats{
		RiotID:       active.RiotID,
		Name:         schema.DisplayName(active.RiotID),
		Champion:     self.ChampionName,
		Team:         self.Team,
		Level:        active.Level,
		GameMode:     g.GameData.GameMode,
		GameTime:     g.GameData.GameTime,
		CurrentGold:  active.CurrentGold,
		ItemGold:     itemGold,
		TotalGold:    active.CurrentGold + float64(itemGold),
		Kills:        self.Scores.Kills,
		Deaths:       self.Scores.Deaths,
		Assists:      self.Scores.Assists,
		CreepScore:   self.Scores.CreepScore,
		WardScore:    self.Scores.WardScore,
		IsDead:       self.IsDead,
		RespawnTimer: self.RespawnTimer,
		Champ:        active.ChampionStats,
	}
	if g.GameData.GameTime > 0 {
		cs := float64(self.Scores.CreepScore) / (g.GameData.GameTime / 60)
		s.CSPerMin = &cs
	}
	return s, true
}

// Summary renders a single status line, e.g.
// "Piltover Sheriff (Caitlyn) 6/2/4 | 7.1 cs/min | 5,800 gold".
func (s Stats) Summary() string {
	parts := []string{
		fmt.Sprintf("%s (%s) %d/%d/%d", s.Name, s.Champion, s.Kills, s.Deaths, s.Assists),
	}
	if s.CSPerMin != nil {
		parts = append(parts, fmt.Sprintf("%.1f cs/min", *s.CSPerMin))
	}
	parts = append(parts, humanize.Comma(int64(s.TotalGold))+" gold")
	if s.IsDead {
		parts = append(parts, fmt.Sprintf("respawn in %.0fs", s.RespawnTimer))
	}
	return strings.Join(parts, " | ")
}
