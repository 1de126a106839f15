// Package schema mirrors the JSON documents served by the League of Legends
// Live Client Data API. A json tag without omitempty marks a field the API is
// expected to always send; liveclient treats its absence as a decode error.
package schema

import "strings"

// GameData is the session metadata returned by /gamestats and embedded in
// every full snapshot. The map fields are nil when the client leaves them out,
// so an explicit zero survives re-encoding.
type GameData struct {
	GameMode   string  `json:"gameMode"`
	GameTime   float64 `json:"gameTime"`
	MapName    *string `json:"mapName,omitempty"`
	MapNumber  *int    `json:"mapNumber,omitempty"`
	MapTerrain *string `json:"mapTerrain,omitempty"`
}

// GameInfo is one full /allgamedata snapshot.
type GameInfo struct {
	ActivePlayer ActivePlayer `json:"activePlayer"`
	AllPlayers   []Player     `json:"allPlayers"`
	Events       EventList    `json:"events"`
	GameData     GameData     `json:"gameData"`
}

// ActivePlayer is the locally controlled champion. The API only exposes the
// stat block here; the matching Player record is looked up with Self.
type ActivePlayer struct {
	RiotID             string        `json:"riotId"`
	ChampionStats      ChampionStats `json:"championStats"`
	Level              int           `json:"level"`
	TeamRelativeColors bool          `json:"teamRelativeColors"`
	CurrentGold        float64       `json:"currentGold"`
	Abilities          *Abilities    `json:"abilities,omitempty"`
}

type Player struct {
	ChampionName string         `json:"championName"`
	IsBot        bool           `json:"isBot"`
	IsDead       bool           `json:"isDead"`
	Level        int            `json:"level"`
	Position     string         `json:"position"`
	RespawnTimer float64        `json:"respawnTimer"`
	RiotID       string         `json:"riotId"`
	Team         string         `json:"team"`
	Items        []Item         `json:"items"`
	Runes        Runes          `json:"runes"`
	Scores       Score          `json:"scores"`
	Spells       SummonerSpells `json:"summonerSpells"`
	Abilities    *Abilities     `json:"abilities,omitempty"`
}

type Item struct {
	Name   string `json:"displayName"`
	CanUse bool   `json:"canUse"`
	Slot   int    `json:"slot"`
	Count  int    `json:"count"`
	Price  int    `json:"price"`
	ID     int    `json:"itemID"`
}

type Score struct {
	Assists    int     `json:"assists"`
	Deaths     int     `json:"deaths"`
	Kills      int     `json:"kills"`
	CreepScore int     `json:"creepScore"`
	WardScore  float64 `json:"wardScore"`
}

// Abilities holds the passive plus the four castable slots.
type Abilities struct {
	Passive Ability `json:"Passive"`
	Q       Ability `json:"Q"`
	W       Ability `json:"W"`
	E       Ability `json:"E"`
	R       Ability `json:"R"`
}

// Ability describes one ability slot. The passive has no level.
type Ability struct {
	AbilityLevel *int   `json:"abilityLevel,omitempty"`
	DisplayName  string `json:"displayName"`
	ID           string `json:"id"`
}

type SummonerSpells struct {
	One Spell `json:"summonerSpellOne"`
	Two Spell `json:"summonerSpellTwo"`
}

type Spell struct {
	DisplayName    string `json:"displayName"`
	RawDescription string `json:"rawDescription"`
	RawDisplayName string `json:"rawDisplayName"`
}

type Runes struct {
	Keystone          Rune `json:"keystone"`
	PrimaryRuneTree   Rune `json:"primaryRuneTree"`
	SecondaryRuneTree Rune `json:"secondaryRuneTree"`
}

type Rune struct {
	Name        string `json:"displayName"`
	ID          int    `json:"id"`
	Description string `json:"rawDescription"`
}

// EventList is the events object of a snapshot and the /eventdata payload.
type EventList struct {
	Events []Event `json:"Events"`
}

type Event struct {
	ID   int     `json:"EventID"`
	Name string  `json:"EventName"`
	Time float64 `json:"EventTime"`
}

// Self returns the Player entry for the active player. ok is false when the
// active player's riot id is not present in AllPlayers this cycle.
func (g *GameInfo) Self() (Player, bool) {
	return g.FindPlayer(g.ActivePlayer.RiotID)
}

func (g *GameInfo) FindPlayer(riotID string) (Player, bool) {
	if g == nil || riotID == "" {
		return Player{}, false
	}
	for _, p := range g.AllPlayers {
		if p.RiotID == riotID {
			return p, true
		}
	}
	return Player{}, false
}

// ItemGold is the summed shop price of everything in the player's inventory.
func (p Player) ItemGold() int {
	total := 0
	for _, it := range p.Items {
		total += it.Price
	}
	return total
}

// DisplayName strips the "#tag" suffix from a riot id.
func DisplayName(riotID string) string {
	name, _, _ := strings.Cut(riotID, "#")
	return name
}
