package types

import "github.com/Alex-Aron/LeagueOverlay/internal/overlay"

const (
	MsgToggleVisibility = "ToggleVisibility"

	MsgStatsSnapshot = "StatsSnapshot"
	MsgError         = "Error"
)

type ClientMessage struct {
	Type string `json:"type"`
}

type ServerMessage struct {
	Type    string         `json:"type"` // "StatsSnapshot" | "Error"
	Version int            `json:"version,omitempty"`
	Visible bool           `json:"visible"`
	Stats   *overlay.Stats `json:"stats,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func FromView(v overlay.View) ServerMessage {
	return ServerMessage{
		Type:    MsgStatsSnapshot,
		Version: v.Version,
		Visible: v.Visible,
		Stats:   v.Stats,
	}
}

func ErrorMessage(msg string) ServerMessage {
	return ServerMessage{Type: MsgError, Error: msg}
}
