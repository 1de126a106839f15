package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alex-Aron/LeagueOverlay/internal/overlay"
)

func TestFromView(t *testing.T) {
	stats := &overlay.Stats{Name: "Piltover Sheriff", Champion: "Caitlyn"}
	msg := FromView(overlay.View{Version: 3, Visible: true, Stats: stats})

	assert.Equal(t, MsgStatsSnapshot, msg.Type)
	assert.Equal(t, 3, msg.Version)
	assert.True(t, msg.Visible)
	assert.Same(t, stats, msg.Stats)
}

func TestServerMessage_JSON(t *testing.T) {
	hidden, err := json.Marshal(FromView(overlay.View{Version: 1}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"StatsSnapshot","version":1,"visible":false}`, string(hidden))

	bad, err := json.Marshal(ErrorMessage("unknown type"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"Error","visible":false,"error":"unknown type"}`, string(bad))
}
