package liveclient

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alex-Aron/LeagueOverlay/internal/schema"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	raw, err := os.ReadFile("../schema/testdata/" + name)
	require.NoError(t, err)
	return raw
}

// lineOf returns the 1-based number of the first line containing needle.
func lineOf(t *testing.T, text, needle string) int {
	t.Helper()
	for i, l := range strings.Split(text, "\n") {
		if strings.Contains(l, needle) {
			return i + 1
		}
	}
	t.Fatalf("%q not found in text", needle)
	return 0
}

func requireDecodeError(t *testing.T, err error) *DecodeError {
	t.Helper()
	require.Error(t, err)
	var decErr *DecodeError
	require.True(t, errors.As(err, &decErr), "want *DecodeError, got %T: %v", err, err)
	return decErr
}

func contextNumbers(lines []ContextLine) []int {
	out := make([]int, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.Number)
	}
	return out
}

func markedLine(lines []ContextLine) int {
	for _, l := range lines {
		if l.Marked {
			return l.Number
		}
	}
	return 0
}

func TestDecode_Valid(t *testing.T) {
	g, err := Decode[schema.GameInfo](EndpointAllGameData, readFixture(t, "allgamedata.json"))
	require.NoError(t, err)
	assert.Equal(t, 1200.5, g.GameData.GameTime)
	assert.Len(t, g.AllPlayers, 2)
}

func TestDecode_SyntaxErrorPosition(t *testing.T) {
	cases := []struct {
		name        string
		text        string
		wantLine    int
		wantColumn  int
		wantContext []int
	}{
		{
			name:        "middle of document",
			text:        "{\n  \"a\": 1,\n  \"b\": ,\n  \"c\": 3,\n  \"d\": 4,\n  \"e\": 5\n}",
			wantLine:    3,
			wantColumn:  8,
			wantContext: []int{1, 2, 3, 4, 5},
		},
		{
			name:        "first line clipped",
			text:        "{\"a\" 1,\n  \"b\": 2,\n  \"c\": 3,\n  \"d\": 4\n}",
			wantLine:    1,
			wantColumn:  6,
			wantContext: []int{1, 2, 3},
		},
		{
			name:        "truncated document clipped at end",
			text:        "{\n  \"a\": 1,\n  \"b\": 2,\n  \"c\": [1, 2",
			wantLine:    4,
			wantColumn:  12,
			wantContext: []int{2, 3, 4},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode[map[string]any]("/test", []byte(tc.text))
			decErr := requireDecodeError(t, err)
			assert.Equal(t, "/test", decErr.Endpoint)
			assert.Equal(t, tc.wantLine, decErr.Line)
			assert.Equal(t, tc.wantColumn, decErr.Column)
			assert.Equal(t, tc.wantContext, contextNumbers(decErr.Context))
			assert.Equal(t, tc.wantLine, markedLine(decErr.Context))
		})
	}
}

func TestDecode_TypeMismatch(t *testing.T) {
	text := strings.Replace(string(readFixture(t, "allgamedata.json")), `"level": 11,`, `"level": "eleven",`, 1)
	want := lineOf(t, text, `"level": "eleven"`)

	_, err := Decode[schema.GameInfo](EndpointAllGameData, []byte(text))
	decErr := requireDecodeError(t, err)
	assert.Equal(t, want, decErr.Line)
	assert.Contains(t, decErr.Snippet(), `>>> `)
	assert.Contains(t, decErr.Snippet(), `"eleven"`)
}

func TestDecode_MissingRequiredField(t *testing.T) {
	text := strings.Replace(string(readFixture(t, "allgamedata.json")), "        \"currentGold\": 1250.75,\n", "", 1)
	require.NotContains(t, text, "currentGold")
	// activePlayer closes on the line right before allPlayers opens.
	want := lineOf(t, text, `"allPlayers"`) - 1

	_, err := Decode[schema.GameInfo](EndpointAllGameData, []byte(text))
	decErr := requireDecodeError(t, err)
	assert.Equal(t, want, decErr.Line)
	assert.Equal(t, want, markedLine(decErr.Context))
	assert.Len(t, decErr.Context, 5)
	assert.Contains(t, decErr.Error(), `missing field "currentGold" at activePlayer`)
}

// dropLine removes the first line containing needle.
func dropLine(t *testing.T, text, needle string) string {
	t.Helper()
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if strings.Contains(l, needle) {
			return strings.Join(append(lines[:i:i], lines[i+1:]...), "\n")
		}
	}
	t.Fatalf("%q not found in text", needle)
	return ""
}

func TestDecode_NestedFieldPositions(t *testing.T) {
	fixture := string(readFixture(t, "allgamedata.json"))

	cases := []struct {
		name        string
		text        string
		wantMessage string
		wantLine    int
		wantColumn  int
		wantContext []int
	}{
		{
			name:        "missing field in array element",
			text:        dropLine(t, fixture, `"championName": "Jinx",`),
			wantMessage: `missing field "championName" at allPlayers[1]`,
			wantLine:    194,
			wantColumn:  9,
			wantContext: []int{192, 193, 194, 195, 196},
		},
		{
			name:        "missing field three levels down",
			text:        dropLine(t, fixture, `"creepScore": 142,`),
			wantMessage: `missing field "creepScore" at allPlayers[0].scores`,
			wantLine:    124,
			wantColumn:  13,
			wantContext: []int{122, 123, 124, 125, 126},
		},
		{
			name:        "null field four levels down",
			text:        strings.Replace(fixture, `"displayName": "Flash",`, `"displayName": null,`, 1),
			wantMessage: `field "displayName" at allPlayers[0].summonerSpells.summonerSpellOne is null`,
			wantLine:    128,
			wantColumn:  36,
			wantContext: []int{126, 127, 128, 129, 130},
		},
		{
			name:        "missing field in event",
			text:        dropLine(t, fixture, `"EventName": "MinionsSpawning",`),
			wantMessage: `missing field "EventName" at events.Events[1]`,
			wantLine:    207,
			wantColumn:  13,
			wantContext: []int{205, 206, 207, 208, 209},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode[schema.GameInfo](EndpointAllGameData, []byte(tc.text))
			decErr := requireDecodeError(t, err)
			assert.Contains(t, decErr.Error(), tc.wantMessage)
			assert.Equal(t, tc.wantLine, decErr.Line)
			assert.Equal(t, tc.wantColumn, decErr.Column)
			assert.Equal(t, tc.wantContext, contextNumbers(decErr.Context))
			assert.Equal(t, tc.wantLine, markedLine(decErr.Context))
		})
	}
}

func TestDecode_NullRequiredField(t *testing.T) {
	text := strings.Replace(string(readFixture(t, "gamestats.json")), `"gameMode": "CLASSIC"`, `"gameMode": null`, 1)

	_, err := Decode[schema.GameData](EndpointGameStats, []byte(text))
	decErr := requireDecodeError(t, err)
	assert.Equal(t, lineOf(t, text, `"gameMode": null`), decErr.Line)
	assert.Contains(t, decErr.Error(), `"gameMode"`)
	assert.Contains(t, decErr.Error(), "is null")
}

func TestDecode_OptionalFieldsMayBeAbsent(t *testing.T) {
	g, err := Decode[schema.GameData](EndpointGameStats, []byte(`{"gameMode":"ARAM","gameTime":12.25}`))
	require.NoError(t, err)
	assert.Equal(t, schema.GameData{GameMode: "ARAM", GameTime: 12.25}, g)
}

func TestDecode_EmptyBody(t *testing.T) {
	_, err := Decode[schema.GameData](EndpointGameStats, nil)
	decErr := requireDecodeError(t, err)
	assert.Zero(t, decErr.Line)
	assert.Empty(t, decErr.Context)
}

func TestPosition(t *testing.T) {
	text := []byte("ab\ncd\n\nef")
	cases := []struct {
		offset    int
		line, col int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{4, 2, 2},
		{6, 3, 1},
		{7, 4, 1},
	}
	for _, tc := range cases {
		line, col := position(text, tc.offset)
		assert.Equal(t, tc.line, line, "offset %d", tc.offset)
		assert.Equal(t, tc.col, col, "offset %d", tc.offset)
	}
}
