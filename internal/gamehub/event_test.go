package gamehub

import (
	"StatKeeperApi/internal/assert"
	"StatKeeperApi/internal/stats"
	"encoding/json"
	"testing"
)

func parseJSONEvent(t *testing.T, raw string) (GameEvent, error) {
	t.Helper()
	var generic GenericEvent
	if err := json.Unmarshal([]byte(raw), &generic); err != nil {
		t.Fatalf("test message did not decode: %v", err)
	}
	return generic.parseEvent()
}

func TestParseKeeperEvents(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want GameEvent
	}{
		{
			name: "Shot Event",
			raw:  `{"type":"shot","side":"home","player_index":0,"shot_type":"threePointer","made":true}`,
			want: ShotEvent{Side: stats.SideHome, PlayerIndex: 0, Shot: stats.ThreePointer, Made: true},
		},
		{
			name: "Stat Event",
			raw:  `{"type":"stat","side":"away","player_index":2,"stat":"fouls","delta":-1}`,
			want: StatEvent{Side: stats.SideAway, PlayerIndex: 2, Stat: stats.Fouls, Delta: -1},
		},
		{
			name: "Undo Event",
			raw:  `{"type":"undo","side":"home","player_index":1,"shot_type":"freeThrow"}`,
			want: UndoEvent{Side: stats.SideHome, PlayerIndex: 1, Shot: stats.FreeThrow},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseJSONEvent(t, tt.raw)
			assert.NilError(t, err)
			assert.Equal(t, got, tt.want)
		})
	}
}

func TestParseKeeperEventFailures(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{
			name:    "Missing Type",
			raw:     `{"side":"home","player_index":0}`,
			wantErr: ErrEventParseFailed,
		},
		{
			name:    "Unknown Type",
			raw:     `{"type":"timeout","side":"home","player_index":0}`,
			wantErr: ErrEventParseFailed,
		},
		{
			name:    "Bad Side",
			raw:     `{"type":"shot","side":"neutral","player_index":0,"shot_type":"twoPointer","made":true}`,
			wantErr: ErrEventValidationFailed,
		},
		{
			name:    "Points Through Stat Path",
			raw:     `{"type":"stat","side":"home","player_index":0,"stat":"points","delta":2}`,
			wantErr: ErrEventValidationFailed,
		},
		{
			name:    "Shot Pair Through Stat Path",
			raw:     `{"type":"stat","side":"home","player_index":0,"stat":"twoPointer","delta":1}`,
			wantErr: ErrEventValidationFailed,
		},
		{
			name:    "Index Not A Number",
			raw:     `{"type":"undo","side":"home","player_index":"first","shot_type":"freeThrow"}`,
			wantErr: ErrEventParseFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseJSONEvent(t, tt.raw)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// A keeper-parsed event and the direct call must leave identical state.
func TestKeeperEventMatchesDirectCall(t *testing.T) {
	direct := testHub(t)
	viaEvent := testHub(t)

	_, err := direct.ApplyShot(stats.SideHome, 0, stats.ThreePointer, true)
	assert.NilError(t, err)

	event, parseErr := parseJSONEvent(t,
		`{"type":"shot","side":"home","player_index":0,"shot_type":"threePointer","made":true}`)
	assert.NilError(t, parseErr)
	err = viaEvent.send(event)
	assert.NilError(t, err)

	// Queue a synchronous no-op behind the keeper event so it has been
	// applied before we compare.
	_, _, err = viaEvent.UndoShot(stats.SideAway, 0, stats.FreeThrow)
	assert.NilError(t, err)

	a, err := direct.Statline.Player(stats.SideHome, 0)
	assert.NilError(t, err)
	b, err := viaEvent.Statline.Player(stats.SideHome, 0)
	assert.NilError(t, err)
	assert.Equal(t, a, b)
}
