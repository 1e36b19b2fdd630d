package stats

import (
	"StatKeeperApi/internal/assert"
	"testing"
)

func TestShotValues(t *testing.T) {
	assert.Equal(t, FreeThrow.Value(), 1)
	assert.Equal(t, TwoPointer.Value(), 2)
	assert.Equal(t, ThreePointer.Value(), 3)
}

func TestParsePlayerStat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PlayerStat
		wantErr error
	}{
		{name: "Assists", input: "assists", want: Assists},
		{name: "Offensive Rebounds", input: "offensiveRebounds", want: OffensiveRebounds},
		{name: "Defensive Rebounds", input: "defensiveRebounds", want: DefensiveRebounds},
		{name: "Steals", input: "steals", want: Steals},
		{name: "Blocks", input: "blocks", want: Blocks},
		{name: "Turnovers", input: "turnovers", want: Turnovers},
		{name: "Fouls", input: "fouls", want: Fouls},
		{name: "Points Rejected", input: "points", wantErr: ErrInvalidStatName},
		{name: "Shot Pair Rejected", input: "twoPointer", wantErr: ErrInvalidStatName},
		{name: "Free Throw Rejected", input: "freeThrow", wantErr: ErrInvalidStatName},
		{name: "Unknown Rejected", input: "dunks", wantErr: ErrInvalidStatName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePlayerStat(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NilError(t, err)
			assert.Equal(t, got, tt.want)
		})
	}
}

func TestParseGameSide(t *testing.T) {
	side, err := ParseGameSide("home")
	assert.NilError(t, err)
	assert.Equal(t, side, SideHome)

	side, err = ParseGameSide("away")
	assert.NilError(t, err)
	assert.Equal(t, side, SideAway)

	_, err = ParseGameSide("neutral")
	assert.ErrorIs(t, err, ErrInvalidGameSide)
}

func TestParseShotType(t *testing.T) {
	for _, want := range []ShotType{FreeThrow, TwoPointer, ThreePointer} {
		got, err := ParseShotType(want.String())
		assert.NilError(t, err)
		assert.Equal(t, got, want)
	}

	_, err := ParseShotType("halfCourt")
	assert.ErrorIs(t, err, ErrInvalidShotType)
}

func TestFieldGoals(t *testing.T) {
	p := Player{
		TwoPointers:   ShotLine{Made: 3, Attempted: 7},
		ThreePointers: ShotLine{Made: 1, Attempted: 4},
	}
	assert.Equal(t, p.FieldGoals(), ShotLine{Made: 4, Attempted: 11})
	assert.Equal(t, p.FieldGoals().String(), "4/11")
}
