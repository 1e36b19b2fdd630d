package report

import (
	"StatKeeperApi/internal/assert"
	"StatKeeperApi/internal/stats"
	"strings"
	"testing"
)

func TestCSVSinglePlayer(t *testing.T) {
	home := stats.Roster{
		TeamName: "TeamX",
		Players: []stats.Player{{
			Name:          "A",
			Number:        "1",
			Points:        3,
			ThreePointers: stats.ShotLine{Made: 1, Attempted: 1},
		}},
	}
	away := stats.Roster{TeamName: "TeamY"}

	got := CSV(home, away)
	lines := strings.Split(got, "\n")

	assert.Equal(t, len(lines), 2)
	assert.Equal(t, lines[0], "Team,Number,Name,Points,FT Made,FT Att,2P Made,2P Att,"+
		"3P Made,3P Att,Assists,Off Reb,Def Reb,Steals,Blocks,Turnovers,Fouls")
	assert.Equal(t, lines[1], "TeamX,1,A,3,0,0,0,0,1,1,0,0,0,0,0,0,0")
}

func TestCSVEmptyRosters(t *testing.T) {
	got := CSV(stats.Roster{TeamName: "TeamX"}, stats.Roster{TeamName: "TeamY"})
	assert.StringContains(t, got, "Team,Number,Name")
	assert.Equal(t, strings.Count(got, "\n"), 0)
}

func TestCSVRosterOrder(t *testing.T) {
	home := stats.Roster{
		TeamName: "Hawks",
		Players:  []stats.Player{{Name: "A", Number: "1"}, {Name: "B", Number: "2"}},
	}
	away := stats.Roster{
		TeamName: "Lakers",
		Players:  []stats.Player{{Name: "C", Number: "7"}},
	}

	lines := strings.Split(CSV(home, away), "\n")
	assert.Equal(t, len(lines), 4)
	assert.StringContains(t, lines[1], "Hawks,1,A")
	assert.StringContains(t, lines[2], "Hawks,2,B")
	assert.StringContains(t, lines[3], "Lakers,7,C")
}

func TestCSVFullStatRow(t *testing.T) {
	home := stats.Roster{
		TeamName: "Hawks",
		Players: []stats.Player{{
			Name:              "B",
			Number:            "2",
			Points:            7,
			FreeThrows:        stats.ShotLine{Made: 1, Attempted: 2},
			TwoPointers:       stats.ShotLine{Made: 3, Attempted: 5},
			ThreePointers:     stats.ShotLine{Made: 0, Attempted: 1},
			Assists:           4,
			OffensiveRebounds: 1,
			DefensiveRebounds: 6,
			Steals:            2,
			Blocks:            1,
			Turnovers:         3,
			Fouls:             2,
		}},
	}

	lines := strings.Split(CSV(home, stats.Roster{TeamName: "Lakers"}), "\n")
	assert.Equal(t, lines[1], "Hawks,2,B,7,1,2,3,5,0,1,4,1,6,2,1,3,2")
}
