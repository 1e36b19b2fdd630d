package report

import (
	"StatKeeperApi/internal/stats"
	"strconv"
	"strings"
)

const csvHeader = "Team,Number,Name,Points,FT Made,FT Att,2P Made,2P Att,3P Made,3P Att," +
	"Assists,Off Reb,Def Reb,Steals,Blocks,Turnovers,Fouls"

// CSV serializes both rosters as one comma-delimited box score: the header
// row, then one row per player prefixed with the team name, home roster
// first. Values are joined raw with no quoting, so a comma inside a team or
// player name shifts that row's columns.
func CSV(home, away stats.Roster) string {
	rows := make([]string, 0, 1+len(home.Players)+len(away.Players))
	rows = append(rows, csvHeader)
	for _, p := range home.Players {
		rows = append(rows, playerRow(home.TeamName, p))
	}
	for _, p := range away.Players {
		rows = append(rows, playerRow(away.TeamName, p))
	}
	return strings.Join(rows, "\n")
}

func playerRow(team string, p stats.Player) string {
	fields := []string{
		team,
		p.Number,
		p.Name,
		strconv.Itoa(p.Points),
		strconv.Itoa(p.FreeThrows.Made),
		strconv.Itoa(p.FreeThrows.Attempted),
		strconv.Itoa(p.TwoPointers.Made),
		strconv.Itoa(p.TwoPointers.Attempted),
		strconv.Itoa(p.ThreePointers.Made),
		strconv.Itoa(p.ThreePointers.Attempted),
		strconv.Itoa(p.Assists),
		strconv.Itoa(p.OffensiveRebounds),
		strconv.Itoa(p.DefensiveRebounds),
		strconv.Itoa(p.Steals),
		strconv.Itoa(p.Blocks),
		strconv.Itoa(p.Turnovers),
		strconv.Itoa(p.Fouls),
	}
	return strings.Join(fields, ",")
}
