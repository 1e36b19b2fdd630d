package archive

import (
	"StatKeeperApi/internal/stats"
	"context"
	"database/sql"
	"time"
)

// Store persists finished games so box scores outlive the in-memory session.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// BoxScore is one archived game.
type BoxScore struct {
	ID         int64
	Pin        string
	HomeTeam   string
	AwayTeam   string
	HomeScore  int
	AwayScore  int
	CSV        string
	FinishedAt time.Time
}

// SaveBoxScore inserts the final box score for a finished game.
func (s *Store) SaveBoxScore(pin string, home, away stats.Roster, csv string) (*BoxScore,
	error) {
	stmt := `
		INSERT INTO game_reports (pin, home_team, away_team, home_score, away_score, csv,
			finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	box := &BoxScore{
		Pin:        pin,
		HomeTeam:   home.TeamName,
		AwayTeam:   away.TeamName,
		HomeScore:  rosterPoints(home),
		AwayScore:  rosterPoints(away),
		CSV:        csv,
		FinishedAt: time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := s.db.QueryRowContext(ctx, stmt, box.Pin, box.HomeTeam, box.AwayTeam, box.HomeScore,
		box.AwayScore, box.CSV, box.FinishedAt).Scan(&box.ID)
	if err != nil {
		return nil, err
	}

	return box, nil
}

// GetBoxScore retrieves an archived game by pin, most recent first when pins
// have been reused across sessions.
func (s *Store) GetBoxScore(pin string) (*BoxScore, error) {
	stmt := `
		SELECT id, pin, home_team, away_team, home_score, away_score, csv, finished_at
		FROM game_reports
		WHERE pin = $1
		ORDER BY finished_at DESC
		LIMIT 1`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var box BoxScore
	err := s.db.QueryRowContext(ctx, stmt, pin).Scan(
		&box.ID,
		&box.Pin,
		&box.HomeTeam,
		&box.AwayTeam,
		&box.HomeScore,
		&box.AwayScore,
		&box.CSV,
		&box.FinishedAt,
	)
	if err != nil {
		return nil, err
	}

	return &box, nil
}

func rosterPoints(r stats.Roster) int {
	var points int
	for _, p := range r.Players {
		points += p.Points
	}
	return points
}
