package oracle

import (
	"StatKeeperApi/internal/stats"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	ErrUnavailable   = errors.New("classification service unavailable")
	ErrBadResponse   = errors.New("malformed classification response")
	ErrEmptyAudio    = errors.New("audio payload is empty")
	ErrInvalidEvent  = errors.New("classification names an unknown stat or side")
)

const (
	CategoryShot    = "shot"
	CategoryNonShot = "non-shot"
)

// Event is a well-formed classification: either a shot (Category "shot",
// Shot/Made populated) or a non-shot stat (Category "non-shot", Stat/Delta
// populated). The service never produces a partial event; anything it cannot
// classify comes back as unclear instead.
type Event struct {
	Category    string
	Side        stats.GameSide
	PlayerIndex int
	Shot        stats.ShotType
	Made        bool
	Stat        stats.PlayerStat
	Delta       int
}

// PlayerEntry mirrors the (name, number) pairs the service matches
// transcripts against.
type PlayerEntry struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

type TeamData struct {
	TeamName string        `json:"team_name"`
	Players  []PlayerEntry `json:"players"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type classifyRequest struct {
	AudioFile    string   `json:"audio_file"`
	HomeTeamData TeamData `json:"home_team_data"`
	AwayTeamData TeamData `json:"away_team_data"`
}

// The response envelope carries either a structured event object or a bare
// string ("unclear stat") when the service could not classify the play.
type classifyEnvelope struct {
	Response json.RawMessage `json:"response"`
}

type classifyPayload struct {
	Category    string `json:"category"`
	Team        string `json:"team"`
	PlayerIndex int    `json:"player_index"`
	ShotType    string `json:"shot_type"`
	Made        bool   `json:"made"`
	Stat        string `json:"stat"`
	Delta       int    `json:"delta"`
}

// Classify uploads raw audio plus both rosters and returns the structured
// event the service derived from it. A nil event with a nil error is the
// unclear sentinel: the service heard nothing it would commit to.
func (c *Client) Classify(ctx context.Context, audio []byte, home, away TeamData) (*Event,
	error) {
	if len(audio) == 0 {
		return nil, ErrEmptyAudio
	}

	reqBody := classifyRequest{
		AudioFile:    base64.StdEncoding.EncodeToString(audio),
		HomeTeamData: home,
		AwayTeamData: away,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/stats-from-audio", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status=%d body=%s", ErrUnavailable, resp.StatusCode, msg)
	}

	var envelope classifyEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if len(envelope.Response) == 0 {
		return nil, ErrBadResponse
	}

	// A bare string response is the unclear sentinel, whatever its wording.
	var sentinel string
	if err := json.Unmarshal(envelope.Response, &sentinel); err == nil {
		return nil, nil
	}

	var payload classifyPayload
	if err := json.Unmarshal(envelope.Response, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	return eventFromPayload(payload)
}

func eventFromPayload(p classifyPayload) (*Event, error) {
	side, err := stats.ParseGameSide(p.Team)
	if err != nil {
		return nil, fmt.Errorf("%w: team %q", ErrInvalidEvent, p.Team)
	}

	event := &Event{
		Category:    p.Category,
		Side:        side,
		PlayerIndex: p.PlayerIndex,
	}

	switch p.Category {
	case CategoryShot:
		shot, err := parseWireShotType(p.ShotType)
		if err != nil {
			return nil, fmt.Errorf("%w: shot_type %q", ErrInvalidEvent, p.ShotType)
		}
		event.Shot = shot
		event.Made = p.Made
	case CategoryNonShot:
		stat, err := stats.ParsePlayerStat(p.Stat)
		if err != nil {
			return nil, fmt.Errorf("%w: stat %q", ErrInvalidEvent, p.Stat)
		}
		event.Stat = stat
		event.Delta = p.Delta
		if event.Delta == 0 {
			event.Delta = 1
		}
	default:
		return nil, fmt.Errorf("%w: category %q", ErrInvalidEvent, p.Category)
	}
	return event, nil
}

// The service emits snake_case shot types while the UI speaks camelCase;
// both spellings are normalized onto the closed enum here.
func parseWireShotType(s string) (stats.ShotType, error) {
	switch s {
	case "free_throw":
		return stats.FreeThrow, nil
	case "two_point_shot":
		return stats.TwoPointer, nil
	case "three_point_shot":
		return stats.ThreePointer, nil
	}
	return stats.ParseShotType(s)
}
