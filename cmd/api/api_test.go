package main

import (
	"StatKeeperApi/internal/assert"
	"StatKeeperApi/internal/gamehub"
	"StatKeeperApi/internal/jsonlog"
	"StatKeeperApi/internal/oracle"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func newTestApplication() *application {
	var cfg config
	cfg.env = "test"
	cfg.limiter.enabled = false

	return &application{
		logger: jsonlog.New(io.Discard, jsonlog.LevelOff),
		config: cfg,
		games:  gamehub.NewRegistry(),
	}
}

func postJSON(t *testing.T, ts *httptest.Server, path string, body string) (int, string) {
	t.Helper()
	resp, err := ts.Client().Post(ts.URL+path, "application/json",
		strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(raw)
}

func getBody(t *testing.T, ts *httptest.Server, path string) (*http.Response, string) {
	t.Helper()
	resp, err := ts.Client().Get(ts.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(raw)
}

func startTestGame(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	status, body := postJSON(t, ts, "/v1/game", `{
		"home_team": {"name": "Hawks", "players": [
			{"name": "A", "number": "1"}, {"name": "B", "number": "2"}]},
		"away_team": {"name": "Lakers", "players": [
			{"name": "C", "number": "7"}, {"name": "D", "number": "23"}]}
	}`)
	assert.Equal(t, status, http.StatusCreated)

	var response struct {
		Game struct {
			Pin string `json:"pin"`
		} `json:"game"`
	}
	err := json.Unmarshal([]byte(body), &response)
	assert.NilError(t, err)
	return response.Game.Pin
}

func TestCreateGameValidation(t *testing.T) {
	app := newTestApplication()
	ts := httptest.NewServer(app.routes())
	defer ts.Close()

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "missing team name",
			body: `{"home_team": {"name": "", "players": [{"name": "A", "number": "1"}]},
				"away_team": {"name": "Lakers", "players": [{"name": "C", "number": "7"}]}}`,
			want: "home_team.name",
		},
		{
			name: "empty roster",
			body: `{"home_team": {"name": "Hawks", "players": []},
				"away_team": {"name": "Lakers", "players": [{"name": "C", "number": "7"}]}}`,
			want: "home_team.players",
		},
		{
			name: "unnamed player",
			body: `{"home_team": {"name": "Hawks", "players": [{"name": "", "number": "1"}]},
				"away_team": {"name": "Lakers", "players": [{"name": "C", "number": "7"}]}}`,
			want: "home_team.players[0].name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := postJSON(t, ts, "/v1/game", tt.body)
			assert.Equal(t, status, http.StatusUnprocessableEntity)
			assert.StringContains(t, body, tt.want)
		})
	}
}

func TestShotFlowAndReport(t *testing.T) {
	app := newTestApplication()
	ts := httptest.NewServer(app.routes())
	defer ts.Close()
	pin := startTestGame(t, ts)

	status, body := postJSON(t, ts, "/v1/game/"+pin+"/shot",
		`{"side": "home", "player_index": 0, "shot_type": "threePointer", "made": true}`)
	assert.Equal(t, status, http.StatusOK)
	assert.StringContains(t, body, `"points": 3`)

	_, body = getBody(t, ts, "/v1/game/"+pin)
	assert.StringContains(t, body, `"points": 3`)

	resp, report := getBody(t, ts, "/v1/game/"+pin+"/report")
	assert.Equal(t, resp.StatusCode, http.StatusOK)
	assert.Equal(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.StringContains(t, report, "Hawks,1,A,3,0,0,0,0,1,1,0,0,0,0,0,0,0")
	assert.StringContains(t, report, "Lakers,7,C,0,0,0,0,0,0,0,0,0,0,0,0,0,0")
}

func TestRecordShotValidation(t *testing.T) {
	app := newTestApplication()
	ts := httptest.NewServer(app.routes())
	defer ts.Close()
	pin := startTestGame(t, ts)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "unknown shot type",
			body:       `{"side": "home", "player_index": 0, "shot_type": "dunk", "made": true}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "unknown side",
			body:       `{"side": "bench", "player_index": 0, "shot_type": "freeThrow", "made": true}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "index out of range",
			body:       `{"side": "home", "player_index": 9, "shot_type": "freeThrow", "made": true}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "empty body",
			body:       "",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := postJSON(t, ts, "/v1/game/"+pin+"/shot", tt.body)
			assert.Equal(t, status, tt.wantStatus)
		})
	}
}

func TestRecordStatRejectsShotNames(t *testing.T) {
	app := newTestApplication()
	ts := httptest.NewServer(app.routes())
	defer ts.Close()
	pin := startTestGame(t, ts)

	for _, stat := range []string{"points", "twoPointer", "freeThrow"} {
		status, body := postJSON(t, ts, "/v1/game/"+pin+"/stat",
			fmt.Sprintf(`{"side": "home", "player_index": 0, "stat": %q, "delta": 1}`, stat))
		assert.Equal(t, status, http.StatusUnprocessableEntity)
		assert.StringContains(t, body, "stat")
	}
}

func TestUndoWithoutHistory(t *testing.T) {
	app := newTestApplication()
	ts := httptest.NewServer(app.routes())
	defer ts.Close()
	pin := startTestGame(t, ts)

	status, body := postJSON(t, ts, "/v1/game/"+pin+"/undo",
		`{"side": "away", "player_index": 1, "shot_type": "twoPointer"}`)
	assert.Equal(t, status, http.StatusOK)
	assert.StringContains(t, body, `"undone": false`)
}

func TestUnknownGamePin(t *testing.T) {
	app := newTestApplication()
	ts := httptest.NewServer(app.routes())
	defer ts.Close()

	resp, _ := getBody(t, ts, "/v1/game/nosuch")
	assert.Equal(t, resp.StatusCode, http.StatusNotFound)
}

func TestFinishGameRemovesSession(t *testing.T) {
	app := newTestApplication()
	ts := httptest.NewServer(app.routes())
	defer ts.Close()
	pin := startTestGame(t, ts)

	status, body := postJSON(t, ts, "/v1/game/"+pin+"/finish", "{}")
	assert.Equal(t, status, http.StatusOK)
	assert.StringContains(t, body, "finished")
	assert.Equal(t, app.games.Len(), 0)

	resp, _ := getBody(t, ts, "/v1/game/"+pin)
	assert.Equal(t, resp.StatusCode, http.StatusNotFound)
}

func TestStatFromAudio(t *testing.T) {
	oracleSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter,
		r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"response": {"category": "shot", "team": "home",
			"player_index": 1, "shot_type": "two_point_shot", "made": true}}`)
	}))
	defer oracleSrv.Close()

	app := newTestApplication()
	app.oracle = oracle.New(oracleSrv.URL, 5*time.Second)
	ts := httptest.NewServer(app.routes())
	defer ts.Close()
	pin := startTestGame(t, ts)

	audio := base64.StdEncoding.EncodeToString([]byte("pcm bytes"))
	status, body := postJSON(t, ts, "/v1/game/"+pin+"/audio",
		fmt.Sprintf(`{"audio": %q}`, audio))
	assert.Equal(t, status, http.StatusOK)
	assert.StringContains(t, body, `"category": "shot"`)
	assert.StringContains(t, body, `"points": 2`)

	_, game := getBody(t, ts, "/v1/game/"+pin)
	assert.StringContains(t, game, `"points": 2`)
}

func TestStatFromAudioUnclear(t *testing.T) {
	oracleSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter,
		r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"response": "unclear stat"}`)
	}))
	defer oracleSrv.Close()

	app := newTestApplication()
	app.oracle = oracle.New(oracleSrv.URL, 5*time.Second)
	ts := httptest.NewServer(app.routes())
	defer ts.Close()
	pin := startTestGame(t, ts)

	audio := base64.StdEncoding.EncodeToString([]byte("pcm bytes"))
	status, body := postJSON(t, ts, "/v1/game/"+pin+"/audio",
		fmt.Sprintf(`{"audio": %q}`, audio))
	assert.Equal(t, status, http.StatusOK)
	assert.StringContains(t, body, `"event": null`)

	_, game := getBody(t, ts, "/v1/game/"+pin)
	assert.StringContains(t, game, `"points": 0`)
}

func TestStatFromAudioOracleDown(t *testing.T) {
	oracleSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter,
		r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer oracleSrv.Close()

	app := newTestApplication()
	app.oracle = oracle.New(oracleSrv.URL, 5*time.Second)
	ts := httptest.NewServer(app.routes())
	defer ts.Close()
	pin := startTestGame(t, ts)

	audio := base64.StdEncoding.EncodeToString([]byte("pcm bytes"))
	status, _ := postJSON(t, ts, "/v1/game/"+pin+"/audio",
		fmt.Sprintf(`{"audio": %q}`, audio))
	assert.Equal(t, status, http.StatusBadGateway)

	_, game := getBody(t, ts, "/v1/game/"+pin)
	assert.StringContains(t, game, `"points": 0`)
}

func TestKeeperKeyGuardsMutations(t *testing.T) {
	app := newTestApplication()

	// Hash computed at the minimum cost to keep the test quick.
	hash, err := bcrypt.GenerateFromPassword([]byte("scorer-secret"), bcrypt.MinCost)
	assert.NilError(t, err)
	app.keeperKeyHash = hash

	ts := httptest.NewServer(app.routes())
	defer ts.Close()

	body := `{
		"home_team": {"name": "Hawks", "players": [{"name": "A", "number": "1"}]},
		"away_team": {"name": "Lakers", "players": [{"name": "C", "number": "7"}]}
	}`

	status, _ := postJSON(t, ts, "/v1/game", body)
	assert.Equal(t, status, http.StatusUnauthorized)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/v1/game",
		bytes.NewReader([]byte(body)))
	assert.NilError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Key scorer-secret")

	resp, err := ts.Client().Do(req)
	assert.NilError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, resp.StatusCode, http.StatusCreated)

	// Read routes stay open without a key.
	var created struct {
		Game struct {
			Pin string `json:"pin"`
		} `json:"game"`
	}
	err = json.NewDecoder(resp.Body).Decode(&created)
	assert.NilError(t, err)
	getResp, _ := getBody(t, ts, "/v1/game/"+created.Game.Pin)
	assert.Equal(t, getResp.StatusCode, http.StatusOK)
}

func TestHealthCheck(t *testing.T) {
	app := newTestApplication()
	ts := httptest.NewServer(app.routes())
	defer ts.Close()

	resp, body := getBody(t, ts, "/v1/healthcheck")
	assert.Equal(t, resp.StatusCode, http.StatusOK)
	assert.StringContains(t, body, `"status": "available"`)
	assert.StringContains(t, body, `"environment": "test"`)
}
