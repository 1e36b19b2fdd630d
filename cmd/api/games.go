package main

import (
	"StatKeeperApi/internal/gamehub"
	"StatKeeperApi/internal/pins"
	"StatKeeperApi/internal/report"
	"StatKeeperApi/internal/stats"
	"StatKeeperApi/internal/validator"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

const (
	gamePinLength    = 6
	maxRosterPlayers = 15
)

type rosterInput struct {
	Name    string `json:"name"`
	Players []struct {
		Name   string `json:"name"`
		Number string `json:"number"`
	} `json:"players"`
}

func validateRoster(v *validator.Validator, key string, input rosterInput) {
	v.Check(input.Name != "", key+".name", "must be provided")
	v.Check(len(input.Players) > 0, key+".players", "must have at least one player")
	v.Check(len(input.Players) <= maxRosterPlayers, key+".players",
		fmt.Sprintf("must not have more than %d players", maxRosterPlayers))
	for i, p := range input.Players {
		v.Check(p.Name != "", fmt.Sprintf("%s.players[%d].name", key, i), "must be provided")
	}
}

func rosterFromInput(input rosterInput) stats.Roster {
	roster := stats.Roster{
		TeamName: input.Name,
		Players:  make([]stats.Player, 0, len(input.Players)),
	}
	for _, p := range input.Players {
		roster.Players = append(roster.Players, stats.Player{Name: p.Name, Number: p.Number})
	}
	return roster
}

// CreateGame finalizes both rosters and starts an in-memory game session.
// Players exist for the lifetime of the session and are addressed by their
// roster index from here on.
func (app *application) CreateGame(w http.ResponseWriter, r *http.Request) {
	var input struct {
		HomeTeam rosterInput `json:"home_team"`
		AwayTeam rosterInput `json:"away_team"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	validateRoster(v, "home_team", input.HomeTeam)
	validateRoster(v, "away_team", input.AwayTeam)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	statline := stats.NewGameStatline(rosterFromInput(input.HomeTeam),
		rosterFromInput(input.AwayTeam))

	var pin string
	var hub *gamehub.Hub
	for {
		pin = pins.GeneratePin(gamePinLength)
		var ok bool
		hub, ok = app.games.Start(pin, statline)
		if ok {
			break
		}
	}

	app.logger.PrintInfo("game started", map[string]string{
		"pin":  pin,
		"home": input.HomeTeam.Name,
		"away": input.AwayTeam.Name,
	})

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/game/%s", pin))
	err = app.writeJSON(w, http.StatusCreated, envelope{"game": envelope{
		"pin":       pin,
		"box_score": hub.Statline.Dto(),
	}}, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetGame(w http.ResponseWriter, r *http.Request) {
	hub, ok := app.gameFromRequest(w, r)
	if !ok {
		return
	}

	err := app.writeJSON(w, http.StatusOK, envelope{"game": envelope{
		"pin":       hub.Pin,
		"box_score": hub.Statline.Dto(),
	}}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// FinishGame closes the session. The final box score is archived and mailed
// when those collaborators are configured; the session itself is gone either
// way.
func (app *application) FinishGame(w http.ResponseWriter, r *http.Request) {
	hub, ok := app.gameFromRequest(w, r)
	if !ok {
		return
	}

	home := hub.Statline.Roster(stats.SideHome)
	away := hub.Statline.Roster(stats.SideAway)
	csv := report.CSV(home, away)
	dto := hub.Statline.Dto()

	app.games.Remove(hub.Pin)

	pin := hub.Pin
	if app.archive != nil {
		app.backgroundTask(func() {
			_, err := app.archive.SaveBoxScore(pin, home, away, csv)
			if err != nil {
				app.logger.PrintError(err, map[string]string{"pin": pin})
				return
			}
			app.logger.PrintInfo("box score archived", map[string]string{"pin": pin})
		})
	}

	if app.config.report.recipient != "" {
		app.backgroundTask(func() {
			data := map[string]any{
				"Pin":       pin,
				"HomeTeam":  dto.Home.TeamName,
				"AwayTeam":  dto.Away.TeamName,
				"HomeScore": dto.Home.Points,
				"AwayScore": dto.Away.Points,
				"CSV":       csv,
			}
			err := app.mailer.Send(app.config.report.recipient, "game_report.tmpl", data)
			if err != nil {
				app.logger.PrintError(err, map[string]string{"pin": pin})
				return
			}
			app.logger.PrintInfo("box score mailed", map[string]string{"pin": pin})
		})
	}

	err := app.writeJSON(w, http.StatusOK, envelope{
		"message":   fmt.Sprintf("game (%s) finished", pin),
		"box_score": dto,
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// WatchGame upgrades to a read-only websocket receiving the full box score
// after every applied mutation.
func (app *application) WatchGame(w http.ResponseWriter, r *http.Request) {
	hub, ok := app.gameFromRequest(w, r)
	if !ok {
		return
	}

	upgrader.CheckOrigin = app.checkWebsocketOrigin
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.logError(r, err)
		return
	}

	watcher := gamehub.NewWatcher(hub, conn)
	select {
	case hub.JoinWatcher <- watcher:
	case <-hub.Done():
		conn.Close()
		return
	}

	go watcher.WriteEvents()
	go watcher.ReadEvents()
}

// KeepGame upgrades to a scorer websocket feeding stat events onto the
// game's mutation stream.
func (app *application) KeepGame(w http.ResponseWriter, r *http.Request) {
	hub, ok := app.gameFromRequest(w, r)
	if !ok {
		return
	}

	upgrader.CheckOrigin = app.checkWebsocketOrigin
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.logError(r, err)
		return
	}

	keeper := gamehub.NewKeeper(hub, conn)
	select {
	case hub.JoinKeeper <- keeper:
	case <-hub.Done():
		conn.Close()
		return
	}

	go keeper.WriteEvents()
	go keeper.ReadEvents()
}

func (app *application) checkWebsocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(app.config.cors.trustedOrigins) == 0 {
		return true
	}
	for _, trusted := range app.config.cors.trustedOrigins {
		if origin == trusted {
			return true
		}
	}
	return false
}

// gameFromRequest resolves the {id} pin to a running game, writing the 404
// itself when there is none.
func (app *application) gameFromRequest(w http.ResponseWriter, r *http.Request) (*gamehub.Hub,
	bool) {
	pin := strings.ToLower(chi.URLParam(r, "id"))
	hub, ok := app.games.Get(pin)
	if !ok {
		app.notFoundResponse(w, r)
		return nil, false
	}
	return hub, true
}
