package main

import (
	"StatKeeperApi/internal/gamehub"
	"StatKeeperApi/internal/stats"
	"errors"
	"net/http"
)

// RecordShot applies a shot attempt to one player. A made shot also moves the
// player's points by the shot's value; the pairing cannot be observed half
// applied.
func (app *application) RecordShot(w http.ResponseWriter, r *http.Request) {
	hub, ok := app.gameFromRequest(w, r)
	if !ok {
		return
	}

	var input struct {
		Side        string `json:"side"`
		PlayerIndex int    `json:"player_index"`
		ShotType    string `json:"shot_type"`
		Made        bool   `json:"made"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	side, err := stats.ParseGameSide(input.Side)
	if err != nil {
		app.failedValidationResponse(w, r, map[string]string{"side": err.Error()})
		return
	}
	shot, err := stats.ParseShotType(input.ShotType)
	if err != nil {
		app.failedValidationResponse(w, r, map[string]string{"shot_type": err.Error()})
		return
	}

	player, err := hub.ApplyShot(side, input.PlayerIndex, shot, input.Made)
	if err != nil {
		app.statErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"player": player}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// RecordStat moves one of a player's counting stats by a signed delta.
// Points and shot lines are not reachable here; they only change through
// shot events.
func (app *application) RecordStat(w http.ResponseWriter, r *http.Request) {
	hub, ok := app.gameFromRequest(w, r)
	if !ok {
		return
	}

	var input struct {
		Side        string `json:"side"`
		PlayerIndex int    `json:"player_index"`
		Stat        string `json:"stat"`
		Delta       int    `json:"delta"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	side, err := stats.ParseGameSide(input.Side)
	if err != nil {
		app.failedValidationResponse(w, r, map[string]string{"side": err.Error()})
		return
	}
	stat, err := stats.ParsePlayerStat(input.Stat)
	if err != nil {
		app.failedValidationResponse(w, r, map[string]string{"stat": err.Error()})
		return
	}
	if input.Delta == 0 {
		input.Delta = 1
	}

	player, err := hub.ApplyStat(side, input.PlayerIndex, stat, input.Delta)
	if err != nil {
		app.statErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"player": player}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// UndoShot reverses the most recent shot of the given type for one player.
// With no history to unwind it reports undone=false and leaves the statline
// alone.
func (app *application) UndoShot(w http.ResponseWriter, r *http.Request) {
	hub, ok := app.gameFromRequest(w, r)
	if !ok {
		return
	}

	var input struct {
		Side        string `json:"side"`
		PlayerIndex int    `json:"player_index"`
		ShotType    string `json:"shot_type"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	side, err := stats.ParseGameSide(input.Side)
	if err != nil {
		app.failedValidationResponse(w, r, map[string]string{"side": err.Error()})
		return
	}
	shot, err := stats.ParseShotType(input.ShotType)
	if err != nil {
		app.failedValidationResponse(w, r, map[string]string{"shot_type": err.Error()})
		return
	}

	player, undone, err := hub.UndoShot(side, input.PlayerIndex, shot)
	if err != nil {
		app.statErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"player": player, "undone": undone}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) statErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, stats.ErrIndexOutOfRange):
		app.failedValidationResponse(w, r, map[string]string{"player_index": err.Error()})
	case errors.Is(err, gamehub.ErrGameFinished):
		app.notFoundResponse(w, r)
	default:
		app.serverErrorResponse(w, r, err)
	}
}
